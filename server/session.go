package main

import (
	"sync"
)

const maxSessions = 100

// Session represents an encounter that clients can join
type Session struct {
	ID   string
	Name string
	Game *Game
}

// SessionManager handles creation and lookup of sessions
type SessionManager struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	deps     GameDeps
}

// NewSessionManager creates a new SessionManager; every session shares deps
func NewSessionManager(deps GameDeps) *SessionManager {
	return &SessionManager{
		sessions: make(map[string]*Session),
		deps:     deps,
	}
}

// CreateSession creates and starts a new encounter. Returns nil if limit reached.
func (sm *SessionManager) CreateSession(name string) *Session {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if len(sm.sessions) >= maxSessions {
		return nil
	}

	id := GenerateUUID()
	game := NewGame(id, sm.deps)
	sess := &Session{
		ID:   id,
		Name: name,
		Game: game,
	}
	sm.sessions[id] = sess
	go game.Run()
	sm.deps.Analytics.Track(EvtSessionStart, 0, id, nil)
	return sess
}

// GetSession returns a session by ID
func (sm *SessionManager) GetSession(id string) *Session {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.sessions[id]
}

// RemoveClient detaches a client and stops the session once it is empty
func (sm *SessionManager) RemoveClient(sessionID, clientID string) {
	sm.mu.RLock()
	sess, ok := sm.sessions[sessionID]
	sm.mu.RUnlock()
	if !ok {
		return
	}
	sess.Game.RemoveClient(clientID)

	if sess.Game.ClientCount() == 0 {
		sess.Game.Stop()
		sm.mu.Lock()
		delete(sm.sessions, sessionID)
		sm.mu.Unlock()
		sm.deps.Analytics.Track(EvtSessionEnd, 0, sessionID, nil)
	}
}

// Count returns the number of live sessions
func (sm *SessionManager) Count() int {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return len(sm.sessions)
}

// StopAll stops every session, used on shutdown
func (sm *SessionManager) StopAll() {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	for id, sess := range sm.sessions {
		sess.Game.Stop()
		delete(sm.sessions, id)
	}
}

// Info describes one session for listings and lookups
func (s *Session) Info() SessionInfo {
	return SessionInfo{
		ID:      s.ID,
		Name:    s.Name,
		Players: s.Game.ClientCount(),
		State:   s.Game.StateName(),
	}
}

// ListSessions returns info about all active sessions
func (sm *SessionManager) ListSessions() []SessionInfo {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	list := make([]SessionInfo, 0, len(sm.sessions))
	for _, sess := range sm.sessions {
		list = append(list, sess.Info())
	}
	return list
}
