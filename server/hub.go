package main

import "sync"

const (
	maxConnsPerIP = 5
	maxTotalConns = 1000
)

// Hub manages all connected clients and routes them to sessions
type Hub struct {
	mu         sync.RWMutex
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	sessions   *SessionManager
	// Connection limiting (mutex-protected, accessed from HTTP handlers)
	connMu     sync.Mutex
	ipConns    map[string]int
	totalConns int
	// Auth, DB and metrics
	db        *DB
	auth      *Auth
	analytics *Analytics
	publicURL string // base for join links and QR codes
}

// HubConfig collects what the hub and its sessions share
type HubConfig struct {
	DB        *DB
	Tuning    Tuning
	Bank      *QuestionBank
	PublicURL string
}

// NewHub creates a new Hub. A nil DB disables accounts, scores and analytics.
func NewHub(cfg HubConfig) *Hub {
	h := &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client, 64),
		unregister: make(chan *Client, 64),
		ipConns:    make(map[string]int),
		db:         cfg.DB,
		publicURL:  cfg.PublicURL,
	}
	if cfg.DB != nil {
		h.auth = NewAuth(cfg.DB)
		h.analytics = NewAnalytics(cfg.DB)
	}
	h.sessions = NewSessionManager(GameDeps{
		Tuning:    cfg.Tuning,
		Bank:      cfg.Bank,
		DB:        cfg.DB,
		Analytics: h.analytics,
	})
	return h
}

func (h *Hub) CanAccept(ip string) bool {
	h.connMu.Lock()
	defer h.connMu.Unlock()
	if h.totalConns >= maxTotalConns {
		return false
	}
	if h.ipConns[ip] >= maxConnsPerIP {
		return false
	}
	return true
}

func (h *Hub) TrackConnect(ip string) {
	h.connMu.Lock()
	defer h.connMu.Unlock()
	h.ipConns[ip]++
	h.totalConns++
}

func (h *Hub) TrackDisconnect(ip string) {
	h.connMu.Lock()
	defer h.connMu.Unlock()
	h.ipConns[ip]--
	if h.ipConns[ip] <= 0 {
		delete(h.ipConns, ip)
	}
	h.totalConns--
}

// Run processes register/unregister events
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()
			h.updateLive()

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
			h.mu.Unlock()
			// Remove from session if in one
			if client.sessionID != "" {
				h.sessions.RemoveClient(client.sessionID, client.clientID)
			}
			h.updateLive()
		}
	}
}

func (h *Hub) updateLive() {
	h.analytics.SetLive(h.ClientCount(), h.sessions.Count())
}

// Shutdown stops every session and flushes pending analytics
func (h *Hub) Shutdown() {
	h.sessions.StopAll()
	h.analytics.Stop()
}

// ClientCount returns the number of connected clients
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// TotalConns returns the tracked connection count
func (h *Hub) TotalConns() int {
	h.connMu.Lock()
	defer h.connMu.Unlock()
	return h.totalConns
}
