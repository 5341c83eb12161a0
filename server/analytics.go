package main

import (
	"database/sql"
	"encoding/json"
	"log"
	"sync"
	"time"
)

// Session-level event types; encounter events use the Event* kinds
const (
	EvtSessionStart = "session_start"
	EvtSessionEnd   = "session_end"
	EvtAchievement  = "achievement"
	EvtScoreSubmit  = "score_submit"
)

const (
	analyticsBuffer     = 1024
	analyticsBatchSize  = 50
	analyticsFlushEvery = 5 * time.Second
)

// AnalyticsEvent is one encounter or session event
type AnalyticsEvent struct {
	Type      string
	PlayerID  int64
	SessionID string
	Data      string // JSON metadata (optional)
	Timestamp time.Time
}

// Analytics records events with batched background writes
type Analytics struct {
	db     *DB
	events chan AnalyticsEvent
	stop   chan struct{}
	wg     sync.WaitGroup

	stopOnce sync.Once

	mu             sync.RWMutex
	concurrentConn int
	activeSessions int
}

// NewAnalytics creates and starts the background writer
func NewAnalytics(db *DB) *Analytics {
	a := &Analytics{
		db:     db,
		events: make(chan AnalyticsEvent, analyticsBuffer),
		stop:   make(chan struct{}),
	}
	a.wg.Add(1)
	go a.writer()
	return a
}

// Track enqueues an event without blocking; events are dropped when the buffer is full
func (a *Analytics) Track(evtType string, playerID int64, sessionID string, data map[string]any) {
	if a == nil {
		return
	}
	var raw string
	if len(data) > 0 {
		if b, err := json.Marshal(data); err == nil {
			raw = string(b)
		}
	}
	select {
	case a.events <- AnalyticsEvent{
		Type:      evtType,
		PlayerID:  playerID,
		SessionID: sessionID,
		Data:      raw,
		Timestamp: time.Now().UTC(),
	}:
	default:
	}
}

// SetLive updates the live connection and session counts
func (a *Analytics) SetLive(conns, sessions int) {
	if a == nil {
		return
	}
	a.mu.Lock()
	a.concurrentConn = conns
	a.activeSessions = sessions
	a.mu.Unlock()
}

// GetLiveMetrics returns (connections, sessions)
func (a *Analytics) GetLiveMetrics() (int, int) {
	if a == nil {
		return 0, 0
	}
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.concurrentConn, a.activeSessions
}

// Stop flushes pending events and stops the writer
func (a *Analytics) Stop() {
	if a == nil {
		return
	}
	a.stopOnce.Do(func() { close(a.stop) })
	a.wg.Wait()
}

func (a *Analytics) writer() {
	defer a.wg.Done()

	batch := make([]AnalyticsEvent, 0, 64)
	ticker := time.NewTicker(analyticsFlushEvery)
	defer ticker.Stop()

	for {
		select {
		case evt := <-a.events:
			batch = append(batch, evt)
			if len(batch) >= analyticsBatchSize {
				a.flush(batch)
				batch = batch[:0]
			}
		case <-ticker.C:
			if len(batch) > 0 {
				a.flush(batch)
				batch = batch[:0]
			}
		case <-a.stop:
			for {
				select {
				case evt := <-a.events:
					batch = append(batch, evt)
					continue
				default:
				}
				break
			}
			a.flush(batch)
			return
		}
	}
}

// flush writes a batch of events in one transaction
func (a *Analytics) flush(events []AnalyticsEvent) {
	if a.db == nil || len(events) == 0 {
		return
	}
	tx, err := a.db.conn.Begin()
	if err != nil {
		log.Printf("analytics: begin tx error: %v", err)
		return
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`INSERT INTO encounter_events (event_type, player_id, session_id, data, created_at) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		log.Printf("analytics: prepare error: %v", err)
		return
	}
	defer stmt.Close()

	for _, evt := range events {
		pid := sql.NullInt64{Int64: evt.PlayerID, Valid: evt.PlayerID > 0}
		sid := sql.NullString{String: evt.SessionID, Valid: evt.SessionID != ""}
		data := sql.NullString{String: evt.Data, Valid: evt.Data != ""}
		if _, err := stmt.Exec(evt.Type, pid, sid, data, evt.Timestamp.Format(time.RFC3339)); err != nil {
			log.Printf("analytics: insert error: %v", err)
		}
	}
	if err := tx.Commit(); err != nil {
		log.Printf("analytics: commit error: %v", err)
	}
}

// EventCounts returns counts of each event type for the last N days
func (a *Analytics) EventCounts(days int) (map[string]int, error) {
	result := make(map[string]int)
	if a.db == nil {
		return result, nil
	}
	rows, err := a.db.conn.Query(`
		SELECT event_type, COUNT(*) FROM encounter_events
		WHERE created_at >= date('now', '-' || ? || ' days')
		GROUP BY event_type ORDER BY COUNT(*) DESC
	`, days)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var evtType string
		var count int
		if err := rows.Scan(&evtType, &count); err != nil {
			continue
		}
		result[evtType] = count
	}
	return result, rows.Err()
}

// PhaseReach returns how many phase changes reached each boss phase
func (a *Analytics) PhaseReach(days int) (map[string]int, error) {
	result := make(map[string]int)
	if a.db == nil {
		return result, nil
	}
	rows, err := a.db.conn.Query(`
		SELECT COALESCE(json_extract(data, '$.detail'), 'unknown') AS phase, COUNT(*)
		FROM encounter_events
		WHERE event_type = ? AND json_valid(data) AND created_at >= date('now', '-' || ? || ' days')
		GROUP BY phase
	`, EventPhaseChange, days)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var phase string
		var count int
		if err := rows.Scan(&phase, &count); err != nil {
			continue
		}
		result[phase] = count
	}
	return result, rows.Err()
}

// StatsResponse is the body of GET /api/stats
type StatsResponse struct {
	Connections int            `json:"connections"`
	Sessions    int            `json:"sessions"`
	Events      map[string]int `json:"events"`
	Phases      map[string]int `json:"phases"`
}
