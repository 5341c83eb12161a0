package main

import (
	"encoding/json"
	"errors"
	"log"
	"net"
	"net/http"
	"net/url"
	"regexp"
	"strings"

	"github.com/gorilla/websocket"
	"github.com/skip2/go-qrcode"
)

const (
	leaderboardSize = 10
	statsDays       = 30
	qrSize          = 256
	maxBodyBytes    = 4096
)

var uuidRe = regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}$`)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true // Non-browser clients don't send Origin
		}
		u, err := url.Parse(origin)
		if err != nil {
			return false
		}
		return u.Host == r.Host
	},
}

func extractIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("http: encode error: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// SetupRoutes configures HTTP routes
func SetupRoutes(hub *Hub) *http.ServeMux {
	mux := http.NewServeMux()

	// WebSocket endpoint
	mux.HandleFunc("GET /ws", func(w http.ResponseWriter, r *http.Request) {
		ip := extractIP(r)
		if !hub.CanAccept(ip) {
			http.Error(w, "too many connections", http.StatusServiceUnavailable)
			return
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Printf("upgrade error: %v", err)
			return
		}

		hub.TrackConnect(ip)

		client := NewClient(hub, conn, ip)
		hub.register <- client

		go client.WritePump()
		go client.ReadPump()
	})

	mux.HandleFunc("GET /leaderboard", hub.handleLeaderboard)
	mux.HandleFunc("POST /submit_score", hub.handleSubmitScore)
	mux.HandleFunc("POST /register", hub.handleRegister)
	mux.HandleFunc("POST /login", hub.handleLogin)
	mux.HandleFunc("GET /api/stats", hub.handleStats)
	mux.HandleFunc("GET /qr/{sid}", hub.handleQR)
	mux.HandleFunc("GET /{sid}", hub.handleSessionInfo)

	return mux
}

func (h *Hub) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	if h.db == nil {
		writeJSON(w, http.StatusOK, []ScoreEntry{})
		return
	}
	entries, err := h.db.GetLeaderboard(leaderboardSize)
	if err != nil {
		log.Printf("leaderboard error: %v", err)
		writeError(w, http.StatusInternalServerError, "database error")
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

func (h *Hub) handleSubmitScore(w http.ResponseWriter, r *http.Request) {
	if h.auth == nil {
		writeError(w, http.StatusServiceUnavailable, "scores disabled")
		return
	}
	pid, _, err := h.auth.Authenticate(r)
	if err != nil {
		msg := "invalid token"
		if errors.Is(err, errNoToken) {
			msg = "missing token"
		}
		writeError(w, http.StatusUnauthorized, msg)
		return
	}

	var req SubmitScoreRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	name := strings.TrimSpace(req.PlayerName)
	if name == "" || req.Score == nil {
		writeError(w, http.StatusBadRequest, "player_name and score are required")
		return
	}
	if *req.Score < 0 {
		writeError(w, http.StatusBadRequest, "score must not be negative")
		return
	}
	name = truncateRunes(name, maxNameLen)
	if err := h.db.SubmitScore(name, *req.Score, pid); err != nil {
		log.Printf("submit score error: %v", err)
		writeError(w, http.StatusInternalServerError, "database error")
		return
	}
	h.analytics.Track(EvtScoreSubmit, pid, "", map[string]any{"score": *req.Score})
	writeJSON(w, http.StatusOK, map[string]string{"status": "success"})
}

func (h *Hub) decodeCredentials(w http.ResponseWriter, r *http.Request) (RegisterMsg, bool) {
	var msg RegisterMsg
	if h.auth == nil {
		writeError(w, http.StatusServiceUnavailable, "accounts disabled")
		return msg, false
	}
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&msg); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return msg, false
	}
	return msg, true
}

func (h *Hub) handleRegister(w http.ResponseWriter, r *http.Request) {
	msg, ok := h.decodeCredentials(w, r)
	if !ok {
		return
	}
	id, token, err := h.auth.Register(msg.Username, msg.Password)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, AuthOKMsg{Token: token, Username: strings.TrimSpace(msg.Username), PlayerID: id})
}

func (h *Hub) handleLogin(w http.ResponseWriter, r *http.Request) {
	msg, ok := h.decodeCredentials(w, r)
	if !ok {
		return
	}
	id, token, err := h.auth.Login(msg.Username, msg.Password, extractIP(r))
	if err != nil {
		writeError(w, http.StatusUnauthorized, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, AuthOKMsg{Token: token, Username: msg.Username, PlayerID: id})
}

func (h *Hub) handleStats(w http.ResponseWriter, r *http.Request) {
	h.updateLive()
	conns, sessions := h.analytics.GetLiveMetrics()
	resp := StatsResponse{
		Connections: conns,
		Sessions:    sessions,
		Events:      map[string]int{},
		Phases:      map[string]int{},
	}
	if h.analytics != nil {
		var err error
		if resp.Events, err = h.analytics.EventCounts(statsDays); err != nil {
			log.Printf("stats error: %v", err)
			writeError(w, http.StatusInternalServerError, "database error")
			return
		}
		if resp.Phases, err = h.analytics.PhaseReach(statsDays); err != nil {
			log.Printf("stats error: %v", err)
			writeError(w, http.StatusInternalServerError, "database error")
			return
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

// handleQR renders a join link for a session as a PNG
func (h *Hub) handleQR(w http.ResponseWriter, r *http.Request) {
	sid := r.PathValue("sid")
	if !uuidRe.MatchString(sid) || h.sessions.GetSession(sid) == nil {
		http.NotFound(w, r)
		return
	}
	png, err := qrcode.Encode(h.JoinURL(sid), qrcode.Medium, qrSize)
	if err != nil {
		log.Printf("qr error: %v", err)
		http.Error(w, "qr error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-cache")
	w.Write(png)
}

func (h *Hub) handleSessionInfo(w http.ResponseWriter, r *http.Request) {
	sid := r.PathValue("sid")
	if !uuidRe.MatchString(sid) {
		http.NotFound(w, r)
		return
	}
	sess := h.sessions.GetSession(sid)
	if sess == nil {
		writeError(w, http.StatusNotFound, "session not found")
		return
	}
	writeJSON(w, http.StatusOK, sess.Info())
}

// JoinURL is the link a QR code points at
func (h *Hub) JoinURL(sid string) string {
	return strings.TrimRight(h.publicURL, "/") + "/" + sid
}
