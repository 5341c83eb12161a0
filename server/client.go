package main

import (
	"encoding/json"
	"log"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait         = 10 * time.Second
	pongWait          = 60 * time.Second
	pingPeriod        = (pongWait * 9) / 10
	maxMessageSize    = 64 << 10 // room for a base64 snapshot on load
	sendBufSize       = 256
	maxMessagesPerSec = 50
	maxNameLen        = 16
)

// Binary input: [0x01, flags]
const binaryInputTag = 0x01

const (
	flagLeft = 1 << iota
	flagRight
	flagFire
	flagConfirm
	flagPause
	flagPulse
)

// Client represents a WebSocket connection
type Client struct {
	hub        *Hub
	conn       *websocket.Conn
	send       chan []byte
	clientID   string
	sessionID  string
	remoteAddr string
	msgCount   int
	msgResetAt time.Time
	// Auth state
	authPlayerID int64  // 0 = unauthenticated/guest
	authUsername string // "" = unauthenticated
}

// NewClient creates a new Client
func NewClient(hub *Hub, conn *websocket.Conn, remoteAddr string) *Client {
	return &Client{
		hub:        hub,
		conn:       conn,
		send:       make(chan []byte, sendBufSize),
		remoteAddr: remoteAddr,
	}
}

// ReadPump reads messages from the WebSocket connection
func (c *Client) ReadPump() {
	defer func() {
		c.hub.TrackDisconnect(c.remoteAddr)
		c.hub.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		msgType, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("ws error: %v", err)
			}
			break
		}

		// Rate limiting
		now := time.Now()
		if now.After(c.msgResetAt) {
			c.msgCount = 0
			c.msgResetAt = now.Add(time.Second)
		}
		c.msgCount++
		if c.msgCount > maxMessagesPerSec {
			log.Printf("rate limit exceeded for %s, disconnecting", c.remoteAddr)
			break
		}

		if msgType == websocket.BinaryMessage && len(message) == 2 && message[0] == binaryInputTag {
			c.handleBinaryInput(message)
		} else {
			c.handleMessage(message)
		}
	}
}

// WritePump writes messages to the WebSocket connection
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			// Check for binary marker (0xFF prefix from SendBinary)
			var err error
			if len(message) > 0 && message[0] == 0xFF {
				err = c.conn.WriteMessage(websocket.BinaryMessage, message[1:])
			} else {
				err = c.conn.WriteMessage(websocket.TextMessage, message)
			}
			if err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// SendJSON sends a JSON message to the client
func (c *Client) SendJSON(msg interface{}) {
	data, err := json.Marshal(msg)
	if err != nil {
		log.Printf("marshal error: %v", err)
		return
	}
	c.SendRaw(data)
}

// SendRaw sends pre-marshaled bytes as a text message to the client
func (c *Client) SendRaw(data []byte) {
	defer func() { recover() }()
	select {
	case c.send <- data:
	default:
		// Client too slow, drop message
	}
}

// SendBinary sends pre-marshaled bytes as a binary WebSocket message
// Prefixes with 0xFF marker byte so WritePump can distinguish from text
func (c *Client) SendBinary(data []byte) {
	defer func() { recover() }()
	msg := make([]byte, len(data)+1)
	msg[0] = 0xFF // binary marker
	copy(msg[1:], data)
	select {
	case c.send <- msg:
	default:
	}
}

// handleMessage routes incoming messages (single-pass decode via InEnvelope)
func (c *Client) handleMessage(raw []byte) {
	var env InEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		log.Printf("unmarshal error: %v", err)
		return
	}

	switch env.T {
	case MsgList:
		c.handleList()
	case MsgCreate:
		c.handleCreate(env.D)
	case MsgJoin:
		c.handleJoin(env.D)
	case MsgInput:
		c.handleInput(env.D)
	case MsgLeave:
		c.handleLeave()
	case MsgCheck:
		c.handleCheck(env.D)
	case MsgQuizAnswer:
		c.handleQuizAnswer(env.D)
	case MsgSkillAnswer:
		c.handleSkillAnswer(env.D)
	case MsgSave:
		c.handleSave(env.D)
	case MsgLoad:
		c.handleLoad(env.D)
	case MsgRegister:
		c.handleRegister(env.D)
	case MsgLogin:
		c.handleLogin(env.D)
	case MsgAuth:
		c.handleAuth(env.D)
	case MsgProfile:
		c.handleProfile()
	}
}

// session returns the session this client has joined, if any
func (c *Client) session() *Session {
	if c.sessionID == "" || c.clientID == "" {
		return nil
	}
	return c.hub.sessions.GetSession(c.sessionID)
}

func (c *Client) handleList() {
	sessions := c.hub.sessions.ListSessions()
	c.SendJSON(Envelope{T: MsgSessions, Data: sessions})
}

func (c *Client) handleCreate(data json.RawMessage) {
	var msg CreateMsg
	if err := json.Unmarshal(data, &msg); err != nil {
		return
	}
	sname := msg.SessionName
	if sname == "" {
		sname = "Boss Encounter"
	}
	if len(sname) > 30 {
		sname = sname[:30]
	}

	sess := c.hub.sessions.CreateSession(sname)
	if sess == nil {
		c.SendJSON(Envelope{T: MsgError, Data: ErrorMsg{Msg: "too many active sessions"}})
		return
	}
	c.SendJSON(Envelope{T: MsgCreated, Data: map[string]string{"sid": sess.ID}})
}

func (c *Client) displayName(requested string) string {
	if c.authUsername != "" {
		return c.authUsername
	}
	name := requested
	if name == "" {
		name = GenerateGuestName()
	}
	return truncateRunes(name, maxNameLen)
}

func (c *Client) handleJoin(data json.RawMessage) {
	var msg JoinMsg
	if err := json.Unmarshal(data, &msg); err != nil {
		return
	}
	if c.sessionID != "" {
		c.handleLeave()
	}
	sess := c.hub.sessions.GetSession(msg.SessionID)
	if sess == nil {
		c.SendJSON(Envelope{T: MsgError, Data: ErrorMsg{Msg: "session not found"}})
		return
	}

	name := c.displayName(msg.Name)
	id := GenerateID(8)
	role := sess.Game.AddClient(id, name, c.authPlayerID, c)
	if role == "" {
		c.SendJSON(Envelope{T: MsgError, Data: ErrorMsg{Msg: "session full"}})
		return
	}
	c.clientID = id
	c.sessionID = sess.ID

	c.SendJSON(Envelope{T: MsgJoined, Data: map[string]string{"sid": sess.ID}})
	c.SendJSON(Envelope{T: MsgWelcome, Data: WelcomeMsg{SID: sess.ID, Role: role, Name: name}})
}

// handleBinaryInput decodes the compact two-byte input message
func (c *Client) handleBinaryInput(msg []byte) {
	sess := c.session()
	if sess == nil {
		return
	}
	flags := msg[1]
	sess.Game.HandleInput(c.clientID, InputMsg{
		Input: Input{
			Left:    flags&flagLeft != 0,
			Right:   flags&flagRight != 0,
			Fire:    flags&flagFire != 0,
			Confirm: flags&flagConfirm != 0,
			Pause:   flags&flagPause != 0,
		},
		Pulse: flags&flagPulse != 0,
	})
}

func (c *Client) handleInput(data json.RawMessage) {
	sess := c.session()
	if sess == nil {
		return
	}
	var input InputMsg
	if err := json.Unmarshal(data, &input); err != nil {
		return
	}
	sess.Game.HandleInput(c.clientID, input)
}

func (c *Client) handleQuizAnswer(data json.RawMessage) {
	sess := c.session()
	if sess == nil {
		return
	}
	var msg QuizAnswerMsg
	if err := json.Unmarshal(data, &msg); err != nil {
		return
	}
	sess.Game.HandleQuizAnswer(c.clientID, msg.Index)
}

func (c *Client) handleSkillAnswer(data json.RawMessage) {
	sess := c.session()
	if sess == nil {
		return
	}
	var msg SkillAnswerMsg
	if err := json.Unmarshal(data, &msg); err != nil {
		return
	}
	sess.Game.HandleSkillAnswer(c.clientID, msg.Word)
}

func (c *Client) handleSave(data json.RawMessage) {
	sess := c.session()
	if sess == nil {
		return
	}
	var msg SaveMsg
	if err := json.Unmarshal(data, &msg); err != nil {
		return
	}
	sess.Game.HandleSave(c.clientID, msg.Slot, c)
}

func (c *Client) handleLoad(data json.RawMessage) {
	sess := c.session()
	if sess == nil {
		return
	}
	var msg LoadMsg
	if err := json.Unmarshal(data, &msg); err != nil || len(msg.Blob) == 0 {
		c.SendJSON(Envelope{T: MsgError, Data: ErrorMsg{Msg: "invalid save"}})
		return
	}
	sess.Game.HandleLoad(c.clientID, msg.Blob, c)
}

func (c *Client) handleCheck(data json.RawMessage) {
	var msg CheckMsg
	if err := json.Unmarshal(data, &msg); err != nil {
		return
	}
	sess := c.hub.sessions.GetSession(msg.SID)
	if sess == nil {
		c.SendJSON(Envelope{T: MsgChecked, Data: CheckedMsg{SID: msg.SID, Exists: false}})
		return
	}
	c.SendJSON(Envelope{T: MsgChecked, Data: CheckedMsg{
		SID:     msg.SID,
		Exists:  true,
		Name:    sess.Name,
		Players: sess.Game.ClientCount(),
	}})
}

func (c *Client) handleLeave() {
	if c.sessionID != "" {
		c.hub.sessions.RemoveClient(c.sessionID, c.clientID)
		c.sessionID = ""
		c.clientID = ""
	}
}

// authenticated stores the account on the client and on a session it is piloting
func (c *Client) authenticated(id int64, username, token string) {
	c.authPlayerID = id
	c.authUsername = username
	if sess := c.session(); sess != nil {
		sess.Game.SetPilotAuth(c.clientID, id, username)
	}
	c.SendJSON(Envelope{T: MsgAuthOK, Data: AuthOKMsg{
		Token:    token,
		Username: username,
		PlayerID: id,
	}})
}

func (c *Client) handleRegister(data json.RawMessage) {
	if c.hub.auth == nil {
		return
	}
	var msg RegisterMsg
	if err := json.Unmarshal(data, &msg); err != nil {
		return
	}
	id, token, err := c.hub.auth.Register(msg.Username, msg.Password)
	if err != nil {
		c.SendJSON(Envelope{T: MsgError, Data: ErrorMsg{Msg: err.Error()}})
		return
	}
	c.authenticated(id, msg.Username, token)
}

func (c *Client) handleLogin(data json.RawMessage) {
	if c.hub.auth == nil {
		return
	}
	var msg LoginMsg
	if err := json.Unmarshal(data, &msg); err != nil {
		return
	}
	id, token, err := c.hub.auth.Login(msg.Username, msg.Password, c.remoteAddr)
	if err != nil {
		c.SendJSON(Envelope{T: MsgError, Data: ErrorMsg{Msg: err.Error()}})
		return
	}
	c.authenticated(id, msg.Username, token)
}

func (c *Client) handleAuth(data json.RawMessage) {
	if c.hub.auth == nil {
		return
	}
	var msg AuthMsg
	if err := json.Unmarshal(data, &msg); err != nil {
		return
	}
	id, username, err := c.hub.auth.ValidateToken(msg.Token)
	if err != nil {
		c.SendJSON(Envelope{T: MsgError, Data: ErrorMsg{Msg: "invalid token"}})
		return
	}
	c.authenticated(id, username, msg.Token)
}

func (c *Client) handleProfile() {
	if c.hub.db == nil || c.authPlayerID == 0 {
		c.SendJSON(Envelope{T: MsgError, Data: ErrorMsg{Msg: "not authenticated"}})
		return
	}
	stats, err := c.hub.db.GetStats(c.authPlayerID)
	if err != nil || stats == nil {
		c.SendJSON(Envelope{T: MsgError, Data: ErrorMsg{Msg: "profile not found"}})
		return
	}
	achievements, err := c.hub.db.GetAchievements(c.authPlayerID)
	if err != nil {
		log.Printf("achievements lookup error: %v", err)
	}
	c.SendJSON(Envelope{T: MsgProfileData, Data: ProfileDataMsg{
		Username:     c.authUsername,
		Encounters:   stats.Encounters,
		Victories:    stats.Victories,
		BestScore:    stats.BestScore,
		Playtime:     stats.Playtime,
		Achievements: achievements,
	}})
}
