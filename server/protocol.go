package main

import "encoding/json"

// Client -> Server message types
const (
	MsgJoin        = "join"
	MsgLeave       = "leave"
	MsgInput       = "input"
	MsgCreate      = "create" // create session
	MsgList        = "list"   // list sessions
	MsgCheck       = "check"  // check if session exists
	MsgQuizAnswer  = "quiz_answer"
	MsgSkillAnswer = "skill_answer"
	MsgSave        = "save"
	MsgLoad        = "load"
	MsgRegister    = "register"
	MsgLogin       = "login"
	MsgAuth        = "auth"
	MsgProfile     = "profile"
)

// Server -> Client message types
const (
	MsgFrame       = "frame" // binary msgpack, never sent as JSON
	MsgWelcome     = "welcome"
	MsgSessions    = "sessions"
	MsgJoined      = "joined"
	MsgCreated     = "created"
	MsgError       = "error"
	MsgChecked     = "checked"
	MsgQuiz        = "quiz"
	MsgQuizResult  = "quiz_result"
	MsgSkill       = "skill"
	MsgSkillResult = "skill_result"
	MsgOutcome     = "outcome"
	MsgSaved       = "saved"
	MsgLoaded      = "loaded"
	MsgScore       = "score"
	MsgEvent       = "event"
	MsgAuthOK      = "auth_ok"
	MsgProfileData = "profile_data"
)

// Envelope wraps all outgoing messages with a type field
type Envelope struct {
	T    string      `json:"t"`
	Data interface{} `json:"d,omitempty"`
}

// InEnvelope is used for incoming messages; json.RawMessage avoids double-unmarshal
type InEnvelope struct {
	T string          `json:"t"`
	D json.RawMessage `json:"d,omitempty"`
}

// InputMsg carries key state. Terminals cannot report key release, so a
// pulse holds the pressed keys for a few ticks instead of until the next message.
type InputMsg struct {
	Input
	Pulse bool `json:"pulse,omitempty"`
}

// JoinMsg is sent when a client wants to join a session
type JoinMsg struct {
	Name      string `json:"name"`
	SessionID string `json:"sid"`
}

// CreateMsg is sent when a client wants to create a session
type CreateMsg struct {
	Name        string `json:"name"`
	SessionName string `json:"sname"`
}

// Roles a client can hold in a session
const (
	RolePilot     = "pilot"
	RoleSpectator = "spectator"
)

// WelcomeMsg is sent to a client when it joins
type WelcomeMsg struct {
	SID  string `json:"sid"`
	Role string `json:"role"`
	Name string `json:"name"`
}

// PlayerState is the ship in a frame
type PlayerState struct {
	X     float64 `msgpack:"x" json:"x"`
	Y     float64 `msgpack:"y" json:"y"`
	Lives int     `msgpack:"l" json:"l"`
	Inv   bool    `msgpack:"i,omitempty" json:"i,omitempty"`
}

// ProjectileState is one bullet in a frame
type ProjectileState struct {
	X float64 `msgpack:"x" json:"x"`
	Y float64 `msgpack:"y" json:"y"`
	O uint8   `msgpack:"o" json:"o"` // Owner
	K uint8   `msgpack:"k" json:"k"` // Kind
}

// EnemyState is one wave enemy in a frame
type EnemyState struct {
	X float64 `msgpack:"x" json:"x"`
	Y float64 `msgpack:"y" json:"y"`
}

// BossState is the boss in a frame
type BossState struct {
	X      float64 `msgpack:"x" json:"x"`
	Y      float64 `msgpack:"y" json:"y"`
	Health int     `msgpack:"hp" json:"hp"`
	Max    int     `msgpack:"m" json:"m"`
	Phase  int     `msgpack:"ph" json:"ph"`
	Rage   bool    `msgpack:"r,omitempty" json:"r,omitempty"`
}

// PowerUpState is one falling pickup in a frame
type PowerUpState struct {
	X float64 `msgpack:"x" json:"x"`
	Y float64 `msgpack:"y" json:"y"`
	K uint8   `msgpack:"k" json:"k"`
}

// QuizMsg asks the pilot a question
type QuizMsg struct {
	Question  string   `json:"q"`
	Options   []string `json:"o"`
	TimeLimit float64  `json:"tl"`
}

// QuizAnswerMsg is the pilot's chosen option index
type QuizAnswerMsg struct {
	Index int `json:"i"`
}

// QuizResultMsg reports how a question went
type QuizResultMsg struct {
	Correct bool `json:"correct"`
	Answer  int  `json:"answer"`
	Timeout bool `json:"timeout,omitempty"`
}

// SkillMsg opens the hacking challenge
type SkillMsg struct {
	Rows      []string `json:"rows"`
	TimeLimit float64  `json:"tl"`
}

// SkillAnswerMsg is the word the pilot found
type SkillAnswerMsg struct {
	Word string `json:"w"`
}

// SkillResultMsg reports the hacking challenge result
type SkillResultMsg struct {
	Passed  bool   `json:"passed"`
	Word    string `json:"word"`
	Timeout bool   `json:"timeout,omitempty"`
}

// OutcomeMsg ends the encounter
type OutcomeMsg struct {
	Outcome
	Achievements []AchievementDef `json:"achievements,omitempty"`
	Submitted    bool             `json:"submitted"`
}

// SaveMsg asks for a snapshot of the encounter
type SaveMsg struct {
	Slot int `json:"slot"`
}

// SavedMsg returns a snapshot for the client to keep
type SavedMsg struct {
	Slot int    `json:"slot"`
	Blob []byte `json:"blob"`
}

// LoadMsg hands a snapshot back to the session
type LoadMsg struct {
	Blob []byte `json:"blob"`
}

// ScoreMsg mirrors the live score
type ScoreMsg struct {
	Score int `json:"score"`
}

// EventMsg forwards an encounter event for client cues
type EventMsg struct {
	Kind   string `json:"kind"`
	Detail string `json:"detail,omitempty"`
}

// SessionInfo is used in the session list
type SessionInfo struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Players int    `json:"players"`
	State   string `json:"state"`
}

// ErrorMsg sends error to client
type ErrorMsg struct {
	Msg string `json:"msg"`
}

// CheckMsg is sent by client to check if a session exists
type CheckMsg struct {
	SID string `json:"sid"`
}

// CheckedMsg is the response to a session check
type CheckedMsg struct {
	SID     string `json:"sid"`
	Exists  bool   `json:"exists"`
	Name    string `json:"name,omitempty"`
	Players int    `json:"players,omitempty"`
}

// RegisterMsg / LoginMsg carry credentials
type RegisterMsg struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginMsg struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// AuthMsg resumes a session with a stored token
type AuthMsg struct {
	Token string `json:"token"`
}

// AuthOKMsg confirms authentication
type AuthOKMsg struct {
	Token    string `json:"token"`
	Username string `json:"username"`
	PlayerID int64  `json:"pid"`
}

// ProfileDataMsg is the pilot's lifetime record
type ProfileDataMsg struct {
	Username     string   `json:"username"`
	Encounters   int      `json:"encounters"`
	Victories    int      `json:"victories"`
	BestScore    int      `json:"best_score"`
	Playtime     float64  `json:"playtime"`
	Achievements []string `json:"achievements"`
}

// SubmitScoreRequest is the POST /submit_score body
type SubmitScoreRequest struct {
	PlayerName string `json:"player_name"`
	Score      *int   `json:"score"`
}
