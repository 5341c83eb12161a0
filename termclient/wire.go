package main

import "encoding/json"

// Mirrors of the server's wire types. Only what the terminal draws is decoded.

const (
	MsgJoin        = "join"
	MsgCreate      = "create"
	MsgQuizAnswer  = "quiz_answer"
	MsgSkillAnswer = "skill_answer"
	MsgSave        = "save"
	MsgLoad        = "load"
	MsgAuth        = "auth"
	MsgLogin       = "login"

	MsgWelcome     = "welcome"
	MsgCreated     = "created"
	MsgError       = "error"
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
)

// Event kinds that trigger sound cues
const (
	EventPhaseChange    = "phase_change"
	EventRage           = "rage"
	EventPowerUp        = "power_up"
	EventBossDefeated   = "boss_defeated"
	EventPlayerDefeated = "player_defeated"
	EventWaveCleared    = "wave_cleared"
	EventBossIntro      = "boss_intro"
)

// Binary input: [inputTag, flags]
const inputTag = 0x01

const (
	flagLeft = 1 << iota
	flagRight
	flagFire
	flagConfirm
	flagPause
	flagPulse
)

type Envelope struct {
	T    string      `json:"t"`
	Data interface{} `json:"d,omitempty"`
}

type InEnvelope struct {
	T string          `json:"t"`
	D json.RawMessage `json:"d,omitempty"`
}

type Rect struct {
	X float64 `msgpack:"x"`
	Y float64 `msgpack:"y"`
	W float64 `msgpack:"w"`
	H float64 `msgpack:"h"`
}

type PlayerState struct {
	X     float64 `msgpack:"x"`
	Y     float64 `msgpack:"y"`
	Lives int     `msgpack:"l"`
	Inv   bool    `msgpack:"i,omitempty"`
}

type ProjectileState struct {
	X float64 `msgpack:"x"`
	Y float64 `msgpack:"y"`
	O uint8   `msgpack:"o"`
	K uint8   `msgpack:"k"`
}

type EnemyState struct {
	X float64 `msgpack:"x"`
	Y float64 `msgpack:"y"`
}

type BossState struct {
	X      float64 `msgpack:"x"`
	Y      float64 `msgpack:"y"`
	Health int     `msgpack:"hp"`
	Max    int     `msgpack:"m"`
	Phase  int     `msgpack:"ph"`
	Rage   bool    `msgpack:"r,omitempty"`
}

type PowerUpState struct {
	X float64 `msgpack:"x"`
	Y float64 `msgpack:"y"`
	K uint8   `msgpack:"k"`
}

// Frame is one server tick as streamed over the binary channel
type Frame struct {
	Time        float64           `msgpack:"t"`
	State       string            `msgpack:"s"`
	Paused      bool              `msgpack:"pa,omitempty"`
	Score       int               `msgpack:"sc"`
	Wave        int               `msgpack:"w"`
	Player      PlayerState       `msgpack:"p"`
	Boss        *BossState        `msgpack:"b,omitempty"`
	Enemies     []EnemyState      `msgpack:"e"`
	Projectiles []ProjectileState `msgpack:"pr"`
	PowerUps    []PowerUpState    `msgpack:"pu"`
	Barricades  [][]Rect          `msgpack:"br"`
	TripleShot  float64           `msgpack:"ts,omitempty"`
	Shield      float64           `msgpack:"sh,omitempty"`
}

type WelcomeMsg struct {
	SID  string `json:"sid"`
	Role string `json:"role"`
	Name string `json:"name"`
}

type QuizMsg struct {
	Question  string   `json:"q"`
	Options   []string `json:"o"`
	TimeLimit float64  `json:"tl"`
}

type QuizResultMsg struct {
	Correct bool `json:"correct"`
	Answer  int  `json:"answer"`
	Timeout bool `json:"timeout,omitempty"`
}

type SkillMsg struct {
	Rows      []string `json:"rows"`
	TimeLimit float64  `json:"tl"`
}

type SkillResultMsg struct {
	Passed  bool   `json:"passed"`
	Word    string `json:"word"`
	Timeout bool   `json:"timeout,omitempty"`
}

type OutcomeMsg struct {
	Victory      bool `json:"victory"`
	Score        int  `json:"score"`
	Achievements []struct {
		Name string `json:"name"`
	} `json:"achievements,omitempty"`
	Submitted bool `json:"submitted"`
}

type SavedMsg struct {
	Slot int    `json:"slot"`
	Blob []byte `json:"blob"`
}

type EventMsg struct {
	Kind   string `json:"kind"`
	Detail string `json:"detail,omitempty"`
}

type ScoreMsg struct {
	Score int `json:"score"`
}

type ErrorMsg struct {
	Msg string `json:"msg"`
}

type AuthOKMsg struct {
	Token    string `json:"token"`
	Username string `json:"username"`
}

// Projectile owners and kinds as encoded in ProjectileState
const (
	OwnerPlayer = 0
	OwnerEnemy  = 1
	OwnerBoss   = 2

	KindVolatile = 1
)
