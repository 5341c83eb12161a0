package main

import (
	"fmt"
	"log"

	"github.com/vmihailenco/msgpack/v5"
)

const SnapshotVersion = 1

// BossSnapshot is the persisted part of a BossController
type BossSnapshot struct {
	X         float64              `msgpack:"x"`
	Y         float64              `msgpack:"y"`
	Dir       float64              `msgpack:"d"`
	Health    int                  `msgpack:"hp"`
	Rage      bool                 `msgpack:"r"`
	Minigame  bool                 `msgpack:"m"`
	Cooldowns [PhaseCount]Cooldown `msgpack:"cd"`
	WanderX   float64              `msgpack:"wx"`
	WanderY   float64              `msgpack:"wy"`
	WanderAt  Cooldown             `msgpack:"wa"`
	Epoch     float64              `msgpack:"ep"`
}

// EncounterSnapshot is a save slot: the whole encounter at one tick
type EncounterSnapshot struct {
	Version          int          `msgpack:"ver"`
	Time             float64      `msgpack:"t"`
	State            State        `msgpack:"st"`
	Score            int          `msgpack:"sc"`
	QuestionsAsked   int          `msgpack:"qa"`
	QuestionsCorrect int          `msgpack:"qc"`
	Pause            PauseTracker `msgpack:"pa"`
	Drain            Cooldown     `msgpack:"dr"`
	LastPhase        Phase        `msgpack:"lp"`
	Player           Player       `msgpack:"pl"`
	Wave             Wave         `msgpack:"wv"`
	Boss             BossSnapshot `msgpack:"bo"`
	Projectiles      []Projectile `msgpack:"pr"`
	Barricades       []Barricade  `msgpack:"ba"`
	PowerUps         PowerUps     `msgpack:"pu"`
}

func (c *BossController) snapshot() BossSnapshot {
	return BossSnapshot{
		X:         c.X,
		Y:         c.Y,
		Dir:       c.Dir,
		Health:    c.Health,
		Rage:      c.RageMode,
		Minigame:  c.MinigameTriggered,
		Cooldowns: c.cooldowns,
		WanderX:   c.WanderX,
		WanderY:   c.WanderY,
		WanderAt:  c.WanderAt,
		Epoch:     c.epoch,
	}
}

func (c *BossController) restore(s BossSnapshot) {
	c.Reset()
	c.X, c.Y, c.Dir = s.X, s.Y, s.Dir
	c.Health = s.Health
	if s.Rage {
		c.EnableRageMode()
	}
	c.MinigameTriggered = s.Minigame
	c.cooldowns = s.Cooldowns
	c.WanderX, c.WanderY, c.WanderAt = s.WanderX, s.WanderY, s.WanderAt
	c.epoch = s.Epoch
	// A restored dead boss has already been reported.
	c.reported = s.Health <= 0
}

// Snapshot captures the encounter for a save slot
func (e *Encounter) Snapshot() EncounterSnapshot {
	s := EncounterSnapshot{
		Version:          SnapshotVersion,
		Time:             e.clock.Now(),
		State:            e.State,
		Score:            e.ScoreSnapshot(),
		QuestionsAsked:   e.QuestionsAsked(),
		QuestionsCorrect: e.QuestionsCorrect,
		Pause:            e.pause,
		Drain:            e.drain,
		LastPhase:        e.lastPhase,
		Player:           *e.Player,
		Wave:             *e.Wave,
		Boss:             e.Boss.snapshot(),
		Projectiles:      make([]Projectile, 0, e.Pool.Len()),
		Barricades:       make([]Barricade, len(e.Barricades)),
		PowerUps:         *e.PowerUps,
	}
	s.Wave.Enemies = append([]Enemy(nil), e.Wave.Enemies...)
	s.PowerUps.Falling = append([]PowerUp(nil), e.PowerUps.Falling...)
	s.Projectiles = append(s.Projectiles, e.Pool.Player...)
	s.Projectiles = append(s.Projectiles, e.Pool.Enemy...)
	s.Projectiles = append(s.Projectiles, e.Pool.Boss...)
	for i, b := range e.Barricades {
		s.Barricades[i].Blocks = append([]Rect(nil), b.Blocks...)
	}
	return s
}

// RestoreEncounter rebuilds an encounter from a save slot. The quiz limit
// counter is carried over when deps.Quiz is a *LimitedQuiz.
func RestoreEncounter(s EncounterSnapshot, tuning Tuning, deps EncounterDeps) (*Encounter, error) {
	if s.Version != SnapshotVersion {
		return nil, fmt.Errorf("unsupported snapshot version %d", s.Version)
	}
	if s.State > StatePlayerDefeated {
		return nil, fmt.Errorf("invalid encounter state %d", s.State)
	}
	if s.Boss.Health < 0 || s.Boss.Health > tuning.Boss.MaxHealth {
		return nil, fmt.Errorf("boss health %d out of range", s.Boss.Health)
	}
	if s.Player.Lives < 0 {
		return nil, fmt.Errorf("negative lives %d", s.Player.Lives)
	}

	e := NewEncounter(tuning, deps)
	e.State = s.State
	e.clock = Clock{now: s.Time}
	e.setScore(s.Score)
	e.QuestionsCorrect = s.QuestionsCorrect
	if lq, ok := e.quiz.(*LimitedQuiz); ok {
		lq.Asked = s.QuestionsAsked
	}
	e.pause = s.Pause
	e.prevKey = false
	e.drain = s.Drain
	e.lastPhase = s.LastPhase

	p := s.Player
	e.Player = &p
	w := s.Wave
	e.Wave = &w
	e.Boss.restore(s.Boss)

	e.Pool.Clear()
	for _, pr := range s.Projectiles {
		e.Pool.add(pr)
	}
	e.Barricades = s.Barricades
	e.PowerUps.Falling = s.PowerUps.Falling
	e.PowerUps.TripleShot = s.PowerUps.TripleShot
	e.PowerUps.Shield = s.PowerUps.Shield
	return e, nil
}

// EncodeSnapshot serialises a snapshot with msgpack
func EncodeSnapshot(s EncounterSnapshot) ([]byte, error) {
	data, err := msgpack.Marshal(&s)
	if err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}
	return data, nil
}

// DecodeSnapshot parses a msgpack snapshot
func DecodeSnapshot(data []byte) (EncounterSnapshot, error) {
	var s EncounterSnapshot
	if err := msgpack.Unmarshal(data, &s); err != nil {
		return s, fmt.Errorf("decode snapshot: %w", err)
	}
	if s.Version != SnapshotVersion {
		log.Printf("snapshot: version %d, expected %d", s.Version, SnapshotVersion)
	}
	return s, nil
}
