package main

import (
	"context"
	"errors"
	"math/rand"
	"strconv"
	"sync"
)

const (
	ScreenWidth     = 1200.0
	ScreenHeight    = 600.0
	ScoreDrainEvery = 1.0 // seconds of unpaused play per drain step
)

// ErrEncounterOver is returned when ticking an encounter that already ended
var ErrEncounterOver = errors.New("encounter is over")

// State is the orchestrator's position in the encounter
type State uint8

const (
	StateWaveActive State = iota
	StateBossIntro
	StateBossActive
	StateBossDefeated
	StatePlayerDefeated
)

func (s State) String() string {
	switch s {
	case StateWaveActive:
		return "wave"
	case StateBossIntro:
		return "boss_intro"
	case StateBossActive:
		return "boss"
	case StateBossDefeated:
		return "boss_defeated"
	case StatePlayerDefeated:
		return "player_defeated"
	}
	return "unknown"
}

// Terminal reports whether no further ticks are accepted
func (s State) Terminal() bool {
	return s == StateBossDefeated || s == StatePlayerDefeated
}

// Input is the key state for one tick
type Input struct {
	Left    bool `json:"l"`
	Right   bool `json:"r"`
	Fire    bool `json:"f"`
	Confirm bool `json:"c"`
	Pause   bool `json:"p"`
}

func (in Input) any() bool {
	return in.Left || in.Right || in.Fire || in.Confirm
}

// Outcome summarises a finished encounter
type Outcome struct {
	Victory          bool    `json:"victory"`
	Score            int     `json:"score"`
	Lives            int     `json:"lives"`
	MaxLives         int     `json:"max_lives"`
	QuestionsAsked   int     `json:"questions_asked"`
	QuestionsCorrect int     `json:"questions_correct"`
	SkillTriggered   bool    `json:"skill_triggered"`
	Rage             bool    `json:"rage"`
	Duration         float64 `json:"duration"`
}

// Event kinds reported through OnEvent
const (
	EventEncounterStart = "encounter_start"
	EventWaveCleared    = "wave_cleared"
	EventBossIntro      = "boss_intro"
	EventPhaseChange    = "phase_change"
	EventRage           = "rage"
	EventSkill          = "skill"
	EventQuiz           = "quiz"
	EventPowerUp        = "power_up"
	EventBossDefeated   = "boss_defeated"
	EventPlayerDefeated = "player_defeated"
)

// Encounter drives one run: the enemy waves, the boss intro and the boss fight.
// Everything except the score is owned by the goroutine calling Tick.
type Encounter struct {
	State State

	clock    Clock
	dt       float64
	pause    PauseTracker
	prevKey  bool // pause key held on the previous tick
	drain    Cooldown
	tuning   Tuning
	rng      *rand.Rand
	quiz     QuizChallenge
	renderer Renderer

	Pool       *ProjectilePool
	Boss       *BossController
	Player     *Player
	Wave       *Wave
	Barricades []Barricade
	PowerUps   *PowerUps

	QuestionsCorrect int
	lastPhase        Phase

	scoreMu sync.Mutex
	score   int

	// OnEvent and OnOutcome are called from the ticking goroutine
	OnEvent   func(kind, detail string)
	OnOutcome func(Outcome)
}

// EncounterDeps are the collaborators an encounter calls out to
type EncounterDeps struct {
	Quiz     QuizChallenge
	Skill    SkillChallenge
	Renderer Renderer
	Rand     *rand.Rand
}

// NewEncounter starts at the first enemy wave
func NewEncounter(tuning Tuning, deps EncounterDeps) *Encounter {
	rng := deps.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	e := &Encounter{
		State:      StateWaveActive,
		dt:         1.0 / TickRate,
		tuning:     tuning,
		rng:        rng,
		quiz:       deps.Quiz,
		renderer:   deps.Renderer,
		Pool:       NewProjectilePool(ScreenWidth, ScreenHeight),
		Boss:       NewBossController(tuning.Boss, ScreenWidth, ScreenHeight, rng, deps.Skill),
		Player:     NewPlayer(ScreenWidth, ScreenHeight, tuning.Player.Lives),
		Wave:       NewWave(0, tuning.Waves),
		Barricades: NewBarricades(ScreenWidth, ScreenHeight),
		PowerUps:   NewPowerUps(tuning.PowerUps),
		score:      tuning.Score.Start,
		lastPhase:  Phase1,
	}
	e.drain.Trigger(0)
	if tuning.Waves.Count == 0 {
		e.State = StateBossIntro
		e.Wave.Enemies = e.Wave.Enemies[:0]
	}
	return e
}

// Now returns the encounter's session time
func (e *Encounter) Now() float64 {
	return e.clock.Now()
}

// Paused reports whether the encounter is paused
func (e *Encounter) Paused() bool {
	return e.pause.Paused
}

// Score returns the current score
func (e *Encounter) Score() int {
	return e.ScoreSnapshot()
}

// ScoreSnapshot reads the score under its lock; safe from any goroutine
func (e *Encounter) ScoreSnapshot() int {
	e.scoreMu.Lock()
	defer e.scoreMu.Unlock()
	return e.score
}

func (e *Encounter) adjustScore(delta int) {
	e.scoreMu.Lock()
	e.score = clampNonNegative(e.score + delta)
	e.scoreMu.Unlock()
}

func (e *Encounter) setScore(v int) {
	e.scoreMu.Lock()
	e.score = clampNonNegative(v)
	e.scoreMu.Unlock()
}

// QuestionsAsked returns how many quiz questions were actually put to the player
func (e *Encounter) QuestionsAsked() int {
	if lq, ok := e.quiz.(*LimitedQuiz); ok {
		return lq.Asked
	}
	return 0
}

func (e *Encounter) emit(kind, detail string) {
	if e.OnEvent != nil {
		e.OnEvent(kind, detail)
	}
}

// Tick advances the encounter by one fixed step. It blocks while a quiz or
// skill challenge is open. A cancelled ctx aborts before any state changes,
// or after the challenge returns with the tick's pools fully compacted.
func (e *Encounter) Tick(ctx context.Context, in Input) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if e.State.Terminal() {
		return ErrEncounterOver
	}
	e.clock.Advance(e.dt)
	now := e.clock.Now()

	if in.Pause && !e.prevKey {
		e.togglePause(now)
	}
	e.prevKey = in.Pause
	if e.pause.Paused {
		e.render()
		return nil
	}

	if e.State == StateBossIntro {
		if in.any() {
			e.startBoss(now)
		}
		e.render()
		return nil
	}

	e.updatePlayer(now, in)
	e.drainScore(now)

	landed := false
	switch e.State {
	case StateWaveActive:
		landed = e.Wave.Update(e.dt, e.rng, e.Pool, ScreenWidth, ScreenHeight)
	case StateBossActive:
		if err := e.updateBoss(ctx, now); err != nil {
			return err
		}
	}

	e.Pool.Advance(e.dt)
	e.Pool.Cull()
	e.Pool.ResolveBarricades(e.Barricades)

	switch e.State {
	case StateWaveActive:
		var destroyed []Enemy
		e.Wave.Enemies, destroyed = e.Pool.ResolvePlayerHits(e.Wave.Enemies)
		for _, en := range destroyed {
			e.PowerUps.MaybeDrop(e.rng, en)
		}
		if e.Wave.Cleared() {
			e.advanceWave()
		}
	case StateBossActive:
		e.Pool.ResolveBossHit(e.Boss)
		if e.Boss.Defeated() {
			e.emit(EventBossDefeated, "")
			e.finish(StateBossDefeated)
			e.render()
			return nil
		}
	}

	hit := e.Pool.ResolvePlayerHitByEnemy(e.Player)
	if e.Pool.ResolvePlayerHitByBoss(e.Player) {
		hit = true
	}
	if hit {
		if err := e.handleHit(ctx); err != nil {
			return err
		}
	}
	if landed && !e.State.Terminal() {
		e.emit(EventPlayerDefeated, "landed")
		e.finish(StatePlayerDefeated)
	}
	e.render()
	return nil
}

func (e *Encounter) togglePause(now float64) {
	if !e.pause.Paused {
		e.pause.Pause(now)
		return
	}
	d := e.pause.Resume(now)
	e.Boss.Shift(d)
	e.Player.Shift(d)
	e.PowerUps.Shift(d)
	e.drain.Shift(d)
}

func (e *Encounter) updatePlayer(now float64, in Input) {
	dir := 0.0
	if in.Left {
		dir--
	}
	if in.Right {
		dir++
	}
	if dir != 0 {
		e.Player.Move(dir, e.tuning.Player.Speed, e.dt, ScreenWidth)
	}
	if in.Fire && e.Player.CanFire(now, e.tuning.Player.FireInterval) {
		x, y := e.Player.Muzzle()
		e.Pool.SpawnPlayerShot(x, y, e.PowerUps.TripleShotActive())
		e.Player.FireCD.Trigger(now)
	}
	for _, k := range e.PowerUps.Update(now, e.dt, ScreenHeight, e.Player) {
		e.emit(EventPowerUp, k.String())
	}
	e.Player.UpdateTimers(now)
}

func (e *Encounter) drainScore(now float64) {
	if e.drain.Ready(now, ScoreDrainEvery) {
		e.adjustScore(-e.tuning.Score.DrainPerSecond)
		e.drain.Trigger(now)
	}
}

func (e *Encounter) updateBoss(ctx context.Context, now float64) error {
	triggered, rage := e.Boss.MinigameTriggered, e.Boss.RageMode
	e.Boss.Update(ctx, now, e.dt, e.Player, e.Pool)
	if err := ctx.Err(); err != nil {
		return err
	}
	if !triggered && e.Boss.MinigameTriggered {
		if e.Boss.RageMode {
			e.emit(EventSkill, "failed")
		} else {
			e.emit(EventSkill, "passed")
		}
	}
	if !rage && e.Boss.RageMode {
		e.emit(EventRage, "")
	}
	if p := e.Boss.Phase(); p != e.lastPhase {
		e.lastPhase = p
		e.emit(EventPhaseChange, p.String())
	}
	return nil
}

func (e *Encounter) advanceWave() {
	e.emit(EventWaveCleared, strconv.Itoa(e.Wave.Level+1))
	e.Pool.Clear()
	next := e.Wave.Level + 1
	if next < e.tuning.Waves.Count {
		e.Wave = NewWave(next, e.tuning.Waves)
		return
	}
	e.State = StateBossIntro
	e.PowerUps.Clear()
	e.emit(EventBossIntro, "")
}

func (e *Encounter) startBoss(now float64) {
	e.Boss.SetFullHealth()
	e.Boss.SetEpoch(now)
	e.lastPhase = e.Boss.Phase()
	e.State = StateBossActive
}

// handleHit puts a question to the player. A wrong answer costs a life and points.
func (e *Encounter) handleHit(ctx context.Context) error {
	correct := false
	if e.quiz != nil {
		correct = e.quiz.Ask(ctx)
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	e.Pool.Clear()
	if correct {
		e.QuestionsCorrect++
		e.emit(EventQuiz, "correct")
		return nil
	}
	e.emit(EventQuiz, "wrong")
	e.adjustScore(-e.tuning.Score.WrongAnswerPenalty)
	if e.Player.LoseLife() {
		e.emit(EventPlayerDefeated, "lives")
		e.finish(StatePlayerDefeated)
	}
	return nil
}

func (e *Encounter) finish(s State) {
	e.State = s
	if e.OnOutcome != nil {
		e.OnOutcome(e.Outcome())
	}
}

// Outcome summarises the encounter so far
func (e *Encounter) Outcome() Outcome {
	return Outcome{
		Victory:          e.State == StateBossDefeated,
		Score:            e.ScoreSnapshot(),
		Lives:            e.Player.Lives,
		MaxLives:         e.tuning.Player.Lives,
		QuestionsAsked:   e.QuestionsAsked(),
		QuestionsCorrect: e.QuestionsCorrect,
		SkillTriggered:   e.Boss.MinigameTriggered,
		Rage:             e.Boss.RageMode,
		Duration:         e.clock.Now(),
	}
}

func (e *Encounter) render() {
	if e.renderer != nil {
		e.renderer.Draw(e.Frame())
	}
}
