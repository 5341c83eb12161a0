package main

import (
	"context"
	"errors"
	"log"
	"math/rand"
	"sync"
	"sync/atomic"
	"time"

	"github.com/vmihailenco/msgpack/v5"
)

const (
	TickRate       = 60 // encounter ticks per second
	BroadcastRate  = 30 // frames per second sent to clients
	TickDuration   = time.Second / TickRate
	BroadcastEvery = TickRate / BroadcastRate
	PulseTicks     = 4 // ticks a pulsed key stays down
)

const maxClientsPerSession = 8

// Broadcaster interface for sending messages to clients
type Broadcaster interface {
	SendJSON(msg interface{})
	SendBinary(data []byte)
}

// GameDeps are the shared services a session uses
type GameDeps struct {
	Tuning    Tuning
	Bank      *QuestionBank
	DB        *DB
	Analytics *Analytics
	Seed      int64
}

type loopRequest func()

// Game runs one encounter on its own goroutine and fans frames out to its clients.
// The first client to join pilots the ship; later ones spectate.
type Game struct {
	sessionID string
	deps      GameDeps
	rng       *rand.Rand
	quiz      *LimitedQuiz
	asked     map[int]bool

	encMu sync.RWMutex
	enc   *Encounter // replaced only on the loop goroutine

	mu       sync.Mutex
	clients  map[string]Broadcaster
	pilotID  string
	pilot    string // display name
	authID   int64
	held     Input
	pulse    Input
	pulseFor int

	quizAnswers  chan int
	skillAnswers chan string
	requests     chan loopRequest

	frames uint64
	state  atomic.Value // encounter state name, readable off the loop
	ctx    context.Context
	cancel context.CancelFunc
}

// NewGame creates a session runner with a fresh encounter
func NewGame(sessionID string, deps GameDeps) *Game {
	seed := deps.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	ctx, cancel := context.WithCancel(context.Background())
	g := &Game{
		sessionID:    sessionID,
		deps:         deps,
		rng:          rand.New(rand.NewSource(seed)),
		asked:        make(map[int]bool),
		clients:      make(map[string]Broadcaster),
		quizAnswers:  make(chan int, 1),
		skillAnswers: make(chan string, 1),
		requests:     make(chan loopRequest, 8),
		ctx:          ctx,
		cancel:       cancel,
	}
	g.quiz = &LimitedQuiz{Inner: QuizFunc(g.askRemote), Limit: deps.Tuning.Quiz.Limit}
	g.setEncounter(NewEncounter(deps.Tuning, g.encounterDeps()))
	return g
}

func (g *Game) encounterDeps() EncounterDeps {
	return EncounterDeps{
		Quiz:     g.quiz,
		Skill:    SkillFunc(g.runRemoteSkill),
		Renderer: g,
		Rand:     g.rng,
	}
}

func (g *Game) setEncounter(e *Encounter) {
	e.OnEvent = g.onEvent
	e.OnOutcome = g.onOutcome
	g.encMu.Lock()
	g.enc = e
	g.encMu.Unlock()
	g.state.Store(e.State.String())
}

// StateName returns the encounter state as last seen by the loop
func (g *Game) StateName() string {
	s, _ := g.state.Load().(string)
	return s
}

// Stopped reports whether Stop has been called
func (g *Game) Stopped() bool {
	return g.ctx.Err() != nil
}

// Encounter returns the current encounter. Only the score may be read off the loop goroutine.
func (g *Game) Encounter() *Encounter {
	g.encMu.RLock()
	defer g.encMu.RUnlock()
	return g.enc
}

// Run starts the tick loop and the score mirror; it returns when the game stops
func (g *Game) Run() {
	mirror := &ScoreMirror{
		Read:    func() int { return g.Encounter().ScoreSnapshot() },
		Publish: func(v int) { g.broadcast(Envelope{T: MsgScore, Data: ScoreMsg{Score: v}}) },
	}
	go mirror.Run(g.ctx)

	g.onEvent(EventEncounterStart, "")

	ticker := time.NewTicker(TickDuration)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			g.update()
		case req := <-g.requests:
			req()
		case <-g.ctx.Done():
			return
		}
	}
}

// Stop terminates the loop and aborts any open challenge
func (g *Game) Stop() {
	g.cancel()
}

func (g *Game) update() {
	err := g.enc.Tick(g.ctx, g.takeInput())
	g.state.Store(g.enc.State.String())
	switch {
	case err == nil, errors.Is(err, ErrEncounterOver):
	case errors.Is(err, context.Canceled):
	default:
		log.Printf("game %s: tick error: %v", g.sessionID, err)
	}
}

// takeInput merges held keys with any pulse still running
func (g *Game) takeInput() Input {
	g.mu.Lock()
	defer g.mu.Unlock()
	in := g.held
	if g.pulseFor > 0 {
		in.Left = in.Left || g.pulse.Left
		in.Right = in.Right || g.pulse.Right
		in.Fire = in.Fire || g.pulse.Fire
		in.Confirm = in.Confirm || g.pulse.Confirm
		in.Pause = in.Pause || g.pulse.Pause
		g.pulseFor--
	}
	return in
}

// Draw implements Renderer; frames go out at BroadcastRate
func (g *Game) Draw(f Frame) {
	g.frames++
	if g.frames%BroadcastEvery != 0 {
		return
	}
	data, err := msgpack.Marshal(&f)
	if err != nil {
		log.Printf("game %s: frame encode error: %v", g.sessionID, err)
		return
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	for _, c := range g.clients {
		c.SendBinary(data)
	}
}

// AddClient attaches a client. It returns the role, or "" if the session is full.
func (g *Game) AddClient(id, name string, authID int64, c Broadcaster) string {
	g.mu.Lock()
	defer g.mu.Unlock()
	if len(g.clients) >= maxClientsPerSession {
		return ""
	}
	g.clients[id] = c
	if g.pilotID == "" {
		g.pilotID = id
		g.pilot = name
		g.authID = authID
		return RolePilot
	}
	return RoleSpectator
}

// SetPilotAuth links the pilot to an account after a late login
func (g *Game) SetPilotAuth(id string, authID int64, name string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if id == g.pilotID {
		g.authID = authID
		g.pilot = name
	}
}

// RemoveClient detaches a client. A departing pilot hands control to nobody.
func (g *Game) RemoveClient(id string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.clients, id)
	if id == g.pilotID {
		g.pilotID = ""
		g.held = Input{}
		g.pulseFor = 0
	}
}

// ClientCount returns the number of attached clients
func (g *Game) ClientCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.clients)
}

// IsPilot reports whether the client controls the ship
func (g *Game) IsPilot(id string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return id != "" && id == g.pilotID
}

// HandleInput records the pilot's key state
func (g *Game) HandleInput(id string, msg InputMsg) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if id != g.pilotID {
		return
	}
	if msg.Pulse {
		g.pulse = msg.Input
		g.pulseFor = PulseTicks
		return
	}
	g.held = msg.Input
}

// HandleQuizAnswer passes the pilot's answer to a waiting question
func (g *Game) HandleQuizAnswer(id string, index int) {
	if !g.IsPilot(id) {
		return
	}
	select {
	case g.quizAnswers <- index:
	default:
	}
}

// HandleSkillAnswer passes the pilot's word to a waiting hacking challenge
func (g *Game) HandleSkillAnswer(id, word string) {
	if !g.IsPilot(id) {
		return
	}
	select {
	case g.skillAnswers <- word:
	default:
	}
}

// HandleSave snapshots the encounter on the loop goroutine and sends it to the pilot
func (g *Game) HandleSave(id string, slot int, c Broadcaster) {
	if !g.IsPilot(id) {
		return
	}
	g.enqueue(func() {
		data, err := EncodeSnapshot(g.enc.Snapshot())
		if err != nil {
			log.Printf("game %s: save error: %v", g.sessionID, err)
			c.SendJSON(Envelope{T: MsgError, Data: ErrorMsg{Msg: "save failed"}})
			return
		}
		c.SendJSON(Envelope{T: MsgSaved, Data: SavedMsg{Slot: slot, Blob: data}})
	}, c)
}

// HandleLoad replaces the encounter with a saved one
func (g *Game) HandleLoad(id string, blob []byte, c Broadcaster) {
	if !g.IsPilot(id) {
		return
	}
	g.enqueue(func() {
		snap, err := DecodeSnapshot(blob)
		if err != nil {
			c.SendJSON(Envelope{T: MsgError, Data: ErrorMsg{Msg: "invalid save"}})
			return
		}
		e, err := RestoreEncounter(snap, g.deps.Tuning, g.encounterDeps())
		if err != nil {
			c.SendJSON(Envelope{T: MsgError, Data: ErrorMsg{Msg: err.Error()}})
			return
		}
		g.setEncounter(e)
		c.SendJSON(Envelope{T: MsgLoaded, Data: map[string]string{"state": e.State.String()}})
	}, c)
}

func (g *Game) enqueue(req loopRequest, c Broadcaster) {
	select {
	case g.requests <- req:
	default:
		c.SendJSON(Envelope{T: MsgError, Data: ErrorMsg{Msg: "session busy"}})
	}
}

func (g *Game) sendPilot(msg Envelope) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if c, ok := g.clients[g.pilotID]; ok {
		c.SendJSON(msg)
	}
}

func (g *Game) broadcast(msg Envelope) {
	g.mu.Lock()
	defer g.mu.Unlock()
	for _, c := range g.clients {
		c.SendJSON(msg)
	}
}

// askRemote puts one question from the bank to the pilot. It runs on the loop
// goroutine, so the encounter stays frozen until the answer or the time limit.
func (g *Game) askRemote(ctx context.Context) bool {
	if g.deps.Bank == nil {
		return false
	}
	idx := g.deps.Bank.Pick(g.rng, g.asked)
	if idx < 0 {
		return false
	}
	g.asked[idx] = true
	q := g.deps.Bank.Questions[idx]

	drainInts(g.quizAnswers)
	limit := g.deps.Tuning.Quiz.TimeLimit
	g.sendPilot(Envelope{T: MsgQuiz, Data: QuizMsg{Question: q.Text, Options: q.Options, TimeLimit: limit}})

	timer := time.NewTimer(seconds(limit))
	defer timer.Stop()
	select {
	case a := <-g.quizAnswers:
		ok := a == q.Answer
		g.sendPilot(Envelope{T: MsgQuizResult, Data: QuizResultMsg{Correct: ok, Answer: q.Answer}})
		return ok
	case <-timer.C:
		g.sendPilot(Envelope{T: MsgQuizResult, Data: QuizResultMsg{Answer: q.Answer, Timeout: true}})
		return false
	case <-ctx.Done():
		return false
	}
}

// runRemoteSkill shows the hacking grid to the pilot and waits for the hidden word
func (g *Game) runRemoteSkill(ctx context.Context) bool {
	p := NewHackingPuzzle(g.rng)
	drainStrings(g.skillAnswers)
	limit := g.deps.Tuning.Skill.TimeLimit
	g.sendPilot(Envelope{T: MsgSkill, Data: SkillMsg{Rows: p.Rows, TimeLimit: limit}})

	timer := time.NewTimer(seconds(limit))
	defer timer.Stop()
	select {
	case w := <-g.skillAnswers:
		ok := p.Check(w)
		g.sendPilot(Envelope{T: MsgSkillResult, Data: SkillResultMsg{Passed: ok, Word: p.Word}})
		return ok
	case <-timer.C:
		g.sendPilot(Envelope{T: MsgSkillResult, Data: SkillResultMsg{Word: p.Word, Timeout: true}})
		return false
	case <-ctx.Done():
		return false
	}
}

func (g *Game) onEvent(kind, detail string) {
	g.mu.Lock()
	authID := g.authID
	g.mu.Unlock()
	var data map[string]any
	if detail != "" {
		data = map[string]any{"detail": detail}
	}
	g.deps.Analytics.Track(kind, authID, g.sessionID, data)
	g.broadcast(Envelope{T: MsgEvent, Data: EventMsg{Kind: kind, Detail: detail}})
}

// onOutcome records the result and tells every client how the encounter ended
func (g *Game) onOutcome(o Outcome) {
	g.mu.Lock()
	authID, name := g.authID, g.pilot
	g.mu.Unlock()

	msg := OutcomeMsg{Outcome: o, Achievements: EarnedAchievements(o)}
	if db := g.deps.DB; db != nil && authID > 0 {
		if err := db.UpdateStatsAfterEncounter(authID, o); err != nil {
			log.Printf("game %s: stats update error: %v", g.sessionID, err)
		}
		for _, a := range CheckAchievements(db, authID, o) {
			g.deps.Analytics.Track(EvtAchievement, authID, g.sessionID, map[string]any{"id": a.ID})
		}
		if o.Victory {
			if err := db.SubmitScore(name, o.Score, authID); err != nil {
				log.Printf("game %s: score submit error: %v", g.sessionID, err)
			} else {
				msg.Submitted = true
				g.deps.Analytics.Track(EvtScoreSubmit, authID, g.sessionID, map[string]any{"score": o.Score})
			}
		}
	}
	g.broadcast(Envelope{T: MsgOutcome, Data: msg})
}

func seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}

func drainInts(ch chan int) {
	for {
		select {
		case <-ch:
		default:
			return
		}
	}
}

func drainStrings(ch chan string) {
	for {
		select {
		case <-ch:
		default:
			return
		}
	}
}
