package main

import (
	"context"
	"math/rand"
	"strconv"
)

const (
	BossW      = 150.0
	BossH      = 150.0
	BossStartY = 100.0
	BossMargin = 50.0 // horizontal bounce margin
)

// Phase is one of the boss's five behaviour modes
type Phase int

const (
	Phase1 Phase = iota + 1
	Phase2
	Phase3
	Phase4
	Phase5
)

const PhaseCount = 5

func (p Phase) String() string {
	return "phase" + strconv.Itoa(int(p))
}

// PhaseFor maps remaining health to a phase using fixed percentage thresholds
func PhaseFor(health, maxHealth int) Phase {
	if maxHealth <= 0 {
		return Phase5
	}
	p := float64(health) * 100 / float64(maxHealth)
	switch {
	case p > 80:
		return Phase1
	case p > 60:
		return Phase2
	case p > 40:
		return Phase3
	case p > 20:
		return Phase4
	}
	return Phase5
}

// BossController drives the boss through its health-driven phases
type BossController struct {
	X, Y      float64
	W, H      float64
	Health    int
	MaxHealth int
	Dir       float64 // horizontal bounce direction, +1 or -1

	RageMode          bool
	MinigameTriggered bool

	WanderX, WanderY float64
	WanderAt         Cooldown

	speed     float64
	intervals [PhaseCount]float64
	cooldowns [PhaseCount]Cooldown
	epoch     float64 // session time the movement patterns count from
	reported  bool    // defeat already reported

	tuning        BossTuning
	width, height float64
	behaviors     map[Phase]PhaseBehavior
	rng           *rand.Rand
	skill         SkillChallenge
}

// NewBossController creates a boss at full health, centred near the top of the screen
func NewBossController(tuning BossTuning, width, height float64, rng *rand.Rand, skill SkillChallenge) *BossController {
	c := &BossController{
		W:         BossW,
		H:         BossH,
		tuning:    tuning,
		width:     width,
		height:    height,
		behaviors: DefaultPhaseBehaviors(),
		rng:       rng,
		skill:     skill,
	}
	c.Reset()
	return c
}

// Reset restores every field to its initial value, clearing rage and the minigame flag
func (c *BossController) Reset() {
	c.X = (c.width - c.W) / 2
	c.Y = BossStartY
	c.MaxHealth = c.tuning.MaxHealth
	c.Health = c.MaxHealth
	c.Dir = 1
	c.RageMode = false
	c.MinigameTriggered = false
	c.WanderX, c.WanderY = c.X, c.Y
	c.WanderAt = Cooldown{}
	c.speed = c.tuning.Speed
	c.intervals = c.tuning.ShotIntervals
	c.cooldowns = [PhaseCount]Cooldown{}
	c.epoch = 0
	c.reported = false
}

// SetPhaseBehavior replaces the movement and attack strategies of one phase
func (c *BossController) SetPhaseBehavior(phase Phase, b PhaseBehavior) {
	c.behaviors[phase] = b
}

// SetEpoch sets the session time that periodic movement counts from
func (c *BossController) SetEpoch(now float64) {
	c.epoch = now
}

// Phase is recomputed from health on every call
func (c *BossController) Phase() Phase {
	return PhaseFor(c.Health, c.MaxHealth)
}

// Speed returns the current movement speed in pixels/tick
func (c *BossController) Speed() float64 {
	return c.speed
}

// Interval returns the current shot interval for a phase
func (c *BossController) Interval(phase Phase) float64 {
	return c.intervals[phase-1]
}

// CooldownRemaining returns how long until the given phase may fire again
func (c *BossController) CooldownRemaining(phase Phase, now float64) float64 {
	return c.cooldowns[phase-1].Remaining(now, c.intervals[phase-1])
}

// Rect returns the boss bounding box
func (c *BossController) Rect() Rect {
	return Rect{X: c.X, Y: c.Y, W: c.W, H: c.H}
}

// TakeDamage reduces health, never below zero
func (c *BossController) TakeDamage(dmg int) {
	c.Health = clampNonNegative(c.Health - dmg)
}

// SetFullHealth restores health without touching any other state
func (c *BossController) SetFullHealth() {
	c.Health = c.MaxHealth
	c.reported = false
}

// EnableRageMode speeds the boss up and halves every shot interval.
// Calling it again once enabled does nothing.
func (c *BossController) EnableRageMode() {
	if c.RageMode {
		return
	}
	c.RageMode = true
	c.speed *= c.tuning.RageSpeedMul
	for i := range c.intervals {
		c.intervals[i] *= c.tuning.RageIntervalMul
	}
}

// Defeated returns true exactly once, on the first call after health reaches zero
func (c *BossController) Defeated() bool {
	if c.Health > 0 || c.reported {
		return false
	}
	c.reported = true
	return true
}

// Shift moves every boss timer forward after a pause
func (c *BossController) Shift(d float64) {
	for i := range c.cooldowns {
		c.cooldowns[i].Shift(d)
	}
	c.WanderAt.Shift(d)
	c.epoch += d
}

// Update runs one tick: the one-time skill challenge, then movement and attack
// for the phase the current health selects. A defeated boss neither moves nor fires.
func (c *BossController) Update(ctx context.Context, now, dt float64, player *Player, pool *ProjectilePool) {
	if c.Health <= 0 {
		return
	}

	if !c.MinigameTriggered && c.Health <= c.MaxHealth/2 {
		c.MinigameTriggered = true
		if c.skill == nil {
			return
		}
		passed := c.skill.Run(ctx)
		if ctx.Err() != nil {
			return
		}
		if !passed {
			c.EnableRageMode()
		}
		return
	}

	phase := c.Phase()
	b, ok := c.behaviors[phase]
	if !ok {
		return
	}
	bc := &BossContext{
		Now:     now,
		Elapsed: now - c.epoch,
		Scale:   dt * TickRate,
		Player:  player.Rect(),
		Width:   c.width,
		Height:  c.height,
		Rand:    c.rng,
		Pool:    pool,
	}
	if b.Move != nil {
		b.Move.Move(c, bc)
	}
	cd := &c.cooldowns[phase-1]
	if b.Attack != nil && cd.Ready(now, c.intervals[phase-1]) {
		b.Attack.Fire(c, bc)
		cd.Trigger(now)
	}
}

// minX and maxX bound horizontal movement
func (c *BossController) minX() float64 { return BossMargin }
func (c *BossController) maxX() float64 { return c.width - c.W - BossMargin }

// muzzle returns the centre of the boss's bottom edge
func (c *BossController) muzzle() (float64, float64) {
	return c.X + c.W/2, c.Y + c.H
}

// ToState converts to protocol state
func (c *BossController) ToState() BossState {
	return BossState{
		X:      round1(c.X),
		Y:      round1(c.Y),
		Health: c.Health,
		Max:    c.MaxHealth,
		Phase:  int(c.Phase()),
		Rage:   c.RageMode,
	}
}
