package main

import (
	"math"
	"math/rand"
)

const (
	OscillationCenterY = 100.0
	OscillationAmp     = 20.0
	TrackingGain       = 0.05 // fraction of the offset closed per tick
	LissajousPeriod    = 3.0  // seconds
	LissajousTopY      = 50.0
	LissajousRangeY    = 100.0
	WanderInterval     = 2.0 // seconds between new targets
	WanderMinY         = 50.0
	AimDivisor         = 50.0
	AimJitter          = 0.05
	VolatileSprite     = "virus"
)

// BossContext is what a pattern may read or touch during one tick
type BossContext struct {
	Now     float64 // session time
	Elapsed float64 // seconds since the boss's movement epoch
	Scale   float64 // dt in 60 Hz ticks
	Player  Rect
	Width   float64
	Height  float64
	Rand    *rand.Rand
	Pool    *ProjectilePool
}

// MovePattern positions the boss for one tick
type MovePattern interface {
	Move(b *BossController, ctx *BossContext)
}

// AttackPattern spawns the boss's shots when its phase cooldown is ready
type AttackPattern interface {
	Fire(b *BossController, ctx *BossContext)
}

// PhaseBehavior pairs a movement and an attack strategy
type PhaseBehavior struct {
	Move   MovePattern
	Attack AttackPattern
}

// DefaultPhaseBehaviors returns the standard strategy table
func DefaultPhaseBehaviors() map[Phase]PhaseBehavior {
	return map[Phase]PhaseBehavior{
		Phase1: {Move: BounceMove{}, Attack: StraightAttack{}},
		Phase2: {Move: BounceMove{Oscillate: true}, Attack: SpreadAttack{}},
		Phase3: {Move: TrackMove{}, Attack: AimedAttack{}},
		Phase4: {Move: LissajousMove{}, Attack: RadialAttack{}},
		Phase5: {Move: WanderMove{}, Attack: VolatileAttack{}},
	}
}

func oscillate(b *BossController, ctx *BossContext) {
	b.Y = OscillationCenterY + OscillationAmp*math.Sin(ctx.Elapsed)
}

// BounceMove sweeps left and right between the margins
type BounceMove struct {
	Oscillate bool
}

func (m BounceMove) Move(b *BossController, ctx *BossContext) {
	step := b.Speed() * ctx.Scale
	b.X += b.Dir * step
	if b.X < b.minX() || b.X > b.maxX() {
		b.Dir = -b.Dir
		b.X += b.Dir * step
	}
	if m.Oscillate {
		oscillate(b, ctx)
	}
}

// TrackMove eases toward the player's x with a speed cap, while oscillating
type TrackMove struct{}

func (TrackMove) Move(b *BossController, ctx *BossContext) {
	target := ctx.Player.X + ctx.Player.W/2 - b.W/2
	dx := (target - b.X) * TrackingGain
	dx = Clamp(dx, -b.Speed(), b.Speed())
	b.X += dx * ctx.Scale
	oscillate(b, ctx)
}

// LissajousMove follows a periodic sine path across the top of the screen
type LissajousMove struct{}

func (LissajousMove) Move(b *BossController, ctx *BossContext) {
	a := 2 * math.Pi * ctx.Elapsed / LissajousPeriod
	b.X = b.minX() + (b.maxX()-b.minX())*(math.Sin(a)+1)/2
	b.Y = LissajousTopY + LissajousRangeY*((math.Sin(a+math.Pi/4)+1)/2)
}

// WanderMove picks a random target every two seconds and heads to it at constant speed
type WanderMove struct{}

func (WanderMove) Move(b *BossController, ctx *BossContext) {
	if b.WanderAt.Ready(ctx.Now, WanderInterval) {
		b.WanderX = b.minX() + ctx.Rand.Float64()*(b.maxX()-b.minX())
		b.WanderY = WanderMinY + ctx.Rand.Float64()*(ctx.Height/3-WanderMinY)
		b.WanderAt.Trigger(ctx.Now)
	}
	dx := b.WanderX - b.X
	dy := b.WanderY - b.Y
	dist := math.Hypot(dx, dy)
	step := b.Speed() * ctx.Scale
	if dist <= step {
		b.X, b.Y = b.WanderX, b.WanderY
		return
	}
	b.X += dx / dist * step
	b.Y += dy / dist * step
}

// StraightAttack fires one shot straight down
type StraightAttack struct{}

func (StraightAttack) Fire(b *BossController, ctx *BossContext) {
	x, y := b.muzzle()
	ctx.Pool.SpawnBossShot(x, y, 0, BossShotSpeed)
}

// SpreadAttack fires at a random angle within 90 degrees of vertical
type SpreadAttack struct{}

func (SpreadAttack) Fire(b *BossController, ctx *BossContext) {
	rad := degToRad(-90 + ctx.Rand.Float64()*180)
	x, y := b.muzzle()
	ctx.Pool.SpawnBossShot(x, y, math.Sin(rad)*BossShotSpeed, math.Cos(rad)*BossShotSpeed)
}

// AimedAttack fires toward the player's centre with a little inaccuracy
type AimedAttack struct{}

func (AimedAttack) Fire(b *BossController, ctx *BossContext) {
	px, py := ctx.Player.Center()
	bx, by := b.Rect().Center()
	dx := (px - bx) / AimDivisor
	dy := (py - by) / AimDivisor
	dx += dx * (ctx.Rand.Float64()*2 - 1) * AimJitter
	dy += dy * (ctx.Rand.Float64()*2 - 1) * AimJitter
	x, y := b.muzzle()
	ctx.Pool.SpawnBossShot(x, y, dx, dy)
}

// RadialAttack fires in a random whole-degree direction
type RadialAttack struct{}

func (RadialAttack) Fire(b *BossController, ctx *BossContext) {
	rad := degToRad(float64(ctx.Rand.Intn(361)))
	x, y := b.muzzle()
	ctx.Pool.SpawnBossShot(x, y, math.Cos(rad)*BossShotSpeed, math.Sin(rad)*BossShotSpeed)
}

// VolatileAttack drops a shot that bursts at the explosion altitude
type VolatileAttack struct{}

func (VolatileAttack) Fire(b *BossController, ctx *BossContext) {
	x, y := b.muzzle()
	ctx.Pool.SpawnBossVolatile(x, y, 0, BossShotSpeed, VolatilePayload{Sprite: VolatileSprite})
}
