package main

import "math/rand"

const PowerUpRadius = 10.0

// PowerUpKind identifies what a pickup grants
type PowerUpKind uint8

const (
	PowerUpShield PowerUpKind = iota
	PowerUpTripleShot
	powerUpKindCount
)

func (k PowerUpKind) String() string {
	switch k {
	case PowerUpShield:
		return "shield"
	case PowerUpTripleShot:
		return "triple_shot"
	}
	return "unknown"
}

// PowerUp is a pickup falling from a destroyed enemy
type PowerUp struct {
	X    float64     `msgpack:"x"`
	Y    float64     `msgpack:"y"`
	Kind PowerUpKind `msgpack:"k"`
}

// Rect is the pickup's bounding box, centred on its position
func (p PowerUp) Rect() Rect {
	return Rect{X: p.X - PowerUpRadius, Y: p.Y - PowerUpRadius, W: 2 * PowerUpRadius, H: 2 * PowerUpRadius}
}

// ToState converts to protocol state
func (p PowerUp) ToState() PowerUpState {
	return PowerUpState{X: round1(p.X), Y: round1(p.Y), K: uint8(p.Kind)}
}

// PowerUps tracks falling pickups and the active effects
type PowerUps struct {
	Falling    []PowerUp `msgpack:"f"`
	TripleShot Expiry    `msgpack:"t"`
	Shield     Expiry    `msgpack:"s"`

	tuning PowerUpTuning
}

// NewPowerUps creates an empty tracker
func NewPowerUps(tuning PowerUpTuning) *PowerUps {
	return &PowerUps{tuning: tuning}
}

// MaybeDrop rolls the drop chance for a destroyed enemy
func (u *PowerUps) MaybeDrop(rng *rand.Rand, e Enemy) {
	if rng.Float64() >= u.tuning.DropChance {
		return
	}
	u.Falling = append(u.Falling, PowerUp{
		X:    e.X + EnemySize/2,
		Y:    e.Y + EnemySize/2,
		Kind: PowerUpKind(rng.Intn(int(powerUpKindCount))),
	})
}

// Update moves pickups down, applies any whose box touches the ship and expires effects.
// It returns the kinds collected this tick.
func (u *PowerUps) Update(now, dt, height float64, player *Player) []PowerUpKind {
	var collected []PowerUpKind
	box := player.Rect()
	kept := u.Falling[:0]
	for _, p := range u.Falling {
		p.Y += u.tuning.FallSpeed * dt * TickRate
		if p.Rect().Overlaps(box) {
			u.apply(now, p.Kind, player)
			collected = append(collected, p.Kind)
			continue
		}
		if p.Y-PowerUpRadius > height {
			continue
		}
		kept = append(kept, p)
	}
	u.Falling = kept

	if u.TripleShot.Expired(now) {
		u.TripleShot.Clear()
	}
	if u.Shield.Expired(now) {
		u.Shield.Clear()
	}
	return collected
}

func (u *PowerUps) apply(now float64, kind PowerUpKind, player *Player) {
	switch kind {
	case PowerUpShield:
		u.Shield.Set(now, u.tuning.ShieldDuration)
		player.SetInvulnerable(now, u.tuning.ShieldDuration)
	case PowerUpTripleShot:
		u.TripleShot.Set(now, u.tuning.TripleShotDuration)
	}
}

// TripleShotActive reports whether the player fires three shots
func (u *PowerUps) TripleShotActive() bool {
	return u.TripleShot.Active
}

// Clear drops every pickup and active effect
func (u *PowerUps) Clear() {
	u.Falling = u.Falling[:0]
	u.TripleShot.Clear()
	u.Shield.Clear()
}

// Shift moves effect expiries forward after a pause
func (u *PowerUps) Shift(d float64) {
	u.TripleShot.Shift(d)
	u.Shield.Shift(d)
}
