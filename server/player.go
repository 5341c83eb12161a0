package main

const (
	PlayerW       = 50.0
	PlayerH       = 50.0
	PlayerBottomY = 10.0 // gap between ship and bottom edge
)

// Player represents the player's ship
type Player struct {
	X, Y  float64
	W, H  float64
	Lives int

	Invulnerable bool
	InvulnUntil  Expiry
	FireCD       Cooldown
}

// NewPlayer places a ship centred at the bottom of a width x height screen
func NewPlayer(width, height float64, lives int) *Player {
	return &Player{
		X:     width/2 - PlayerW/2,
		Y:     height - PlayerH - PlayerBottomY,
		W:     PlayerW,
		H:     PlayerH,
		Lives: lives,
	}
}

// Rect returns the player's bounding box
func (p *Player) Rect() Rect {
	return Rect{X: p.X, Y: p.Y, W: p.W, H: p.H}
}

// Move shifts the ship horizontally by dir*speed per tick, kept on screen
func (p *Player) Move(dir, speed, dt, width float64) {
	p.X = Clamp(p.X+dir*speed*dt*TickRate, 0, width-p.W)
}

// CanFire returns true if the fire cooldown has elapsed
func (p *Player) CanFire(now, interval float64) bool {
	return p.FireCD.Ready(now, interval)
}

// Muzzle returns the spawn point for the player's shots
func (p *Player) Muzzle() (float64, float64) {
	return p.X + p.W/2, p.Y
}

// SetInvulnerable grants invulnerability for dur seconds, extending any active grant
func (p *Player) SetInvulnerable(now, dur float64) {
	if p.InvulnUntil.Active && p.InvulnUntil.At > now+dur {
		return
	}
	p.Invulnerable = true
	p.InvulnUntil.Set(now, dur)
}

// UpdateTimers clears invulnerability once its expiry is reached
func (p *Player) UpdateTimers(now float64) {
	if p.InvulnUntil.Expired(now) {
		p.Invulnerable = false
		p.InvulnUntil.Clear()
	}
}

// LoseLife removes one life and returns true if none remain
func (p *Player) LoseLife() bool {
	p.Lives = clampNonNegative(p.Lives - 1)
	return p.Lives == 0
}

// Shift moves the player's timers forward after a pause
func (p *Player) Shift(d float64) {
	p.InvulnUntil.Shift(d)
	p.FireCD.Shift(d)
}

// ToState converts to protocol state
func (p *Player) ToState() PlayerState {
	return PlayerState{
		X:     round1(p.X),
		Y:     round1(p.Y),
		Lives: p.Lives,
		Inv:   p.Invulnerable,
	}
}
