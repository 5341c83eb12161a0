package main

// Renderer receives a frame after every tick. Draw must not block the tick.
type Renderer interface {
	Draw(Frame)
}

// RendererFunc adapts a function to Renderer
type RendererFunc func(Frame)

func (f RendererFunc) Draw(fr Frame) { f(fr) }

// Frame is everything a client needs to draw one tick
type Frame struct {
	Time        float64           `msgpack:"t"`
	State       string            `msgpack:"s"`
	Paused      bool              `msgpack:"pa,omitempty"`
	Score       int               `msgpack:"sc"`
	Wave        int               `msgpack:"w"` // 1-based wave number
	Player      PlayerState       `msgpack:"p"`
	Boss        *BossState        `msgpack:"b,omitempty"`
	Enemies     []EnemyState      `msgpack:"e"`
	Projectiles []ProjectileState `msgpack:"pr"`
	PowerUps    []PowerUpState    `msgpack:"pu"`
	Barricades  [][]Rect          `msgpack:"br"`
	TripleShot  float64           `msgpack:"ts,omitempty"` // seconds left
	Shield      float64           `msgpack:"sh,omitempty"`
}

// Frame builds the draw state for the current tick
func (e *Encounter) Frame() Frame {
	now := e.clock.Now()
	f := Frame{
		Time:        round1(now),
		State:       e.State.String(),
		Paused:      e.pause.Paused,
		Score:       e.ScoreSnapshot(),
		Wave:        e.Wave.Level + 1,
		Player:      e.Player.ToState(),
		Enemies:     make([]EnemyState, 0, len(e.Wave.Enemies)),
		Projectiles: make([]ProjectileState, 0, e.Pool.Len()),
		PowerUps:    make([]PowerUpState, 0, len(e.PowerUps.Falling)),
		Barricades:  make([][]Rect, 0, len(e.Barricades)),
		TripleShot:  round1(e.PowerUps.TripleShot.Remaining(now)),
		Shield:      round1(e.PowerUps.Shield.Remaining(now)),
	}
	if e.State != StateWaveActive {
		bs := e.Boss.ToState()
		f.Boss = &bs
	}
	for _, en := range e.Wave.Enemies {
		f.Enemies = append(f.Enemies, en.ToState())
	}
	for _, list := range [][]Projectile{e.Pool.Player, e.Pool.Enemy, e.Pool.Boss} {
		for i := range list {
			f.Projectiles = append(f.Projectiles, list[i].ToState())
		}
	}
	for _, p := range e.PowerUps.Falling {
		f.PowerUps = append(f.PowerUps, p.ToState())
	}
	for _, b := range e.Barricades {
		f.Barricades = append(f.Barricades, b.Blocks)
	}
	return f
}
