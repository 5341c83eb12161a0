package main

import "math/rand"

const (
	EnemySize    = 40.0
	EnemySpacing = 10.0
	EnemyOriginX = 50.0
	EnemyOriginY = 50.0
	EnemyRows    = 5
	EnemyCols    = 10
	EnemyDrop    = 20.0 // pixels dropped when the grid hits an edge
)

// Enemy is one ship in a wave grid
type Enemy struct {
	X float64 `msgpack:"x"`
	Y float64 `msgpack:"y"`
}

// Rect returns the enemy's bounding box
func (e Enemy) Rect() Rect {
	return Rect{X: e.X, Y: e.Y, W: EnemySize, H: EnemySize}
}

// ToState converts to protocol state
func (e Enemy) ToState() EnemyState {
	return EnemyState{X: round1(e.X), Y: round1(e.Y)}
}

// Wave is a marching grid of enemies
type Wave struct {
	Enemies     []Enemy `msgpack:"e"`
	Dir         float64 `msgpack:"d"` // +1 right, -1 left
	Level       int     `msgpack:"l"` // 0-based
	Speed       float64 `msgpack:"s"` // pixels/tick
	ShootChance float64 `msgpack:"c"` // per enemy per tick
}

// NewWave builds the enemy grid for a 0-based level
func NewWave(level int, tuning WaveTuning) *Wave {
	w := &Wave{
		Enemies:     make([]Enemy, 0, EnemyRows*EnemyCols),
		Dir:         1,
		Level:       level,
		Speed:       tuning.BaseSpeed + tuning.SpeedStep*float64(level),
		ShootChance: tuning.BaseShootChance + tuning.ShootChanceStep*float64(level),
	}
	for row := 0; row < EnemyRows; row++ {
		for col := 0; col < EnemyCols; col++ {
			w.Enemies = append(w.Enemies, Enemy{
				X: float64(col)*(EnemySize+EnemySpacing) + EnemyOriginX,
				Y: float64(row)*(EnemySize+EnemySpacing) + EnemyOriginY,
			})
		}
	}
	return w
}

// Cleared returns true once every enemy is destroyed
func (w *Wave) Cleared() bool {
	return len(w.Enemies) == 0
}

// Update marches the grid one step and lets each enemy roll for a shot.
// When any enemy touches a screen edge the whole grid drops and reverses.
// It returns true if an enemy reached the bottom of the screen.
func (w *Wave) Update(dt float64, rng *rand.Rand, pool *ProjectilePool, width, height float64) bool {
	step := w.Speed * w.Dir * dt * TickRate
	edge := false
	landed := false
	for i := range w.Enemies {
		e := &w.Enemies[i]
		e.X += step
		if e.X <= 0 || e.X+EnemySize >= width {
			edge = true
		}
		if rng.Float64() < w.ShootChance {
			pool.SpawnEnemyShot(e.X+EnemySize/2, e.Y+EnemySize)
		}
		if e.Y+EnemySize >= height {
			landed = true
		}
	}
	if edge {
		for i := range w.Enemies {
			w.Enemies[i].Y += EnemyDrop
		}
		w.Dir = -w.Dir
	}
	return landed
}
