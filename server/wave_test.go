package main

import (
	"math/rand"
	"testing"
)

func testWaveTuning() WaveTuning {
	return DefaultTuning().Waves
}

func TestNewWaveGrid(t *testing.T) {
	w := NewWave(0, testWaveTuning())
	if len(w.Enemies) != EnemyRows*EnemyCols {
		t.Fatalf("expected %d enemies, got %d", EnemyRows*EnemyCols, len(w.Enemies))
	}
	first := w.Enemies[0]
	if first.X != 50 || first.Y != 50 {
		t.Errorf("expected first enemy at (50,50), got (%f,%f)", first.X, first.Y)
	}
	last := w.Enemies[len(w.Enemies)-1]
	if last.X != 9*50+50 || last.Y != 4*50+50 {
		t.Errorf("expected last enemy at (500,250), got (%f,%f)", last.X, last.Y)
	}
	if w.Speed != 2 {
		t.Errorf("expected level 0 speed 2, got %f", w.Speed)
	}
}

func TestWaveDifficultyScales(t *testing.T) {
	w := NewWave(1, testWaveTuning())
	if w.Speed != 2.5 {
		t.Errorf("expected level 1 speed 2.5, got %f", w.Speed)
	}
	if w.ShootChance < 0.00399 || w.ShootChance > 0.00401 {
		t.Errorf("expected level 1 shoot chance 0.004, got %f", w.ShootChance)
	}
}

func TestWaveEdgeDropsAndReverses(t *testing.T) {
	w := &Wave{Enemies: []Enemy{{X: ScreenWidth - EnemySize - 1, Y: 100}, {X: 600, Y: 100}}, Dir: 1, Speed: 2}
	pool := NewProjectilePool(ScreenWidth, ScreenHeight)
	rng := rand.New(rand.NewSource(1))

	w.Update(1.0/TickRate, rng, pool, ScreenWidth, ScreenHeight)
	if w.Dir != -1 {
		t.Errorf("expected direction to reverse, got %f", w.Dir)
	}
	for i, e := range w.Enemies {
		if e.Y != 120 {
			t.Errorf("enemy %d: expected Y 120 after drop, got %f", i, e.Y)
		}
	}
}

func TestWaveShoots(t *testing.T) {
	w := &Wave{Enemies: []Enemy{{X: 600, Y: 100}}, Dir: 1, Speed: 0, ShootChance: 1}
	pool := NewProjectilePool(ScreenWidth, ScreenHeight)
	w.Update(1.0/TickRate, rand.New(rand.NewSource(1)), pool, ScreenWidth, ScreenHeight)
	if len(pool.Enemy) != 1 {
		t.Fatalf("expected 1 enemy shot, got %d", len(pool.Enemy))
	}
	if pool.Enemy[0].X != 620 || pool.Enemy[0].Y != 140 {
		t.Errorf("expected shot at (620,140), got (%f,%f)", pool.Enemy[0].X, pool.Enemy[0].Y)
	}
}

func TestWaveLanding(t *testing.T) {
	w := &Wave{Enemies: []Enemy{{X: 600, Y: ScreenHeight - EnemySize}}, Dir: 1}
	pool := NewProjectilePool(ScreenWidth, ScreenHeight)
	if !w.Update(1.0/TickRate, rand.New(rand.NewSource(1)), pool, ScreenWidth, ScreenHeight) {
		t.Error("enemy at the bottom edge should report landing")
	}
}
