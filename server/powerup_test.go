package main

import (
	"math/rand"
	"testing"
)

func TestPowerUpDropChance(t *testing.T) {
	tuning := DefaultTuning().PowerUps
	tuning.DropChance = 1
	u := NewPowerUps(tuning)
	u.MaybeDrop(rand.New(rand.NewSource(1)), Enemy{X: 100, Y: 100})
	if len(u.Falling) != 1 {
		t.Fatalf("expected a drop, got %d", len(u.Falling))
	}
	if u.Falling[0].X != 120 || u.Falling[0].Y != 120 {
		t.Errorf("expected drop at enemy centre, got (%f,%f)", u.Falling[0].X, u.Falling[0].Y)
	}

	tuning.DropChance = 0
	u = NewPowerUps(tuning)
	u.MaybeDrop(rand.New(rand.NewSource(1)), Enemy{})
	if len(u.Falling) != 0 {
		t.Error("zero drop chance should never drop")
	}
}

func TestPowerUpCollectTripleShot(t *testing.T) {
	u := NewPowerUps(DefaultTuning().PowerUps)
	player := NewPlayer(ScreenWidth, ScreenHeight, 3)
	cx, cy := player.Rect().Center()
	u.Falling = append(u.Falling, PowerUp{X: cx, Y: cy, Kind: PowerUpTripleShot})

	got := u.Update(10, 1.0/TickRate, ScreenHeight, player)
	if len(got) != 1 || got[0] != PowerUpTripleShot {
		t.Fatalf("expected triple shot collected, got %v", got)
	}
	if !u.TripleShotActive() {
		t.Error("triple shot should be active")
	}
	u.Update(17.9, 1.0/TickRate, ScreenHeight, player)
	if !u.TripleShotActive() {
		t.Error("triple shot should last 8s")
	}
	u.Update(18, 1.0/TickRate, ScreenHeight, player)
	if u.TripleShotActive() {
		t.Error("triple shot should expire at 8s")
	}
}

func TestPowerUpShieldGrantsInvulnerability(t *testing.T) {
	u := NewPowerUps(DefaultTuning().PowerUps)
	player := NewPlayer(ScreenWidth, ScreenHeight, 3)
	cx, cy := player.Rect().Center()
	u.Falling = append(u.Falling, PowerUp{X: cx, Y: cy, Kind: PowerUpShield})
	u.Update(0, 1.0/TickRate, ScreenHeight, player)
	if !player.Invulnerable {
		t.Error("shield should make the player invulnerable")
	}
	player.UpdateTimers(5)
	if player.Invulnerable {
		t.Error("shield should wear off after 5s")
	}
}

func TestPowerUpCollectedByEdgeContact(t *testing.T) {
	u := NewPowerUps(DefaultTuning().PowerUps)
	player := NewPlayer(ScreenWidth, ScreenHeight, 3)
	box := player.Rect()
	// centre just left of the ship, box still overlapping it
	u.Falling = append(u.Falling, PowerUp{X: box.X - PowerUpRadius/2, Y: box.Y + box.H/2, Kind: PowerUpShield})
	// centre far enough away that the boxes only touch
	u.Falling = append(u.Falling, PowerUp{X: box.X + box.W + PowerUpRadius, Y: box.Y + box.H/2, Kind: PowerUpTripleShot})

	got := u.Update(0, 1.0/TickRate, ScreenHeight, player)
	if len(got) != 1 || got[0] != PowerUpShield {
		t.Errorf("expected only the overlapping shield, got %v", got)
	}
	if len(u.Falling) != 1 {
		t.Errorf("expected the touching pickup to keep falling, got %d", len(u.Falling))
	}
}

func TestPowerUpFallsOffscreen(t *testing.T) {
	u := NewPowerUps(DefaultTuning().PowerUps)
	player := NewPlayer(ScreenWidth, ScreenHeight, 3)
	u.Falling = append(u.Falling, PowerUp{X: 10, Y: ScreenHeight + PowerUpRadius})
	u.Update(0, 1.0/TickRate, ScreenHeight, player)
	if len(u.Falling) != 0 {
		t.Error("pickup below the screen should be dropped")
	}
}

func TestPowerUpShift(t *testing.T) {
	u := NewPowerUps(DefaultTuning().PowerUps)
	u.TripleShot.Set(0, 8)
	u.Shift(5)
	if u.TripleShot.Remaining(5) != 8 {
		t.Errorf("expected 8s remaining after shift, got %f", u.TripleShot.Remaining(5))
	}
}
