package main

import (
	"math"
	"testing"
)

func TestNewPlayer(t *testing.T) {
	p := NewPlayer(ScreenWidth, ScreenHeight, 3)
	if p.X != ScreenWidth/2-PlayerW/2 {
		t.Errorf("expected centred X, got %f", p.X)
	}
	if p.Y != ScreenHeight-PlayerH-PlayerBottomY {
		t.Errorf("expected Y %f, got %f", ScreenHeight-PlayerH-PlayerBottomY, p.Y)
	}
	if p.Lives != 3 {
		t.Errorf("expected 3 lives, got %d", p.Lives)
	}
}

func TestPlayerMoveClamped(t *testing.T) {
	p := NewPlayer(ScreenWidth, ScreenHeight, 3)
	dt := 1.0 / TickRate

	p.Move(1, 5, dt, ScreenWidth)
	if math.Abs(p.X-(ScreenWidth/2-PlayerW/2+5)) > 1e-9 {
		t.Errorf("expected one tick to move 5px, got X=%f", p.X)
	}

	for i := 0; i < 1000; i++ {
		p.Move(-1, 5, dt, ScreenWidth)
	}
	if p.X != 0 {
		t.Errorf("expected X clamped to 0, got %f", p.X)
	}
	for i := 0; i < 1000; i++ {
		p.Move(1, 5, dt, ScreenWidth)
	}
	if p.X != ScreenWidth-PlayerW {
		t.Errorf("expected X clamped to %f, got %f", ScreenWidth-PlayerW, p.X)
	}
}

func TestPlayerInvulnerabilityExpires(t *testing.T) {
	p := NewPlayer(ScreenWidth, ScreenHeight, 3)
	p.SetInvulnerable(10, 5)
	p.UpdateTimers(14.9)
	if !p.Invulnerable {
		t.Error("should still be invulnerable before expiry")
	}
	p.UpdateTimers(15)
	if p.Invulnerable {
		t.Error("invulnerability should clear at expiry")
	}
}

func TestPlayerLoseLifeClamps(t *testing.T) {
	p := NewPlayer(ScreenWidth, ScreenHeight, 1)
	if !p.LoseLife() {
		t.Error("losing the last life should report defeat")
	}
	p.LoseLife()
	if p.Lives != 0 {
		t.Errorf("lives should clamp at 0, got %d", p.Lives)
	}
}

func TestPlayerFireCooldown(t *testing.T) {
	p := NewPlayer(ScreenWidth, ScreenHeight, 3)
	if !p.CanFire(0, 0.2) {
		t.Error("fresh player should be able to fire")
	}
	p.FireCD.Trigger(1)
	if p.CanFire(1.1, 0.2) {
		t.Error("should not fire within the interval")
	}
	if !p.CanFire(1.25, 0.2) {
		t.Error("should fire after the interval")
	}
}
