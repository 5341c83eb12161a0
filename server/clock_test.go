package main

import (
	"math"
	"testing"
)

func TestClockAdvance(t *testing.T) {
	var c Clock
	c.Advance(0.5)
	c.Advance(-1) // ignored
	c.Advance(0.25)
	if c.Now() != 0.75 {
		t.Errorf("expected 0.75, got %f", c.Now())
	}
}

func TestCooldownReady(t *testing.T) {
	var cd Cooldown
	if !cd.Ready(0, 0.15) {
		t.Error("unused cooldown should be ready")
	}
	cd.Trigger(1.0)
	if cd.Ready(1.1, 0.15) {
		t.Error("cooldown should not be ready after 0.1s")
	}
	if !cd.Ready(1.5, 0.5) {
		t.Error("cooldown should be ready exactly at the interval")
	}
	if !cd.Ready(1.2, 0.15) {
		t.Error("cooldown should be ready after 0.2s")
	}
}

func TestPauseShiftPreservesRemaining(t *testing.T) {
	var c Clock
	c.Advance(10)

	var power Expiry
	power.Set(c.Now(), 3.0)
	var shot Cooldown
	shot.Trigger(c.Now() - 2.0) // 2s into a 5s interval

	var pt PauseTracker
	pt.Pause(c.Now())
	beforePower := power.Remaining(c.Now())
	beforeShot := shot.Remaining(c.Now(), 5.0)

	for _, paused := range []float64{0.5, 7, 120} {
		c.Advance(paused)
		d := pt.Resume(c.Now())
		power.Shift(d)
		shot.Shift(d)

		if math.Abs(power.Remaining(c.Now())-beforePower) > 1e-9 {
			t.Errorf("paused %v: expected %f remaining, got %f", paused, beforePower, power.Remaining(c.Now()))
		}
		if math.Abs(shot.Remaining(c.Now(), 5.0)-beforeShot) > 1e-9 {
			t.Errorf("paused %v: expected cooldown %f, got %f", paused, beforeShot, shot.Remaining(c.Now(), 5.0))
		}
		pt.Pause(c.Now())
	}
	if beforePower != 3.0 {
		t.Errorf("expected 3.0s remaining at pause, got %f", beforePower)
	}
}

func TestExpiryExpired(t *testing.T) {
	var e Expiry
	if e.Expired(100) {
		t.Error("disarmed expiry never expires")
	}
	e.Set(1, 2)
	if e.Expired(2.9) {
		t.Error("should not be expired before deadline")
	}
	if !e.Expired(3) {
		t.Error("should be expired at deadline")
	}
	e.Clear()
	if e.Remaining(0) != 0 {
		t.Error("cleared expiry has no remaining time")
	}
}
