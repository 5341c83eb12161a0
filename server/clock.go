package main

// Clock is the session's time source. It only moves when the encounter
// advances it, so timing is deterministic and never reads the wall clock.
type Clock struct {
	now float64 // seconds since encounter start
}

// Advance moves the clock forward by dt seconds
func (c *Clock) Advance(dt float64) {
	if dt > 0 {
		c.now += dt
	}
}

// Now returns the current session time in seconds
func (c *Clock) Now() float64 {
	return c.now
}

// Cooldown tracks when a repeating action last fired
type Cooldown struct {
	Last float64 `msgpack:"l"`
	Used bool    `msgpack:"u"`
}

// Ready reports whether at least interval seconds have passed since the last trigger.
// A cooldown that never fired is always ready.
func (c *Cooldown) Ready(now, interval float64) bool {
	return !c.Used || now-c.Last >= interval
}

// Trigger records a firing at now
func (c *Cooldown) Trigger(now float64) {
	c.Last = now
	c.Used = true
}

// Remaining returns how long until the cooldown is ready again
func (c *Cooldown) Remaining(now, interval float64) float64 {
	if !c.Used {
		return 0
	}
	r := c.Last + interval - now
	if r < 0 {
		return 0
	}
	return r
}

// Shift moves the last trigger forward by d seconds
func (c *Cooldown) Shift(d float64) {
	if c.Used {
		c.Last += d
	}
}

// Expiry is a deadline on the session clock
type Expiry struct {
	At     float64 `msgpack:"at"`
	Active bool    `msgpack:"a"`
}

// Set arms the expiry for dur seconds from now
func (e *Expiry) Set(now, dur float64) {
	e.At = now + dur
	e.Active = true
}

// Clear disarms the expiry
func (e *Expiry) Clear() {
	e.At = 0
	e.Active = false
}

// Expired reports whether an armed expiry has been reached
func (e *Expiry) Expired(now float64) bool {
	return e.Active && now >= e.At
}

// Remaining returns the time left before expiry, or 0 when disarmed
func (e *Expiry) Remaining(now float64) float64 {
	if !e.Active || now >= e.At {
		return 0
	}
	return e.At - now
}

// Shift moves an armed expiry forward by d seconds
func (e *Expiry) Shift(d float64) {
	if e.Active {
		e.At += d
	}
}

// PauseTracker records the pause instant so resume can report the paused span
type PauseTracker struct {
	Paused bool    `msgpack:"p"`
	At     float64 `msgpack:"at"`
}

// Pause records now as the pause instant. Pausing twice keeps the first instant.
func (p *PauseTracker) Pause(now float64) {
	if p.Paused {
		return
	}
	p.Paused = true
	p.At = now
}

// Resume ends the pause and returns how long it lasted
func (p *PauseTracker) Resume(now float64) float64 {
	if !p.Paused {
		return 0
	}
	p.Paused = false
	d := now - p.At
	if d < 0 {
		d = 0
	}
	return d
}
