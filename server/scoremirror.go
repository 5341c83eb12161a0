package main

import (
	"context"
	"time"
)

const ScoreMirrorInterval = 100 * time.Millisecond

// ScoreMirror polls a score reader and publishes each change.
// It only reads, so it can run beside the tick loop.
type ScoreMirror struct {
	Read    func() int
	Publish func(score int)
	Every   time.Duration
}

// Run polls until ctx is cancelled. The first reading is always published.
func (m *ScoreMirror) Run(ctx context.Context) {
	every := m.Every
	if every <= 0 {
		every = ScoreMirrorInterval
	}
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	last := -1
	for {
		if v := m.Read(); v != last {
			last = v
			m.Publish(v)
		}
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
