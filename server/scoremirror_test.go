package main

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestScoreMirrorPublishesChanges(t *testing.T) {
	var score atomic.Int64
	score.Store(5000)

	var mu sync.Mutex
	var published []int
	m := &ScoreMirror{
		Read: func() int { return int(score.Load()) },
		Publish: func(s int) {
			mu.Lock()
			published = append(published, s)
			mu.Unlock()
		},
		Every: time.Millisecond,
	}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		m.Run(ctx)
		close(done)
	}()

	time.Sleep(20 * time.Millisecond)
	score.Store(4750)
	time.Sleep(20 * time.Millisecond)
	cancel()
	<-done

	mu.Lock()
	defer mu.Unlock()
	if len(published) != 2 || published[0] != 5000 || published[1] != 4750 {
		t.Errorf("expected [5000 4750], got %v", published)
	}
}
