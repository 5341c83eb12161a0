package main

import (
	"log"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

const sampleRate = beep.SampleRate(44100)

// Cue is a short sine tone
type Cue struct {
	Freq     float64
	Duration time.Duration
}

var (
	cueShot     = Cue{Freq: 880, Duration: 30 * time.Millisecond}
	cuePowerUp  = Cue{Freq: 1320, Duration: 80 * time.Millisecond}
	cuePhase    = Cue{Freq: 440, Duration: 150 * time.Millisecond}
	cueRage     = Cue{Freq: 110, Duration: 400 * time.Millisecond}
	cueQuiz     = Cue{Freq: 660, Duration: 120 * time.Millisecond}
	cueWrong    = Cue{Freq: 150, Duration: 250 * time.Millisecond}
	cueVictory  = Cue{Freq: 1046, Duration: 500 * time.Millisecond}
	cueDefeat   = Cue{Freq: 98, Duration: 600 * time.Millisecond}
	cueProgress = Cue{Freq: 523, Duration: 100 * time.Millisecond}
)

// Sound plays cues; a Sound that failed to start stays silent
type Sound struct {
	enabled bool
}

func NewSound(mute bool) *Sound {
	if mute {
		return &Sound{}
	}
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		// Non-fatal, the client runs without sound
		log.Printf("audio init failed: %v", err)
		return &Sound{}
	}
	return &Sound{enabled: true}
}

func (s *Sound) Play(c Cue) {
	if !s.enabled {
		return
	}
	sine, err := generators.SineTone(sampleRate, c.Freq)
	if err != nil {
		return
	}
	speaker.Play(beep.Take(sampleRate.N(c.Duration), sine))
}

func (s *Sound) Close() {
	if s.enabled {
		speaker.Close()
	}
}

// cueForEvent picks the cue for an encounter event, if any
func cueForEvent(kind string) (Cue, bool) {
	switch kind {
	case EventPhaseChange:
		return cuePhase, true
	case EventRage:
		return cueRage, true
	case EventPowerUp:
		return cuePowerUp, true
	case EventBossDefeated:
		return cueVictory, true
	case EventPlayerDefeated:
		return cueDefeat, true
	case EventWaveCleared, EventBossIntro:
		return cueProgress, true
	}
	return Cue{}, false
}
