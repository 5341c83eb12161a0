package main

import (
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/gorilla/websocket"
	"github.com/vmihailenco/msgpack/v5"
)

func TestKeyFlags(t *testing.T) {
	tests := []struct {
		ev   *tcell.EventKey
		want byte
	}{
		{tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone), flagLeft | flagPulse},
		{tcell.NewEventKey(tcell.KeyRight, 0, tcell.ModNone), flagRight | flagPulse},
		{tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone), flagConfirm | flagPulse},
		{tcell.NewEventKey(tcell.KeyRune, ' ', tcell.ModNone), flagFire | flagPulse},
		{tcell.NewEventKey(tcell.KeyRune, 'p', tcell.ModNone), flagPause | flagPulse},
	}
	for _, tt := range tests {
		got, ok := keyFlags(tt.ev)
		if !ok || got != tt.want {
			t.Errorf("%s: expected %08b, got %08b (ok=%v)", tt.ev.Name(), tt.want, got, ok)
		}
	}
	if _, ok := keyFlags(tcell.NewEventKey(tcell.KeyRune, 'z', tcell.ModNone)); ok {
		t.Error("unbound key should not produce input")
	}
}

func TestQuizChoice(t *testing.T) {
	if i, ok := quizChoice('1', 4); !ok || i != 0 {
		t.Errorf("expected option 0, got %d %v", i, ok)
	}
	if i, ok := quizChoice('4', 4); !ok || i != 3 {
		t.Errorf("expected option 3, got %d %v", i, ok)
	}
	if _, ok := quizChoice('5', 4); ok {
		t.Error("out of range digit accepted")
	}
	if _, ok := quizChoice('x', 4); ok {
		t.Error("non-digit accepted")
	}
}

func TestLoadSlotKey(t *testing.T) {
	if s, ok := loadSlotKey(tcell.KeyF2); !ok || s != 2 {
		t.Errorf("expected slot 2, got %d", s)
	}
	if _, ok := loadSlotKey(tcell.KeyF4); ok {
		t.Error("F4 is not a slot")
	}
}

func TestViewportScaling(t *testing.T) {
	v := viewport{cols: 120, rows: 62}
	if x, y := v.cell(0, 0); x != 0 || y != hudRows {
		t.Errorf("origin mapped to %d,%d", x, y)
	}
	if x, y := v.cell(600, 300); x != 60 || y != 30+hudRows {
		t.Errorf("centre mapped to %d,%d", x, y)
	}
	x0, y0, x1, y1 := v.span(10, 10, 1, 1)
	if x1-x0 < 1 || y1-y0 < 1 {
		t.Errorf("tiny rect should cover a cell: %d,%d %d,%d", x0, y0, x1, y1)
	}
}

func TestHUDLine(t *testing.T) {
	f := &Frame{Wave: 2, Player: PlayerState{Lives: 3}, Paused: true}
	line := hudLine(f, 150)
	for _, want := range []string{"SCORE 150", "LIVES 3", "WAVE 2", "PAUSED"} {
		if !strings.Contains(line, want) {
			t.Errorf("hud %q missing %q", line, want)
		}
	}

	f.Boss = &BossState{Health: 40, Max: 100, Phase: 2, Rage: true}
	line = hudLine(f, 0)
	if !strings.Contains(line, "BOSS 40/100") || !strings.Contains(line, "RAGE") {
		t.Errorf("boss hud %q", line)
	}
	if strings.Contains(line, "WAVE") {
		t.Error("wave hidden during the boss fight")
	}
}

func TestDecodeFrame(t *testing.T) {
	want := Frame{State: "boss", Score: 900, Boss: &BossState{Health: 10, Max: 100}}
	data, err := msgpack.Marshal(&want)
	if err != nil {
		t.Fatal(err)
	}
	in, ok := decode(websocket.BinaryMessage, data)
	if !ok || in.Frame == nil {
		t.Fatal("expected a frame")
	}
	if in.Frame.Score != 900 || in.Frame.Boss == nil || in.Frame.Boss.Health != 10 {
		t.Errorf("unexpected frame %+v", in.Frame)
	}

	in, ok = decode(websocket.TextMessage, []byte(`{"t":"score","d":{"score":5}}`))
	if !ok || in.Env == nil || in.Env.T != MsgScore {
		t.Errorf("expected a score envelope, got %+v", in)
	}
	if _, ok := decode(websocket.TextMessage, []byte("{")); ok {
		t.Error("garbage should be dropped")
	}
}

func TestCueForEvent(t *testing.T) {
	if c, ok := cueForEvent(EventRage); !ok || c != cueRage {
		t.Error("rage should have a cue")
	}
	if _, ok := cueForEvent("encounter_start"); ok {
		t.Error("encounter_start has no cue")
	}
}

func TestNilStoreIsNoop(t *testing.T) {
	s := &Store{}
	if err := s.SaveSlot(1, []byte("x")); err != nil {
		t.Errorf("save: %v", err)
	}
	if blob, err := s.LoadSlot(1); blob != nil || err != nil {
		t.Errorf("load: %v %v", blob, err)
	}
	if s.Token() != "" {
		t.Error("expected no token")
	}
	if validSlot(0) || validSlot(SlotCount+1) || !validSlot(SlotCount) {
		t.Error("slot bounds")
	}
}
