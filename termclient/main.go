package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
)

// ui is everything the terminal shows between frames
type ui struct {
	sid    string
	role   string
	name   string
	frame  *Frame
	score  int
	status string

	quiz          *QuizMsg
	quizDeadline  time.Time
	skill         *SkillMsg
	typed         []rune
	skillDeadline time.Time
	outcome       *OutcomeMsg
}

func main() {
	url := flag.String("url", "ws://localhost:8080/ws", "server websocket url")
	name := flag.String("name", "", "display name")
	session := flag.String("session", "", "session id to join; empty creates one")
	user := flag.String("user", "", "account username")
	pass := flag.String("pass", "", "account password")
	mute := flag.Bool("mute", false, "disable sound")
	flag.Parse()

	store := OpenStore()
	conn, err := Dial(*url)
	if err != nil {
		log.Fatalf("connect: %v", err)
	}
	defer conn.Close()

	switch {
	case *user != "":
		conn.Send(MsgLogin, map[string]string{"username": *user, "password": *pass})
	case store.Token() != "":
		conn.Send(MsgAuth, map[string]string{"token": store.Token()})
	}
	if *session != "" {
		conn.Send(MsgJoin, map[string]string{"name": *name, "sid": *session})
	} else {
		conn.Send(MsgCreate, map[string]string{"name": *name})
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		log.Fatalf("screen: %v", err)
	}
	if err := screen.Init(); err != nil {
		log.Fatalf("screen init: %v", err)
	}
	sound := NewSound(*mute)

	err = run(screen, conn, store, sound, *name)
	screen.Fini()
	sound.Close()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(screen tcell.Screen, conn *Conn, store *Store, sound *Sound, name string) error {
	events := make(chan tcell.Event, 16)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			events <- ev
		}
	}()

	st := &ui{name: name, status: "connecting..."}
	ticker := time.NewTicker(16 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
					return nil
				}
				handleKey(ev, st, conn, store, sound)
			case *tcell.EventResize:
				screen.Sync()
			}

		case in, ok := <-conn.In:
			if !ok {
				return nil
			}
			if in.Err != nil {
				return fmt.Errorf("connection lost: %w", in.Err)
			}
			if in.Frame != nil {
				st.frame = in.Frame
				continue
			}
			handleEnvelope(in.Env, st, conn, store, sound)

		case <-ticker.C:
			draw(screen, st)
		}
	}
}

func draw(screen tcell.Screen, st *ui) {
	screen.Clear()
	if st.frame != nil {
		drawFrame(screen, st.frame, st.score)
	}
	now := time.Now()
	switch {
	case st.outcome != nil:
		drawBox(screen, outcomeLines(st.outcome))
	case st.quiz != nil:
		drawBox(screen, quizLines(st.quiz, remaining(st.quizDeadline, now)))
	case st.skill != nil:
		drawBox(screen, skillLines(st.skill, string(st.typed), remaining(st.skillDeadline, now)))
	}
	drawStatus(screen, st.status)
	screen.Show()
}

func remaining(deadline, now time.Time) float64 {
	if d := deadline.Sub(now).Seconds(); d > 0 {
		return d
	}
	return 0
}

func outcomeLines(o *OutcomeMsg) []string {
	title := "BREACH SUCCESSFUL: the boss got through"
	if o.Victory {
		title = "THREAT NEUTRALISED"
	}
	lines := []string{title, "", fmt.Sprintf("final score %d", o.Score)}
	if o.Submitted {
		lines = append(lines, "score submitted to the leaderboard")
	}
	for _, a := range o.Achievements {
		lines = append(lines, "achievement: "+a.Name)
	}
	return append(lines, "", "esc to quit")
}

// keyFlags maps a gameplay key to its input flags
func keyFlags(ev *tcell.EventKey) (byte, bool) {
	switch ev.Key() {
	case tcell.KeyLeft:
		return flagLeft | flagPulse, true
	case tcell.KeyRight:
		return flagRight | flagPulse, true
	case tcell.KeyEnter:
		return flagConfirm | flagPulse, true
	case tcell.KeyRune:
		switch ev.Rune() {
		case ' ':
			return flagFire | flagPulse, true
		case 'a', 'A':
			return flagLeft | flagPulse, true
		case 'd', 'D':
			return flagRight | flagPulse, true
		case 'p', 'P':
			return flagPause | flagPulse, true
		}
	}
	return 0, false
}

// loadSlotKey maps F1-F3 to a save slot
func loadSlotKey(k tcell.Key) (int, bool) {
	switch k {
	case tcell.KeyF1:
		return 1, true
	case tcell.KeyF2:
		return 2, true
	case tcell.KeyF3:
		return 3, true
	}
	return 0, false
}

// quizChoice maps a digit key to a zero based option index
func quizChoice(r rune, options int) (int, bool) {
	i := int(r - '1')
	if i < 0 || i >= options {
		return 0, false
	}
	return i, true
}

func handleKey(ev *tcell.EventKey, st *ui, conn *Conn, store *Store, sound *Sound) {
	if st.quiz != nil {
		if ev.Key() == tcell.KeyRune {
			if i, ok := quizChoice(ev.Rune(), len(st.quiz.Options)); ok {
				conn.Send(MsgQuizAnswer, map[string]int{"i": i})
			}
		}
		return
	}
	if st.skill != nil {
		switch ev.Key() {
		case tcell.KeyEnter:
			conn.Send(MsgSkillAnswer, map[string]string{"w": string(st.typed)})
		case tcell.KeyBackspace, tcell.KeyBackspace2:
			if len(st.typed) > 0 {
				st.typed = st.typed[:len(st.typed)-1]
			}
		case tcell.KeyRune:
			st.typed = append(st.typed, ev.Rune())
		}
		return
	}
	if st.outcome != nil {
		return
	}

	if slot, ok := loadSlotKey(ev.Key()); ok {
		blob, err := store.LoadSlot(slot)
		if err != nil || blob == nil {
			st.status = fmt.Sprintf("slot %d is empty", slot)
			return
		}
		conn.Send(MsgLoad, map[string][]byte{"blob": blob})
		return
	}
	if ev.Key() == tcell.KeyRune && ev.Rune() >= '1' && ev.Rune() <= '0'+SlotCount {
		conn.Send(MsgSave, map[string]int{"slot": int(ev.Rune() - '0')})
		return
	}
	if flags, ok := keyFlags(ev); ok {
		if flags&flagFire != 0 {
			sound.Play(cueShot)
		}
		conn.SendInput(flags)
	}
}

func decodeData(env *InEnvelope, v interface{}) bool {
	return json.Unmarshal(env.D, v) == nil
}

func handleEnvelope(env *InEnvelope, st *ui, conn *Conn, store *Store, sound *Sound) {
	switch env.T {
	case MsgCreated:
		var m map[string]string
		if decodeData(env, &m) {
			conn.Send(MsgJoin, map[string]string{"name": st.name, "sid": m["sid"]})
		}
	case MsgWelcome:
		var m WelcomeMsg
		if decodeData(env, &m) {
			st.sid, st.role = m.SID, m.Role
			st.status = fmt.Sprintf("%s as %s in %s | arrows/space/enter/p play, 1-3 save, F1-F3 load, esc quit", m.Name, m.Role, m.SID)
		}
	case MsgAuthOK:
		var m AuthOKMsg
		if decodeData(env, &m) {
			if err := store.SetToken(m.Token); err != nil {
				st.status = "could not store token: " + err.Error()
			}
		}
	case MsgError:
		var m ErrorMsg
		if decodeData(env, &m) {
			st.status = "error: " + m.Msg
		}
	case MsgScore:
		var m ScoreMsg
		if decodeData(env, &m) {
			st.score = m.Score
		}
	case MsgEvent:
		var m EventMsg
		if decodeData(env, &m) {
			if cue, ok := cueForEvent(m.Kind); ok {
				sound.Play(cue)
			}
		}
	case MsgQuiz:
		var m QuizMsg
		if decodeData(env, &m) {
			st.quiz = &m
			st.quizDeadline = time.Now().Add(time.Duration(m.TimeLimit * float64(time.Second)))
			sound.Play(cueQuiz)
		}
	case MsgQuizResult:
		var m QuizResultMsg
		if decodeData(env, &m) {
			st.quiz = nil
			st.status = quizStatus(m)
			if !m.Correct {
				sound.Play(cueWrong)
			}
		}
	case MsgSkill:
		var m SkillMsg
		if decodeData(env, &m) {
			st.skill = &m
			st.typed = st.typed[:0]
			st.skillDeadline = time.Now().Add(time.Duration(m.TimeLimit * float64(time.Second)))
			sound.Play(cueQuiz)
		}
	case MsgSkillResult:
		var m SkillResultMsg
		if decodeData(env, &m) {
			st.skill = nil
			if m.Passed {
				st.status = "firewall breached: boss damaged"
			} else {
				st.status = "the word was " + m.Word
				sound.Play(cueWrong)
			}
		}
	case MsgSaved:
		var m SavedMsg
		if decodeData(env, &m) {
			if err := store.SaveSlot(m.Slot, m.Blob); err != nil {
				st.status = "save failed: " + err.Error()
			} else {
				st.status = fmt.Sprintf("saved to slot %d", m.Slot)
			}
		}
	case MsgLoaded:
		st.status = "snapshot loaded"
	case MsgOutcome:
		var m OutcomeMsg
		if decodeData(env, &m) {
			st.outcome = &m
			st.quiz, st.skill = nil, nil
		}
	}
}

func quizStatus(r QuizResultMsg) string {
	switch {
	case r.Correct:
		return "correct: boss damaged"
	case r.Timeout:
		return fmt.Sprintf("time's up: the answer was %d", r.Answer+1)
	default:
		return fmt.Sprintf("wrong: the answer was %d", r.Answer+1)
	}
}
