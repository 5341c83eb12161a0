package main

import (
	"context"
	"math/rand"
	"strings"
	"testing"
)

func TestLimitedQuizStopsAtLimit(t *testing.T) {
	inner := 0
	q := &LimitedQuiz{Inner: QuizFunc(func(ctx context.Context) bool {
		inner++
		return true
	}), Limit: 3}

	for i := 0; i < 3; i++ {
		if !q.Ask(context.Background()) {
			t.Errorf("question %d should be asked", i+1)
		}
	}
	if q.Ask(context.Background()) {
		t.Error("fourth question should fail without asking")
	}
	if inner != 3 {
		t.Errorf("expected 3 inner calls, got %d", inner)
	}
}

func TestLoadDefaultQuestionBank(t *testing.T) {
	bank, err := LoadQuestionBank("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(bank.Questions) != 5 {
		t.Errorf("expected 5 questions, got %d", len(bank.Questions))
	}
	if bank.Questions[2].Options[bank.Questions[2].Answer] != "Ransomware" {
		t.Error("expected ransomware answer for question 3")
	}
}

func TestQuestionBankPickSkipsAsked(t *testing.T) {
	bank, _ := LoadQuestionBank("")
	rng := rand.New(rand.NewSource(5))
	asked := map[int]bool{}
	for i := 0; i < len(bank.Questions); i++ {
		idx := bank.Pick(rng, asked)
		if idx < 0 || asked[idx] {
			t.Fatalf("expected a fresh question, got %d", idx)
		}
		asked[idx] = true
	}
	if bank.Pick(rng, asked) != -1 {
		t.Error("exhausted bank should return -1")
	}
}

func TestValidateQuestionBank(t *testing.T) {
	bad := &QuestionBank{Questions: []Question{{Text: "x", Options: []string{"a", "b"}, Answer: 2}}}
	if err := validateQuestionBank(bad); err == nil {
		t.Error("expected out-of-range answer to be rejected")
	}
}

func TestHackingPuzzleHidesWord(t *testing.T) {
	rng := rand.New(rand.NewSource(9))
	for i := 0; i < 20; i++ {
		p := NewHackingPuzzle(rng)
		if len(p.Rows) != HackingGridSize {
			t.Fatalf("expected %d rows, got %d", HackingGridSize, len(p.Rows))
		}
		found := false
		for _, row := range p.Rows {
			if len(row) != HackingGridSize {
				t.Fatalf("expected row length %d, got %d", HackingGridSize, len(row))
			}
			if strings.Contains(row, p.Word) {
				found = true
			}
		}
		if !found {
			t.Errorf("word %s not found in grid", p.Word)
		}
		if !p.Check(" " + strings.ToLower(p.Word) + " ") {
			t.Error("check should ignore case and spaces")
		}
		if p.Check("WRONG") {
			t.Error("wrong answer should fail")
		}
	}
}
