package main

import (
	"context"
	_ "embed"
	"fmt"
	"math/rand"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed data/questions.yaml
var defaultQuestionsYAML []byte

// QuizChallenge asks the player a question and blocks until it is answered.
// It returns true for a correct answer.
type QuizChallenge interface {
	Ask(ctx context.Context) bool
}

// SkillChallenge runs the mid-fight mini-game and blocks until it ends
type SkillChallenge interface {
	Run(ctx context.Context) bool
}

// QuizFunc adapts a function to QuizChallenge
type QuizFunc func(ctx context.Context) bool

func (f QuizFunc) Ask(ctx context.Context) bool { return f(ctx) }

// SkillFunc adapts a function to SkillChallenge
type SkillFunc func(ctx context.Context) bool

func (f SkillFunc) Run(ctx context.Context) bool { return f(ctx) }

// LimitedQuiz caps how many questions one encounter may ask.
// Once the limit is reached every Ask fails without asking.
type LimitedQuiz struct {
	Inner QuizChallenge
	Limit int
	Asked int
}

func (q *LimitedQuiz) Ask(ctx context.Context) bool {
	if q.Inner == nil || q.Asked >= q.Limit {
		return false
	}
	q.Asked++
	return q.Inner.Ask(ctx)
}

// Question is one multiple-choice quiz entry
type Question struct {
	Text    string   `yaml:"question" json:"q"`
	Options []string `yaml:"options" json:"o"`
	Answer  int      `yaml:"answer" json:"-"` // index into Options
}

// QuestionBank holds the quiz questions
type QuestionBank struct {
	Questions []Question `yaml:"questions"`
}

// LoadQuestionBank reads a bank from path, or the embedded default for an empty path
func LoadQuestionBank(path string) (*QuestionBank, error) {
	data := defaultQuestionsYAML
	if path != "" {
		var err error
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read question bank %s: %w", path, err)
		}
	}
	var bank QuestionBank
	if err := yaml.Unmarshal(data, &bank); err != nil {
		return nil, fmt.Errorf("failed to parse question bank YAML: %w", err)
	}
	if err := validateQuestionBank(&bank); err != nil {
		return nil, fmt.Errorf("invalid question bank: %w", err)
	}
	return &bank, nil
}

func validateQuestionBank(bank *QuestionBank) error {
	for i, q := range bank.Questions {
		if q.Text == "" {
			return fmt.Errorf("question %d: text is required", i)
		}
		if len(q.Options) < 2 {
			return fmt.Errorf("question %d: at least two options are required, got %d", i, len(q.Options))
		}
		if q.Answer < 0 || q.Answer >= len(q.Options) {
			return fmt.Errorf("question %d: answer %d out of range", i, q.Answer)
		}
	}
	return nil
}

// Pick returns a random question whose index is not in asked, or -1 when none remain
func (b *QuestionBank) Pick(rng *rand.Rand, asked map[int]bool) int {
	avail := make([]int, 0, len(b.Questions))
	for i := range b.Questions {
		if !asked[i] {
			avail = append(avail, i)
		}
	}
	if len(avail) == 0 {
		return -1
	}
	return avail[rng.Intn(len(avail))]
}
