package main

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed data/tuning.yaml
var defaultTuningYAML []byte

// PlayerTuning holds player movement and lives
type PlayerTuning struct {
	Speed        float64 `yaml:"speed"`
	Lives        int     `yaml:"lives"`
	FireInterval float64 `yaml:"fireInterval"`
}

// BossTuning holds boss stats and the per-phase shot intervals
type BossTuning struct {
	MaxHealth       int                 `yaml:"maxHealth"`
	Speed           float64             `yaml:"speed"`
	ShotIntervals   [PhaseCount]float64 `yaml:"shotIntervals"`
	RageSpeedMul    float64             `yaml:"rageSpeedMul"`
	RageIntervalMul float64             `yaml:"rageIntervalMul"`
}

// WaveTuning holds the enemy grid difficulty curve
type WaveTuning struct {
	Count           int     `yaml:"count"`
	BaseSpeed       float64 `yaml:"baseSpeed"`
	SpeedStep       float64 `yaml:"speedStep"`
	BaseShootChance float64 `yaml:"baseShootChance"`
	ShootChanceStep float64 `yaml:"shootChanceStep"`
}

// ScoreTuning holds the score drain and penalties
type ScoreTuning struct {
	Start              int `yaml:"start"`
	DrainPerSecond     int `yaml:"drainPerSecond"`
	WrongAnswerPenalty int `yaml:"wrongAnswerPenalty"`
}

// QuizTuning limits how many questions one encounter may ask
type QuizTuning struct {
	Limit     int     `yaml:"limit"`
	TimeLimit float64 `yaml:"timeLimit"`
}

// SkillTuning holds the hacking challenge time limit
type SkillTuning struct {
	TimeLimit float64 `yaml:"timeLimit"`
}

// PowerUpTuning holds drop rates and effect durations
type PowerUpTuning struct {
	DropChance         float64 `yaml:"dropChance"`
	FallSpeed          float64 `yaml:"fallSpeed"`
	ShieldDuration     float64 `yaml:"shieldDuration"`
	TripleShotDuration float64 `yaml:"tripleShotDuration"`
}

// Tuning is the full set of gameplay numbers for an encounter
type Tuning struct {
	Player   PlayerTuning  `yaml:"player"`
	Boss     BossTuning    `yaml:"boss"`
	Waves    WaveTuning    `yaml:"waves"`
	Score    ScoreTuning   `yaml:"score"`
	Quiz     QuizTuning    `yaml:"quiz"`
	Skill    SkillTuning   `yaml:"skill"`
	PowerUps PowerUpTuning `yaml:"powerUps"`
}

// DefaultTuning returns the embedded tuning. It panics if the embedded file is invalid.
func DefaultTuning() Tuning {
	t, err := ParseTuning(defaultTuningYAML)
	if err != nil {
		panic("embedded tuning: " + err.Error())
	}
	return *t
}

// LoadTuning reads a tuning file, falling back to the embedded defaults for an empty path
func LoadTuning(path string) (*Tuning, error) {
	if path == "" {
		t := DefaultTuning()
		return &t, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read tuning file %s: %w", path, err)
	}
	t, err := ParseTuning(data)
	if err != nil {
		return nil, fmt.Errorf("invalid tuning in %s: %w", path, err)
	}
	return t, nil
}

// ParseTuning decodes YAML over the embedded defaults, so a file only needs the keys it changes
func ParseTuning(data []byte) (*Tuning, error) {
	var t Tuning
	if len(defaultTuningYAML) > 0 {
		if err := yaml.Unmarshal(defaultTuningYAML, &t); err != nil {
			return nil, fmt.Errorf("failed to parse default tuning: %w", err)
		}
	}
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("failed to parse tuning YAML: %w", err)
	}
	if err := validateTuning(&t); err != nil {
		return nil, err
	}
	return &t, nil
}

func validateTuning(t *Tuning) error {
	if t.Player.Lives < 1 {
		return fmt.Errorf("player.lives must be at least 1, got %d", t.Player.Lives)
	}
	if t.Player.Speed <= 0 {
		return fmt.Errorf("player.speed must be positive, got %v", t.Player.Speed)
	}
	if t.Player.FireInterval < 0 {
		return fmt.Errorf("player.fireInterval cannot be negative, got %v", t.Player.FireInterval)
	}
	if t.Boss.MaxHealth < 1 {
		return fmt.Errorf("boss.maxHealth must be at least 1, got %d", t.Boss.MaxHealth)
	}
	if t.Boss.Speed <= 0 {
		return fmt.Errorf("boss.speed must be positive, got %v", t.Boss.Speed)
	}
	for i, iv := range t.Boss.ShotIntervals {
		if iv <= 0 {
			return fmt.Errorf("boss.shotIntervals[%d] must be positive, got %v", i, iv)
		}
	}
	if t.Boss.RageSpeedMul <= 0 || t.Boss.RageIntervalMul <= 0 {
		return fmt.Errorf("boss rage multipliers must be positive")
	}
	if t.Waves.Count < 0 {
		return fmt.Errorf("waves.count cannot be negative, got %d", t.Waves.Count)
	}
	if t.Waves.BaseShootChance < 0 || t.Waves.BaseShootChance > 1 {
		return fmt.Errorf("waves.baseShootChance must be in [0,1], got %v", t.Waves.BaseShootChance)
	}
	if t.Score.Start < 0 || t.Score.DrainPerSecond < 0 || t.Score.WrongAnswerPenalty < 0 {
		return fmt.Errorf("score values cannot be negative")
	}
	if t.Quiz.Limit < 0 {
		return fmt.Errorf("quiz.limit cannot be negative, got %d", t.Quiz.Limit)
	}
	if t.PowerUps.DropChance < 0 || t.PowerUps.DropChance > 1 {
		return fmt.Errorf("powerUps.dropChance must be in [0,1], got %v", t.PowerUps.DropChance)
	}
	return nil
}
