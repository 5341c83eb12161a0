package main

import "testing"

func achievementIDs(defs []AchievementDef) map[string]bool {
	ids := make(map[string]bool)
	for _, d := range defs {
		ids[d.ID] = true
	}
	return ids
}

func TestEarnedAchievements(t *testing.T) {
	tests := []struct {
		name string
		o    Outcome
		want []string
	}{
		{"defeat", Outcome{Victory: false, Lives: 0, MaxLives: 3}, nil},
		{"flawless victory", Outcome{Victory: true, Lives: 3, MaxLives: 3}, []string{"survivor", "flawless"}},
		{"scarred victory", Outcome{Victory: true, Lives: 1, MaxLives: 3}, []string{"survivor"}},
		{"skill passed", Outcome{SkillTriggered: true}, []string{"firewall"}},
		{"skill failed", Outcome{SkillTriggered: true, Rage: true}, nil},
		{"all correct", Outcome{QuestionsAsked: 2, QuestionsCorrect: 2}, []string{"scholar"}},
		{"no questions", Outcome{QuestionsAsked: 0, QuestionsCorrect: 0}, nil},
	}
	for _, tt := range tests {
		got := achievementIDs(EarnedAchievements(tt.o))
		if len(got) != len(tt.want) {
			t.Errorf("%s: expected %v, got %v", tt.name, tt.want, got)
			continue
		}
		for _, id := range tt.want {
			if !got[id] {
				t.Errorf("%s: missing %s", tt.name, id)
			}
		}
	}
}

func TestCheckAchievementsOnlyNew(t *testing.T) {
	db := openTestDB(t)
	id, _ := db.CreatePlayer("dozer", "x")
	o := Outcome{Victory: true, Lives: 2, MaxLives: 3}

	if got := CheckAchievements(db, id, o); len(got) != 1 || got[0].ID != "survivor" {
		t.Errorf("expected survivor, got %v", got)
	}
	if got := CheckAchievements(db, id, o); len(got) != 0 {
		t.Errorf("expected nothing new, got %v", got)
	}
	if got := CheckAchievements(db, 0, o); got != nil {
		t.Error("guests never unlock achievements")
	}
}
