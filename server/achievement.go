package main

// AchievementDef describes one unlockable badge
type AchievementDef struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

var Achievements = []AchievementDef{
	{"survivor", "Survivor", "Defeat the boss"},
	{"flawless", "Flawless", "Defeat the boss without losing a life"},
	{"firewall", "Firewall Breached", "Pass the hacking challenge"},
	{"scholar", "Scholar", "Answer every security question correctly"},
}

// earned reports whether an outcome satisfies an achievement
func earned(id string, o Outcome) bool {
	switch id {
	case "survivor":
		return o.Victory
	case "flawless":
		return o.Victory && o.Lives == o.MaxLives
	case "firewall":
		return o.SkillTriggered && !o.Rage
	case "scholar":
		return o.QuestionsAsked > 0 && o.QuestionsCorrect == o.QuestionsAsked
	}
	return false
}

// EarnedAchievements lists every achievement an outcome satisfies
func EarnedAchievements(o Outcome) []AchievementDef {
	var out []AchievementDef
	for _, def := range Achievements {
		if earned(def.ID, o) {
			out = append(out, def)
		}
	}
	return out
}

// CheckAchievements unlocks what the outcome earned and returns only the new ones
func CheckAchievements(db *DB, playerID int64, o Outcome) []AchievementDef {
	if db == nil || playerID == 0 {
		return nil
	}
	var unlocked []AchievementDef
	for _, def := range EarnedAchievements(o) {
		if isNew, err := db.UnlockAchievement(playerID, def.ID); err == nil && isNew {
			unlocked = append(unlocked, def)
		}
	}
	return unlocked
}
