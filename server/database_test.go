package main

import (
	"path/filepath"
	"testing"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := OpenDB(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestDBLeaderboardOrderAndLimit(t *testing.T) {
	db := openTestDB(t)
	for _, s := range []int{300, 1200, 50, 900} {
		if err := db.SubmitScore(GenerateID(4), s, 0); err != nil {
			t.Fatalf("submit: %v", err)
		}
	}
	board, err := db.GetLeaderboard(3)
	if err != nil {
		t.Fatal(err)
	}
	if len(board) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(board))
	}
	for i, want := range []int{1200, 900, 300} {
		if board[i].Score != want {
			t.Errorf("row %d: expected %d, got %d", i, want, board[i].Score)
		}
	}
	if err := db.SubmitScore("", 10, 0); err == nil {
		t.Error("expected an error for an empty name")
	}
}

func TestDBPlayersAndStats(t *testing.T) {
	db := openTestDB(t)
	id, err := db.CreatePlayer("neo", "hash")
	if err != nil {
		t.Fatal(err)
	}
	if exists, _ := db.UsernameExists("neo"); !exists {
		t.Error("expected neo to exist")
	}
	if exists, _ := db.UsernameExists("trinity"); exists {
		t.Error("trinity should not exist")
	}
	p, err := db.GetPlayerByUsername("neo")
	if err != nil || p == nil || p.ID != id {
		t.Fatalf("lookup: %+v %v", p, err)
	}
	if p, _ := db.GetPlayerByUsername("nobody"); p != nil {
		t.Error("expected nil for an unknown user")
	}

	db.UpdateStatsAfterEncounter(id, Outcome{Victory: false, Score: 9000, Duration: 10})
	db.UpdateStatsAfterEncounter(id, Outcome{Victory: true, Score: 700, Duration: 5})
	stats, err := db.GetStats(id)
	if err != nil {
		t.Fatal(err)
	}
	if stats.Encounters != 2 || stats.Victories != 1 {
		t.Errorf("unexpected counts %+v", stats)
	}
	if stats.BestScore != 700 {
		t.Errorf("only victories count toward best score, got %d", stats.BestScore)
	}
}

func TestDBSettingsAndAchievements(t *testing.T) {
	db := openTestDB(t)
	if v := db.GetSetting("missing"); v != "" {
		t.Errorf("expected empty setting, got %q", v)
	}
	db.SetSetting("k", "v1")
	db.SetSetting("k", "v2")
	if v := db.GetSetting("k"); v != "v2" {
		t.Errorf("expected v2, got %q", v)
	}

	id, _ := db.CreatePlayer("ada", "x")
	if isNew, err := db.UnlockAchievement(id, "survivor"); err != nil || !isNew {
		t.Errorf("first unlock: %v %v", isNew, err)
	}
	if isNew, _ := db.UnlockAchievement(id, "survivor"); isNew {
		t.Error("second unlock should not be new")
	}
	ids, _ := db.GetAchievements(id)
	if len(ids) != 1 || ids[0] != "survivor" {
		t.Errorf("unexpected achievements %v", ids)
	}
}
