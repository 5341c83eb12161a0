package main

import (
	"context"
	"math"
	"math/rand"
	"testing"
)

// scriptedSkill returns a fixed result and counts invocations
type scriptedSkill struct {
	result bool
	calls  int
}

func (s *scriptedSkill) Run(ctx context.Context) bool {
	s.calls++
	return s.result
}

func newTestBoss(skill SkillChallenge) *BossController {
	return NewBossController(DefaultTuning().Boss, ScreenWidth, ScreenHeight, rand.New(rand.NewSource(7)), skill)
}

func TestPhaseForBoundaries(t *testing.T) {
	cases := []struct {
		health int
		want   Phase
	}{
		{100, Phase1}, {81, Phase1},
		{80, Phase2}, {61, Phase2},
		{60, Phase3}, {41, Phase3},
		{40, Phase4}, {21, Phase4},
		{20, Phase5}, {1, Phase5}, {0, Phase5},
	}
	for _, c := range cases {
		if got := PhaseFor(c.health, 100); got != c.want {
			t.Errorf("health %d: expected phase %d, got %d", c.health, c.want, got)
		}
	}
}

func TestPhaseForEveryHealth(t *testing.T) {
	for h := 0; h <= 100; h++ {
		var want Phase
		switch {
		case h >= 81:
			want = Phase1
		case h >= 61:
			want = Phase2
		case h >= 41:
			want = Phase3
		case h >= 21:
			want = Phase4
		default:
			want = Phase5
		}
		if got := PhaseFor(h, 100); got != want {
			t.Errorf("health %d: expected phase %d, got %d", h, want, got)
		}
	}
}

func TestBossPhaseScenario(t *testing.T) {
	b := newTestBoss(nil)
	for _, c := range []struct {
		health int
		want   Phase
	}{{100, Phase1}, {70, Phase2}, {45, Phase3}, {25, Phase4}, {10, Phase5}} {
		b.Health = c.health
		if b.Phase() != c.want {
			t.Errorf("health %d: expected phase %d, got %d", c.health, c.want, b.Phase())
		}
	}
}

func TestRageModeIdempotent(t *testing.T) {
	b := newTestBoss(nil)
	if b.Interval(Phase1) != 0.15 {
		t.Fatalf("expected phase 1 interval 0.15, got %f", b.Interval(Phase1))
	}
	b.EnableRageMode()
	if math.Abs(b.Interval(Phase1)-0.075) > 1e-12 {
		t.Errorf("expected 0.075 after rage, got %f", b.Interval(Phase1))
	}
	if math.Abs(b.Speed()-4.5) > 1e-12 {
		t.Errorf("expected speed 4.5 after rage, got %f", b.Speed())
	}
	b.EnableRageMode()
	if math.Abs(b.Interval(Phase1)-0.075) > 1e-12 {
		t.Errorf("second rage call changed interval to %f", b.Interval(Phase1))
	}
	if math.Abs(b.Speed()-4.5) > 1e-12 {
		t.Errorf("second rage call changed speed to %f", b.Speed())
	}
	if !b.RageMode {
		t.Error("rage mode should stay enabled")
	}
}

func TestSkillChallengeTriggersOnce(t *testing.T) {
	skill := &scriptedSkill{result: true}
	b := newTestBoss(skill)
	pool := NewProjectilePool(ScreenWidth, ScreenHeight)
	player := NewPlayer(ScreenWidth, ScreenHeight, 3)
	ctx := context.Background()
	dt := 1.0 / TickRate

	b.Health = 51
	b.Update(ctx, 0, dt, player, pool)
	if skill.calls != 0 {
		t.Fatalf("expected no challenge at 51, got %d calls", skill.calls)
	}

	now := 0.0
	for h := 50; h >= 40; h-- {
		b.TakeDamage(1)
		now += dt
		b.Update(ctx, now, dt, player, pool)
	}
	if skill.calls != 1 {
		t.Errorf("expected exactly 1 challenge, got %d", skill.calls)
	}
	if !b.MinigameTriggered {
		t.Error("minigame flag should be set")
	}
	if b.RageMode {
		t.Error("passing the challenge should not enable rage")
	}
}

func TestSkillChallengeFailureEnablesRage(t *testing.T) {
	skill := &scriptedSkill{result: false}
	b := newTestBoss(skill)
	b.Health = 50
	b.Update(context.Background(), 0, 1.0/TickRate, NewPlayer(ScreenWidth, ScreenHeight, 3), NewProjectilePool(ScreenWidth, ScreenHeight))
	if !b.RageMode {
		t.Error("failed challenge should enable rage mode")
	}
}

func TestSkillChallengeSuspendsTick(t *testing.T) {
	b := newTestBoss(&scriptedSkill{result: true})
	pool := NewProjectilePool(ScreenWidth, ScreenHeight)
	b.Health = 50
	x := b.X
	b.Update(context.Background(), 0, 1.0/TickRate, NewPlayer(ScreenWidth, ScreenHeight, 3), pool)
	if b.X != x || pool.Len() != 0 {
		t.Error("boss should neither move nor fire on the challenge tick")
	}
}

func TestBossDefeatReportedOnce(t *testing.T) {
	b := newTestBoss(nil)
	b.MinigameTriggered = true
	b.TakeDamage(500)
	if b.Health != 0 {
		t.Errorf("health should clamp at 0, got %d", b.Health)
	}
	if !b.Defeated() {
		t.Error("first Defeated call should report defeat")
	}
	if b.Defeated() {
		t.Error("defeat should only be reported once")
	}

	pool := NewProjectilePool(ScreenWidth, ScreenHeight)
	x, y := b.X, b.Y
	b.Update(context.Background(), 10, 1.0/TickRate, NewPlayer(ScreenWidth, ScreenHeight, 3), pool)
	if pool.Len() != 0 || b.X != x || b.Y != y {
		t.Error("defeated boss should neither move nor fire")
	}
}

func TestBossResetClearsFlags(t *testing.T) {
	b := newTestBoss(nil)
	b.EnableRageMode()
	b.MinigameTriggered = true
	b.TakeDamage(60)
	b.X = 0

	b.Reset()
	if b.RageMode || b.MinigameTriggered {
		t.Error("reset should clear rage and minigame flags")
	}
	if b.Health != b.MaxHealth {
		t.Errorf("expected full health, got %d", b.Health)
	}
	if b.Interval(Phase1) != 0.15 || b.Speed() != 3 {
		t.Error("reset should restore base interval and speed")
	}
	if b.X != (ScreenWidth-BossW)/2 || b.Y != BossStartY {
		t.Errorf("expected start position, got (%f,%f)", b.X, b.Y)
	}
}

func TestBossPhaseOneFiresStraightDown(t *testing.T) {
	b := newTestBoss(nil)
	pool := NewProjectilePool(ScreenWidth, ScreenHeight)
	player := NewPlayer(ScreenWidth, ScreenHeight, 3)
	dt := 1.0 / TickRate

	b.Update(context.Background(), 0, dt, player, pool)
	if len(pool.Boss) != 1 {
		t.Fatalf("expected 1 boss shot, got %d", len(pool.Boss))
	}
	s := pool.Boss[0]
	if s.DX != 0 || s.DY != BossShotSpeed {
		t.Errorf("expected straight-down shot, got (%f,%f)", s.DX, s.DY)
	}
	if s.Y != b.Y+b.H {
		t.Errorf("expected shot from boss bottom, got y=%f", s.Y)
	}

	// Cooldown holds the next shot back.
	b.Update(context.Background(), 0.1, dt, player, pool)
	if len(pool.Boss) != 1 {
		t.Errorf("expected cooldown to block a second shot, got %d", len(pool.Boss))
	}
	b.Update(context.Background(), 0.2, dt, player, pool)
	if len(pool.Boss) != 2 {
		t.Errorf("expected a second shot after the interval, got %d", len(pool.Boss))
	}
}

func TestBossBounceReversesAtMargin(t *testing.T) {
	b := newTestBoss(nil)
	b.X = b.maxX() - 1
	b.Dir = 1
	bc := &BossContext{Scale: 1, Width: ScreenWidth, Height: ScreenHeight}
	BounceMove{}.Move(b, bc)
	if b.Dir != -1 {
		t.Errorf("expected direction to flip, got %f", b.Dir)
	}
	if b.X > b.maxX() {
		t.Errorf("expected boss back inside the margin, got %f", b.X)
	}
}

func TestBossTrackingCapped(t *testing.T) {
	b := newTestBoss(nil)
	b.X = 0
	bc := &BossContext{Scale: 1, Player: Rect{X: 1000, W: PlayerW, H: PlayerH}}
	TrackMove{}.Move(b, bc)
	if b.X != b.Speed() {
		t.Errorf("expected tracking step capped at speed %f, got %f", b.Speed(), b.X)
	}
}

func TestBossAimedAttackHeadsForPlayer(t *testing.T) {
	b := newTestBoss(nil)
	pool := NewProjectilePool(ScreenWidth, ScreenHeight)
	bc := &BossContext{
		Player: Rect{X: 0, Y: 500, W: PlayerW, H: PlayerH},
		Rand:   rand.New(rand.NewSource(3)),
		Pool:   pool,
	}
	AimedAttack{}.Fire(b, bc)
	if len(pool.Boss) != 1 {
		t.Fatalf("expected 1 shot, got %d", len(pool.Boss))
	}
	if pool.Boss[0].DX >= 0 || pool.Boss[0].DY <= 0 {
		t.Errorf("expected shot down and to the left, got (%f,%f)", pool.Boss[0].DX, pool.Boss[0].DY)
	}
}

func TestBossWanderStaysInBounds(t *testing.T) {
	b := newTestBoss(nil)
	rng := rand.New(rand.NewSource(11))
	for i := 0; i < 600; i++ {
		bc := &BossContext{Now: float64(i) / TickRate, Scale: 1, Width: ScreenWidth, Height: ScreenHeight, Rand: rng}
		WanderMove{}.Move(b, bc)
		if b.WanderX < b.minX() || b.WanderX > b.maxX() {
			t.Fatalf("wander target x %f out of bounds", b.WanderX)
		}
		if b.WanderY < WanderMinY || b.WanderY > ScreenHeight/3 {
			t.Fatalf("wander target y %f out of bounds", b.WanderY)
		}
	}
}

func TestBossPhaseFiveFiresVolatile(t *testing.T) {
	b := newTestBoss(nil)
	b.MinigameTriggered = true
	b.Health = 10
	pool := NewProjectilePool(ScreenWidth, ScreenHeight)
	b.Update(context.Background(), 0, 1.0/TickRate, NewPlayer(ScreenWidth, ScreenHeight, 3), pool)
	if len(pool.Boss) != 1 || pool.Boss[0].Kind() != KindVolatile {
		t.Fatalf("expected one volatile shot, got %d", len(pool.Boss))
	}
}

func TestBossShiftPreservesCooldown(t *testing.T) {
	b := newTestBoss(nil)
	pool := NewProjectilePool(ScreenWidth, ScreenHeight)
	player := NewPlayer(ScreenWidth, ScreenHeight, 3)
	b.SetPhaseBehavior(Phase1, PhaseBehavior{Attack: StraightAttack{}})
	b.Update(context.Background(), 1.0, 1.0/TickRate, player, pool)

	before := b.CooldownRemaining(Phase1, 1.05)
	b.Shift(30)
	after := b.CooldownRemaining(Phase1, 31.05)
	if math.Abs(before-after) > 1e-9 {
		t.Errorf("expected cooldown %f preserved, got %f", before, after)
	}
}
