package main

import (
	"math"
	"testing"
)

func TestTripleShotFan(t *testing.T) {
	pool := NewProjectilePool(ScreenWidth, ScreenHeight)
	pool.SpawnPlayerShot(500, 500, true)
	if len(pool.Player) != 3 {
		t.Fatalf("expected 3 shots, got %d", len(pool.Player))
	}
	angles := []float64{-20, 0, 20}
	xs := []float64{490, 500, 510}
	for i, s := range pool.Player {
		if s.Angle != angles[i] {
			t.Errorf("shot %d: expected angle %f, got %f", i, angles[i], s.Angle)
		}
		if s.X != xs[i] {
			t.Errorf("shot %d: expected x %f, got %f", i, xs[i], s.X)
		}
		if speed := math.Hypot(s.DX, s.DY); math.Abs(speed-PlayerShotSpeed) > 1e-9 {
			t.Errorf("shot %d: expected speed %f, got %f", i, PlayerShotSpeed, speed)
		}
		if s.DY >= 0 {
			t.Errorf("shot %d should travel upward", i)
		}
	}
	if pool.Player[0].DX >= 0 || pool.Player[2].DX <= 0 {
		t.Error("outer shots should fan left and right")
	}
}

func TestSingleShotStraightUp(t *testing.T) {
	pool := NewProjectilePool(ScreenWidth, ScreenHeight)
	pool.SpawnPlayerShot(100, 200, false)
	if len(pool.Player) != 1 {
		t.Fatalf("expected 1 shot, got %d", len(pool.Player))
	}
	if pool.Player[0].DX != 0 || pool.Player[0].DY != -PlayerShotSpeed {
		t.Errorf("expected (0,%f), got (%f,%f)", -PlayerShotSpeed, pool.Player[0].DX, pool.Player[0].DY)
	}
}

func TestBossShotZeroVelocityDefaults(t *testing.T) {
	pool := NewProjectilePool(ScreenWidth, ScreenHeight)
	pool.SpawnBossShot(10, 10, 0, 0)
	if pool.Boss[0].DY != BossShotSpeed {
		t.Errorf("expected default dy %f, got %f", BossShotSpeed, pool.Boss[0].DY)
	}
}

func TestAdvanceScalesWithDt(t *testing.T) {
	pool := NewProjectilePool(ScreenWidth, ScreenHeight)
	pool.SpawnEnemyShot(100, 100)
	pool.Advance(2.0 / TickRate)
	if math.Abs(pool.Enemy[0].Y-(100+2*EnemyShotSpeed)) > 1e-9 {
		t.Errorf("expected y %f, got %f", 100+2*EnemyShotSpeed, pool.Enemy[0].Y)
	}
}

func TestVolatileExplodes(t *testing.T) {
	pool := NewProjectilePool(ScreenWidth, ScreenHeight)
	pool.SpawnBossVolatile(600, ScreenHeight-ExplosionMargin-1, 0, BossShotSpeed, VolatilePayload{Sprite: "virus"})
	pool.SpawnBossShot(100, 100, 0, BossShotSpeed)
	before := len(pool.Boss)

	pool.Advance(1.0 / TickRate)
	if got := len(pool.Boss) - before; got != FragmentCount-1 {
		t.Errorf("expected net %d shots, got %d", FragmentCount-1, got)
	}
	for i, s := range pool.Boss {
		if s.Kind() != KindStandard {
			t.Errorf("shot %d should be standard after the burst", i)
		}
	}
	for _, s := range pool.Boss[1:] {
		if math.Abs(math.Hypot(s.DX, s.DY)-FragmentSpeed) > 1e-9 {
			t.Errorf("expected fragment speed %f, got %f", FragmentSpeed, math.Hypot(s.DX, s.DY))
		}
	}
}

func TestVolatileAboveThresholdSurvives(t *testing.T) {
	pool := NewProjectilePool(ScreenWidth, ScreenHeight)
	pool.SpawnBossVolatile(600, 100, 0, BossShotSpeed, VolatilePayload{})
	pool.Advance(1.0 / TickRate)
	if len(pool.Boss) != 1 || pool.Boss[0].Kind() != KindVolatile {
		t.Error("volatile shot above the threshold should keep flying")
	}
}

func TestVolatileFromLowestMuzzleDoesNotBurst(t *testing.T) {
	// boss at the bottom of the phase 5 wander band fires from its lower edge
	muzzle := ScreenHeight/3 + BossH
	pool := NewProjectilePool(ScreenWidth, ScreenHeight)
	pool.SpawnBossVolatile(600, muzzle, 0, BossShotSpeed, VolatilePayload{})
	pool.Advance(1.0 / TickRate)
	if len(pool.Boss) != 1 || pool.Boss[0].Kind() != KindVolatile {
		t.Fatalf("expected the volatile shot to keep flying, got %d shots", len(pool.Boss))
	}

	ticks := 0
	for pool.Boss[0].Kind() == KindVolatile {
		pool.Advance(1.0 / TickRate)
		ticks++
		if ticks > 1000 {
			t.Fatal("volatile shot never burst")
		}
	}
	if ticks < 2 {
		t.Errorf("expected the shot to travel before bursting, burst after %d ticks", ticks)
	}
	if y := pool.Boss[0].Y; y < ScreenHeight-ExplosionMargin {
		t.Errorf("expected burst at or below %f, got %f", ScreenHeight-ExplosionMargin, y)
	}
}

func TestCullRemovesOffscreen(t *testing.T) {
	pool := NewProjectilePool(ScreenWidth, ScreenHeight)
	pool.Player = append(pool.Player,
		Projectile{Owner: OwnerPlayer, X: 10, Y: -1},
		Projectile{Owner: OwnerPlayer, X: 10, Y: 10},
		Projectile{Owner: OwnerPlayer, X: -1, Y: 10},
		Projectile{Owner: OwnerPlayer, X: ScreenWidth + 1, Y: 10},
	)
	pool.Enemy = append(pool.Enemy,
		Projectile{Owner: OwnerEnemy, X: 10, Y: ScreenHeight + 1},
		Projectile{Owner: OwnerEnemy, X: 10, Y: ScreenHeight},
	)
	pool.Boss = append(pool.Boss,
		Projectile{Owner: OwnerBoss, X: 10, Y: -5},
		Projectile{Owner: OwnerBoss, X: 10, Y: 10},
		Projectile{Owner: OwnerBoss, X: -5, Y: 10},
	)
	pool.Cull()
	if len(pool.Player) != 1 || len(pool.Enemy) != 1 || len(pool.Boss) != 1 {
		t.Errorf("expected 1/1/1 survivors, got %d/%d/%d", len(pool.Player), len(pool.Enemy), len(pool.Boss))
	}
}

func TestFilterAdjacentRemovals(t *testing.T) {
	list := []Projectile{{X: 1}, {X: 2}, {X: 3}, {X: 4}, {X: 5}}
	list = filterProjectiles(list, func(p *Projectile) bool { return p.X == 2 || p.X == 3 })
	if len(list) != 3 || list[0].X != 1 || list[1].X != 4 || list[2].X != 5 {
		t.Errorf("unexpected survivors %+v", list)
	}
}

func TestResolvePlayerHitsFirstMatch(t *testing.T) {
	pool := NewProjectilePool(ScreenWidth, ScreenHeight)
	// Two overlapping enemies; the lower index wins.
	enemies := []Enemy{{X: 100, Y: 100}, {X: 110, Y: 100}, {X: 400, Y: 100}}
	pool.Player = append(pool.Player, Projectile{Owner: OwnerPlayer, X: 120, Y: 120})

	survivors, destroyed := pool.ResolvePlayerHits(enemies)
	if len(destroyed) != 1 || destroyed[0].X != 100 {
		t.Fatalf("expected enemy at x=100 destroyed, got %+v", destroyed)
	}
	if len(survivors) != 2 {
		t.Errorf("expected 2 survivors, got %d", len(survivors))
	}
	if len(pool.Player) != 0 {
		t.Error("shot should be consumed")
	}
}

func TestResolvePlayerHitsBoundary(t *testing.T) {
	pool := NewProjectilePool(ScreenWidth, ScreenHeight)
	enemies := []Enemy{{X: 100, Y: 100}}
	// Exactly on the right edge: not a hit.
	pool.Player = append(pool.Player, Projectile{Owner: OwnerPlayer, X: 100 + EnemySize, Y: 120})
	survivors, destroyed := pool.ResolvePlayerHits(enemies)
	if len(destroyed) != 0 || len(survivors) != 1 {
		t.Error("shot on the edge should not hit")
	}
	if len(pool.Player) != 1 {
		t.Error("missed shot should survive")
	}
}

func TestResolvePlayerHitsOnePerShot(t *testing.T) {
	pool := NewProjectilePool(ScreenWidth, ScreenHeight)
	enemies := []Enemy{{X: 100, Y: 100}}
	pool.Player = append(pool.Player,
		Projectile{Owner: OwnerPlayer, X: 110, Y: 110},
		Projectile{Owner: OwnerPlayer, X: 120, Y: 120},
	)
	_, destroyed := pool.ResolvePlayerHits(enemies)
	if len(destroyed) != 1 {
		t.Errorf("expected 1 destroyed, got %d", len(destroyed))
	}
	if len(pool.Player) != 1 {
		t.Errorf("second shot should survive, got %d shots", len(pool.Player))
	}
}

func TestResolveBossHit(t *testing.T) {
	pool := NewProjectilePool(ScreenWidth, ScreenHeight)
	boss := newTestBoss(nil)
	cx, cy := boss.Rect().Center()
	pool.Player = append(pool.Player,
		Projectile{Owner: OwnerPlayer, X: cx, Y: cy},
		Projectile{Owner: OwnerPlayer, X: 5, Y: 5},
	)
	if !pool.ResolveBossHit(boss) {
		t.Fatal("expected a boss hit")
	}
	if boss.Health != boss.MaxHealth-1 {
		t.Errorf("expected health %d, got %d", boss.MaxHealth-1, boss.Health)
	}
	if len(pool.Player) != 1 {
		t.Errorf("expected 1 remaining shot, got %d", len(pool.Player))
	}
}

func TestInvulnerablePlayerStillConsumesShot(t *testing.T) {
	pool := NewProjectilePool(ScreenWidth, ScreenHeight)
	player := NewPlayer(ScreenWidth, ScreenHeight, 3)
	player.SetInvulnerable(0, 2)
	cx, cy := player.Rect().Center()
	pool.Boss = append(pool.Boss, Projectile{Owner: OwnerBoss, X: cx, Y: cy})
	pool.Enemy = append(pool.Enemy, Projectile{Owner: OwnerEnemy, X: cx, Y: cy})

	if pool.ResolvePlayerHitByBoss(player) {
		t.Error("invulnerable player should not report a boss hit")
	}
	if pool.ResolvePlayerHitByEnemy(player) {
		t.Error("invulnerable player should not report an enemy hit")
	}
	if pool.Len() != 0 {
		t.Errorf("shots should be consumed, %d left", pool.Len())
	}
}

func TestPlayerHitByBoss(t *testing.T) {
	pool := NewProjectilePool(ScreenWidth, ScreenHeight)
	player := NewPlayer(ScreenWidth, ScreenHeight, 3)
	cx, cy := player.Rect().Center()
	pool.Boss = append(pool.Boss, Projectile{Owner: OwnerBoss, X: cx, Y: cy})
	if !pool.ResolvePlayerHitByBoss(player) {
		t.Error("expected a hit")
	}
}

func TestAddDropsUnknownOwner(t *testing.T) {
	pool := NewProjectilePool(ScreenWidth, ScreenHeight)
	pool.add(Projectile{Owner: OwnerBoss})
	pool.add(Projectile{Owner: Owner(9)})
	if pool.Len() != 1 {
		t.Errorf("expected 1 projectile, got %d", pool.Len())
	}
}
