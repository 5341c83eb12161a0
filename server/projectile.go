package main

import (
	"log"
	"math"
)

const (
	PlayerShotSpeed   = 7.0 // pixels/tick
	PlayerShotW       = 5.0
	PlayerShotH       = 10.0
	TripleShotSpread  = 20.0 // degrees either side of centre
	TripleShotOffset  = 10.0 // pixels either side of centre
	EnemyShotSpeed    = 5.0  // pixels/tick
	BossShotSpeed     = 3.0  // pixels/tick
	ShotW             = 5.0
	ShotH             = 10.0
	FragmentCount     = 8
	FragmentSpeed     = 4.0   // pixels/tick
	ExplosionMargin   = 100.0 // volatile shots burst this far above the bottom edge
	maxProjectilesPer = 500   // per pool
)

// Owner identifies which pool a projectile belongs to
type Owner uint8

const (
	OwnerPlayer Owner = iota
	OwnerEnemy
	OwnerBoss
)

func (o Owner) String() string {
	switch o {
	case OwnerPlayer:
		return "player"
	case OwnerEnemy:
		return "enemy"
	case OwnerBoss:
		return "boss"
	}
	return "unknown"
}

// Kind discriminates projectile variants
type Kind uint8

const (
	KindStandard Kind = iota
	KindVolatile
)

// VolatilePayload is carried only by volatile projectiles.
// Sprite is a render hint; the engine never reads it.
type VolatilePayload struct {
	Sprite string `msgpack:"s"`
}

// Projectile represents one bullet. X,Y is the point tested for collisions.
type Projectile struct {
	Owner    Owner            `msgpack:"o"`
	X        float64          `msgpack:"x"`
	Y        float64          `msgpack:"y"`
	DX       float64          `msgpack:"dx"` // pixels/tick
	DY       float64          `msgpack:"dy"`
	Angle    float64          `msgpack:"a"` // degrees from vertical, player shots only
	W        float64          `msgpack:"w"`
	H        float64          `msgpack:"h"`
	Volatile *VolatilePayload `msgpack:"v,omitempty"`
}

// Kind is derived from the payload so a projectile can never claim a kind it cannot carry
func (p *Projectile) Kind() Kind {
	if p.Volatile != nil {
		return KindVolatile
	}
	return KindStandard
}

// ToState converts to protocol state
func (p *Projectile) ToState() ProjectileState {
	return ProjectileState{
		X: round1(p.X),
		Y: round1(p.Y),
		O: uint8(p.Owner),
		K: uint8(p.Kind()),
	}
}

// ProjectilePool owns the player, enemy and boss bullet collections
type ProjectilePool struct {
	Player []Projectile
	Enemy  []Projectile
	Boss   []Projectile

	width, height float64
	explosionY    float64

	grid    *SpatialGrid
	refsBuf []EntityRef
}

// NewProjectilePool creates empty pools for a width x height playfield.
// Volatile boss shots explode once they reach ExplosionMargin above the bottom edge,
// which is always below the lowest boss muzzle.
func NewProjectilePool(width, height float64) *ProjectilePool {
	return &ProjectilePool{
		Player:     make([]Projectile, 0, 64),
		Enemy:      make([]Projectile, 0, 64),
		Boss:       make([]Projectile, 0, 128),
		width:      width,
		height:     height,
		explosionY: height - ExplosionMargin,
		grid:       NewSpatialGrid(width, height),
	}
}

// Len returns the total number of live projectiles
func (p *ProjectilePool) Len() int {
	return len(p.Player) + len(p.Enemy) + len(p.Boss)
}

// Clear empties every pool
func (p *ProjectilePool) Clear() {
	p.Player = p.Player[:0]
	p.Enemy = p.Enemy[:0]
	p.Boss = p.Boss[:0]
}

// SpawnPlayerShot fires from (x,y). With triple shot active three shots fan out
// at -20, 0 and +20 degrees with matching x offsets.
func (p *ProjectilePool) SpawnPlayerShot(x, y float64, triple bool) {
	if !triple {
		p.spawnAngled(x, y, 0)
		return
	}
	p.spawnAngled(x-TripleShotOffset, y, -TripleShotSpread)
	p.spawnAngled(x, y, 0)
	p.spawnAngled(x+TripleShotOffset, y, TripleShotSpread)
}

func (p *ProjectilePool) spawnAngled(x, y, angle float64) {
	if len(p.Player) >= maxProjectilesPer {
		return
	}
	rad := degToRad(angle)
	p.Player = append(p.Player, Projectile{
		Owner: OwnerPlayer,
		X:     x,
		Y:     y,
		DX:    PlayerShotSpeed * math.Sin(rad),
		DY:    -PlayerShotSpeed * math.Cos(rad),
		Angle: angle,
		W:     PlayerShotW,
		H:     PlayerShotH,
	})
}

// SpawnEnemyShot drops a shot straight down from a wave enemy
func (p *ProjectilePool) SpawnEnemyShot(x, y float64) {
	if len(p.Enemy) >= maxProjectilesPer {
		return
	}
	p.Enemy = append(p.Enemy, Projectile{
		Owner: OwnerEnemy, X: x, Y: y, DY: EnemyShotSpeed, W: ShotW, H: ShotH,
	})
}

// SpawnBossShot adds a standard boss shot. A zero velocity drifts straight down.
func (p *ProjectilePool) SpawnBossShot(x, y, dx, dy float64) {
	if dx == 0 && dy == 0 {
		dy = BossShotSpeed
	}
	p.spawnBoss(Projectile{Owner: OwnerBoss, X: x, Y: y, DX: dx, DY: dy, W: ShotW, H: ShotH})
}

// SpawnBossVolatile adds a volatile boss shot that bursts at the explosion altitude
func (p *ProjectilePool) SpawnBossVolatile(x, y, dx, dy float64, payload VolatilePayload) {
	if dx == 0 && dy == 0 {
		dy = BossShotSpeed
	}
	p.spawnBoss(Projectile{
		Owner: OwnerBoss, X: x, Y: y, DX: dx, DY: dy, W: ShotW * 2, H: ShotH * 2,
		Volatile: &payload,
	})
}

func (p *ProjectilePool) spawnBoss(pr Projectile) {
	if len(p.Boss) >= maxProjectilesPer {
		return
	}
	p.Boss = append(p.Boss, pr)
}

// Advance moves every projectile by its velocity. Velocities are per 60 Hz tick,
// so dt is scaled by TickRate. Volatile boss shots that reach the explosion
// altitude are replaced by a radial burst of standard shots.
func (p *ProjectilePool) Advance(dt float64) {
	scale := dt * TickRate
	move := func(list []Projectile) {
		for i := range list {
			list[i].X += list[i].DX * scale
			list[i].Y += list[i].DY * scale
		}
	}
	move(p.Player)
	move(p.Enemy)
	move(p.Boss)

	var bursts [][2]float64
	kept := p.Boss[:0]
	for _, pr := range p.Boss {
		if pr.Kind() == KindVolatile && pr.Y >= p.explosionY {
			bursts = append(bursts, [2]float64{pr.X, pr.Y})
			continue
		}
		kept = append(kept, pr)
	}
	p.Boss = kept
	for _, b := range bursts {
		p.explode(b[0], b[1])
	}
}

// explode emits FragmentCount standard shots at even angular steps
func (p *ProjectilePool) explode(x, y float64) {
	step := 2 * math.Pi / FragmentCount
	for i := 0; i < FragmentCount; i++ {
		a := float64(i) * step
		p.Boss = append(p.Boss, Projectile{
			Owner: OwnerBoss,
			X:     x,
			Y:     y,
			DX:    math.Cos(a) * FragmentSpeed,
			DY:    math.Sin(a) * FragmentSpeed,
			W:     ShotW,
			H:     ShotW,
		})
	}
}

// Cull drops projectiles that have left the playfield
func (p *ProjectilePool) Cull() {
	p.Player = filterProjectiles(p.Player, func(pr *Projectile) bool {
		return pr.Y < 0 || pr.X < 0 || pr.X > p.width
	})
	p.Enemy = filterProjectiles(p.Enemy, func(pr *Projectile) bool {
		return pr.Y > p.height
	})
	// Boss shots fan out in every direction, so they also leave by the top and sides.
	p.Boss = filterProjectiles(p.Boss, func(pr *Projectile) bool {
		return pr.Y > p.height || pr.Y < 0 || pr.X < 0 || pr.X > p.width
	})
}

// filterProjectiles removes every projectile for which drop returns true.
// Survivors are compacted in place in a single pass, so no element is skipped
// and none is removed twice.
func filterProjectiles(list []Projectile, drop func(*Projectile) bool) []Projectile {
	kept := list[:0]
	for i := range list {
		if drop(&list[i]) {
			continue
		}
		kept = append(kept, list[i])
	}
	return kept
}

// ResolvePlayerHits removes every player shot that lands inside a live enemy,
// together with that enemy. Each shot destroys at most one enemy, the lowest
// indexed one it overlaps.
func (p *ProjectilePool) ResolvePlayerHits(enemies []Enemy) (survivors, destroyed []Enemy) {
	if len(enemies) == 0 || len(p.Player) == 0 {
		return enemies, nil
	}
	p.grid.Clear()
	for i := range enemies {
		p.grid.InsertRect(enemies[i].Rect(), EntityRef{Kind: 'e', Idx: i})
	}
	dead := make([]bool, len(enemies))

	p.Player = filterProjectiles(p.Player, func(pr *Projectile) bool {
		p.refsBuf = p.grid.QueryPoint(pr.X, pr.Y, p.refsBuf[:0])
		target := -1
		for _, ref := range p.refsBuf {
			if ref.Kind != 'e' || dead[ref.Idx] {
				continue
			}
			if (target == -1 || ref.Idx < target) && PointInRect(pr.X, pr.Y, enemies[ref.Idx].Rect()) {
				target = ref.Idx
			}
		}
		if target == -1 {
			return false
		}
		dead[target] = true
		return true
	})

	survivors = enemies[:0]
	for i, e := range enemies {
		if dead[i] {
			destroyed = append(destroyed, e)
			continue
		}
		survivors = append(survivors, e)
	}
	return survivors, destroyed
}

// ResolveBossHit consumes each player shot inside the boss box for one point of damage
func (p *ProjectilePool) ResolveBossHit(boss *BossController) bool {
	hit := false
	box := boss.Rect()
	p.Player = filterProjectiles(p.Player, func(pr *Projectile) bool {
		if !PointInRect(pr.X, pr.Y, box) {
			return false
		}
		boss.TakeDamage(1)
		hit = true
		return true
	})
	return hit
}

// ResolvePlayerHitByEnemy consumes enemy shots inside the player box.
// It reports a hit only when the player is not invulnerable.
func (p *ProjectilePool) ResolvePlayerHitByEnemy(player *Player) bool {
	var struck bool
	p.Enemy, struck = resolveAgainstPlayer(p.Enemy, player)
	return struck && !player.Invulnerable
}

// ResolvePlayerHitByBoss consumes boss shots inside the player box.
// It reports a hit only when the player is not invulnerable.
func (p *ProjectilePool) ResolvePlayerHitByBoss(player *Player) bool {
	var struck bool
	p.Boss, struck = resolveAgainstPlayer(p.Boss, player)
	return struck && !player.Invulnerable
}

func resolveAgainstPlayer(list []Projectile, player *Player) ([]Projectile, bool) {
	struck := false
	box := player.Rect()
	list = filterProjectiles(list, func(pr *Projectile) bool {
		if PointInRect(pr.X, pr.Y, box) {
			struck = true
			return true
		}
		return false
	})
	return list, struck
}

// add appends a decoded projectile to the pool named by its owner.
// Records with an unknown owner are dropped with a diagnostic.
func (p *ProjectilePool) add(pr Projectile) {
	switch pr.Owner {
	case OwnerPlayer:
		p.Player = append(p.Player, pr)
	case OwnerEnemy:
		p.Enemy = append(p.Enemy, pr)
	case OwnerBoss:
		p.Boss = append(p.Boss, pr)
	default:
		log.Printf("projectile: dropping record with unknown owner %d", pr.Owner)
	}
}
