package main

const (
	BarricadeBlockW  = 15.0
	BarricadeBlockH  = 10.0
	BarricadeCols    = 10
	BarricadeRows    = 4
	BarricadeOffsetY = 120.0 // distance from the bottom edge
)

// Barricade is a destructible shield made of small blocks
type Barricade struct {
	Blocks []Rect `msgpack:"b"`
}

// NewBarricades places the two shields at one and two thirds of the screen width
func NewBarricades(width, height float64) []Barricade {
	bw := BarricadeCols * BarricadeBlockW
	y := height - BarricadeOffsetY
	xs := []float64{width/3 - bw/2, 2*width/3 - bw/2}
	out := make([]Barricade, 0, len(xs))
	for _, x := range xs {
		b := Barricade{Blocks: make([]Rect, 0, BarricadeRows*BarricadeCols)}
		for row := 0; row < BarricadeRows; row++ {
			for col := 0; col < BarricadeCols; col++ {
				b.Blocks = append(b.Blocks, Rect{
					X: x + float64(col)*BarricadeBlockW,
					Y: y + float64(row)*BarricadeBlockH,
					W: BarricadeBlockW,
					H: BarricadeBlockH,
				})
			}
		}
		out = append(out, b)
	}
	return out
}

// Hit reports whether (x,y) lands on a block. Hostile shots destroy the block.
func (b *Barricade) Hit(x, y float64, destroy bool) bool {
	for i, r := range b.Blocks {
		if !r.ContainsHalfOpen(x, y) {
			continue
		}
		if destroy {
			b.Blocks = append(b.Blocks[:i], b.Blocks[i+1:]...)
		}
		return true
	}
	return false
}

// BlockCount returns the number of intact blocks
func (b *Barricade) BlockCount() int {
	return len(b.Blocks)
}

// ResolveBarricades consumes every projectile that lands on a barricade block.
// Enemy and boss shots chip the block away; player shots leave it intact.
func (p *ProjectilePool) ResolveBarricades(barricades []Barricade) {
	if len(barricades) == 0 {
		return
	}
	hit := func(destroy bool) func(*Projectile) bool {
		return func(pr *Projectile) bool {
			for i := range barricades {
				if barricades[i].Hit(pr.X, pr.Y, destroy) {
					return true
				}
			}
			return false
		}
	}
	p.Enemy = filterProjectiles(p.Enemy, hit(true))
	p.Boss = filterProjectiles(p.Boss, hit(true))
	p.Player = filterProjectiles(p.Player, hit(false))
}
