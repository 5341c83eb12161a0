package main

const SpatialCellSize = 50.0 // enemy box plus spacing

// EntityRef identifies an entity in the grid
type EntityRef struct {
	Kind byte // 'e'=enemy, 'b'=barricade block
	Idx  int  // index into the corresponding flat list
}

// SpatialGrid is a fixed-size grid for broad-phase collision queries over the screen
type SpatialGrid struct {
	cols, rows int
	cells      [][]EntityRef
}

// NewSpatialGrid sizes a grid to cover a width x height playfield
func NewSpatialGrid(width, height float64) *SpatialGrid {
	cols := int(width/SpatialCellSize) + 1
	rows := int(height/SpatialCellSize) + 1
	return &SpatialGrid{
		cols:  cols,
		rows:  rows,
		cells: make([][]EntityRef, cols*rows),
	}
}

// Clear resets all cells (keeps allocated capacity)
func (g *SpatialGrid) Clear() {
	for i := range g.cells {
		g.cells[i] = g.cells[i][:0]
	}
}

func (g *SpatialGrid) clampCell(cx, cy int) (int, int) {
	if cx < 0 {
		cx = 0
	} else if cx >= g.cols {
		cx = g.cols - 1
	}
	if cy < 0 {
		cy = 0
	} else if cy >= g.rows {
		cy = g.rows - 1
	}
	return cx, cy
}

func (g *SpatialGrid) cellIdx(x, y float64) int {
	cx, cy := g.clampCell(int(x/SpatialCellSize), int(y/SpatialCellSize))
	return cy*g.cols + cx
}

// InsertRect adds an entity reference to all cells overlapping r
func (g *SpatialGrid) InsertRect(r Rect, ref EntityRef) {
	minCX, minCY := g.clampCell(int(r.X/SpatialCellSize), int(r.Y/SpatialCellSize))
	maxCX, maxCY := g.clampCell(int((r.X+r.W)/SpatialCellSize), int((r.Y+r.H)/SpatialCellSize))
	for cy := minCY; cy <= maxCY; cy++ {
		for cx := minCX; cx <= maxCX; cx++ {
			idx := cy*g.cols + cx
			g.cells[idx] = append(g.cells[idx], ref)
		}
	}
}

// QueryPoint appends the refs registered in the cell holding (x,y) to buf
func (g *SpatialGrid) QueryPoint(x, y float64, buf []EntityRef) []EntityRef {
	return append(buf, g.cells[g.cellIdx(x, y)]...)
}
