package game

import (
	"math"
	"slices"
)

// Cell represents a spatial partition cell holding snapshot indices
type Cell struct {
	// Indices into the snapshot the grid was built from
	Entities []int
}

// Clear removes all entries but keeps capacity
func (c *Cell) Clear() {
	c.Entities = c.Entities[:0]
}

// Grid is a uniform broad-phase grid over the field. Each body is stored in
// the cell containing its center; positions outside the field are clamped to
// the border cells.
type Grid struct {
	width, height float64
	cellSize      float64
	cols, rows    int
	cells         []Cell
	cellOf        []int
}

// NewGrid creates a grid covering a width x height field
func NewGrid(width, height, cellSize float64) *Grid {
	g := &Grid{width: width, height: height}
	g.resize(cellSize)
	return g
}

// CellSize returns the current cell edge length
func (g *Grid) CellSize() float64 {
	return g.cellSize
}

func (g *Grid) resize(cellSize float64) {
	if cellSize <= 0 {
		cellSize = math.Max(g.width, g.height)
	}
	g.cellSize = cellSize
	g.cols = max(1, int(math.Ceil(g.width/cellSize)))
	g.rows = max(1, int(math.Ceil(g.height/cellSize)))
	if len(g.cells) != g.cols*g.rows {
		g.cells = make([]Cell, g.cols*g.rows)
	}
}

// WorldToCell converts field coordinates to clamped cell coordinates
func (g *Grid) WorldToCell(x, y float64) (int, int) {
	cx := int(math.Floor(x / g.cellSize))
	cy := int(math.Floor(y / g.cellSize))
	return min(max(cx, 0), g.cols-1), min(max(cy, 0), g.rows-1)
}

// Build buckets bodies by center. The cell size grows to at least the
// largest body extent so that any two overlapping bodies sit in the same or
// adjacent cells.
func (g *Grid) Build(bodies []*Entity, minCellSize float64) {
	size := minCellSize
	for _, e := range bodies {
		size = math.Max(size, math.Max(e.Size.W, e.Size.H))
	}
	if size != g.cellSize {
		g.resize(size)
	}

	for i := range g.cells {
		g.cells[i].Clear()
	}
	g.cellOf = slices.Grow(g.cellOf[:0], len(bodies))[:len(bodies)]
	for i, e := range bodies {
		cx, cy := g.WorldToCell(e.Pos.X, e.Pos.Y)
		idx := cy*g.cols + cx
		g.cells[idx].Entities = append(g.cells[idx].Entities, i)
		g.cellOf[i] = idx
	}
}

// Candidates appends to buf the snapshot indices in the 3x3 neighborhood of
// body i, excluding i, in ascending order
func (g *Grid) Candidates(i int, buf []int) []int {
	buf = buf[:0]
	idx := g.cellOf[i]
	cx, cy := idx%g.cols, idx/g.cols
	for dy := -1; dy <= 1; dy++ {
		y := cy + dy
		if y < 0 || y >= g.rows {
			continue
		}
		for dx := -1; dx <= 1; dx++ {
			x := cx + dx
			if x < 0 || x >= g.cols {
				continue
			}
			for _, j := range g.cells[y*g.cols+x].Entities {
				if j != i {
					buf = append(buf, j)
				}
			}
		}
	}
	slices.Sort(buf)
	return buf
}
