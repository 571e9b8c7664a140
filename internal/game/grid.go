package game

// Grid is the game map as a rectangular grid of cells.
// Cells are stored in row-major order: index = y*W + x.
type Grid struct {
	W     int
	H     int
	Seed  string // Reproducibility key: same seed + dims + options => same cells
	Cells []Cell
}

// NewGrid creates a grid of the given dimensions with all cells Floor.
func NewGrid(w, h int) *Grid {
	return &Grid{
		W:     w,
		H:     h,
		Cells: make([]Cell, w*h),
	}
}

// index converts a coordinate to a flat array index.
func (g *Grid) index(x, y int) int {
	return y*g.W + x
}

// InBounds returns true if (x, y) is within the grid.
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.W && y >= 0 && y < g.H
}

// At returns the cell at (x, y). Out-of-bounds reads return Wall so that
// callers never walk or blast past the edge of the world.
func (g *Grid) At(x, y int) Cell {
	if !g.InBounds(x, y) {
		return Wall
	}
	return g.Cells[g.index(x, y)]
}

// Set sets the cell at (x, y). Out-of-bounds writes are ignored.
func (g *Grid) Set(x, y int, c Cell) {
	if g.InBounds(x, y) {
		g.Cells[g.index(x, y)] = c
	}
}

// Clone returns a deep copy of the grid.
func (g *Grid) Clone() *Grid {
	cells := make([]Cell, len(g.Cells))
	copy(cells, g.Cells)
	return &Grid{W: g.W, H: g.H, Seed: g.Seed, Cells: cells}
}

// WallpassView returns a view of the grid with every Block treated as
// Floor. Used to resolve movement for players holding the wallpass stat;
// walls stay solid even for them. The receiver is not modified.
func (g *Grid) WallpassView() *Grid {
	view := g.Clone()
	for i, c := range view.Cells {
		if c == Block {
			view.Cells[i] = Floor
		}
	}
	return view
}

// BlockCount returns the number of destructible blocks remaining.
func (g *Grid) BlockCount() int {
	count := 0
	for _, c := range g.Cells {
		if c == Block {
			count++
		}
	}
	return count
}

// Equal returns true if two grids have the same dimensions and contents.
func (g *Grid) Equal(other *Grid) bool {
	if g.W != other.W || g.H != other.H {
		return false
	}
	for i, c := range g.Cells {
		if c != other.Cells[i] {
			return false
		}
	}
	return true
}

// String renders the grid as ASCII, one row per line.
func (g *Grid) String() string {
	buf := make([]rune, 0, (g.W+1)*g.H)
	for y := 0; y < g.H; y++ {
		for x := 0; x < g.W; x++ {
			buf = append(buf, g.At(x, y).Rune())
		}
		buf = append(buf, '\n')
	}
	return string(buf)
}
