package game

import "github.com/vovakirdan/bomb-arena/internal/core"

// MapOptions configures the map generator. Clients regenerate the map from
// the same seed and options, so every field here is part of the wire
// contract and must stay stable.
type MapOptions struct {
	DestructibleProb float64 // Probability a free interior cell becomes a Block
	BorderThickness  int     // Rings of indestructible border wall
	PatternSpacing   int     // Spacing of the interior wall lattice
	PatternOffset    int     // Lattice offset from the border
}

// DefaultMapOptions returns the classic arena layout: single wall border,
// wall pillar every other cell, three quarters of the free cells filled
// with destructible blocks.
func DefaultMapOptions() MapOptions {
	return MapOptions{
		DestructibleProb: 0.75,
		BorderThickness:  1,
		PatternSpacing:   2,
		PatternOffset:    1,
	}
}

// Spawn is one of the four canonical spawn positions.
type Spawn struct {
	X, Y int
	// Toward the map center: +1 on the left/top side, -1 on the right/bottom.
	DX, DY int
}

// SpawnCorners returns the four spawn positions in join order:
// top-left, bottom-right, top-right, bottom-left, inset one cell from the
// border so players never spawn inside it.
func SpawnCorners(w, h, border int) [4]Spawn {
	lo := border
	return [4]Spawn{
		{X: lo, Y: lo, DX: 1, DY: 1},
		{X: w - 1 - lo, Y: h - 1 - lo, DX: -1, DY: -1},
		{X: w - 1 - lo, Y: lo, DX: -1, DY: 1},
		{X: lo, Y: h - 1 - lo, DX: 1, DY: -1},
	}
}

// reservedCells returns the set of cells that generation must leave as
// Floor: for each spawn corner, an "L" of three cells pointing away from
// the corner, plus the full 2x2 corner block so a freshly spawned player
// can always place a first bomb and retreat.
func reservedCells(w, h, border int) map[[2]int]bool {
	reserved := make(map[[2]int]bool)
	for _, s := range SpawnCorners(w, h, border) {
		// The L: corner, one step inward on each axis.
		reserved[[2]int{s.X, s.Y}] = true
		reserved[[2]int{s.X + s.DX, s.Y}] = true
		reserved[[2]int{s.X, s.Y + s.DY}] = true
		// The 2x2 block.
		reserved[[2]int{s.X + s.DX, s.Y + s.DY}] = true
	}
	return reserved
}

// GenerateMap produces a bordered, patterned, seeded-random destructible
// grid. The same (cols, rows, seed, opts) always yields an identical grid:
// cells are visited row-major and the RNG is consulted exactly once per
// eligible cell, in that order. Reordering any step here desyncs every
// client that regenerates the map from the seed.
func GenerateMap(cols, rows int, seed string, opts MapOptions) *Grid {
	g := NewGrid(cols, rows)
	g.Seed = seed

	border := opts.BorderThickness
	if border < 1 {
		border = 1
	}
	reserved := reservedCells(cols, rows, border)

	// Border walls.
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			if x < border || y < border || x >= cols-border || y >= rows-border {
				g.Set(x, y, Wall)
			}
		}
	}

	// Interior wall lattice. Reserved spawn cells stay clear.
	spacing := opts.PatternSpacing
	if spacing > 0 {
		start := border + opts.PatternOffset
		for y := start; y < rows-border; y++ {
			for x := start; x < cols-border; x++ {
				if (x-start)%spacing != 0 || (y-start)%spacing != 0 {
					continue
				}
				if reserved[[2]int{x, y}] {
					continue
				}
				g.Set(x, y, Wall)
			}
		}
	}

	// Destructible blocks. One RNG draw per still-free, non-reserved cell.
	rng := core.NewRandString(seed)
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			if g.At(x, y) != Floor || reserved[[2]int{x, y}] {
				continue
			}
			if rng.Float64() < opts.DestructibleProb {
				g.Set(x, y, Block)
			}
		}
	}

	return g
}
