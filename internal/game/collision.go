package game

import (
	"math"

	"github.com/vovakirdan/bomb-arena/internal/core"
)

// DefaultHitboxSize is the player hitbox as a fraction of a cell, centered.
// Smaller than a full cell so players can slip between wall pillars.
const DefaultHitboxSize = 0.6

// slideSteps is the number of subdivisions tried when a full move collides.
const slideSteps = 8

// Blocker reports whether the cell (cx, cy) is blocked by something other
// than the grid itself (a live bomb, typically). May be nil.
type Blocker func(cx, cy int) bool

// Collides returns true if a hitbox of the given size at position (x, y)
// overlaps any solid grid cell or blocked cell.
func Collides(g *Grid, extra Blocker, x, y, size float64) bool {
	box := core.HitboxAt(x, y, size)
	minX, minY := int(math.Floor(box.X)), int(math.Floor(box.Y))
	maxX, maxY := int(math.Floor(box.Right())), int(math.Floor(box.Bottom()))
	for cy := minY; cy <= maxY; cy++ {
		for cx := minX; cx <= maxX; cx++ {
			solid := g.At(cx, cy).Solid() || (extra != nil && extra(cx, cy))
			if solid && box.Intersects(core.CellBox(cx, cy)) {
				return true
			}
		}
	}
	return false
}

// ResolveMove resolves a candidate move against the grid with axis-separated
// sliding. If the full move is clear it is accepted outright. Otherwise the
// X-only and Y-only components are tried at full length, then the movement
// vector is shrunk in slideSteps fractions, trying X-only, Y-only, and the
// combined vector at each length. If nothing clears, the old position is
// returned unchanged.
func ResolveMove(g *Grid, extra Blocker, oldX, oldY, newX, newY, size float64) (float64, float64) {
	if !Collides(g, extra, newX, newY, size) {
		return newX, newY
	}

	dx, dy := newX-oldX, newY-oldY

	// Full-length slides along a single axis. A zero component is skipped:
	// its slide degenerates to the old position and would mask the
	// shrinking fallback below.
	if dx != 0 && !Collides(g, extra, newX, oldY, size) {
		return newX, oldY
	}
	if dy != 0 && !Collides(g, extra, oldX, newY, size) {
		return oldX, newY
	}

	for step := 1; step < slideSteps; step++ {
		f := 1 - float64(step)/float64(slideSteps)
		sx, sy := oldX+dx*f, oldY+dy*f
		if dx != 0 && !Collides(g, extra, sx, oldY, size) {
			return sx, oldY
		}
		if dy != 0 && !Collides(g, extra, oldX, sy, size) {
			return oldX, sy
		}
		if !Collides(g, extra, sx, sy, size) {
			return sx, sy
		}
	}

	return oldX, oldY
}
