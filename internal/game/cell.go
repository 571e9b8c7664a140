// Package game implements the authoritative simulation core for the arena:
// seeded map generation, sliding collision, the bomb/explosion engine,
// power-ups and timed curses, and win-condition evaluation. The package is
// pure — no goroutines, no wall-clock reads; callers pass the current time
// into every tick so behavior is fully reproducible in tests.
package game

// Cell is the kind of a single map cell.
type Cell int

const (
	Floor Cell = iota // Walkable, explosions pass through
	Wall              // Indestructible, stops explosions
	Block             // Destructible, stops explosions when destroyed
)

// Solid returns true if the cell blocks movement.
func (c Cell) Solid() bool {
	return c != Floor
}

// String returns a short name for the cell kind.
func (c Cell) String() string {
	switch c {
	case Floor:
		return "floor"
	case Wall:
		return "wall"
	case Block:
		return "block"
	default:
		return "unknown"
	}
}

// Rune returns a single-character glyph for map dumps.
func (c Cell) Rune() rune {
	switch c {
	case Wall:
		return '#'
	case Block:
		return '+'
	default:
		return '.'
	}
}
