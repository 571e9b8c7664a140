package core

// Box is an axis-aligned bounding box in grid coordinates. Positions are
// fractional: a player halfway between two cells has a non-integer X.
type Box struct {
	X, Y float64 // Top-left corner
	W, H float64 // Width and height
}

// NewBox creates a box with the given position and dimensions.
func NewBox(x, y, w, h float64) Box {
	return Box{X: x, Y: y, W: w, H: h}
}

// HitboxAt returns the hitbox of an entity occupying cell position (x, y)
// with the given size (fraction of a cell), centered within the cell.
func HitboxAt(x, y, size float64) Box {
	inset := (1 - size) / 2
	return Box{X: x + inset, Y: y + inset, W: size, H: size}
}

// CellBox returns the 1x1 box covering the grid cell (cx, cy).
func CellBox(cx, cy int) Box {
	return Box{X: float64(cx), Y: float64(cy), W: 1, H: 1}
}

// Right returns the x-coordinate of the right edge.
func (b Box) Right() float64 {
	return b.X + b.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (b Box) Bottom() float64 {
	return b.Y + b.H
}

// Intersects returns true if this box overlaps another.
// Uses standard AABB collision detection; touching edges do not overlap.
func (b Box) Intersects(other Box) bool {
	if b.X >= other.Right() || other.X >= b.Right() {
		return false
	}
	if b.Y >= other.Bottom() || other.Y >= b.Bottom() {
		return false
	}
	return true
}

// Clamp restricts a value to be within [min, max].
func Clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// ClampF restricts a float64 value to be within [min, max].
func ClampF(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}
