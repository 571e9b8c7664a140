package core

import "testing"

func TestHitboxAtCentered(t *testing.T) {
	box := HitboxAt(3, 5, 0.6)
	if box.X != 3.2 || box.Y != 5.2 {
		t.Errorf("hitbox origin = (%v, %v), want (3.2, 5.2)", box.X, box.Y)
	}
	if box.W != 0.6 || box.H != 0.6 {
		t.Errorf("hitbox size = (%v, %v), want (0.6, 0.6)", box.W, box.H)
	}
}

func TestIntersects(t *testing.T) {
	a := NewBox(0, 0, 1, 1)

	if !a.Intersects(NewBox(0.5, 0.5, 1, 1)) {
		t.Error("overlapping boxes should intersect")
	}
	if a.Intersects(NewBox(2, 2, 1, 1)) {
		t.Error("distant boxes should not intersect")
	}
	// Touching edges are exclusive: standing flush against a wall is not
	// a collision.
	if a.Intersects(NewBox(1, 0, 1, 1)) {
		t.Error("edge-touching boxes should not intersect")
	}
}

func TestHitboxAvoidsAdjacentCells(t *testing.T) {
	// A 0.6 hitbox centered in cell (2,2) must not touch any neighbor
	// cell, which is what lets players thread between wall pillars.
	box := HitboxAt(2, 2, 0.6)
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			if box.Intersects(CellBox(2+dx, 2+dy)) {
				t.Errorf("centered hitbox overlaps neighbor (%d, %d)", 2+dx, 2+dy)
			}
		}
	}
	if !box.Intersects(CellBox(2, 2)) {
		t.Error("centered hitbox should overlap its own cell")
	}
}

func TestClamp(t *testing.T) {
	if Clamp(5, 0, 10) != 5 {
		t.Error("in-range value should be unchanged")
	}
	if Clamp(-1, 0, 10) != 0 {
		t.Error("below-range value should clamp to min")
	}
	if Clamp(11, 0, 10) != 10 {
		t.Error("above-range value should clamp to max")
	}
	if ClampF(8.5, 1.5, 8.0) != 8.0 {
		t.Error("ClampF should clamp to max")
	}
}
