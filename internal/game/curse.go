package game

import (
	"time"

	"github.com/vovakirdan/bomb-arena/internal/core"
)

// CurseKind is one of the skull curse variants.
type CurseKind int

const (
	CurseSlow         CurseKind = iota // Speed pinned to the floor
	CurseFast                          // Speed pinned to the ceiling
	CurseConstipation                  // Cannot place bombs
	CurseDiarrhea                      // Forced auto-bomb on an interval
	CurseInvisible                     // Hidden from other clients
	CurseMinRange                      // MaxBombs and BombRange clamped to 1
	curseKindCount
)

// String returns the wire name of the curse.
func (k CurseKind) String() string {
	switch k {
	case CurseSlow:
		return "slow"
	case CurseFast:
		return "fast"
	case CurseConstipation:
		return "constipation"
	case CurseDiarrhea:
		return "diarrhea"
	case CurseInvisible:
		return "invisible"
	case CurseMinRange:
		return "minRange"
	default:
		return "unknown"
	}
}

// savedStats snapshots the fields a curse may clobber, so expiry restores
// exactly what the curse touched and nothing else. Power-ups collected
// while cursed write through to the snapshot, not the live value, for the
// fields the curse owns.
type savedStats struct {
	speed     float64
	maxBombs  int
	bombRange int
}

// Curse is an active skull effect on a player. Exactly one may be active;
// applying a new curse fully clears the old one first.
type Curse struct {
	Kind      CurseKind
	ExpiresAt time.Time
	saved     savedStats

	// LastAutoBomb throttles the forced placements of the diarrhea curse.
	LastAutoBomb time.Time
}

// RollCurse picks a curse variant uniformly at random.
func RollCurse(rng *core.Rand) CurseKind {
	return CurseKind(rng.Intn(int(curseKindCount)))
}

// applyCurse applies a curse to the player, clearing any active one first.
// Only the fields the specific variant touches are snapshotted and mutated.
func applyCurse(p *Player, kind CurseKind, now time.Time, duration time.Duration) {
	if p.Curse != nil {
		clearCurse(p)
	}

	c := &Curse{
		Kind:      kind,
		ExpiresAt: now.Add(duration),
		saved: savedStats{
			speed:     p.Speed,
			maxBombs:  p.MaxBombs,
			bombRange: p.BombRange,
		},
	}

	switch kind {
	case CurseSlow:
		p.Speed = SpeedFloor
	case CurseFast:
		p.Speed = SpeedCeiling
	case CurseConstipation:
		// Placement gate only, no stat change.
	case CurseDiarrhea:
		c.LastAutoBomb = now
	case CurseInvisible:
		p.Invisible = true
	case CurseMinRange:
		p.MaxBombs = 1
		p.BombRange = 1
	}

	p.Curse = c
}

// clearCurse removes the active curse and restores the touched fields.
func clearCurse(p *Player) {
	c := p.Curse
	if c == nil {
		return
	}
	switch c.Kind {
	case CurseSlow, CurseFast:
		p.Speed = c.saved.speed
	case CurseInvisible:
		p.Invisible = false
	case CurseMinRange:
		p.MaxBombs = c.saved.maxBombs
		p.BombRange = c.saved.bombRange
	}
	p.Curse = nil
}
