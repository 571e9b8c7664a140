package game

import (
	"time"

	"github.com/google/uuid"

	"github.com/vovakirdan/bomb-arena/internal/core"
)

// Bomb is a placed, armed bomb. Mutated only by this file; the sweep
// removes it when it explodes.
type Bomb struct {
	ID      string
	OwnerID string
	X, Y    int // Integer cell, rounded from the owner position at placement
	Range   int

	PlacedAt   time.Time
	ExplodesAt time.Time

	// playersInside holds the players still allowed to overlap the bomb's
	// cell, so placing a bomb under your own feet does not trap you. An
	// entry is revoked once that player's hitbox fully vacates the cell.
	playersInside map[string]bool
}

// LiveBombs returns the number of armed bombs owned by a player.
func (s *State) LiveBombs(ownerID string) int {
	n := 0
	for _, b := range s.Bombs {
		if b.OwnerID == ownerID {
			n++
		}
	}
	return n
}

// BombAt returns the bomb occupying cell (x, y), if any.
func (s *State) BombAt(x, y int) (*Bomb, bool) {
	for _, b := range s.Bombs {
		if b.X == x && b.Y == y {
			return b, true
		}
	}
	return nil, false
}

// PlaceBomb attempts to place a bomb at the player's rounded cell.
// Placement is a silent no-op when the player is dead or curse-blocked,
// already at their live-bomb limit, or the cell is occupied by a bomb.
func (s *State) PlaceBomb(playerID string, now time.Time) []Event {
	p, ok := s.byID[playerID]
	if !ok || p.Dead || !p.CanPlaceBombs() {
		return nil
	}
	if s.LiveBombs(p.ID) >= p.MaxBombs {
		return nil
	}
	cx, cy := p.Cell()
	if _, occupied := s.BombAt(cx, cy); occupied {
		return nil
	}

	b := &Bomb{
		ID:            uuid.NewString(),
		OwnerID:       p.ID,
		X:             cx,
		Y:             cy,
		Range:         p.BombRange,
		PlacedAt:      now,
		ExplodesAt:    now.Add(s.Rules.BombFuse),
		playersInside: make(map[string]bool),
	}
	// Everyone currently overlapping the cell keeps walking rights until
	// they vacate; in practice that is the placer, occasionally a second
	// player sharing the cell edge.
	cell := core.CellBox(cx, cy)
	for _, other := range s.players {
		if other.Alive() && core.HitboxAt(other.X, other.Y, s.Rules.HitboxSize).Intersects(cell) {
			b.playersInside[other.ID] = true
		}
	}

	s.Bombs = append(s.Bombs, b)
	return []Event{BombPlacedEvent{Bomb: b.View()}}
}

// Detonate force-expires all live bombs of a player holding the detonator
// stat and runs the sweep immediately.
func (s *State) Detonate(playerID string, now time.Time) []Event {
	p, ok := s.byID[playerID]
	if !ok || p.Dead || !p.Detonator {
		return nil
	}
	for _, b := range s.Bombs {
		if b.OwnerID == p.ID {
			b.ExplodesAt = now.Add(-time.Millisecond)
		}
	}
	return s.sweepBombs(now)
}

// sweepBombs explodes every bomb due at now, iterating so that bombs
// chain-triggered by an explosion (fuse forced to zero) are picked up by
// the next iteration of the same sweep. The iteration count is capped as a
// hard guard against a cycle that never drains.
func (s *State) sweepBombs(now time.Time) []Event {
	var events []Event
	for iter := 0; iter < s.Rules.ChainSweepCap; iter++ {
		var due []*Bomb
		kept := s.Bombs[:0]
		for _, b := range s.Bombs {
			if !b.ExplodesAt.After(now) {
				due = append(due, b)
			} else {
				kept = append(kept, b)
			}
		}
		s.Bombs = kept
		if len(due) == 0 {
			break
		}
		for _, b := range due {
			events = append(events, s.explode(b, now)...)
		}
	}

	// The death-drop exemption lasts one explosion pass only.
	for _, pu := range s.PowerUps {
		pu.FromDeath = false
	}
	return events
}

// explode computes one bomb's cross-shaped blast and resolves everything
// it touches: destroyed blocks (and scoring), chained bombs, caught
// power-ups, and player damage.
func (s *State) explode(b *Bomb, now time.Time) []Event {
	cells := [][2]int{{b.X, b.Y}}
	var destroyed [][2]int

	dirs := [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}
	for _, d := range dirs {
		for dist := 1; dist <= b.Range; dist++ {
			x, y := b.X+d[0]*dist, b.Y+d[1]*dist
			switch s.Grid.At(x, y) {
			case Wall:
				// The ray stops, wall excluded.
			case Block:
				// The block is included, destroyed, then stops the ray.
				cells = append(cells, [2]int{x, y})
				destroyed = append(destroyed, [2]int{x, y})
				s.Grid.Set(x, y, Floor)
			default:
				// Floor passes through.
				cells = append(cells, [2]int{x, y})
				continue
			}
			break
		}
	}

	covered := make(map[[2]int]bool, len(cells))
	for _, c := range cells {
		covered[c] = true
	}

	var events []Event

	// Chain reaction: any live bomb in the blast gets its fuse zeroed and
	// is picked up by the next sweep iteration.
	for _, other := range s.Bombs {
		if covered[[2]int{other.X, other.Y}] {
			other.ExplodesAt = time.Time{}
		}
	}

	// Power-ups caught in the blast are destroyed; a fresh death drop is
	// exempt for this one pass.
	kept := s.PowerUps[:0]
	for _, pu := range s.PowerUps {
		if !covered[[2]int{pu.X, pu.Y}] || pu.FromDeath {
			kept = append(kept, pu)
			continue
		}
		events = append(events, PowerUpDestroyedEvent{PowerUp: pu.View()})
	}
	s.PowerUps = kept

	// Scoring for destroyed terrain.
	if owner, ok := s.byID[b.OwnerID]; ok && len(destroyed) > 0 {
		owner.Score += len(destroyed) * s.Rules.BlockScore
		events = append(events, ScoreUpdateEvent{PlayerID: owner.ID, Score: owner.Score})
	}

	// Player damage.
	var hit, killed []string
	for _, p := range s.players {
		if p.Dead || p.Invincible(now) {
			continue
		}
		if s.teamImmune(b.OwnerID, p) {
			continue
		}
		box := core.HitboxAt(p.X, p.Y, s.Rules.HitboxSize)
		inBlast := false
		for _, c := range cells {
			if box.Intersects(core.CellBox(c[0], c[1])) {
				inBlast = true
				break
			}
		}
		if !inBlast {
			continue
		}

		p.Lives--
		p.InvincibleUntil = now.Add(s.Rules.InvincibilityWindow)
		hit = append(hit, p.ID)
		events = append(events, PlayerHitEvent{PlayerID: p.ID, Lives: p.Lives})

		if p.Lives <= 0 {
			p.Dead = true
			p.Input = Input{}
			killed = append(killed, p.ID)
			events = append(events, PlayerDeathEvent{PlayerID: p.ID})

			// Guaranteed death drop, exempt from this explosion pass.
			cx, cy := p.Cell()
			_, spawnEvt := s.spawnPowerUp(cx, cy, RollPowerUpType(s.rng), true)
			events = append(events, spawnEvt)
		}
	}

	explodeEvt := BombExplodeEvent{
		Bomb:            b.View(),
		Cells:           cells,
		DestroyedBlocks: destroyed,
		HitPlayers:      hit,
		KilledPlayers:   killed,
	}
	// The explosion event precedes its consequences in the stream.
	events = append([]Event{explodeEvt}, events...)

	if len(destroyed) > 0 {
		events = append(events, MapUpdateEvent{Map: s.Grid.View()})
		// Probabilistic spawn per destroyed block, after existing pickups
		// were resolved so the new drops cannot be eaten by their own
		// explosion.
		for _, c := range destroyed {
			if s.rng.Float64() < s.Rules.PowerUpChance {
				_, spawnEvt := s.spawnPowerUp(c[0], c[1], RollPowerUpType(s.rng), false)
				events = append(events, spawnEvt)
			}
		}
	}

	return events
}

// teamImmune returns true when friendly fire protects the target: team
// mode games skip damage between distinct players sharing a non-neutral
// team. The bomb owner is never immune to their own bomb.
func (s *State) teamImmune(ownerID string, target *Player) bool {
	if target.ID == ownerID {
		return false
	}
	owner, ok := s.byID[ownerID]
	if !ok {
		return false
	}
	return owner.Team != TeamNone && owner.Team == target.Team
}
