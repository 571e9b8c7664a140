package game

import (
	"time"

	"github.com/google/uuid"

	"github.com/vovakirdan/bomb-arena/internal/core"
)

// State is the in-game simulation state of one room. It is not safe for
// concurrent use; the owning room serializes every call (ticks and inputs
// alike) through its run loop. All methods return the state-change events
// they produced, in order.
type State struct {
	Grid  *Grid
	Rules Rules

	players []*Player // Roster order; iteration order is load-bearing
	byID    map[string]*Player

	Bombs    []*Bomb
	PowerUps []*PowerUp

	// rng drives power-up and curse rolls. Seeded from the map seed so a
	// replay of the same game start is reproducible.
	rng *core.Rand

	winDeclared bool
}

// NewState builds the in-game state for a fresh game: generates nothing
// itself — the caller provides the generated grid — but positions players
// at the spawn corners in roster order and resets their stats.
func NewState(grid *Grid, rules Rules, players []*Player, rng *core.Rand) *State {
	s := &State{
		Grid:    grid,
		Rules:   rules,
		players: players,
		byID:    make(map[string]*Player, len(players)),
		rng:     rng,
	}
	spawns := SpawnCorners(grid.W, grid.H, 1)
	for i, p := range players {
		p.ResetStats()
		sp := spawns[i%len(spawns)]
		p.X, p.Y = float64(sp.X), float64(sp.Y)
		s.byID[p.ID] = p
	}
	return s
}

// Player returns the player with the given id.
func (s *State) Player(id string) (*Player, bool) {
	p, ok := s.byID[id]
	return p, ok
}

// Players returns the roster in join order.
func (s *State) Players() []*Player {
	return s.players
}

// RemovePlayer drops a player who left mid-game. Their bombs stay armed.
func (s *State) RemovePlayer(id string) {
	delete(s.byID, id)
	for i, p := range s.players {
		if p.ID == id {
			s.players = append(s.players[:i], s.players[i+1:]...)
			break
		}
	}
}

// SetInput replaces a player's held directional input. Dead players are
// ignored so no movement resource outlives a death.
func (s *State) SetInput(id string, in Input) {
	p, ok := s.byID[id]
	if !ok || p.Dead {
		return
	}
	p.Input = in
}

// AnyInputActive returns true if any living player holds a direction.
func (s *State) AnyInputActive() bool {
	for _, p := range s.players {
		if p.Alive() && p.Input.Active() {
			return true
		}
	}
	return false
}

// WinDeclared returns true once the game's win has been broadcast.
func (s *State) WinDeclared() bool {
	return s.winDeclared
}

// bombBlocker returns the collision blocker for a player: live bombs are
// solid cells, except a bomb whose cell the player is still allowed to
// overlap (freshly placed under their feet).
func (s *State) bombBlocker(p *Player) Blocker {
	return func(cx, cy int) bool {
		for _, b := range s.Bombs {
			if b.X == cx && b.Y == cy && !b.playersInside[p.ID] {
				return true
			}
		}
		return false
	}
}

// gridFor returns the collision grid for a player; wallpass holders see
// blocks as floor, walls stay solid.
func (s *State) gridFor(p *Player) *Grid {
	if p.Wallpass {
		return s.Grid.WallpassView()
	}
	return s.Grid
}

// MovementTick advances every player holding a directional input by one
// movement step of dt and resolves pickups at the new positions.
func (s *State) MovementTick(now time.Time, dt float64) []Event {
	var events []Event
	for _, p := range s.players {
		if p.Dead || !p.Input.Active() {
			continue
		}

		step := p.Speed * dt
		dx, dy := 0.0, 0.0
		if p.Input.Left {
			dx -= step
		}
		if p.Input.Right {
			dx += step
		}
		if p.Input.Up {
			dy -= step
		}
		if p.Input.Down {
			dy += step
		}
		if dx == 0 && dy == 0 {
			continue
		}

		oldX, oldY := p.X, p.Y
		p.X, p.Y = ResolveMove(s.gridFor(p), s.bombBlocker(p), p.X, p.Y, p.X+dx, p.Y+dy, s.Rules.HitboxSize)
		s.updateBombOverlaps(p)

		if p.X != oldX || p.Y != oldY {
			events = append(events, PlayerPositionEvent{Player: p.View()})
			events = append(events, s.collectPickups(p, now)...)
		}
	}
	return events
}

// updateBombOverlaps revokes a player's overlap exemption on any bomb cell
// they have fully vacated. The test is against the bomb's whole 1x1 cell,
// not a point, so grazing the cell edge keeps the exemption.
func (s *State) updateBombOverlaps(p *Player) {
	box := core.HitboxAt(p.X, p.Y, s.Rules.HitboxSize)
	for _, b := range s.Bombs {
		if b.playersInside[p.ID] && !box.Intersects(core.CellBox(b.X, b.Y)) {
			delete(b.playersInside, p.ID)
		}
	}
}

// collectPickups resolves hitbox overlap between one player and all active
// power-ups.
func (s *State) collectPickups(p *Player, now time.Time) []Event {
	if p.Dead {
		return nil
	}
	var events []Event
	box := core.HitboxAt(p.X, p.Y, s.Rules.HitboxSize)
	kept := s.PowerUps[:0]
	for _, pu := range s.PowerUps {
		if !box.Intersects(core.CellBox(pu.X, pu.Y)) {
			kept = append(kept, pu)
			continue
		}
		applyPowerUp(p, pu.Type, now, s.rng, s.Rules)
		p.Score += pu.Type.ScoreBonus()
		events = append(events,
			PowerUpCollectedEvent{PowerUp: pu.View(), Player: p.View()},
			ScoreUpdateEvent{PlayerID: p.ID, Score: p.Score},
		)
	}
	s.PowerUps = kept
	return events
}

// Sweep runs the periodic bomb/effect pass: due bombs (with bounded chain
// cascade), timed-effect expiry, diarrhea auto-bombs, curse contagion,
// stationary pickups, and finally the latched win check.
func (s *State) Sweep(now time.Time) []Event {
	events := s.sweepBombs(now)
	events = append(events, s.sweepTimedEffects(now)...)
	events = append(events, s.sweepContagion(now)...)

	for _, p := range s.players {
		if p.Alive() {
			events = append(events, s.collectPickups(p, now)...)
		}
	}

	if !s.winDeclared {
		if res := CheckWin(s.players); res.GameOver {
			s.winDeclared = true
			evt := GameWinEvent{
				WinnerID:     res.WinnerID,
				WinnerPseudo: res.WinnerPseudo,
				Draw:         res.WinnerID == "" && res.WinningTeam == TeamNone,
			}
			if res.WinningTeam != TeamNone {
				evt.WinningTeam = res.WinningTeam.String()
			}
			events = append(events, evt)
		}
	}
	return events
}

// sweepTimedEffects expires vests and curses whose deadlines have passed
// and places forced bombs for players with an active diarrhea curse.
func (s *State) sweepTimedEffects(now time.Time) []Event {
	var events []Event
	for _, p := range s.players {
		if p.VestActive && !now.Before(p.VestUntil) {
			p.VestActive = false
			events = append(events, VestExpiredEvent{PlayerID: p.ID})
		}

		if p.Curse != nil && !now.Before(p.Curse.ExpiresAt) {
			clearCurse(p)
			events = append(events, SkullExpiredEvent{PlayerID: p.ID})
			continue
		}

		if p.Curse != nil && p.Curse.Kind == CurseDiarrhea && p.Alive() {
			if now.Sub(p.Curse.LastAutoBomb) >= s.Rules.AutoBombInterval {
				p.Curse.LastAutoBomb = now
				events = append(events, s.PlaceBomb(p.ID, now)...)
			}
		}
	}
	return events
}

// sweepContagion spreads curses on contact: a cursed, living player who
// overlaps a non-cursed, living player transmits a re-rolled curse and is
// cured. One transmission per cursed player per sweep, first match wins in
// roster order.
func (s *State) sweepContagion(now time.Time) []Event {
	// The cursed set is fixed up front: a player infected during this
	// sweep is not a source until the next one, so the curse cannot
	// bounce straight back while two players overlap.
	var sources []*Player
	for _, p := range s.players {
		if p.Curse != nil && !p.Dead {
			sources = append(sources, p)
		}
	}

	var events []Event
	for _, src := range sources {
		srcBox := core.HitboxAt(src.X, src.Y, s.Rules.HitboxSize)
		for _, dst := range s.players {
			if dst == src || dst.Dead || dst.Curse != nil {
				continue
			}
			if !srcBox.Intersects(core.HitboxAt(dst.X, dst.Y, s.Rules.HitboxSize)) {
				continue
			}
			kind := RollCurse(s.rng)
			applyCurse(dst, kind, now, s.Rules.CurseDuration)
			clearCurse(src)
			events = append(events, SkullContagionEvent{
				FromID: src.ID,
				ToID:   dst.ID,
				Curse:  kind.String(),
			})
			break
		}
	}
	return events
}

// spawnPowerUp places a power-up of the given type on a cell.
func (s *State) spawnPowerUp(x, y int, t PowerUpType, fromDeath bool) (*PowerUp, Event) {
	pu := &PowerUp{
		ID:        uuid.NewString(),
		X:         x,
		Y:         y,
		Type:      t,
		FromDeath: fromDeath,
	}
	s.PowerUps = append(s.PowerUps, pu)
	return pu, PowerUpSpawnedEvent{PowerUp: pu.View()}
}
