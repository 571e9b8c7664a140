package game

import (
	"testing"
	"time"

	"github.com/vovakirdan/bomb-arena/internal/core"
)

func TestNewStatePositionsPlayersAtCorners(t *testing.T) {
	ps := testPlayers(4)
	s := newTestState(borderedGrid(15, 13), ps...)

	spawns := SpawnCorners(15, 13, 1)
	for i, p := range s.Players() {
		if p.X != float64(spawns[i].X) || p.Y != float64(spawns[i].Y) {
			t.Errorf("player %d at (%v, %v), want (%d, %d)", i, p.X, p.Y, spawns[i].X, spawns[i].Y)
		}
		if p.Lives != DefaultLives || p.Speed != DefaultSpeed {
			t.Errorf("player %d stats not reset: %+v", i, p)
		}
	}
}

func TestMovementTickRespectsSpeed(t *testing.T) {
	ps := testPlayers(2)
	s := newTestState(borderedGrid(15, 13), ps...)
	p := ps[0]
	p.X, p.Y = 5, 5

	s.SetInput(p.ID, Input{Right: true})
	now := time.Now()
	dt := 1.0 / 60
	events := s.MovementTick(now, dt)

	want := 5 + DefaultSpeed*dt
	if p.X != want {
		t.Errorf("x after one tick = %v, want %v", p.X, want)
	}
	if len(events) == 0 {
		t.Fatal("movement produced no events")
	}
	if _, ok := events[0].(PlayerPositionEvent); !ok {
		t.Errorf("first event is %T, want PlayerPositionEvent", events[0])
	}
}

func TestMovementIgnoresDeadAndIdle(t *testing.T) {
	ps := testPlayers(2)
	s := newTestState(borderedGrid(15, 13), ps...)
	ps[0].Dead = true
	s.SetInput(ps[0].ID, Input{Right: true})

	if ps[0].Input.Active() {
		t.Error("SetInput accepted input for a dead player")
	}
	if events := s.MovementTick(time.Now(), 1.0/60); len(events) != 0 {
		t.Errorf("idle tick produced %d events", len(events))
	}
	if s.AnyInputActive() {
		t.Error("AnyInputActive true with no live input")
	}
}

func TestRemovePlayerKeepsBombs(t *testing.T) {
	ps := testPlayers(3)
	s := newTestState(borderedGrid(15, 13), ps...)
	p := ps[0]
	p.X, p.Y = 5, 5

	now := time.Now()
	s.PlaceBomb(p.ID, now)
	s.RemovePlayer(p.ID)

	if len(s.Players()) != 2 {
		t.Errorf("roster size = %d after removal, want 2", len(s.Players()))
	}
	if len(s.Bombs) != 1 {
		t.Error("a leaver's bomb should stay armed")
	}

	// The orphaned bomb still explodes on schedule.
	events := s.Sweep(now.Add(s.Rules.BombFuse))
	if len(findExplosions(events)) != 1 {
		t.Error("orphaned bomb did not explode")
	}
}

func TestReplayDeterminism(t *testing.T) {
	// Two states with the same grid, roster, and RNG seed fed identical
	// inputs must evolve identically.
	run := func() *State {
		ps := testPlayers(2)
		grid := GenerateMap(15, 13, "replay", DefaultMapOptions())
		s := NewState(grid, DefaultRules(), ps, core.NewRandString("replay-drops"))

		base := time.Unix(1000, 0)
		s.SetInput(ps[0].ID, Input{Right: true})
		s.SetInput(ps[1].ID, Input{Down: true})
		for i := 0; i < 120; i++ {
			now := base.Add(time.Duration(i) * time.Second / 60)
			s.MovementTick(now, 1.0/60)
			if i == 30 {
				s.PlaceBomb(ps[0].ID, now)
				s.SetInput(ps[0].ID, Input{Down: true})
			}
			if i%6 == 0 {
				s.Sweep(now)
			}
		}
		return s
	}

	s1, s2 := run(), run()

	for i := range s1.Players() {
		p1, p2 := s1.Players()[i], s2.Players()[i]
		if p1.X != p2.X || p1.Y != p2.Y {
			t.Errorf("player %d position diverged: (%v, %v) vs (%v, %v)", i, p1.X, p1.Y, p2.X, p2.Y)
		}
		if p1.Lives != p2.Lives || p1.Score != p2.Score {
			t.Errorf("player %d stats diverged", i)
		}
	}
	if !s1.Grid.Equal(s2.Grid) {
		t.Error("grids diverged between replays")
	}
	if len(s1.PowerUps) != len(s2.PowerUps) {
		t.Error("power-up sets diverged between replays")
	}
}
