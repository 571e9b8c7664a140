package game

import (
	"testing"
	"time"

	"github.com/vovakirdan/bomb-arena/internal/core"
)

func newTestState(grid *Grid, players ...*Player) *State {
	return NewState(grid, DefaultRules(), players, core.NewRandString("test"))
}

func testPlayers(n int) []*Player {
	names := []string{"alice", "bob", "carol", "dave"}
	ps := make([]*Player, n)
	for i := range ps {
		ps[i] = &Player{ID: names[i], Pseudo: names[i], Color: i}
	}
	return ps
}

func findExplosions(events []Event) []BombExplodeEvent {
	var out []BombExplodeEvent
	for _, e := range events {
		if ex, ok := e.(BombExplodeEvent); ok {
			out = append(out, ex)
		}
	}
	return out
}

func TestExplosionCrossOnEmptyGrid(t *testing.T) {
	// Bomb at (5,5) with range 3 on an empty bordered 15x13 grid covers
	// the center plus three cells in each direction.
	ps := testPlayers(2)
	s := newTestState(borderedGrid(15, 13), ps...)
	p := ps[0]
	p.X, p.Y = 5, 5
	p.BombRange = 3

	now := time.Now()
	if evts := s.PlaceBomb(p.ID, now); len(evts) != 1 {
		t.Fatalf("PlaceBomb produced %d events, want 1", len(evts))
	}

	events := s.Sweep(now.Add(s.Rules.BombFuse))
	explosions := findExplosions(events)
	if len(explosions) != 1 {
		t.Fatalf("got %d explosions, want 1", len(explosions))
	}

	want := map[[2]int]bool{
		{5, 5}: true,
		{6, 5}: true, {7, 5}: true, {8, 5}: true,
		{4, 5}: true, {3, 5}: true, {2, 5}: true,
		{5, 6}: true, {5, 7}: true, {5, 8}: true,
		{5, 4}: true, {5, 3}: true, {5, 2}: true,
	}
	got := explosions[0].Cells
	if len(got) != len(want) {
		t.Fatalf("explosion covered %d cells, want %d: %v", len(got), len(want), got)
	}
	for _, c := range got {
		if !want[c] {
			t.Errorf("unexpected blast cell %v", c)
		}
	}
}

func TestExplosionStopsAtWallAndBlock(t *testing.T) {
	g := borderedGrid(15, 13)
	g.Set(6, 5, Block)
	g.Set(4, 5, Wall)

	ps := testPlayers(2)
	s := newTestState(g, ps...)
	p := ps[0]
	p.X, p.Y = 5, 5
	p.BombRange = 3

	now := time.Now()
	s.PlaceBomb(p.ID, now)
	events := s.Sweep(now.Add(s.Rules.BombFuse))
	explosions := findExplosions(events)
	if len(explosions) != 1 {
		t.Fatalf("got %d explosions, want 1", len(explosions))
	}

	covered := make(map[[2]int]bool)
	for _, c := range explosions[0].Cells {
		covered[c] = true
	}

	// The block is included and stops the ray.
	if !covered[[2]int{6, 5}] {
		t.Error("destroyed block cell missing from blast")
	}
	if covered[[2]int{7, 5}] {
		t.Error("blast passed through a block")
	}
	// The wall is excluded and stops the ray.
	if covered[[2]int{4, 5}] || covered[[2]int{3, 5}] {
		t.Error("blast entered or passed a wall")
	}

	if g.At(6, 5) != Floor {
		t.Error("block was not destroyed")
	}
	if p.Score < s.Rules.BlockScore {
		t.Errorf("owner score = %d, want at least %d for the block", p.Score, s.Rules.BlockScore)
	}

	// Terrain change must carry a map update.
	foundMap := false
	for _, e := range events {
		if _, ok := e.(MapUpdateEvent); ok {
			foundMap = true
		}
	}
	if !foundMap {
		t.Error("no MapUpdateEvent after destroying a block")
	}
}

func TestBombCapacity(t *testing.T) {
	ps := testPlayers(2)
	s := newTestState(borderedGrid(15, 13), ps...)
	p := ps[0]
	p.X, p.Y = 5, 5

	now := time.Now()
	if evts := s.PlaceBomb(p.ID, now); len(evts) != 1 {
		t.Fatal("first placement should succeed")
	}

	p.X, p.Y = 7, 5
	if evts := s.PlaceBomb(p.ID, now); evts != nil {
		t.Error("placement above MaxBombs should be a silent no-op")
	}
	if len(s.Bombs) != 1 {
		t.Errorf("bomb count = %d, want 1", len(s.Bombs))
	}
}

func TestBombCellOccupied(t *testing.T) {
	ps := testPlayers(2)
	s := newTestState(borderedGrid(15, 13), ps...)
	ps[0].X, ps[0].Y = 5, 5
	ps[1].X, ps[1].Y = 5, 5

	now := time.Now()
	s.PlaceBomb(ps[0].ID, now)
	if evts := s.PlaceBomb(ps[1].ID, now); evts != nil {
		t.Error("placement on an occupied cell should be rejected")
	}
}

func TestConstipationBlocksPlacement(t *testing.T) {
	ps := testPlayers(2)
	s := newTestState(borderedGrid(15, 13), ps...)
	p := ps[0]
	p.X, p.Y = 5, 5

	now := time.Now()
	applyCurse(p, CurseConstipation, now, s.Rules.CurseDuration)

	if evts := s.PlaceBomb(p.ID, now); evts != nil {
		t.Error("cursed player placed a bomb")
	}
	if len(s.Bombs) != 0 {
		t.Error("bomb list mutated by rejected placement")
	}
}

func TestChainReaction(t *testing.T) {
	ps := testPlayers(2)
	s := newTestState(borderedGrid(15, 13), ps...)
	p := ps[0]
	p.MaxBombs = 2

	now := time.Now()
	p.X, p.Y = 5, 5
	s.PlaceBomb(p.ID, now)
	p.X, p.Y = 6, 5
	// Second bomb placed late: its own fuse is nowhere near due when the
	// first one explodes, so only the chain can set it off.
	s.PlaceBomb(p.ID, now.Add(time.Second))

	events := s.Sweep(now.Add(s.Rules.BombFuse))
	explosions := findExplosions(events)
	if len(explosions) != 2 {
		t.Fatalf("got %d explosions, want 2 (chain)", len(explosions))
	}
	if len(s.Bombs) != 0 {
		t.Errorf("%d bombs left after chain sweep, want 0", len(s.Bombs))
	}
	// The chained bomb detonates well before its own fuse would run out;
	// its snapshot still reports a non-negative remaining fuse.
	for _, e := range explosions {
		if e.Bomb.FuseMs < 0 {
			t.Errorf("explosion snapshot carries negative fuse %dms", e.Bomb.FuseMs)
		}
	}
}

func TestDetonator(t *testing.T) {
	ps := testPlayers(2)
	s := newTestState(borderedGrid(15, 13), ps...)
	p := ps[0]
	p.X, p.Y = 5, 5

	now := time.Now()
	s.PlaceBomb(p.ID, now)

	// Without the stat the trigger is a no-op.
	if evts := s.Detonate(p.ID, now); evts != nil {
		t.Error("detonate without the stat should do nothing")
	}

	p.Detonator = true
	events := s.Detonate(p.ID, now)
	if len(findExplosions(events)) != 1 {
		t.Fatal("detonate with the stat should explode the bomb immediately")
	}
}

func TestExplosionDamageAndDeath(t *testing.T) {
	ps := testPlayers(2)
	s := newTestState(borderedGrid(15, 13), ps...)
	bomber, victim := ps[0], ps[1]
	bomber.X, bomber.Y = 5, 5
	victim.X, victim.Y = 6, 5
	victim.Lives = 1

	now := time.Now()
	s.PlaceBomb(bomber.ID, now)
	// Bomber steps out of the blast column entirely.
	bomber.X, bomber.Y = 9, 8

	events := s.Sweep(now.Add(s.Rules.BombFuse))

	if !victim.Dead {
		t.Fatal("victim at range 1 with one life should be dead")
	}

	var sawDeath, sawDrop, sawWin bool
	for _, e := range events {
		switch evt := e.(type) {
		case PlayerDeathEvent:
			sawDeath = evt.PlayerID == victim.ID
		case PowerUpSpawnedEvent:
			sawDrop = true
		case GameWinEvent:
			sawWin = true
			if evt.WinnerID != bomber.ID {
				t.Errorf("winner = %q, want %q", evt.WinnerID, bomber.ID)
			}
		}
	}
	if !sawDeath {
		t.Error("no PlayerDeathEvent for the victim")
	}
	if !sawDrop {
		t.Error("death should guarantee a power-up drop")
	}
	if !sawWin {
		t.Error("last player standing should end the game")
	}

	// The drop's one-pass exemption is cleared once the sweep finishes.
	for _, pu := range s.PowerUps {
		if pu.FromDeath {
			t.Error("FromDeath flag survived the sweep")
		}
	}

	// The win is latched: a later sweep must not re-declare it.
	for _, e := range s.Sweep(now.Add(s.Rules.BombFuse + time.Second)) {
		if _, ok := e.(GameWinEvent); ok {
			t.Error("GameWinEvent emitted twice")
		}
	}
}

func TestInvincibilityWindow(t *testing.T) {
	ps := testPlayers(2)
	s := newTestState(borderedGrid(15, 13), ps...)
	bomber, victim := ps[0], ps[1]
	bomber.MaxBombs = 2
	bomber.X, bomber.Y = 5, 5
	victim.X, victim.Y = 6, 5

	now := time.Now()
	s.PlaceBomb(bomber.ID, now)
	bomber.X, bomber.Y = 6, 7
	s.PlaceBomb(bomber.ID, now)
	bomber.X, bomber.Y = 9, 9

	s.Sweep(now.Add(s.Rules.BombFuse))

	// Both bombs cover the victim in the same sweep; the first hit opens
	// the invincibility window, so a single life is lost.
	if victim.Lives != DefaultLives-1 {
		t.Errorf("victim lives = %d, want %d", victim.Lives, DefaultLives-1)
	}
}

func TestTeamImmunity(t *testing.T) {
	ps := testPlayers(4)
	ps[0].Team, ps[1].Team = TeamAlpha, TeamAlpha
	ps[2].Team, ps[3].Team = TeamBeta, TeamBeta
	s := newTestState(borderedGrid(15, 13), ps...)

	bomber, mate, enemy := ps[0], ps[1], ps[2]
	bomber.X, bomber.Y = 5, 5
	mate.X, mate.Y = 6, 5
	enemy.X, enemy.Y = 4, 5
	ps[3].X, ps[3].Y = 10, 10

	now := time.Now()
	s.PlaceBomb(bomber.ID, now)
	s.Sweep(now.Add(s.Rules.BombFuse))

	if mate.Lives != DefaultLives {
		t.Error("teammate took friendly fire")
	}
	if enemy.Lives != DefaultLives-1 {
		t.Error("enemy in blast was not hit")
	}
	// Standing on your own bomb is never protected.
	if bomber.Lives != DefaultLives-1 {
		t.Error("owner should take their own blast")
	}
}

func TestBombBlocksMovementAfterVacating(t *testing.T) {
	ps := testPlayers(2)
	s := newTestState(borderedGrid(15, 13), ps...)
	p := ps[0]
	p.X, p.Y = 5, 5

	now := time.Now()
	s.PlaceBomb(p.ID, now)

	// Still inside the cell: walking off is allowed.
	x, _ := ResolveMove(s.gridFor(p), s.bombBlocker(p), p.X, p.Y, 6, 5, s.Rules.HitboxSize)
	if x != 6 {
		t.Fatalf("placer could not leave their own bomb cell, x = %v", x)
	}
	p.X = x
	s.updateBombOverlaps(p)

	// Fully vacated: the exemption is gone, walking back is blocked.
	x, _ = ResolveMove(s.gridFor(p), s.bombBlocker(p), p.X, p.Y, 5, 5, s.Rules.HitboxSize)
	if x == 5 {
		t.Error("player re-entered a vacated bomb cell")
	}
}
