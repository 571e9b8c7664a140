package arena

import (
	"os"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/bomb-arena/internal/game"
)

func TestReturnToLobbyResetsStats(t *testing.T) {
	logger := log.NewWithOptions(os.Stderr, log.Options{Level: log.ErrorLevel})
	r := NewRoom("RESET1", DefaultRoomConfig(), logger, nil, func(string) {})

	p := &game.Player{ID: "p1", Pseudo: "alice"}
	p.ResetStats()
	r.players = append(r.players, p)
	r.inGame = true

	// A full game's worth of accumulated state.
	p.Ready = true
	p.Dead = true
	p.X, p.Y = 7, 3
	p.Lives = 1
	p.InvincibleUntil = time.Now().Add(time.Minute)
	p.MaxBombs = 5
	p.BombRange = 6
	p.Speed = 8
	p.Wallpass = true
	p.Detonator = true
	p.VestActive = true
	p.VestUntil = time.Now().Add(time.Minute)
	p.Curse = &game.Curse{Kind: game.CurseInvisible, ExpiresAt: time.Now().Add(time.Minute)}
	p.Invisible = true
	p.Score = 450
	p.Input = game.Input{Right: true}

	r.returnToLobby()

	if r.inGame || r.state != nil {
		t.Fatal("room still in game after returning to lobby")
	}
	if p.Ready || p.Dead || p.X != 0 || p.Y != 0 {
		t.Errorf("lobby roster state not cleared: %+v", p)
	}
	if p.Lives != game.DefaultLives || p.MaxBombs != game.DefaultMaxBombs ||
		p.BombRange != game.DefaultBombRange || p.Speed != game.DefaultSpeed {
		t.Errorf("stats not back to defaults: %+v", p)
	}
	if p.Wallpass || p.Detonator || p.VestActive || !p.VestUntil.IsZero() || !p.InvincibleUntil.IsZero() {
		t.Errorf("perks survived into the lobby: %+v", p)
	}
	if p.Curse != nil || p.Invisible {
		t.Errorf("curse survived into the lobby: %+v", p)
	}
	if p.Score != 0 || p.Input.Active() {
		t.Errorf("score or input survived into the lobby: %+v", p)
	}
}
