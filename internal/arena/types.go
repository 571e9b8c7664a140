// Package arena hosts rooms: it admits players through the lobby state
// machine, runs each room's simulation loop as an independent actor, and
// fans simulation events out to connected sessions. Transport is somebody
// else's problem — sessions are channel handles, not sockets.
package arena

import (
	"time"

	"github.com/vovakirdan/bomb-arena/internal/game"
)

// SessionID uniquely identifies a player's connection. It doubles as the
// player id inside a room: stable for the life of the connection.
type SessionID string

// RoomCapacity is the active roster limit; further joiners queue.
const RoomCapacity = 4

// ChatMessage is one line of a room's in-memory chat log.
type ChatMessage struct {
	From   string    `json:"from"` // Pseudo; empty for system lines
	Text   string    `json:"text"`
	System bool      `json:"system"`
	At     time.Time `json:"at"`
}

// maxChatHistory bounds the per-room chat log.
const maxChatHistory = 100

// ResultData is a finished game's outcome, handed to the result store.
type ResultData struct {
	RoomCode     string
	Mode         string
	WinnerPseudo string
	WinningTeam  string
	Draw         bool
	DurationSecs int
	Players      int
}

// ScoreRow is one line of the highscore board.
type ScoreRow struct {
	Pseudo string `json:"pseudo"`
	Score  int    `json:"score"`
}

// ResultStore persists game outcomes and serves the highscore board.
// Optional; rooms run fine without one. Declared here so the arena does
// not depend on the storage package.
type ResultStore interface {
	SaveMatchResult(res ResultData) error
	SavePlayerScore(pseudo string, score int, roomCode string) error
	TopScores(limit int) ([]ScoreRow, error)
}

// Timings are the room lifecycle cadences. All have working defaults.
type Timings struct {
	WaitingSeconds   int           // Waiting timer when some but not all are ready
	CountdownSeconds int           // Pre-game countdown
	GameDuration     time.Duration // Hard cap; expiry forces a draw
	TickRate         int           // Movement ticks per second
	SweepInterval    time.Duration // Bomb/effect sweep cadence
}

// DefaultTimings returns the standard lifecycle cadences.
func DefaultTimings() Timings {
	return Timings{
		WaitingSeconds:   20,
		CountdownSeconds: 10,
		GameDuration:     300 * time.Second,
		TickRate:         60,
		SweepInterval:    100 * time.Millisecond,
	}
}

// RoomConfig bundles everything a new room needs.
type RoomConfig struct {
	MapWidth   int
	MapHeight  int
	MapOptions game.MapOptions
	Rules      game.Rules
	Timings    Timings
}

// DefaultRoomConfig returns the classic 15x13 arena.
func DefaultRoomConfig() RoomConfig {
	return RoomConfig{
		MapWidth:   15,
		MapHeight:  13,
		MapOptions: game.DefaultMapOptions(),
		Rules:      game.DefaultRules(),
		Timings:    DefaultTimings(),
	}
}
