package arena

import "github.com/vovakirdan/bomb-arena/internal/game"

// SessionEvent is an event sent from a room (or the coordinator) to a
// session. The transport layer serializes these onto the wire.
type SessionEvent interface {
	sessionEvent()
}

// RoomJoinedEvent is sent to the joining session only.
type RoomJoinedEvent struct {
	Code     string `json:"code"`
	PlayerID string `json:"playerId"`
	Queued   bool   `json:"queued"`
}

func (RoomJoinedEvent) sessionEvent() {}

// LobbyStateEvent is the full lobby snapshot, broadcast after any roster,
// color, team, mode, or ownership change.
type LobbyStateEvent struct {
	Code     string            `json:"code"`
	GameMode string            `json:"gameMode"`
	Owner    string            `json:"owner"`
	Players  []game.PlayerView `json:"players"`
	Queue    []string          `json:"queue"` // Pseudos, FIFO order
	Chat     []ChatMessage     `json:"chat"`
}

func (LobbyStateEvent) sessionEvent() {}

// WaitingStartedEvent announces the partial-ready waiting timer.
type WaitingStartedEvent struct {
	Seconds int `json:"seconds"`
}

func (WaitingStartedEvent) sessionEvent() {}

// WaitingTickEvent carries the waiting timer's remaining seconds.
type WaitingTickEvent struct {
	Remaining int `json:"remaining"`
}

func (WaitingTickEvent) sessionEvent() {}

// WaitingCancelledEvent announces the waiting timer was cancelled.
type WaitingCancelledEvent struct{}

func (WaitingCancelledEvent) sessionEvent() {}

// CountdownStartEvent announces the pre-game countdown.
type CountdownStartEvent struct {
	Seconds int `json:"seconds"`
}

func (CountdownStartEvent) sessionEvent() {}

// CountdownTickEvent carries the countdown's remaining seconds.
type CountdownTickEvent struct {
	Remaining int `json:"remaining"`
}

func (CountdownTickEvent) sessionEvent() {}

// CountdownCancelledEvent announces the countdown was cancelled.
type CountdownCancelledEvent struct{}

func (CountdownCancelledEvent) sessionEvent() {}

// GameStartEvent carries everything a client needs to enter the game.
// Clients regenerate the map from the seed and options; the full grid is
// included for clients that prefer not to.
type GameStartEvent struct {
	Players      []game.PlayerView `json:"players"`
	MapSeed      string            `json:"mapSeed"`
	MapOptions   game.MapOptions   `json:"mapOptions"`
	Map          game.MapView      `json:"map"`
	GameTimerSec int               `json:"gameTimerSec"`
	GameMode     string            `json:"gameMode"`
}

func (GameStartEvent) sessionEvent() {}

// GameEvent wraps a simulation state-change event for broadcast.
type GameEvent struct {
	Event game.Event `json:"event"`
}

func (GameEvent) sessionEvent() {}

// GameChatEvent carries one new chat line.
type GameChatEvent struct {
	Message ChatMessage `json:"message"`
}

func (GameChatEvent) sessionEvent() {}

// HighscoreUpdateEvent carries the refreshed top-score board after a game.
type HighscoreUpdateEvent struct {
	Top []ScoreRow `json:"top"`
}

func (HighscoreUpdateEvent) sessionEvent() {}

// ErrorEvent reports a protocol error or policy rejection to the
// originating session only.
type ErrorEvent struct {
	Message string `json:"message"`
}

func (ErrorEvent) sessionEvent() {}
