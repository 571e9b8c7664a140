package ws

import (
	"encoding/json"
	"fmt"

	"github.com/vovakirdan/bomb-arena/internal/arena"
	"github.com/vovakirdan/bomb-arena/internal/game"
)

// Envelope is the wire format in both directions: a type tag plus a
// type-specific payload.
type Envelope struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`
}

// decodeMessage turns an inbound envelope into an arena message.
func decodeMessage(id arena.SessionID, env Envelope) (arena.Message, error) {
	switch env.Type {
	case "join":
		var d struct {
			Pseudo   string `json:"pseudo"`
			RoomCode string `json:"roomCode"`
			Create   bool   `json:"create"`
		}
		if err := unmarshalData(env.Data, &d); err != nil {
			return nil, err
		}
		return arena.JoinMsg{SessionID: id, Pseudo: d.Pseudo, RoomCode: d.RoomCode, Create: d.Create}, nil
	case "leave":
		return arena.LeaveMsg{SessionID: id}, nil
	case "ready":
		return arena.ReadyMsg{SessionID: id}, nil
	case "color":
		var d struct {
			Color int `json:"color"`
		}
		if err := unmarshalData(env.Data, &d); err != nil {
			return nil, err
		}
		return arena.ColorMsg{SessionID: id, Color: d.Color}, nil
	case "team":
		var d struct {
			Team string `json:"team"`
		}
		if err := unmarshalData(env.Data, &d); err != nil {
			return nil, err
		}
		return arena.TeamMsg{SessionID: id, Team: d.Team}, nil
	case "gameMode":
		var d struct {
			Mode string `json:"mode"`
		}
		if err := unmarshalData(env.Data, &d); err != nil {
			return nil, err
		}
		return arena.GameModeMsg{SessionID: id, Mode: d.Mode}, nil
	case "move":
		var d struct {
			Dir    string `json:"dir"`
			Active bool   `json:"active"`
		}
		if err := unmarshalData(env.Data, &d); err != nil {
			return nil, err
		}
		return arena.MoveMsg{SessionID: id, Dir: d.Dir, Active: d.Active}, nil
	case "action":
		var d struct {
			Action string `json:"action"`
		}
		if err := unmarshalData(env.Data, &d); err != nil {
			return nil, err
		}
		return arena.ActionMsg{SessionID: id, Action: d.Action}, nil
	case "chat":
		var d struct {
			Text string `json:"text"`
		}
		if err := unmarshalData(env.Data, &d); err != nil {
			return nil, err
		}
		return arena.ChatMsg{SessionID: id, Text: d.Text}, nil
	}
	return nil, fmt.Errorf("ws: unknown message type %q", env.Type)
}

func unmarshalData(data json.RawMessage, v any) error {
	if len(data) == 0 {
		return fmt.Errorf("ws: missing data payload")
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("ws: malformed data payload: %w", err)
	}
	return nil
}

// encodeEvent turns a session event into an outbound envelope.
func encodeEvent(evt arena.SessionEvent) (Envelope, error) {
	if ge, ok := evt.(arena.GameEvent); ok {
		return encodeGameEvent(ge.Event)
	}

	var typ string
	switch evt.(type) {
	case arena.RoomJoinedEvent:
		typ = "roomJoined"
	case arena.LobbyStateEvent:
		typ = "lobby"
	case arena.WaitingStartedEvent:
		typ = "waitingStarted"
	case arena.WaitingTickEvent:
		typ = "waitingTick"
	case arena.WaitingCancelledEvent:
		typ = "waitingCancelled"
	case arena.CountdownStartEvent:
		typ = "countdownStart"
	case arena.CountdownTickEvent:
		typ = "countdownTick"
	case arena.CountdownCancelledEvent:
		typ = "countdownCancelled"
	case arena.GameStartEvent:
		typ = "gameStart"
	case arena.GameChatEvent:
		typ = "chat"
	case arena.HighscoreUpdateEvent:
		typ = "highscoreUpdate"
	case arena.ErrorEvent:
		typ = "error"
	default:
		return Envelope{}, fmt.Errorf("ws: unmapped session event %T", evt)
	}
	return marshalEnvelope(typ, evt)
}

func encodeGameEvent(evt game.Event) (Envelope, error) {
	var typ string
	switch evt.(type) {
	case game.PlayerPositionEvent:
		typ = "playerPosition"
	case game.BombPlacedEvent:
		typ = "bombPlaced"
	case game.BombExplodeEvent:
		typ = "bombExplode"
	case game.MapUpdateEvent:
		typ = "mapUpdate"
	case game.PowerUpSpawnedEvent:
		typ = "powerUpSpawned"
	case game.PowerUpCollectedEvent:
		typ = "powerUpCollected"
	case game.PowerUpDestroyedEvent:
		typ = "powerUpDestroyed"
	case game.PlayerHitEvent:
		typ = "playerHit"
	case game.PlayerDeathEvent:
		typ = "playerDeath"
	case game.VestExpiredEvent:
		typ = "vestExpired"
	case game.SkullExpiredEvent:
		typ = "skullExpired"
	case game.SkullContagionEvent:
		typ = "skullContagion"
	case game.ScoreUpdateEvent:
		typ = "scoreUpdate"
	case game.GameWinEvent:
		typ = "gameWin"
	default:
		return Envelope{}, fmt.Errorf("ws: unmapped game event %T", evt)
	}
	return marshalEnvelope(typ, evt)
}

func marshalEnvelope(typ string, payload any) (Envelope, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return Envelope{}, fmt.Errorf("ws: cannot marshal %s: %w", typ, err)
	}
	return Envelope{Type: typ, Data: data}, nil
}
