package arena

import (
	"os"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

func testCoordinator(t *testing.T) *Coordinator {
	t.Helper()
	cfg := DefaultRoomConfig()
	cfg.Timings.WaitingSeconds = 1
	cfg.Timings.CountdownSeconds = 1

	logger := log.NewWithOptions(os.Stderr, log.Options{Level: log.ErrorLevel})
	c := NewCoordinator(cfg, logger, nil)
	go c.Run()
	t.Cleanup(c.Stop)
	return c
}

func attach(t *testing.T, c *Coordinator, id SessionID) *ChannelSession {
	t.Helper()
	s := NewChannelSession(id, 64)
	c.AttachSession(s)
	return s
}

// waitFor drains the session until match returns true or the timeout hits.
func waitFor(t *testing.T, s *ChannelSession, what string, match func(SessionEvent) bool) SessionEvent {
	t.Helper()
	deadline := time.After(5 * time.Second)
	for {
		select {
		case evt := <-s.Events():
			if match(evt) {
				return evt
			}
		case <-deadline:
			t.Fatalf("timed out waiting for %s", what)
			return nil
		}
	}
}

func joinedEvent(t *testing.T, s *ChannelSession) RoomJoinedEvent {
	t.Helper()
	evt := waitFor(t, s, "roomJoined", func(e SessionEvent) bool {
		_, ok := e.(RoomJoinedEvent)
		return ok
	})
	return evt.(RoomJoinedEvent)
}

func TestCreateAndJoinRoom(t *testing.T) {
	c := testCoordinator(t)

	s1 := attach(t, c, "p1")
	c.Dispatch(JoinMsg{SessionID: "p1", Pseudo: "alice", Create: true})

	joined := joinedEvent(t, s1)
	if joined.Code == "" || joined.Queued {
		t.Fatalf("unexpected join result: %+v", joined)
	}
	if joined.PlayerID != "p1" {
		t.Errorf("player id = %q, want p1", joined.PlayerID)
	}

	s2 := attach(t, c, "p2")
	c.Dispatch(JoinMsg{SessionID: "p2", Pseudo: "bob", RoomCode: joined.Code})
	joined2 := joinedEvent(t, s2)
	if joined2.Code != joined.Code {
		t.Errorf("second join landed in %q, want %q", joined2.Code, joined.Code)
	}

	// Both see a lobby snapshot with two players.
	waitFor(t, s1, "two-player lobby", func(e SessionEvent) bool {
		lobby, ok := e.(LobbyStateEvent)
		return ok && len(lobby.Players) == 2
	})
}

func TestJoinUnknownRoom(t *testing.T) {
	c := testCoordinator(t)

	s := attach(t, c, "p1")
	c.Dispatch(JoinMsg{SessionID: "p1", Pseudo: "alice", RoomCode: "NOSUCH"})

	waitFor(t, s, "error", func(e SessionEvent) bool {
		_, ok := e.(ErrorEvent)
		return ok
	})
}

func TestFifthJoinerQueues(t *testing.T) {
	c := testCoordinator(t)

	s1 := attach(t, c, "p1")
	c.Dispatch(JoinMsg{SessionID: "p1", Pseudo: "alice", Create: true})
	code := joinedEvent(t, s1).Code

	for _, id := range []SessionID{"p2", "p3", "p4"} {
		s := attach(t, c, id)
		c.Dispatch(JoinMsg{SessionID: id, Pseudo: string(id), RoomCode: code})
		joinedEvent(t, s)
	}

	s5 := attach(t, c, "p5")
	c.Dispatch(JoinMsg{SessionID: "p5", Pseudo: "eve", RoomCode: code})
	if joined := joinedEvent(t, s5); !joined.Queued {
		t.Error("fifth joiner should be queued")
	}
}

func TestColorConflictRejected(t *testing.T) {
	c := testCoordinator(t)

	s1 := attach(t, c, "p1")
	c.Dispatch(JoinMsg{SessionID: "p1", Pseudo: "alice", Create: true})
	code := joinedEvent(t, s1).Code

	s2 := attach(t, c, "p2")
	c.Dispatch(JoinMsg{SessionID: "p2", Pseudo: "bob", RoomCode: code})
	joinedEvent(t, s2)

	// First joiner holds color 0.
	c.Dispatch(ColorMsg{SessionID: "p2", Color: 0})
	waitFor(t, s2, "color rejection", func(e SessionEvent) bool {
		_, ok := e.(ErrorEvent)
		return ok
	})
}

func TestModeChangeOwnerOnly(t *testing.T) {
	c := testCoordinator(t)

	s1 := attach(t, c, "p1")
	c.Dispatch(JoinMsg{SessionID: "p1", Pseudo: "alice", Create: true})
	code := joinedEvent(t, s1).Code

	s2 := attach(t, c, "p2")
	c.Dispatch(JoinMsg{SessionID: "p2", Pseudo: "bob", RoomCode: code})
	joinedEvent(t, s2)

	c.Dispatch(GameModeMsg{SessionID: "p2", Mode: "team"})
	waitFor(t, s2, "mode rejection", func(e SessionEvent) bool {
		_, ok := e.(ErrorEvent)
		return ok
	})

	c.Dispatch(GameModeMsg{SessionID: "p1", Mode: "team"})
	waitFor(t, s1, "team mode lobby", func(e SessionEvent) bool {
		lobby, ok := e.(LobbyStateEvent)
		return ok && lobby.GameMode == "team"
	})
}

func TestOwnershipTransferOnLeave(t *testing.T) {
	c := testCoordinator(t)

	s1 := attach(t, c, "p1")
	c.Dispatch(JoinMsg{SessionID: "p1", Pseudo: "alice", Create: true})
	code := joinedEvent(t, s1).Code

	s2 := attach(t, c, "p2")
	c.Dispatch(JoinMsg{SessionID: "p2", Pseudo: "bob", RoomCode: code})
	joinedEvent(t, s2)

	c.Dispatch(LeaveMsg{SessionID: "p1"})
	waitFor(t, s2, "ownership transfer", func(e SessionEvent) bool {
		lobby, ok := e.(LobbyStateEvent)
		return ok && lobby.Owner == "p2" && len(lobby.Players) == 1
	})
}

func TestFullRoomStartsGame(t *testing.T) {
	c := testCoordinator(t)

	s1 := attach(t, c, "p1")
	c.Dispatch(JoinMsg{SessionID: "p1", Pseudo: "alice", Create: true})
	code := joinedEvent(t, s1).Code

	for _, id := range []SessionID{"p2", "p3", "p4"} {
		s := attach(t, c, id)
		c.Dispatch(JoinMsg{SessionID: id, Pseudo: string(id), RoomCode: code})
		joinedEvent(t, s)
	}

	// A full room forces a countdown, the (shortened) countdown expires,
	// and the game starts.
	evt := waitFor(t, s1, "gameStart", func(e SessionEvent) bool {
		_, ok := e.(GameStartEvent)
		return ok
	})
	start := evt.(GameStartEvent)
	if len(start.Players) != 4 {
		t.Errorf("game started with %d players, want 4", len(start.Players))
	}
	if start.MapSeed == "" {
		t.Error("game start carries no map seed")
	}
	if start.Map.Width == 0 || start.Map.Height == 0 {
		t.Error("game start carries no map")
	}
}

func TestRoomRemovedWhenEmpty(t *testing.T) {
	c := testCoordinator(t)

	s1 := attach(t, c, "p1")
	c.Dispatch(JoinMsg{SessionID: "p1", Pseudo: "alice", Create: true})
	joinedEvent(t, s1)

	if c.RoomCount() != 1 {
		t.Fatalf("room count = %d, want 1", c.RoomCount())
	}

	c.Dispatch(LeaveMsg{SessionID: "p1"})

	deadline := time.Now().Add(5 * time.Second)
	for c.RoomCount() != 0 {
		if time.Now().After(deadline) {
			t.Fatal("empty room was never torn down")
		}
		time.Sleep(10 * time.Millisecond)
	}
}
