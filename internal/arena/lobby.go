package arena

// TimerKind is the kind of lobby timer currently running.
type TimerKind int

const (
	TimerNone      TimerKind = iota
	TimerWaiting             // Some but not all players ready
	TimerCountdown           // Game start countdown
)

// LobbyTimer is a room's transient pre-game timer state. Ticked once per
// second by the room loop; recreated per room, never persisted.
type LobbyTimer struct {
	Kind      TimerKind
	Remaining int  // Seconds
	Forced    bool // A forced countdown starts the game no matter what
}

// lobbyDurations parameterizes EvaluateLobby so tests can shorten timers.
type lobbyDurations struct {
	waiting   int
	countdown int
}

// EvaluateLobby returns the timer that should be running after a roster
// change (join, leave, ready toggle). A timer of the kind already running
// keeps its remaining time; switching kinds restarts at full duration.
//
// Rules, in priority order: a full room forces a countdown regardless of
// ready count; everyone ready (two or more players) starts a countdown;
// some but not all ready keeps a waiting timer; nobody ready cancels.
func EvaluateLobby(n, ready int, cur LobbyTimer, d lobbyDurations) LobbyTimer {
	switch {
	case n >= RoomCapacity:
		if cur.Kind == TimerCountdown {
			return cur
		}
		return LobbyTimer{Kind: TimerCountdown, Remaining: d.countdown, Forced: true}
	case ready == n && n >= 2:
		if cur.Kind == TimerCountdown {
			return cur
		}
		return LobbyTimer{Kind: TimerCountdown, Remaining: d.countdown}
	case ready >= 1:
		if cur.Kind == TimerWaiting {
			return cur
		}
		return LobbyTimer{Kind: TimerWaiting, Remaining: d.waiting}
	default:
		return LobbyTimer{}
	}
}

// waitingExpired decides the transition when the waiting timer hits zero:
// enough players means a forced countdown, otherwise the timer clears.
func waitingExpired(n int, d lobbyDurations) LobbyTimer {
	if n >= 2 {
		return LobbyTimer{Kind: TimerCountdown, Remaining: d.countdown, Forced: true}
	}
	return LobbyTimer{}
}

// countdownExpired decides the transition when the countdown hits zero.
// start=true means the game begins; otherwise the returned timer replaces
// the countdown (a fresh waiting period, or nothing).
func countdownExpired(cur LobbyTimer, n, ready int, d lobbyDurations) (next LobbyTimer, start bool) {
	if cur.Forced || n >= RoomCapacity || (ready == n && n >= 2) {
		return LobbyTimer{}, true
	}
	if ready >= 1 && ready < n {
		return LobbyTimer{Kind: TimerWaiting, Remaining: d.waiting}, false
	}
	return LobbyTimer{}, false
}
