package arena

// Message is an inbound player event, delivered to the coordinator by the
// transport layer. Marker-method pattern keeps the set closed.
type Message interface {
	message()
}

// JoinMsg asks to join (or create) a room.
type JoinMsg struct {
	SessionID SessionID
	Pseudo    string
	RoomCode  string // Empty with Create set means a fresh room
	Create    bool
}

func (JoinMsg) message() {}

// LeaveMsg removes a session from its room (connection close included).
type LeaveMsg struct {
	SessionID SessionID
}

func (LeaveMsg) message() {}

// ReadyMsg toggles the session's ready flag in the lobby.
type ReadyMsg struct {
	SessionID SessionID
}

func (ReadyMsg) message() {}

// ColorMsg requests a color change (0..5, unique within the room).
type ColorMsg struct {
	SessionID SessionID
	Color     int
}

func (ColorMsg) message() {}

// TeamMsg requests a team change ("alpha", "beta", "none").
type TeamMsg struct {
	SessionID SessionID
	Team      string
}

func (TeamMsg) message() {}

// GameModeMsg requests a room mode change ("ffa", "team"). Owner only.
type GameModeMsg struct {
	SessionID SessionID
	Mode      string
}

func (GameModeMsg) message() {}

// MoveMsg reports a directional input edge: a direction going down or up.
type MoveMsg struct {
	SessionID SessionID
	Dir       string // "up", "down", "left", "right"
	Active    bool
}

func (MoveMsg) message() {}

// ActionMsg reports a discrete action.
type ActionMsg struct {
	SessionID SessionID
	Action    string // "placeBomb" or "detonate"
}

func (ActionMsg) message() {}

// ChatMsg posts a chat line to the session's room.
type ChatMsg struct {
	SessionID SessionID
	Text      string
}

func (ChatMsg) message() {}
