package arena

import (
	"crypto/rand"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
)

// roomCodeAlphabet avoids characters players confuse when reading a code
// aloud (0/O, 1/I/L).
const roomCodeAlphabet = "ABCDEFGHJKMNPQRSTUVWXYZ23456789"

const roomCodeLength = 6

// Coordinator owns the room directory: it creates rooms, admits sessions
// by code, and routes every subsequent message to the session's room.
// Rooms run as their own goroutines; the coordinator only touches them
// through Deliver.
type Coordinator struct {
	logger   *log.Logger
	store    ResultStore
	registry *SessionRegistry
	cfg      RoomConfig

	mu          sync.Mutex
	rooms       map[string]*Room
	sessionRoom map[SessionID]*Room

	msgs     chan Message
	done     chan struct{}
	doneOnce sync.Once
}

// NewCoordinator creates a coordinator. store may be nil.
func NewCoordinator(cfg RoomConfig, logger *log.Logger, store ResultStore) *Coordinator {
	return &Coordinator{
		logger:      logger,
		store:       store,
		registry:    NewSessionRegistry(),
		cfg:         cfg,
		rooms:       make(map[string]*Room),
		sessionRoom: make(map[SessionID]*Room),
		msgs:        make(chan Message, 512),
		done:        make(chan struct{}),
	}
}

// Run processes inbound messages until Stop. Call it in its own goroutine.
func (c *Coordinator) Run() {
	for {
		select {
		case msg := <-c.msgs:
			c.route(msg)
		case <-c.done:
			c.stopRooms()
			return
		}
	}
}

// Stop shuts the coordinator and all rooms down.
func (c *Coordinator) Stop() {
	c.doneOnce.Do(func() {
		close(c.done)
	})
}

func (c *Coordinator) stopRooms() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, room := range c.rooms {
		room.Stop()
	}
}

// AttachSession registers a session so Join messages can resolve it.
func (c *Coordinator) AttachSession(s SessionHandle) {
	c.registry.Register(s)
}

// DetachSession removes a session, leaving its room if it was in one.
func (c *Coordinator) DetachSession(id SessionID) {
	c.registry.Unregister(id)
	c.Dispatch(LeaveMsg{SessionID: id})
}

// Dispatch hands a message to the coordinator without blocking.
func (c *Coordinator) Dispatch(msg Message) {
	select {
	case c.msgs <- msg:
	case <-c.done:
	default:
		c.logger.Warn("coordinator queue full, dropping message")
	}
}

// RoomCount returns the number of live rooms.
func (c *Coordinator) RoomCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.rooms)
}

func (c *Coordinator) route(msg Message) {
	switch m := msg.(type) {
	case JoinMsg:
		c.handleJoin(m)
	case LeaveMsg:
		c.handleLeave(m)
	default:
		c.forward(msg)
	}
}

func (c *Coordinator) handleJoin(m JoinMsg) {
	session, ok := c.registry.Get(m.SessionID)
	if !ok {
		c.logger.Warn("join from unknown session", "session", m.SessionID)
		return
	}

	c.mu.Lock()
	if _, inRoom := c.sessionRoom[m.SessionID]; inRoom {
		c.mu.Unlock()
		session.Send(ErrorEvent{Message: "already in a room, leave first"})
		return
	}

	var room *Room
	if m.Create || m.RoomCode == "" {
		room = c.createRoomLocked()
	} else {
		code := strings.ToUpper(strings.TrimSpace(m.RoomCode))
		room = c.rooms[code]
		if room == nil {
			c.mu.Unlock()
			session.Send(ErrorEvent{Message: "room not found"})
			return
		}
	}
	c.sessionRoom[m.SessionID] = room
	c.mu.Unlock()

	pseudo := strings.TrimSpace(m.Pseudo)
	if pseudo == "" {
		pseudo = "player-" + string(m.SessionID)[:min(6, len(m.SessionID))]
	}
	room.Deliver(joinRoomMsg{session: session, pseudo: pseudo})
}

// createRoomLocked makes a new room and starts its goroutine. Caller
// holds c.mu.
func (c *Coordinator) createRoomLocked() *Room {
	code := c.newRoomCodeLocked()
	room := NewRoom(code, c.cfg, c.logger, c.store, c.roomEmptied)
	c.rooms[code] = room
	go room.Run()
	c.logger.Info("room created", "room", code)
	return room
}

func (c *Coordinator) newRoomCodeLocked() string {
	for {
		buf := make([]byte, roomCodeLength)
		if _, err := rand.Read(buf); err != nil {
			// crypto/rand failing means the host is broken; panic over
			// handing out predictable codes.
			panic("arena: crypto/rand unavailable: " + err.Error())
		}
		for i, b := range buf {
			buf[i] = roomCodeAlphabet[int(b)%len(roomCodeAlphabet)]
		}
		code := string(buf)
		if _, taken := c.rooms[code]; !taken {
			return code
		}
	}
}

// roomEmptied is the room's teardown callback, called from the room
// goroutine after its last member leaves.
func (c *Coordinator) roomEmptied(code string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.rooms, code)
	for id, room := range c.sessionRoom {
		if room.Code() == code {
			delete(c.sessionRoom, id)
		}
	}
	c.logger.Info("room removed", "room", code)
}

func (c *Coordinator) handleLeave(m LeaveMsg) {
	c.mu.Lock()
	room := c.sessionRoom[m.SessionID]
	delete(c.sessionRoom, m.SessionID)
	c.mu.Unlock()

	if room != nil {
		room.Deliver(m)
	}
}

func (c *Coordinator) forward(msg Message) {
	id, ok := messageSession(msg)
	if !ok {
		return
	}

	c.mu.Lock()
	room := c.sessionRoom[id]
	c.mu.Unlock()

	if room == nil {
		if session, found := c.registry.Get(id); found {
			session.Send(ErrorEvent{Message: "not in a room"})
		}
		return
	}
	room.Deliver(msg)
}

// messageSession extracts the originating session from a room-bound
// message.
func messageSession(msg Message) (SessionID, bool) {
	switch m := msg.(type) {
	case ReadyMsg:
		return m.SessionID, true
	case ColorMsg:
		return m.SessionID, true
	case TeamMsg:
		return m.SessionID, true
	case GameModeMsg:
		return m.SessionID, true
	case MoveMsg:
		return m.SessionID, true
	case ActionMsg:
		return m.SessionID, true
	case ChatMsg:
		return m.SessionID, true
	}
	return "", false
}
