package ws

import (
	"encoding/json"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/bomb-arena/internal/arena"
)

const (
	// writeWait bounds a single frame write to a slow client.
	writeWait = 10 * time.Second

	// pongWait is how long we tolerate radio silence before dropping the
	// connection; pings go out at pingPeriod to keep it alive.
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10

	maxMessageSize = 4096
)

// client bridges one websocket connection to a coordinator session.
type client struct {
	conn    *websocket.Conn
	session *arena.ChannelSession
	coord   *arena.Coordinator
	logger  *log.Logger
}

// serve runs the read loop in the calling goroutine and the write loop in
// a second one. It returns when the connection dies; session teardown and
// room leave are handled here.
func (c *client) serve() {
	go c.writeLoop()
	c.readLoop()

	c.session.Close()
	c.coord.DetachSession(c.session.ID())
	c.conn.Close()
}

func (c *client) readLoop() {
	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, payload, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				c.logger.Debug("connection closed", "session", c.session.ID(), "err", err)
			}
			return
		}

		var env Envelope
		if err := json.Unmarshal(payload, &env); err != nil {
			c.session.Send(arena.ErrorEvent{Message: "malformed message"})
			continue
		}

		msg, err := decodeMessage(c.session.ID(), env)
		if err != nil {
			// Protocol errors go back to the offender only; the room
			// never sees them.
			c.session.Send(arena.ErrorEvent{Message: err.Error()})
			continue
		}
		c.coord.Dispatch(msg)
	}
}

func (c *client) writeLoop() {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case evt, ok := <-c.session.Events():
			if !ok {
				return
			}
			env, err := encodeEvent(evt)
			if err != nil {
				c.logger.Warn("dropping unencodable event", "err", err)
				continue
			}
			data, err := json.Marshal(env)
			if err != nil {
				c.logger.Warn("dropping event", "err", err)
				continue
			}
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}
		case <-c.session.Done():
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			c.conn.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			return
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
