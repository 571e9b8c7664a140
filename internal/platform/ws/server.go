// Package ws is the websocket gateway: it upgrades HTTP connections,
// assigns each one a session, and shuttles JSON envelopes between the
// socket and the arena coordinator.
package ws

import (
	"context"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/bomb-arena/internal/arena"
)

// sessionBuffer is the per-session outbound event buffer. Bursts above it
// drop the oldest events rather than stall the room.
const sessionBuffer = 256

// Server is the websocket front door.
type Server struct {
	coord    *arena.Coordinator
	logger   *log.Logger
	upgrader websocket.Upgrader
	httpSrv  *http.Server
}

// NewServer creates a gateway bound to the coordinator.
func NewServer(addr string, coord *arena.Coordinator, logger *log.Logger) *Server {
	s := &Server{
		coord:  coord,
		logger: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWS)
	mux.HandleFunc("/healthz", s.handleHealth)

	s.httpSrv = &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s
}

// ListenAndServe blocks until the server stops.
func (s *Server) ListenAndServe() error {
	s.logger.Info("listening", "addr", s.httpSrv.Addr)
	err := s.httpSrv.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// Shutdown stops accepting connections and drains the rest.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpSrv.Shutdown(ctx)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("upgrade failed", "remote", r.RemoteAddr, "err", err)
		return
	}

	id := arena.SessionID(uuid.NewString())
	session := arena.NewChannelSession(id, sessionBuffer)
	s.coord.AttachSession(session)
	s.logger.Info("session connected", "session", id, "remote", r.RemoteAddr)

	c := &client{
		conn:    conn,
		session: session,
		coord:   s.coord,
		logger:  s.logger,
	}
	c.serve()
	s.logger.Info("session disconnected", "session", id)
}
