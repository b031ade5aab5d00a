// Package transport carries control and frame messages between clients and
// sessions over WebSocket.
package transport

import (
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/frudas24/nanoremote/internal/logging"
	"github.com/frudas24/nanoremote/internal/protocol"
	"github.com/frudas24/nanoremote/internal/session"
)

const (
	writeWait      = 5 * time.Second
	maxMessageSize = 64 * 1024
)

// Server upgrades /ws requests and runs one session per connection.
type Server struct {
	upgrader websocket.Upgrader
	sessions *session.Manager
	log      *slog.Logger
}

// NewServer returns a control websocket server backed by sessions.
func NewServer(sessions *session.Manager) *Server {
	return &Server{
		sessions: sessions,
		log:      logging.L("transport"),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 64 * 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
	}
}

// ServeHTTP upgrades the request and reads until the client goes away.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Debug("upgrade failed", logging.KeyRemote, r.RemoteAddr, logging.Err(err))
		return
	}
	defer conn.Close()
	conn.SetReadLimit(maxMessageSize)

	sender := &connSender{conn: conn}
	sess, err := s.sessions.Open(r.RemoteAddr, sender)
	if err != nil {
		s.log.Error("session setup failed", logging.KeyRemote, r.RemoteAddr, logging.Err(err))
		return
	}
	defer s.sessions.Release(sess)

	for {
		kind, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				s.log.Debug("read failed", logging.KeySession, sess.ID(), logging.Err(err))
			}
			sender.close()
			return
		}
		if kind != websocket.TextMessage && kind != websocket.BinaryMessage {
			continue
		}
		sess.HandleRaw(data)
	}
}

// connSender serializes writes to one websocket.
type connSender struct {
	mu     sync.Mutex
	conn   *websocket.Conn
	closed bool
}

var errConnClosed = errors.New("connection closed")

// Send writes msg as one text message.
func (c *connSender) Send(msg protocol.Message) error {
	data, err := protocol.Encode(msg)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return errConnClosed
	}
	_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return c.conn.WriteMessage(websocket.TextMessage, data)
}

func (c *connSender) close() {
	c.mu.Lock()
	c.closed = true
	c.mu.Unlock()
}
