// Package client keeps a viewer connected to a NanoRemote server and exchanges
// protocol messages over it.
package client

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/frudas24/nanoremote/internal/logging"
	"github.com/frudas24/nanoremote/internal/protocol"
)

// ReconnectDelay is the fixed wait between connection attempts.
const ReconnectDelay = 2 * time.Second

// Conn is one established message connection.
type Conn interface {
	WriteMessage(data []byte) error
	ReadMessage() ([]byte, error)
	Close() error
}

// Dialer opens a new connection.
type Dialer func(ctx context.Context) (Conn, error)

// Options configures a Client. Callbacks run on the reader goroutine.
type Options struct {
	OnMessage func(protocol.Message)
	OnState   func(connected bool)
	// Delay overrides ReconnectDelay when positive.
	Delay  time.Duration
	Logger *slog.Logger
}

// Client reconnects forever with a fixed delay and drops sends while offline.
type Client struct {
	dial  Dialer
	opts  Options
	log   *slog.Logger
	stats *Stats

	mu   sync.Mutex
	conn Conn
}

// New returns a client using dial for every attempt.
func New(dial Dialer, opts Options) (*Client, error) {
	if dial == nil {
		return nil, errors.New("dialer is required")
	}
	if opts.Delay <= 0 {
		opts.Delay = ReconnectDelay
	}
	log := opts.Logger
	if log == nil {
		log = logging.L("client")
	}
	return &Client{dial: dial, opts: opts, log: log, stats: NewStats()}, nil
}

// Run connects and reads until ctx is canceled.
func (c *Client) Run(ctx context.Context) error {
	for {
		conn, err := c.dial(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			c.log.Debug("connect failed", logging.Err(err))
		} else {
			c.serve(ctx, conn)
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(c.opts.Delay):
		}
	}
}

// Send writes msg when connected. It reports false when the message was dropped.
func (c *Client) Send(msg protocol.Message) bool {
	data, err := protocol.Encode(msg)
	if err != nil {
		c.log.Debug("encode failed", logging.Err(err))
		return false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.conn == nil {
		return false
	}
	if err := c.conn.WriteMessage(data); err != nil {
		c.log.Debug("send failed", logging.KeyType, msg.Type, logging.Err(err))
		return false
	}
	return true
}

// Connected reports whether a connection is established.
func (c *Client) Connected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn != nil
}

// Stats returns the frame statistics of the current connection.
func (c *Client) Stats() StatsSnapshot {
	return c.stats.Snapshot()
}

// serve reads from conn until it fails or ctx ends.
func (c *Client) serve(ctx context.Context, conn Conn) {
	c.stats.Reset()
	c.setConn(conn)
	c.log.Info("connected")
	stop := context.AfterFunc(ctx, func() { _ = conn.Close() })
	defer func() {
		stop()
		_ = conn.Close()
		c.setConn(nil)
		c.log.Info("disconnected")
	}()

	for {
		data, err := conn.ReadMessage()
		if err != nil {
			return
		}
		msg, err := protocol.Decode(data)
		if err != nil {
			c.log.Debug("malformed message dropped", logging.Err(err))
			continue
		}
		if msg.Type == protocol.TypeFrame {
			c.stats.Frame(msg.Seq, time.Now())
		}
		if c.opts.OnMessage != nil {
			c.opts.OnMessage(msg)
		}
	}
}

func (c *Client) setConn(conn Conn) {
	c.mu.Lock()
	c.conn = conn
	c.mu.Unlock()
	if c.opts.OnState != nil {
		c.opts.OnState(conn != nil)
	}
}

// WebSocketDialer dials the control websocket at url.
func WebSocketDialer(url string) Dialer {
	return func(ctx context.Context) (Conn, error) {
		ws, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
		if err != nil {
			return nil, fmt.Errorf("dial %s: %w", url, err)
		}
		return &wsConn{ws: ws}, nil
	}
}

// wsConn adapts a gorilla connection to Conn.
type wsConn struct {
	ws *websocket.Conn
}

func (w *wsConn) WriteMessage(data []byte) error {
	return w.ws.WriteMessage(websocket.TextMessage, data)
}

func (w *wsConn) ReadMessage() ([]byte, error) {
	_, data, err := w.ws.ReadMessage()
	return data, err
}

func (w *wsConn) Close() error {
	return w.ws.Close()
}
