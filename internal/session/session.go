// Package session owns the per-connection state of a remote viewer: the
// streaming loop, the input adapter and the last known window bounds.
package session

import (
	"context"
	"encoding/base64"
	"errors"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/frudas24/nanoremote/internal/control"
	"github.com/frudas24/nanoremote/internal/input"
	"github.com/frudas24/nanoremote/internal/logging"
	"github.com/frudas24/nanoremote/internal/protocol"
	"github.com/frudas24/nanoremote/internal/stream"
	"github.com/frudas24/nanoremote/internal/window"
)

// DefaultWindowTitle is matched when no title is configured.
const DefaultWindowTitle = "NanoVNA"

// locateTimeout bounds a single window lookup.
const locateTimeout = 3 * time.Second

// ErrClosed is returned when sending on a closed session.
var ErrClosed = errors.New("session closed")

// Sender delivers a message to the connected client.
type Sender interface {
	Send(msg protocol.Message) error
}

// Deps are the collaborators of a session.
type Deps struct {
	Sender      Sender
	Source      stream.FrameSource
	Encoder     stream.Encoder
	Interval    time.Duration
	Injector    input.Injector
	Locator     window.Locator
	WindowTitle string
	// MoveRate caps injected mousemove intents per second; moves over the
	// rate are dropped. Zero disables the limiter.
	MoveRate float64
	Logger   *slog.Logger
}

// Session is created on accept and torn down on disconnect.
type Session struct {
	id      string
	log     *slog.Logger
	sender  Sender
	loop    *stream.Loop
	adapter *control.Adapter
	locator window.Locator
	title   string
	moves   *rate.Limiter

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu     sync.Mutex
	bounds *protocol.Bounds
	closed bool
}

// New wires a session. Locator may be nil, in which case findWindow always
// replies with null bounds.
func New(id string, deps Deps) (*Session, error) {
	if deps.Sender == nil {
		return nil, errors.New("sender is required")
	}
	adapter, err := control.NewAdapter(deps.Injector)
	if err != nil {
		return nil, err
	}
	log := deps.Logger
	if log == nil {
		log = logging.WithSession(logging.L("session"), id, "")
	}
	title := deps.WindowTitle
	if title == "" {
		title = DefaultWindowTitle
	}
	ctx, cancel := context.WithCancel(context.Background())
	s := &Session{
		id:      id,
		log:     log,
		sender:  deps.Sender,
		adapter: adapter,
		locator: deps.Locator,
		title:   title,
		ctx:     ctx,
		cancel:  cancel,
	}
	if deps.MoveRate > 0 {
		burst := int(deps.MoveRate / 10)
		if burst < 1 {
			burst = 1
		}
		s.moves = rate.NewLimiter(rate.Limit(deps.MoveRate), burst)
	}
	loop, err := stream.NewLoop(deps.Source, deps.Encoder, stream.SinkFunc(s.deliverFrame), deps.Interval, log)
	if err != nil {
		cancel()
		return nil, err
	}
	s.loop = loop
	return s, nil
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// Open starts a background window lookup so a later findWindow has bounds to
// fall back on.
func (s *Session) Open() {
	s.locateAsync(false)
}

// HandleRaw decodes one inbound payload and dispatches it. Malformed and
// unknown payloads are logged and dropped.
func (s *Session) HandleRaw(data []byte) {
	msg, err := protocol.Decode(data)
	if err != nil {
		s.log.Debug("malformed message dropped", logging.Err(err))
		return
	}
	s.Handle(msg)
}

// Handle dispatches a decoded message.
func (s *Session) Handle(msg protocol.Message) {
	if s.isClosed() {
		return
	}
	switch msg.Type {
	case protocol.TypeStart:
		s.loop.Start()
	case protocol.TypeStop:
		s.loop.Stop()
	case protocol.TypeFindWindow:
		s.locateAsync(true)
	case protocol.TypeMouseMove:
		if s.moves != nil && !s.moves.Allow() {
			return
		}
		s.apply(msg)
	default:
		if control.Handles(msg.Type) {
			s.apply(msg)
			return
		}
		s.log.Debug("message ignored", logging.KeyType, msg.Type)
	}
}

// Streaming reports whether frames are being pushed.
func (s *Session) Streaming() bool {
	return s.loop.Running()
}

// LastBounds returns the last located window, or nil.
func (s *Session) LastBounds() *protocol.Bounds {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.bounds == nil {
		return nil
	}
	b := *s.bounds
	return &b
}

// Close stops streaming and waits for pending lookups. It is safe to call
// more than once.
func (s *Session) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	s.mu.Unlock()

	s.loop.Stop()
	s.cancel()
	s.wg.Wait()
	s.log.Info("session closed")
}

// apply forwards an input intent; failures stay local.
func (s *Session) apply(msg protocol.Message) {
	if err := s.adapter.Apply(msg); err != nil {
		s.log.Warn("input injection failed", logging.KeyType, msg.Type, logging.Err(err))
	}
}

// deliverFrame is the loop sink for this connection.
func (s *Session) deliverFrame(jpg []byte, seq uint64) error {
	if s.isClosed() {
		return ErrClosed
	}
	return s.sender.Send(protocol.Frame(base64.StdEncoding.EncodeToString(jpg), seq))
}

// locateAsync looks up the window off the read path. With reply set the
// client receives the located bounds, the last known ones, or null.
func (s *Session) locateAsync(reply bool) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.wg.Add(1)
	s.mu.Unlock()

	go func() {
		defer s.wg.Done()
		s.locate()
		if !reply || s.isClosed() {
			return
		}
		if err := s.sender.Send(protocol.WindowBounds(s.LastBounds())); err != nil {
			s.log.Debug("window bounds not delivered", logging.Err(err))
		}
	}()
}

func (s *Session) locate() {
	if s.locator == nil {
		return
	}
	ctx, cancel := context.WithTimeout(s.ctx, locateTimeout)
	defer cancel()
	b, err := s.locator.Locate(ctx, s.title)
	if err != nil {
		s.log.Debug("window not located", "title", s.title, logging.Err(err))
		return
	}
	s.mu.Lock()
	s.bounds = &b
	s.mu.Unlock()
	s.log.Info("window located", "title", s.title, "x", b.X, "y", b.Y, "width", b.Width, "height", b.Height)
}

func (s *Session) isClosed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}
