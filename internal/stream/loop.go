// Package stream runs the fixed-cadence capture, encode and push loop of a session.
package stream

import (
	"context"
	"errors"
	"image"
	"log/slog"
	"sync"
	"time"

	"github.com/frudas24/nanoremote/internal/logging"
)

// DefaultInterval is the loop period, roughly 15 frames per second.
const DefaultInterval = 66 * time.Millisecond

// ErrNoFrame is returned by sources that have nothing to capture.
var ErrNoFrame = errors.New("no frame available")

// FrameSource produces one raw frame on demand.
type FrameSource interface {
	Capture() (image.Image, error)
}

// Encoder compresses a raw frame.
type Encoder interface {
	Encode(img image.Image) ([]byte, error)
}

// FrameSink receives encoded frames with a per-loop sequence number.
type FrameSink interface {
	DeliverFrame(jpg []byte, seq uint64) error
}

// SinkFunc adapts a function to FrameSink.
type SinkFunc func(jpg []byte, seq uint64) error

// DeliverFrame calls f(jpg, seq).
func (f SinkFunc) DeliverFrame(jpg []byte, seq uint64) error { return f(jpg, seq) }

// Loop pushes frames from a source to a sink on a fixed period. A slow tick
// delays the next one; there is no catch-up.
type Loop struct {
	mu       sync.Mutex
	src      FrameSource
	enc      Encoder
	sink     FrameSink
	interval time.Duration
	log      *slog.Logger

	cancel context.CancelFunc
	done   chan struct{}
	seq    uint64
}

// NewLoop wires a loop. A non-positive interval uses DefaultInterval.
func NewLoop(src FrameSource, enc Encoder, sink FrameSink, interval time.Duration, log *slog.Logger) (*Loop, error) {
	if src == nil {
		return nil, errors.New("frame source is required")
	}
	if enc == nil {
		return nil, errors.New("encoder is required")
	}
	if sink == nil {
		return nil, errors.New("frame sink is required")
	}
	if interval <= 0 {
		interval = DefaultInterval
	}
	if log == nil {
		log = logging.L("stream")
	}
	return &Loop{src: src, enc: enc, sink: sink, interval: interval, log: log}, nil
}

// Start begins streaming. It reports false when the loop was already running.
func (l *Loop) Start() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.cancel != nil {
		return false
	}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	l.cancel = cancel
	l.done = done
	go l.run(ctx, done)
	l.log.Info("stream started", "interval", l.interval)
	return true
}

// Stop cancels the timer. A tick already in flight completes but does not
// deliver. It reports false when the loop was not running.
func (l *Loop) Stop() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.cancel == nil {
		return false
	}
	l.cancel()
	l.cancel = nil
	l.log.Info("stream stopped", "frames", l.seq)
	return true
}

// Running reports whether the loop is active.
func (l *Loop) Running() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.cancel != nil
}

// Done returns a channel closed when the most recently started loop exits.
func (l *Loop) Done() <-chan struct{} {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.done == nil {
		closed := make(chan struct{})
		close(closed)
		return closed
	}
	return l.done
}

func (l *Loop) run(ctx context.Context, done chan struct{}) {
	defer close(done)
	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()

	failures := 0
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := l.tick(ctx); err != nil {
				failures++
				if failures == 1 {
					l.log.Warn("frame skipped", logging.Err(err))
				} else {
					l.log.Debug("frame skipped", logging.Err(err), "consecutive", failures)
				}
				continue
			}
			if failures > 0 {
				l.log.Info("frames recovered", "skipped", failures)
				failures = 0
			}
		}
	}
}

// tick captures, encodes and delivers one frame.
func (l *Loop) tick(ctx context.Context) error {
	img, err := l.src.Capture()
	if err != nil {
		return err
	}
	if img == nil {
		return ErrNoFrame
	}
	jpg, err := l.enc.Encode(img)
	if err != nil {
		return err
	}
	if ctx.Err() != nil {
		return nil
	}
	l.mu.Lock()
	l.seq++
	seq := l.seq
	l.mu.Unlock()
	if err := l.sink.DeliverFrame(jpg, seq); err != nil {
		l.log.Debug("frame not delivered", logging.Err(err), "seq", seq)
	}
	return nil
}
