// Package app wires sessions, transports and HTTP routes together.
package app

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/frudas24/nanoremote/internal/config"
	"github.com/frudas24/nanoremote/internal/input"
	"github.com/frudas24/nanoremote/internal/logging"
	"github.com/frudas24/nanoremote/internal/mjpeg"
	"github.com/frudas24/nanoremote/internal/monitor"
	"github.com/frudas24/nanoremote/internal/session"
	"github.com/frudas24/nanoremote/internal/signaling"
	"github.com/frudas24/nanoremote/internal/stream"
	"github.com/frudas24/nanoremote/internal/transport"
	"github.com/frudas24/nanoremote/internal/webrtc"
	"github.com/frudas24/nanoremote/internal/window"
)

// Deps are the host collaborators the application drives.
type Deps struct {
	Source   stream.FrameSource
	Encoder  stream.Encoder
	Injector input.Injector
	Locator  window.Locator
	// Monitors lists displays; nil uses monitor.ListMonitors.
	Monitors func() ([]monitor.Monitor, error)
	Version  string
}

// App owns the session manager and the handlers serving it.
type App struct {
	cfg       config.Config
	version   string
	started   time.Time
	log       *slog.Logger
	sessions  *session.Manager
	control   *transport.Server
	signaling *signaling.Server
	preview   *mjpeg.Handler
	monitors  func() ([]monitor.Monitor, error)
}

// New creates a new application with its dependencies wired.
func New(cfg config.Config, deps Deps) (*App, error) {
	if deps.Source == nil {
		return nil, errors.New("frame source is required")
	}
	if deps.Encoder == nil {
		return nil, errors.New("encoder is required")
	}
	if deps.Injector == nil {
		return nil, errors.New("injector is required")
	}

	a := &App{
		cfg:      cfg,
		version:  deps.Version,
		started:  time.Now(),
		log:      logging.L("app"),
		monitors: deps.Monitors,
	}
	if a.monitors == nil {
		a.monitors = monitor.ListMonitors
	}

	a.sessions = session.NewManager(session.Deps{
		Source:      deps.Source,
		Encoder:     deps.Encoder,
		Interval:    cfg.FrameInterval(),
		Injector:    deps.Injector,
		Locator:     deps.Locator,
		WindowTitle: cfg.WindowTitle,
		MoveRate:    float64(cfg.MoveRateLimit),
	})
	a.control = transport.NewServer(a.sessions)

	if cfg.WebRTCEnabled {
		peers, err := webrtc.NewFactory(cfg.ICEServers)
		if err != nil {
			return nil, fmt.Errorf("webrtc: %w", err)
		}
		a.signaling = signaling.NewServer(peers, a.sessions)
	}
	if cfg.MJPEGEnabled {
		preview, err := mjpeg.NewHandler(deps.Source, deps.Encoder, cfg.FrameInterval())
		if err != nil {
			return nil, fmt.Errorf("mjpeg: %w", err)
		}
		a.preview = preview
	}
	return a, nil
}

// Sessions returns the live session manager.
func (a *App) Sessions() *session.Manager {
	return a.sessions
}

// Stop tears down every live session.
func (a *App) Stop() {
	n := a.sessions.Count()
	a.sessions.CloseAll()
	a.log.Info("sessions closed", "count", n)
}
