// Package main starts the native NanoRemote viewer.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/frudas24/nanoremote/internal/client"
	"github.com/frudas24/nanoremote/internal/logging"
	"github.com/frudas24/nanoremote/internal/protocol"
	"github.com/frudas24/nanoremote/internal/signaling"
	"github.com/frudas24/nanoremote/internal/viewer"
	"github.com/frudas24/nanoremote/internal/viewer/screen"
	"github.com/frudas24/nanoremote/internal/webrtc"
)

const (
	transportWS     = "ws"
	transportWebRTC = "webrtc"
)

var (
	serverURL  string
	transport  string
	iceServers []string
	debug      bool
)

var rootCmd = &cobra.Command{
	Use:           "nanoremote-viewer",
	Short:         "Native viewer for a NanoRemote server",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd.Context())
	},
}

func init() {
	rootCmd.Flags().StringVar(&serverURL, "url", "ws://localhost:3000/ws", "control websocket URL")
	rootCmd.Flags().StringVar(&transport, "transport", transportWS, "transport to use: ws or webrtc")
	rootCmd.Flags().StringSliceVar(&iceServers, "ice", nil, "ICE server URLs for the webrtc transport")
	rootCmd.Flags().BoolVar(&debug, "debug", false, "enable verbose debug logging")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

// run connects in the background and runs the window on the main goroutine.
func run(parent context.Context) error {
	level := "info"
	if debug {
		level = "debug"
	}
	logging.Init("text", level, os.Stderr)

	dial, err := dialer(transport, serverURL)
	if err != nil {
		return err
	}

	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	var game *screen.Game
	c, err := client.New(dial, client.Options{
		OnMessage: func(m protocol.Message) { game.OnMessage(m) },
		OnState:   func(up bool) { game.OnState(up) },
	})
	if err != nil {
		return err
	}
	game = screen.NewGame(viewer.NewController(c), c)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := c.Run(gctx); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	})

	ebiten.SetWindowTitle("NanoRemote")
	ebiten.SetWindowSize(1280, 800)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	runErr := ebiten.RunGame(&stoppable{Game: game, ctx: gctx})
	stop()
	if err := g.Wait(); err != nil {
		return err
	}
	if errors.Is(runErr, ebiten.Termination) {
		return nil
	}
	return runErr
}

// dialer picks the transport for url.
func dialer(kind, rawURL string) (client.Dialer, error) {
	switch kind {
	case transportWS:
		return client.WebSocketDialer(rawURL), nil
	case transportWebRTC:
		signalURL, err := signalingURL(rawURL)
		if err != nil {
			return nil, err
		}
		peers, err := webrtc.NewFactory(iceServers)
		if err != nil {
			return nil, err
		}
		return func(ctx context.Context) (client.Conn, error) {
			link, err := signaling.Dial(ctx, signalURL, peers)
			if err != nil {
				return nil, err
			}
			return link, nil
		}, nil
	default:
		return nil, fmt.Errorf("unknown transport %q", kind)
	}
}

// signalingURL maps the control URL onto the signaling endpoint.
func signalingURL(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("parse url: %w", err)
	}
	if !strings.HasSuffix(u.Path, "/signal") {
		u.Path = strings.TrimSuffix(u.Path, "/") + "/signal"
	}
	return u.String(), nil
}

// stoppable ends the game loop when ctx is canceled.
type stoppable struct {
	*screen.Game
	ctx context.Context
}

func (s *stoppable) Update() error {
	if s.ctx.Err() != nil {
		return ebiten.Termination
	}
	return s.Game.Update()
}
