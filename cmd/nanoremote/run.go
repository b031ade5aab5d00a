package main

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/shirou/gopsutil/v3/host"
	"golang.org/x/sync/errgroup"

	"github.com/frudas24/nanoremote/internal/app"
	"github.com/frudas24/nanoremote/internal/capture"
	"github.com/frudas24/nanoremote/internal/config"
	"github.com/frudas24/nanoremote/internal/encoder"
	"github.com/frudas24/nanoremote/internal/input"
	"github.com/frudas24/nanoremote/internal/logging"
	"github.com/frudas24/nanoremote/internal/window"
)

const shutdownTimeout = 5 * time.Second

// run wires the application and blocks until an interrupt.
func run(parent context.Context) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return err
	}
	level := cfg.LogLevel
	if debug {
		level = "debug"
	}
	logging.Init(cfg.LogFormat, level, os.Stdout)
	log := logging.L("main")
	logStartup(log, cfg)

	injector, err := input.NewInjector()
	if err != nil {
		return err
	}

	a, err := app.New(cfg, app.Deps{
		Source:   capture.NewScreen(cfg.MonitorIndex),
		Encoder:  encoder.NewJPEG(cfg.MaxFrameWidth, cfg.JPEGQuality),
		Injector: injector,
		Locator:  window.NewSystem(),
		Version:  version,
	})
	if err != nil {
		return err
	}
	defer a.Stop()

	mux := http.NewServeMux()
	a.RegisterRoutes(mux)
	server := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

// logStartup prints startup checks and connection info.
func logStartup(log *slog.Logger, cfg config.Config) {
	log.Info("NanoRemote starting", "version", version)
	logEnvStatus(log, cfg)
	if cfg.ConfigFile != "" {
		log.Info("config file: ok", "path", cfg.ConfigFile)
	}
	logHostStatus(log)
	log.Info("capture", "monitor", cfg.MonitorIndex, "interval", cfg.FrameInterval(), "max_width", cfg.MaxFrameWidth, "quality", cfg.JPEGQuality)
	log.Info("window target", "title", cfg.WindowTitle)
	log.Info("transports", "webrtc", cfg.WebRTCEnabled, "mjpeg", cfg.MJPEGEnabled)
	logListenStatus(log, cfg.ListenAddr)
}

// logEnvStatus reports whether a .env file was found.
func logEnvStatus(log *slog.Logger, cfg config.Config) {
	envPath := cfg.EnvFile()
	if fileExists(envPath) {
		log.Info("env check: ok", "path", envPath)
	} else {
		log.Info("env check: missing", "path", envPath)
	}
}

// logHostStatus reports the host the server runs on.
func logHostStatus(log *slog.Logger) {
	info, err := host.Info()
	if err != nil {
		log.Warn("host check: unavailable", logging.Err(err))
		return
	}
	log.Info("host check: ok", "hostname", info.Hostname, "platform", info.Platform, "os", info.OS, "arch", info.KernelArch)
}

// logListenStatus reports the listen address and a local URL helper.
func logListenStatus(log *slog.Logger, addr string) {
	log.Info("listen addr", "addr", addr)
	h, port, err := net.SplitHostPort(addr)
	if err != nil {
		return
	}
	if h == "" || h == "0.0.0.0" || h == "::" {
		h = "localhost"
	}
	log.Info("local url", "url", "http://"+net.JoinHostPort(h, port))
}

// fileExists reports whether a path exists and is a file.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
