// Package mjpeg serves a multipart JPEG preview of the captured screen.
package mjpeg

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/frudas24/nanoremote/internal/logging"
	"github.com/frudas24/nanoremote/internal/stream"
)

const boundary = "frame"

// Handler runs a private capture loop for every connected HTTP client.
type Handler struct {
	src      stream.FrameSource
	enc      stream.Encoder
	interval time.Duration
	log      *slog.Logger
	viewers  atomic.Int64
}

// NewHandler returns a preview handler capturing from src every interval.
func NewHandler(src stream.FrameSource, enc stream.Encoder, interval time.Duration) (*Handler, error) {
	if src == nil {
		return nil, errors.New("frame source is required")
	}
	if enc == nil {
		return nil, errors.New("encoder is required")
	}
	return &Handler{src: src, enc: enc, interval: interval, log: logging.L("mjpeg")}, nil
}

// Viewers returns the number of connected preview clients.
func (h *Handler) Viewers() int {
	return int(h.viewers.Load())
}

// ServeHTTP streams frames until the client disconnects.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	fl, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	frames := make(chan []byte, 1)
	loop, err := stream.NewLoop(h.src, h.enc, stream.SinkFunc(func(jpg []byte, _ uint64) error {
		offer(frames, jpg)
		return nil
	}), h.interval, h.log)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "multipart/x-mixed-replace; boundary="+boundary)
	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Pragma", "no-cache")

	h.viewers.Add(1)
	defer h.viewers.Add(-1)
	loop.Start()
	defer loop.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case jpg := <-frames:
			if err := writePart(w, jpg); err != nil {
				return
			}
			fl.Flush()
		}
	}
}

// offer replaces any pending frame with jpg so slow clients see the latest.
func offer(ch chan []byte, jpg []byte) {
	frame := append([]byte(nil), jpg...)
	select {
	case <-ch:
	default:
	}
	select {
	case ch <- frame:
	default:
	}
}

// writePart writes a single JPEG frame to the multipart response.
func writePart(w http.ResponseWriter, jpg []byte) error {
	_, _ = w.Write([]byte("\r\n--" + boundary + "\r\n"))
	_, _ = w.Write([]byte("Content-Type: image/jpeg\r\n"))
	_, _ = w.Write([]byte("Content-Length: " + strconv.Itoa(len(jpg)) + "\r\n\r\n"))
	_, err := w.Write(jpg)
	return err
}
