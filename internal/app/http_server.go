package app

import (
	"encoding/json"
	"net/http"
	"os"
	"time"

	"github.com/shirou/gopsutil/v3/host"

	"github.com/frudas24/nanoremote/internal/logging"
	"github.com/frudas24/nanoremote/internal/web"
)

// RegisterRoutes wires API, websocket and static handlers onto the mux.
func (a *App) RegisterRoutes(mux *http.ServeMux) {
	mux.Handle("/ws", a.control)
	if a.signaling != nil {
		mux.Handle("/ws/signal", a.signaling)
	}
	if a.preview != nil {
		mux.Handle("/mjpeg", a.preview)
	}
	mux.HandleFunc("/api/monitors", a.handleMonitors)
	mux.HandleFunc("/api/status", a.handleStatus)
	mux.HandleFunc("/favicon.ico", handleFavicon)
	mux.Handle("/", a.staticFileServer())
}

type statusResponse struct {
	Version       string    `json:"version"`
	Sessions      int       `json:"sessions"`
	Previews      int       `json:"previews"`
	UptimeSeconds float64   `json:"uptimeSeconds"`
	WindowTitle   string    `json:"windowTitle"`
	WebRTC        bool      `json:"webrtc"`
	Host          *hostInfo `json:"host,omitempty"`
}

type hostInfo struct {
	Hostname      string `json:"hostname"`
	OS            string `json:"os"`
	Platform      string `json:"platform"`
	KernelArch    string `json:"kernelArch"`
	UptimeSeconds uint64 `json:"uptimeSeconds"`
}

// handleMonitors returns the list of monitors.
func (a *App) handleMonitors(w http.ResponseWriter, _ *http.Request) {
	list, err := a.monitors()
	if err != nil {
		a.log.Warn("monitor list failed", logging.Err(err))
		http.Error(w, "failed to list monitors", http.StatusInternalServerError)
		return
	}
	writeJSON(w, list)
}

// handleStatus reports process and host state.
func (a *App) handleStatus(w http.ResponseWriter, r *http.Request) {
	resp := statusResponse{
		Version:       a.version,
		Sessions:      a.sessions.Count(),
		UptimeSeconds: time.Since(a.started).Seconds(),
		WindowTitle:   a.cfg.WindowTitle,
		WebRTC:        a.signaling != nil,
	}
	if a.preview != nil {
		resp.Previews = a.preview.Viewers()
	}
	if info, err := host.InfoWithContext(r.Context()); err == nil {
		resp.Host = &hostInfo{
			Hostname:      info.Hostname,
			OS:            info.OS,
			Platform:      info.Platform,
			KernelArch:    info.KernelArch,
			UptimeSeconds: info.Uptime,
		}
	} else {
		a.log.Debug("host info unavailable", logging.Err(err))
	}
	writeJSON(w, resp)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

// staticFileServer returns a handler for static assets, preferring disk then embed.
func (a *App) staticFileServer() http.Handler {
	if dir := a.cfg.StaticDir; dir != "" {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			return http.FileServer(http.Dir(dir))
		}
		a.log.Warn("static dir unavailable, using embedded assets", "dir", dir)
	}

	embedded, err := web.StaticFS()
	if err != nil {
		a.log.Error("static assets unavailable", logging.Err(err))
		return http.NotFoundHandler()
	}
	return http.FileServer(http.FS(embedded))
}

// handleFavicon avoids noisy 404s for the default browser request.
func handleFavicon(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}
