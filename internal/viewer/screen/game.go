// Package screen draws the remote desktop in an ebiten window and feeds window
// input to the viewer controller.
package screen

import (
	"fmt"
	"image"
	"log/slog"
	"sync"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/frudas24/nanoremote/internal/client"
	"github.com/frudas24/nanoremote/internal/gesture"
	"github.com/frudas24/nanoremote/internal/logging"
	"github.com/frudas24/nanoremote/internal/protocol"
	"github.com/frudas24/nanoremote/internal/viewer"
	"github.com/frudas24/nanoremote/internal/viewport"
)

// Status reports connection state and frame statistics for the overlay.
type Status interface {
	Connected() bool
	Stats() client.StatsSnapshot
}

// Game implements ebiten.Game for the remote screen.
type Game struct {
	ctrl   *viewer.Controller
	status Status
	log    *slog.Logger

	mu        sync.Mutex
	pending   image.Image
	replies   []protocol.Message
	connected bool

	frame   *ebiten.Image
	touches map[ebiten.TouchID]viewport.Point
}

// NewGame returns a game driving ctrl.
func NewGame(ctrl *viewer.Controller, status Status) *Game {
	return &Game{
		ctrl:    ctrl,
		status:  status,
		log:     logging.L("viewer"),
		touches: make(map[ebiten.TouchID]viewport.Point),
	}
}

// OnMessage receives server messages on the client goroutine. Frames are
// decoded here so Update only uploads them.
func (g *Game) OnMessage(msg protocol.Message) {
	if msg.Type != protocol.TypeFrame {
		g.mu.Lock()
		g.replies = append(g.replies, msg)
		g.mu.Unlock()
		return
	}
	img, err := viewer.DecodeFrame(msg.Data)
	if err != nil {
		g.log.Debug("frame dropped", logging.Err(err))
		return
	}
	g.mu.Lock()
	g.pending = img
	g.mu.Unlock()
}

// OnState receives connection changes on the client goroutine.
func (g *Game) OnState(up bool) {
	g.mu.Lock()
	g.connected = up
	g.mu.Unlock()
}

// Update applies pending frames and input once per tick.
func (g *Game) Update() error {
	g.mu.Lock()
	pending, replies, connected := g.pending, g.replies, g.connected
	g.pending, g.replies = nil, nil
	g.mu.Unlock()

	g.ctrl.SetConnected(connected)
	for _, msg := range replies {
		g.ctrl.HandleMessage(msg)
	}
	if pending != nil {
		if g.frame != nil {
			g.frame.Deallocate()
		}
		g.frame = ebiten.NewImageFromImage(pending)
		b := pending.Bounds()
		size := viewport.Size{W: float64(b.Dx()), H: float64(b.Dy())}
		if v := g.ctrl.Viewport(); v.Content() != size {
			v.ApplyContainment(size, v.Container())
		}
	}

	g.handleKeys()
	g.handleMouse()
	g.handleTouches()
	return nil
}

// handleKeys maps function keys to toolbar actions and buffers typed text.
func (g *Game) handleKeys() {
	c := g.ctrl
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyF2):
		c.Engine().ToggleMode()
	case inpututil.IsKeyJustPressed(ebiten.KeyF5):
		c.ToggleStream()
	case inpututil.IsKeyJustPressed(ebiten.KeyF7):
		c.FindWindow()
	case inpututil.IsKeyJustPressed(ebiten.KeyF9):
		c.Combo("control", "c")
	case inpututil.IsKeyJustPressed(ebiten.KeyF10):
		c.Combo("control", "v")
	case inpututil.IsKeyJustPressed(ebiten.KeyF11):
		c.Combo("control", "alt", "delete")
	}

	if ebiten.IsKeyPressed(ebiten.KeyControl) {
		switch {
		case inpututil.IsKeyJustPressed(ebiten.KeyEqual):
			c.Engine().ZoomIn()
		case inpututil.IsKeyJustPressed(ebiten.KeyMinus):
			c.Engine().ZoomOut()
		case inpututil.IsKeyJustPressed(ebiten.Key0):
			c.Engine().ResetZoom()
		}
		return
	}
	for _, r := range ebiten.AppendInputChars(nil) {
		c.TypeRune(r)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyBackspace) {
		c.Backspace()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) || inpututil.IsKeyJustPressed(ebiten.KeyNumpadEnter) {
		c.Enter()
	}
}

func (g *Game) handleMouse() {
	x, y := ebiten.CursorPosition()
	p := viewport.Point{X: float64(x), Y: float64(y)}
	now := time.Now()

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		g.ctrl.Press(p, protocol.ButtonLeft, now)
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonMiddle) {
		g.ctrl.Press(p, protocol.ButtonMiddle, now)
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight) {
		g.ctrl.ContextMenu(p)
	}
	g.ctrl.Move(p)
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) ||
		inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonMiddle) {
		g.ctrl.Release(p)
	}

	if _, dy := ebiten.Wheel(); dy != 0 {
		zoom := ebiten.IsKeyPressed(ebiten.KeyControl)
		g.ctrl.Wheel(-dy, zoom)
	}
}

func (g *Game) handleTouches() {
	e := g.ctrl.Engine()
	ids := ebiten.AppendTouchIDs(nil)
	points := make([]viewport.Point, 0, len(ids))
	for _, id := range ids {
		x, y := ebiten.TouchPosition(id)
		points = append(points, viewport.Point{X: float64(x), Y: float64(y)})
	}

	var lifted []viewport.Point
	for _, id := range inpututil.AppendJustReleasedTouchIDs(nil) {
		if last, ok := g.touches[id]; ok {
			lifted = append(lifted, last)
		}
		delete(g.touches, id)
	}

	g.ctrl.LiftTouches(lifted, points)
	switch {
	case len(inpututil.AppendJustPressedTouchIDs(nil)) > 0:
		e.TouchStart(points)
	case len(lifted) == 0 && len(points) > 0:
		e.TouchMove(points)
	}
	for i, id := range ids {
		g.touches[id] = points[i]
	}
}

// Draw renders the frame through the viewport and a status line.
func (g *Game) Draw(screen *ebiten.Image) {
	if g.frame != nil {
		v := g.ctrl.Viewport()
		op := &ebiten.DrawImageOptions{Filter: ebiten.FilterLinear}
		op.GeoM.Scale(v.Zoom, v.Zoom)
		op.GeoM.Translate(v.PanX, v.PanY)
		screen.DrawImage(g.frame, op)
	}
	ebitenutil.DebugPrint(screen, g.overlay())
}

func (g *Game) overlay() string {
	state := "disconnected"
	if g.status != nil && g.status.Connected() {
		state = "connected"
	}
	var stats client.StatsSnapshot
	if g.status != nil {
		stats = g.status.Stats()
	}
	stream := "stopped"
	if g.ctrl.Streaming() {
		stream = "streaming"
	}
	mode := g.ctrl.Engine().Mode()
	text := fmt.Sprintf("%s | %s | %s | %.0f%% | %.1f fps | dropped %d",
		state, stream, mode, g.ctrl.Viewport().Zoom*100, stats.FPS, stats.Dropped)
	if buf := g.ctrl.Buffer(); buf != "" {
		text += "\ntext: " + buf
	}
	if info := g.ctrl.WindowInfo(); info != "" {
		text += "\n" + info
	}
	if mode == gesture.ModeView && !g.ctrl.Streaming() {
		text += "\nF5 start/stop  F2 mode  Ctrl +/-/0 zoom  F7 find window  F9 copy  F10 paste  F11 ctrl+alt+del"
	}
	return text
}

// Layout tracks the window size as the viewport container.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	size := viewport.Size{W: float64(outsideWidth), H: float64(outsideHeight)}
	if v := g.ctrl.Viewport(); v.Container() != size {
		v.ApplyContainment(v.Content(), size)
	}
	return outsideWidth, outsideHeight
}
