// Package gesture turns raw pointer, touch and wheel input into viewport
// changes (View mode) or normalized remote-input messages (Control mode).
package gesture

import (
	"math"

	"github.com/frudas24/nanoremote/internal/protocol"
	"github.com/frudas24/nanoremote/internal/viewport"
)

const (
	// PinchScale converts pinch spread in pixels to zoom change.
	PinchScale = 0.01
	// WheelZoomStep is the zoom change per modifier+wheel notch.
	WheelZoomStep = 0.1
	// ButtonZoomStep is the zoom change of the toolbar buttons.
	ButtonZoomStep = 0.2
	// MoveDeadZone is the minimum normalized displacement forwarded as a move.
	MoveDeadZone = 0.001
)

// Mode selects whether gestures drive the local viewport or the remote host.
type Mode int

const (
	// ModeView pans and zooms the local viewport.
	ModeView Mode = iota
	// ModeControl forwards pointer input to the remote host.
	ModeControl
)

// String returns the mode name.
func (m Mode) String() string {
	if m == ModeControl {
		return "control"
	}
	return "view"
}

// Phase is the pointer phase of the current interaction.
type Phase int

const (
	// PhaseIdle has no active pointer.
	PhaseIdle Phase = iota
	// PhaseSingle tracks one active pointer.
	PhaseSingle
	// PhasePinch tracks two active pointers.
	PhasePinch
)

// Sender receives outbound messages. Delivery is best effort.
type Sender interface {
	Send(msg protocol.Message)
}

// SenderFunc adapts a function to Sender.
type SenderFunc func(msg protocol.Message)

// Send calls f(msg).
func (f SenderFunc) Send(msg protocol.Message) { f(msg) }

// Engine owns the transient gesture state for one client.
type Engine struct {
	view *viewport.Viewport
	out  Sender

	mode      Mode
	phase     Phase
	streaming bool

	anchor    viewport.Point
	pinchDist float64
	pinchMid  viewport.Point
	held      string

	lastX, lastY float64
}

// New returns an engine in View mode driving view and sending through out.
func New(view *viewport.Viewport, out Sender) *Engine {
	return &Engine{view: view, out: out}
}

// Viewport returns the driven viewport.
func (e *Engine) Viewport() *viewport.Viewport { return e.view }

// Mode returns the interaction mode.
func (e *Engine) Mode() Mode { return e.mode }

// Phase returns the pointer phase.
func (e *Engine) Phase() Phase { return e.phase }

// HeldButton returns the remote button currently pressed, or "".
func (e *Engine) HeldButton() string { return e.held }

// Streaming reports whether input is currently accepted.
func (e *Engine) Streaming() bool { return e.streaming }

// SetStreaming gates input handling. Stopping resets gesture state.
func (e *Engine) SetStreaming(on bool) {
	e.streaming = on
	if !on {
		e.reset()
	}
}

// ToggleMode flips between View and Control. Entering View drops the pointer
// phase and any held remote button so a press cannot stay stuck down.
func (e *Engine) ToggleMode() Mode {
	if e.mode == ModeView {
		e.mode = ModeControl
	} else {
		e.mode = ModeView
	}
	e.reset()
	return e.mode
}

// ZoomIn zooms in by the toolbar step around the container center.
func (e *Engine) ZoomIn() { e.view.ZoomBy(ButtonZoomStep) }

// ZoomOut zooms out by the toolbar step around the container center.
func (e *Engine) ZoomOut() { e.view.ZoomBy(-ButtonZoomStep) }

// ResetZoom restores the default viewport.
func (e *Engine) ResetZoom() { e.view.Reset() }

// MouseDown handles a mouse button press at p.
func (e *Engine) MouseDown(p viewport.Point, button string) {
	if !e.streaming {
		return
	}
	if e.mode == ModeView {
		e.phase = PhaseSingle
		e.anchor = p
		return
	}
	if button == "" {
		button = protocol.ButtonLeft
	}
	x, y := e.normalize(p)
	e.held = button
	e.phase = PhaseSingle
	e.emit(protocol.MouseDown(x, y, button), x, y)
}

// MouseMove handles pointer motion at p.
func (e *Engine) MouseMove(p viewport.Point) {
	if !e.streaming {
		return
	}
	if e.mode == ModeView {
		if e.phase == PhaseSingle {
			e.panTo(p)
		}
		return
	}
	e.moveRemote(p)
}

// MouseUp handles a mouse button release at p.
func (e *Engine) MouseUp(p viewport.Point) {
	if !e.streaming {
		return
	}
	e.phase = PhaseIdle
	if e.mode == ModeControl {
		e.releaseRemote(p)
	}
}

// DoubleClick forwards a double click in Control mode.
func (e *Engine) DoubleClick(p viewport.Point) {
	if !e.streaming || e.mode != ModeControl {
		return
	}
	x, y := e.normalize(p)
	e.emit(protocol.DoubleClick(x, y), x, y)
}

// ContextMenu forwards a right click in Control mode.
func (e *Engine) ContextMenu(p viewport.Point) {
	if !e.streaming || e.mode != ModeControl {
		return
	}
	x, y := e.normalize(p)
	e.emit(protocol.RightClick(x, y), x, y)
}

// TouchStart handles new touches; points lists every active touch.
func (e *Engine) TouchStart(points []viewport.Point) {
	if !e.streaming || len(points) == 0 {
		return
	}
	if e.mode == ModeControl {
		e.trackPhase(len(points))
		if len(points) >= 2 {
			return
		}
		if e.held == "" {
			x, y := e.normalize(points[0])
			e.held = protocol.ButtonLeft
			e.emit(protocol.MouseDown(x, y, protocol.ButtonLeft), x, y)
		}
		return
	}
	if len(points) >= 2 {
		e.phase = PhasePinch
		e.pinchDist = distance(points[0], points[1])
		e.pinchMid = midpoint(points[0], points[1])
		return
	}
	e.phase = PhaseSingle
	e.anchor = points[0]
}

// TouchMove handles touch motion; points lists every active touch.
func (e *Engine) TouchMove(points []viewport.Point) {
	if !e.streaming || len(points) == 0 {
		return
	}
	if e.mode == ModeControl {
		e.trackPhase(len(points))
		if len(points) >= 2 {
			return
		}
		e.moveRemote(points[0])
		return
	}
	switch {
	case e.phase == PhasePinch && len(points) >= 2:
		dist := distance(points[0], points[1])
		mid := midpoint(points[0], points[1])
		e.view.SetZoom(e.view.Zoom+(dist-e.pinchDist)*PinchScale, mid)
		e.view.Pan(mid.X-e.pinchMid.X, mid.Y-e.pinchMid.Y)
		e.pinchDist = dist
		e.pinchMid = mid
	case e.phase == PhaseSingle:
		e.panTo(points[0])
	}
}

// TouchEnd handles a lifted touch at p and returns to Idle.
func (e *Engine) TouchEnd(p viewport.Point) {
	if !e.streaming {
		return
	}
	e.phase = PhaseIdle
	e.pinchDist = 0
	if e.mode == ModeControl {
		e.releaseRemote(p)
	}
}

// Wheel handles a wheel notch. With the zoom modifier held it zooms the
// viewport around the container center; otherwise it forwards a fixed-size
// scroll opposite to the sign of deltaY.
func (e *Engine) Wheel(deltaY float64, zoomModifier bool) {
	if !e.streaming || deltaY == 0 {
		return
	}
	if zoomModifier {
		step := WheelZoomStep
		if deltaY > 0 {
			step = -WheelZoomStep
		}
		e.view.SetZoom(e.view.Zoom+step, e.view.Center())
		return
	}
	delta := protocol.ScrollStep
	if deltaY > 0 {
		delta = -protocol.ScrollStep
	}
	e.send(protocol.Scroll(delta))
}

func (e *Engine) panTo(p viewport.Point) {
	e.view.Pan(p.X-e.anchor.X, p.Y-e.anchor.Y)
	e.anchor = p
}

func (e *Engine) moveRemote(p viewport.Point) {
	x, y := e.normalize(p)
	if math.Abs(x-e.lastX) <= MoveDeadZone && math.Abs(y-e.lastY) <= MoveDeadZone {
		return
	}
	e.emit(protocol.MouseMove(x, y), x, y)
}

func (e *Engine) releaseRemote(p viewport.Point) {
	if e.held == "" {
		return
	}
	x, y := e.normalize(p)
	button := e.held
	e.held = ""
	e.emit(protocol.MouseUp(x, y, button), x, y)
}

func (e *Engine) trackPhase(n int) {
	if n >= 2 {
		e.phase = PhasePinch
		return
	}
	e.phase = PhaseSingle
}

func (e *Engine) normalize(p viewport.Point) (float64, float64) {
	return Normalize(p, e.view.ContentRect())
}

func (e *Engine) emit(msg protocol.Message, x, y float64) {
	e.lastX, e.lastY = x, y
	e.send(msg)
}

func (e *Engine) send(msg protocol.Message) {
	if e.out != nil {
		e.out.Send(msg)
	}
}

func (e *Engine) reset() {
	e.phase = PhaseIdle
	e.held = ""
	e.pinchDist = 0
	e.pinchMid = viewport.Point{}
	e.anchor = viewport.Point{}
}

func distance(a, b viewport.Point) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}

func midpoint(a, b viewport.Point) viewport.Point {
	return viewport.Point{X: (a.X + b.X) / 2, Y: (a.Y + b.Y) / 2}
}
