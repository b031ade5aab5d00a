// Package viewer holds the input and toolbar logic of the native client,
// independent of the window toolkit.
package viewer

import (
	"fmt"
	"math"
	"time"

	"github.com/frudas24/nanoremote/internal/gesture"
	"github.com/frudas24/nanoremote/internal/protocol"
	"github.com/frudas24/nanoremote/internal/viewport"
)

const (
	// DoubleClickWindow is the longest gap between presses of a double click.
	DoubleClickWindow = 300 * time.Millisecond
	// doubleClickSlop is how far apart, in pixels, the two presses may be.
	doubleClickSlop = 4.0
)

// Sender delivers a message to the server, reporting false when dropped.
type Sender interface {
	Send(msg protocol.Message) bool
}

// Controller turns window input into engine calls and toolbar intents. It is
// not safe for concurrent use.
type Controller struct {
	engine *gesture.Engine
	out    Sender

	text        []rune
	lastPress   time.Time
	lastPressAt viewport.Point
	double      bool
	window      string
}

// NewController returns a controller sending through out.
func NewController(out Sender) *Controller {
	c := &Controller{out: out}
	c.engine = gesture.New(viewport.New(), gesture.SenderFunc(func(msg protocol.Message) {
		out.Send(msg)
	}))
	return c
}

// Engine exposes the gesture engine.
func (c *Controller) Engine() *gesture.Engine { return c.engine }

// Viewport exposes the viewport drawn by the game.
func (c *Controller) Viewport() *viewport.Viewport { return c.engine.Viewport() }

// Streaming reports whether frames were requested.
func (c *Controller) Streaming() bool { return c.engine.Streaming() }

// ToggleStream sends start or stop. Start only takes effect when it was sent.
func (c *Controller) ToggleStream() {
	if c.engine.Streaming() {
		c.out.Send(protocol.Stop())
		c.engine.SetStreaming(false)
		return
	}
	if c.out.Send(protocol.Start()) {
		c.engine.SetStreaming(true)
	}
}

// SetConnected stops input handling when the connection drops.
func (c *Controller) SetConnected(up bool) {
	if !up {
		c.engine.SetStreaming(false)
	}
}

// Press handles a left or middle button press. A second press close in time
// and space completes a double click on release.
func (c *Controller) Press(p viewport.Point, button string, now time.Time) {
	c.double = button == protocol.ButtonLeft &&
		!c.lastPress.IsZero() &&
		now.Sub(c.lastPress) <= DoubleClickWindow &&
		math.Abs(p.X-c.lastPressAt.X) <= doubleClickSlop &&
		math.Abs(p.Y-c.lastPressAt.Y) <= doubleClickSlop
	if c.double {
		c.lastPress = time.Time{}
	} else {
		c.lastPress = now
		c.lastPressAt = p
	}
	c.engine.MouseDown(p, button)
}

// Release handles a button release.
func (c *Controller) Release(p viewport.Point) {
	c.engine.MouseUp(p)
	if c.double {
		c.double = false
		c.engine.DoubleClick(p)
	}
}

// Move handles pointer motion.
func (c *Controller) Move(p viewport.Point) { c.engine.MouseMove(p) }

// ContextMenu handles a right button press.
func (c *Controller) ContextMenu(p viewport.Point) { c.engine.ContextMenu(p) }

// LiftTouches handles touches ending while others may remain. Each lift
// returns the engine to Idle; in View mode the remaining fingers re-anchor so
// a pinch can continue as a pan.
func (c *Controller) LiftTouches(lifted, remaining []viewport.Point) {
	if len(lifted) == 0 {
		return
	}
	for _, p := range lifted {
		c.engine.TouchEnd(p)
	}
	if len(remaining) > 0 && c.engine.Mode() == gesture.ModeView {
		c.engine.TouchStart(remaining)
	}
}

// Wheel forwards a wheel step; deltaY follows the browser sign convention.
func (c *Controller) Wheel(deltaY float64, zoomModifier bool) {
	c.engine.Wheel(deltaY, zoomModifier)
}

// TypeRune buffers one typed character.
func (c *Controller) TypeRune(r rune) {
	c.text = append(c.text, r)
}

// Backspace removes the last buffered character.
func (c *Controller) Backspace() {
	if len(c.text) > 0 {
		c.text = c.text[:len(c.text)-1]
	}
}

// Enter sends the buffered text, or an Enter key tap when nothing is buffered.
func (c *Controller) Enter() {
	if len(c.text) == 0 {
		c.out.Send(protocol.Key("enter"))
		return
	}
	c.out.Send(protocol.Text(string(c.text)))
	c.text = c.text[:0]
}

// Buffer returns the pending text.
func (c *Controller) Buffer() string { return string(c.text) }

// Combo sends a key combination.
func (c *Controller) Combo(keys ...string) {
	c.out.Send(protocol.KeyCombo(keys...))
}

// FindWindow asks the server to locate the target window.
func (c *Controller) FindWindow() {
	c.out.Send(protocol.FindWindow())
}

// HandleMessage records server replies other than frames.
func (c *Controller) HandleMessage(msg protocol.Message) {
	if msg.Type != protocol.TypeWindowBounds {
		return
	}
	if msg.Bounds == nil {
		c.window = "window not found"
		return
	}
	b := msg.Bounds
	c.window = fmt.Sprintf("window %dx%d at %d,%d", b.Width, b.Height, b.X, b.Y)
}

// WindowInfo describes the last windowBounds reply.
func (c *Controller) WindowInfo() string { return c.window }
