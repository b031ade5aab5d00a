//go:build cgo

package input

import (
	"errors"
	"strings"

	"github.com/go-vgo/robotgo"
)

// RobotInjector injects input through robotgo.
type RobotInjector struct{}

// NewInjector returns the robotgo backed injector.
func NewInjector() (Injector, error) {
	return &RobotInjector{}, nil
}

// ScreenSize returns the primary screen size in pixels.
func (r *RobotInjector) ScreenSize() (int, int, error) {
	w, h := robotgo.GetScreenSize()
	if w <= 0 || h <= 0 {
		return 0, 0, errors.New("screen size unavailable")
	}
	return w, h, nil
}

// MoveAbs moves the cursor to an absolute screen coordinate.
func (r *RobotInjector) MoveAbs(x, y int) error {
	robotgo.Move(x, y)
	return nil
}

// ButtonDown presses a mouse button.
func (r *RobotInjector) ButtonDown(button string) error {
	robotgo.Toggle(button, "down")
	return nil
}

// ButtonUp releases a mouse button.
func (r *RobotInjector) ButtonUp(button string) error {
	robotgo.Toggle(button, "up")
	return nil
}

// Click clicks a mouse button at the current position.
func (r *RobotInjector) Click(button string, double bool) error {
	robotgo.Click(button, double)
	return nil
}

// Wheel scrolls vertically by delta notches.
func (r *RobotInjector) Wheel(delta int) error {
	robotgo.Scroll(0, delta)
	return nil
}

// KeyTap taps key with modifiers held.
func (r *RobotInjector) KeyTap(key string, modifiers ...string) error {
	if len(modifiers) == 0 {
		return robotgo.KeyTap(robotKey(key))
	}
	mods := make([]string, 0, len(modifiers))
	for _, m := range modifiers {
		mods = append(mods, robotKey(m))
	}
	return robotgo.KeyTap(robotKey(key), mods)
}

// TypeUnicode types text into the focused window.
func (r *RobotInjector) TypeUnicode(text string) error {
	if text == "" {
		return nil
	}
	robotgo.TypeStr(text)
	return nil
}

// robotKey maps browser style key names onto robotgo names.
func robotKey(key string) string {
	switch k := strings.ToLower(key); k {
	case ModCommand, "meta", "win":
		return "cmd"
	case ModControl:
		return "ctrl"
	case "return":
		return "enter"
	case "escape":
		return "esc"
	default:
		return k
	}
}
