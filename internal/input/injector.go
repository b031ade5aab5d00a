// Package input defines OS input injection used by the control adapter.
package input

import (
	"errors"
	"strings"
)

// ErrUnsupported indicates no input backend is available in this build.
var ErrUnsupported = errors.New("input injection is not supported in this build")

// Mouse button names.
const (
	ButtonLeft   = "left"
	ButtonMiddle = "middle"
	ButtonRight  = "right"
)

// Modifier key names.
const (
	ModControl = "control"
	ModAlt     = "alt"
	ModShift   = "shift"
	ModCommand = "command"
)

// Injector drives the host pointer and keyboard. Coordinates are absolute
// pixels on the primary screen.
type Injector interface {
	ScreenSize() (int, int, error)
	MoveAbs(x, y int) error
	ButtonDown(button string) error
	ButtonUp(button string) error
	Click(button string, double bool) error
	Wheel(delta int) error
	KeyTap(key string, modifiers ...string) error
	TypeUnicode(text string) error
}

// IsModifier reports whether key names a modifier.
func IsModifier(key string) bool {
	switch strings.ToLower(key) {
	case ModControl, ModAlt, ModShift, ModCommand:
		return true
	default:
		return false
	}
}
