//go:build windows && !cgo

package input

import (
	"fmt"

	"github.com/lxn/win"
)

const wheelDelta = 120

// MoveAbs moves the cursor to an absolute screen coordinate.
func (w *WinInjector) MoveAbs(x, y int) error {
	dx, dy := mapAbsolute(x, y)
	flags := uint32(win.MOUSEEVENTF_MOVE | win.MOUSEEVENTF_ABSOLUTE | win.MOUSEEVENTF_VIRTUALDESK)
	if err := sendMouseInput(flags, dx, dy, 0); err != nil {
		if win.SetCursorPos(int32(x), int32(y)) {
			return nil
		}
		return err
	}
	return nil
}

// ButtonDown presses a mouse button.
func (w *WinInjector) ButtonDown(button string) error {
	down, _, err := buttonFlags(button)
	if err != nil {
		return err
	}
	return sendMouseInput(down, 0, 0, 0)
}

// ButtonUp releases a mouse button.
func (w *WinInjector) ButtonUp(button string) error {
	_, up, err := buttonFlags(button)
	if err != nil {
		return err
	}
	return sendMouseInput(up, 0, 0, 0)
}

// Click presses and releases a button once or twice.
func (w *WinInjector) Click(button string, double bool) error {
	n := 1
	if double {
		n = 2
	}
	for i := 0; i < n; i++ {
		if err := w.ButtonDown(button); err != nil {
			return err
		}
		if err := w.ButtonUp(button); err != nil {
			return err
		}
	}
	return nil
}

// Wheel scrolls by delta notches; positive scrolls up.
func (w *WinInjector) Wheel(delta int) error {
	return sendMouseInput(win.MOUSEEVENTF_WHEEL, 0, 0, uint32(int32(delta*wheelDelta)))
}

// buttonFlags returns the down/up flags for a button name.
func buttonFlags(button string) (uint32, uint32, error) {
	switch button {
	case ButtonLeft, "":
		return win.MOUSEEVENTF_LEFTDOWN, win.MOUSEEVENTF_LEFTUP, nil
	case ButtonRight:
		return win.MOUSEEVENTF_RIGHTDOWN, win.MOUSEEVENTF_RIGHTUP, nil
	case ButtonMiddle:
		return win.MOUSEEVENTF_MIDDLEDOWN, win.MOUSEEVENTF_MIDDLEUP, nil
	default:
		return 0, 0, fmt.Errorf("unknown mouse button %q", button)
	}
}

// mapAbsolute converts screen coordinates to the WinAPI absolute range.
func mapAbsolute(x, y int) (int32, int32) {
	vx := win.GetSystemMetrics(win.SM_XVIRTUALSCREEN)
	vy := win.GetSystemMetrics(win.SM_YVIRTUALSCREEN)
	vw := win.GetSystemMetrics(win.SM_CXVIRTUALSCREEN)
	vh := win.GetSystemMetrics(win.SM_CYVIRTUALSCREEN)
	if vw <= 1 {
		vw = 2
	}
	if vh <= 1 {
		vh = 2
	}
	dx := (int64(x) - int64(vx)) * 65535 / int64(vw-1)
	dy := (int64(y) - int64(vy)) * 65535 / int64(vh-1)
	return int32(dx), int32(dy)
}
