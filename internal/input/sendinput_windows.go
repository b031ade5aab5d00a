//go:build windows && !cgo

package input

import (
	"fmt"
	"syscall"
	"unsafe"

	"github.com/lxn/win"
)

// WinInjector injects mouse and keyboard input using WinAPI SendInput.
type WinInjector struct{}

// NewInjector returns a Windows input injector.
func NewInjector() (Injector, error) {
	return &WinInjector{}, nil
}

// inputSize is sizeof(INPUT); both lxn/win variants are padded to it.
var inputSize = int32(unsafe.Sizeof(win.KEYBD_INPUT{}))

// ScreenSize returns the primary screen size in pixels.
func (w *WinInjector) ScreenSize() (int, int, error) {
	cx := win.GetSystemMetrics(win.SM_CXSCREEN)
	cy := win.GetSystemMetrics(win.SM_CYSCREEN)
	if cx <= 0 || cy <= 0 {
		return 0, 0, fmt.Errorf("GetSystemMetrics returned %dx%d", cx, cy)
	}
	return int(cx), int(cy), nil
}

// sendMouseInput dispatches a single mouse input event.
func sendMouseInput(flags uint32, dx, dy int32, data uint32) error {
	in := win.MOUSE_INPUT{
		Type: win.INPUT_MOUSE,
		Mi: win.MOUSEINPUT{
			Dx:        dx,
			Dy:        dy,
			MouseData: data,
			DwFlags:   flags,
		},
	}
	if win.SendInput(1, unsafe.Pointer(&in), inputSize) != 1 {
		return fmt.Errorf("SendInput mouse: %w", syscall.GetLastError())
	}
	return nil
}

// sendKeyboardInput dispatches a single keyboard input event.
func sendKeyboardInput(key win.KEYBDINPUT) error {
	in := win.KEYBD_INPUT{
		Type: win.INPUT_KEYBOARD,
		Ki:   key,
	}
	if win.SendInput(1, unsafe.Pointer(&in), inputSize) != 1 {
		return fmt.Errorf("SendInput keyboard: %w", syscall.GetLastError())
	}
	return nil
}
