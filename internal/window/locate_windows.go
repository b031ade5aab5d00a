//go:build windows

package window

import (
	"syscall"
	"unsafe"

	"github.com/frudas24/nanoremote/internal/protocol"
	"github.com/lxn/win"
)

// locate walks the top-level windows and returns the first visible match.
func locate(title string) (protocol.Bounds, error) {
	var found *protocol.Bounds
	cb := syscall.NewCallback(func(hwnd win.HWND, _ uintptr) uintptr {
		if !win.IsWindowVisible(hwnd) {
			return 1
		}
		if !MatchTitle(windowText(hwnd), title) {
			return 1
		}
		var r win.RECT
		if !win.GetWindowRect(hwnd, &r) {
			return 1
		}
		b := protocol.Bounds{
			X:      int(r.Left),
			Y:      int(r.Top),
			Width:  int(r.Right - r.Left),
			Height: int(r.Bottom - r.Top),
		}
		if !usable(b) {
			return 1
		}
		found = &b
		return 0
	})
	win.EnumChildWindows(0, cb, 0)
	if found == nil {
		return protocol.Bounds{}, ErrNotFound
	}
	return *found, nil
}

// windowText reads the caption of hwnd.
func windowText(hwnd win.HWND) string {
	n := int(win.SendMessage(hwnd, win.WM_GETTEXTLENGTH, 0, 0))
	if n <= 0 {
		return ""
	}
	buf := make([]uint16, n+1)
	win.SendMessage(hwnd, win.WM_GETTEXT, uintptr(len(buf)), uintptr(unsafe.Pointer(&buf[0])))
	return syscall.UTF16ToString(buf)
}
