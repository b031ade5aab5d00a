//go:build windows && !cgo

package input

import (
	"fmt"
	"strings"
	"unicode/utf16"

	"github.com/lxn/win"
)

var namedKeys = map[string]uint16{
	"enter":     win.VK_RETURN,
	"return":    win.VK_RETURN,
	"tab":       win.VK_TAB,
	"escape":    win.VK_ESCAPE,
	"esc":       win.VK_ESCAPE,
	"backspace": win.VK_BACK,
	"delete":    win.VK_DELETE,
	"insert":    win.VK_INSERT,
	"space":     win.VK_SPACE,
	"home":      win.VK_HOME,
	"end":       win.VK_END,
	"pageup":    win.VK_PRIOR,
	"pagedown":  win.VK_NEXT,
	"up":        win.VK_UP,
	"down":      win.VK_DOWN,
	"left":      win.VK_LEFT,
	"right":     win.VK_RIGHT,
	ModControl:  win.VK_CONTROL,
	ModAlt:      win.VK_MENU,
	ModShift:    win.VK_SHIFT,
	ModCommand:  win.VK_LWIN,
}

// KeyTap presses modifiers, taps key and releases modifiers in reverse order.
func (w *WinInjector) KeyTap(key string, modifiers ...string) error {
	vk, err := virtualKey(key)
	if err != nil {
		return err
	}
	held := make([]uint16, 0, len(modifiers))
	defer func() {
		for i := len(held) - 1; i >= 0; i-- {
			_ = sendKeyboardInput(win.KEYBDINPUT{WVk: held[i], DwFlags: win.KEYEVENTF_KEYUP})
		}
	}()
	for _, m := range modifiers {
		mvk, err := virtualKey(m)
		if err != nil {
			return err
		}
		if err := sendKeyboardInput(win.KEYBDINPUT{WVk: mvk}); err != nil {
			return err
		}
		held = append(held, mvk)
	}
	if err := sendKeyboardInput(win.KEYBDINPUT{WVk: vk}); err != nil {
		return err
	}
	return sendKeyboardInput(win.KEYBDINPUT{WVk: vk, DwFlags: win.KEYEVENTF_KEYUP})
}

// TypeUnicode types Unicode text into the focused window.
func (w *WinInjector) TypeUnicode(text string) error {
	for _, code := range utf16.Encode([]rune(text)) {
		if err := sendKeyboardInput(win.KEYBDINPUT{WScan: code, DwFlags: win.KEYEVENTF_UNICODE}); err != nil {
			return err
		}
		if err := sendKeyboardInput(win.KEYBDINPUT{WScan: code, DwFlags: win.KEYEVENTF_UNICODE | win.KEYEVENTF_KEYUP}); err != nil {
			return err
		}
	}
	return nil
}

// virtualKey resolves a key name to a virtual-key code.
func virtualKey(name string) (uint16, error) {
	k := strings.ToLower(strings.TrimSpace(name))
	if vk, ok := namedKeys[k]; ok {
		return vk, nil
	}
	if len(k) == 1 {
		c := k[0]
		switch {
		case c >= 'a' && c <= 'z':
			return uint16(c - 'a' + 'A'), nil
		case c >= '0' && c <= '9':
			return uint16(c), nil
		}
	}
	if strings.HasPrefix(k, "f") {
		var n int
		if _, err := fmt.Sscanf(k, "f%d", &n); err == nil && n >= 1 && n <= 24 {
			return uint16(win.VK_F1 + n - 1), nil
		}
	}
	return 0, fmt.Errorf("unknown key %q", name)
}
