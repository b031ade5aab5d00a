// Package capture grabs desktop frames for the streaming loop.
package capture

import (
	"fmt"
	"image"

	"github.com/frudas24/nanoremote/internal/monitor"
	"github.com/kbinani/screenshot"
)

// Screen captures one display. The display list is re-read on every capture
// so hot-plugged monitors are picked up.
type Screen struct {
	monitorIndex int
}

// NewScreen returns a source for the 1-based monitor index.
func NewScreen(monitorIndex int) *Screen {
	if monitorIndex <= 0 {
		monitorIndex = 1
	}
	return &Screen{monitorIndex: monitorIndex}
}

// Capture grabs the current contents of the configured display.
func (s *Screen) Capture() (image.Image, error) {
	list, err := monitor.ListMonitors()
	if err != nil {
		return nil, err
	}
	m, ok := monitor.GetMonitorByIndex(list, s.monitorIndex)
	if !ok {
		return nil, fmt.Errorf("monitor %d not found", s.monitorIndex)
	}
	img, err := screenshot.CaptureRect(m.Bounds())
	if err != nil {
		return nil, fmt.Errorf("capture monitor %d: %w", s.monitorIndex, err)
	}
	return img, nil
}
