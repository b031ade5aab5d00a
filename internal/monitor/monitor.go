package monitor

import (
	"fmt"
	"image"

	"github.com/kbinani/screenshot"
)

// ListMonitors returns the active displays.
func ListMonitors() ([]Monitor, error) {
	n := screenshot.NumActiveDisplays()
	if n <= 0 {
		return nil, fmt.Errorf("no monitors detected")
	}
	rects := make([]image.Rectangle, 0, n)
	for i := 0; i < n; i++ {
		rects = append(rects, screenshot.GetDisplayBounds(i))
	}
	return fromRects(rects), nil
}
