// Package monitor describes display geometry and enumeration.
package monitor

import "image"

// Monitor describes a display and its bounds in virtual desktop pixels.
type Monitor struct {
	Index   int  `json:"index"`
	X       int  `json:"x"`
	Y       int  `json:"y"`
	W       int  `json:"w"`
	H       int  `json:"h"`
	Primary bool `json:"primary"`
}

// Bounds returns the monitor rectangle.
func (m Monitor) Bounds() image.Rectangle {
	return image.Rect(m.X, m.Y, m.X+m.W, m.Y+m.H)
}

// GetMonitorByIndex returns the monitor matching the 1-based index.
func GetMonitorByIndex(list []Monitor, idx int) (Monitor, bool) {
	for _, m := range list {
		if m.Index == idx {
			return m, true
		}
	}
	return Monitor{}, false
}

// fromRects numbers display rectangles from 1; the first one is primary.
func fromRects(rects []image.Rectangle) []Monitor {
	out := make([]Monitor, 0, len(rects))
	for i, r := range rects {
		out = append(out, Monitor{
			Index:   i + 1,
			X:       r.Min.X,
			Y:       r.Min.Y,
			W:       r.Dx(),
			H:       r.Dy(),
			Primary: i == 0,
		})
	}
	return out
}
