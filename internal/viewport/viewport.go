// Package viewport holds the client-side zoom/pan model for the remote screen.
package viewport

const (
	// MinZoom is the smallest allowed zoom level.
	MinZoom = 0.5
	// MaxZoom is the largest allowed zoom level.
	MaxZoom = 8.0
	// overscroll is the share of the container that content may be dragged past.
	overscroll = 0.8
)

// Point is a position in container space.
type Point struct {
	X float64
	Y float64
}

// Size is a width/height pair.
type Size struct {
	W float64
	H float64
}

// Rect is an axis-aligned rectangle in container space.
type Rect struct {
	X float64
	Y float64
	W float64
	H float64
}

// Viewport is the zoom/pan state of the rendered remote screen. Content is
// drawn scaled by Zoom with its top-left corner at (PanX, PanY).
type Viewport struct {
	Zoom float64
	PanX float64
	PanY float64
	Min  float64
	Max  float64

	content   Size
	container Size
}

// New returns a viewport at zoom 1 with the default zoom limits.
func New() *Viewport {
	return &Viewport{Zoom: 1, Min: MinZoom, Max: MaxZoom}
}

// SetContent records the natural size of the remote frame.
func (v *Viewport) SetContent(w, h float64) {
	v.content = Size{W: w, H: h}
}

// SetContainer records the size of the area the frame is drawn into.
func (v *Viewport) SetContainer(w, h float64) {
	v.container = Size{W: w, H: h}
}

// Content returns the recorded content size.
func (v *Viewport) Content() Size { return v.content }

// Container returns the recorded container size.
func (v *Viewport) Container() Size { return v.container }

// Center returns the midpoint of the container.
func (v *Viewport) Center() Point {
	return Point{X: v.container.W / 2, Y: v.container.H / 2}
}

// SetZoom clamps level to the zoom limits and keeps the content point under
// anchor fixed while scaling. Containment is applied afterwards.
func (v *Viewport) SetZoom(level float64, anchor Point) {
	old := v.Zoom
	next := clamp(level, v.Min, v.Max)
	if next == old {
		return
	}
	ratio := next / old
	v.PanX = anchor.X - (anchor.X-v.PanX)*ratio
	v.PanY = anchor.Y - (anchor.Y-v.PanY)*ratio
	v.Zoom = next
	v.contain()
}

// ZoomBy changes the zoom by delta around the container center.
func (v *Viewport) ZoomBy(delta float64) {
	v.SetZoom(v.Zoom+delta, v.Center())
}

// Pan moves the content by (dx, dy) and applies containment.
func (v *Viewport) Pan(dx, dy float64) {
	v.PanX += dx
	v.PanY += dy
	v.contain()
}

// ApplyContainment records the sizes and re-applies the containment rule:
// per axis, content larger than the container is clamped so that at most 80%
// of the container is overscrolled on either side; smaller content is centered.
func (v *Viewport) ApplyContainment(content, container Size) {
	v.content = content
	v.container = container
	v.contain()
}

// Reset restores zoom 1 and zero pan, then re-applies containment.
func (v *Viewport) Reset() {
	v.Zoom = 1
	v.PanX = 0
	v.PanY = 0
	v.contain()
}

// ContentRect returns the bounding box of the rendered content.
func (v *Viewport) ContentRect() Rect {
	return Rect{X: v.PanX, Y: v.PanY, W: v.content.W * v.Zoom, H: v.content.H * v.Zoom}
}

// ToContent maps a container point to unscaled content coordinates.
func (v *Viewport) ToContent(p Point) Point {
	return Point{X: (p.X - v.PanX) / v.Zoom, Y: (p.Y - v.PanY) / v.Zoom}
}

// contain is a no-op until both sizes are known.
func (v *Viewport) contain() {
	if v.content.W <= 0 || v.content.H <= 0 || v.container.W <= 0 || v.container.H <= 0 {
		return
	}
	v.PanX = containAxis(v.PanX, v.content.W*v.Zoom, v.container.W)
	v.PanY = containAxis(v.PanY, v.content.H*v.Zoom, v.container.H)
}

func containAxis(pan, scaled, container float64) float64 {
	if scaled > container {
		maxPan := container * overscroll
		minPan := container - scaled - maxPan
		return clamp(pan, minPan, maxPan)
	}
	return (container - scaled) / 2
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
