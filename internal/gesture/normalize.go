package gesture

import "github.com/frudas24/nanoremote/internal/viewport"

// Normalize maps a container point to fractions of rect, clamped to [0,1].
// A degenerate rect maps every point to 0.
func Normalize(p viewport.Point, rect viewport.Rect) (float64, float64) {
	return normAxis(p.X, rect.X, rect.W), normAxis(p.Y, rect.Y, rect.H)
}

func normAxis(v, origin, span float64) float64 {
	if span <= 0 {
		return 0
	}
	return clamp01((v - origin) / span)
}

// clamp01 bounds a float to the [0..1] range.
func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
