package testutil

import (
	"errors"
	"image"
	"image/color"
	"sync"
)

// ErrFakeCapture is returned by FakeSource while failures are queued.
var ErrFakeCapture = errors.New("fake capture failure")

// FakeSource returns a solid frame and can be told to fail.
type FakeSource struct {
	mu       sync.Mutex
	W, H     int
	failures int
	calls    int
}

// NewFakeSource returns a source producing w x h frames.
func NewFakeSource(w, h int) *FakeSource {
	return &FakeSource{W: w, H: h}
}

// FailNext makes the next n captures fail.
func (f *FakeSource) FailNext(n int) {
	f.mu.Lock()
	f.failures = n
	f.mu.Unlock()
}

// Calls returns the number of captures attempted.
func (f *FakeSource) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

// Capture returns a frame or a queued failure.
func (f *FakeSource) Capture() (image.Image, error) {
	f.mu.Lock()
	f.calls++
	if f.failures > 0 {
		f.failures--
		f.mu.Unlock()
		return nil, ErrFakeCapture
	}
	w, h := f.W, f.H
	f.mu.Unlock()

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	fill := color.RGBA{R: 20, G: 120, B: 220, A: 255}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, fill)
		}
	}
	return img, nil
}
