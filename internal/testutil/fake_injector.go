// Package testutil provides fakes shared by package tests.
package testutil

import (
	"sync"

	"github.com/frudas24/nanoremote/internal/input"
)

// Call records a single injected action.
type Call struct {
	Name      string
	X         int
	Y         int
	Button    string
	Double    bool
	Delta     int
	Key       string
	Modifiers []string
	Text      string
}

// FakeInjector implements input.Injector and records calls for tests.
type FakeInjector struct {
	mu     sync.Mutex
	W, H   int
	Err    error
	calls  []Call
	sizeQs int
}

// Ensure FakeInjector implements the interface.
var _ input.Injector = (*FakeInjector)(nil)

// NewFakeInjector returns an injector reporting a w x h screen.
func NewFakeInjector(w, h int) *FakeInjector {
	return &FakeInjector{W: w, H: h}
}

// Calls returns a copy of the recorded calls.
func (f *FakeInjector) Calls() []Call {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Call(nil), f.calls...)
}

// SizeQueries returns how often ScreenSize was called.
func (f *FakeInjector) SizeQueries() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.sizeQs
}

// SetScreen changes the reported screen size.
func (f *FakeInjector) SetScreen(w, h int) {
	f.mu.Lock()
	f.W, f.H = w, h
	f.mu.Unlock()
}

// ScreenSize returns the configured size.
func (f *FakeInjector) ScreenSize() (int, int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sizeQs++
	return f.W, f.H, nil
}

// MoveAbs records an absolute move.
func (f *FakeInjector) MoveAbs(x, y int) error {
	return f.record(Call{Name: "MoveAbs", X: x, Y: y})
}

// ButtonDown records a button press.
func (f *FakeInjector) ButtonDown(button string) error {
	return f.record(Call{Name: "ButtonDown", Button: button})
}

// ButtonUp records a button release.
func (f *FakeInjector) ButtonUp(button string) error {
	return f.record(Call{Name: "ButtonUp", Button: button})
}

// Click records a click.
func (f *FakeInjector) Click(button string, double bool) error {
	return f.record(Call{Name: "Click", Button: button, Double: double})
}

// Wheel records a wheel delta.
func (f *FakeInjector) Wheel(delta int) error {
	return f.record(Call{Name: "Wheel", Delta: delta})
}

// KeyTap records a key tap with modifiers.
func (f *FakeInjector) KeyTap(key string, modifiers ...string) error {
	return f.record(Call{Name: "KeyTap", Key: key, Modifiers: append([]string(nil), modifiers...)})
}

// TypeUnicode records typed text.
func (f *FakeInjector) TypeUnicode(text string) error {
	return f.record(Call{Name: "TypeUnicode", Text: text})
}

// record appends a call and returns the configured error.
func (f *FakeInjector) record(c Call) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, c)
	return f.Err
}
