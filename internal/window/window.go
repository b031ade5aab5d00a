// Package window finds the on-screen rectangle of the controlled application.
package window

import (
	"context"
	"errors"
	"strings"

	"github.com/frudas24/nanoremote/internal/protocol"
)

// ErrNotFound is returned when no visible window matches the title.
var ErrNotFound = errors.New("window not found")

// Locator resolves a window title to its screen bounds.
type Locator interface {
	Locate(ctx context.Context, title string) (protocol.Bounds, error)
}

// System locates windows using the platform window list.
type System struct{}

// NewSystem returns the platform locator.
func NewSystem() *System {
	return &System{}
}

// Locate returns the bounds of the first visible window whose title contains
// title, compared case-insensitively.
func (System) Locate(ctx context.Context, title string) (protocol.Bounds, error) {
	if strings.TrimSpace(title) == "" {
		return protocol.Bounds{}, errors.New("window title is required")
	}
	type result struct {
		b   protocol.Bounds
		err error
	}
	done := make(chan result, 1)
	go func() {
		b, err := locate(title)
		done <- result{b: b, err: err}
	}()
	select {
	case <-ctx.Done():
		return protocol.Bounds{}, ctx.Err()
	case r := <-done:
		return r.b, r.err
	}
}

// MatchTitle reports whether candidate contains want, ignoring case.
func MatchTitle(candidate, want string) bool {
	want = strings.TrimSpace(want)
	if want == "" {
		return false
	}
	return strings.Contains(strings.ToLower(candidate), strings.ToLower(want))
}

// usable reports whether a rectangle can be shown to a client.
func usable(b protocol.Bounds) bool {
	return b.Width > 0 && b.Height > 0
}
