package testutil

import (
	"context"
	"sync"

	"github.com/frudas24/nanoremote/internal/protocol"
)

// FakeLocator returns a fixed window rectangle or error.
type FakeLocator struct {
	mu     sync.Mutex
	bounds protocol.Bounds
	err    error
	titles []string
}

// NewFakeLocator returns a locator that finds b.
func NewFakeLocator(b protocol.Bounds) *FakeLocator {
	return &FakeLocator{bounds: b}
}

// Set changes the next result.
func (l *FakeLocator) Set(b protocol.Bounds, err error) {
	l.mu.Lock()
	l.bounds, l.err = b, err
	l.mu.Unlock()
}

// Titles returns the titles looked up so far.
func (l *FakeLocator) Titles() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.titles...)
}

// Locate returns the configured result.
func (l *FakeLocator) Locate(ctx context.Context, title string) (protocol.Bounds, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.titles = append(l.titles, title)
	if err := ctx.Err(); err != nil {
		return protocol.Bounds{}, err
	}
	return l.bounds, l.err
}
