//go:build !windows && !cgo

package window

import "github.com/frudas24/nanoremote/internal/protocol"

// locate has no window list to search without cgo.
func locate(string) (protocol.Bounds, error) {
	return protocol.Bounds{}, ErrNotFound
}
