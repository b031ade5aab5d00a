//go:build !windows && cgo

package window

import (
	"github.com/frudas24/nanoremote/internal/protocol"
	"github.com/go-vgo/robotgo"
)

// locate matches process window titles, falling back to process names.
func locate(title string) (protocol.Bounds, error) {
	procs, err := robotgo.Process()
	if err != nil {
		return protocol.Bounds{}, err
	}
	for _, p := range procs {
		if !MatchTitle(robotgo.GetTitle(p.Pid), title) && !MatchTitle(p.Name, title) {
			continue
		}
		x, y, w, h := robotgo.GetBounds(p.Pid)
		b := protocol.Bounds{X: x, Y: y, Width: w, Height: h}
		if usable(b) {
			return b, nil
		}
	}
	return protocol.Bounds{}, ErrNotFound
}
