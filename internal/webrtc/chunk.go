package webrtc

import "errors"

// ChunkSize is the largest payload sent in one data channel message.
const ChunkSize = 16 * 1024

// Fragment flags prefixed to every data channel message.
const (
	flagFinal byte = 0
	flagMore  byte = 1
)

// maxAssembled bounds a reassembled message.
const maxAssembled = 16 << 20

var errOversized = errors.New("reassembled message too large")

// split cuts data into flagged fragments of at most size payload bytes.
func split(data []byte, size int) [][]byte {
	if size <= 0 {
		size = ChunkSize
	}
	var out [][]byte
	for {
		n := len(data)
		flag := flagFinal
		if n > size {
			n = size
			flag = flagMore
		}
		frag := make([]byte, 0, n+1)
		frag = append(frag, flag)
		frag = append(frag, data[:n]...)
		out = append(out, frag)
		data = data[n:]
		if flag == flagFinal {
			return out
		}
	}
}

// assembler joins fragments back into whole messages.
type assembler struct {
	buf []byte
}

// push adds one fragment and returns the complete message once the final
// fragment arrived.
func (a *assembler) push(frag []byte) ([]byte, bool, error) {
	if len(frag) == 0 {
		return nil, false, errors.New("empty fragment")
	}
	if len(a.buf)+len(frag)-1 > maxAssembled {
		a.buf = nil
		return nil, false, errOversized
	}
	a.buf = append(a.buf, frag[1:]...)
	switch frag[0] {
	case flagMore:
		return nil, false, nil
	case flagFinal:
		msg := a.buf
		a.buf = nil
		return msg, true, nil
	default:
		a.buf = nil
		return nil, false, errors.New("unknown fragment flag")
	}
}
