package webrtc

import (
	"errors"
	"sync"

	"github.com/pion/webrtc/v3"

	"github.com/frudas24/nanoremote/internal/logging"
	"github.com/frudas24/nanoremote/internal/protocol"
)

// ChannelLabel names the data channel carrying control and frame messages.
const ChannelLabel = "nanoremote"

// ErrClosed is returned once the data channel has closed.
var ErrClosed = errors.New("data channel closed")

// Conn is a message connection over one data channel. Each protocol message
// travels as one or more binary fragments.
type Conn struct {
	dc *webrtc.DataChannel

	writeMu sync.Mutex
	inbound chan []byte
	opened  chan struct{}
	done    chan struct{}

	openOnce  sync.Once
	closeOnce sync.Once
}

// NewConn wraps dc. It must be called before the channel opens so no message
// is missed.
func NewConn(dc *webrtc.DataChannel) *Conn {
	c := &Conn{
		dc:      dc,
		inbound: make(chan []byte, 64),
		opened:  make(chan struct{}),
		done:    make(chan struct{}),
	}
	log := logging.L("webrtc")
	var asm assembler
	dc.OnOpen(func() { c.openOnce.Do(func() { close(c.opened) }) })
	dc.OnClose(c.markClosed)
	dc.OnMessage(func(m webrtc.DataChannelMessage) {
		data := append([]byte(nil), m.Data...)
		if !m.IsString {
			msg, ok, err := asm.push(m.Data)
			if err != nil {
				log.Debug("fragment dropped", logging.Err(err))
				return
			}
			if !ok {
				return
			}
			data = msg
		}
		select {
		case c.inbound <- data:
		case <-c.done:
		}
	})
	return c
}

// Opened is closed when the channel is ready.
func (c *Conn) Opened() <-chan struct{} { return c.opened }

// Done is closed when the channel has closed.
func (c *Conn) Done() <-chan struct{} { return c.done }

// Send encodes msg and writes it.
func (c *Conn) Send(msg protocol.Message) error {
	data, err := protocol.Encode(msg)
	if err != nil {
		return err
	}
	return c.WriteMessage(data)
}

// WriteMessage writes one whole message as fragments.
func (c *Conn) WriteMessage(data []byte) error {
	select {
	case <-c.done:
		return ErrClosed
	default:
	}
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	for _, frag := range split(data, ChunkSize) {
		if err := c.dc.Send(frag); err != nil {
			return err
		}
	}
	return nil
}

// ReadMessage blocks for the next whole message.
func (c *Conn) ReadMessage() ([]byte, error) {
	select {
	case data := <-c.inbound:
		return data, nil
	case <-c.done:
		return nil, ErrClosed
	}
}

// Close closes the data channel.
func (c *Conn) Close() error {
	err := c.dc.Close()
	c.markClosed()
	return err
}

func (c *Conn) markClosed() {
	c.closeOnce.Do(func() { close(c.done) })
}
