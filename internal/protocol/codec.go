package protocol

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrMissingType is returned for well-formed JSON without a type tag.
var ErrMissingType = errors.New("message has no type")

// Encode serializes a message. Coordinate-bearing messages always carry x and
// y, scroll always carries delta and windowBounds always carries bounds (null
// when unknown).
func Encode(m Message) ([]byte, error) {
	return json.Marshal(m)
}

// Decode parses one message. Unknown types decode successfully and are left
// to the caller to ignore.
func Decode(data []byte) (Message, error) {
	var m Message
	if err := json.Unmarshal(data, &m); err != nil {
		return Message{}, fmt.Errorf("decode message: %w", err)
	}
	if m.Type == "" {
		return Message{}, ErrMissingType
	}
	return m, nil
}

// MarshalJSON emits the wire shape of each message type.
func (m Message) MarshalJSON() ([]byte, error) {
	type wire Message
	switch {
	case m.HasCoords():
		return json.Marshal(struct {
			wire
			X float64 `json:"x"`
			Y float64 `json:"y"`
		}{wire(m), m.X, m.Y})
	case m.Type == TypeScroll:
		return json.Marshal(struct {
			wire
			Delta int `json:"delta"`
		}{wire(m), m.Delta})
	case m.Type == TypeWindowBounds:
		return json.Marshal(struct {
			wire
			Bounds *Bounds `json:"bounds"`
		}{wire(m), m.Bounds})
	default:
		return json.Marshal(wire(m))
	}
}
