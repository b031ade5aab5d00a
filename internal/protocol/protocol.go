// Package protocol defines the control and frame messages shared by client and server.
package protocol

// Message types.
const (
	TypeStart        = "start"
	TypeStop         = "stop"
	TypeMouseDown    = "mousedown"
	TypeMouseUp      = "mouseup"
	TypeMouseMove    = "mousemove"
	TypeDoubleClick  = "doubleclick"
	TypeRightClick   = "rightclick"
	TypeScroll       = "scroll"
	TypeKey          = "key"
	TypeText         = "text"
	TypeKeyCombo     = "keycombo"
	TypeFindWindow   = "findWindow"
	TypeFrame        = "frame"
	TypeWindowBounds = "windowBounds"
)

// Mouse buttons.
const (
	ButtonLeft   = "left"
	ButtonMiddle = "middle"
	ButtonRight  = "right"
)

// ScrollStep is the fixed magnitude of a forwarded wheel notch.
const ScrollStep = 3

// Bounds is a rectangle on the remote screen in pixels.
type Bounds struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Message is a single control or frame payload. Only the fields relevant to
// Type are meaningful.
type Message struct {
	Type   string   `json:"type"`
	X      float64  `json:"x,omitempty"`
	Y      float64  `json:"y,omitempty"`
	Button string   `json:"button,omitempty"`
	Delta  int      `json:"delta,omitempty"`
	Key    string   `json:"key,omitempty"`
	Text   string   `json:"text,omitempty"`
	Keys   []string `json:"keys,omitempty"`
	Data   string   `json:"data,omitempty"`
	Seq    uint64   `json:"seq,omitempty"`
	Bounds *Bounds  `json:"bounds,omitempty"`
}

// HasCoords reports whether the message type carries x/y fractions.
func (m Message) HasCoords() bool {
	switch m.Type {
	case TypeMouseDown, TypeMouseUp, TypeMouseMove, TypeDoubleClick, TypeRightClick:
		return true
	default:
		return false
	}
}

// Known reports whether the message type belongs to the vocabulary.
func (m Message) Known() bool {
	switch m.Type {
	case TypeStart, TypeStop, TypeMouseDown, TypeMouseUp, TypeMouseMove,
		TypeDoubleClick, TypeRightClick, TypeScroll, TypeKey, TypeText,
		TypeKeyCombo, TypeFindWindow, TypeFrame, TypeWindowBounds:
		return true
	default:
		return false
	}
}

// Start requests the frame stream.
func Start() Message { return Message{Type: TypeStart} }

// Stop ends the frame stream.
func Stop() Message { return Message{Type: TypeStop} }

// MouseDown presses button at the normalized position.
func MouseDown(x, y float64, button string) Message {
	return Message{Type: TypeMouseDown, X: x, Y: y, Button: button}
}

// MouseUp releases button at the normalized position.
func MouseUp(x, y float64, button string) Message {
	return Message{Type: TypeMouseUp, X: x, Y: y, Button: button}
}

// MouseMove moves the pointer to the normalized position.
func MouseMove(x, y float64) Message { return Message{Type: TypeMouseMove, X: x, Y: y} }

// DoubleClick double-clicks the left button at the normalized position.
func DoubleClick(x, y float64) Message { return Message{Type: TypeDoubleClick, X: x, Y: y} }

// RightClick clicks the right button at the normalized position.
func RightClick(x, y float64) Message { return Message{Type: TypeRightClick, X: x, Y: y} }

// Scroll scrolls vertically by delta units.
func Scroll(delta int) Message { return Message{Type: TypeScroll, Delta: delta} }

// Key taps a single named key.
func Key(key string) Message { return Message{Type: TypeKey, Key: key} }

// Text types a literal string.
func Text(text string) Message { return Message{Type: TypeText, Text: text} }

// KeyCombo taps the non-modifier key in keys with the modifiers held.
func KeyCombo(keys ...string) Message { return Message{Type: TypeKeyCombo, Keys: keys} }

// FindWindow asks the server to locate the target window.
func FindWindow() Message { return Message{Type: TypeFindWindow} }

// Frame carries one base64 encoded JPEG.
func Frame(data string, seq uint64) Message { return Message{Type: TypeFrame, Data: data, Seq: seq} }

// WindowBounds reports the located window, or nil when unknown.
func WindowBounds(b *Bounds) Message { return Message{Type: TypeWindowBounds, Bounds: b} }
