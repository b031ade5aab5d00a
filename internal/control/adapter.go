// Package control maps normalized remote-input messages onto the host injector.
package control

import (
	"errors"
	"fmt"

	"github.com/frudas24/nanoremote/internal/input"
	"github.com/frudas24/nanoremote/internal/protocol"
)

// ErrNotInput is returned for messages that are not input intents.
var ErrNotInput = errors.New("not an input message")

// Adapter applies input intents to an injector.
type Adapter struct {
	injector input.Injector
}

// NewAdapter returns an adapter driving injector.
func NewAdapter(injector input.Injector) (*Adapter, error) {
	if injector == nil {
		return nil, errors.New("injector is required")
	}
	return &Adapter{injector: injector}, nil
}

// Handles reports whether msgType is an input intent.
func Handles(msgType string) bool {
	switch msgType {
	case protocol.TypeMouseDown, protocol.TypeMouseUp, protocol.TypeMouseMove,
		protocol.TypeDoubleClick, protocol.TypeRightClick, protocol.TypeScroll,
		protocol.TypeKey, protocol.TypeText, protocol.TypeKeyCombo:
		return true
	default:
		return false
	}
}

// Apply performs one intent. Errors are meant for local logging only.
func (a *Adapter) Apply(msg protocol.Message) error {
	switch msg.Type {
	case protocol.TypeMouseDown:
		return a.toggle(msg, true)
	case protocol.TypeMouseUp:
		return a.toggle(msg, false)
	case protocol.TypeMouseMove:
		return a.moveTo(msg)
	case protocol.TypeDoubleClick:
		return a.click(msg, input.ButtonLeft, true)
	case protocol.TypeRightClick:
		return a.click(msg, input.ButtonRight, false)
	case protocol.TypeScroll:
		return a.injector.Wheel(msg.Delta)
	case protocol.TypeKey:
		if msg.Key == "" {
			return errors.New("key is empty")
		}
		return a.injector.KeyTap(msg.Key)
	case protocol.TypeText:
		return a.injector.TypeUnicode(msg.Text)
	case protocol.TypeKeyCombo:
		return a.keyCombo(msg.Keys)
	default:
		return fmt.Errorf("%w: %q", ErrNotInput, msg.Type)
	}
}

// moveTo maps the message position against the current screen size.
func (a *Adapter) moveTo(msg protocol.Message) error {
	w, h, err := a.injector.ScreenSize()
	if err != nil {
		return fmt.Errorf("screen size: %w", err)
	}
	x, y := NormToScreen(msg.X, msg.Y, w, h)
	return a.injector.MoveAbs(x, y)
}

func (a *Adapter) toggle(msg protocol.Message, down bool) error {
	if err := a.moveTo(msg); err != nil {
		return err
	}
	button := msg.Button
	if button == "" {
		button = input.ButtonLeft
	}
	if down {
		return a.injector.ButtonDown(button)
	}
	return a.injector.ButtonUp(button)
}

func (a *Adapter) click(msg protocol.Message, button string, double bool) error {
	if err := a.moveTo(msg); err != nil {
		return err
	}
	return a.injector.Click(button, double)
}

// keyCombo is a no-op when keys has no non-modifier key.
func (a *Adapter) keyCombo(keys []string) error {
	modifiers, main, ok := SplitCombo(keys)
	if !ok {
		return nil
	}
	return a.injector.KeyTap(main, modifiers...)
}
