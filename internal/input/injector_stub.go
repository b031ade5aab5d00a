//go:build !cgo && !windows

package input

// NoopInjector is a placeholder injector for builds without a backend.
type NoopInjector struct{}

// NewInjector returns a non-functional injector and ErrUnsupported.
func NewInjector() (Injector, error) {
	return &NoopInjector{}, ErrUnsupported
}

// ScreenSize returns ErrUnsupported.
func (n *NoopInjector) ScreenSize() (int, int, error) {
	return 0, 0, ErrUnsupported
}

// MoveAbs returns ErrUnsupported.
func (n *NoopInjector) MoveAbs(x, y int) error {
	return ErrUnsupported
}

// ButtonDown returns ErrUnsupported.
func (n *NoopInjector) ButtonDown(button string) error {
	return ErrUnsupported
}

// ButtonUp returns ErrUnsupported.
func (n *NoopInjector) ButtonUp(button string) error {
	return ErrUnsupported
}

// Click returns ErrUnsupported.
func (n *NoopInjector) Click(button string, double bool) error {
	return ErrUnsupported
}

// Wheel returns ErrUnsupported.
func (n *NoopInjector) Wheel(delta int) error {
	return ErrUnsupported
}

// KeyTap returns ErrUnsupported.
func (n *NoopInjector) KeyTap(key string, modifiers ...string) error {
	return ErrUnsupported
}

// TypeUnicode returns ErrUnsupported.
func (n *NoopInjector) TypeUnicode(text string) error {
	return ErrUnsupported
}
