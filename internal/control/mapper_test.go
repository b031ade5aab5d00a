package control

import (
	"reflect"
	"testing"
)

// TestNormToScreen_Center verifies center mapping uses round(x*w).
func TestNormToScreen_Center(t *testing.T) {
	x, y := NormToScreen(0.5, 0.5, 1921, 1081)
	if x != 961 || y != 541 {
		t.Fatalf("expected (961,541), got (%d,%d)", x, y)
	}
}

// TestNormToScreen_Corners verifies the corners map to 0 and the full span.
func TestNormToScreen_Corners(t *testing.T) {
	if x, y := NormToScreen(0, 0, 1920, 1080); x != 0 || y != 0 {
		t.Fatalf("expected (0,0), got (%d,%d)", x, y)
	}
	if x, y := NormToScreen(1, 1, 1920, 1080); x != 1920 || y != 1080 {
		t.Fatalf("expected (1920,1080), got (%d,%d)", x, y)
	}
}

// TestNormToScreen_ClampOutOfRange verifies out-of-range fractions are clamped.
func TestNormToScreen_ClampOutOfRange(t *testing.T) {
	x, y := NormToScreen(-1, 2, 300, 400)
	if x != 0 || y != 400 {
		t.Fatalf("expected clamped (0,400), got (%d,%d)", x, y)
	}
	if x, y := NormToScreen(0.5, 0.5, 0, -1); x != 0 || y != 0 {
		t.Fatalf("expected zero for empty screen, got (%d,%d)", x, y)
	}
}

// TestSplitCombo_ModifiersAndMain verifies modifiers are separated from the main key.
func TestSplitCombo_ModifiersAndMain(t *testing.T) {
	mods, main, ok := SplitCombo([]string{"control", "alt", "delete"})
	if !ok || main != "delete" {
		t.Fatalf("expected main key delete, got %q ok=%v", main, ok)
	}
	if !reflect.DeepEqual(mods, []string{"control", "alt"}) {
		t.Fatalf("expected [control alt], got %v", mods)
	}
}

// TestSplitCombo_OnlyModifiers verifies a combo without a main key is rejected.
func TestSplitCombo_OnlyModifiers(t *testing.T) {
	mods, main, ok := SplitCombo([]string{"control", "alt"})
	if ok || main != "" {
		t.Fatalf("expected no main key, got %q ok=%v", main, ok)
	}
	if len(mods) != 2 {
		t.Fatalf("expected 2 modifiers, got %v", mods)
	}
}

// TestSplitCombo_FirstMainWinsAndAliases verifies aliases fold and only the first main key is used.
func TestSplitCombo_FirstMainWinsAndAliases(t *testing.T) {
	mods, main, ok := SplitCombo([]string{"ctrl", "c", "v", "cmd"})
	if !ok || main != "c" {
		t.Fatalf("expected main key c, got %q ok=%v", main, ok)
	}
	if !reflect.DeepEqual(mods, []string{"control", "command"}) {
		t.Fatalf("expected [control command], got %v", mods)
	}
}
