package control

import (
	"math"
	"strings"

	"github.com/frudas24/nanoremote/internal/input"
)

// NormToScreen maps normalized coordinates to absolute pixels of a w x h screen.
func NormToScreen(xn, yn float64, w, h int) (int, int) {
	return normToPixels(xn, w), normToPixels(yn, h)
}

func normToPixels(norm float64, span int) int {
	if span <= 0 {
		return 0
	}
	return int(math.Round(clamp01(norm) * float64(span)))
}

// clamp01 bounds a float to the [0..1] range.
func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// SplitCombo separates modifier keys from the first non-modifier key. ok is
// false when keys holds only modifiers.
func SplitCombo(keys []string) (modifiers []string, main string, ok bool) {
	for _, k := range keys {
		if mod, isMod := canonicalModifier(k); isMod {
			modifiers = append(modifiers, mod)
			continue
		}
		if !ok && strings.TrimSpace(k) != "" {
			main = k
			ok = true
		}
	}
	return modifiers, main, ok
}

// canonicalModifier folds common aliases onto the modifier names.
func canonicalModifier(key string) (string, bool) {
	switch k := strings.ToLower(strings.TrimSpace(key)); k {
	case "ctrl":
		return input.ModControl, true
	case "cmd", "meta", "win":
		return input.ModCommand, true
	case "option":
		return input.ModAlt, true
	default:
		if input.IsModifier(k) {
			return k, true
		}
		return "", false
	}
}
