package monitor

import (
	"image"
	"testing"
)

// TestGetMonitorByIndex_Found verifies a monitor is found by index.
func TestGetMonitorByIndex_Found(t *testing.T) {
	list := []Monitor{
		{Index: 1, W: 100, H: 100},
		{Index: 2, W: 200, H: 200},
	}
	m, ok := GetMonitorByIndex(list, 2)
	if !ok || m.Index != 2 {
		t.Fatalf("expected index 2, got ok=%v monitor=%+v", ok, m)
	}
}

// TestGetMonitorByIndex_NotFound verifies missing indexes return false.
func TestGetMonitorByIndex_NotFound(t *testing.T) {
	list := []Monitor{{Index: 1, W: 100, H: 100}}
	_, ok := GetMonitorByIndex(list, 3)
	if ok {
		t.Fatalf("expected not found")
	}
}

// TestFromRects verifies display rectangles are numbered from 1 with the first primary.
func TestFromRects(t *testing.T) {
	list := fromRects([]image.Rectangle{
		image.Rect(0, 0, 1920, 1080),
		image.Rect(1920, -200, 3200, 824),
	})
	if len(list) != 2 {
		t.Fatalf("expected 2 monitors, got %d", len(list))
	}
	if !list[0].Primary || list[1].Primary {
		t.Fatalf("expected only the first monitor to be primary: %+v", list)
	}
	second := list[1]
	if second.Index != 2 || second.X != 1920 || second.Y != -200 || second.W != 1280 || second.H != 1024 {
		t.Fatalf("unexpected second monitor: %+v", second)
	}
	if second.Bounds() != image.Rect(1920, -200, 3200, 824) {
		t.Fatalf("unexpected bounds: %v", second.Bounds())
	}
}
