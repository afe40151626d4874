package cursor

import (
	"math"
	"testing"
	"time"
)

func approxScale(a, b float64) bool {
	return math.Abs(a-b) < 1e-3
}

func TestAppearanceHover(t *testing.T) {
	a := NewAppearance()
	if a.Scale != RestScale {
		t.Fatalf("Scale = %v, want %v", a.Scale, RestScale)
	}
	a.Hover(true)
	a.Update(200 * time.Millisecond)
	if !approxScale(a.Scale, HoverScale) {
		t.Errorf("Scale after hover = %v, want %v", a.Scale, HoverScale)
	}
	a.Hover(false)
	a.Update(200 * time.Millisecond)
	if !approxScale(a.Scale, RestScale) {
		t.Errorf("Scale after leave = %v, want %v", a.Scale, RestScale)
	}
}

func TestAppearanceFuseShrink(t *testing.T) {
	a := NewAppearance()
	a.FuseStart(time.Second)
	a.Update(500 * time.Millisecond)
	mid := (RestScale + FusedScale) / 2
	if !approxScale(a.Scale, mid) {
		t.Errorf("Scale halfway = %v, want %v", a.Scale, mid)
	}
	// Hover changes do not interrupt the shrink.
	a.Hover(true)
	a.Update(500 * time.Millisecond)
	if !approxScale(a.Scale, FusedScale) {
		t.Errorf("Scale at end = %v, want %v", a.Scale, FusedScale)
	}

	a.FuseCancel()
	if a.Fusing {
		t.Error("Fusing = true after cancel")
	}
	a.Update(200 * time.Millisecond)
	if !approxScale(a.Scale, HoverScale) {
		t.Errorf("Scale after cancel = %v, want %v", a.Scale, HoverScale)
	}
}

func TestAppearanceClickedPulse(t *testing.T) {
	a := NewAppearance()
	a.FuseStart(time.Second)
	a.Clicked()
	if a.Clicks != 1 || a.Pulse != 1 || a.Fusing {
		t.Errorf("after Clicked: %+v", a)
	}
	a.Update(100 * time.Millisecond)
	if a.Pulse <= 0 || a.Pulse >= 1 {
		t.Errorf("Pulse mid-way = %v, want in (0, 1)", a.Pulse)
	}
	a.Update(time.Second)
	if !approxScale(a.Pulse, 0) || !approxScale(a.Scale, RestScale) {
		t.Errorf("Pulse, Scale = %v, %v, want 0, %v", a.Pulse, a.Scale, RestScale)
	}
}

func TestAppearanceFollowsCursor(t *testing.T) {
	c, _ := newTestCursor(t, testConfig(ModeFuse))
	c.HitTestUpdate("a", Vec3{})
	ap := c.Appearance()
	if !ap.Hovering || !ap.Fusing {
		t.Fatalf("Hovering, Fusing = %v, %v, want true, true", ap.Hovering, ap.Fusing)
	}
	c.Update(500 * time.Millisecond)
	if ap.Clicks != 1 || ap.Fusing {
		t.Errorf("Clicks, Fusing = %d, %v after select", ap.Clicks, ap.Fusing)
	}
	c.HitTestUpdate("", Vec3{})
	if ap.Hovering {
		t.Error("Hovering = true after leave")
	}
}
