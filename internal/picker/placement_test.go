package picker_test

import (
	"testing"

	"github.com/minhphat/retail-crm-go/internal/picker"
)

func TestPlace_BelowTrigger(t *testing.T) {
	trigger := picker.Rect{Left: 100, Top: 50, Right: 220, Bottom: 80}
	vp := picker.Viewport{Width: 1280, Height: 800}

	pos := picker.Place(trigger, vp)
	if pos.Left != 100 {
		t.Errorf("expected left aligned with trigger, got %d", pos.Left)
	}
	if pos.Top != 88 {
		t.Errorf("expected top below trigger with margin, got %d", pos.Top)
	}
}

func TestPlace_FlipsAboveOnBottomOverflow(t *testing.T) {
	trigger := picker.Rect{Left: 100, Top: 700, Right: 220, Bottom: 730}
	vp := picker.Viewport{Width: 1280, Height: 800}

	pos := picker.Place(trigger, vp)
	// 730+8+320 overflows 800, so the panel goes above: 700-320-8.
	if pos.Top != 372 {
		t.Errorf("expected panel flipped above trigger, got top %d", pos.Top)
	}
}

func TestPlace_ClampsAgainstRightEdge(t *testing.T) {
	trigger := picker.Rect{Left: 1200, Top: 50, Right: 1260, Bottom: 80}
	vp := picker.Viewport{Width: 1280, Height: 800}

	pos := picker.Place(trigger, vp)
	// 1200+320 overflows 1280, clamp to 1280-320-8.
	if pos.Left != 952 {
		t.Errorf("expected left clamped to right edge, got %d", pos.Left)
	}
}

func TestPlace_NeverLeavesViewport(t *testing.T) {
	// A trigger in a viewport too small for the panel pins to the margins.
	trigger := picker.Rect{Left: 10, Top: 200, Right: 60, Bottom: 230}
	vp := picker.Viewport{Width: 300, Height: 300}

	pos := picker.Place(trigger, vp)
	if pos.Left != 8 {
		t.Errorf("expected left pinned to margin, got %d", pos.Left)
	}
	if pos.Top != 8 {
		t.Errorf("expected top pinned to margin, got %d", pos.Top)
	}
}
