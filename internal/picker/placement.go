package picker

// Popover placement: the panel is anchored below its trigger, flips above
// when it would overflow the viewport bottom and clamps against the right
// edge. The caller recomputes on resize/scroll while open and discards the
// result on close.

// Estimated panel box used for overflow checks before the panel is measured.
const (
	PanelWidth  = 320
	PanelHeight = 320
	margin      = 8
)

// Rect is a trigger's bounding box in viewport coordinates.
type Rect struct {
	Left   int `json:"left"`
	Top    int `json:"top"`
	Right  int `json:"right"`
	Bottom int `json:"bottom"`
}

// Viewport is the visible window size.
type Viewport struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Position is a fixed on-screen placement for the popover panel.
type Position struct {
	Left int `json:"left"`
	Top  int `json:"top"`
}

// Place computes the panel position for a trigger inside a viewport.
func Place(trigger Rect, vp Viewport) Position {
	top := trigger.Bottom + margin
	left := trigger.Left

	if top+PanelHeight > vp.Height {
		top = trigger.Top - PanelHeight - margin
		if top < margin {
			top = margin
		}
	}
	if left+PanelWidth > vp.Width {
		left = vp.Width - PanelWidth - margin
		if left < margin {
			left = margin
		}
	}
	return Position{Left: left, Top: top}
}
