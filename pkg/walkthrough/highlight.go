package walkthrough

import "time"

// Highlight controller. The overlay that emphasizes the current target
// is an explicitly owned resource: a Highlighter holds at most one
// HighlightHandle, every path that creates one tears down the previous
// one first, and Clear is safe to call at any time. The handle is pure
// state; compositing it over the page is the view layer's job.

const (
	// highlightMargin is the outward margin the overlay extends beyond
	// the target's bounding box.
	highlightMargin = 1

	// ScrollSettleDelay is the bounded pause between asking the host to
	// scroll a target into view and drawing the overlay, so the overlay
	// is not drawn against stale coordinates.
	ScrollSettleDelay = 350 * time.Millisecond

	// PulseInterval drives the pulsing border animation.
	PulseInterval = 600 * time.Millisecond
)

// HighlightHandle is the single live overlay. Rect is the target's
// bounding box grown by the outward margin; Drawn is false while the
// controller waits for a scroll to settle; PulseOn alternates with each
// pulse tick to animate the border.
type HighlightHandle struct {
	Rect    Rect
	Drawn   bool
	PulseOn bool
}

// Highlighter owns the overlay lifecycle for one engine instance.
type Highlighter struct {
	handle *HighlightHandle
}

// Highlight targets el. Any prior overlay is removed first. If the
// target is fully visible the overlay is drawn immediately and Highlight
// returns false. Otherwise the handle is created undrawn and Highlight
// returns true: the caller must scroll the target into view and call
// Settle once the scroll has settled.
func (h *Highlighter) Highlight(el Element, vp Viewport) bool {
	h.Clear()
	if el == nil {
		return false
	}
	bounds := el.Bounds()
	h.handle = &HighlightHandle{
		Rect:    expand(bounds, highlightMargin),
		PulseOn: true,
	}
	if vp.ContainsRect(bounds) {
		h.handle.Drawn = true
		return false
	}
	return true
}

// Settle draws a pending overlay using the element's post-scroll bounds.
// The element is re-resolved by the caller because scrolling moves every
// rectangle on the page. A nil element (the target unmounted during the
// scroll) clears the pending overlay instead.
func (h *Highlighter) Settle(el Element) {
	if h.handle == nil {
		return
	}
	if el == nil {
		h.Clear()
		return
	}
	h.handle.Rect = expand(el.Bounds(), highlightMargin)
	h.handle.Drawn = true
}

// Pulse toggles the border animation phase.
func (h *Highlighter) Pulse() {
	if h.handle != nil {
		h.handle.PulseOn = !h.handle.PulseOn
	}
}

// Clear removes the overlay. Calling it with nothing highlighted is a
// no-op, not an error.
func (h *Highlighter) Clear() {
	h.handle = nil
}

// Handle returns the live overlay, or nil when nothing is highlighted.
func (h *Highlighter) Handle() *HighlightHandle {
	return h.handle
}

func expand(r Rect, by int) Rect {
	return Rect{X: r.X - by, Y: r.Y - by, W: r.W + 2*by, H: r.H + 2*by}
}
