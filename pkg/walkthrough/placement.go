package walkthrough

// Placement engine: computes where the tooltip goes. Pure functions of
// the target rectangle, the hint and the viewport, so every branch is
// unit-testable with hand-built rectangles.

const (
	// DefaultFootprintW and DefaultFootprintH are the tooltip box
	// dimensions assumed when the caller does not measure the rendered
	// tooltip itself.
	DefaultFootprintW = 46
	DefaultFootprintH = 12

	// placementMargin is the minimum padding kept between the tooltip
	// and the viewport edges, and between the tooltip and its target.
	placementMargin = 1
)

// DefaultFootprint returns the assumed tooltip box size.
func DefaultFootprint() Size {
	return Size{W: DefaultFootprintW, H: DefaultFootprintH}
}

// ComputePosition returns the top-left viewport coordinate for a tooltip
// of the given footprint.
//
// With no target the tooltip is centered. An explicit side hint places
// the tooltip adjacent to that side of the target, centered along the
// shared axis; corner hints additionally align to the named target edge.
// The auto hint picks the first side with enough room in priority order
// bottom, top, right, left, and falls back to centering when none fits.
// The offset is applied after side selection, and the final coordinate
// is clamped so the whole footprint stays inside the viewport.
func ComputePosition(target *Rect, hint Position, offset Offset, footprint Size, vp Viewport) Point {
	var p Point
	switch {
	case target == nil || hint == PosCenter:
		p = centerIn(footprint, vp)
	default:
		p = placeBySide(*target, hint, footprint, vp)
	}

	p.X += offset.X
	p.Y += offset.Y

	return clamp(p, footprint, vp)
}

// placeBySide computes the unclamped coordinate for an explicit or
// automatic side hint.
func placeBySide(t Rect, hint Position, fp Size, vp Viewport) Point {
	// Shared axis centering and edge alignment.
	centerX := t.X + t.W/2 - fp.W/2
	centerY := t.Y + t.H/2 - fp.H/2
	above := t.Y - fp.H - placementMargin
	below := t.Bottom() + placementMargin
	leftOf := t.X - fp.W - placementMargin
	rightOf := t.Right() + placementMargin

	switch hint {
	case PosTop:
		return Point{X: centerX, Y: above}
	case PosBottom:
		return Point{X: centerX, Y: below}
	case PosLeft:
		return Point{X: leftOf, Y: centerY}
	case PosRight:
		return Point{X: rightOf, Y: centerY}
	case PosTopLeft:
		return Point{X: t.X, Y: above}
	case PosTopRight:
		return Point{X: t.Right() - fp.W, Y: above}
	case PosBottomLeft:
		return Point{X: t.X, Y: below}
	case PosBottomRight:
		return Point{X: t.Right() - fp.W, Y: below}
	}

	// Auto: first side with enough room, bottom → top → right → left.
	if fits := vp.H - t.Bottom(); fits >= fp.H+2*placementMargin {
		return Point{X: centerX, Y: below}
	}
	if t.Y >= fp.H+2*placementMargin {
		return Point{X: centerX, Y: above}
	}
	if fits := vp.W - t.Right(); fits >= fp.W+2*placementMargin {
		return Point{X: rightOf, Y: centerY}
	}
	if t.X >= fp.W+2*placementMargin {
		return Point{X: leftOf, Y: centerY}
	}
	return centerIn(fp, vp)
}

// centerIn centers a footprint in the viewport.
func centerIn(fp Size, vp Viewport) Point {
	return Point{X: (vp.W - fp.W) / 2, Y: (vp.H - fp.H) / 2}
}

// clamp keeps the whole footprint inside the viewport, respecting the
// placement margin where the viewport is large enough to afford it.
func clamp(p Point, fp Size, vp Viewport) Point {
	p.X = clampAxis(p.X, fp.W, vp.W)
	p.Y = clampAxis(p.Y, fp.H, vp.H)
	return p
}

func clampAxis(pos, span, limit int) int {
	lo := placementMargin
	hi := limit - span - placementMargin
	if hi < lo {
		// Viewport too small for margin; fall back to hard bounds.
		lo = 0
		hi = limit - span
		if hi < 0 {
			hi = 0
		}
	}
	if pos < lo {
		return lo
	}
	if pos > hi {
		return hi
	}
	return pos
}
