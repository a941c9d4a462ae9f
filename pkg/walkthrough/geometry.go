package walkthrough

// Geometry value types shared by the resolver, placement engine and
// highlight controller. Units are terminal cells; the origin is the
// top-left corner of the viewport.

// Point is a viewport coordinate.
type Point struct {
	X int
	Y int
}

// Size is a width/height pair.
type Size struct {
	W int
	H int
}

// Offset is a pixel-style nudge applied after placement is computed.
type Offset struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
}

// Rect is an axis-aligned rectangle in viewport coordinates.
type Rect struct {
	X int
	Y int
	W int
	H int
}

// Right returns the x coordinate one past the right edge.
func (r Rect) Right() int { return r.X + r.W }

// Bottom returns the y coordinate one past the bottom edge.
func (r Rect) Bottom() int { return r.Y + r.H }

// Center returns the center point of the rectangle.
func (r Rect) Center() Point {
	return Point{X: r.X + r.W/2, Y: r.Y + r.H/2}
}

// Viewport is the visible area of the terminal.
type Viewport struct {
	W int
	H int
}

// ContainsRect reports whether r lies fully inside the viewport.
func (v Viewport) ContainsRect(r Rect) bool {
	return r.X >= 0 && r.Y >= 0 && r.Right() <= v.W && r.Bottom() <= v.H
}
