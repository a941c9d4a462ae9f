package walkthrough

import "strings"

// Element is one region of the rendered page that a step can point at.
type Element interface {
	// Bounds returns the element's bounding rectangle in viewport
	// coordinates at the time of the call.
	Bounds() Rect
}

// Document is the queryable layout of the current page. It is the
// walkthrough's only view of the host UI, so tests can substitute an
// in-memory layout and the engine never touches widget internals.
//
// Implementations answer point-in-time queries; Resolve deliberately
// caches nothing across calls because the layout can change between
// steps (panes collapse, lists re-render, pages re-flow on resize).
type Document interface {
	// ByID returns the element whose unique identifier equals id, or nil.
	ByID(id string) Element
	// ByMarker returns the element carrying the generic walkthrough
	// marker attribute equal to id, or nil.
	ByMarker(id string) Element
	// ByClass returns an element whose class list contains id, or nil.
	ByClass(id string) Element
}

// Resolve locates the element for a step's target ID using the fallback
// chain: unique identifier, then marker attribute, then class list.
//
// An empty or whitespace target ID returns nil immediately: that is the
// documented "centered step" case, not an error. No match after all
// three lookups also returns nil; callers must center the tooltip and
// skip highlighting, since pages render conditionally and a target may
// simply not exist for the current data or role.
func Resolve(doc Document, targetID string) Element {
	if doc == nil || strings.TrimSpace(targetID) == "" {
		return nil
	}
	if el := doc.ByID(targetID); el != nil {
		return el
	}
	if el := doc.ByMarker(targetID); el != nil {
		return el
	}
	return doc.ByClass(targetID)
}

// Anchor is a concrete element: a named region registered by a page
// while it renders.
type Anchor struct {
	ID      string
	Marker  string
	Classes []string
	Rect    Rect
}

// Bounds implements Element.
func (a *Anchor) Bounds() Rect { return a.Rect }

// Layout is an in-memory Document built from anchors. Pages rebuild
// their layout on every render pass, so queries always reflect the
// current frame.
type Layout struct {
	anchors []*Anchor
}

// Add registers an anchor. Later anchors do not shadow earlier ones;
// the first match wins, mirroring document order.
func (l *Layout) Add(a Anchor) {
	copied := a
	l.anchors = append(l.anchors, &copied)
}

// ByID implements Document.
func (l *Layout) ByID(id string) Element {
	for _, a := range l.anchors {
		if a.ID == id {
			return a
		}
	}
	return nil
}

// ByMarker implements Document.
func (l *Layout) ByMarker(id string) Element {
	for _, a := range l.anchors {
		if a.Marker == id {
			return a
		}
	}
	return nil
}

// ByClass implements Document.
func (l *Layout) ByClass(id string) Element {
	for _, a := range l.anchors {
		for _, c := range a.Classes {
			if c == id {
				return a
			}
		}
	}
	return nil
}
