package walkthrough

import "testing"

func buildLayout() *Layout {
	l := &Layout{}
	l.Add(Anchor{ID: "wt-contacts-table", Rect: Rect{X: 2, Y: 4, W: 60, H: 20}})
	l.Add(Anchor{Marker: "wt-contacts-add", Rect: Rect{X: 70, Y: 2, W: 12, H: 3}})
	l.Add(Anchor{Classes: []string{"toolbar", "wt-contacts-search"}, Rect: Rect{X: 2, Y: 1, W: 40, H: 1}})
	return l
}

func TestResolveByID(t *testing.T) {
	el := Resolve(buildLayout(), "wt-contacts-table")
	if el == nil {
		t.Fatal("expected element, got nil")
	}
	if got := el.Bounds(); got.X != 2 || got.Y != 4 {
		t.Errorf("wrong element resolved: %+v", got)
	}
}

func TestResolveByMarker(t *testing.T) {
	el := Resolve(buildLayout(), "wt-contacts-add")
	if el == nil {
		t.Fatal("expected marker fallback to resolve")
	}
	if got := el.Bounds(); got.X != 70 {
		t.Errorf("wrong element resolved: %+v", got)
	}
}

func TestResolveByClass(t *testing.T) {
	el := Resolve(buildLayout(), "wt-contacts-search")
	if el == nil {
		t.Fatal("expected class fallback to resolve")
	}
	if got := el.Bounds(); got.Y != 1 {
		t.Errorf("wrong element resolved: %+v", got)
	}
}

// An ID match must win even when marker and class candidates exist for
// the same identifier.
func TestResolveFallbackOrder(t *testing.T) {
	l := &Layout{}
	l.Add(Anchor{Classes: []string{"wt-target"}, Rect: Rect{X: 30, Y: 30, W: 5, H: 5}})
	l.Add(Anchor{Marker: "wt-target", Rect: Rect{X: 20, Y: 20, W: 5, H: 5}})
	l.Add(Anchor{ID: "wt-target", Rect: Rect{X: 10, Y: 10, W: 5, H: 5}})

	el := Resolve(l, "wt-target")
	if el == nil {
		t.Fatal("expected element")
	}
	if got := el.Bounds(); got.X != 10 || got.Y != 10 {
		t.Errorf("ID match should win, resolved %+v", got)
	}

	// Without the ID anchor the marker wins over the class.
	l2 := &Layout{}
	l2.Add(Anchor{Classes: []string{"wt-target"}, Rect: Rect{X: 30, Y: 30, W: 5, H: 5}})
	l2.Add(Anchor{Marker: "wt-target", Rect: Rect{X: 20, Y: 20, W: 5, H: 5}})
	el = Resolve(l2, "wt-target")
	if got := el.Bounds(); got.X != 20 {
		t.Errorf("marker match should win over class, resolved %+v", got)
	}
}

func TestResolveEmptyTargetID(t *testing.T) {
	l := buildLayout()
	for _, id := range []string{"", "   ", "\t"} {
		if el := Resolve(l, id); el != nil {
			t.Errorf("empty target %q should resolve to nil", id)
		}
	}
}

func TestResolveNoMatch(t *testing.T) {
	if el := Resolve(buildLayout(), "wt-missing"); el != nil {
		t.Error("unknown target should resolve to nil, not error")
	}
}

func TestResolveNilDocument(t *testing.T) {
	if el := Resolve(nil, "wt-contacts-table"); el != nil {
		t.Error("nil document should resolve to nil")
	}
}

// Resolution is idempotent: repeated calls against the same layout give
// the same answer, and nothing is cached across layout changes.
func TestResolveNoCaching(t *testing.T) {
	l := &Layout{}
	l.Add(Anchor{ID: "wt-x", Rect: Rect{X: 1, Y: 1, W: 2, H: 2}})
	if Resolve(l, "wt-x") == nil {
		t.Fatal("expected resolution")
	}

	fresh := &Layout{}
	if Resolve(fresh, "wt-x") != nil {
		t.Error("element from a previous layout leaked into a new one")
	}
}
