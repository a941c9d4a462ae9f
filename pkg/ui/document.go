package ui

import (
	"fmt"

	"github.com/avanderveen/curio/pkg/walkthrough"
)

// pageView is implemented by every page model. Anchors reports the
// walkthrough anchors the page exposes at its current size; the root
// model merges them with the navigation bar's anchors into the layout
// document the tour engine resolves targets against.
type pageView interface {
	Anchors(width, height int) []walkthrough.Anchor
}

// buildDocument assembles the current page's layout document. Rebuilt
// on demand (the engine re-resolves on every step transition) so anchor
// rectangles always reflect the latest layout.
func buildDocument(anchors []walkthrough.Anchor) walkthrough.Document {
	l := &walkthrough.Layout{}
	for _, a := range anchors {
		l.Add(a)
	}
	return l
}

// navAnchors returns the anchors for the navigation bar items. The bar
// renders at the top of the screen as " curio │ 1 dashboard  2 contacts ... ",
// one anchor per page entry.
func navAnchors(width int) []walkthrough.Anchor {
	x := navBarPrefixWidth
	anchors := make([]walkthrough.Anchor, 0, len(walkthrough.Pages()))
	for i, p := range walkthrough.Pages() {
		label := fmt.Sprintf("%d %s", i+1, navLabel(p))
		w := len(label)
		if x+w > width {
			break
		}
		anchors = append(anchors, walkthrough.Anchor{
			ID:      "wt-nav-" + string(p),
			Classes: []string{"nav-item"},
			Rect:    walkthrough.Rect{X: x, Y: 0, W: w, H: 1},
		})
		x += w + navBarGap
	}
	return anchors
}
