package ui

import (
	"strings"

	"github.com/charmbracelet/x/ansi"

	"github.com/avanderveen/curio/pkg/walkthrough"
)

// The tour draws on top of the page: a pulsing frame around the
// highlighted element and the tooltip box at its computed position.
// Both are spliced into the rendered page ANSI-safely, cell by cell.

// overlayBlock splices block into base with block's top-left cell at
// (x, y). Lines of base beyond its own height are created as needed;
// columns are padded with spaces. Styling in both strings survives.
func overlayBlock(base, block string, x, y int) string {
	if block == "" || x < 0 || y < 0 {
		return base
	}
	baseLines := strings.Split(base, "\n")
	blockLines := strings.Split(block, "\n")

	for i, bl := range blockLines {
		row := y + i
		for row >= len(baseLines) {
			baseLines = append(baseLines, "")
		}
		baseLines[row] = spliceLine(baseLines[row], bl, x)
	}
	return strings.Join(baseLines, "\n")
}

// spliceLine overwrites the cells of line starting at column x with seg.
func spliceLine(line, seg string, x int) string {
	segW := ansi.StringWidth(seg)
	if segW == 0 {
		return line
	}

	left := ansi.Truncate(line, x, "")
	if pad := x - ansi.StringWidth(left); pad > 0 {
		left += spaces(pad)
	}
	right := ansi.TruncateLeft(line, x+segW, "")
	return left + seg + right
}

// renderHighlightFrame draws the highlight border around the handle's
// rectangle. Only the perimeter is drawn so the element underneath
// stays visible.
func renderHighlightFrame(base string, h *walkthrough.HighlightHandle, t Theme) string {
	if h == nil || !h.Drawn {
		return base
	}
	r := h.Rect
	if r.W < 2 || r.H < 2 {
		return base
	}

	style := t.TourFrame
	if h.PulseOn {
		style = t.TourPulse
	}

	top := style.Render("╭" + strings.Repeat("─", r.W-2) + "╮")
	bottom := style.Render("╰" + strings.Repeat("─", r.W-2) + "╯")
	side := style.Render("│")

	out := overlayBlock(base, top, r.X, r.Y)
	for row := r.Y + 1; row < r.Y+r.H-1; row++ {
		out = overlayBlock(out, side, r.X, row)
		out = overlayBlock(out, side, r.X+r.W-1, row)
	}
	return overlayBlock(out, bottom, r.X, r.Y+r.H-1)
}

// dimView strips colors and re-renders the whole frame faint, pulling
// focus to the tour overlay.
func dimView(base string, t Theme) string {
	faint := t.Renderer.NewStyle().Faint(true)
	lines := strings.Split(ansi.Strip(base), "\n")
	for i, l := range lines {
		lines[i] = faint.Render(l)
	}
	return strings.Join(lines, "\n")
}
