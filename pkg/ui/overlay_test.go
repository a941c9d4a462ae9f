package ui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"

	"github.com/avanderveen/curio/pkg/walkthrough"
)

func TestSpliceLinePlain(t *testing.T) {
	got := spliceLine("abcdefgh", "XY", 2)
	if got != "abXYefgh" {
		t.Errorf("splice = %q, want abXYefgh", got)
	}
}

func TestSpliceLinePadsShortLine(t *testing.T) {
	got := spliceLine("ab", "XY", 4)
	if got != "ab  XY" {
		t.Errorf("splice = %q, want %q", got, "ab  XY")
	}
}

func TestSpliceLineAtZero(t *testing.T) {
	got := spliceLine("abcdef", "XYZ", 0)
	if got != "XYZdef" {
		t.Errorf("splice = %q, want XYZdef", got)
	}
}

func TestSpliceLinePreservesStyledRemainder(t *testing.T) {
	styled := "\x1b[31mredredred\x1b[0m"
	got := spliceLine(styled, "XX", 3)
	if ansi.Strip(got) != "redXXdred" {
		t.Errorf("stripped splice = %q, want redXXdred", ansi.Strip(got))
	}
}

func TestOverlayBlock(t *testing.T) {
	base := "aaaa\nbbbb\ncccc"
	got := overlayBlock(base, "XX\nYY", 1, 1)
	want := "aaaa\nbXXb\ncYYc"
	if got != want {
		t.Errorf("overlay = %q, want %q", got, want)
	}
}

func TestOverlayBlockExtendsBase(t *testing.T) {
	got := overlayBlock("aaaa", "XX", 0, 2)
	lines := strings.Split(got, "\n")
	if len(lines) != 3 {
		t.Fatalf("expected base to grow to 3 lines, got %d", len(lines))
	}
	if lines[2] != "XX" {
		t.Errorf("line 2 = %q, want XX", lines[2])
	}
}

func TestRenderHighlightFramePerimeterOnly(t *testing.T) {
	base := strings.Join([]string{
		"..........",
		"..........",
		"..........",
		"..........",
	}, "\n")
	h := &walkthrough.HighlightHandle{
		Rect:  walkthrough.Rect{X: 1, Y: 0, W: 5, H: 3},
		Drawn: true,
	}
	got := ansi.Strip(renderHighlightFrame(base, h, TestTheme()))
	lines := strings.Split(got, "\n")

	if lines[0] != ".╭───╮...." {
		t.Errorf("top = %q", lines[0])
	}
	if lines[1] != ".│...│...." {
		t.Errorf("middle = %q: interior must stay visible", lines[1])
	}
	if lines[2] != ".╰───╯...." {
		t.Errorf("bottom = %q", lines[2])
	}
	if lines[3] != ".........." {
		t.Errorf("row below frame = %q: frame leaked", lines[3])
	}
}

func TestRenderHighlightFrameNilHandle(t *testing.T) {
	base := "unchanged"
	if got := renderHighlightFrame(base, nil, TestTheme()); got != base {
		t.Error("nil handle must leave the view untouched")
	}
	h := &walkthrough.HighlightHandle{Rect: walkthrough.Rect{W: 5, H: 3}}
	if got := renderHighlightFrame(base, h, TestTheme()); got != base {
		t.Error("undrawn handle must leave the view untouched")
	}
}

func TestDimViewStripsColor(t *testing.T) {
	base := "\x1b[31mhello\x1b[0m\nworld"
	got := dimView(base, TestTheme())
	if !strings.Contains(ansi.Strip(got), "hello") {
		t.Error("dimmed view lost its text")
	}
	if strings.Contains(got, "\x1b[31m") {
		t.Error("dimmed view kept the original color")
	}
}
