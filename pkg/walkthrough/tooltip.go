package walkthrough

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

// Tooltip rendering. The tooltip is a fixed-footprint box the placement
// engine positions; its content is the step title, the description
// rendered as markdown, a step counter and the navigation hints.

type tooltipRenderer struct {
	fp Size
	md *glamour.TermRenderer
}

func newTooltipRenderer(fp Size) tooltipRenderer {
	// Word-wrap inside the border and padding. A nil renderer falls
	// back to raw text.
	md, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(fp.W-6),
	)
	if err != nil {
		md = nil
	}
	return tooltipRenderer{fp: fp, md: md}
}

var (
	tooltipBorder  = lipgloss.AdaptiveColor{Light: "#7e3ff2", Dark: "#9d7cd8"}
	tooltipTitle   = lipgloss.AdaptiveColor{Light: "#1a1a2e", Dark: "#c0caf5"}
	tooltipCounter = lipgloss.AdaptiveColor{Light: "#6b6b7b", Dark: "#565f89"}
	tooltipHintKey = lipgloss.AdaptiveColor{Light: "#7e3ff2", Dark: "#bb9af7"}
	tooltipHint    = lipgloss.AdaptiveColor{Light: "#6b6b7b", Dark: "#565f89"}
)

// View renders the tooltip for the current step, or an empty string when
// the tour is not active.
func (e Engine) View() string {
	step, ok := e.CurrentStep()
	if !ok {
		return ""
	}
	return e.tooltip.render(step, e.idx, len(e.steps), e.persisting)
}

func (t tooltipRenderer) render(step Step, idx, total int, persisting bool) string {
	innerWidth := t.fp.W - 4 // border + padding

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(tooltipTitle)
	counterStyle := lipgloss.NewStyle().Foreground(tooltipCounter)

	var b strings.Builder
	b.WriteString(titleStyle.Render(step.Title))
	b.WriteString("\n")
	b.WriteString(counterStyle.Render(fmt.Sprintf("Step %d of %d", idx+1, total)))
	b.WriteString("\n")
	b.WriteString(t.renderDescription(step))
	b.WriteString("\n")
	b.WriteString(t.renderHints(step, persisting))

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(tooltipBorder).
		Padding(0, 1).
		Width(innerWidth + 2).
		MaxHeight(t.fp.H)

	return box.Render(b.String())
}

func (t tooltipRenderer) renderDescription(step Step) string {
	desc := step.Description
	if step.IsNavigation() && step.NavigationTarget != "" {
		desc += fmt.Sprintf("\n\n*Takes you to: %s*", step.NavigationTarget)
	}
	if t.md == nil {
		return desc
	}
	rendered, err := t.md.Render(desc)
	if err != nil {
		return desc
	}
	return strings.TrimRight(strings.Trim(rendered, "\n"), " ")
}

// renderHints shows the controls that apply to the step. Navigation
// steps suppress Next/Back — the user advances by interacting with the
// highlighted element — but skipping stays available at all times. While
// a persistence write is in flight all controls are disabled so a rapid
// second press cannot double-fire the write.
func (t tooltipRenderer) renderHints(step Step, persisting bool) string {
	keyStyle := lipgloss.NewStyle().Bold(true).Foreground(tooltipHintKey)
	descStyle := lipgloss.NewStyle().Foreground(tooltipHint)

	if persisting {
		return descStyle.Render("Saving…")
	}

	var hints []string
	if !step.IsNavigation() {
		hints = append(hints,
			keyStyle.Render("←")+descStyle.Render(" back"),
			keyStyle.Render("→")+descStyle.Render(" next"),
		)
	}
	hints = append(hints,
		keyStyle.Render("esc")+descStyle.Render(" skip page"),
		keyStyle.Render("S")+descStyle.Render(" skip all"),
	)
	return strings.Join(hints, descStyle.Render(" · "))
}
