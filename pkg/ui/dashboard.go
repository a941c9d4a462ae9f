package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"gonum.org/v1/gonum/stat"

	"github.com/avanderveen/curio/pkg/model"
	"github.com/avanderveen/curio/pkg/walkthrough"
)

// pageTop is the first content row; row 0 is the navigation bar.
const pageTop = 1

const (
	dashStatsWidth  = 42
	dashStatsHeight = 7
)

// dashboardModel shows totals and the recent activity feed.
type dashboardModel struct {
	contactCount int
	tagCount     int
	activities   []model.Activity

	haveContacts   bool
	haveTags       bool
	haveActivities bool
	loadErr        error
}

func (d dashboardModel) Update(msg tea.Msg) (dashboardModel, tea.Cmd) {
	switch msg := msg.(type) {
	case contactsLoadedMsg:
		if msg.err == nil {
			d.contactCount = len(msg.contacts)
			d.haveContacts = true
		}
	case tagsLoadedMsg:
		if msg.err == nil {
			d.tagCount = len(msg.tags)
			d.haveTags = true
		}
	case activitiesLoadedMsg:
		if msg.err != nil {
			d.loadErr = msg.err
			break
		}
		if msg.kind == "" {
			d.activities = msg.activities
			d.haveActivities = true
			d.loadErr = nil
		}
	}
	return d, nil
}

// dailyAverage returns the mean number of activities per day over the
// trailing week.
func (d dashboardModel) dailyAverage() float64 {
	counts := make([]float64, 7)
	cutoff := time.Now().AddDate(0, 0, -7)
	for _, a := range d.activities {
		if a.OccurredAt.Before(cutoff) {
			continue
		}
		day := int(time.Since(a.OccurredAt).Hours() / 24)
		if day >= 0 && day < 7 {
			counts[day]++
		}
	}
	return stat.Mean(counts, nil)
}

func (d dashboardModel) View(t Theme, width, height int) string {
	var b strings.Builder

	b.WriteString(d.renderStats(t, width))
	b.WriteString("\n")
	b.WriteString(d.renderRecent(t, width, height-dashStatsHeight-1))

	return b.String()
}

func (d dashboardModel) renderStats(t Theme, width int) string {
	w := dashStatsWidth
	if w > width-2 {
		w = width - 2
	}

	var lines []string
	lines = append(lines, t.PrimaryBold.Render("Overview"))
	if !d.haveContacts && !d.haveActivities {
		lines = append(lines, t.MutedText.Render("loading…"))
	} else {
		lines = append(lines, fmt.Sprintf("Contacts    %d", d.contactCount))
		lines = append(lines, fmt.Sprintf("Activities  %d", len(d.activities)))
		lines = append(lines, fmt.Sprintf("Tags        %d", d.tagCount))
		avg := d.dailyAverage()
		lines = append(lines, fmt.Sprintf("Avg/day     %.1f %s", avg, RenderMiniBar(avg/10, 10, t)))
	}

	return PanelStyle.Width(w).Height(dashStatsHeight - 2).Render(strings.Join(lines, "\n"))
}

func (d dashboardModel) renderRecent(t Theme, width, height int) string {
	var b strings.Builder
	b.WriteString(t.PrimaryBold.Render("Recent activity"))
	b.WriteString("\n")

	if len(d.activities) == 0 {
		b.WriteString(t.MutedText.Render("Nothing logged yet."))
		return b.String()
	}

	max := height - 1
	if max < 1 {
		max = 1
	}
	for i, a := range d.activities {
		if i >= max {
			break
		}
		line := fmt.Sprintf("%s %s %s",
			RenderKindBadge(string(a.Kind)),
			padCells(a.Subject, 40),
			t.MutedText.Render(FormatTimeRel(a.OccurredAt)))
		b.WriteString(ansi.Truncate(line, width-2, ""))
		if i < max-1 && i < len(d.activities)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

func (d dashboardModel) Anchors(width, height int) []walkthrough.Anchor {
	statsW := dashStatsWidth
	if statsW > width-2 {
		statsW = width - 2
	}
	recentH := height - dashStatsHeight - 1
	if recentH < 3 {
		recentH = 3
	}
	return []walkthrough.Anchor{
		{
			ID:      "wt-dash-stats",
			Classes: []string{"panel"},
			Rect:    walkthrough.Rect{X: 0, Y: pageTop, W: statsW, H: dashStatsHeight},
		},
		{
			ID:      "wt-dash-recent",
			Classes: []string{"panel"},
			Rect:    walkthrough.Rect{X: 0, Y: pageTop + dashStatsHeight + 1, W: min(width-2, 54), H: recentH},
		},
	}
}
