package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"

	"github.com/avanderveen/curio/pkg/api"
	"github.com/avanderveen/curio/pkg/model"
	"github.com/avanderveen/curio/pkg/walkthrough"
)

const activitiesFilterHeight = 1

// kindFilters is the cycle order for the f key; "" means all kinds.
var kindFilters = []model.ActivityKind{
	"",
	model.ActivityCall,
	model.ActivityEmail,
	model.ActivityMeeting,
	model.ActivityNote,
}

// activitiesModel is the reverse-chronological activity timeline.
type activitiesModel struct {
	client *api.Client

	activities []model.Activity
	filterIdx  int
	cursor     int
	scroll     int
	loaded     bool
	loadErr    error
}

func newActivitiesModel(client *api.Client) activitiesModel {
	return activitiesModel{client: client}
}

func (a activitiesModel) filter() model.ActivityKind {
	return kindFilters[a.filterIdx]
}

func (a activitiesModel) Update(msg tea.Msg) (activitiesModel, tea.Cmd) {
	switch msg := msg.(type) {
	case activitiesLoadedMsg:
		if msg.err != nil {
			a.loadErr = msg.err
			return a, nil
		}
		if msg.kind != a.filter() {
			// Stale response from a previous filter.
			return a, nil
		}
		a.activities = msg.activities
		a.loaded = true
		a.loadErr = nil
		if a.cursor >= len(a.activities) {
			a.cursor = 0
			a.scroll = 0
		}
		return a, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "f":
			a.filterIdx = (a.filterIdx + 1) % len(kindFilters)
			a.cursor = 0
			a.scroll = 0
			return a, loadActivitiesCmd(a.client, a.filter())
		case "j", "down":
			if a.cursor < len(a.activities)-1 {
				a.cursor++
			}
		case "k", "up":
			if a.cursor > 0 {
				a.cursor--
			}
		}
	}
	return a, nil
}

// ScrollTo adjusts the list offset so the given rectangle is visible.
// Called by the root model when the tour asks for a scroll.
func (a activitiesModel) ScrollTo(r walkthrough.Rect) activitiesModel {
	if r.Y < pageTop+activitiesFilterHeight {
		a.scroll = 0
		return a
	}
	a.scroll = r.Y - pageTop - activitiesFilterHeight
	if a.scroll < 0 {
		a.scroll = 0
	}
	return a
}

func (a activitiesModel) View(t Theme, width, height int) string {
	var b strings.Builder

	label := "all"
	if a.filter() != "" {
		label = string(a.filter())
	}
	b.WriteString(t.SecondaryText.Render("filter: "))
	b.WriteString(t.PrimaryBold.Render(label))
	b.WriteString(t.MutedText.Render("  (f to cycle)"))
	b.WriteString("\n")

	if a.loadErr != nil {
		b.WriteString(t.DangerText.Render(fmt.Sprintf("Could not load activities: %v", a.loadErr)))
		return b.String()
	}
	if !a.loaded {
		b.WriteString(t.MutedText.Render("loading…"))
		return b.String()
	}
	if len(a.activities) == 0 {
		b.WriteString(t.MutedText.Render("No activities yet. Log one from a contact with l."))
		return b.String()
	}

	visible := height - activitiesFilterHeight - 1
	if visible < 1 {
		visible = 1
	}

	// Keep the cursor on screen.
	scroll := a.scroll
	if a.cursor < scroll {
		scroll = a.cursor
	}
	if a.cursor >= scroll+visible {
		scroll = a.cursor - visible + 1
	}

	for i := scroll; i < len(a.activities) && i < scroll+visible; i++ {
		act := a.activities[i]
		line := fmt.Sprintf("%s %s %s",
			RenderKindBadge(string(act.Kind)),
			padCells(act.Subject, 44),
			t.MutedText.Render(FormatTimeRel(act.OccurredAt)))
		if i == a.cursor {
			line = t.Selected.Render(ansi.Truncate(line, width-4, ""))
		} else {
			line = " " + ansi.Truncate(line, width-3, "")
		}
		b.WriteString(line)
		if i < len(a.activities)-1 && i < scroll+visible-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

func (a activitiesModel) Anchors(width, height int) []walkthrough.Anchor {
	listH := height - activitiesFilterHeight - 1
	if listH < 3 {
		listH = 3
	}
	return []walkthrough.Anchor{
		{
			ID:      "wt-activities-filter",
			Classes: []string{"filter"},
			Rect:    walkthrough.Rect{X: 0, Y: pageTop, W: min(width-2, 30), H: activitiesFilterHeight},
		},
		{
			ID:      "wt-activities-list",
			Classes: []string{"list"},
			Rect:    walkthrough.Rect{X: 0, Y: pageTop + activitiesFilterHeight, W: min(width-2, 60), H: listH},
		},
	}
}
