package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/avanderveen/curio/pkg/model"
	"github.com/avanderveen/curio/pkg/walkthrough"
)

const profileDetailsHeight = 6

// restartTourMsg asks the root model to clear a page's completion flag
// and replay its tour.
type restartTourMsg struct {
	page walkthrough.Page
}

// profileModel shows the signed-in user and per-page tour progress.
type profileModel struct {
	user     model.User
	haveUser bool
	loadErr  error

	snapshot walkthrough.ProfileSnapshot
	cursor   int
}

func (p profileModel) Update(msg tea.Msg) (profileModel, tea.Cmd) {
	switch msg := msg.(type) {
	case userLoadedMsg:
		if msg.err != nil {
			p.loadErr = msg.err
			return p, nil
		}
		p.user = msg.user
		p.haveUser = true
		p.loadErr = nil
		return p, nil

	case profileLoadedMsg:
		p.snapshot = msg.snapshot
		return p, nil

	case tea.KeyMsg:
		pages := walkthrough.Pages()
		switch msg.String() {
		case "j", "down":
			if p.cursor < len(pages)-1 {
				p.cursor++
			}
		case "k", "up":
			if p.cursor > 0 {
				p.cursor--
			}
		case "r":
			page := pages[p.cursor]
			return p, func() tea.Msg { return restartTourMsg{page: page} }
		}
	}
	return p, nil
}

// setSnapshot keeps the tour progress table current.
func (p profileModel) setSnapshot(snap walkthrough.ProfileSnapshot) profileModel {
	p.snapshot = snap
	return p
}

func (p profileModel) View(t Theme, width, height int) string {
	var b strings.Builder

	var details []string
	details = append(details, t.PrimaryBold.Render("Account"))
	switch {
	case p.loadErr != nil:
		details = append(details, t.DangerText.Render(fmt.Sprintf("unavailable: %v", p.loadErr)))
	case !p.haveUser:
		details = append(details, t.MutedText.Render("loading…"))
	default:
		details = append(details, "Name       "+p.user.Name)
		details = append(details, "Email      "+p.user.Email)
		if p.user.Workspace != "" {
			details = append(details, "Workspace  "+p.user.Workspace)
		}
	}
	b.WriteString(PanelStyle.Width(min(width-2, 44)).Height(profileDetailsHeight - 2).Render(strings.Join(details, "\n")))
	b.WriteString("\n")

	b.WriteString(t.PrimaryBold.Render("Tours"))
	b.WriteString("\n")
	for i, page := range walkthrough.Pages() {
		status := t.MutedText.Render("not started")
		if p.snapshot.Completed(page) {
			status = t.SuccessText.Render("done")
		}
		line := fmt.Sprintf("%s %s", padCells(string(page), 12), status)
		if i == p.cursor {
			line = t.PrimaryBold.Render("> ") + line
		} else {
			line = "  " + line
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	b.WriteString(t.MutedText.Render("r restart selected tour"))

	return b.String()
}

func (p profileModel) Anchors(width, height int) []walkthrough.Anchor {
	toursH := len(walkthrough.Pages()) + 2
	return []walkthrough.Anchor{
		{
			ID:      "wt-profile-details",
			Classes: []string{"panel"},
			Rect:    walkthrough.Rect{X: 0, Y: pageTop, W: min(width-2, 46), H: profileDetailsHeight},
		},
		{
			ID:      "wt-profile-tours",
			Classes: []string{"list"},
			Rect:    walkthrough.Rect{X: 0, Y: pageTop + profileDetailsHeight + 1, W: min(width-2, 40), H: toursH},
		},
	}
}
