package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/avanderveen/curio/pkg/api"
	"github.com/avanderveen/curio/pkg/model"
	"github.com/avanderveen/curio/pkg/walkthrough"
)

// tagsModel lists tags and creates new ones inline.
type tagsModel struct {
	client *api.Client

	tags    []model.Tag
	cursor  int
	loaded  bool
	loadErr error

	input    textinput.Model
	creating bool
}

func newTagsModel(client *api.Client) tagsModel {
	input := textinput.New()
	input.Placeholder = "tag name"
	input.CharLimit = 32
	return tagsModel{client: client, input: input}
}

func (m tagsModel) Update(msg tea.Msg) (tagsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tagsLoadedMsg:
		if msg.err != nil {
			m.loadErr = msg.err
			return m, nil
		}
		m.tags = msg.tags
		m.loaded = true
		m.loadErr = nil
		if m.cursor >= len(m.tags) {
			m.cursor = 0
		}
		return m, nil

	case tagSavedMsg:
		if msg.err != nil {
			return m, toastErr(fmt.Sprintf("Could not create tag: %v", msg.err))
		}
		return m, tea.Batch(
			loadTagsCmd(m.client),
			toastInfo(fmt.Sprintf("Created tag %s", msg.tag.Name)),
		)

	case tea.KeyMsg:
		if m.creating {
			switch msg.String() {
			case "esc":
				m.creating = false
				m.input.Blur()
				m.input.SetValue("")
				return m, nil
			case "enter":
				name := strings.TrimSpace(m.input.Value())
				m.creating = false
				m.input.Blur()
				m.input.SetValue("")
				if name == "" {
					return m, nil
				}
				return m, saveTagCmd(m.client, model.Tag{Name: name})
			default:
				var cmd tea.Cmd
				m.input, cmd = m.input.Update(msg)
				return m, cmd
			}
		}

		switch msg.String() {
		case "a":
			m.creating = true
			return m, m.input.Focus()
		case "j", "down":
			if m.cursor < len(m.tags)-1 {
				m.cursor++
			}
		case "k", "up":
			if m.cursor > 0 {
				m.cursor--
			}
		}
	}
	return m, nil
}

func (m tagsModel) View(t Theme, width, height int) string {
	var b strings.Builder

	if m.creating {
		b.WriteString(PanelStyle.Width(min(width-2, 36)).Render("New tag: " + m.input.View()))
	} else {
		b.WriteString(t.MutedText.Render("a create tag"))
	}
	b.WriteString("\n")

	if m.loadErr != nil {
		b.WriteString(t.DangerText.Render(fmt.Sprintf("Could not load tags: %v", m.loadErr)))
		return b.String()
	}
	if !m.loaded {
		b.WriteString(t.MutedText.Render("loading…"))
		return b.String()
	}
	if len(m.tags) == 0 {
		b.WriteString(t.MutedText.Render("No tags yet."))
		return b.String()
	}

	for i, tag := range m.tags {
		if i >= height-3 {
			break
		}
		line := RenderTagBadge(tag.Name, tag.Color)
		if i == m.cursor {
			line = t.PrimaryBold.Render("> ") + line
		} else {
			line = "  " + line
		}
		b.WriteString(line)
		if i < len(m.tags)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

func (m tagsModel) Anchors(width, height int) []walkthrough.Anchor {
	listH := height - 2
	if listH < 3 {
		listH = 3
	}
	return []walkthrough.Anchor{
		{
			ID:      "wt-tags-create",
			Classes: []string{"hint"},
			Rect:    walkthrough.Rect{X: 0, Y: pageTop, W: min(width-2, 38), H: 1},
		},
		{
			ID:      "wt-tags-list",
			Classes: []string{"list"},
			Rect:    walkthrough.Rect{X: 0, Y: pageTop + 1, W: min(width-2, 40), H: listH},
		},
	}
}
