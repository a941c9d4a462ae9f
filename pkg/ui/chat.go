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

const chatComposeHeight = 3

// chatModel is the team chat page: message history plus a compose line.
type chatModel struct {
	client *api.Client

	messages []model.ChatMessage
	scroll   int
	loaded   bool
	loadErr  error

	compose textinput.Model
}

func newChatModel(client *api.Client) chatModel {
	compose := textinput.New()
	compose.Placeholder = "message your team"
	compose.CharLimit = 280
	compose.Focus()
	return chatModel{client: client, compose: compose}
}

func (c chatModel) Update(msg tea.Msg) (chatModel, tea.Cmd) {
	switch msg := msg.(type) {
	case chatLoadedMsg:
		if msg.err != nil {
			c.loadErr = msg.err
			return c, nil
		}
		c.messages = msg.messages
		c.loaded = true
		c.loadErr = nil
		c.scroll = 0 // newest at the bottom
		return c, nil

	case chatSentMsg:
		if msg.err != nil {
			return c, toastErr(fmt.Sprintf("Could not send: %v", msg.err))
		}
		c.messages = append(c.messages, msg.message)
		return c, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "enter":
			text := strings.TrimSpace(c.compose.Value())
			if text == "" {
				return c, nil
			}
			c.compose.SetValue("")
			return c, sendChatCmd(c.client, text)
		case "pgup":
			c.scroll++
			return c, nil
		case "pgdown":
			if c.scroll > 0 {
				c.scroll--
			}
			return c, nil
		}
		var cmd tea.Cmd
		c.compose, cmd = c.compose.Update(msg)
		return c, cmd
	}
	return c, nil
}

// ScrollTo brings the requested region into view for the tour.
func (c chatModel) ScrollTo(r walkthrough.Rect) chatModel {
	c.scroll = 0
	return c
}

func (c chatModel) View(t Theme, width, height int) string {
	var b strings.Builder

	historyH := height - chatComposeHeight - 1
	if historyH < 1 {
		historyH = 1
	}

	switch {
	case c.loadErr != nil:
		b.WriteString(t.DangerText.Render(fmt.Sprintf("Could not load chat: %v", c.loadErr)))
		b.WriteString("\n")
	case !c.loaded:
		b.WriteString(t.MutedText.Render("loading…"))
		b.WriteString("\n")
	default:
		// Show the newest window, offset by scroll pages.
		end := len(c.messages) - c.scroll*historyH
		if end > len(c.messages) {
			end = len(c.messages)
		}
		start := end - historyH
		if start < 0 {
			start = 0
		}
		if end < 0 {
			end = 0
		}
		for i := start; i < end; i++ {
			m := c.messages[i]
			line := fmt.Sprintf("%s %s %s",
				t.PrimaryBold.Render(m.Author),
				truncateCells(m.Text, width-24),
				t.MutedText.Render(FormatTimeRel(m.CreatedAt)))
			b.WriteString(line)
			b.WriteString("\n")
		}
	}

	b.WriteString(PanelStyle.Width(min(width-2, 60)).Render(c.compose.View()))
	return b.String()
}

func (c chatModel) Anchors(width, height int) []walkthrough.Anchor {
	historyH := height - chatComposeHeight - 1
	if historyH < 3 {
		historyH = 3
	}
	return []walkthrough.Anchor{
		{
			ID:      "wt-chat-messages",
			Classes: []string{"list"},
			Rect:    walkthrough.Rect{X: 0, Y: pageTop, W: min(width-2, 62), H: historyH},
		},
		{
			ID:      "wt-chat-compose",
			Classes: []string{"input"},
			Rect:    walkthrough.Rect{X: 0, Y: pageTop + historyH, W: min(width-2, 62), H: chatComposeHeight},
		},
	}
}
