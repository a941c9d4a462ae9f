package ui

import (
	"context"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/avanderveen/curio/pkg/api"
	"github.com/avanderveen/curio/pkg/model"
	"github.com/avanderveen/curio/pkg/walkthrough"
)

const requestTimeout = 15 * time.Second

// Messages produced by backend commands.

type contactsLoadedMsg struct {
	contacts []model.Contact
	err      error
}

type contactSavedMsg struct {
	contact model.Contact
	err     error
}

type contactsImportedMsg struct {
	count int
	err   error
}

type activitiesLoadedMsg struct {
	activities []model.Activity
	kind       model.ActivityKind // zero value means all
	err        error
}

type tagsLoadedMsg struct {
	tags []model.Tag
	err  error
}

type tagSavedMsg struct {
	tag model.Tag
	err error
}

type chatLoadedMsg struct {
	messages []model.ChatMessage
	err      error
}

type chatSentMsg struct {
	message model.ChatMessage
	err     error
}

type profileLoadedMsg struct {
	snapshot walkthrough.ProfileSnapshot
	err      error
}

type userLoadedMsg struct {
	user model.User
	err  error
}

type clearToastMsg struct{}

type stepsReloadedMsg struct {
	err error
}

// StepsReloaded is the message the host sends after re-reading the
// walkthrough step override file, successfully or not.
func StepsReloaded(err error) tea.Msg {
	return stepsReloadedMsg{err: err}
}

func reqCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), requestTimeout)
}

func loadContactsCmd(client *api.Client, query string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := reqCtx()
		defer cancel()
		contacts, err := client.Contacts(ctx, query)
		return contactsLoadedMsg{contacts: contacts, err: err}
	}
}

func saveContactCmd(client *api.Client, in model.Contact) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := reqCtx()
		defer cancel()
		saved, err := client.CreateContact(ctx, in)
		return contactSavedMsg{contact: saved, err: err}
	}
}

func importContactsCmd(client *api.Client, path string) tea.Cmd {
	return func() tea.Msg {
		f, err := os.Open(path)
		if err != nil {
			return contactsImportedMsg{err: err}
		}
		defer f.Close()
		ctx, cancel := reqCtx()
		defer cancel()
		n, err := client.ImportContacts(ctx, f)
		return contactsImportedMsg{count: n, err: err}
	}
}

func loadActivitiesCmd(client *api.Client, kind model.ActivityKind) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := reqCtx()
		defer cancel()
		activities, err := client.Activities(ctx, kind)
		return activitiesLoadedMsg{activities: activities, kind: kind, err: err}
	}
}

func loadTagsCmd(client *api.Client) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := reqCtx()
		defer cancel()
		tags, err := client.Tags(ctx)
		return tagsLoadedMsg{tags: tags, err: err}
	}
}

func saveTagCmd(client *api.Client, in model.Tag) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := reqCtx()
		defer cancel()
		saved, err := client.CreateTag(ctx, in)
		return tagSavedMsg{tag: saved, err: err}
	}
}

func loadChatCmd(client *api.Client) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := reqCtx()
		defer cancel()
		msgs, err := client.ChatMessages(ctx)
		return chatLoadedMsg{messages: msgs, err: err}
	}
}

func sendChatCmd(client *api.Client, text string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := reqCtx()
		defer cancel()
		sent, err := client.SendChatMessage(ctx, text)
		return chatSentMsg{message: sent, err: err}
	}
}

func loadUserCmd(client *api.Client) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := reqCtx()
		defer cancel()
		user, err := client.Me(ctx)
		return userLoadedMsg{user: user, err: err}
	}
}

// profileLoader is the optional initial-sync hook a store may offer
// beyond the ProfileStore interface. The remote store uses it to fall
// back to its local cache when the backend is unreachable.
type profileLoader interface {
	Load(ctx context.Context) (walkthrough.ProfileSnapshot, error)
}

func loadProfileCmd(store walkthrough.ProfileStore) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := reqCtx()
		defer cancel()
		if l, ok := store.(profileLoader); ok {
			snap, err := l.Load(ctx)
			return profileLoadedMsg{snapshot: snap, err: err}
		}
		snap, err := store.Refresh(ctx)
		return profileLoadedMsg{snapshot: snap, err: err}
	}
}

func clearToastAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg { return clearToastMsg{} })
}

// toastInfo and toastErr reuse the tour engine's toast message type for
// app-wide notifications, so the root model has a single toast path.
func toastInfo(text string) tea.Cmd {
	return func() tea.Msg { return walkthrough.ToastMsg{Text: text} }
}

func toastErr(text string) tea.Cmd {
	return func() tea.Msg { return walkthrough.ToastMsg{Text: text, IsError: true} }
}
