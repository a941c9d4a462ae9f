package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"

	"github.com/avanderveen/curio/pkg/api"
	"github.com/avanderveen/curio/pkg/walkthrough"
)

const (
	navBarPrefixWidth = 9 // " curio │ "
	navBarGap         = 2
	toastDuration     = 4 * time.Second
)

// tourResetMsg reports that a page's completion flag was cleared so its
// tour can replay.
type tourResetMsg struct {
	page walkthrough.Page
}

// Options configures the root model.
type Options struct {
	StartPage    walkthrough.Page
	TourDisabled bool
	ImportPath   string // CSV file the I key imports on the contacts page
}

// layoutRef shares the current anchor set with the tour engine's
// document source. The engine resolves targets lazily; the root updates
// the ref on every size or page change so resolution sees fresh
// rectangles.
type layoutRef struct {
	anchors []walkthrough.Anchor
}

// Model is the root bubbletea model: navigation, the six pages, the
// toast line and the walkthrough engine.
type Model struct {
	theme    Theme
	client   *api.Client
	store    walkthrough.ProfileStore
	registry *walkthrough.Registry
	opts     Options

	page       walkthrough.Page
	dashboard  dashboardModel
	contacts   contactsModel
	activities activitiesModel
	tags       tagsModel
	profile    profileModel
	chat       chatModel

	tour   walkthrough.Engine
	layout *layoutRef

	width  int
	height int

	toast      string
	toastIsErr bool
}

// NewModel assembles the root model. The walkthrough engine for the
// start page is created immediately; engines for other pages are
// created on navigation.
func NewModel(theme Theme, client *api.Client, store walkthrough.ProfileStore, registry *walkthrough.Registry, opts Options) Model {
	if !walkthrough.KnownPage(opts.StartPage) {
		opts.StartPage = walkthrough.PageDashboard
	}

	m := Model{
		theme:      theme,
		client:     client,
		store:      store,
		registry:   registry,
		opts:       opts,
		page:       opts.StartPage,
		dashboard:  dashboardModel{},
		contacts:   newContactsModel(client),
		activities: newActivitiesModel(client),
		tags:       newTagsModel(client),
		profile:    profileModel{},
		chat:       newChatModel(client),
		layout:     &layoutRef{},
	}
	m.tour = m.newEngine(opts.StartPage)
	return m
}

func (m Model) newEngine(page walkthrough.Page) walkthrough.Engine {
	layout := m.layout
	doc := func() walkthrough.Document { return buildDocument(layout.anchors) }
	return walkthrough.New(page, m.registry, m.store, doc,
		walkthrough.WithAutoStart(!m.opts.TourDisabled))
}

// Init loads everything the pages need plus the profile flags.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		loadContactsCmd(m.client, ""),
		loadActivitiesCmd(m.client, ""),
		loadTagsCmd(m.client),
		loadChatCmd(m.client),
		loadUserCmd(m.client),
		loadProfileCmd(m.store),
	)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.refreshLayout()
		var cmd tea.Cmd
		m.tour, cmd = m.tour.SetViewport(msg.Width, msg.Height)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)

	case walkthrough.ToastMsg:
		m.toast = msg.Text
		m.toastIsErr = msg.IsError
		return m, clearToastAfter(toastDuration)

	case clearToastMsg:
		m.toast = ""
		return m, nil

	case walkthrough.ScrollRequestMsg:
		m.scrollCurrent(msg.Target)
		m.refreshLayout()
		return m, nil

	case walkthrough.FinishedMsg:
		// Persistence already confirmed; the toast rides alongside.
		m.profile = m.profile.setSnapshot(m.store.Snapshot())
		return m, nil

	case profileLoadedMsg:
		m.profile, _ = m.profile.Update(msg)
		if msg.err != nil {
			cmds = append(cmds, toastErr("Profile sync failed; tours may not remember progress"))
		}
		m.refreshLayout()
		var cmd tea.Cmd
		m.tour, cmd = m.tour.Update(walkthrough.SnapshotMsg{Snapshot: msg.snapshot})
		cmds = append(cmds, cmd)
		return m, tea.Batch(cmds...)

	case restartTourMsg:
		m = m.switchPage(msg.page)
		store := m.store
		page := msg.page
		return m, func() tea.Msg {
			ctx, cancel := reqCtx()
			defer cancel()
			if err := store.SetPageCompletion(ctx, page, false); err != nil {
				return walkthrough.ToastMsg{Text: fmt.Sprintf("Could not reset tour: %v", err), IsError: true}
			}
			return tourResetMsg{page: page}
		}

	case tourResetMsg:
		m.profile = m.profile.setSnapshot(m.store.Snapshot())
		m.refreshLayout()
		var cmd tea.Cmd
		m.tour, cmd = m.tour.Update(walkthrough.StartMsg{})
		return m, cmd

	case stepsReloadedMsg:
		if msg.err != nil {
			return m, toastErr(fmt.Sprintf("Step override reload failed: %v", msg.err))
		}
		return m, toastInfo("Walkthrough steps reloaded")
	}

	// Data messages fan out to the pages that care; the engine sees
	// everything else (its own internal ticks included).
	m = m.routeToPages(msg, &cmds)

	m.refreshLayout()
	var cmd tea.Cmd
	m.tour, cmd = m.tour.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// tourKeys are consumed by the engine while a tour is active. Everything
// else keeps working underneath the tour, page navigation included.
func tourKey(s string) bool {
	switch s {
	case "esc", "left", "right", "S":
		return true
	}
	return false
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if key == "ctrl+c" || (key == "q" && !m.textEntryActive()) {
		m.tour = m.tour.Teardown()
		return m, tea.Quit
	}

	if m.tour.Active() && tourKey(key) {
		m.refreshLayout()
		var cmd tea.Cmd
		m.tour, cmd = m.tour.Update(msg)
		return m, cmd
	}

	if !m.textEntryActive() {
		switch key {
		case "1", "2", "3", "4", "5", "6":
			pages := walkthrough.Pages()
			idx := int(key[0] - '1')
			if idx < len(pages) {
				m = m.switchPage(pages[idx])
				return m, m.pageSnapshotCmd()
			}
		case "w":
			m.refreshLayout()
			var cmd tea.Cmd
			m.tour, cmd = m.tour.Update(walkthrough.StartMsg{})
			return m, cmd
		case "I":
			if m.page == walkthrough.PageContacts && m.opts.ImportPath != "" {
				return m, importContactsCmd(m.client, m.opts.ImportPath)
			}
		}
	}

	var cmds []tea.Cmd
	m = m.routeKeyToPage(msg, &cmds)

	// Navigation steps advance when the promised key is pressed
	// elsewhere; the engine notices the page change via switchPage.
	return m, tea.Batch(cmds...)
}

// textEntryActive reports whether a page is currently capturing typed
// text, so global single-letter shortcuts stay out of the way.
func (m Model) textEntryActive() bool {
	switch m.page {
	case walkthrough.PageContacts:
		return m.contacts.searching || m.contacts.form != nil
	case walkthrough.PageTags:
		return m.tags.creating
	case walkthrough.PageChat:
		return true // compose is always focused
	}
	return false
}

// switchPage tears down the active tour (a tour never survives leaving
// its page) and builds a fresh engine for the destination.
func (m Model) switchPage(page walkthrough.Page) Model {
	if page == m.page {
		return m
	}
	m.tour = m.tour.Teardown()
	m.page = page
	m.tour = m.newEngine(page)
	if m.width > 0 {
		m.tour, _ = m.tour.SetViewport(m.width, m.height)
	}
	m.refreshLayout()
	return m
}

// pageSnapshotCmd hands the new page's engine the current profile
// snapshot so auto-start gating can run.
func (m Model) pageSnapshotCmd() tea.Cmd {
	snap := m.store.Snapshot()
	return func() tea.Msg { return walkthrough.SnapshotMsg{Snapshot: snap} }
}

func (m Model) routeKeyToPage(msg tea.KeyMsg, cmds *[]tea.Cmd) Model {
	var cmd tea.Cmd
	switch m.page {
	case walkthrough.PageDashboard:
		m.dashboard, cmd = m.dashboard.Update(msg)
	case walkthrough.PageContacts:
		m.contacts, cmd = m.contacts.Update(msg)
	case walkthrough.PageActivities:
		m.activities, cmd = m.activities.Update(msg)
	case walkthrough.PageTags:
		m.tags, cmd = m.tags.Update(msg)
	case walkthrough.PageProfile:
		m.profile, cmd = m.profile.Update(msg)
	case walkthrough.PageChat:
		m.chat, cmd = m.chat.Update(msg)
	}
	*cmds = append(*cmds, cmd)
	return m
}

func (m Model) routeToPages(msg tea.Msg, cmds *[]tea.Cmd) Model {
	var cmd tea.Cmd
	switch msg.(type) {
	case contactsLoadedMsg, contactSavedMsg, contactsImportedMsg:
		m.contacts, cmd = m.contacts.Update(msg)
		*cmds = append(*cmds, cmd)
		m.dashboard, _ = m.dashboard.Update(msg)
	case activitiesLoadedMsg:
		m.activities, cmd = m.activities.Update(msg)
		*cmds = append(*cmds, cmd)
		m.dashboard, _ = m.dashboard.Update(msg)
	case tagsLoadedMsg, tagSavedMsg:
		m.tags, cmd = m.tags.Update(msg)
		*cmds = append(*cmds, cmd)
		m.dashboard, _ = m.dashboard.Update(msg)
	case chatLoadedMsg, chatSentMsg:
		m.chat, cmd = m.chat.Update(msg)
		*cmds = append(*cmds, cmd)
	case userLoadedMsg:
		m.profile, cmd = m.profile.Update(msg)
		*cmds = append(*cmds, cmd)
	}
	return m
}

// scrollCurrent forwards a tour scroll request to pages that scroll.
func (m *Model) scrollCurrent(target walkthrough.Rect) {
	switch m.page {
	case walkthrough.PageActivities:
		m.activities = m.activities.ScrollTo(target)
	case walkthrough.PageChat:
		m.chat = m.chat.ScrollTo(target)
	}
}

// refreshLayout rebuilds the anchor set the engine resolves against.
func (m *Model) refreshLayout() {
	if m.width == 0 {
		return
	}
	anchors := navAnchors(m.width)
	anchors = append(anchors, m.currentAnchors()...)
	m.layout.anchors = anchors
}

func (m Model) currentAnchors() []walkthrough.Anchor {
	w, h := m.width, m.contentHeight()
	switch m.page {
	case walkthrough.PageDashboard:
		return m.dashboard.Anchors(w, h)
	case walkthrough.PageContacts:
		return m.contacts.Anchors(w, h)
	case walkthrough.PageActivities:
		return m.activities.Anchors(w, h)
	case walkthrough.PageTags:
		return m.tags.Anchors(w, h)
	case walkthrough.PageProfile:
		return m.profile.Anchors(w, h)
	case walkthrough.PageChat:
		return m.chat.Anchors(w, h)
	}
	return nil
}

// contentHeight is the rows available to the page: everything between
// the nav bar and the status line.
func (m Model) contentHeight() int {
	h := m.height - 2
	if h < 3 {
		h = 3
	}
	return h
}

func navLabel(p walkthrough.Page) string {
	return string(p)
}

func (m Model) renderNavBar() string {
	var b strings.Builder
	b.WriteString(m.theme.PrimaryBold.Render(" curio"))
	b.WriteString(m.theme.MutedText.Render(" │ "))
	for i, p := range walkthrough.Pages() {
		label := fmt.Sprintf("%d %s", i+1, navLabel(p))
		if p == m.page {
			b.WriteString(m.theme.PrimaryBold.Render(label))
		} else {
			b.WriteString(m.theme.SecondaryText.Render(label))
		}
		b.WriteString(strings.Repeat(" ", navBarGap))
	}
	return ansi.Truncate(b.String(), m.width, "")
}

func (m Model) renderStatusBar() string {
	if m.toast != "" {
		style := m.theme.SuccessText
		if m.toastIsErr {
			style = m.theme.DangerText
		}
		return style.Render(truncateCells(m.toast, m.width))
	}
	hint := "1-6 pages · w tour · q quit"
	if m.tour.Active() {
		hint = "←/→ steps · esc skip page · S skip all"
	}
	return m.theme.MutedText.Render(truncateCells(hint, m.width))
}

func (m Model) View() string {
	if m.width == 0 {
		return "loading…"
	}

	var body string
	w, h := m.width, m.contentHeight()
	switch m.page {
	case walkthrough.PageDashboard:
		body = m.dashboard.View(m.theme, w, h)
	case walkthrough.PageContacts:
		body = m.contacts.View(m.theme, w, h)
	case walkthrough.PageActivities:
		body = m.activities.View(m.theme, w, h)
	case walkthrough.PageTags:
		body = m.tags.View(m.theme, w, h)
	case walkthrough.PageProfile:
		body = m.profile.View(m.theme, w, h)
	case walkthrough.PageChat:
		body = m.chat.View(m.theme, w, h)
	}

	frame := m.renderNavBar() + "\n" + body
	frame = padFrame(frame, m.height-1)
	frame += "\n" + m.renderStatusBar()

	if m.tour.Active() {
		frame = dimView(frame, m.theme)
		frame = renderHighlightFrame(frame, m.tour.Highlight(), m.theme)
		pos := m.tour.TooltipPos()
		frame = overlayBlock(frame, m.tour.View(), pos.X, pos.Y)
	}
	return frame
}

// padFrame grows the frame to exactly rows lines so the status bar
// lands on the bottom row.
func padFrame(s string, rows int) string {
	lines := strings.Count(s, "\n") + 1
	if lines >= rows {
		return s
	}
	return s + strings.Repeat("\n", rows-lines)
}
