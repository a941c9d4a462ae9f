package ui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"

	"github.com/avanderveen/curio/pkg/api"
	"github.com/avanderveen/curio/pkg/profile"
	"github.com/avanderveen/curio/pkg/walkthrough"
)

func newTestModel(t *testing.T, opts Options) Model {
	t.Helper()
	m := NewModel(
		TestTheme(),
		api.NewClient("http://127.0.0.1:1", "test"),
		profile.NewMemory(nil),
		walkthrough.NewRegistry(),
		opts,
	)
	sized, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return sized.(Model)
}

func syncProfile(t *testing.T, m Model) Model {
	t.Helper()
	updated, _ := m.Update(profileLoadedMsg{
		snapshot: walkthrough.ProfileSnapshot{
			Completion: map[walkthrough.Page]bool{},
		},
	})
	return updated.(Model)
}

func key(s string) tea.KeyMsg {
	switch s {
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestTourAutoStartsAfterProfileSync(t *testing.T) {
	m := newTestModel(t, Options{})

	if m.tour.Active() {
		t.Fatal("tour must not start before the profile loads")
	}
	m = syncProfile(t, m)
	if !m.tour.Active() {
		t.Fatal("tour should auto-start on a fresh profile")
	}

	view := ansi.Strip(m.View())
	if !strings.Contains(view, "Welcome to curio") {
		t.Error("active tour should render the first step's tooltip")
	}
	if !strings.Contains(view, "Step 1 of") {
		t.Error("tooltip should show the step counter")
	}
}

func TestTourDisabledByOption(t *testing.T) {
	m := newTestModel(t, Options{TourDisabled: true})
	m = syncProfile(t, m)
	if m.tour.Active() {
		t.Error("TourDisabled must suppress auto-start")
	}
}

func TestManualStartWithW(t *testing.T) {
	m := newTestModel(t, Options{TourDisabled: true})
	m = syncProfile(t, m)

	updated, _ := m.Update(key("w"))
	m = updated.(Model)
	if !m.tour.Active() {
		t.Error("w should start the tour manually")
	}
}

func TestPageSwitchTearsDownTour(t *testing.T) {
	m := newTestModel(t, Options{})
	m = syncProfile(t, m)
	if !m.tour.Active() {
		t.Fatal("precondition: tour active")
	}

	updated, cmd := m.Update(key("2"))
	m = updated.(Model)

	if m.page != walkthrough.PageContacts {
		t.Fatalf("page = %s, want contacts", m.page)
	}
	if m.tour.Active() {
		t.Error("switching pages must tear down the running tour")
	}
	if cmd == nil {
		t.Error("page switch should hand the new engine a snapshot")
	}
}

func TestPageSwitchAutoStartsDestinationTour(t *testing.T) {
	m := newTestModel(t, Options{})
	m = syncProfile(t, m)

	updated, cmd := m.Update(key("2"))
	m = updated.(Model)

	// Deliver the snapshot the switch scheduled.
	if cmd == nil {
		t.Fatal("expected snapshot command")
	}
	updated, _ = m.Update(cmd())
	m = updated.(Model)

	if !m.tour.Active() {
		t.Error("contacts tour should auto-start on first visit")
	}
	view := ansi.Strip(m.View())
	if !strings.Contains(view, "Your contacts") {
		t.Error("contacts tour should show its first step")
	}
}

func TestToastRendersInStatusBar(t *testing.T) {
	m := newTestModel(t, Options{TourDisabled: true})

	updated, _ := m.Update(walkthrough.ToastMsg{Text: "Saved contact", IsError: false})
	m = updated.(Model)

	if !strings.Contains(ansi.Strip(m.View()), "Saved contact") {
		t.Error("toast text should appear in the status bar")
	}

	updated, _ = m.Update(clearToastMsg{})
	m = updated.(Model)
	if strings.Contains(ansi.Strip(m.View()), "Saved contact") {
		t.Error("toast should clear")
	}
}

func TestArrowKeysReachEngineWhileActive(t *testing.T) {
	m := newTestModel(t, Options{})
	m = syncProfile(t, m)

	updated, _ := m.Update(key("right"))
	m = updated.(Model)
	if m.tour.StepIndex() != 1 {
		t.Fatalf("step index = %d, want 1", m.tour.StepIndex())
	}

	updated, _ = m.Update(key("left"))
	m = updated.(Model)
	if m.tour.StepIndex() != 0 {
		t.Fatalf("step index = %d, want 0", m.tour.StepIndex())
	}
}

func TestQuitKeySuppressedDuringTextEntry(t *testing.T) {
	m := newTestModel(t, Options{TourDisabled: true})

	// Chat always captures text.
	updated, _ := m.Update(key("6"))
	m = updated.(Model)
	if m.page != walkthrough.PageChat {
		t.Fatalf("page = %s, want chat", m.page)
	}

	updated, cmd := m.Update(key("q"))
	m = updated.(Model)
	if cmd != nil {
		if _, isQuit := cmd().(tea.QuitMsg); isQuit {
			t.Error("q while composing chat must not quit")
		}
	}
}

func TestStatusBarShowsTourHints(t *testing.T) {
	m := newTestModel(t, Options{})
	m = syncProfile(t, m)

	view := ansi.Strip(m.View())
	if !strings.Contains(view, "esc skip page") {
		t.Error("active tour should advertise its keys in the status bar")
	}
}

func TestViewKeepsPageContentUnderTour(t *testing.T) {
	m := newTestModel(t, Options{})
	m = syncProfile(t, m)

	view := ansi.Strip(m.View())
	if !strings.Contains(view, "curio") {
		t.Error("nav bar should stay visible under the tour")
	}
	if !strings.Contains(view, "Overview") {
		t.Error("dashboard content should stay visible under the tour")
	}
}
