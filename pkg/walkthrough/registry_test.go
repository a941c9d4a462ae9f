package walkthrough

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
)

func TestDefaultRegistryValidates(t *testing.T) {
	if err := NewRegistry().Validate(); err != nil {
		t.Fatalf("built-in registry must validate: %v", err)
	}
}

func TestEveryPageHasSteps(t *testing.T) {
	r := NewRegistry()
	for _, p := range Pages() {
		steps := r.Steps(p)
		if len(steps) == 0 {
			t.Errorf("page %s has no walkthrough", p)
			continue
		}
		last := steps[len(steps)-1]
		if !last.Targetless() {
			t.Errorf("page %s: last step %s should be targetless (centered closing step)", p, last.ID)
		}
	}
}

func TestStepsReturnsCopy(t *testing.T) {
	r := NewRegistry()
	steps := r.Steps(PageContacts)
	steps[0].Title = "mutated"
	if r.Steps(PageContacts)[0].Title == "mutated" {
		t.Error("Steps must return a copy, not registry state")
	}
}

func TestStepsUnknownPage(t *testing.T) {
	r := NewRegistry()
	if got := r.Steps(Page("bogus")); got != nil {
		t.Errorf("unknown page should yield nil, got %v", got)
	}
}

func TestValidateRejectsBadRegistry(t *testing.T) {
	cases := []struct {
		name  string
		pages map[Page][]Step
	}{
		{"unknown page", withPage("nopage", []Step{{ID: "a", Title: "A"}})},
		{"empty sequence", withPage(string(PageChat), nil)},
		{"duplicate ids", withPage(string(PageChat), []Step{
			{ID: "a", Title: "A"}, {ID: "a", Title: "B"},
		})},
		{"invalid position", withPage(string(PageChat), []Step{
			{ID: "a", Title: "A", Position: Position("sideways")},
		})},
		{"missing title", withPage(string(PageChat), []Step{{ID: "a"}})},
	}
	for _, tc := range cases {
		r := &Registry{pages: tc.pages}
		if err := r.Validate(); err == nil {
			t.Errorf("%s: expected validation error", tc.name)
		}
	}
}

func withPage(name string, steps []Step) map[Page][]Step {
	pages := defaultSteps()
	pages[Page(name)] = steps
	return pages
}

func TestLoadOverridesReplacesSinglePage(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "walkthrough.yaml")
	override := `
chat:
  - id: custom-1
    title: Custom chat intro
    description: Overridden step.
    target: wt-chat-messages
    position: right
  - id: custom-2
    title: Custom finish
    description: Done.
`
	if err := os.WriteFile(path, []byte(override), 0o644); err != nil {
		t.Fatal(err)
	}

	r := NewRegistry()
	originalContacts := r.Steps(PageContacts)
	if err := r.LoadOverrides(path); err != nil {
		t.Fatalf("LoadOverrides: %v", err)
	}

	chat := r.Steps(PageChat)
	if len(chat) != 2 || chat[0].ID != "custom-1" {
		t.Errorf("chat steps not overridden: %+v", chat)
	}
	if got := r.Steps(PageContacts); len(got) != len(originalContacts) {
		t.Error("pages absent from the override file must keep built-in steps")
	}
}

func TestLoadOverridesRejectsInvalid(t *testing.T) {
	dir := t.TempDir()

	cases := []struct {
		name    string
		content string
	}{
		{"unknown page", "settings:\n  - id: a\n    title: A\n"},
		{"duplicate ids", "chat:\n  - id: a\n    title: A\n  - id: a\n    title: B\n"},
		{"not yaml", "{{{"},
	}
	for _, tc := range cases {
		path := filepath.Join(dir, tc.name+".yaml")
		if err := os.WriteFile(path, []byte(tc.content), 0o644); err != nil {
			t.Fatal(err)
		}
		r := NewRegistry()
		if err := r.LoadOverrides(path); err == nil {
			t.Errorf("%s: expected error", tc.name)
		}
		// A rejected override must leave the registry untouched.
		if err := r.Validate(); err != nil {
			t.Errorf("%s: registry corrupted by rejected override: %v", tc.name, err)
		}
	}
}

// The file watcher reloads overrides on its own goroutine while the UI
// goroutine keeps reading step sequences. Meant for the race detector.
func TestConcurrentReloadAndSteps(t *testing.T) {
	override := []byte("chat:\n  - id: live-1\n    title: Live intro\n    description: Reloaded.\n")
	r := NewRegistry()

	var wg sync.WaitGroup
	start := make(chan struct{})
	wg.Add(2)
	go func() {
		defer wg.Done()
		<-start
		for i := 0; i < 200; i++ {
			if err := r.applyOverrides(override); err != nil {
				t.Errorf("applyOverrides: %v", err)
				return
			}
		}
	}()
	go func() {
		defer wg.Done()
		<-start
		for i := 0; i < 200; i++ {
			for _, p := range Pages() {
				if len(r.Steps(p)) == 0 {
					t.Errorf("page %s lost its steps mid-reload", p)
					return
				}
			}
		}
	}()
	close(start)
	wg.Wait()
}

func TestLoadOverridesMissingFile(t *testing.T) {
	r := NewRegistry()
	if err := r.LoadOverrides(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestParsePage(t *testing.T) {
	for _, p := range Pages() {
		got, err := ParsePage(string(p))
		if err != nil || got != p {
			t.Errorf("ParsePage(%q) = %v, %v", p, got, err)
		}
	}
	if _, err := ParsePage("settings"); err == nil {
		t.Error("expected error for unknown page")
	}
}

func TestSnapshotAllCompleted(t *testing.T) {
	snap := ProfileSnapshot{Completion: map[Page]bool{}}
	if snap.AllCompleted() {
		t.Error("empty completion map is not all-completed")
	}
	for _, p := range Pages() {
		snap.Completion[p] = true
	}
	if !snap.AllCompleted() {
		t.Error("expected all-completed")
	}
	// The check covers the full six-page set, chat included.
	snap.Completion[PageChat] = false
	if snap.AllCompleted() {
		t.Error("chat must count toward all-completed")
	}
}
