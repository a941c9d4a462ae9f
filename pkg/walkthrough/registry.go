package walkthrough

import (
	"fmt"
	"os"
	"sync"

	"gopkg.in/yaml.v3"
)

// Registry holds the ordered step sequences for every page. The built-in
// sequences live in steps.go; an optional YAML file can replace the
// sequence for individual pages without touching the others. Reloads
// arrive from the file watcher goroutine while the UI goroutine reads,
// so access to the page map is guarded.
type Registry struct {
	mu    sync.RWMutex
	pages map[Page][]Step
}

// NewRegistry returns a registry with the built-in step sequences.
func NewRegistry() *Registry {
	return &Registry{pages: defaultSteps()}
}

// Steps returns the step sequence for a page. The returned slice is a
// copy; callers cannot mutate registry state through it.
func (r *Registry) Steps(p Page) []Step {
	r.mu.RLock()
	defer r.mu.RUnlock()
	steps, ok := r.pages[p]
	if !ok {
		return nil
	}
	out := make([]Step, len(steps))
	copy(out, steps)
	return out
}

// Validate checks every page sequence: known page names, non-empty
// sequences, unique step IDs within a page, and valid step definitions.
func (r *Registry) Validate() error {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for page, steps := range r.pages {
		if !KnownPage(page) {
			return fmt.Errorf("registry: unknown page %q", page)
		}
		if len(steps) == 0 {
			return fmt.Errorf("registry: page %s has no steps", page)
		}
		seen := make(map[string]bool, len(steps))
		for _, s := range steps {
			if err := s.validate(); err != nil {
				return fmt.Errorf("registry: page %s: %w", page, err)
			}
			if seen[s.ID] {
				return fmt.Errorf("registry: page %s: duplicate step id %s", page, s.ID)
			}
			seen[s.ID] = true
		}
	}
	for _, p := range Pages() {
		if _, ok := r.pages[p]; !ok {
			return fmt.Errorf("registry: page %s has no walkthrough", p)
		}
	}
	return nil
}

// overrideFile is the YAML shape of a step override file: page name to
// step list.
type overrideFile map[string][]Step

// LoadOverrides replaces page sequences with those found in the YAML file
// at path. Pages absent from the file keep their built-in steps. The
// merged registry is re-validated so a bad override cannot leave the
// walkthrough in a broken state.
func (r *Registry) LoadOverrides(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("walkthrough overrides: %w", err)
	}
	return r.applyOverrides(data)
}

func (r *Registry) applyOverrides(data []byte) error {
	var file overrideFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("walkthrough overrides: %w", err)
	}

	r.mu.RLock()
	merged := make(map[Page][]Step, len(r.pages))
	for p, steps := range r.pages {
		merged[p] = steps
	}
	r.mu.RUnlock()
	for name, steps := range file {
		page, err := ParsePage(name)
		if err != nil {
			return fmt.Errorf("walkthrough overrides: %w", err)
		}
		merged[page] = steps
	}

	candidate := &Registry{pages: merged}
	if err := candidate.Validate(); err != nil {
		return err
	}
	r.mu.Lock()
	r.pages = merged
	r.mu.Unlock()
	return nil
}
