package profile

import (
	"context"
	"sync"

	"github.com/avanderveen/curio/pkg/walkthrough"
)

// Memory is an in-process ProfileStore. It backs --offline mode and
// tests; nothing survives the process.
type Memory struct {
	mu         sync.RWMutex
	completion map[walkthrough.Page]bool
}

// NewMemory creates a memory store with the given initial flags. A nil
// map starts with every page incomplete.
func NewMemory(initial map[walkthrough.Page]bool) *Memory {
	return &Memory{completion: cloneCompletion(initial)}
}

// Snapshot implements walkthrough.ProfileStore. Memory data is always
// "loaded".
func (m *Memory) Snapshot() walkthrough.ProfileSnapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return walkthrough.ProfileSnapshot{Completion: cloneCompletion(m.completion)}
}

// SetPageCompletion implements walkthrough.ProfileStore.
func (m *Memory) SetPageCompletion(_ context.Context, page walkthrough.Page, completed bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.completion[page] = completed
	return nil
}

// Refresh implements walkthrough.ProfileStore.
func (m *Memory) Refresh(_ context.Context) (walkthrough.ProfileSnapshot, error) {
	return m.Snapshot(), nil
}
