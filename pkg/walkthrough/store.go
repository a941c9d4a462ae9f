package walkthrough

import "context"

// ProfileSnapshot is a point-in-time view of the user's per-page tour
// completion flags. Loading is true until the backing store has fetched
// real data; the engine will not auto-start a tour off a snapshot that
// is still loading.
type ProfileSnapshot struct {
	Completion map[Page]bool
	Loading    bool
}

// Completed reports whether the tour for a page is marked done.
func (s ProfileSnapshot) Completed(p Page) bool {
	return s.Completion[p]
}

// AllCompleted reports whether every known page's tour is marked done.
func (s ProfileSnapshot) AllCompleted() bool {
	for _, p := range Pages() {
		if !s.Completion[p] {
			return false
		}
	}
	return true
}

// ProfileStore is the engine's only external dependency: the remote
// per-user completion flags. Implementations live in pkg/profile; the
// engine only ever reads snapshots and requests writes.
//
// SetPageCompletion must be idempotent — re-marking an already-completed
// page is harmless. Refresh forces the read side to re-sync after one or
// more writes and returns the fresh snapshot, so callers can check
// "all pages completed" without racing a stale cache.
type ProfileStore interface {
	Snapshot() ProfileSnapshot
	SetPageCompletion(ctx context.Context, page Page, completed bool) error
	Refresh(ctx context.Context) (ProfileSnapshot, error)
}
