package profile

import (
	"context"
	"sync"

	"github.com/avanderveen/curio/pkg/api"
	"github.com/avanderveen/curio/pkg/walkthrough"
)

// Remote is the REST-backed ProfileStore. Reads serve a cached
// snapshot; Load and Refresh re-sync it from the backend; writes go
// through and update the snapshot only after the backend confirms.
//
// The snapshot reports Loading until the first successful sync, so the
// walkthrough engine never auto-starts off data that hasn't arrived.
type Remote struct {
	client *api.Client
	cache  *Cache // optional; nil disables local persistence

	mu   sync.RWMutex
	snap walkthrough.ProfileSnapshot
}

// NewRemote creates a remote store. cache may be nil.
func NewRemote(client *api.Client, cache *Cache) *Remote {
	return &Remote{
		client: client,
		cache:  cache,
		snap: walkthrough.ProfileSnapshot{
			Completion: make(map[walkthrough.Page]bool),
			Loading:    true,
		},
	}
}

// Load performs the initial sync. When the backend is unreachable but
// the local cache holds flags, those are served instead so the session
// stays useful offline; the error is still returned for surfacing.
func (r *Remote) Load(ctx context.Context) (walkthrough.ProfileSnapshot, error) {
	snap, err := r.Refresh(ctx)
	if err == nil {
		return snap, nil
	}
	if r.cache != nil {
		if flags, ok, cacheErr := r.cache.Load(); cacheErr == nil && ok {
			r.mu.Lock()
			r.snap = walkthrough.ProfileSnapshot{Completion: flags}
			snap = r.snap
			r.mu.Unlock()
			return snap, err
		}
	}
	return r.Snapshot(), err
}

// Snapshot implements walkthrough.ProfileStore.
func (r *Remote) Snapshot() walkthrough.ProfileSnapshot {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return walkthrough.ProfileSnapshot{
		Completion: cloneCompletion(r.snap.Completion),
		Loading:    r.snap.Loading,
	}
}

// SetPageCompletion implements walkthrough.ProfileStore. The local
// snapshot is updated only after the backend confirms the write; a
// failed write leaves the snapshot untouched.
func (r *Remote) SetPageCompletion(ctx context.Context, page walkthrough.Page, completed bool) error {
	if err := r.client.SetWalkthroughFlag(ctx, string(page), completed); err != nil {
		return err
	}
	r.mu.Lock()
	r.snap.Completion[page] = completed
	r.persistLocked()
	r.mu.Unlock()
	return nil
}

// Refresh implements walkthrough.ProfileStore: re-fetches the user and
// returns the fresh snapshot.
func (r *Remote) Refresh(ctx context.Context) (walkthrough.ProfileSnapshot, error) {
	user, err := r.client.Me(ctx)
	if err != nil {
		return walkthrough.ProfileSnapshot{}, err
	}

	r.mu.Lock()
	r.snap = walkthrough.ProfileSnapshot{Completion: flagsFromWire(user.Walkthroughs)}
	r.persistLocked()
	snap := walkthrough.ProfileSnapshot{
		Completion: cloneCompletion(r.snap.Completion),
	}
	r.mu.Unlock()
	return snap, nil
}

// persistLocked mirrors the snapshot into the cache. Cache failures are
// deliberately swallowed: the cache is an optimization, never worth
// failing a confirmed remote write over.
func (r *Remote) persistLocked() {
	if r.cache == nil {
		return
	}
	_ = r.cache.Save(r.snap.Completion)
}
