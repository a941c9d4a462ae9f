package profile

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"

	json "github.com/goccy/go-json"

	"github.com/avanderveen/curio/pkg/api"
	"github.com/avanderveen/curio/pkg/walkthrough"
)

func TestMemoryStoreRoundtrip(t *testing.T) {
	m := NewMemory(nil)

	snap := m.Snapshot()
	if snap.Loading {
		t.Error("memory store is never loading")
	}
	if snap.Completed(walkthrough.PageContacts) {
		t.Error("pages start incomplete")
	}

	if err := m.SetPageCompletion(context.Background(), walkthrough.PageContacts, true); err != nil {
		t.Fatal(err)
	}
	snap, err := m.Refresh(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if !snap.Completed(walkthrough.PageContacts) {
		t.Error("completion flag lost")
	}
}

func TestMemorySnapshotIsolation(t *testing.T) {
	m := NewMemory(nil)
	snap := m.Snapshot()
	snap.Completion[walkthrough.PageChat] = true
	if m.Snapshot().Completed(walkthrough.PageChat) {
		t.Error("mutating a snapshot must not leak into the store")
	}
}

// fakeBackend serves /users/me and /users/me/walkthroughs.
type fakeBackend struct {
	mu    sync.Mutex
	flags map[string]bool
	fail  bool
}

func (b *fakeBackend) handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()
		if b.fail {
			http.Error(w, "unavailable", http.StatusServiceUnavailable)
			return
		}
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/users/me":
			json.NewEncoder(w).Encode(map[string]any{
				"id": "u-1", "name": "Test", "email": "t@example.com",
				"walkthroughs": b.flags,
			})
		case r.Method == http.MethodPatch && r.URL.Path == "/users/me/walkthroughs":
			var body struct {
				Page      string `json:"page"`
				Completed bool   `json:"completed"`
			}
			json.NewDecoder(r.Body).Decode(&body)
			b.flags[body.Page] = body.Completed
			w.WriteHeader(http.StatusNoContent)
		default:
			http.NotFound(w, r)
		}
	}
}

func newRemoteFixture(t *testing.T, cache *Cache) (*fakeBackend, *Remote) {
	t.Helper()
	backend := &fakeBackend{flags: map[string]bool{"dashboard": true}}
	srv := httptest.NewServer(backend.handler())
	t.Cleanup(srv.Close)
	return backend, NewRemote(api.NewClient(srv.URL, "tok"), cache)
}

func TestRemoteLoadingUntilFirstSync(t *testing.T) {
	_, store := newRemoteFixture(t, nil)

	if !store.Snapshot().Loading {
		t.Error("snapshot should report loading before the first sync")
	}
	if _, err := store.Load(context.Background()); err != nil {
		t.Fatal(err)
	}
	snap := store.Snapshot()
	if snap.Loading {
		t.Error("snapshot should stop loading after sync")
	}
	if !snap.Completed(walkthrough.PageDashboard) {
		t.Error("flags from the backend should be visible")
	}
}

func TestRemoteWriteConfirmsBeforeSnapshotUpdate(t *testing.T) {
	backend, store := newRemoteFixture(t, nil)
	if _, err := store.Load(context.Background()); err != nil {
		t.Fatal(err)
	}

	backend.mu.Lock()
	backend.fail = true
	backend.mu.Unlock()

	err := store.SetPageCompletion(context.Background(), walkthrough.PageChat, true)
	if err == nil {
		t.Fatal("expected write failure")
	}
	if store.Snapshot().Completed(walkthrough.PageChat) {
		t.Error("failed write must not update the snapshot")
	}

	backend.mu.Lock()
	backend.fail = false
	backend.mu.Unlock()

	if err := store.SetPageCompletion(context.Background(), walkthrough.PageChat, true); err != nil {
		t.Fatal(err)
	}
	if !store.Snapshot().Completed(walkthrough.PageChat) {
		t.Error("confirmed write should update the snapshot")
	}
}

func TestRemoteRefreshReturnsFreshSnapshot(t *testing.T) {
	backend, store := newRemoteFixture(t, nil)
	if _, err := store.Load(context.Background()); err != nil {
		t.Fatal(err)
	}

	backend.mu.Lock()
	backend.flags["contacts"] = true
	backend.mu.Unlock()

	snap, err := store.Refresh(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if !snap.Completed(walkthrough.PageContacts) {
		t.Error("refresh should return the re-synced snapshot, not a stale cache")
	}
}

func TestRemoteIgnoresUnknownPages(t *testing.T) {
	backend, store := newRemoteFixture(t, nil)
	backend.mu.Lock()
	backend.flags["legacy-page"] = true
	backend.mu.Unlock()

	snap, err := store.Load(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := snap.Completion[walkthrough.Page("legacy-page")]; ok {
		t.Error("unknown backend pages should be dropped")
	}
}

func TestCacheRoundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profile.db")
	cache, err := OpenCache(path)
	if err != nil {
		t.Fatal(err)
	}
	defer cache.Close()

	if _, ok, err := cache.Load(); err != nil || ok {
		t.Fatalf("fresh cache should be empty: ok=%v err=%v", ok, err)
	}

	flags := map[walkthrough.Page]bool{
		walkthrough.PageDashboard: true,
		walkthrough.PageContacts:  false,
	}
	if err := cache.Save(flags); err != nil {
		t.Fatal(err)
	}

	got, ok, err := cache.Load()
	if err != nil || !ok {
		t.Fatalf("load after save: ok=%v err=%v", ok, err)
	}
	if !got[walkthrough.PageDashboard] || got[walkthrough.PageContacts] {
		t.Errorf("unexpected flags %+v", got)
	}

	// Save is an upsert.
	flags[walkthrough.PageContacts] = true
	if err := cache.Save(flags); err != nil {
		t.Fatal(err)
	}
	got, _, _ = cache.Load()
	if !got[walkthrough.PageContacts] {
		t.Error("upsert lost the updated flag")
	}
}

func TestRemoteFallsBackToCacheWhenOffline(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profile.db")
	cache, err := OpenCache(path)
	if err != nil {
		t.Fatal(err)
	}
	defer cache.Close()
	if err := cache.Save(map[walkthrough.Page]bool{walkthrough.PageTags: true}); err != nil {
		t.Fatal(err)
	}

	backend, store := newRemoteFixture(t, cache)
	backend.mu.Lock()
	backend.fail = true
	backend.mu.Unlock()

	snap, err := store.Load(context.Background())
	if err == nil {
		t.Error("offline load should still report the sync error")
	}
	if snap.Loading {
		t.Error("cached flags should end the loading state")
	}
	if !snap.Completed(walkthrough.PageTags) {
		t.Error("cached flags should be served while offline")
	}
}
