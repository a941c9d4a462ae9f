// Package profile implements the walkthrough engine's ProfileStore
// collaborator: the per-user, per-page tour completion flags. The
// remote store is authoritative; a small SQLite cache keeps the last
// known flags for display while the remote loads and for offline
// sessions; the memory store backs tests and --offline mode.
package profile

import (
	"github.com/avanderveen/curio/pkg/walkthrough"
)

// cloneCompletion copies a completion map so snapshots stay immutable.
func cloneCompletion(in map[walkthrough.Page]bool) map[walkthrough.Page]bool {
	out := make(map[walkthrough.Page]bool, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

// flagsFromWire converts the backend's string-keyed walkthrough map,
// dropping pages this build does not know about.
func flagsFromWire(in map[string]bool) map[walkthrough.Page]bool {
	out := make(map[walkthrough.Page]bool, len(in))
	for name, done := range in {
		page, err := walkthrough.ParsePage(name)
		if err != nil {
			continue
		}
		out[page] = done
	}
	return out
}
