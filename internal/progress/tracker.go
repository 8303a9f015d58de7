// Package progress tracks received/total counts for the active search session.
package progress

import "github.com/usestring/recall-stream/pkg/types"

// Tracker holds the counters for one session.
// It is not safe for concurrent use; the owning session serializes access.
type Tracker struct {
	received int
	total    int
}

// OnTotalCount replaces the counters: total = n, received = 0.
// Repeated announcements are authoritative, never additive.
func (t *Tracker) OnTotalCount(n int) {
	t.total = n
	t.received = 0
}

// OnResult counts one accepted result. Received is not clamped to total.
func (t *Tracker) OnResult() {
	t.received++
}

// Overflow reports whether more results arrived than were announced.
func (t *Tracker) Overflow() bool {
	return t.received > t.total
}

// Progress returns the current counters.
func (t *Tracker) Progress() types.Progress {
	return types.Progress{Received: t.received, Total: t.total}
}

// Reset zeros both counters.
func (t *Tracker) Reset() {
	t.received = 0
	t.total = 0
}
