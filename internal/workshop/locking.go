package workshop

import "sync"

// Exercise 3: exclusive access.
//
// Maps are not safe for concurrent writes. GenreTally serializes access with
// a mutex so any number of goroutines can record plays, the runtime-checked
// equivalent of allowing only one writer at a time.

// GenreTally counts genre plays and is safe for concurrent use.
type GenreTally struct {
	mu     sync.Mutex
	counts map[string]int
}

// NewGenreTally creates an empty tally.
func NewGenreTally() *GenreTally {
	return &GenreTally{counts: make(map[string]int)}
}

// Add records one play for the genre.
func (t *GenreTally) Add(genre string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.counts[genre]++
}

// Get returns the play count for the genre.
func (t *GenreTally) Get(genre string) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.counts[genre]
}

// Total returns the sum of all play counts.
func (t *GenreTally) Total() int {
	t.mu.Lock()
	defer t.mu.Unlock()

	total := 0
	for _, n := range t.counts {
		total += n
	}
	return total
}

// Snapshot returns a copy of the counts, detached from the tally so the
// caller can read it without holding the lock.
func (t *GenreTally) Snapshot() map[string]int {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := make(map[string]int, len(t.counts))
	for genre, n := range t.counts {
		out[genre] = n
	}
	return out
}
