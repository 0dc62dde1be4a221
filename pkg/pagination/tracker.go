package pagination

// Tracker is the set of record keys one pagination run has accepted.
// Each run owns its own instance and is the only writer, so there is no
// locking. Duplicate detection is by key alone; record content is never
// compared.
type Tracker struct {
	seen map[string]struct{}
}

// NewTracker returns an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{seen: make(map[string]struct{})}
}

// Has reports whether key was already accepted.
func (t *Tracker) Has(key string) bool {
	_, ok := t.seen[key]
	return ok
}

// Add records key as accepted.
func (t *Tracker) Add(key string) {
	t.seen[key] = struct{}{}
}

// Len returns the number of accepted keys.
func (t *Tracker) Len() int {
	return len(t.seen)
}
