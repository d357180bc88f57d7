package severity

import "sync"

// Counts tallies accepted log entries per severity. The zero value is not
// usable; call NewCounts.
//
// Counts exists for reporting. Callers learn whether an entry was accepted
// from the builder's return value, never by diffing a Counts.
type Counts struct {
	mu     sync.RWMutex
	counts map[Severity]int
}

// NewCounts returns a registry with every severity at zero.
func NewCounts() *Counts {
	c := &Counts{}
	c.Reset()
	return c
}

// Increment adds one to the tally for s. Unknown severities are ignored.
func (c *Counts) Increment(s Severity) {
	if !s.Valid() {
		return
	}
	c.mu.Lock()
	c.counts[s]++
	c.mu.Unlock()
}

// Get returns the tally for s.
func (c *Counts) Get(s Severity) int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.counts[s]
}

// Total returns the sum over all severities.
func (c *Counts) Total() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	total := 0
	for _, n := range c.counts {
		total += n
	}
	return total
}

// Add folds another registry's tallies into c.
func (c *Counts) Add(other *Counts) {
	snap := other.Snapshot()
	c.mu.Lock()
	defer c.mu.Unlock()
	for s, n := range snap {
		c.counts[s] += n
	}
}

// Snapshot returns a copy of the current tallies keyed by severity.
func (c *Counts) Snapshot() map[Severity]int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make(map[Severity]int, len(c.counts))
	for s, n := range c.counts {
		out[s] = n
	}
	return out
}

// Reset sets every tally back to zero.
func (c *Counts) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.counts = make(map[Severity]int, 3)
	for _, s := range All() {
		c.counts[s] = 0
	}
}
