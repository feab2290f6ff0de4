// Package gtracker tracks which grapheme pool IDs a single cell buffer has
// taken a reference on, so the buffer can release them all in one shot
// without double-incref'ing an ID it already holds.
package gtracker

import "github.com/aretext/vtext/gpool"

// Tracker is an idempotent multiset over pool IDs: Add on an ID already
// held bumps a local count but does not incref the pool again, and Remove
// only decref's the pool once the local count reaches zero.
type Tracker struct {
	pool   *gpool.Pool
	counts map[gpool.ID]uint32
}

// New constructs a Tracker bound to a pool.
func New(pool *gpool.Pool) *Tracker {
	return &Tracker{
		pool:   pool,
		counts: make(map[gpool.ID]uint32),
	}
}

// Add records a reference to id, calling Incref on the pool only the first
// time this tracker sees id.
func (t *Tracker) Add(id gpool.ID) error {
	if t.counts[id] == 0 {
		if err := t.pool.Incref(id); err != nil {
			return err
		}
	}
	t.counts[id]++
	return nil
}

// Remove releases one reference to id, calling Decref on the pool only once
// this tracker's local count for id drops to zero.
func (t *Tracker) Remove(id gpool.ID) error {
	n, ok := t.counts[id]
	if !ok || n == 0 {
		return nil
	}
	n--
	if n == 0 {
		delete(t.counts, id)
		return t.pool.Decref(id)
	}
	t.counts[id] = n
	return nil
}

// HasAny reports whether this tracker currently holds any reference to id.
func (t *Tracker) HasAny(id gpool.ID) bool {
	return t.counts[id] > 0
}

// Count returns how many times this tracker has added id (net of removes).
func (t *Tracker) Count(id gpool.ID) uint32 {
	return t.counts[id]
}

// TotalRefs returns the sum of all local reference counts held across every
// tracked ID.
func (t *Tracker) TotalRefs() uint64 {
	var total uint64
	for _, n := range t.counts {
		total += uint64(n)
	}
	return total
}

// Clear releases every reference this tracker holds, decref'ing each
// distinct ID exactly once on the pool, then resets the tracker to empty.
func (t *Tracker) Clear() error {
	for id := range t.counts {
		if err := t.pool.Decref(id); err != nil {
			return err
		}
	}
	t.counts = make(map[gpool.ID]uint32)
	return nil
}
