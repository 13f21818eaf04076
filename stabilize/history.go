/*
NAME
  history.go

DESCRIPTION
  history.go implements the bounded ring buffer of recent cumulative
  transforms the Core smooths over.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package stabilize

// transformHistory is an ordered, bounded ring of the most recent
// cumulative transforms. It grows from empty; once at capacity, the
// oldest entry is evicted on insert. Index 0 is the oldest entry, the
// last index is the most recent.
type transformHistory struct {
	entries  []Transform
	capacity int
}

func newTransformHistory(capacity int) *transformHistory {
	if capacity < 1 {
		capacity = 1
	}
	return &transformHistory{entries: make([]Transform, 0, capacity), capacity: capacity}
}

// push appends t, evicting the oldest entry if the history is full.
func (h *transformHistory) push(t Transform) {
	if len(h.entries) >= h.capacity {
		copy(h.entries, h.entries[1:])
		h.entries = h.entries[:len(h.entries)-1]
	}
	h.entries = append(h.entries, t)
}

// setCapacity resizes the history's capacity. If the new capacity is
// smaller than the current length, the oldest entries are truncated away,
// keeping the most recent newCap entries.
func (h *transformHistory) setCapacity(newCap int) {
	if newCap < 1 {
		newCap = 1
	}
	h.capacity = newCap
	if len(h.entries) > newCap {
		drop := len(h.entries) - newCap
		h.entries = append(h.entries[:0:0], h.entries[drop:]...)
	}
}

// clear empties the history without changing its capacity.
func (h *transformHistory) clear() {
	h.entries = h.entries[:0]
}

// latest returns the most recently pushed transform and whether the
// history is non-empty.
func (h *transformHistory) latest() (Transform, bool) {
	if len(h.entries) == 0 {
		return Transform{}, false
	}
	return h.entries[len(h.entries)-1], true
}

// len reports the number of entries currently stored.
func (h *transformHistory) len() int { return len(h.entries) }

// all returns the entries in chronological (oldest-first) order. The
// returned slice is owned by the caller to read; it must not be mutated.
func (h *transformHistory) all() []Transform { return h.entries }
