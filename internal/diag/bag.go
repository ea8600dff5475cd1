package diag

import (
	"fmt"

	"fortio.org/safecast"
)

// Bag accumulates diagnostics up to a cap.
type Bag struct {
	items []Diagnostic
	max   uint16
}

// NewBag creates a bag bounded at max items.
func NewBag(max int) *Bag {
	capped, err := safecast.Conv[uint16](max)
	if err != nil {
		panic(fmt.Errorf("bag cap overflow: %w", err))
	}
	return &Bag{
		items: make([]Diagnostic, 0, min(max, 16)),
		max:   capped,
	}
}

// Add appends a diagnostic, respecting the cap.
// Returns false when the diagnostic was dropped.
func (b *Bag) Add(d Diagnostic) bool {
	if len(b.items) >= int(b.max) {
		return false
	}
	b.items = append(b.items, d)
	return true
}

// Len returns the number of collected diagnostics.
func (b *Bag) Len() int {
	return len(b.items)
}

// HasNotes reports whether the bag holds anything at all.
func (b *Bag) HasNotes() bool {
	return len(b.items) > 0
}

// Items returns the collected diagnostics.
// The returned slice aliases the bag's storage; do not modify it.
func (b *Bag) Items() []Diagnostic {
	return b.items
}
