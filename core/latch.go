package core

import "sync/atomic"

// latch is the single-slot capture cell shared between the edge callback and
// the poller. Epoch and tick travel packed in one 64-bit word so the reader
// can never observe a torn pair, and the store is a release point that the
// subsequent state-advance load pairs with.
//
// A store silently overwrites whatever was there; there is no occupancy flag
// and no reader acknowledgement. The state machine decides which captures
// matter, the latch only holds the most recent one.
type latch struct {
	cell atomic.Uint64
}

// packSnapshot folds a snapshot into one word: epoch in the high 32 bits
// above the 16-bit tick.
func packSnapshot(s Snapshot) uint64 {
	return uint64(s.Epoch)<<16 | uint64(s.Tick)
}

func unpackSnapshot(w uint64) Snapshot {
	return Snapshot{Epoch: Epoch(w >> 16), Tick: Tick(w & 0xffff)}
}

// Store records a capture, replacing any unread one.
func (l *latch) Store(s Snapshot) {
	l.cell.Store(packSnapshot(s))
}

// Load returns the most recent capture.
func (l *latch) Load() Snapshot {
	return unpackSnapshot(l.cell.Load())
}

// Clear resets the cell to the zero snapshot at cycle start.
func (l *latch) Clear() {
	l.cell.Store(0)
}
