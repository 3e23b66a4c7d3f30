// Tick arithmetic for the free-running 16-bit capture counter.
package core

// Tick is one value of the free-running hardware counter. The counter wraps
// modulo 2^16; all tick arithmetic is modular and unsigned on purpose.
type Tick uint16

// Epoch counts counter wraparounds since the current cycle was armed.
// Epoch itself wrapping within one measurement is not handled.
type Epoch uint32

// TickSpan is the number of counter values per epoch.
const TickSpan = 1 << 16

// Snapshot is the (epoch, counter) pair latched at one capture event.
type Snapshot struct {
	Epoch Epoch
	Tick  Tick
}

// Delta is the elapsed time between two snapshots. Ticks is the reported
// measurement value; Overflows is the corrected wraparound count.
type Delta struct {
	Overflows Epoch
	Ticks     Tick
}

// Between computes the elapsed time from begin to end.
//
// The tick difference is taken modulo 2^16, which is already correct when
// the counter wrapped at most once between the snapshots. A wrap is detected
// by Tb > Te, in which case the epoch difference counted one overflow that
// the modular tick math has absorbed, so it is decremented. Intervals
// spanning more than one full counter period undercount; callers keep
// intervals short relative to the counter period.
func Between(begin, end Snapshot) Delta {
	overflows := uint32(end.Epoch) - uint32(begin.Epoch)
	ticks := uint16(end.Tick) - uint16(begin.Tick)
	if begin.Tick > end.Tick {
		overflows--
	}
	return Delta{Overflows: Epoch(overflows), Ticks: Tick(ticks)}
}

// Wide returns the delta as a single 64-bit tick count, including full
// wraparounds. The serial report stays the 16-bit Ticks value; Wide is for
// consumers that need the unfolded width (self-test checks, host conversion).
func (d Delta) Wide() uint64 {
	return uint64(d.Overflows)*TickSpan + uint64(d.Ticks)
}
