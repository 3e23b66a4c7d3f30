// Pulse-width measurement engine: free-running wraparound counter epochs,
// a single-slot capture latch and the cooperative cycle state machine.
package core

import (
	"errors"
	"sync/atomic"
)

var ErrNilReporter = errors.New("reporter must not be nil")

// Meter measures the width of one pulse per cycle. Two interrupt-context
// hooks feed it: HandleOverflow once per counter wraparound and HandleEdge
// once per pin transition. A single polling loop drives the cycle forward
// with Poll. The hooks and the poller share only atomic cells, so the meter
// is safe without locks on hardware and under goroutines in tests.
type Meter struct {
	cfg Config
	rep Reporter

	state   atomic.Uint32
	epoch   atomic.Uint32
	capture latch

	// Poller-owned; never touched from the hooks.
	begin     Snapshot
	end       Snapshot
	last      Delta
	completed uint32
}

// NewMeter builds a meter from a validated config. The reporter is the only
// output path and must not be nil.
func NewMeter(cfg Config, rep Reporter) (*Meter, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if rep == nil {
		return nil, ErrNilReporter
	}
	return &Meter{cfg: cfg, rep: rep}, nil
}

// State returns the current cycle state.
func (m *Meter) State() State {
	return State(m.state.Load())
}

// Epoch returns the wraparound count of the current cycle.
func (m *Meter) Epoch() Epoch {
	return Epoch(m.epoch.Load())
}

// Last returns the most recent completed measurement.
func (m *Meter) Last() Delta {
	return m.last
}

// Completed returns how many measurements have finished since boot.
func (m *Meter) Completed() uint32 {
	return m.completed
}

// Waiting reports whether the cycle is parked waiting for an edge. The
// progress indicator keys off this.
func (m *Meter) Waiting() bool {
	st := m.State()
	return st == StateArmed || st == StateMeasuring
}

// Done reports whether a one-shot meter has finished for good.
func (m *Meter) Done() bool {
	return !m.cfg.Repeat && m.State() == StateDone
}

// HandleOverflow is the counter wraparound hook, called once per hardware
// counter wrap from interrupt context. Epoch wrapping is not checked.
func (m *Meter) HandleOverflow() {
	m.epoch.Add(1)
}

// HandleEdge is the capture hook, called from the pin edge interrupt with
// the counter value latched at the edge and the observed direction.
//
// The begin edge must match the configured polarity, the end edge its
// opposite; any other transition returns before touching shared state. A
// qualifying edge stores its snapshot into the latch and then advances the
// state by exactly one step, in that order, so the snapshot is always
// visible by the time the poller sees the new state.
func (m *Meter) HandleEdge(tick Tick, edge Edge) {
	st := m.State()
	next, ok := edgeAdvance(st)
	if !ok {
		return
	}
	want := m.cfg.Polarity
	if st == StateMeasuring {
		want = want.Opposite()
	}
	if edge != want {
		return
	}
	m.capture.Store(Snapshot{Epoch: m.Epoch(), Tick: tick})
	m.state.Store(uint32(next))
}

// Poll runs one step of the cooperative sequencer: the entry action of the
// current state, then the poller-owned transition out of it. It never
// blocks and does no pacing of its own; that belongs to the caller's loop.
// The two waiting states are left alone until the edge hook advances them,
// so a signal that never arrives parks the cycle there indefinitely.
func (m *Meter) Poll() {
	switch m.State() {
	case StateInit:
		m.epoch.Store(0)
		m.capture.Clear()
		m.state.Store(uint32(StateArmed))
	case StateBeginCaptured:
		m.begin = m.capture.Load()
		m.state.Store(uint32(StateMeasuring))
	case StateEndCaptured:
		m.end = m.capture.Load()
		m.last = Between(m.begin, m.end)
		m.completed++
		m.rep.Report(m.last)
		m.state.Store(uint32(StateDone))
	case StateDone:
		if m.cfg.Repeat {
			m.state.Store(uint32(StateInit))
		}
	}
}
