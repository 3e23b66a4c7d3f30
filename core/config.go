package core

import "errors"

var (
	ErrBadPolarity   = errors.New("polarity must be rising or falling")
	ErrBadCycleDelay = errors.New("cycle delay must be at least 1ms")
)

// Config carries the startup parameters of the meter. All fields are fixed
// before the first cycle; nothing is reconfigurable at runtime.
type Config struct {
	// Polarity is the edge that begins a pulse. EdgeRising measures the
	// high interval, EdgeFalling the low interval. The end edge is always
	// the opposite direction.
	Polarity Edge

	// Filter enables consistency re-reads in the capture source to reject
	// glitches shorter than a few pin samples. It lives entirely in the
	// capture hardware driver; the state machine never sees rejected edges.
	Filter bool

	// Verbose selects the human-readable report format (progress dots and
	// labelled result lines) instead of one bare number per measurement.
	Verbose bool

	// Repeat restarts a new cycle after each completed measurement. When
	// false the meter parks in the done state after the first result.
	Repeat bool

	// CycleDelayMs is the pause between poller iterations.
	CycleDelayMs uint32

	// TickHz is the tick rate of the capture counter. The meter itself
	// only ever deals in ticks; the rate is surfaced in the banner so the
	// value on the wire can be interpreted downstream.
	TickHz uint32

	// SelfTest runs one loopback measurement against the registered pulse
	// driver at boot, before normal cycling starts.
	SelfTest bool
}

// DefaultConfig returns the stock setup: rising polarity (high pulses),
// filtered input, terse output, repeating forever at a 10ms cycle pace.
func DefaultConfig() Config {
	return Config{
		Polarity:     EdgeRising,
		Filter:       true,
		Verbose:      false,
		Repeat:       true,
		CycleDelayMs: 10,
		TickHz:       2000000,
	}
}

// Validate reports the first invalid field.
func (c Config) Validate() error {
	if c.Polarity != EdgeRising && c.Polarity != EdgeFalling {
		return ErrBadPolarity
	}
	if c.CycleDelayMs == 0 {
		return ErrBadCycleDelay
	}
	return nil
}
