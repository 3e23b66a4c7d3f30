// Loopback self-test: a registered pulse driver emits a pulse of known
// width on a pin jumpered to the capture input, and one measurement cycle
// checks the meter end to end against it.
package core

import (
	"errors"
	"runtime"
)

var (
	ErrSelfTestBusy   = errors.New("self-test: meter already cycling")
	ErrNoPulse        = errors.New("self-test: no pulse captured")
	ErrOutOfTolerance = errors.New("self-test: width out of tolerance")
)

// PulseDriver emits a single calibration pulse on a pin looped back to the
// capture input. The pulse polarity is fixed at driver setup to the meter's
// begin edge. Pulse may return before the pulse has finished; the edges
// arrive through the normal capture path.
type PulseDriver interface {
	Pulse(width Tick) error
}

// Global singleton used by core code.
var pulseDriver PulseDriver

// SetPulseDriver is called by target-specific code to register its driver.
func SetPulseDriver(d PulseDriver) {
	pulseDriver = d
}

// HasPulseDriver reports whether a pulse driver was registered.
func HasPulseDriver() bool {
	return pulseDriver != nil
}

// MustPulseDriver returns the configured driver or panics if missing.
func MustPulseDriver() PulseDriver {
	if pulseDriver == nil {
		panic("pulse driver not configured")
	}
	return pulseDriver
}

// RunSelfTest arms m, fires one calibration pulse of the given width through
// the registered driver and polls the cycle to completion. The measured
// width must land within tol ticks of the request. The meter must be fresh;
// use a dedicated instance so calibration cycles stay out of the report
// stream.
//
// Unlike normal cycles, a self-test does not wait forever: if the loopback
// edges fail to arrive within maxPolls iterations the test fails with
// ErrNoPulse.
func RunSelfTest(m *Meter, width, tol Tick, maxPolls int) error {
	drv := MustPulseDriver()

	if m.State() != StateInit || m.Completed() != 0 {
		return ErrSelfTestBusy
	}
	m.Poll()

	if err := drv.Pulse(width); err != nil {
		return err
	}

	for i := 0; i < maxPolls && m.Completed() == 0; i++ {
		m.Poll()
		runtime.Gosched()
	}
	if m.Completed() == 0 {
		return ErrNoPulse
	}

	got := m.Last().Wide()
	want := uint64(width)
	diff := got - want
	if got < want {
		diff = want - got
	}
	if diff > uint64(tol) {
		return ErrOutOfTolerance
	}
	return nil
}
