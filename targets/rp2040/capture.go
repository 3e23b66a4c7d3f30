//go:build rp2040

package main

import (
	"machine"

	"pulsespan/core"
)

// activeMeter receives the interrupt-context hooks. Boot points it at the
// self-test meter first and swaps it to the measuring one before cycling
// starts; the swap happens with interrupts masked.
var activeMeter *core.Meter

var captureFilter bool

// initCapture configures the input pin and routes both edge directions into
// the meter. Direction is sensed from the pin level inside the handler, so
// pulses must comfortably outlast the interrupt latency; the counter value
// is taken before anything else to keep the latched tick close to the
// physical edge.
func initCapture(pin machine.Pin, filter bool) error {
	captureFilter = filter
	pin.Configure(machine.PinConfig{Mode: machine.PinInput})
	return pin.SetInterrupt(machine.PinToggle, onCaptureEdge)
}

func onCaptureEdge(pin machine.Pin) {
	tick := counterRead()

	level := pin.Get()
	if captureFilter && !confirmLevel(pin, level) {
		return
	}

	edge := core.EdgeFalling
	if level {
		edge = core.EdgeRising
	}
	activeMeter.HandleEdge(tick, edge)
}

// confirmLevel re-reads the pin and drops the event if the line is still
// bouncing. A glitch near the sample spacing is rejected rather than
// reported with a guessed direction.
func confirmLevel(pin machine.Pin, level bool) bool {
	for i := 0; i < 3; i++ {
		if pin.Get() != level {
			return false
		}
	}
	return true
}
