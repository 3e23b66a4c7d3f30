//go:build rp2040

package main

import "machine"

// Board wiring. The defaults fit a bare Pico-class board with the pulse
// source on GPIO2. For the boot self-test, jumper GPIO3 to GPIO2.
const (
	capturePin = machine.GPIO2  // pulse input, edge capture
	pulserPin  = machine.GPIO3  // PIO self-test output
	statusPin  = machine.GPIO16 // WS2812 status pixel
)
