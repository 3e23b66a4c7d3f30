//go:build rp2040

package main

import (
	"image/color"
	"machine"

	"tinygo.org/x/drivers/ws2812"

	"pulsespan/core"
)

// Dim on purpose; the LED is a status beacon, not a lamp.
var (
	ledOff     = color.RGBA{}
	ledWaiting = color.RGBA{B: 0x20}
	ledDone    = color.RGBA{G: 0x20}
	ledTesting = color.RGBA{R: 0x20, G: 0x10}
	ledFault   = color.RGBA{R: 0x20}
)

type statusLED struct {
	dev   ws2812.Device
	buf   [1]color.RGBA
	shown color.RGBA
	valid bool
	fault bool
}

func newStatusLED(pin machine.Pin) *statusLED {
	pin.Configure(machine.PinConfig{Mode: machine.PinOutput})
	return &statusLED{dev: ws2812.New(pin)}
}

// set pushes a color only when it differs from the one on the wire. The
// bitstream write masks interrupts for the whole frame, so redundant
// refreshes are skipped to keep capture latency down.
func (l *statusLED) set(c color.RGBA) {
	if l.valid && c == l.shown {
		return
	}
	l.buf[0] = c
	if err := l.dev.WriteColors(l.buf[:]); err != nil {
		return
	}
	l.shown = c
	l.valid = true
}

// setFault latches the fault color. A failed self-test stays visible even
// though measurement keeps running.
func (l *statusLED) setFault() {
	l.fault = true
	l.set(ledFault)
}

// refresh maps the meter state onto the LED: blue while parked on an edge,
// green once a one-shot run has finished, dark through the brief
// poller-owned states in between. A latched fault wins over everything.
func (l *statusLED) refresh(m *core.Meter) {
	switch {
	case l.fault:
		l.set(ledFault)
	case m.Waiting():
		l.set(ledWaiting)
	case m.Done():
		l.set(ledDone)
	default:
		l.set(ledOff)
	}
}
