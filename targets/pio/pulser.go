//go:build rp2040

// Package pio drives an RP2040 PIO state machine as a one-shot pulse
// generator. Jumpered to the capture input, it gives the meter a loopback
// source of known width for the boot self-test.
package pio

import (
	"errors"
	"machine"

	rp2pio "github.com/tinygo-org/pio/rp2-pio"

	"pulsespan/core"
)

var ErrPulseTooShort = errors.New("pulser: width below 2 ticks")

// PIO program for one-shot pulse generation
// Command word format:
//
//	Bits 0-31: hold cycles (pulse width minus the two framing set cycles)
//
// Program flow:
//  1. Pull 32-bit command from FIFO (stalls idle until one arrives)
//  2. Extract hold count into X register
//  3. Drive the pin to its active level
//  4. Burn X+1 cycles in the jmp loop
//  5. Drive the pin back to its idle level
//
// One loop cycle equals one counter tick when the clock divider matches the
// tick rate, so a command of width-2 yields a pulse of exactly width ticks.
func buildPulserProgram(activeHigh bool) []uint16 {
	asm := rp2pio.AssemblerV0{SidesetBits: 0}
	if activeHigh {
		return []uint16{
			asm.Pull(false, true).Encode(),           // 0: pull block
			asm.Out(rp2pio.OutDestX, 32).Encode(),    // 1: out x, 32 (hold cycles)
			asm.Set(rp2pio.SetDestPins, 1).Encode(),  // 2: set pins, 1 (pulse begins)
			asm.Jmp(3, rp2pio.JmpXNZeroDec).Encode(), // 3: jmp x--, 3
			asm.Set(rp2pio.SetDestPins, 0).Encode(),  // 4: set pins, 0 (pulse ends)
			// .wrap back to pull
		}
	}
	return []uint16{
		asm.Pull(false, true).Encode(),           // 0: pull block
		asm.Out(rp2pio.OutDestX, 32).Encode(),    // 1: out x, 32 (hold cycles)
		asm.Set(rp2pio.SetDestPins, 0).Encode(),  // 2: set pins, 0 (low pulse begins)
		asm.Jmp(3, rp2pio.JmpXNZeroDec).Encode(), // 3: jmp x--, 3
		asm.Set(rp2pio.SetDestPins, 1).Encode(),  // 4: set pins, 1 (low pulse ends)
		// .wrap back to pull
	}
}

const pulserOrigin = 0 // Load at offset 0 for correct jump addresses

// framingCycles is what the two set instructions add around the jmp loop.
const framingCycles = 2

// Pulser implements core.PulseDriver on a PIO state machine.
type Pulser struct {
	pio        *rp2pio.PIO
	sm         rp2pio.StateMachine
	pin        machine.Pin
	offset     uint8
	activeHigh bool
}

// NewPulser creates a pulser on the given PIO block and state machine.
// pioNum: 0 for PIO0, 1 for PIO1
// smNum: 0-3 for state machine number
func NewPulser(pioNum, smNum uint8) *Pulser {
	var pioHW *rp2pio.PIO
	if pioNum == 0 {
		pioHW = rp2pio.PIO0
	} else {
		pioHW = rp2pio.PIO1
	}

	return &Pulser{
		pio: pioHW,
		sm:  pioHW.StateMachine(smNum),
	}
}

// Init claims the state machine, loads the program and parks the pin at its
// idle level. polarity is the meter's begin edge: a rising polarity means
// high pulses from a low idle. tickHz sets the clock divider so one loop
// cycle equals one counter tick.
func (p *Pulser) Init(pin machine.Pin, polarity core.Edge, tickHz uint32) error {
	p.pin = pin
	p.activeHigh = polarity == core.EdgeRising

	p.sm.TryClaim()

	program := buildPulserProgram(p.activeHigh)
	offset, err := p.pio.AddProgram(program, pulserOrigin)
	if err != nil {
		return err
	}
	p.offset = offset

	pin.Configure(machine.PinConfig{Mode: p.pio.PinMode()})

	cfg := rp2pio.DefaultStateMachineConfig()
	cfg.SetSetPins(pin, 1)

	// Shift right, autopull disabled (the program pulls explicitly).
	cfg.SetOutShift(true, false, 32)

	cfg.SetWrap(offset+uint8(len(program))-1, offset)

	// One PIO cycle per counter tick.
	cpu := machine.CPUFrequency()
	div := uint16(cpu / tickHz)
	frac := uint8(uint64(cpu%tickHz) * 256 / uint64(tickHz))
	cfg.SetClkDivIntFrac(div, frac)

	p.sm.Init(offset, cfg)

	// Pin direction and idle level come after Init.
	p.sm.SetPindirsConsecutive(pin, 1, true)
	p.sm.SetPinsConsecutive(pin, 1, !p.activeHigh)

	p.sm.SetEnabled(true)

	return nil
}

// Pulse queues one pulse of width ticks. It returns as soon as the command
// is in the FIFO; the state machine shapes the pulse on its own clock.
func (p *Pulser) Pulse(width core.Tick) error {
	if width < framingCycles {
		return ErrPulseTooShort
	}

	for p.sm.IsTxFIFOFull() {
		// Busy wait - should be very brief
	}
	p.sm.TxPut(uint32(width) - framingCycles)

	return nil
}
