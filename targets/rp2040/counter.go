//go:build rp2040

package main

import (
	"errors"
	"runtime/interrupt"
	"runtime/volatile"
	"unsafe"

	"device/rp"

	"pulsespan/core"
)

var ErrBadTickRate = errors.New("tick rate out of divider range")

// The capture counter is PWM slice 7 in free-running mode: 16 bits wide,
// fed from the system clock through the slice's fractional divider, wrapping
// after 0xffff. The wrap interrupt drives the meter's epoch count. No pin is
// put in PWM function, so the slice drives nothing.
const counterSlice = 7

// RP2040 PWM peripheral memory map (slice stride 0x14)
const (
	pwmBase    = 0x40050000
	counterCSR = pwmBase + counterSlice*0x14 + 0x00 // Control and status
	counterDIV = pwmBase + counterSlice*0x14 + 0x04 // Clock divider, 8.4 fixed point
	counterCTR = pwmBase + counterSlice*0x14 + 0x08 // Free-running counter value
	counterTOP = pwmBase + counterSlice*0x14 + 0x10 // Wrap value
	pwmINTR    = pwmBase + 0xa4                     // Raw interrupts, write 1 to clear
	pwmINTE    = pwmBase + 0xa8                     // Interrupt enable
)

var (
	counterCSRReg = (*volatile.Register32)(unsafe.Pointer(uintptr(counterCSR)))
	counterDIVReg = (*volatile.Register32)(unsafe.Pointer(uintptr(counterDIV)))
	counterCTRReg = (*volatile.Register32)(unsafe.Pointer(uintptr(counterCTR)))
	counterTOPReg = (*volatile.Register32)(unsafe.Pointer(uintptr(counterTOP)))
	pwmINTRReg    = (*volatile.Register32)(unsafe.Pointer(uintptr(pwmINTR)))
	pwmINTEReg    = (*volatile.Register32)(unsafe.Pointer(uintptr(pwmINTE)))
)

// RP2040 Timer peripheral memory map
const (
	timerBase     = 0x40054000
	timerTIMERAWH = timerBase + 0x08 // Raw timer high word
	timerTIMERAWL = timerBase + 0x0C // Raw timer low word
)

var (
	timerRAWH = (*volatile.Register32)(unsafe.Pointer(uintptr(timerTIMERAWH)))
	timerRAWL = (*volatile.Register32)(unsafe.Pointer(uintptr(timerTIMERAWL)))
)

// initCounter configures the tick counter for the requested rate and hooks
// the wrap interrupt into the active meter. The divider is 8.4 fixed point,
// so tick rates from sysclk/256 up to sysclk are representable.
func initCounter(cpuHz, tickHz uint32) error {
	// Divider in 16ths, which is exactly the DIV register layout.
	div16 := uint32(uint64(cpuHz) * 16 / uint64(tickHz))
	if div16 < 0x010 || div16 > 0xfff {
		return ErrBadTickRate
	}

	counterCSRReg.Set(0) // disabled, free-running divmode, count up
	counterDIVReg.Set(div16)
	counterTOPReg.Set(0xffff)
	counterCTRReg.Set(0)

	// Clear a stale wrap flag before unmasking.
	pwmINTRReg.Set(1 << counterSlice)
	pwmINTEReg.SetBits(1 << counterSlice)

	irq := interrupt.New(rp.IRQ_PWM_IRQ_WRAP, onCounterWrap)
	irq.Enable()

	counterCSRReg.SetBits(rp.PWM_CH0_CSR_EN_Msk)
	return nil
}

// counterRead returns the current counter value. Callers in edge interrupt
// context get the value latched as close to the edge as IRQ latency allows.
func counterRead() core.Tick {
	return core.Tick(counterCTRReg.Get())
}

// onCounterWrap acknowledges the wrap and bumps the epoch. Slice 7 is the
// only enabled PWM interrupt source.
func onCounterWrap(interrupt.Interrupt) {
	pwmINTRReg.Set(1 << counterSlice)
	activeMeter.HandleOverflow()
}

// hardwareUptime reads the full 64-bit microsecond timer.
// Must read high first, then low, then high again to detect rollover.
func hardwareUptime() uint64 {
	for {
		high1 := timerRAWH.Get()
		low := timerRAWL.Get()
		high2 := timerRAWH.Get()

		if high1 == high2 {
			return (uint64(high1) << 32) | uint64(low)
		}
		// Rollover happened during the read, retry.
	}
}
