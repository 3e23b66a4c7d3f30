//go:build !tinygo

package core

// irqState is a placeholder for the interrupt mask on regular Go.
type irqState uintptr

// disableInterrupts is a no-op on regular Go (for testing)
func disableInterrupts() irqState {
	return 0
}

// restoreInterrupts is a no-op on regular Go (for testing)
func restoreInterrupts(state irqState) {
	// No-op
}
