// Package capture collects measurement lines from a pulsespan meter.
package capture

import (
	"strconv"
	"strings"

	"pulsespan/core"
)

// Parser turns the meter's serial lines back into measurements. It accepts
// both report formats: terse lines carrying one bare tick count and verbose
// overflows/ticks pairs. Banner lines, progress dots and anything else it
// does not recognize are skipped, except that a tick rate announced in the
// banner is remembered.
type Parser struct {
	tickRate uint32

	pendingOverflows uint32
	havePending      bool
}

// Feed consumes one line. When the line completes a measurement it returns
// the sample and true.
func (p *Parser) Feed(line string) (core.Delta, bool) {
	line = strings.TrimSpace(line)

	// An overflows line pairs only with the line right after it. The two
	// are written back to back by a single report, so anything between
	// them means the stream is not what it claims to be.
	pending := p.havePending
	p.havePending = false

	switch {
	case line == "":
		return core.Delta{}, false

	case strings.HasPrefix(line, "overflows: "):
		n, err := strconv.ParseUint(line[len("overflows: "):], 10, 32)
		if err != nil {
			return core.Delta{}, false
		}
		p.pendingOverflows = uint32(n)
		p.havePending = true
		return core.Delta{}, false

	case strings.HasPrefix(line, "ticks: "):
		if !pending {
			// Attached mid-pair; the overflow count is gone, so the
			// sample cannot be trusted.
			return core.Delta{}, false
		}
		n, err := strconv.ParseUint(line[len("ticks: "):], 10, 16)
		if err != nil {
			return core.Delta{}, false
		}
		return core.Delta{Overflows: core.Epoch(p.pendingOverflows), Ticks: core.Tick(n)}, true

	case strings.HasPrefix(line, "tick rate: "):
		rate := strings.TrimSuffix(line[len("tick rate: "):], " Hz")
		if n, err := strconv.ParseUint(rate, 10, 32); err == nil {
			p.tickRate = uint32(n)
		}
		return core.Delta{}, false

	default:
		// Terse format: the bare 16-bit tick count, nothing else. Dots,
		// banner text and partial lines all fail the parse and are
		// dropped here.
		n, err := strconv.ParseUint(line, 10, 16)
		if err != nil {
			return core.Delta{}, false
		}
		return core.Delta{Ticks: core.Tick(n)}, true
	}
}

// TickRate returns the counter rate announced in the device banner, or 0 if
// none has been seen.
func (p *Parser) TickRate() uint32 {
	return p.tickRate
}
