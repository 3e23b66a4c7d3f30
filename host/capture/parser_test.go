package capture

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"pulsespan/core"
)

func TestParserTerseLines(t *testing.T) {
	tests := []struct {
		name string
		line string
		want core.Delta
		ok   bool
	}{
		{"plain value", "6036", core.Delta{Ticks: 6036}, true},
		{"small value", "1", core.Delta{Ticks: 1}, true},
		{"zero width", "0", core.Delta{Ticks: 0}, true},
		{"max counter value", "65535", core.Delta{Ticks: 65535}, true},
		{"trailing cr", "500\r", core.Delta{Ticks: 500}, true},
		{"too wide for the counter", "65536", core.Delta{}, false},
		{"progress dots", "....", core.Delta{}, false},
		{"banner title", "pulsespan pulse meter", core.Delta{}, false},
		{"banner polarity", "polarity: rising", core.Delta{}, false},
		{"self-test result", "self-test: ok (798 ticks)", core.Delta{}, false},
		{"empty", "", core.Delta{}, false},
		{"negative", "-5", core.Delta{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var p Parser
			got, ok := p.Feed(tt.line)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestParserVerbosePair(t *testing.T) {
	var p Parser

	_, ok := p.Feed("overflows: 1")
	assert.False(t, ok, "overflows line alone completes nothing")

	got, ok := p.Feed("ticks: 6036")
	assert.True(t, ok)
	assert.Equal(t, core.Delta{Overflows: 1, Ticks: 6036}, got)
}

func TestParserUnpairedTicksLineDropped(t *testing.T) {
	var p Parser

	// Collector attached between an overflows line and its ticks line.
	_, ok := p.Feed("ticks: 6036")
	assert.False(t, ok)
}

func TestParserPendingDoesNotSurviveInterveningLine(t *testing.T) {
	var p Parser

	_, ok := p.Feed("overflows: 2")
	assert.False(t, ok)
	_, ok = p.Feed("....")
	assert.False(t, ok)
	_, ok = p.Feed("ticks: 100")
	assert.False(t, ok, "pair was broken by the dots line")
}

func TestParserPairThenTerse(t *testing.T) {
	var p Parser

	p.Feed("overflows: 0")
	got, ok := p.Feed("ticks: 500")
	assert.True(t, ok)
	assert.Equal(t, core.Delta{Overflows: 0, Ticks: 500}, got)

	got, ok = p.Feed("42")
	assert.True(t, ok)
	assert.Equal(t, core.Delta{Ticks: 42}, got)
}

func TestParserTickRateFromBanner(t *testing.T) {
	var p Parser
	assert.Zero(t, p.TickRate())

	_, ok := p.Feed("tick rate: 2000000 Hz")
	assert.False(t, ok)
	assert.Equal(t, uint32(2000000), p.TickRate())

	// Malformed rate lines leave the last good value alone.
	p.Feed("tick rate: lots Hz")
	assert.Equal(t, uint32(2000000), p.TickRate())
}

func TestParserMalformedVerboseValues(t *testing.T) {
	var p Parser

	_, ok := p.Feed("overflows: nope")
	assert.False(t, ok)
	_, ok = p.Feed("ticks: 100")
	assert.False(t, ok, "bad overflows line must not arm a pair")

	p.Feed("overflows: 0")
	_, ok = p.Feed("ticks: 99999")
	assert.False(t, ok, "tick value beyond 16 bits is garbage")
}
