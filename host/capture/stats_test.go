package capture

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"pulsespan/core"
)

func TestSummarize(t *testing.T) {
	samples := []core.Delta{
		{Ticks: 100},
		{Ticks: 200},
		{Ticks: 300},
	}

	sum := Summarize(samples)
	assert.Equal(t, 3, sum.Count)
	assert.Equal(t, uint64(100), sum.Min)
	assert.Equal(t, uint64(300), sum.Max)
	assert.InDelta(t, 200.0, sum.Mean, 1e-9)
	assert.InDelta(t, 100.0, sum.StdDev, 1e-9)
}

func TestSummarizeUnfoldsWraparounds(t *testing.T) {
	samples := []core.Delta{
		{Overflows: 1, Ticks: 500},
		{Overflows: 0, Ticks: 500},
	}

	sum := Summarize(samples)
	assert.Equal(t, uint64(500), sum.Min)
	assert.Equal(t, uint64(66036), sum.Max)
	assert.InDelta(t, 33268.0, sum.Mean, 1e-9)
}

func TestSummarizeSingleSample(t *testing.T) {
	sum := Summarize([]core.Delta{{Ticks: 500}})
	assert.Equal(t, 1, sum.Count)
	assert.Equal(t, uint64(500), sum.Min)
	assert.Equal(t, uint64(500), sum.Max)
	assert.InDelta(t, 500.0, sum.Mean, 1e-9)
	assert.Zero(t, sum.StdDev)
}

func TestSummarizeEmpty(t *testing.T) {
	assert.Equal(t, Summary{}, Summarize(nil))
}

func TestMicros(t *testing.T) {
	assert.InDelta(t, 3018.0, Micros(6036, 2000000), 1e-9)
	assert.InDelta(t, 0.5, Micros(1, 2000000), 1e-9)
	assert.Zero(t, Micros(6036, 0))
}
