package capture

import (
	"math"

	"pulsespan/core"
)

// Summary aggregates collected pulse widths, all in ticks. Widths are
// unfolded before aggregation, so verbose samples that span counter
// wraparounds contribute their full width.
type Summary struct {
	Count  int
	Min    uint64
	Max    uint64
	Mean   float64
	StdDev float64 // sample standard deviation
}

// Summarize folds the samples into a summary.
func Summarize(samples []core.Delta) Summary {
	if len(samples) == 0 {
		return Summary{}
	}

	sum := Summary{Count: len(samples), Min: math.MaxUint64}
	var total float64
	for _, d := range samples {
		w := d.Wide()
		if w < sum.Min {
			sum.Min = w
		}
		if w > sum.Max {
			sum.Max = w
		}
		total += float64(w)
	}
	sum.Mean = total / float64(sum.Count)

	if sum.Count > 1 {
		var sq float64
		for _, d := range samples {
			dev := float64(d.Wide()) - sum.Mean
			sq += dev * dev
		}
		sum.StdDev = math.Sqrt(sq / float64(sum.Count-1))
	}
	return sum
}

// Micros converts a tick quantity to microseconds at the given counter rate.
// An unknown rate of 0 yields 0.
func Micros(ticks float64, tickHz uint32) float64 {
	if tickHz == 0 {
		return 0
	}
	return ticks * 1e6 / float64(tickHz)
}
