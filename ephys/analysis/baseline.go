package analysis

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-ephys/ephys/stats"
)

const (
	// baselineWindow is the number of leading samples whose median
	// defines the resting current level.
	baselineWindow = 1000

	// cycleBaselineWindow is the number of leading cycle samples used for
	// the per-cycle baseline during normalization.
	cycleBaselineWindow = 100
)

// correctBaseline subtracts the median of the leading window from every
// sample and returns the correction. Applying it twice moves the median
// by about zero, since the corrected leading window has median zero.
func correctBaseline(data []float64) float64 {
	window := len(data)
	if window > baselineWindow {
		window = baselineWindow
	}

	baseline := stats.Median(data[:window])
	for i := range data {
		data[i] -= baseline
	}

	return baseline
}

// normalize rescales the processed trace so the span from the cycle
// baseline to the deepest cycle minimum maps onto |V1 - V0|, anchored at
// V0. It modifies data in place and re-slices the cycle views. With no
// cycles it is a no-op returning a scale of zero.
func normalize(data []float64, cycles []Cycle, p Params) (float64, error) {
	if len(cycles) == 0 {
		return 0, nil
	}

	var baseline float64
	for _, c := range cycles {
		window := len(c.Data)
		if window > cycleBaselineWindow {
			window = cycleBaselineWindow
		}

		baseline += stats.Median(c.Data[:window])
	}
	baseline /= float64(len(cycles))

	amplitude := math.Inf(1)
	for _, c := range cycles {
		if m := stats.Min(c.Data); m < amplitude {
			amplitude = m
		}
	}

	if amplitude == baseline {
		return 0, fmt.Errorf("%w: cycle minimum equals baseline (%g), no amplitude to normalize", ErrNumeric, baseline)
	}

	scale := math.Abs(p.V1-p.V0) / math.Abs(amplitude-baseline)

	for i := range data {
		data[i] -= baseline
	}
	vecmath.ScaleBlock(data, data, scale)
	for i := range data {
		data[i] += p.V0
	}

	for i := range cycles {
		cycles[i].Data = data[cycles[i].Start:cycles[i].End]
	}

	return scale, nil
}
