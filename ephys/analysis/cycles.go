package analysis

import (
	"github.com/cwbudde/algo-ephys/ephys/peaks"
	"github.com/cwbudde/algo-ephys/ephys/stats"
)

// Cycle is one detected stimulus repetition, a half-open index window
// [Start, End) into the processed trace. Time is cycle-relative, zeroed
// at the window start. Data and Time are views into the result buffers.
type Cycle struct {
	Start, End int

	Time []float64
	Data []float64
}

// findCycles locates stimulus cycles as troughs of the processed trace.
// Troughs must stand out by one standard deviation and be at least one
// t1 period apart; the first NCycles troughs each get a window from half
// a period before the trough to two periods after it, clamped to the
// trace bounds. No troughs means no analyzable cycles, not an error.
func findCycles(time, data []float64, p Params) []Cycle {
	samplingRate := samplingRateOf(time)
	t1Samples := int(p.T1 * samplingRate / 1000)
	if t1Samples < 1 {
		t1Samples = 1
	}

	troughs := peaks.FindTroughs(data, peaks.Config{
		Prominence: stats.Calculate(data).Std,
		Distance:   t1Samples,
	})

	if len(troughs) > p.NCycles {
		troughs = troughs[:p.NCycles]
	}

	cycles := make([]Cycle, 0, len(troughs))
	for _, trough := range troughs {
		start := trough.Index - t1Samples/2
		if start < 0 {
			start = 0
		}

		end := trough.Index + 2*t1Samples
		if end > len(data) {
			end = len(data)
		}

		relTime := make([]float64, end-start)
		for i := range relTime {
			relTime[i] = time[start+i] - time[start]
		}

		cycles = append(cycles, Cycle{
			Start: start,
			End:   end,
			Time:  relTime,
			Data:  data[start:end],
		})
	}

	return cycles
}

// samplingRateOf estimates the sampling rate as the reciprocal of the
// mean time step.
func samplingRateOf(time []float64) float64 {
	if len(time) < 2 {
		return 0
	}

	meanDt := (time[len(time)-1] - time[0]) / float64(len(time)-1)
	if meanDt <= 0 {
		return 0
	}

	return 1 / meanDt
}
