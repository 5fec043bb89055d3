package analysis

import (
	"github.com/cwbudde/algo-ephys/ephys/stats"
)

// Protocol timing constants, in samples at the 10 kHz acquisition
// convention the stimulus waveform was designed for: 2.8 ms of settling,
// an 80 ms normalized segment, a 20 ms depolarization step and a
// 19.9 ms hyperpolarization step. The literal indices are kept as the
// single source of truth because the acquisition protocol fixes them;
// they are not re-derived from the trace's own sampling rate.
const (
	blueStart      = 28
	blueEnd        = 828
	magentaSamples = 200
	depolStart     = 828
	depolEnd       = 1028
	hyperpolStart  = 1028
	hyperpolEnd    = 1227

	// minPurpleSamples is the trace length the purple windows require;
	// shorter traces get explicitly unavailable purple curves.
	minPurpleSamples = 1227
)

// Window is a half-open index range [Start, End) into the orange curve.
type Window struct {
	Start, End int
}

// Len returns the number of samples in the window.
func (w Window) Len() int {
	return w.End - w.Start
}

// PurpleCurve is one polarity sub-window of the processed trace. Window
// is first-class state: integration and interactive range editing
// consume it rather than re-deriving the indices.
type PurpleCurve struct {
	Window Window
	Time   []float64
	Data   []float64
}

// Curves are the named views over the processed trace. Orange is the
// full processed trace and the index reference for every other view.
// Depol and Hyperpol are nil when the trace is too short for the
// protocol windows; UnavailableReason says why.
type Curves struct {
	Orange  []float64
	Blue    []float64
	Magenta float64

	Depol    *PurpleCurve
	Hyperpol *PurpleCurve

	UnavailableReason string
}

// deriveCurves slices the named views out of the processed trace. All
// views share the orange backing array.
func deriveCurves(time, processed []float64) Curves {
	c := Curves{Orange: processed}

	n := len(processed)

	if n > blueStart {
		end := blueEnd
		if end > n {
			end = n
		}

		c.Blue = processed[blueStart:end]
	}

	if len(c.Blue) > 0 {
		window := len(c.Blue)
		if window > magentaSamples {
			window = magentaSamples
		}

		c.Magenta = stats.Mean(c.Blue[:window])
	}

	if n > minPurpleSamples {
		depol := Window{Start: depolStart, End: depolEnd}
		hyperpol := Window{Start: hyperpolStart, End: hyperpolEnd}

		c.Depol = &PurpleCurve{
			Window: depol,
			Time:   time[depol.Start:depol.End],
			Data:   processed[depol.Start:depol.End],
		}
		c.Hyperpol = &PurpleCurve{
			Window: hyperpol,
			Time:   time[hyperpol.Start:hyperpol.End],
			Data:   processed[hyperpol.Start:hyperpol.End],
		}

		return c
	}

	c.UnavailableReason = "trace too short for the protocol windows"

	return c
}
