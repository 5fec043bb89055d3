package trace

import (
	"errors"
	"fmt"
	"math"
)

// Validation errors.
var (
	ErrLengthMismatch  = errors.New("trace: time and current must have the same length")
	ErrEmpty           = errors.New("trace: trace must contain at least one sample")
	ErrNonFinite       = errors.New("trace: samples must be finite")
	ErrNonMonotonic    = errors.New("trace: time must be strictly increasing")
	ErrInvalidInterval = errors.New("trace: invalid sample interval")
)

// Trace holds one recorded sweep: time in seconds and current in picoamps.
// Both slices always have the same length.
type Trace struct {
	Time    []float64
	Current []float64
}

// New validates the sample sequences and returns a Trace referencing them.
// The caller must not mutate the slices afterwards.
func New(time, current []float64) (Trace, error) {
	t := Trace{Time: time, Current: current}
	if err := t.Validate(); err != nil {
		return Trace{}, err
	}

	return t, nil
}

// Len returns the number of samples.
func (t Trace) Len() int {
	return len(t.Current)
}

// Validate checks the Trace invariants: equal lengths, at least one
// sample, finite values, strictly increasing time.
func (t Trace) Validate() error {
	if len(t.Time) != len(t.Current) {
		return fmt.Errorf("%w: time=%d current=%d", ErrLengthMismatch, len(t.Time), len(t.Current))
	}

	if len(t.Time) == 0 {
		return ErrEmpty
	}

	for i, v := range t.Current {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: current[%d]=%v", ErrNonFinite, i, v)
		}
	}

	for i, v := range t.Time {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: time[%d]=%v", ErrNonFinite, i, v)
		}

		if i > 0 && v <= t.Time[i-1] {
			return fmt.Errorf("%w: time[%d]=%v <= time[%d]=%v", ErrNonMonotonic, i, v, i-1, t.Time[i-1])
		}
	}

	return nil
}

// SamplingRate estimates the sampling rate in Hz as the reciprocal of the
// mean sample interval. A single-sample trace has no interval and returns
// an error.
func (t Trace) SamplingRate() (float64, error) {
	if len(t.Time) < 2 {
		return 0, fmt.Errorf("%w: need at least 2 samples", ErrInvalidInterval)
	}

	span := t.Time[len(t.Time)-1] - t.Time[0]
	mean := span / float64(len(t.Time)-1)
	if mean <= 0 {
		return 0, fmt.Errorf("%w: mean dt=%v", ErrInvalidInterval, mean)
	}

	return 1 / mean, nil
}

// Clone returns a deep copy of the trace.
func (t Trace) Clone() Trace {
	out := Trace{
		Time:    make([]float64, len(t.Time)),
		Current: make([]float64, len(t.Current)),
	}
	copy(out.Time, t.Time)
	copy(out.Current, t.Current)

	return out
}

// Slice returns the half-open sample range [start, end) as a new Trace
// sharing the underlying arrays. Bounds are clamped to the trace length
// and reordered if reversed.
func (t Trace) Slice(start, end int) Trace {
	if start > end {
		start, end = end, start
	}

	start = clampIndex(start, len(t.Current))
	end = clampIndex(end, len(t.Current))

	return Trace{Time: t.Time[start:end], Current: t.Current[start:end]}
}

func clampIndex(i, n int) int {
	if i < 0 {
		return 0
	}

	if i > n {
		return n
	}

	return i
}
