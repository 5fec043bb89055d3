package analysis

import "errors"

// Error kinds of the pipeline. Stage errors wrap one of these, so
// callers can classify failures with errors.Is.
var (
	// ErrInput marks malformed traces: mismatched lengths, non-finite
	// samples, non-monotonic time.
	ErrInput = errors.New("analysis: invalid input")

	// ErrParameter marks invalid analysis parameters.
	ErrParameter = errors.New("analysis: invalid parameter")

	// ErrInsufficientData marks traces or sub-ranges too short for the
	// requested operation.
	ErrInsufficientData = errors.New("analysis: insufficient data")

	// ErrNumeric marks degenerate divisors in normalization or
	// capacitance computation.
	ErrNumeric = errors.New("analysis: degenerate numeric condition")
)
