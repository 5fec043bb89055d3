package filter

import "errors"

// Filter errors.
var (
	ErrEmptyInput     = errors.New("filter: input must not be empty")
	ErrWindowLength   = errors.New("filter: window length must be positive")
	ErrWindowTooLong  = errors.New("filter: window length exceeds input length")
	ErrPolyOrder      = errors.New("filter: polynomial order must be non-negative and less than the window length")
	ErrThreshold      = errors.New("filter: threshold must be in [0, 1]")
	ErrCutoff         = errors.New("filter: cutoff frequency must be positive")
	ErrSampleRate     = errors.New("filter: sample rate must be positive")
	ErrOrder          = errors.New("filter: filter order must be positive")
	ErrLengthMismatch = errors.New("filter: inputs must have the same length")
	ErrSingular       = errors.New("filter: singular normal equations")
)
