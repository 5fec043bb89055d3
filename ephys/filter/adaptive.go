package filter

import (
	"fmt"

	"github.com/cwbudde/algo-ephys/ephys/stats"
)

const defaultAdaptiveWindow = 50

// AdaptiveThreshold replaces samples deviating more than two local
// standard deviations from their local mean with that mean. The window
// slides over the signal with edge-replicated padding, so spikes are
// suppressed relative to their immediate surroundings rather than a
// global level.
func AdaptiveThreshold(data []float64, windowSize int) ([]float64, error) {
	if len(data) == 0 {
		return nil, ErrEmptyInput
	}

	if windowSize < 0 {
		return nil, fmt.Errorf("%w: window=%d", ErrWindowLength, windowSize)
	}

	if windowSize == 0 {
		windowSize = defaultAdaptiveWindow
	}

	if windowSize > len(data) {
		windowSize = len(data)
	}

	padding := windowSize / 2
	padded := make([]float64, len(data)+2*padding)

	for i := range padding {
		padded[i] = data[0]
		padded[len(padded)-1-i] = data[len(data)-1]
	}
	copy(padded[padding:], data)

	out := make([]float64, len(data))
	copy(out, data)

	for i := range data {
		window := stats.Calculate(padded[i : i+windowSize])

		dev := data[i] - window.Mean
		if dev < 0 {
			dev = -dev
		}

		if dev > 2*window.Std {
			out[i] = window.Mean
		}
	}

	return out, nil
}
