package filter

import (
	"math"
)

// Metrics quantifies how much a filter changed a signal relative to the
// original.
type Metrics struct {
	MSE           float64 // mean squared error
	RMSE          float64 // root mean squared error
	MAE           float64 // mean absolute error
	SNRdB         float64 // signal-to-residual ratio in dB, +Inf for identical signals
	MaxDeviation  float64 // largest absolute per-sample difference
	MeanDeviation float64 // mean signed difference (level shift)
}

// CalculateMetrics compares a filtered signal against its original.
func CalculateMetrics(original, filtered []float64) (Metrics, error) {
	if len(original) == 0 {
		return Metrics{}, ErrEmptyInput
	}

	if len(original) != len(filtered) {
		return Metrics{}, ErrLengthMismatch
	}

	n := float64(len(original))

	var sumSq, sumAbs, sumDiff, signalPower, maxDev float64
	for i, orig := range original {
		diff := filtered[i] - orig

		sumSq += diff * diff
		sumDiff += diff
		signalPower += orig * orig

		abs := math.Abs(diff)
		sumAbs += abs
		if abs > maxDev {
			maxDev = abs
		}
	}

	m := Metrics{
		MSE:           sumSq / n,
		MAE:           sumAbs / n,
		MaxDeviation:  maxDev,
		MeanDeviation: sumDiff / n,
	}
	m.RMSE = math.Sqrt(m.MSE)

	if sumSq == 0 {
		m.SNRdB = math.Inf(1)
	} else {
		m.SNRdB = 10 * math.Log10(signalPower/sumSq)
	}

	return m, nil
}
