package stats

import (
	"math"
	"sort"
)

// Summary holds time-domain statistics of a signal segment.
type Summary struct {
	Length     int
	Mean       float64
	Variance   float64 // population variance
	Std        float64
	Skewness   float64
	Kurtosis   float64 // excess kurtosis
	Min        float64
	MinPos     int
	Max        float64
	MaxPos     int
	PeakToPeak float64
	RMS        float64
	Energy     float64 // sum of squares
}

// Calculate computes all statistics in a single pass using Welford's
// online algorithm for numerical stability on the higher-order moments.
// An empty input yields a zero-valued Summary.
func Calculate(data []float64) Summary {
	n := len(data)
	if n == 0 {
		return Summary{}
	}

	// Welford accumulators.
	var (
		mean float64
		m2   float64
		m3   float64
		m4   float64
	)

	var (
		sumSq  float64
		maxVal = data[0]
		maxPos int
		minVal = data[0]
		minPos int
	)

	for i, x := range data {
		ni := float64(i + 1)
		delta := x - mean
		deltaN := delta / ni
		deltaN2 := deltaN * deltaN
		term1 := delta * deltaN * float64(i)

		// M4 must be updated before M3, and M3 before M2.
		m4 += term1*deltaN2*(ni*ni-3*ni+3) + 6*deltaN2*m2 - 4*deltaN*m3
		m3 += term1*deltaN*(float64(i)-1) - 3*deltaN*m2
		m2 += term1
		mean += deltaN

		sumSq += x * x

		if x > maxVal {
			maxVal = x
			maxPos = i
		}

		if x < minVal {
			minVal = x
			minPos = i
		}
	}

	variance := m2 / float64(n)

	s := Summary{
		Length:     n,
		Mean:       mean,
		Variance:   variance,
		Std:        math.Sqrt(variance),
		Min:        minVal,
		MinPos:     minPos,
		Max:        maxVal,
		MaxPos:     maxPos,
		PeakToPeak: maxVal - minVal,
		RMS:        math.Sqrt(sumSq / float64(n)),
		Energy:     sumSq,
	}

	if m2 > 0 {
		s.Skewness = math.Sqrt(float64(n)) * m3 / math.Pow(m2, 1.5)
		s.Kurtosis = float64(n)*m4/(m2*m2) - 3
	}

	return s
}

// Mean returns the arithmetic mean, or 0 for empty input.
func Mean(data []float64) float64 {
	if len(data) == 0 {
		return 0
	}

	sum := 0.0
	for _, v := range data {
		sum += v
	}

	return sum / float64(len(data))
}

// Std returns the population standard deviation, or 0 for empty input.
func Std(data []float64) float64 {
	n := len(data)
	if n == 0 {
		return 0
	}

	mean := Mean(data)

	var sum float64
	for _, v := range data {
		d := v - mean
		sum += d * d
	}

	return math.Sqrt(sum / float64(n))
}

// Median returns the median of data without mutating it. Even-length
// inputs yield the average of the two middle values. Empty input yields 0.
func Median(data []float64) float64 {
	n := len(data)
	if n == 0 {
		return 0
	}

	sorted := make([]float64, n)
	copy(sorted, data)
	sort.Float64s(sorted)

	if n%2 == 1 {
		return sorted[n/2]
	}

	return (sorted[n/2-1] + sorted[n/2]) / 2
}

// Min returns the smallest value, or 0 for empty input.
func Min(data []float64) float64 {
	if len(data) == 0 {
		return 0
	}

	minVal := data[0]
	for _, v := range data[1:] {
		if v < minVal {
			minVal = v
		}
	}

	return minVal
}

// Interval computes a Summary over the half-open range [start, end),
// clamping both bounds into the valid index range and reordering them if
// reversed.
func Interval(data []float64, start, end int) Summary {
	if start > end {
		start, end = end, start
	}

	if start < 0 {
		start = 0
	}

	if end > len(data) {
		end = len(data)
	}

	return Calculate(data[start:end])
}
