// Package testutil provides deterministic signal builders and tolerance
// assertions shared by the package tests.
package testutil

import (
	"math"
	"math/rand"
)

// DeterministicNoise generates white noise in [-amplitude, amplitude]
// with a fixed seed for reproducibility.
func DeterministicNoise(seed int64, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}
	return out
}

// DC generates a constant-valued signal.
func DC(value float64, length int) []float64 {
	out := make([]float64, length)
	for i := range out {
		out[i] = value
	}
	return out
}

// StepPulse generates a zero signal carrying a constant level over the
// half-open window [start, end), clamped to the signal bounds.
func StepPulse(level float64, start, end, length int) []float64 {
	out := make([]float64, length)
	for i := start; i < end; i++ {
		if i < 0 || i >= length {
			continue
		}
		out[i] = level
	}
	return out
}

// AddTriangleSpike adds a triangular transient of the given peak
// amplitude and half-width centered at pos, in place.
func AddTriangleSpike(data []float64, pos, halfWidth int, amplitude float64) {
	for i := pos - halfWidth; i <= pos+halfWidth; i++ {
		if i < 0 || i >= len(data) {
			continue
		}
		data[i] += amplitude * (1 - math.Abs(float64(i-pos))/float64(halfWidth))
	}
}

// UniformTimeBase returns length timestamps spaced dt seconds apart.
func UniformTimeBase(dt float64, length int) []float64 {
	out := make([]float64, length)
	for i := range out {
		out[i] = float64(i) * dt
	}
	return out
}
