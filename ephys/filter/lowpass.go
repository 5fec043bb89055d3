package filter

import (
	"fmt"
	"math"
)

// LowpassConfig configures the zero-phase Butterworth lowpass stage.
type LowpassConfig struct {
	// Cutoff frequency in Hz. Values in (0, 1] are interpreted as
	// normalized fractions of the Nyquist frequency. Cutoffs at or above
	// Nyquist are clamped to 0.99 × Nyquist.
	Cutoff float64

	// SampleRate in Hz. Default 1000.
	SampleRate float64

	// Order of the Butterworth response. Default 5.
	Order int
}

// DefaultLowpassConfig returns the lowpass defaults used by the chain.
func DefaultLowpassConfig() LowpassConfig {
	return LowpassConfig{SampleRate: 1000, Order: 5}
}

// Lowpass applies an order-N Butterworth lowpass as a cascade of biquad
// sections, filtering forward and then reverse so the net response has
// zero phase distortion (transients are attenuated but not shifted).
func Lowpass(data []float64, cfg LowpassConfig) ([]float64, error) {
	if len(data) == 0 {
		return nil, ErrEmptyInput
	}

	sampleRate := cfg.SampleRate
	if sampleRate <= 0 {
		if cfg.SampleRate < 0 {
			return nil, fmt.Errorf("%w: %f", ErrSampleRate, cfg.SampleRate)
		}

		sampleRate = 1000
	}

	order := cfg.Order
	if order == 0 {
		order = 5
	}

	if order < 0 {
		return nil, fmt.Errorf("%w: %d", ErrOrder, order)
	}

	cutoff := cfg.Cutoff
	if cutoff <= 0 {
		return nil, fmt.Errorf("%w: %f", ErrCutoff, cutoff)
	}

	nyquist := sampleRate / 2
	if cutoff <= 1 {
		cutoff *= nyquist
	}

	// Designs at or above Nyquist are numerically unstable; clamp.
	if cutoff >= nyquist {
		cutoff = 0.99 * nyquist
	}

	sections := designButterworthLP(cutoff, sampleRate, order)

	out := make([]float64, len(data))
	copy(out, data)

	// Forward pass.
	applyCascade(sections, out)

	// Reverse pass with fresh section state cancels the phase shift of
	// the forward pass.
	reverse(out)
	applyCascade(designButterworthLP(cutoff, sampleRate, order), out)
	reverse(out)

	return out, nil
}

// biquadSection is one second-order filter stage in Direct Form II
// Transposed, with a0 normalized to 1.
type biquadSection struct {
	b0, b1, b2 float64
	a1, a2     float64

	d0, d1 float64
}

func (s *biquadSection) processBlock(buf []float64) {
	for i, x := range buf {
		y := s.b0*x + s.d0
		s.d0 = s.b1*x - s.a1*y + s.d1
		s.d1 = s.b2*x - s.a2*y
		buf[i] = y
	}
}

func applyCascade(sections []biquadSection, buf []float64) {
	for i := range sections {
		sections[i].processBlock(buf)
	}
}

func reverse(buf []float64) {
	for i, j := 0, len(buf)-1; i < j; i, j = i+1, j-1 {
		buf[i], buf[j] = buf[j], buf[i]
	}
}

// designButterworthLP returns the biquad cascade for a lowpass
// Butterworth of the given order. Odd orders get a trailing first-order
// section.
func designButterworthLP(freq, sampleRate float64, order int) []biquadSection {
	sections := make([]biquadSection, 0, (order+1)/2)

	n2 := order / 2
	for i := n2 - 1; i >= 0; i-- {
		sections = append(sections, lowpassRBJ(freq, butterworthQ(order, i), sampleRate))
	}

	if order%2 != 0 {
		sections = append(sections, firstOrderLP(freq, sampleRate))
	}

	return sections
}

// butterworthQ returns the quality factor of biquad section index for a
// Butterworth filter of the given order.
func butterworthQ(order, index int) float64 {
	theta := math.Pi * float64(2*index+1) / (2 * float64(order))

	s := math.Sin(theta)
	if s == 0 {
		return 1 / math.Sqrt2
	}

	return 1 / (2 * s)
}

// lowpassRBJ designs a lowpass biquad at freq (Hz) with quality factor q
// using the RBJ cookbook formula.
func lowpassRBJ(freq, q, sampleRate float64) biquadSection {
	w0 := 2 * math.Pi * freq / sampleRate
	cw := math.Cos(w0)
	sw := math.Sin(w0)
	alpha := sw / (2 * q)

	a0 := 1 + alpha

	return biquadSection{
		b0: (1 - cw) / 2 / a0,
		b1: (1 - cw) / a0,
		b2: (1 - cw) / 2 / a0,
		a1: -2 * cw / a0,
		a2: (1 - alpha) / a0,
	}
}

// firstOrderLP designs the first-order tail section used for odd filter
// orders (b2 = a2 = 0).
func firstOrderLP(freq, sampleRate float64) biquadSection {
	k := math.Tan(math.Pi * freq / sampleRate)
	norm := 1 / (1 + k)

	return biquadSection{
		b0: k * norm,
		b1: k * norm,
		a1: (k - 1) * norm,
	}
}
