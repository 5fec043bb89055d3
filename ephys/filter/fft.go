package filter

import (
	"fmt"

	algofft "github.com/cwbudde/algo-fft"
	"github.com/cwbudde/algo-vecmath"
)

// FFTConfig configures the frequency-domain denoise stage.
type FFTConfig struct {
	// Threshold is the fraction of the maximum bin magnitude below which
	// bins are zeroed. Must be in [0, 1]. Zero keeps every bin.
	Threshold float64

	// SampleRate in Hz, used only to resolve the frequency band. Default
	// 1000.
	SampleRate float64

	// MinFreq/MaxFreq restrict retained bins to |f| within [MinFreq,
	// MaxFreq] Hz. The band is active when MaxFreq > 0.
	MinFreq float64
	MaxFreq float64
}

// DefaultFFTConfig returns the denoise defaults.
func DefaultFFTConfig() FFTConfig {
	return FFTConfig{Threshold: 0.2, SampleRate: 1000}
}

// FFTDenoise removes low-magnitude frequency content: bins whose
// magnitude falls below Threshold × max magnitude are zeroed, optionally
// intersected with an explicit frequency band. The DC bin is always
// retained. The input is zero-padded to a power of two internally; the
// returned slice has the input length.
func FFTDenoise(data []float64, cfg FFTConfig) ([]float64, error) {
	n := len(data)
	if n == 0 {
		return nil, ErrEmptyInput
	}

	if cfg.Threshold < 0 || cfg.Threshold > 1 {
		return nil, fmt.Errorf("%w: %f", ErrThreshold, cfg.Threshold)
	}

	sampleRate := cfg.SampleRate
	if sampleRate <= 0 {
		sampleRate = 1000
	}

	size := nextPowerOf2(n)

	plan, err := algofft.NewPlan64(size)
	if err != nil {
		return nil, fmt.Errorf("filter: failed to create FFT plan: %w", err)
	}

	padded := make([]complex128, size)
	for i, v := range data {
		padded[i] = complex(v, 0)
	}

	spectrum := make([]complex128, size)
	if err := plan.Forward(spectrum, padded); err != nil {
		return nil, err
	}

	re := make([]float64, size)
	im := make([]float64, size)
	for i, c := range spectrum {
		re[i] = real(c)
		im[i] = imag(c)
	}

	mag := make([]float64, size)
	vecmath.Magnitude(mag, re, im)

	maxMag := 0.0
	for _, m := range mag {
		if m > maxMag {
			maxMag = m
		}
	}

	cut := cfg.Threshold * maxMag
	bandLimited := cfg.MaxFreq > 0

	for k := range spectrum {
		keep := mag[k] > cut

		if keep && bandLimited {
			f := binFrequency(k, size, sampleRate)
			keep = f >= cfg.MinFreq && f <= cfg.MaxFreq
		}

		// The DC bin survives unconditionally so the filter never shifts
		// the signal's operating level.
		if k == 0 {
			keep = true
		}

		if !keep {
			spectrum[k] = 0
		}
	}

	timeDomain := make([]complex128, size)
	if err := plan.Inverse(timeDomain, spectrum); err != nil {
		return nil, err
	}

	out := make([]float64, n)
	for i := range out {
		out[i] = real(timeDomain[i])
	}

	return out, nil
}

// binFrequency returns |f| of bin k for an FFT of the given size, with
// the upper half of the spectrum mapped to negative frequencies.
func binFrequency(k, size int, sampleRate float64) float64 {
	f := float64(k)
	if k > size/2 {
		f = float64(k - size)
	}

	f *= sampleRate / float64(size)
	if f < 0 {
		f = -f
	}

	return f
}

// nextPowerOf2 returns the next power of 2 >= n.
func nextPowerOf2(n int) int {
	size := 1
	for size < n {
		size <<= 1
	}

	return size
}
