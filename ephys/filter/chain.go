package filter

import (
	"fmt"
)

// ChainConfig selects which stages of the filter chain run. A stage runs
// exactly when its config pointer is non-nil; stage order is fixed.
type ChainConfig struct {
	ExtractAdd *ExtractAddConfig
	SavGol     *SavGolConfig
	FFT        *FFTConfig
	Lowpass    *LowpassConfig
}

// Chain runs the enabled stages in fixed order: extract-add, then
// Savitzky-Golay, then FFT denoise, then zero-phase lowpass. The input
// is never modified; each stage consumes the previous stage's output.
// The first failing stage aborts the chain.
func Chain(data []float64, cfg ChainConfig) ([]float64, error) {
	if len(data) == 0 {
		return nil, ErrEmptyInput
	}

	out := make([]float64, len(data))
	copy(out, data)

	var err error

	if cfg.ExtractAdd != nil {
		out, err = ExtractAdd(out, *cfg.ExtractAdd)
		if err != nil {
			return nil, fmt.Errorf("filter: extract-add stage: %w", err)
		}
	}

	if cfg.SavGol != nil {
		out, err = SavGol(out, cfg.SavGol.WindowLength, cfg.SavGol.PolyOrder)
		if err != nil {
			return nil, fmt.Errorf("filter: savgol stage: %w", err)
		}
	}

	if cfg.FFT != nil {
		out, err = FFTDenoise(out, *cfg.FFT)
		if err != nil {
			return nil, fmt.Errorf("filter: fft stage: %w", err)
		}
	}

	if cfg.Lowpass != nil {
		out, err = Lowpass(out, *cfg.Lowpass)
		if err != nil {
			return nil, fmt.Errorf("filter: lowpass stage: %w", err)
		}
	}

	return out, nil
}
