package regression

import (
	"errors"
	"fmt"
)

// Regression errors.
var (
	ErrEmptyInput     = errors.New("regression: input must not be empty")
	ErrLengthMismatch = errors.New("regression: time and data must have the same length")
	ErrWindowTooShort = errors.New("regression: fit window must contain at least two samples")
	ErrDegenerateTime = errors.New("regression: time values in the fit window are identical")
)

// Config controls how the leading segment is replaced.
type Config struct {
	// WindowSize is the number of initial samples the line is fitted to.
	// Default 100, clamped to the input length.
	WindowSize int

	// Blend smooths the transition between the fitted line and the
	// original signal with linearly decaying weights. Without it the
	// whole fit window is replaced outright.
	Blend bool

	// BlendWindow is the length of the transition in samples. Default 20.
	BlendWindow int
}

// DefaultConfig returns the filter defaults.
func DefaultConfig() Config {
	return Config{WindowSize: 100, Blend: true, BlendWindow: 20}
}

// LineFit is an ordinary least-squares line fitted to the leading
// samples of a trace.
type LineFit struct {
	Slope     float64
	Intercept float64

	// R2 is the coefficient of determination of the fit.
	R2 float64

	// WindowSize is the number of samples actually used.
	WindowSize int
}

// Trend classifies the fitted slope.
func (f LineFit) Trend() string {
	switch {
	case f.Slope > 0:
		return "increasing"
	case f.Slope < 0:
		return "decreasing"
	default:
		return "flat"
	}
}

// Predict evaluates the fitted line at time t.
func (f LineFit) Predict(t float64) float64 {
	return f.Slope*t + f.Intercept
}

// Fit performs an ordinary least-squares fit of data against time over
// the first windowSize samples. A windowSize of zero uses the default;
// larger-than-input windows are clamped.
func Fit(time, data []float64, windowSize int) (LineFit, error) {
	if len(data) == 0 {
		return LineFit{}, ErrEmptyInput
	}

	if len(time) != len(data) {
		return LineFit{}, fmt.Errorf("%w: time=%d data=%d", ErrLengthMismatch, len(time), len(data))
	}

	if windowSize == 0 {
		windowSize = DefaultConfig().WindowSize
	}

	if windowSize > len(data) {
		windowSize = len(data)
	}

	if windowSize < 2 {
		return LineFit{}, fmt.Errorf("%w: window=%d", ErrWindowTooShort, windowSize)
	}

	n := float64(windowSize)

	var sumT, sumY float64
	for i := 0; i < windowSize; i++ {
		sumT += time[i]
		sumY += data[i]
	}

	meanT := sumT / n
	meanY := sumY / n

	var covTY, varT float64
	for i := 0; i < windowSize; i++ {
		dt := time[i] - meanT
		covTY += dt * (data[i] - meanY)
		varT += dt * dt
	}

	if varT == 0 {
		return LineFit{}, ErrDegenerateTime
	}

	fit := LineFit{
		Slope:      covTY / varT,
		WindowSize: windowSize,
	}
	fit.Intercept = meanY - fit.Slope*meanT

	var ssRes, ssTot float64
	for i := 0; i < windowSize; i++ {
		res := data[i] - fit.Predict(time[i])
		dev := data[i] - meanY

		ssRes += res * res
		ssTot += dev * dev
	}

	// A constant signal has no variance to explain; the flat line fits it
	// perfectly.
	if ssTot == 0 {
		fit.R2 = 1
	} else {
		fit.R2 = 1 - ssRes/ssTot
	}

	return fit, nil
}

// Apply fits a line to the leading window and substitutes it into a copy
// of the signal. With blending enabled the fitted line fades into the
// original data across the blend window, weights decaying linearly from
// 1 to 0, so the boundary carries no step. The input slices are not
// modified.
func Apply(time, data []float64, cfg Config) ([]float64, LineFit, error) {
	fit, err := Fit(time, data, cfg.WindowSize)
	if err != nil {
		return nil, LineFit{}, err
	}

	out := make([]float64, len(data))
	copy(out, data)

	if !cfg.Blend {
		for i := 0; i < fit.WindowSize; i++ {
			out[i] = fit.Predict(time[i])
		}

		return out, fit, nil
	}

	blendWindow := cfg.BlendWindow
	if blendWindow <= 0 {
		blendWindow = DefaultConfig().BlendWindow
	}

	blendEnd := blendWindow
	if blendEnd > fit.WindowSize {
		blendEnd = fit.WindowSize
	}

	for i := 0; i < blendEnd; i++ {
		w := 1.0
		if blendEnd > 1 {
			w = 1 - float64(i)/float64(blendEnd-1)
		}

		out[i] = w*fit.Predict(time[i]) + (1-w)*data[i]
	}

	return out, fit, nil
}
