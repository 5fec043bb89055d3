package regression

import (
	"errors"
	"math"
	"testing"
)

func almostEqual(a, b, eps float64) bool {
	return math.Abs(a-b) <= eps
}

func rampTrace(n int, slope, intercept float64) (time, data []float64) {
	time = make([]float64, n)
	data = make([]float64, n)
	for i := range time {
		time[i] = float64(i) * 0.001
		data[i] = slope*time[i] + intercept
	}

	return time, data
}

func TestFit_RecoversLine(t *testing.T) {
	time, data := rampTrace(200, 3.5, -2)

	fit, err := Fit(time, data, 100)
	if err != nil {
		t.Fatalf("Fit: %v", err)
	}

	if !almostEqual(fit.Slope, 3.5, 1e-9) {
		t.Errorf("slope: got %v, want 3.5", fit.Slope)
	}

	if !almostEqual(fit.Intercept, -2, 1e-9) {
		t.Errorf("intercept: got %v, want -2", fit.Intercept)
	}

	if !almostEqual(fit.R2, 1, 1e-12) {
		t.Errorf("R2: got %v, want 1", fit.R2)
	}

	if fit.WindowSize != 100 {
		t.Errorf("window size: got %d, want 100", fit.WindowSize)
	}
}

func TestFit_WindowClampedToInput(t *testing.T) {
	time, data := rampTrace(30, 1, 0)

	fit, err := Fit(time, data, 1000)
	if err != nil {
		t.Fatalf("Fit: %v", err)
	}

	if fit.WindowSize != 30 {
		t.Fatalf("window size: got %d, want 30", fit.WindowSize)
	}
}

func TestFit_Trend(t *testing.T) {
	cases := []struct {
		slope float64
		want  string
	}{
		{2, "increasing"},
		{-0.5, "decreasing"},
		{0, "flat"},
	}

	for _, tc := range cases {
		if got := (LineFit{Slope: tc.slope}).Trend(); got != tc.want {
			t.Errorf("slope %v: got %q, want %q", tc.slope, got, tc.want)
		}
	}
}

func TestFit_ConstantSignal(t *testing.T) {
	time, _ := rampTrace(50, 0, 0)
	data := make([]float64, 50)
	for i := range data {
		data[i] = 7
	}

	fit, err := Fit(time, data, 50)
	if err != nil {
		t.Fatalf("Fit: %v", err)
	}

	if fit.Slope != 0 {
		t.Errorf("slope: got %v, want 0", fit.Slope)
	}

	if fit.R2 != 1 {
		t.Errorf("R2: got %v, want 1", fit.R2)
	}
}

func TestFit_Errors(t *testing.T) {
	if _, err := Fit(nil, nil, 10); !errors.Is(err, ErrEmptyInput) {
		t.Fatalf("empty input: got %v, want ErrEmptyInput", err)
	}

	if _, err := Fit([]float64{1}, []float64{1, 2}, 10); !errors.Is(err, ErrLengthMismatch) {
		t.Fatalf("length mismatch: got %v, want ErrLengthMismatch", err)
	}

	if _, err := Fit([]float64{1}, []float64{1}, 10); !errors.Is(err, ErrWindowTooShort) {
		t.Fatalf("single sample: got %v, want ErrWindowTooShort", err)
	}

	if _, err := Fit([]float64{2, 2, 2}, []float64{1, 2, 3}, 3); !errors.Is(err, ErrDegenerateTime) {
		t.Fatalf("constant time: got %v, want ErrDegenerateTime", err)
	}
}

func TestApply_ReplacesWindowWithoutBlend(t *testing.T) {
	time, data := rampTrace(200, 1, 0)

	// Perturb the leading segment; the fit over 100 samples still tracks
	// the underlying line closely, and the window is replaced outright.
	data[0] += 50

	out, fit, err := Apply(time, data, Config{WindowSize: 100, Blend: false})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}

	for i := 0; i < fit.WindowSize; i++ {
		if !almostEqual(out[i], fit.Predict(time[i]), 1e-12) {
			t.Fatalf("sample %d: got %v, want fitted %v", i, out[i], fit.Predict(time[i]))
		}
	}

	// The tail is untouched.
	for i := fit.WindowSize; i < len(out); i++ {
		if out[i] != data[i] {
			t.Fatalf("sample %d: got %v, want original %v", i, out[i], data[i])
		}
	}
}

func TestApply_BlendWeightsDecay(t *testing.T) {
	time, data := rampTrace(200, 2, 1)

	cfg := Config{WindowSize: 100, Blend: true, BlendWindow: 20}

	out, fit, err := Apply(time, data, cfg)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}

	// First blend sample is pure fit, last is pure data.
	if !almostEqual(out[0], fit.Predict(time[0]), 1e-12) {
		t.Errorf("blend start: got %v, want %v", out[0], fit.Predict(time[0]))
	}

	if out[cfg.BlendWindow-1] != data[cfg.BlendWindow-1] {
		t.Errorf("blend end: got %v, want %v", out[cfg.BlendWindow-1], data[cfg.BlendWindow-1])
	}

	// Beyond the blend window the signal is untouched.
	for i := cfg.BlendWindow; i < len(out); i++ {
		if out[i] != data[i] {
			t.Fatalf("sample %d: got %v, want original %v", i, out[i], data[i])
		}
	}
}

func TestApply_DoesNotModifyInput(t *testing.T) {
	time, data := rampTrace(120, 1, 0)
	data[0] += 10

	orig := make([]float64, len(data))
	copy(orig, data)

	if _, _, err := Apply(time, data, DefaultConfig()); err != nil {
		t.Fatalf("Apply: %v", err)
	}

	for i := range data {
		if data[i] != orig[i] {
			t.Fatalf("input modified at %d", i)
		}
	}
}
