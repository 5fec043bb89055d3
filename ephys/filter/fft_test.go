package filter

import (
	"errors"
	"math"
	"testing"
)

func TestFFTDenoise_RemovesWeakComponent(t *testing.T) {
	n := 64
	data := make([]float64, n)
	for i := range data {
		// Strong 4-cycle tone plus a weak 13-cycle tone; both are exact
		// bins, so the spectrum is clean.
		data[i] = math.Sin(2*math.Pi*4*float64(i)/float64(n)) +
			0.05*math.Sin(2*math.Pi*13*float64(i)/float64(n))
	}

	out, err := FFTDenoise(data, FFTConfig{Threshold: 0.2, SampleRate: 64})
	if err != nil {
		t.Fatalf("FFTDenoise: %v", err)
	}

	for i := range out {
		want := math.Sin(2 * math.Pi * 4 * float64(i) / float64(n))
		if !almostEqual(out[i], want, 1e-9) {
			t.Errorf("sample %d: got %.12f, want %.12f", i, out[i], want)
		}
	}
}

func TestFFTDenoise_ZeroThresholdKeepsSignal(t *testing.T) {
	n := 32
	data := make([]float64, n)
	for i := range data {
		data[i] = math.Sin(2*math.Pi*3*float64(i)/float64(n)) + 0.5
	}

	out, err := FFTDenoise(data, FFTConfig{Threshold: 0, SampleRate: 32})
	if err != nil {
		t.Fatalf("FFTDenoise: %v", err)
	}

	for i := range out {
		if !almostEqual(out[i], data[i], 1e-9) {
			t.Errorf("sample %d: got %.12f, want %.12f", i, out[i], data[i])
		}
	}
}

func TestFFTDenoise_PreservesDC(t *testing.T) {
	data := make([]float64, 64)
	for i := range data {
		data[i] = 5
	}

	// Threshold 1 zeroes everything except the unconditional DC bin.
	out, err := FFTDenoise(data, FFTConfig{Threshold: 1, SampleRate: 1000})
	if err != nil {
		t.Fatalf("FFTDenoise: %v", err)
	}

	for i := range out {
		if !almostEqual(out[i], 5, 1e-9) {
			t.Fatalf("sample %d: got %.12f, want 5", i, out[i])
		}
	}
}

func TestFFTDenoise_BandLimit(t *testing.T) {
	n := 64
	data := make([]float64, n)
	for i := range data {
		// Equal-amplitude tones at 4 Hz and 13 Hz (sample rate 64 Hz, so
		// bin k is k Hz).
		data[i] = math.Sin(2*math.Pi*4*float64(i)/float64(n)) +
			math.Sin(2*math.Pi*13*float64(i)/float64(n))
	}

	out, err := FFTDenoise(data, FFTConfig{
		Threshold:  0,
		SampleRate: 64,
		MinFreq:    1,
		MaxFreq:    8,
	})
	if err != nil {
		t.Fatalf("FFTDenoise: %v", err)
	}

	for i := range out {
		want := math.Sin(2 * math.Pi * 4 * float64(i) / float64(n))
		if !almostEqual(out[i], want, 1e-9) {
			t.Errorf("sample %d: got %.12f, want %.12f", i, out[i], want)
		}
	}
}

func TestFFTDenoise_NonPowerOfTwoLength(t *testing.T) {
	data := make([]float64, 100)
	for i := range data {
		data[i] = float64(i % 7)
	}

	out, err := FFTDenoise(data, FFTConfig{Threshold: 0, SampleRate: 1000})
	if err != nil {
		t.Fatalf("FFTDenoise: %v", err)
	}

	if len(out) != len(data) {
		t.Fatalf("length: got %d, want %d", len(out), len(data))
	}
}

func TestFFTDenoise_Errors(t *testing.T) {
	if _, err := FFTDenoise(nil, DefaultFFTConfig()); !errors.Is(err, ErrEmptyInput) {
		t.Fatalf("empty input: got %v, want ErrEmptyInput", err)
	}

	if _, err := FFTDenoise([]float64{1, 2}, FFTConfig{Threshold: -0.1}); !errors.Is(err, ErrThreshold) {
		t.Fatalf("negative threshold: got %v, want ErrThreshold", err)
	}

	if _, err := FFTDenoise([]float64{1, 2}, FFTConfig{Threshold: 1.5}); !errors.Is(err, ErrThreshold) {
		t.Fatalf("threshold > 1: got %v, want ErrThreshold", err)
	}
}
