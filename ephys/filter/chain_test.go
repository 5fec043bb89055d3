package filter

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-ephys/internal/testutil"
)

func TestChain_NoStagesReturnsCopy(t *testing.T) {
	data := []float64{3, 1, 4, 1, 5}

	out, err := Chain(data, ChainConfig{})
	if err != nil {
		t.Fatalf("Chain: %v", err)
	}

	for i := range out {
		if out[i] != data[i] {
			t.Fatalf("sample %d: got %v, want %v", i, out[i], data[i])
		}
	}

	out[0] = 99
	if data[0] != 3 {
		t.Fatal("Chain returned a view of its input")
	}
}

func TestChain_SingleStageMatchesDirectCall(t *testing.T) {
	data := make([]float64, 120)
	for i := range data {
		data[i] = math.Sin(2*math.Pi*float64(i)/120) + 0.2*math.Sin(float64(i))
	}

	cfg := SavGolConfig{WindowLength: 11, PolyOrder: 3}

	got, err := Chain(data, ChainConfig{SavGol: &cfg})
	if err != nil {
		t.Fatalf("Chain: %v", err)
	}

	want, err := SavGol(data, cfg.WindowLength, cfg.PolyOrder)
	if err != nil {
		t.Fatalf("SavGol: %v", err)
	}

	for i := range got {
		if !almostEqual(got[i], want[i], 1e-12) {
			t.Fatalf("sample %d: got %.12f, want %.12f", i, got[i], want[i])
		}
	}
}

func TestChain_AllStages(t *testing.T) {
	data := spikyTrace(600, 300, 1000)
	for i := range data {
		data[i] += 2 * math.Sin(float64(i))
	}

	extract := DefaultExtractAddConfig()
	savgol := SavGolConfig{WindowLength: 21, PolyOrder: 3}
	fft := FFTConfig{Threshold: 0.05, SampleRate: 1000}
	lowpass := LowpassConfig{Cutoff: 200, SampleRate: 1000, Order: 4}

	out, err := Chain(data, ChainConfig{
		ExtractAdd: &extract,
		SavGol:     &savgol,
		FFT:        &fft,
		Lowpass:    &lowpass,
	})
	if err != nil {
		t.Fatalf("Chain: %v", err)
	}

	if len(out) != len(data) {
		t.Fatalf("length: got %d, want %d", len(out), len(data))
	}

	testutil.RequireFinite(t, out)
}

func TestChain_StageErrorAborts(t *testing.T) {
	data := make([]float64, 50)
	for i := range data {
		data[i] = float64(i)
	}

	bad := SavGolConfig{WindowLength: 11, PolyOrder: 11}

	_, err := Chain(data, ChainConfig{SavGol: &bad})
	if !errors.Is(err, ErrPolyOrder) {
		t.Fatalf("got %v, want ErrPolyOrder", err)
	}
}

func TestChain_EmptyInput(t *testing.T) {
	if _, err := Chain(nil, ChainConfig{}); !errors.Is(err, ErrEmptyInput) {
		t.Fatalf("got %v, want ErrEmptyInput", err)
	}
}
