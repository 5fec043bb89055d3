package filter

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-ephys/internal/testutil"
)

// spikyTrace builds a smooth baseline carrying a short triangular
// transient, the shape extract-add exists for.
func spikyTrace(n, spikeAt int, amplitude float64) []float64 {
	data := make([]float64, n)
	for i := range data {
		data[i] = 20 * math.Sin(2*math.Pi*float64(i)/float64(n))
	}

	data[spikeAt-1] += amplitude / 2
	data[spikeAt] += amplitude
	data[spikeAt+1] += amplitude / 2

	return data
}

func TestExtractAdd_PreservesSpike(t *testing.T) {
	data := spikyTrace(400, 200, 1000)

	cfg := DefaultExtractAddConfig()

	out, err := ExtractAdd(data, cfg)
	if err != nil {
		t.Fatalf("ExtractAdd: %v", err)
	}

	plain, err := SavGol(data, cfg.WindowLength, cfg.PolyOrder)
	if err != nil {
		t.Fatalf("SavGol: %v", err)
	}

	clean := 20 * math.Sin(2*math.Pi*200/400.0)

	// Plain smoothing spreads the transient across its window;
	// extract-add must keep most of its amplitude.
	if kept := out[200] - clean; kept < 900 {
		t.Fatalf("spike after extract-add: got %.1f, want >= 900", kept)
	}

	if blurred := plain[200] - clean; blurred > 500 {
		t.Fatalf("spike after plain smoothing: got %.1f, want <= 500", blurred)
	}
}

func TestExtractAdd_PreservesNegativeSpike(t *testing.T) {
	data := spikyTrace(400, 150, -800)

	out, err := ExtractAdd(data, DefaultExtractAddConfig())
	if err != nil {
		t.Fatalf("ExtractAdd: %v", err)
	}

	clean := 20 * math.Sin(2*math.Pi*150/400.0)
	if kept := out[150] - clean; kept > -720 {
		t.Fatalf("trough after extract-add: got %.1f, want <= -720", kept)
	}
}

func TestExtractAdd_NoEventsFallsBackToSmoothing(t *testing.T) {
	data := make([]float64, 200)
	for i := range data {
		data[i] = 10 * math.Sin(2*math.Pi*float64(i)/200)
	}

	cfg := DefaultExtractAddConfig()

	out, err := ExtractAdd(data, cfg)
	if err != nil {
		t.Fatalf("ExtractAdd: %v", err)
	}

	want, err := SavGol(data, cfg.WindowLength, cfg.PolyOrder)
	if err != nil {
		t.Fatalf("SavGol: %v", err)
	}

	for i := range out {
		if !almostEqual(out[i], want[i], 1e-12) {
			t.Fatalf("sample %d: got %.12f, want %.12f", i, out[i], want[i])
		}
	}
}

func TestExtractAdd_SmoothsNoiseAroundSpike(t *testing.T) {
	n := 400
	data := spikyTrace(n, 200, 1000)

	noise := testutil.DeterministicNoise(3, 5, n)
	for i := range data {
		data[i] += noise[i]
	}

	out, err := ExtractAdd(data, DefaultExtractAddConfig())
	if err != nil {
		t.Fatalf("ExtractAdd: %v", err)
	}

	// Away from the event the output must track the clean slow component
	// better than the raw input does.
	var rawDev, outDev float64
	for i := 60; i < 140; i++ {
		clean := 20 * math.Sin(2*math.Pi*float64(i)/float64(n))
		rawDev += math.Abs(data[i] - clean)
		outDev += math.Abs(out[i] - clean)
	}

	if outDev >= rawDev/2 {
		t.Fatalf("baseline deviation: got %.2f, want < %.2f", outDev, rawDev/2)
	}

	// The spike survives the noise and the smoothing.
	clean := 20 * math.Sin(2*math.Pi*200/400.0)
	if kept := out[200] - clean; kept < 900 {
		t.Fatalf("spike after extract-add: got %.1f, want >= 900", kept)
	}
}

func TestExtractAdd_Errors(t *testing.T) {
	if _, err := ExtractAdd(nil, DefaultExtractAddConfig()); !errors.Is(err, ErrEmptyInput) {
		t.Fatalf("empty input: got %v, want ErrEmptyInput", err)
	}

	cfg := DefaultExtractAddConfig()
	cfg.Prominence = -1

	if _, err := ExtractAdd(make([]float64, 100), cfg); !errors.Is(err, ErrThreshold) {
		t.Fatalf("negative prominence: got %v, want ErrThreshold", err)
	}
}
