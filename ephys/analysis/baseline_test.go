package analysis

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-ephys/ephys/stats"
)

func TestCorrectBaseline_SubtractsLeadingMedian(t *testing.T) {
	data := make([]float64, 2000)
	for i := range data {
		data[i] = 42 + math.Sin(float64(i))
	}

	baseline := correctBaseline(data)

	if math.Abs(baseline-42) > 1 {
		t.Fatalf("baseline: got %v, want about 42", baseline)
	}

	if med := stats.Median(data[:1000]); math.Abs(med) > 1e-9 {
		t.Fatalf("corrected leading median: got %v, want 0", med)
	}
}

func TestCorrectBaseline_Idempotent(t *testing.T) {
	data := make([]float64, 1500)
	for i := range data {
		data[i] = 17 + 3*math.Sin(float64(i)/5)
	}

	correctBaseline(data)

	again := correctBaseline(data)
	if math.Abs(again) > 1e-9 {
		t.Fatalf("second correction: got %v, want about 0", again)
	}
}

func TestCorrectBaseline_ShortTrace(t *testing.T) {
	data := []float64{10, 12, 14}

	baseline := correctBaseline(data)
	if baseline != 12 {
		t.Fatalf("baseline: got %v, want 12", baseline)
	}
}

func TestNormalize_NoCyclesIsNoOp(t *testing.T) {
	data := []float64{1, 2, 3, 4}
	orig := make([]float64, len(data))
	copy(orig, data)

	scale, err := normalize(data, nil, DefaultParams())
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}

	if scale != 0 {
		t.Fatalf("scale: got %v, want 0", scale)
	}

	for i := range data {
		if data[i] != orig[i] {
			t.Fatalf("sample %d modified: got %v, want %v", i, data[i], orig[i])
		}
	}
}
