package analysis

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-ephys/ephys/stats"
)

// LastIndex is the sentinel End value resolving to the last valid sample
// of the integrated window.
const LastIndex = -1

// Unit conversions into SI.
const (
	picoampToAmp      = 1e-12
	millivoltToVolt   = 1e-3
	faradToMicrofarad = 1e6
)

// IntegrationRange overrides the integrated sub-window of one polarity,
// in window-relative sample indices. End may be LastIndex. Bounds are
// clamped into the window and reordered if reversed, never rejected.
type IntegrationRange struct {
	Start, End int
}

// FullRange spans the whole window.
func FullRange() IntegrationRange {
	return IntegrationRange{Start: 0, End: LastIndex}
}

// IntegrationRanges carries the per-polarity overrides for Reintegrate.
// A nil entry means the full window.
type IntegrationRanges struct {
	Depol    *IntegrationRange
	Hyperpol *IntegrationRange
}

// PolarityResult is the integration outcome for one purple window.
// Insufficient marks windows with fewer than two resolved samples
// (including entirely unavailable curves); all numeric fields are zero
// in that case.
type PolarityResult struct {
	ChargeC             float64 // coulombs
	CapacitanceF        float64 // farads
	CapacitanceUFPerCm2 float64
	MeanCurrentPA       float64

	// Resolved is the window-relative inclusive sample range actually
	// integrated.
	Resolved Window

	Insufficient bool
}

// Integration holds both polarity results plus the cycle index pairs the
// run was based on.
type Integration struct {
	Depol    PolarityResult
	Hyperpol PolarityResult

	CycleWindows []Window
}

// integrate computes the charge and capacitance for one purple curve.
// The curve carries time in seconds and current in picoamps; charge is
// the trapezoidal integral of the SI current over time, capacitance its
// magnitude over the command-voltage step.
func integrate(curve *PurpleCurve, r IntegrationRange, p Params) (PolarityResult, error) {
	if curve == nil || len(curve.Data) < 2 {
		return PolarityResult{Insufficient: true}, nil
	}

	start, end := resolveRange(r, len(curve.Data))
	if end-start < 1 {
		return PolarityResult{Insufficient: true, Resolved: Window{Start: start, End: end}}, nil
	}

	deltaV := (p.V1 - p.V0) * millivoltToVolt
	if deltaV == 0 {
		return PolarityResult{}, fmt.Errorf("%w: V1 equals V0, capacitance undefined", ErrNumeric)
	}

	var chargePicoAs float64
	for i := start; i < end; i++ {
		dt := curve.Time[i+1] - curve.Time[i]
		chargePicoAs += dt * (curve.Data[i+1] + curve.Data[i]) / 2
	}

	charge := chargePicoAs * picoampToAmp
	capacitance := math.Abs(charge / deltaV)

	return PolarityResult{
		ChargeC:             charge,
		CapacitanceF:        capacitance,
		CapacitanceUFPerCm2: capacitance * faradToMicrofarad / p.CellAreaCm2,
		MeanCurrentPA:       stats.Mean(curve.Data[start : end+1]),
		Resolved:            Window{Start: start, End: end},
	}, nil
}

// resolveRange clamps a requested range into [0, n-1], resolves the
// LastIndex sentinel and reorders reversed bounds. The result is an
// inclusive sample range.
func resolveRange(r IntegrationRange, n int) (start, end int) {
	start, end = r.Start, r.End

	if end == LastIndex {
		end = n - 1
	}

	start = clampIndex(start, n)
	end = clampIndex(end, n)

	if start > end {
		start, end = end, start
	}

	return start, end
}

func clampIndex(i, n int) int {
	if i < 0 {
		return 0
	}

	if i > n-1 {
		return n - 1
	}

	return i
}
