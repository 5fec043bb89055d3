package analysis

import (
	"testing"
)

func TestResolveRange(t *testing.T) {
	cases := []struct {
		name               string
		r                  IntegrationRange
		n                  int
		wantStart, wantEnd int
	}{
		{"full sentinel", IntegrationRange{0, LastIndex}, 200, 0, 199},
		{"clamped low", IntegrationRange{-5, 100}, 200, 0, 100},
		{"clamped high", IntegrationRange{10, 10000}, 200, 10, 199},
		{"reversed", IntegrationRange{150, 20}, 200, 20, 150},
		{"both out of bounds", IntegrationRange{-5, 10000}, 200, 0, 199},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			start, end := resolveRange(tc.r, tc.n)
			if start != tc.wantStart || end != tc.wantEnd {
				t.Fatalf("got [%d, %d], want [%d, %d]", start, end, tc.wantStart, tc.wantEnd)
			}
		})
	}
}

func TestIntegrate_ConstantWindow(t *testing.T) {
	// A constant k over n samples at uniform dt integrates to about
	// k * n * dt (the trapezoid spans n-1 intervals).
	const (
		k  = 250.0
		n  = 200
		dt = dt10kHz
	)

	curve := &PurpleCurve{
		Window: Window{Start: 0, End: n},
		Time:   make([]float64, n),
		Data:   make([]float64, n),
	}
	for i := range curve.Data {
		curve.Time[i] = float64(i) * dt
		curve.Data[i] = k
	}

	res, err := integrate(curve, FullRange(), DefaultParams())
	if err != nil {
		t.Fatalf("integrate: %v", err)
	}

	want := k * n * dt * picoampToAmp
	if diff := res.ChargeC - want; diff > 0.01*want || diff < -0.01*want {
		t.Fatalf("charge: got %v, want %v within 1%%", res.ChargeC, want)
	}

	if res.MeanCurrentPA != k {
		t.Fatalf("mean current: got %v, want %v", res.MeanCurrentPA, k)
	}
}

func TestIntegrate_TooFewSamples(t *testing.T) {
	curve := &PurpleCurve{
		Time: []float64{0, 1, 2},
		Data: []float64{5, 5, 5},
	}

	// A single-sample resolved range cannot form a trapezoid.
	res, err := integrate(curve, IntegrationRange{Start: 1, End: 1}, DefaultParams())
	if err != nil {
		t.Fatalf("integrate: %v", err)
	}

	if !res.Insufficient {
		t.Fatal("single-sample range must be marked insufficient")
	}

	if res.ChargeC != 0 || res.CapacitanceF != 0 {
		t.Fatalf("insufficient result must be zero-valued: %+v", res)
	}
}

func TestIntegrate_NilCurve(t *testing.T) {
	res, err := integrate(nil, FullRange(), DefaultParams())
	if err != nil {
		t.Fatalf("integrate: %v", err)
	}

	if !res.Insufficient {
		t.Fatal("nil curve must be marked insufficient")
	}
}
