package analysis

import (
	"fmt"
)

// Params are the per-run analysis parameters. Times are in
// milliseconds, voltages in millivolts, the membrane area in cm².
type Params struct {
	NCycles     int     // stimulus repetitions to analyze
	T1          float64 // ms, cycle period estimate driving trough separation
	T2          float64 // ms
	V0          float64 // mV, holding potential
	V1          float64 // mV, step potential
	V2          float64 // mV
	CellAreaCm2 float64
}

// DefaultParams returns the documented defaults.
func DefaultParams() Params {
	return Params{
		NCycles:     2,
		T1:          100,
		T2:          100,
		V0:          -80,
		V1:          100,
		V2:          10,
		CellAreaCm2: 1,
	}
}

// Validate reports the first invalid parameter, wrapped in ErrParameter.
func (p Params) Validate() error {
	if p.NCycles < 1 {
		return fmt.Errorf("%w: n_cycles=%d, must be >= 1", ErrParameter, p.NCycles)
	}

	if p.T1 <= 0 {
		return fmt.Errorf("%w: t1=%g ms, must be positive", ErrParameter, p.T1)
	}

	if p.T2 <= 0 {
		return fmt.Errorf("%w: t2=%g ms, must be positive", ErrParameter, p.T2)
	}

	if p.CellAreaCm2 <= 0 {
		return fmt.Errorf("%w: cell_area_cm2=%g, must be positive", ErrParameter, p.CellAreaCm2)
	}

	return nil
}
