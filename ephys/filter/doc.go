// Package filter provides the denoising stages applied to raw current
// traces before analysis: Savitzky-Golay smoothing, frequency-domain
// thresholding, zero-phase Butterworth lowpass filtering, and an
// event-preserving extract-add stage that isolates sharp transients
// before smoothing and restores them afterwards.
//
// Each stage is a pure function from a sample slice to a new sample
// slice; inputs are never modified. Chain composes the stages in a fixed
// order, running each stage only when its config block is set.
package filter
