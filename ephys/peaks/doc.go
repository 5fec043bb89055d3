// Package peaks detects local maxima in sampled signals with optional
// height, spacing, prominence, and width constraints.
//
// Prominence measures how far a peak rises above the higher of the two
// lowest points separating it from taller neighbors; width is measured at
// a configurable fraction of the prominence below the peak with linear
// interpolation between samples. Both follow the conventions commonly
// used in scientific signal-processing toolkits, so thresholds tuned
// against recorded data transfer directly.
package peaks
