// Package analysis implements the current-clamp analysis pipeline:
// baseline correction, stimulus-cycle detection, voltage-range
// normalization, derivation of the named protocol curves and charge and
// capacitance integration.
//
// A Processor runs the whole pipeline with Analyze and returns an
// immutable Result. The processor keeps no state between calls; one
// instance services one analysis at a time, concurrent analyses need
// independent instances. Integration ranges can be adjusted afterwards
// with Result.Reintegrate without re-running the pipeline.
package analysis
