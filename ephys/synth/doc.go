// Package synth generates deterministic protocol-shaped traces:
// constant-current steps, repeated hyperpolarizing dips and seeded
// noise. It exists for tests and demo runs; generated traces are valid
// trace.Trace values with a uniform time base.
package synth
