// Package regression provides a linear-regression filter for the leading
// segment of a trace.
//
// Whole-cell recordings often start with a capacitive settling artifact.
// Fitting an ordinary least-squares line to the first samples and
// blending it into the signal flattens that artifact without touching
// the rest of the trace. The fit itself is exposed as a diagnostic.
package regression
