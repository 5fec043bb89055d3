// Package stats provides single-pass signal statistics for recorded
// current traces: moments via Welford's online algorithm, extrema with
// positions, energy/RMS, plus median and clamped interval summaries used
// by baseline estimation and normalization.
package stats
