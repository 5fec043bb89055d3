// Package trace defines the raw recording data type shared by the whole
// analysis pipeline: paired (time, current) sample sequences with time in
// seconds and current in picoamps.
//
// A Trace is treated as read-only once constructed. Every pipeline stage
// that transforms current values works on its own copy and leaves the
// input untouched.
package trace
