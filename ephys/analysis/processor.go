package analysis

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/cwbudde/algo-ephys/ephys/filter"
	"github.com/cwbudde/algo-ephys/ephys/trace"
)

// Processor runs the analysis pipeline. It holds configuration only;
// Analyze keeps no state between calls, so a processor may be reused
// sequentially. Concurrent analyses need independent instances.
type Processor struct {
	logger *slog.Logger
	chain  *filter.ChainConfig
}

// Option configures a Processor.
type Option func(*Processor)

// WithLogger routes the processor's stage logging to l. The default
// discards everything.
func WithLogger(l *slog.Logger) Option {
	return func(p *Processor) {
		if l != nil {
			p.logger = l
		}
	}
}

// WithFilterChain enables the filter chain as a pre-conditioning step,
// applied to the raw current before baseline correction.
func WithFilterChain(cfg filter.ChainConfig) Option {
	return func(p *Processor) {
		p.chain = &cfg
	}
}

// New returns a Processor.
func New(opts ...Option) *Processor {
	p := &Processor{
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// Result is the immutable outcome of one analysis run. All slices are
// freshly allocated per run; callers keep their own reference and must
// not write through it.
type Result struct {
	// Time is the trace's time base in seconds.
	Time []float64

	// Baseline is the subtracted resting level in picoamps, Scale the
	// normalization factor (zero when no cycles were found).
	Baseline float64
	Scale    float64

	Cycles      []Cycle
	Curves      Curves
	Integration Integration

	params Params
}

// Analyze runs the full pipeline on a trace. The trace is not modified.
// Stage failures propagate with stage context wrapped around one of the
// package error kinds; no stage substitutes defaults on failure.
func (p *Processor) Analyze(tr trace.Trace, params Params) (*Result, error) {
	if err := tr.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInput, err)
	}

	if err := params.Validate(); err != nil {
		return nil, err
	}

	data := make([]float64, len(tr.Current))
	copy(data, tr.Current)

	timeBase := make([]float64, len(tr.Time))
	copy(timeBase, tr.Time)

	if p.chain != nil {
		p.logger.Debug("applying filter chain")

		filtered, err := filter.Chain(data, *p.chain)
		if err != nil {
			return nil, fmt.Errorf("filter chain: %w", err)
		}

		data = filtered
	}

	baseline := correctBaseline(data)
	p.logger.Debug("baseline corrected", "baseline_pA", baseline)

	cycles := findCycles(timeBase, data, params)
	p.logger.Debug("cycles detected", "count", len(cycles))

	scale, err := normalize(data, cycles, params)
	if err != nil {
		return nil, fmt.Errorf("normalization: %w", err)
	}

	if len(cycles) == 0 {
		p.logger.Info("no analyzable cycles, normalization skipped")
	} else {
		p.logger.Debug("signal normalized", "scale", scale)
	}

	curves := deriveCurves(timeBase, data)
	if curves.UnavailableReason != "" {
		p.logger.Warn("purple curves unavailable",
			"reason", curves.UnavailableReason,
			"samples", len(data),
			"required", minPurpleSamples+1)
	}

	result := &Result{
		Time:     timeBase,
		Baseline: baseline,
		Scale:    scale,
		Cycles:   cycles,
		Curves:   curves,
		params:   params,
	}

	integration, err := result.Reintegrate(IntegrationRanges{})
	if err != nil {
		return nil, err
	}

	result.Integration = integration

	p.logger.Info("analysis complete",
		"cycles", len(cycles),
		"depol_charge_C", integration.Depol.ChargeC,
		"hyperpol_charge_C", integration.Hyperpol.ChargeC)

	return result, nil
}

// Reintegrate recomputes the integration for adjusted ranges without
// re-running the pipeline. Nil range entries mean the full window. The
// result's stored Integration is left untouched; callers decide what to
// keep.
func (r *Result) Reintegrate(ranges IntegrationRanges) (Integration, error) {
	depolRange := FullRange()
	if ranges.Depol != nil {
		depolRange = *ranges.Depol
	}

	hyperpolRange := FullRange()
	if ranges.Hyperpol != nil {
		hyperpolRange = *ranges.Hyperpol
	}

	depol, err := integrate(r.Curves.Depol, depolRange, r.params)
	if err != nil {
		return Integration{}, fmt.Errorf("depolarization integral: %w", err)
	}

	hyperpol, err := integrate(r.Curves.Hyperpol, hyperpolRange, r.params)
	if err != nil {
		return Integration{}, fmt.Errorf("hyperpolarization integral: %w", err)
	}

	windows := make([]Window, len(r.Cycles))
	for i, c := range r.Cycles {
		windows[i] = Window{Start: c.Start, End: c.End}
	}

	return Integration{
		Depol:        depol,
		Hyperpol:     hyperpol,
		CycleWindows: windows,
	}, nil
}
