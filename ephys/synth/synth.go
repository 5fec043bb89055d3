package synth

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/cwbudde/algo-ephys/ephys/trace"
)

// Generator creates deterministic traces from a shared configuration.
type Generator struct {
	sampleRate float64
	seed       int64
}

// Option configures a Generator.
type Option func(*Generator)

// WithSampleRate sets the sampling rate in Hz. Default 10000.
func WithSampleRate(rate float64) Option {
	return func(g *Generator) {
		g.sampleRate = rate
	}
}

// WithSeed sets the deterministic random seed for noise generation.
func WithSeed(seed int64) Option {
	return func(g *Generator) {
		g.seed = seed
	}
}

// NewGenerator creates a configured trace generator.
func NewGenerator(opts ...Option) *Generator {
	g := &Generator{
		sampleRate: 10000,
		seed:       1,
	}

	for _, opt := range opts {
		if opt != nil {
			opt(g)
		}
	}

	return g
}

// SampleRate returns the generator's sampling rate.
func (g *Generator) SampleRate() float64 {
	return g.sampleRate
}

func (g *Generator) timeBase(samples int) []float64 {
	time := make([]float64, samples)
	dt := 1 / g.sampleRate
	for i := range time {
		time[i] = float64(i) * dt
	}

	return time
}

// Flat generates a constant-current trace.
func (g *Generator) Flat(levelPA float64, samples int) (trace.Trace, error) {
	if samples <= 0 {
		return trace.Trace{}, fmt.Errorf("synth: samples must be > 0: %d", samples)
	}

	current := make([]float64, samples)
	for i := range current {
		current[i] = levelPA
	}

	return trace.New(g.timeBase(samples), current)
}

// Step generates a zero trace carrying a constant current over the
// half-open index window [start, end).
func (g *Generator) Step(levelPA float64, start, end, samples int) (trace.Trace, error) {
	if samples <= 0 {
		return trace.Trace{}, fmt.Errorf("synth: samples must be > 0: %d", samples)
	}

	if start < 0 || end > samples || start >= end {
		return trace.Trace{}, fmt.Errorf("synth: step window [%d, %d) out of bounds for %d samples", start, end, samples)
	}

	current := make([]float64, samples)
	for i := start; i < end; i++ {
		current[i] = levelPA
	}

	return trace.New(g.timeBase(samples), current)
}

// Cycles generates a zero trace with nCycles triangular hyperpolarizing
// dips of the given depth, one per period. The dip half-width is a tenth
// of the period, so the dips read as sharp troughs against the baseline.
func (g *Generator) Cycles(depthPA float64, periodSamples, nCycles, samples int) (trace.Trace, error) {
	if samples <= 0 {
		return trace.Trace{}, fmt.Errorf("synth: samples must be > 0: %d", samples)
	}

	if periodSamples <= 0 {
		return trace.Trace{}, fmt.Errorf("synth: period must be > 0: %d", periodSamples)
	}

	if nCycles < 1 {
		return trace.Trace{}, fmt.Errorf("synth: need at least one cycle: %d", nCycles)
	}

	halfWidth := periodSamples / 10
	if halfWidth < 1 {
		halfWidth = 1
	}

	current := make([]float64, samples)
	for c := 0; c < nCycles; c++ {
		center := periodSamples/2 + c*periodSamples
		for i := center - halfWidth; i <= center+halfWidth; i++ {
			if i < 0 || i >= samples {
				continue
			}

			current[i] = -depthPA * (1 - math.Abs(float64(i-center))/float64(halfWidth))
		}
	}

	return trace.New(g.timeBase(samples), current)
}

// WithNoise returns a copy of tr with deterministic white noise in
// [-amplitude, amplitude] added to the current.
func (g *Generator) WithNoise(tr trace.Trace, amplitudePA float64) (trace.Trace, error) {
	if amplitudePA < 0 {
		return trace.Trace{}, fmt.Errorf("synth: noise amplitude must be >= 0: %f", amplitudePA)
	}

	out := tr.Clone()

	rng := rand.New(rand.NewSource(g.seed))
	for i := range out.Current {
		out.Current[i] += (rng.Float64()*2 - 1) * amplitudePA
	}

	return out, nil
}
