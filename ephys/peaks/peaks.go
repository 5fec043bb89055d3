package peaks

import (
	"math"
	"sort"
)

const defaultRelHeight = 0.5

// Config holds detection constraints. Zero values disable the respective
// constraint, except RelHeight which defaults to 0.5.
type Config struct {
	// MinHeight rejects peaks below this sample value when > 0.
	MinHeight float64

	// Distance enforces a minimum index spacing between kept peaks when
	// > 1. Taller peaks win; smaller neighbors within the spacing are
	// dropped.
	Distance int

	// Prominence rejects peaks less prominent than this when > 0.
	Prominence float64

	// WidthMin/WidthMax bound the peak width in samples. WidthMin applies
	// when > 0; WidthMax applies when > 0.
	WidthMin float64
	WidthMax float64

	// RelHeight is the fraction of the prominence below the peak at which
	// width is measured. Defaults to 0.5.
	RelHeight float64
}

// Peak describes one detected local maximum.
type Peak struct {
	Index      int
	Height     float64
	Prominence float64
	LeftBase   int
	RightBase  int
	Width      float64
	// WidthHeight is the absolute level at which Width was measured.
	WidthHeight float64
}

// Find returns all local maxima of data satisfying cfg, ordered by index.
// Constraints are applied in the order height, distance, prominence,
// width. Prominences and widths are computed whenever a prominence or
// width constraint is active.
func Find(data []float64, cfg Config) []Peak {
	idx := localMaxima(data)

	if cfg.MinHeight > 0 {
		kept := idx[:0]
		for _, i := range idx {
			if data[i] >= cfg.MinHeight {
				kept = append(kept, i)
			}
		}
		idx = kept
	}

	if cfg.Distance > 1 {
		idx = enforceDistance(data, idx, cfg.Distance)
	}

	out := make([]Peak, 0, len(idx))
	needProminence := cfg.Prominence > 0 || cfg.WidthMin > 0 || cfg.WidthMax > 0

	for _, i := range idx {
		p := Peak{Index: i, Height: data[i]}

		if needProminence {
			p.Prominence, p.LeftBase, p.RightBase = prominence(data, i)
			if cfg.Prominence > 0 && p.Prominence < cfg.Prominence {
				continue
			}

			relHeight := cfg.RelHeight
			if relHeight <= 0 {
				relHeight = defaultRelHeight
			}

			p.Width, p.WidthHeight = width(data, p, relHeight)
			if cfg.WidthMin > 0 && p.Width < cfg.WidthMin {
				continue
			}

			if cfg.WidthMax > 0 && p.Width > cfg.WidthMax {
				continue
			}
		}

		out = append(out, p)
	}

	return out
}

// FindTroughs detects local minima by negating the signal. Heights and
// width levels in the returned peaks refer to the negated signal.
func FindTroughs(data []float64, cfg Config) []Peak {
	neg := make([]float64, len(data))
	for i, v := range data {
		neg[i] = -v
	}

	return Find(neg, cfg)
}

// localMaxima finds indices of strict local maxima. Plateaus report their
// middle sample.
func localMaxima(data []float64) []int {
	var out []int

	i := 1
	for i < len(data)-1 {
		if data[i-1] >= data[i] {
			i++
			continue
		}

		// Walk the plateau (if any) to its right edge.
		j := i
		for j < len(data)-1 && data[j+1] == data[i] {
			j++
		}

		if j < len(data)-1 && data[j+1] < data[i] {
			out = append(out, (i+j)/2)
		}

		i = j + 1
	}

	return out
}

// enforceDistance keeps taller peaks and removes smaller ones closer than
// distance samples.
func enforceDistance(data []float64, idx []int, distance int) []int {
	order := make([]int, len(idx))
	for i := range order {
		order[i] = i
	}

	// Priority by descending height; ties resolved by index for
	// determinism.
	sort.SliceStable(order, func(a, b int) bool {
		return data[idx[order[a]]] > data[idx[order[b]]]
	})

	removed := make([]bool, len(idx))
	for _, k := range order {
		if removed[k] {
			continue
		}

		for j := k - 1; j >= 0 && idx[k]-idx[j] < distance; j-- {
			removed[j] = true
		}

		for j := k + 1; j < len(idx) && idx[j]-idx[k] < distance; j++ {
			removed[j] = true
		}
	}

	kept := idx[:0]
	for i, v := range idx {
		if !removed[i] {
			kept = append(kept, v)
		}
	}

	return kept
}

// prominence computes the peak's prominence and its left/right base
// indices. The search on each side stops at the signal edge or at the
// first sample higher than the peak; the base is the lowest sample found
// on the way.
func prominence(data []float64, peak int) (prom float64, leftBase, rightBase int) {
	height := data[peak]

	leftMin := height
	leftBase = peak
	for i := peak - 1; i >= 0 && data[i] <= height; i-- {
		if data[i] < leftMin {
			leftMin = data[i]
			leftBase = i
		}
	}

	rightMin := height
	rightBase = peak
	for i := peak + 1; i < len(data) && data[i] <= height; i++ {
		if data[i] < rightMin {
			rightMin = data[i]
			rightBase = i
		}
	}

	return height - math.Max(leftMin, rightMin), leftBase, rightBase
}

// width measures the peak's width in samples at relHeight of its
// prominence below the peak, interpolating the crossings linearly.
func width(data []float64, p Peak, relHeight float64) (w, level float64) {
	level = p.Height - p.Prominence*relHeight

	i := p.Index
	for i > p.LeftBase && data[i] > level {
		i--
	}

	leftIP := float64(i)
	if data[i] < level && data[i+1] != data[i] {
		leftIP += (level - data[i]) / (data[i+1] - data[i])
	}

	j := p.Index
	for j < p.RightBase && data[j] > level {
		j++
	}

	rightIP := float64(j)
	if data[j] < level && data[j-1] != data[j] {
		rightIP -= (level - data[j]) / (data[j-1] - data[j])
	}

	return rightIP - leftIP, level
}

// Stats summarizes a detection run.
type Stats struct {
	Count        int
	MeanHeight   float64
	StdHeight    float64
	MeanInterval float64
	MeanWidth    float64
}

// Statistics computes summary statistics over detected peaks. An empty
// input yields a zero-valued Stats.
func Statistics(peaks []Peak) Stats {
	s := Stats{Count: len(peaks)}
	if len(peaks) == 0 {
		return s
	}

	var sumH, sumW float64
	for _, p := range peaks {
		sumH += p.Height
		sumW += p.Width
	}

	s.MeanHeight = sumH / float64(len(peaks))
	s.MeanWidth = sumW / float64(len(peaks))

	var varH float64
	for _, p := range peaks {
		d := p.Height - s.MeanHeight
		varH += d * d
	}

	s.StdHeight = math.Sqrt(varH / float64(len(peaks)))

	if len(peaks) > 1 {
		span := peaks[len(peaks)-1].Index - peaks[0].Index
		s.MeanInterval = float64(span) / float64(len(peaks)-1)
	}

	return s
}
