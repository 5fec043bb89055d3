package filter

import (
	"fmt"
	"math"
)

// SavGolConfig holds smoothing parameters for the chain stage. Zero
// values fall back to the defaults of SavGol.
type SavGolConfig struct {
	WindowLength int // default 51, auto-incremented if even
	PolyOrder    int // default 3
}

const (
	defaultSavGolWindow = 51
	defaultSavGolOrder  = 3
)

// SavGol applies a Savitzky-Golay filter: each output sample is the value
// at the window center of a least-squares polynomial fit over a sliding
// window. Even window lengths are incremented to the next odd value. The
// polynomial order must be less than the (adjusted) window length.
//
// Edge samples are handled by fitting a polynomial to the first and last
// full window and evaluating it at the edge positions, so the output has
// the same length as the input.
func SavGol(data []float64, windowLength, polyOrder int) ([]float64, error) {
	if len(data) == 0 {
		return nil, ErrEmptyInput
	}

	if windowLength <= 0 {
		windowLength = defaultSavGolWindow
	}

	if windowLength%2 == 0 {
		windowLength++
	}

	if polyOrder < 0 {
		return nil, fmt.Errorf("%w: order=%d", ErrPolyOrder, polyOrder)
	}

	if polyOrder == 0 {
		polyOrder = defaultSavGolOrder
	}

	if polyOrder >= windowLength {
		return nil, fmt.Errorf("%w: order=%d window=%d", ErrPolyOrder, polyOrder, windowLength)
	}

	if windowLength > len(data) {
		return nil, fmt.Errorf("%w: window=%d len=%d", ErrWindowTooLong, windowLength, len(data))
	}

	kernel, err := savgolKernel(windowLength, polyOrder)
	if err != nil {
		return nil, err
	}

	n := len(data)
	half := windowLength / 2
	out := make([]float64, n)

	for i := half; i < n-half; i++ {
		var acc float64
		for j, w := range kernel {
			acc += w * data[i-half+j]
		}

		out[i] = acc
	}

	// Fit explicit polynomials over the first and last full window to
	// extrapolate the edge samples.
	xs := make([]float64, windowLength)
	for i := range xs {
		xs[i] = float64(i)
	}

	head, err := polyfit(xs, data[:windowLength], polyOrder)
	if err != nil {
		return nil, err
	}

	for i := 0; i < half; i++ {
		out[i] = polyval(head, float64(i))
	}

	tail, err := polyfit(xs, data[n-windowLength:], polyOrder)
	if err != nil {
		return nil, err
	}

	for i := n - half; i < n; i++ {
		out[i] = polyval(tail, float64(i-(n-windowLength)))
	}

	return out, nil
}

// savgolKernel computes the center-evaluation convolution weights: row
// zero of (AᵀA)⁻¹Aᵀ for the Vandermonde matrix A over x = -h..h.
func savgolKernel(windowLength, polyOrder int) ([]float64, error) {
	half := windowLength / 2
	m := polyOrder + 1

	// Normal matrix G[a][b] = Σ_j x_j^(a+b).
	g := make([][]float64, m)
	for a := range g {
		g[a] = make([]float64, m)
		for b := range g[a] {
			var sum float64
			for j := -half; j <= half; j++ {
				sum += math.Pow(float64(j), float64(a+b))
			}

			g[a][b] = sum
		}
	}

	e0 := make([]float64, m)
	e0[0] = 1

	c, err := solveLinear(g, e0)
	if err != nil {
		return nil, err
	}

	kernel := make([]float64, windowLength)
	for j := range kernel {
		x := float64(j - half)
		for k, ck := range c {
			kernel[j] += ck * math.Pow(x, float64(k))
		}
	}

	return kernel, nil
}

// polyfit performs a least-squares polynomial fit of the given order and
// returns coefficients in ascending power order.
func polyfit(xs, ys []float64, order int) ([]float64, error) {
	m := order + 1

	g := make([][]float64, m)
	rhs := make([]float64, m)
	for a := range g {
		g[a] = make([]float64, m)
		for b := range g[a] {
			var sum float64
			for _, x := range xs {
				sum += math.Pow(x, float64(a+b))
			}

			g[a][b] = sum
		}

		for i, x := range xs {
			rhs[a] += ys[i] * math.Pow(x, float64(a))
		}
	}

	return solveLinear(g, rhs)
}

// polyval evaluates coefficients (ascending power order) at x using
// Horner's scheme.
func polyval(coeffs []float64, x float64) float64 {
	var acc float64
	for i := len(coeffs) - 1; i >= 0; i-- {
		acc = acc*x + coeffs[i]
	}

	return acc
}

// solveLinear solves the dense system a·x = b by Gaussian elimination
// with partial pivoting. It modifies its arguments.
func solveLinear(a [][]float64, b []float64) ([]float64, error) {
	n := len(b)

	for col := 0; col < n; col++ {
		pivot := col
		for row := col + 1; row < n; row++ {
			if math.Abs(a[row][col]) > math.Abs(a[pivot][col]) {
				pivot = row
			}
		}

		if a[pivot][col] == 0 {
			return nil, ErrSingular
		}

		a[col], a[pivot] = a[pivot], a[col]
		b[col], b[pivot] = b[pivot], b[col]

		for row := col + 1; row < n; row++ {
			f := a[row][col] / a[col][col]
			for k := col; k < n; k++ {
				a[row][k] -= f * a[col][k]
			}

			b[row] -= f * b[col]
		}
	}

	x := make([]float64, n)
	for row := n - 1; row >= 0; row-- {
		acc := b[row]
		for k := row + 1; k < n; k++ {
			acc -= a[row][k] * x[k]
		}

		x[row] = acc / a[row][row]
	}

	return x, nil
}
