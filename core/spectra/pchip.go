package spectra

import "errors"

// pchip is a monotone piecewise-cubic Hermite interpolator
// (Fritsch-Carlson). It keeps the published transmission anchor points free
// of the overshoot a plain cubic spline would add between them.
type pchip struct {
	xs []float64
	ys []float64
	ds []float64 // tangents at the knots
}

func newPCHIP(xs, ys []float64) (*pchip, error) {
	n := len(xs)
	if n != len(ys) {
		return nil, errors.New("pchip: x and y lengths differ")
	}
	if n < 2 {
		return nil, errors.New("pchip: need at least two knots")
	}
	for i := 1; i < n; i++ {
		if xs[i] <= xs[i-1] {
			return nil, errors.New("pchip: knots must be strictly increasing")
		}
	}

	h := make([]float64, n-1) // interval widths
	m := make([]float64, n-1) // secant slopes
	for i := 0; i < n-1; i++ {
		h[i] = xs[i+1] - xs[i]
		m[i] = (ys[i+1] - ys[i]) / h[i]
	}

	d := make([]float64, n)
	d[0] = m[0]
	d[n-1] = m[n-2]
	for i := 1; i < n-1; i++ {
		if m[i-1]*m[i] <= 0 {
			// Local extremum: flat tangent preserves monotonicity
			d[i] = 0
			continue
		}
		// Weighted harmonic mean of the neighboring secants
		w1 := 2*h[i] + h[i-1]
		w2 := h[i] + 2*h[i-1]
		d[i] = (w1 + w2) / (w1/m[i-1] + w2/m[i])
	}

	return &pchip{xs: xs, ys: ys, ds: d}, nil
}

// at evaluates the interpolant, holding the endpoint values outside the
// knot range.
func (p *pchip) at(x float64) float64 {
	n := len(p.xs)
	if x <= p.xs[0] {
		return p.ys[0]
	}
	if x >= p.xs[n-1] {
		return p.ys[n-1]
	}

	// Find the interval with a binary search
	lo, hi := 0, n-1
	for hi-lo > 1 {
		mid := (lo + hi) / 2
		if p.xs[mid] <= x {
			lo = mid
		} else {
			hi = mid
		}
	}

	h := p.xs[lo+1] - p.xs[lo]
	t := (x - p.xs[lo]) / h
	t2 := t * t
	t3 := t2 * t

	h00 := 2*t3 - 3*t2 + 1
	h10 := t3 - 2*t2 + t
	h01 := -2*t3 + 3*t2
	h11 := t3 - t2

	return h00*p.ys[lo] + h10*h*p.ds[lo] + h01*p.ys[lo+1] + h11*h*p.ds[lo+1]
}
