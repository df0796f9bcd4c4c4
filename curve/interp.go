package curve

import "sort"

// cubicSpline is a natural cubic spline through (xs, ys).
type cubicSpline struct {
	xs, ys []float64
	m      []float64 // second derivatives at the knots
}

// newCubicSpline precomputes second derivatives by solving the tridiagonal
// natural-spline system (Thomas algorithm).
func newCubicSpline(xs, ys []float64) *cubicSpline {
	n := len(xs)
	s := &cubicSpline{
		xs: append([]float64(nil), xs...),
		ys: append([]float64(nil), ys...),
		m:  make([]float64, n),
	}
	if n < 3 {
		return s
	}

	// Interior equations: h(i-1)m(i-1) + 2(h(i-1)+h(i))m(i) + h(i)m(i+1) = rhs(i).
	a := make([]float64, n)
	b := make([]float64, n)
	cc := make([]float64, n)
	rhs := make([]float64, n)
	for i := 1; i < n-1; i++ {
		h0 := xs[i] - xs[i-1]
		h1 := xs[i+1] - xs[i]
		a[i] = h0
		b[i] = 2 * (h0 + h1)
		cc[i] = h1
		rhs[i] = 6 * ((ys[i+1]-ys[i])/h1 - (ys[i]-ys[i-1])/h0)
	}

	// Forward sweep over the interior band; natural ends pin m[0] = m[n-1] = 0.
	for i := 2; i < n-1; i++ {
		w := a[i] / b[i-1]
		b[i] -= w * cc[i-1]
		rhs[i] -= w * rhs[i-1]
	}
	s.m[n-2] = rhs[n-2] / b[n-2]
	for i := n - 3; i >= 1; i-- {
		s.m[i] = (rhs[i] - cc[i]*s.m[i+1]) / b[i]
	}
	return s
}

// at evaluates the spline, clamping outside the knot range.
func (s *cubicSpline) at(x float64) float64 {
	n := len(s.xs)
	if n == 0 {
		return 0
	}
	if x <= s.xs[0] {
		return s.ys[0]
	}
	if x >= s.xs[n-1] {
		return s.ys[n-1]
	}
	if n == 2 {
		w := (x - s.xs[0]) / (s.xs[1] - s.xs[0])
		return s.ys[0] + w*(s.ys[1]-s.ys[0])
	}

	i := sort.SearchFloat64s(s.xs, x)
	if i > 0 {
		i--
	}
	if i >= n-1 {
		i = n - 2
	}
	h := s.xs[i+1] - s.xs[i]
	u := (x - s.xs[i]) / h
	v := 1 - u
	return v*s.ys[i] + u*s.ys[i+1] +
		h*h/6*((v*v*v-v)*s.m[i]+(u*u*u-u)*s.m[i+1])
}
