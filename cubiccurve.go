package bezier

import "math"

// isolatedRootResidual is the largest residual accepted for a root refined
// within a bracket. Anything worse is treated as the curve not reaching the
// coordinate.
const isolatedRootResidual = 0.001

// touchTolerance is the residual, relative to the size of the coefficients,
// below which a local extremum of a coordinate counts as touching the value.
const touchTolerance = 1e-12

// CubicCurve is a cubic Bézier curve that caches its polynomial coefficients
// and arc length.
//
// The zero value is a curve with all points at the origin.
type CubicCurve struct {
	bez    CubicBez
	state  curveState
	coeffs coeffs
	arclen arclenCache
}

// NewCubicCurve returns a curve from p0 to p3 with control points p1 and p2.
func NewCubicCurve(p0, p1, p2, p3 Point) *CubicCurve {
	return &CubicCurve{bez: CubicBez{p0, p1, p2, p3}}
}

// Bez returns the curve's control polygon.
func (c *CubicCurve) Bez() CubicBez { return c.bez }

// SetBez replaces the curve's control polygon.
func (c *CubicCurve) SetBez(cb CubicBez) {
	c.bez = cb
	c.invalidate()
}

func (c *CubicCurve) SetP0(p Point) {
	c.bez.P0 = p
	c.invalidate()
}

func (c *CubicCurve) SetP1(p Point) {
	c.bez.P1 = p
	c.invalidate()
}

func (c *CubicCurve) SetP2(p Point) {
	c.bez.P2 = p
	c.invalidate()
}

func (c *CubicCurve) SetP3(p Point) {
	c.bez.P3 = p
	c.invalidate()
}

// Clear moves all points back to the origin.
func (c *CubicCurve) Clear() {
	c.SetBez(CubicBez{})
}

func (c *CubicCurve) invalidate() {
	c.state = stateInvalid
	c.arclen = arclenCache{}
}

func (c *CubicCurve) ensureValid() {
	if c.state == stateValid {
		return
	}
	x0, x1, x2, x3 := cubicBezCoefficients(c.bez.P0.X, c.bez.P1.X, c.bez.P2.X, c.bez.P3.X)
	y0, y1, y2, y3 := cubicBezCoefficients(c.bez.P0.Y, c.bez.P1.Y, c.bez.P2.Y, c.bez.P3.Y)
	c.coeffs = coeffs{
		x: [4]float64{x0, x1, x2, x3},
		y: [4]float64{y0, y1, y2, y3},
	}
	c.state = stateValid
}

func (c *CubicCurve) Order() int { return 3 }

func (c *CubicCurve) Start() Point { return c.bez.P0 }
func (c *CubicCurve) End() Point   { return c.bez.P3 }

func (c *CubicCurve) Eval(t float64) Point {
	// The endpoints are returned verbatim so that they interpolate exactly.
	switch t {
	case 0:
		return c.bez.P0
	case 1:
		return c.bez.P3
	}
	c.ensureValid()
	return c.coeffs.eval(t)
}

func (c *CubicCurve) Deriv(t float64) Vec2 {
	c.ensureValid()
	return c.coeffs.deriv(t)
}

func (c *CubicCurve) Arclen() float64 {
	c.ensureValid()
	return c.arclen.total(func() float64 {
		return speedIntegral(c.coeffs.deriv, 0, 1, arclenOrder)
	})
}

func (c *CubicCurve) ArclenAt(t float64) float64 {
	if t <= 0 {
		return 0
	}
	c.ensureValid()
	return speedIntegral(c.coeffs.deriv, 0, min(t, 1), partialArclenOrder)
}

func (c *CubicCurve) ParamAtArclen(s float64) float64 {
	return c.arclen.paramAtArclen(s, c.ArclenAt)
}

func (c *CubicCurve) SolveForX(x float64) ([3]float64, int) {
	c.ensureValid()
	return solveCubicForCoord(c.coeffs.x, x)
}

func (c *CubicCurve) SolveForY(y float64) ([3]float64, int) {
	c.ensureValid()
	return solveCubicForCoord(c.coeffs.y, y)
}

// solveCubicForCoord solves p0 + p1 t + p2 t² + p3 t³ = v for t in [0, 1].
//
// The roots of the derivative split [0, 1] into pieces over which the cubic
// is monotonic. Each piece contains at most one root, which is refined with
// FindRoot if the piece's ends differ in sign. Extrema that touch v are
// roots themselves.
func solveCubicForCoord(p [4]float64, v float64) ([3]float64, int) {
	scale := max(math.Abs(p[0]-v), math.Abs(p[1]), math.Abs(p[2]))
	if math.Abs(p[3]) <= 1e-12*scale {
		return solveQuadForCoord(p, v)
	}
	f := func(t float64) float64 {
		return p[0] - v + t*(p[1]+t*(p[2]+t*p[3]))
	}

	// Breakpoints: 0, the extrema inside (0, 1), and 1.
	var breaks [4]float64
	nb := 0
	breaks[nb] = 0
	nb++
	crit, nc := SolveQuadratic(p[1], 2*p[2], 3*p[3])
	if nc == 2 && crit[1] < crit[0] {
		crit[0], crit[1] = crit[1], crit[0]
	}
	for _, t := range crit[:nc] {
		if t > 0 && t < 1 && t > breaks[nb-1] {
			breaks[nb] = t
			nb++
		}
	}
	breaks[nb] = 1
	nb++

	tol := touchTolerance * max(1, math.Abs(v), math.Abs(p[0]), math.Abs(p[1]), math.Abs(p[2]), math.Abs(p[3]))
	var vals [4]float64
	for i, t := range breaks[:nb] {
		vals[i] = f(t)
		if math.Abs(vals[i]) <= tol {
			vals[i] = 0
		}
	}

	var roots [7]float64
	n := 0
	for i, t := range breaks[:nb] {
		if vals[i] == 0 {
			roots[n] = t
			n++
		}
	}
	for i := range nb - 1 {
		a, b := breaks[i], breaks[i+1]
		fa, fb := vals[i], vals[i+1]
		if fa == 0 || fb == 0 || fa*fb > 0 {
			continue
		}
		r, ok := refineBracket(f, a, b)
		if !ok {
			continue
		}
		if pr := polishRoot(p, v, r); pr >= a && pr <= b {
			r = pr
		}
		roots[n] = r
		n++
	}
	return unitRoots(roots[:n])
}

// refineBracket finds the root of f in [a, b], over which f changes sign. It
// returns false if the best estimate's residual exceeds isolatedRootResidual,
// which happens when f jumps rather than crosses zero.
func refineBracket(f func(float64) float64, a, b float64) (float64, bool) {
	r := FindRoot(f, a, b, DefaultRootTolerance)
	if math.Abs(f(r)) > isolatedRootResidual {
		return 0, false
	}
	return r, true
}

// polishRoot takes a Newton step towards the root of the cubic near t.
func polishRoot(p [4]float64, v, t float64) float64 {
	f := p[0] - v + t*(p[1]+t*(p[2]+t*p[3]))
	df := p[1] + t*(2*p[2]+t*3*p[3])
	if df == 0 {
		return t
	}
	if next := t - f/df; isFinite(next) && math.Abs(next-t) < rootEpsilon*1e3 {
		return next
	}
	return t
}

func (c *CubicCurve) IntersectLine(l Line) ([3]LineIntersection, int) {
	return c.bez.IntersectLine(l)
}

func (c *CubicCurve) BoundingBox() Rect {
	return c.bez.BoundingBox()
}

// Inflections returns the curve's inflection points, see
// [CubicBez.Inflections].
func (c *CubicCurve) Inflections() ([2]float64, int) {
	return c.bez.Inflections()
}

func (c *CubicCurve) Segment() Segment {
	return c.bez.Segment()
}

// SetSegment replaces the curve's geometry with that of seg. Quadratic
// segments are raised exactly.
func (c *CubicCurve) SetSegment(seg Segment) {
	c.SetBez(seg.Cubic())
}
