package bezier

import (
	"math"
	"slices"
)

// MaxExtrema is the maximum number of extrema that can be reported by
// [Extremer].
//
// This is 4 to support cubic Béziers.
const MaxExtrema = 4

// Extremer describes parametrized curves that report their extrema.
type Extremer interface {
	// Extrema computes the extrema of the curve.
	//
	// Only extrema within the interior of the curve count.
	// At most four extrema can be reported, which is sufficient for
	// cubic Béziers.
	//
	// The extrema should be reported in increasing parameter order.
	Extrema() ([MaxExtrema]float64, int)
}

// boundingBox returns the smallest (axis-aligned) rectangle that encloses the
// curve in the range [0, 1].
func boundingBox(c interface {
	Extremer
	Eval(t float64) Point
}) Rect {
	bbox := NewRectFromPoints(c.Eval(0), c.Eval(1))
	ex, n := c.Extrema()
	for _, t := range ex[:n] {
		bbox = bbox.UnionPoint(c.Eval(t))
	}
	return bbox
}

// Curve is a quadratic or cubic Bézier curve that lazily computes and caches
// its polynomial coefficients and arc length.
//
// Every method that changes the curve's geometry invalidates the caches; they
// are recomputed on the next query. Implementations are not safe for
// concurrent use.
type Curve interface {
	// Order returns 2 for quadratic and 3 for cubic curves.
	Order() int
	// Eval evaluates the curve at t. t may lie outside of [0, 1].
	Eval(t float64) Point
	// Deriv returns the first derivative at t.
	Deriv(t float64) Vec2
	// Arclen returns the length of the curve over [0, 1].
	Arclen() float64
	// ArclenAt returns the length of the curve over [0, min(t, 1)], or 0 if
	// t <= 0.
	//
	// ArclenAt integrates with a lower quadrature order than Arclen, so
	// ArclenAt(1) and Arclen can differ. The difference is negligible for
	// smooth curves but can reach several percent near cusps.
	ArclenAt(t float64) float64
	// ParamAtArclen returns the parameter at which the fraction s of the
	// curve's length has been traversed. The fraction is measured against
	// ArclenAt(1), not Arclen, so ParamAtArclen(1) is exactly 1 and
	// ArclenAt(ParamAtArclen(s)) is s*ArclenAt(1).
	ParamAtArclen(s float64) float64
	// SolveForX returns all parameters in [0, 1] at which the curve's x
	// coordinate equals x, in increasing order.
	SolveForX(x float64) ([3]float64, int)
	// SolveForY is like SolveForX, for the y coordinate.
	SolveForY(y float64) ([3]float64, int)
	IntersectLine(l Line) ([3]LineIntersection, int)
	BoundingBox() Rect
	Segment() Segment
	SetSegment(seg Segment)
	Start() Point
	End() Point
}

var (
	_ Curve = (*QuadCurve)(nil)
	_ Curve = (*CubicCurve)(nil)
)

// NewCurve returns a [*CubicCurve] if seg is cubic and a [*QuadCurve]
// otherwise.
func NewCurve(seg Segment) Curve {
	if seg.IsCubic() {
		c := new(CubicCurve)
		c.SetSegment(seg)
		return c
	}
	c := new(QuadCurve)
	c.SetSegment(seg)
	return c
}

type curveState uint8

const (
	stateInvalid curveState = iota
	stateValid
)

// coeffs holds the power basis coefficients of a curve, such that
// x(t) = x[0] + x[1]t + x[2]t² + x[3]t³. Quadratics leave the cubic term at
// zero.
type coeffs struct {
	x [4]float64
	y [4]float64
}

func (c *coeffs) eval(t float64) Point {
	return Point{
		X: c.x[0] + t*(c.x[1]+t*(c.x[2]+t*c.x[3])),
		Y: c.y[0] + t*(c.y[1]+t*(c.y[2]+t*c.y[3])),
	}
}

func (c *coeffs) deriv(t float64) Vec2 {
	return Vec2{
		X: c.x[1] + t*(2*c.x[2]+t*3*c.x[3]),
		Y: c.y[1] + t*(2*c.y[2]+t*3*c.y[3]),
	}
}

// arclenCache holds the lazily computed length of a curve and the most
// recently resolved (s, t) pair of the inverse arc length search.
type arclenCache struct {
	length     float64
	haveLength bool
	// span is the length over [0, 1] at the partial quadrature order.
	span     float64
	haveSpan bool
	lastS    float64
	lastT    float64
	haveLast bool
}

// total returns the cached length, computing it with compute if necessary.
func (ac *arclenCache) total(compute func() float64) float64 {
	if !ac.haveLength {
		ac.length = compute()
		ac.haveLength = true
	}
	return ac.length
}

// bracketStep is the distance by which the inverse arc length search moves
// away from the previously resolved parameter.
const bracketStep = 1e-12

// paramAtArclen inverts the normalized arc length of a curve. partial returns
// the length over [0, t].
//
// Lengths are normalized by partial(1) rather than the full arc length, so
// that the mapping is monotonic and reaches 1 exactly at t = 1 even though the
// two are computed with different quadrature orders.
func (ac *arclenCache) paramAtArclen(s float64, partial func(t float64) float64) float64 {
	if s <= 0 {
		return 0
	}
	if s >= 1 {
		return 1
	}
	if ac.haveLast && ac.lastS == s {
		return ac.lastT
	}
	if !ac.haveSpan {
		ac.span = partial(1)
		ac.haveSpan = true
	}
	total := ac.span
	if total == 0 {
		return s
	}

	f := func(t float64) float64 {
		return partial(t)/total - s
	}
	lo, hi := 0.0, 1.0
	if ac.haveLast {
		// Arc length is monotonic in t, so the answer lies on the same side
		// of the previous query as s does.
		if s > ac.lastS {
			lo = min(ac.lastT+bracketStep, 1)
		} else {
			hi = max(ac.lastT-bracketStep, 0)
		}
		if lo >= hi || f(lo)*f(hi) > 0 {
			lo, hi = 0, 1
		}
	}
	t := FindRoot(f, lo, hi, DefaultRootTolerance)
	t = min(max(t, 0), 1)
	ac.lastS, ac.lastT, ac.haveLast = s, t, true
	return t
}

// rootEpsilon is the slack allowed for roots that fall just outside of
// [0, 1] due to rounding.
const rootEpsilon = 1e-9

// unitRoots filters roots to those in [0, 1], clamping values within
// rootEpsilon of the interval, and returns them sorted and deduplicated.
func unitRoots(roots []float64) ([3]float64, int) {
	var out [3]float64
	var outN int
	for _, t := range roots {
		if math.IsNaN(t) || t < -rootEpsilon || t > 1+rootEpsilon {
			continue
		}
		t = min(max(t, 0), 1)
		if outN < len(out) {
			out[outN] = t
			outN++
		}
	}
	slices.Sort(out[:outN])
	n := 0
	for i, t := range out[:outN] {
		if i > 0 && t-out[n-1] < rootEpsilon {
			continue
		}
		out[n] = t
		n++
	}
	return out, n
}
