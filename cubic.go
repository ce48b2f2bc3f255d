package bezier

import (
	"math"
	"sort"
)

// CubicBez is a cubic Bézier given by its control polygon.
//
// CubicBez is an immutable value; see [CubicCurve] for a curve that caches its
// polynomial coefficients and arc length.
type CubicBez struct {
	P0 Point
	P1 Point
	P2 Point
	P3 Point
}

func (c CubicBez) IsNaN() bool {
	return c.P0.IsNaN() || c.P1.IsNaN() || c.P2.IsNaN() || c.P3.IsNaN()
}

func (c CubicBez) BoundingBox() Rect {
	return boundingBox(c)
}

// Arclen returns the arclength of the cubic Bézier segment, using
// Gauss-Legendre quadrature of the speed.
func (c CubicBez) Arclen() float64 {
	return speedIntegral(c.Deriv, 0, 1, arclenOrder)
}

func (c CubicBez) Eval(t float64) Point {
	mt := 1.0 - t
	a := Vec2(c.P0).Mul(mt * mt * mt)
	b := Vec2(c.P1).Mul(mt * mt * 3.0)
	cc := Vec2(c.P2).Mul(mt * 3.0)
	d := Vec2(c.P3)
	v := a.Add(b.Add(cc.Add(d.Mul(t)).Mul(t)).Mul(t))
	return Point(v)
}

// Deriv returns the first derivative at t.
func (c CubicBez) Deriv(t float64) Vec2 {
	return Vec2(c.Differentiate().Eval(t))
}

// SplitAt splits the curve at t using de Casteljau's algorithm. The two
// halves cover [0, t] and [t, 1] of the original curve.
func (c CubicBez) SplitAt(t float64) (CubicBez, CubicBez) {
	p01 := c.P0.Lerp(c.P1, t)
	p12 := c.P1.Lerp(c.P2, t)
	p23 := c.P2.Lerp(c.P3, t)
	p012 := p01.Lerp(p12, t)
	p123 := p12.Lerp(p23, t)
	pm := p012.Lerp(p123, t)
	return CubicBez{c.P0, p01, p012, pm}, CubicBez{pm, p123, p23, c.P3}
}

func (c CubicBez) Start() Point {
	return c.P0
}

func (c CubicBez) End() Point {
	return c.P3
}

func (c CubicBez) Subsegment(t0, t1 float64) CubicBez {
	p0 := c.Eval(t0)
	p3 := c.Eval(t1)
	d := c.Differentiate()
	scale := (t1 - t0) * (1.0 / 3.0)
	p1 := p0.Translate(Vec2(d.Eval(t0)).Mul(scale))
	p2 := p3.Translate(Vec2(d.Eval(t1)).Mul(scale).Negate())
	return CubicBez{p0, p1, p2, p3}
}

// Differentiate returns the hodograph of the curve.
func (c CubicBez) Differentiate() QuadBez {
	return QuadBez{
		Point(c.P1.Sub(c.P0).Mul(3)),
		Point(c.P2.Sub(c.P1).Mul(3)),
		Point(c.P3.Sub(c.P2).Mul(3)),
	}
}

func (c CubicBez) Extrema() ([MaxExtrema]float64, int) {
	// two calls to oneCoord, up to 2 roots per call, for a total of 4 possible values.
	var out [MaxExtrema]float64
	var outN int
	oneCoord := func(d0, d1, d2 float64) {
		a := d0 - 2*d1 + d2
		b := 2 * (d1 - d0)
		c := d0
		roots, n := SolveQuadratic(c, b, a)
		for _, t := range roots[:n] {
			if t > 0.0 && t < 1.0 {
				out[outN] = t
				outN++
			}
		}
	}

	d0 := c.P1.Sub(c.P0)
	d1 := c.P2.Sub(c.P1)
	d2 := c.P3.Sub(c.P2)
	oneCoord(d0.X, d1.X, d2.X)
	oneCoord(d0.Y, d1.Y, d2.Y)
	sort.Float64s(out[:outN])
	return out, outN
}

func (c CubicBez) Tangents() (Vec2, Vec2) {
	const epsilon = 1e-12
	d01 := c.P1.Sub(c.P0)
	var d0, d1 Vec2
	if d01.Hypot2() > epsilon {
		d0 = d01
	} else {
		d02 := c.P2.Sub(c.P0)
		if d02.Hypot2() > epsilon {
			d0 = d02
		} else {
			d0 = c.P3.Sub(c.P0)
		}
	}
	d23 := c.P3.Sub(c.P2)
	if d23.Hypot2() > epsilon {
		d1 = d23
	} else {
		d13 := c.P3.Sub(c.P1)
		if d13.Hypot2() > epsilon {
			d1 = d13
		} else {
			d1 = c.P3.Sub(c.P0)
		}
	}
	return d0, d1
}

func (c CubicBez) Segment() Segment {
	return Segment{
		Order: 3,
		X0:    c.P0.X, Y0: c.P0.Y,
		CX: c.P1.X, CY: c.P1.Y,
		CX1: c.P2.X, CY1: c.P2.Y,
		X1: c.P3.X, Y1: c.P3.Y,
	}
}

func (c CubicBez) IntersectLine(line Line) ([3]LineIntersection, int) {
	const epsilon = 1e-9
	p0 := line.P0
	p1 := line.P1
	dx := p1.X - p0.X
	dy := p1.Y - p0.Y

	// The basic technique here is to determine x and y as a cubic polynomial
	// as a function of t. Then plug those values into the line equation for the
	// probe line (giving a sort of signed distance from the probe line) and solve
	// that for t.
	px0, px1, px2, px3 := cubicBezCoefficients(c.P0.X, c.P1.X, c.P2.X, c.P3.X)
	py0, py1, py2, py3 := cubicBezCoefficients(c.P0.Y, c.P1.Y, c.P2.Y, c.P3.Y)
	c0 := dy*(px0-p0.X) - dx*(py0-p0.Y)
	c1 := dy*px1 - dx*py1
	c2 := dy*px2 - dx*py2
	c3 := dy*px3 - dx*py3
	invlen2 := 1.0 / (dx*dx + dy*dy)
	ts, n := SolveCubic(c0, c1, c2, c3)
	var ret [3]LineIntersection
	var retN int
	for _, t := range ts[:n] {
		if t >= -epsilon && t <= 1+epsilon {
			x := px0 + t*px1 + t*t*px2 + t*t*t*px3
			y := py0 + t*py1 + t*t*py2 + t*t*t*py3
			u := ((x-p0.X)*dx + (y-p0.Y)*dy) * invlen2
			if u >= 0.0 && u <= 1.0 {
				ret[retN] = LineIntersection{u, t}
				retN++
			}
		}
	}
	return ret, retN
}

// Return polynomial coefficients given cubic bezier coordinates.
func cubicBezCoefficients(x0, x1, x2, x3 float64) (_, _, _, _ float64) {
	p0 := x0
	p1 := 3.0 * (x1 - x0)
	p2 := 3.0*(x2-x1) - p1
	p3 := x3 - x0 - p1 - p2
	return p0, p1, p2, p3
}

// Inflections returns the inflection points.
//
// At an inflection point the velocity and acceleration are parallel. With
// a = P1−P0, b = P2−P1−a and c = P3−P0−3(P2−P1), this reduces to the quadratic
// a×b + (a×c) t + (b×c) t² = 0.
//
// The function returns up to two inflection points in [0, 1], in increasing
// order, with the second return value specifying the number of points
// returned.
func (c CubicBez) Inflections() ([2]float64, int) {
	a := c.P1.Sub(c.P0)
	b := c.P2.Sub(c.P1).Sub(a)
	cc := c.P3.Sub(c.P0).Sub(c.P2.Sub(c.P1).Mul(3))
	if a.Cross(b) == 0 && a.Cross(cc) == 0 && b.Cross(cc) == 0 {
		// Straight lines and parabolas have no isolated inflections.
		return [2]float64{}, 0
	}
	nums, n := SolveQuadratic(a.Cross(b), a.Cross(cc), b.Cross(cc))
	var out [2]float64
	var outN int
	for _, num := range nums[:n] {
		if num >= 0 && num <= 1 {
			out[outN] = num
			outN++
		}
	}
	return out, outN
}

// Inflections returns the inflection points of c, see [CubicBez.Inflections].
func Inflections(c CubicBez) ([2]float64, int) {
	return c.Inflections()
}

// approxQuadControl returns the control point of the quadratic that best
// approximates c in the least squares sense.
func (c CubicBez) approxQuadControl() Point {
	p1x2 := Vec2(c.P1).Mul(3).Sub(Vec2(c.P0))
	p2x2 := Vec2(c.P2).Mul(3).Sub(Vec2(c.P3))
	return Point(p1x2.Add(p2x2).Mul(1.0 / 4.0))
}

// tangentQuad returns the quadratic whose control point lies at the
// intersection of c's end tangents. It returns false if the tangents are
// parallel or the intersection lies behind either endpoint.
func (c CubicBez) tangentQuad() (QuadBez, bool) {
	d0, d1 := c.Tangents()
	q1, ok := Line{c.P0, c.P0.Translate(d0)}.CrossingPoint(Line{c.P3.Translate(d1.Negate()), c.P3})
	if !ok || q1.IsNaN() || q1.IsInf() {
		return QuadBez{}, false
	}
	if q1.Sub(c.P0).Dot(d0) < 0 || c.P3.Sub(q1).Dot(d1) < 0 {
		return QuadBez{}, false
	}
	return QuadBez{c.P0, q1, c.P3}, true
}

// speedIntegral integrates the magnitude of a derivative over [a, b].
func speedIntegral(deriv func(float64) Vec2, a, b float64, order int) float64 {
	return Integrate(func(t float64) float64 {
		return deriv(t).Hypot()
	}, a, b, order)
}

// isFinite reports whether f is neither infinite nor NaN.
func isFinite(f float64) bool {
	return !math.IsInf(f, 0) && !math.IsNaN(f)
}
