package bezier

import "math"

// QuadCurve is a quadratic Bézier curve that caches its polynomial
// coefficients and arc length.
//
// The zero value is a curve with all points at the origin.
type QuadCurve struct {
	bez    QuadBez
	state  curveState
	coeffs coeffs
	arclen arclenCache
}

// NewQuadCurve returns a curve from p0 to p2 with control point p1.
func NewQuadCurve(p0, p1, p2 Point) *QuadCurve {
	return &QuadCurve{bez: QuadBez{p0, p1, p2}}
}

// Bez returns the curve's control polygon.
func (c *QuadCurve) Bez() QuadBez { return c.bez }

// SetBez replaces the curve's control polygon.
func (c *QuadCurve) SetBez(q QuadBez) {
	c.bez = q
	c.invalidate()
}

func (c *QuadCurve) SetP0(p Point) {
	c.bez.P0 = p
	c.invalidate()
}

func (c *QuadCurve) SetP1(p Point) {
	c.bez.P1 = p
	c.invalidate()
}

func (c *QuadCurve) SetP2(p Point) {
	c.bez.P2 = p
	c.invalidate()
}

// Clear moves all points back to the origin.
func (c *QuadCurve) Clear() {
	c.SetBez(QuadBez{})
}

func (c *QuadCurve) invalidate() {
	c.state = stateInvalid
	c.arclen = arclenCache{}
}

func (c *QuadCurve) ensureValid() {
	if c.state == stateValid {
		return
	}
	x0, x1, x2 := quadBezCoefficients(c.bez.P0.X, c.bez.P1.X, c.bez.P2.X)
	y0, y1, y2 := quadBezCoefficients(c.bez.P0.Y, c.bez.P1.Y, c.bez.P2.Y)
	c.coeffs = coeffs{
		x: [4]float64{x0, x1, x2, 0},
		y: [4]float64{y0, y1, y2, 0},
	}
	c.state = stateValid
}

func (c *QuadCurve) Order() int { return 2 }

func (c *QuadCurve) Start() Point { return c.bez.P0 }
func (c *QuadCurve) End() Point   { return c.bez.P2 }

func (c *QuadCurve) Eval(t float64) Point {
	// The endpoints are returned verbatim so that they interpolate exactly.
	switch t {
	case 0:
		return c.bez.P0
	case 1:
		return c.bez.P2
	}
	c.ensureValid()
	return c.coeffs.eval(t)
}

func (c *QuadCurve) Deriv(t float64) Vec2 {
	c.ensureValid()
	return c.coeffs.deriv(t)
}

func (c *QuadCurve) Arclen() float64 {
	c.ensureValid()
	return c.arclen.total(func() float64 {
		return speedIntegral(c.coeffs.deriv, 0, 1, arclenOrder)
	})
}

func (c *QuadCurve) ArclenAt(t float64) float64 {
	if t <= 0 {
		return 0
	}
	c.ensureValid()
	return speedIntegral(c.coeffs.deriv, 0, min(t, 1), partialArclenOrder)
}

func (c *QuadCurve) ParamAtArclen(s float64) float64 {
	return c.arclen.paramAtArclen(s, c.ArclenAt)
}

func (c *QuadCurve) SolveForX(x float64) ([3]float64, int) {
	c.ensureValid()
	return solveQuadForCoord(c.coeffs.x, x)
}

func (c *QuadCurve) SolveForY(y float64) ([3]float64, int) {
	c.ensureValid()
	return solveQuadForCoord(c.coeffs.y, y)
}

// solveQuadForCoord solves p0 + p1 t + p2 t² = v in closed form.
//
// The quadratic formula can produce spurious roots when the polynomial is
// nearly linear, so every root is checked by reconstructing the coordinate.
// Roots whose reconstruction error isn't within tolerance of the best one are
// dropped.
func solveQuadForCoord(p [4]float64, v float64) ([3]float64, int) {
	roots, n := SolveQuadratic(p[0]-v, p[1], p[2])
	ts, tn := unitRoots(roots[:n])
	if tn == 0 {
		return ts, 0
	}
	var errs [3]float64
	best := math.Inf(1)
	for i, t := range ts[:tn] {
		errs[i] = math.Abs(p[0] + t*(p[1]+t*p[2]) - v)
		best = min(best, errs[i])
	}
	scale := max(1, math.Abs(v), math.Abs(p[0]), math.Abs(p[1]), math.Abs(p[2]))
	var out [3]float64
	var outN int
	for i, t := range ts[:tn] {
		if errs[i] <= best+1e-9*scale {
			out[outN] = t
			outN++
		}
	}
	return out, outN
}

func (c *QuadCurve) IntersectLine(l Line) ([3]LineIntersection, int) {
	return c.bez.IntersectLine(l)
}

func (c *QuadCurve) BoundingBox() Rect {
	return c.bez.BoundingBox()
}

func (c *QuadCurve) Segment() Segment {
	return c.bez.Segment()
}

// SetSegment replaces the curve's geometry with that of seg. Cubic segments
// are approximated, see [Segment.Quad].
func (c *QuadCurve) SetSegment(seg Segment) {
	c.SetBez(seg.Quad())
}
