package bezier

import "math"

// Affine is an affine transform of the plane, mapping (x, y) to
// (A·x + C·y + E, B·x + D·y + F).
//
// Bézier curves are affine invariant: transforming the control points
// transforms the curve. Catmull-Rom splines are too, so transforming a
// spline's points transforms the spline.
type Affine struct {
	A, B, C, D, E, F float64
}

// Identity is the identity transform.
var Identity = Affine{1, 0, 0, 1, 0, 0}

// FlipY mirrors the y axis, converting between y-up and y-down spaces.
var FlipY = Affine{1, 0, 0, -1, 0, 0}

func Scale(x, y float64) Affine {
	return Affine{x, 0, 0, y, 0, 0}
}

func Translate(v Vec2) Affine {
	return Affine{1, 0, 0, 1, v.X, v.Y}
}

// Rotate returns a rotation by th radians. Positive angles rotate the positive
// x direction into the positive y direction.
func Rotate(th float64) Affine {
	sin, cos := math.Sincos(th)
	return Affine{cos, sin, -sin, cos, 0, 0}
}

// RotateAbout returns a rotation by th radians about center.
func RotateAbout(th float64, center Point) Affine {
	c := Vec2(center)
	return Translate(c.Negate()).Then(Rotate(th)).Then(Translate(c))
}

// Mul returns the transform that applies o, then aff.
func (aff Affine) Mul(o Affine) Affine {
	return Affine{
		aff.A*o.A + aff.C*o.B,
		aff.B*o.A + aff.D*o.B,
		aff.A*o.C + aff.C*o.D,
		aff.B*o.C + aff.D*o.D,
		aff.A*o.E + aff.C*o.F + aff.E,
		aff.B*o.E + aff.D*o.F + aff.F,
	}
}

// Then returns the transform that applies aff, then o.
func (aff Affine) Then(o Affine) Affine {
	return o.Mul(aff)
}

func (aff Affine) Determinant() float64 {
	return aff.A*aff.D - aff.B*aff.C
}

// Invert returns the inverse transform. Its coefficients are not finite if the
// determinant is zero.
func (aff Affine) Invert() Affine {
	inv := 1 / aff.Determinant()
	return Affine{
		inv * aff.D,
		-inv * aff.B,
		-inv * aff.C,
		inv * aff.A,
		inv * (aff.C*aff.F - aff.D*aff.E),
		inv * (aff.B*aff.E - aff.A*aff.F),
	}
}

func (aff Affine) IsNaN() bool {
	return math.IsNaN(aff.A) ||
		math.IsNaN(aff.B) ||
		math.IsNaN(aff.C) ||
		math.IsNaN(aff.D) ||
		math.IsNaN(aff.E) ||
		math.IsNaN(aff.F)
}

func (pt Point) Transform(aff Affine) Point {
	return Point{
		X: aff.A*pt.X + aff.C*pt.Y + aff.E,
		Y: aff.B*pt.X + aff.D*pt.Y + aff.F,
	}
}

func (q QuadBez) Transform(aff Affine) QuadBez {
	return QuadBez{q.P0.Transform(aff), q.P1.Transform(aff), q.P2.Transform(aff)}
}

func (c CubicBez) Transform(aff Affine) CubicBez {
	return CubicBez{c.P0.Transform(aff), c.P1.Transform(aff), c.P2.Transform(aff), c.P3.Transform(aff)}
}

// Transform returns the segment with its control points transformed. The
// order is preserved.
func (seg Segment) Transform(aff Affine) Segment {
	if seg.IsCubic() {
		return seg.Cubic().Transform(aff).Segment()
	}
	return seg.Quad().Transform(aff).Segment()
}

// Transform applies aff to all of the spline's points.
//
// For [CatmullRomTangents] this transforms the spline as a whole. Strategies
// that derive control arms from chord lengths, such as [BisectorTangents],
// only commute with similarity transforms.
func (s *Spline) Transform(aff Affine) {
	for i, pt := range s.points {
		s.points[i] = pt.Transform(aff)
	}
	s.invalidate()
}
