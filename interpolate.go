package bezier

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// singularDeterminant is the determinant magnitude below which the linear
// system for interpolating control points is treated as singular.
const singularDeterminant = 1e-6

// chordParam returns the chord-length parameter of the middle of three points.
func chordParam(p0, p1, p2 Point) (float64, bool) {
	d0 := p0.Distance(p1)
	d1 := p1.Distance(p2)
	if d0+d1 == 0 {
		return 0, false
	}
	return d0 / (d0 + d1), true
}

// QuadThrough returns the quadratic Bézier from p0 to p2 that passes through
// p1, which is assigned its chord-length parameter.
//
// If p1 coincides with an endpoint the parameter is degenerate and p1 is
// assumed to lie at t = 0.5.
func QuadThrough(p0, p1, p2 Point) QuadBez {
	t, ok := chordParam(p0, p1, p2)
	if !ok || 2*t*(1-t) < singularDeterminant {
		return quadThroughMid(p0, p1, p2)
	}
	mt := 1 - t
	// p1 = mt² p0 + 2 mt t c + t² p2
	v := Vec2(p1).Sub(Vec2(p0).Mul(mt * mt)).Sub(Vec2(p2).Mul(t * t))
	return QuadBez{p0, Point(v.Mul(1 / (2 * mt * t))), p2}
}

// quadThroughMid returns the quadratic that passes through p1 at t = 0.5.
func quadThroughMid(p0, p1, p2 Point) QuadBez {
	c := Vec2(p1).Mul(2).Sub(Vec2(p0.Midpoint(p2)))
	return QuadBez{p0, Point(c), p2}
}

// CubicThrough returns the cubic Bézier from p0 to p3 that passes through p1
// and p2, which are assigned their chord-length parameters.
//
// The control points solve one 2×2 linear system per axis. When the system is
// nearly singular, for example because points coincide, the result is the
// quadratic through p0, the midpoint of p1 and p2, and p3, raised to a cubic.
func CubicThrough(p0, p1, p2, p3 Point) CubicBez {
	fallback := func() CubicBez {
		return QuadThrough(p0, p1.Midpoint(p2), p3).Raise()
	}

	d0 := p0.Distance(p1)
	d1 := p1.Distance(p2)
	d2 := p2.Distance(p3)
	total := d0 + d1 + d2
	if total == 0 {
		return fallback()
	}
	t1 := d0 / total
	t2 := (d0 + d1) / total

	// p_i − (1−t_i)³ p0 − t_i³ p3 = 3(1−t_i)² t_i c1 + 3(1−t_i) t_i² c2
	basis := func(t float64) (b0, b1, b2, b3 float64) {
		mt := 1 - t
		return mt * mt * mt, 3 * mt * mt * t, 3 * mt * t * t, t * t * t
	}
	a0, a1, a2, a3 := basis(t1)
	b0, b1, b2, b3 := basis(t2)
	a := mat.NewDense(2, 2, []float64{
		a1, a2,
		b1, b2,
	})
	if math.Abs(mat.Det(a)) < singularDeterminant {
		return fallback()
	}
	rhs := mat.NewDense(2, 2, []float64{
		p1.X - a0*p0.X - a3*p3.X, p1.Y - a0*p0.Y - a3*p3.Y,
		p2.X - b0*p0.X - b3*p3.X, p2.Y - b0*p0.Y - b3*p3.Y,
	})
	var ctrl mat.Dense
	if err := ctrl.Solve(a, rhs); err != nil {
		return fallback()
	}
	c1 := Point{ctrl.At(0, 0), ctrl.At(0, 1)}
	c2 := Point{ctrl.At(1, 0), ctrl.At(1, 1)}
	if c1.IsNaN() || c2.IsNaN() || c1.IsInf() || c2.IsInf() {
		return fallback()
	}
	return CubicBez{p0, c1, c2, p3}
}
