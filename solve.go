package bezier

import (
	"math"
)

// DefaultRootTolerance is the residual below which [FindRoot] considers a
// function value to be zero when curves and splines invert their parameters.
const DefaultRootTolerance = 1e-9

const (
	maxRootIterations = 100
	// Number of uniform samples used to look for a sign change when FindRoot
	// is handed a bracket whose endpoints have the same sign.
	bracketScanSamples = 16
)

// SolveQuadratic finds real roots of a quadratic equation.
//
// Returns values of x for which c0 + c1 x + c2 x² = 0.0
//
// This function tries to be quite numerically robust. If the equation is nearly
// linear, it will return the root ignoring the quadratic term; the other root
// might be out of representable range. In the degenerate case where all
// coefficients are zero, so that all values of x satisfy the equation, a single
// 0.0 is returned.
func SolveQuadratic(c0, c1, c2 float64) ([2]float64, int) {
	sc0 := c0 / c2
	sc1 := c1 / c2
	if math.IsInf(sc0, 0) || math.IsInf(sc1, 0) || math.IsNaN(sc0) || math.IsNaN(sc1) {
		// c2 is zero or very small, treat as linear eqn
		root := -c0 / c1
		if !math.IsInf(root, 0) && !math.IsNaN(root) {
			return [2]float64{root}, 1
		} else if c0 == 0.0 && c1 == 0.0 {
			// Degenerate case
			return [2]float64{0}, 1
		} else {
			return [2]float64{}, 0
		}
	}
	arg := sc1*sc1 - 4.0*sc0
	var root1 float64
	if math.IsInf(arg, 0) {
		// Likely, calculation of sc1 * sc1 overflowed. Find one root
		// using sc1 x + x² = 0, other root as sc0 / root1.
		root1 = -sc1
	} else {
		if arg < 0.0 {
			return [2]float64{}, 0
		} else if arg == 0.0 {
			return [2]float64{-0.5 * sc1}, 1
		}
		// See https://math.stackexchange.com/questions/866331
		root1 = -0.5 * (sc1 + math.Copysign(math.Sqrt(arg), sc1))
	}
	root2 := sc0 / root1
	if !math.IsInf(root2, 0) && !math.IsNaN(root2) {
		// Sort just to be friendly and make results deterministic.
		if root2 > root1 {
			return [2]float64{root1, root2}, 2
		} else {
			return [2]float64{root2, root1}, 2
		}
	} else {
		return [2]float64{root1}, 1
	}
}

// SolveCubic finds real roots of cubic equations.
//
// The implementation is not (yet) fully robust, but it does handle the case
// where c3 is zero (in that case, solving the quadratic equation).
//
// See: https://momentsingraphics.de/CubicRoots.html
//
// That implementation is in turn based on Jim Blinn's "How to Solve a Cubic
// Equation", which is masterful.
//
// Returns values of x for which c0 + c1 x + c2 x² + c3 x³ = 0.0
//
// The second return value states how many roots were found.
func SolveCubic(c0, c1, c2, c3 float64) ([3]float64, int) {
	c3Recip := 1.0 / c3
	scaledC2 := c2 * (1.0 / 3.0 * c3Recip)
	scaledC1 := c1 * (1.0 / 3.0 * c3Recip)
	scaledC0 := c0 * c3Recip
	if math.IsInf(scaledC0, 0) || math.IsInf(scaledC1, 0) || math.IsInf(scaledC2, 0) ||
		math.IsNaN(scaledC0) || math.IsNaN(scaledC1) || math.IsNaN(scaledC2) {
		// cubic coefficient is zero or nearly so.
		roots, n := SolveQuadratic(c0, c1, c2)
		return [3]float64{roots[0], roots[1]}, n
	}
	c0, c1, c2 = scaledC0, scaledC1, scaledC2
	// (d0, d1, d2) is called "Delta" in article
	d0 := math.FMA(-c2, c2, c1)
	d1 := math.FMA(-c1, c2, c0)
	d2 := c2*c0 - c1*c1
	// d is called "Discriminant"
	d := 4.0*d0*d2 - d1*d1
	// de is called "Depressed.x", Depressed.y = d0
	de := math.FMA(-2.0*c2, d0, d1)
	if d < 0.0 {
		sq := math.Sqrt(-0.25 * d)
		r := -0.5 * de
		t1 := math.Cbrt(r+sq) + math.Cbrt(r-sq)
		return [3]float64{t1 - c2}, 1
	} else if d == 0.0 {
		t1 := math.Copysign(math.Sqrt(-d0), de)
		return [3]float64{t1 - c2, -2.0*t1 - c2}, 2
	} else {
		th := math.Atan2(math.Sqrt(d), -de) * (1.0 / 3.0)
		// (thCos, thSin) is called "CubicRoot"
		thSin, thCos := math.Sincos(th)
		// (r0, r1, r2) is called "Root"
		r0 := thCos
		ss3 := thSin * math.Sqrt(3.0)
		r1 := 0.5 * (-thCos + ss3)
		r2 := 0.5 * (-thCos - ss3)
		t := 2.0 * math.Sqrt(-d0)

		return [3]float64{
			math.FMA(t, r0, -c2),
			math.FMA(t, r1, -c2),
			math.FMA(t, r2, -c2),
		}, 3
	}
}

// FindRoot finds a zero of f within the bracket [left, right].
//
// It uses the Illinois variant of regula falsi: whenever the same end of the
// bracket is retained twice in a row, the function value stored for that end
// is halved. This keeps the method from stagnating on one side of the root,
// making convergence super-linear.
//
// The search stops once |f(t)| < tolerance, once the bracket has collapsed to
// floating point resolution, or after a bounded number of iterations. In every
// case the estimate with the smallest residual seen so far is returned; callers
// that need guaranteed accuracy must check the residual themselves.
//
// The bracket does not have to contain a sign change. If it doesn't, the
// bracket is scanned for a sub-interval that does, and if there is none, the
// best sampled point is returned. If left == right, left is returned without
// evaluating f.
func FindRoot(f func(float64) float64, left, right, tolerance float64) float64 {
	if left == right {
		return left
	}
	a, b := left, right
	fa, fb := f(a), f(b)

	best, fbest := a, math.Abs(fa)
	consider := func(t, ft float64) {
		// Ties go to the later point, which lies in a narrower bracket.
		if aft := math.Abs(ft); aft <= fbest || math.IsNaN(fbest) {
			best, fbest = t, aft
		}
	}
	consider(b, fb)
	if fbest < tolerance {
		return best
	}

	if fa*fb > 0 || math.IsNaN(fa*fb) {
		var ok bool
		a, b, fa, fb, ok = scanBracket(f, a, b, consider)
		if !ok || fbest < tolerance {
			return best
		}
	}

	// side records which end was replaced in the previous iteration: -1 for
	// b, +1 for a.
	side := 0
	for range maxRootIterations {
		c := (a*fb - b*fa) / (fb - fa)
		if math.IsNaN(c) || math.IsInf(c, 0) || (c-a)*(c-b) > 0 {
			c = 0.5 * (a + b)
		}
		fc := f(c)
		consider(c, fc)
		if math.Abs(fc) < tolerance {
			return c
		}
		if fc*fb > 0 {
			b, fb = c, fc
			if side == -1 {
				fa *= 0.5
			}
			side = -1
		} else {
			a, fa = c, fc
			if side == 1 {
				fb *= 0.5
			}
			side = 1
		}
		if math.Abs(b-a) <= 4*epsilon64*max(1, math.Abs(a)+math.Abs(b)) {
			break
		}
	}
	return best
}

const epsilon64 = 0x1p-52

// scanBracket looks for a sign change of f by sampling [a, b] uniformly.
func scanBracket(
	f func(float64) float64,
	a, b float64,
	consider func(t, ft float64),
) (_, _, _, _ float64, ok bool) {
	prevT, prevF := a, f(a)
	for i := 1; i <= bracketScanSamples; i++ {
		t := a + (b-a)*float64(i)/bracketScanSamples
		ft := f(t)
		consider(t, ft)
		if prevF*ft <= 0 {
			return prevT, t, prevF, ft, true
		}
		prevT, prevF = t, ft
	}
	return 0, 0, 0, 0, false
}
