package bezier

import "math"

// Closest point on a Bézier curve by Bézier clipping, after "Solving the
// Nearest-Point-On-Curve Problem", Philip J. Schneider, Graphics Gems (1990).
//
// For a curve B of degree n and a point P, the parameters of the closest
// points are among the zeros of (B(t) − P)·B'(t), a polynomial of degree 2n−1.
// It is expressed in Bernstein form, whose control polygon bounds its roots.

const (
	// maxClipDepth bounds the subdivision of the Bernstein polynomial.
	maxClipDepth = 64
	// clipEpsilon is the flatness at which a control polygon's chord is
	// accepted as the root, 2^-(maxClipDepth+1).
	clipEpsilon = 0x1p-65
	// maxBernsteinPoints is the number of control points of the polynomial
	// for cubic curves.
	maxBernsteinPoints = 6
)

// Blending coefficients of the products of the curve's derivative and
// position, for quadratic and cubic curves. Indexed by derivative and
// position control point.
var (
	zQuad = [2][3]float64{
		{1.0, 2.0 / 3.0, 1.0 / 3.0},
		{1.0 / 3.0, 2.0 / 3.0, 1.0},
	}
	zCubic = [3][4]float64{
		{1.0, 0.6, 0.3, 0.1},
		{0.4, 0.6, 0.6, 0.4},
		{0.1, 0.3, 0.6, 1.0},
	}
)

// ClosestPoint returns the parameter of the point on seg closest to pt, and
// that point. The curve's endpoints are always candidates, so the result is
// never farther from pt than either of them.
func ClosestPoint(seg Segment, pt Point) (float64, Point) {
	ctrl := seg.controlPoints()
	w, degree := distanceBernstein(ctrl, pt)

	var buf [2 * maxBernsteinPoints]float64
	roots := clipRoots(w[:degree+1], buf[:0])

	eval := seg.Eval
	bestT := 0.0
	bestP := ctrl[0]
	bestDist := pt.DistanceSquared(bestP)
	consider := func(t float64, p Point) {
		if d := pt.DistanceSquared(p); d < bestDist {
			bestT, bestP, bestDist = t, p, d
		}
	}
	for _, t := range roots {
		t = min(max(t, 0), 1)
		consider(t, eval(t))
	}
	consider(1, ctrl[len(ctrl)-1])
	return bestT, bestP
}

// distanceBernstein returns the Bernstein form of (B(t) − pt)·B'(t), with
// each control point's x holding its parameter, and the polynomial's degree.
func distanceBernstein(ctrl []Point, pt Point) ([maxBernsteinPoints]Point, int) {
	n := len(ctrl) - 1
	var c [4]Vec2
	var d [3]Vec2
	for i, p := range ctrl {
		c[i] = p.Sub(pt)
	}
	for i := range n {
		d[i] = ctrl[i+1].Sub(ctrl[i]).Mul(float64(n))
	}
	z := func(row, col int) float64 {
		if n == 3 {
			return zCubic[row][col]
		}
		return zQuad[row][col]
	}

	degree := 2*n - 1
	var w [maxBernsteinPoints]Point
	for k := range degree + 1 {
		w[k].X = float64(k) / float64(degree)
	}
	m := n - 1
	for k := range n + m + 1 {
		lb := max(0, k-m)
		ub := min(k, n)
		for i := lb; i <= ub; i++ {
			j := k - i
			w[i+j].Y += d[j].Dot(c[i]) * z(j, i)
		}
	}
	return w, degree
}

// clipRoots appends the parameters of the roots of the Bernstein polynomial w
// to roots.
func clipRoots(w []Point, roots []float64) []float64 {
	type item struct {
		w     [maxBernsteinPoints]Point
		depth int
	}
	degree := len(w) - 1
	var first item
	copy(first.w[:], w)
	work := []item{first}
	for len(work) > 0 {
		it := work[len(work)-1]
		work = work[:len(work)-1]
		cw := it.w[:degree+1]

		switch crossingCount(cw) {
		case 0:
			continue
		case 1:
			if it.depth >= maxClipDepth {
				roots = append(roots, (cw[0].X+cw[degree].X)/2)
				continue
			}
			if controlPolygonFlatEnough(cw) {
				if t, ok := xIntercept(cw); ok {
					roots = append(roots, t)
					continue
				}
			}
		}
		if it.depth >= maxClipDepth {
			// Multiple crossings this deep are numerically the same root.
			roots = append(roots, (cw[0].X+cw[degree].X)/2)
			continue
		}

		left := item{depth: it.depth + 1}
		right := item{depth: it.depth + 1}
		splitBernstein(cw, left.w[:degree+1], right.w[:degree+1])
		// Right first, so that the left half is processed first.
		work = append(work, right, left)
	}
	return roots
}

// crossingCount counts the sign changes of the control polygon's ordinates.
// Zero counts as positive.
func crossingCount(w []Point) int {
	sgn := func(f float64) int {
		if f < 0 {
			return -1
		}
		return 1
	}
	n := 0
	sign := sgn(w[0].Y)
	for _, p := range w[1:] {
		if s := sgn(p.Y); s != sign {
			n++
			sign = s
		}
	}
	return n
}

// controlPolygonFlatEnough reports whether the control polygon is close
// enough to its chord that the chord's x intercept approximates the root.
func controlPolygonFlatEnough(w []Point) bool {
	degree := len(w) - 1
	// Implicit equation of the chord: a x + b y + c = 0.
	a := w[0].Y - w[degree].Y
	b := w[degree].X - w[0].X
	c := w[0].X*w[degree].Y - w[degree].X*w[0].Y
	if a == 0 {
		return false
	}

	var above, below float64
	for _, p := range w[1:degree] {
		v := a*p.X + b*p.Y + c
		if v > above {
			above = v
		} else if v < below {
			below = v
		}
	}

	// Intersections of the lines parallel to the chord through the extreme
	// points with y = 0.
	i1 := (c - above) / -a
	i2 := (c - below) / -a
	return math.Abs(i1-i2) < clipEpsilon
}

// xIntercept returns the parameter at which the chord of the control polygon
// crosses zero.
func xIntercept(w []Point) (float64, bool) {
	degree := len(w) - 1
	dx := w[degree].X - w[0].X
	dy := w[degree].Y - w[0].Y
	if dy == 0 {
		return 0, false
	}
	return w[0].X - w[0].Y*dx/dy, true
}

// splitBernstein subdivides the control polygon w at its midpoint, writing
// the halves to left and right.
func splitBernstein(w, left, right []Point) {
	degree := len(w) - 1
	var tmp [maxBernsteinPoints][maxBernsteinPoints]Point
	copy(tmp[0][:], w)
	for i := 1; i <= degree; i++ {
		for j := 0; j <= degree-i; j++ {
			tmp[i][j] = tmp[i-1][j].Midpoint(tmp[i-1][j+1])
		}
	}
	for j := 0; j <= degree; j++ {
		left[j] = tmp[j][0]
		right[j] = tmp[degree-j][j]
	}
}
