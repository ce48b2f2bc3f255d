package bezier

import "math"

// DefaultFitTolerance is the relative arc length error used by
// [ApproxQuadratics] when no tolerance is given.
const DefaultFitTolerance = 0.02

// maxApproxSegments caps the number of quadratics produced by
// ApproxQuadratics.
const maxApproxSegments = 16

// ApproxQuadratics approximates a cubic Bézier by a sequence of quadratic
// segments that together cover [0, 1] in order.
//
// The cubic is bisected in t until each piece is matched by a quadratic whose
// control point lies at the intersection of the piece's end tangents and whose
// arc length differs from the piece's by less than the relative tolerance. A
// tolerance <= 0 selects [DefaultFitTolerance].
//
// At most 16 segments are produced. Pieces that can't be split any further
// use the control point that minimizes the squared error instead.
func ApproxQuadratics(c CubicBez, tolerance float64) []Segment {
	if tolerance <= 0 {
		tolerance = DefaultFitTolerance
	}
	type piece struct{ t0, t1 float64 }
	out := make([]Segment, 0, 4)
	// Stack of pending pieces, rightmost at the bottom so that output is
	// produced in order.
	pending := []piece{{0, 1}}
	for len(pending) > 0 {
		p := pending[len(pending)-1]
		pending = pending[:len(pending)-1]

		sub := c.Subsegment(p.t0, p.t1)
		q, ok := sub.tangentQuad()
		if !ok {
			q = QuadBez{sub.P0, sub.approxQuadControl(), sub.P3}
		}
		if quadFitError(sub, q) < tolerance {
			out = append(out, q.Segment())
			continue
		}
		if len(out)+len(pending)+2 <= maxApproxSegments {
			mid := 0.5 * (p.t0 + p.t1)
			pending = append(pending, piece{mid, p.t1}, piece{p.t0, mid})
			continue
		}
		out = append(out, QuadBez{sub.P0, sub.approxQuadControl(), sub.P3}.Segment())
	}
	return out
}

// quadFitError returns the relative arc length error of q with respect to c.
func quadFitError(c CubicBez, q QuadBez) float64 {
	want := c.Arclen()
	got := q.Arclen()
	if want == 0 {
		// The cubic degenerates to a point.
		return 0
	}
	return math.Abs(got-want) / want
}
