package bezier

import (
	"math"
	"testing"
)

func TestApproxQuadratics(t *testing.T) {
	curves := []CubicBez{
		{Pt(0, 0), Pt(0, 100), Pt(100, 0), Pt(100, 100)},
		{Pt(0, 0), Pt(1, 3), Pt(3, -2), Pt(5, 2)},
		{Pt(0, 0), Pt(50, 80), Pt(100, 80), Pt(150, 0)},
	}
	for _, c := range curves {
		for _, tol := range []float64{0, 0.1, 1e-3} {
			segs := ApproxQuadratics(c, tol)
			if len(segs) == 0 || len(segs) > maxApproxSegments {
				t.Fatalf("%v: got %d segments", c, len(segs))
			}
			diff(t, c.P0, segs[0].Start())
			diff(t, c.P3, segs[len(segs)-1].End())
			var length float64
			for i, seg := range segs {
				if seg.IsCubic() {
					t.Errorf("%v: segment %d is cubic", c, i)
				}
				if i > 0 {
					assertNear(t, seg.Start(), segs[i-1].End(), 1e-12)
				}
				length += seg.Quad().Arclen()
			}
			if tol == 0 {
				tol = DefaultFitTolerance
			}
			// Each accepted piece is within tolerance, so the total is too,
			// unless the segment cap was reached.
			if want := c.Arclen(); len(segs) < maxApproxSegments && math.Abs(length-want)/want > tol+1e-6 {
				t.Errorf("%v: got length %v, want %v within %v", c, length, want, tol)
			}
		}
	}
}

func TestApproxQuadraticsSimple(t *testing.T) {
	// Collinear, evenly spaced control points.
	line := CubicBez{Pt(0, 0), Pt(1, 0), Pt(2, 0), Pt(3, 0)}
	segs := ApproxQuadratics(line, 0)
	diff(t, []Segment{QuadBez{Pt(0, 0), Pt(1.5, 0), Pt(3, 0)}.Segment()}, segs)

	// A raised quadratic is reproduced exactly.
	q := QuadBez{Pt(0, 0), Pt(1, 2), Pt(3, 0)}
	segs = ApproxQuadratics(q.Raise(), 0)
	if len(segs) != 1 {
		t.Fatalf("got %d segments, want 1", len(segs))
	}
	assertNear(t, segs[0].Quad().P1, q.P1, 1e-9)

	p := Pt(2, 2)
	segs = ApproxQuadratics(CubicBez{p, p, p, p}, 0)
	diff(t, []Segment{QuadBez{p, p, p}.Segment()}, segs)
}

func BenchmarkApproxQuadratics(b *testing.B) {
	c := CubicBez{Pt(0, 0), Pt(0, 100), Pt(100, 0), Pt(100, 100)}
	for range b.N {
		ApproxQuadratics(c, 1e-3)
	}
}
