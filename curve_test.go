package bezier

import (
	"fmt"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp/cmpopts"
)

var testCurves = []Segment{
	QuadBez{Pt(0, 0), Pt(1, 2), Pt(2, 0)}.Segment(),
	QuadBez{Pt(3.1, 4.1), Pt(5.9, 2.6), Pt(5.3, 5.8)}.Segment(),
	CubicBez{Pt(0, 0), Pt(0, 1), Pt(1, 1), Pt(1, 0)}.Segment(),
	CubicBez{Pt(0.2, 0.73), Pt(0.35, 1.08), Pt(0.85, 1.08), Pt(1.0, 0.73)}.Segment(),
	CubicBez{Pt(0, 0), Pt(100.0/3.0, 0), Pt(200.0/3.0, 100.0/3.0), Pt(100, 100)}.Segment(),
	CubicBez{Pt(0.4, 0.5), Pt(0.0, 1.0), Pt(1.0, 0.0), Pt(0.5, 0.4)}.Segment(),
}

func TestCurveRoundTrip(t *testing.T) {
	for _, seg := range testCurves {
		c := NewCurve(seg)
		diff(t, seg, c.Segment())

		c2 := NewCurve(c.Segment())
		for _, ts := range []float64{0, 0.25, 0.5, 0.75, 1} {
			assertNear(t, c2.Eval(ts), c.Eval(ts), 1e-9)
		}
	}
}

func TestCurveOrder(t *testing.T) {
	for _, seg := range testCurves {
		if got := NewCurve(seg).Order(); got != seg.Order {
			t.Errorf("got order %d, want %d", got, seg.Order)
		}
	}
}

func TestCurveEndpoints(t *testing.T) {
	for _, seg := range testCurves {
		c := NewCurve(seg)
		if got := c.Eval(0); got != seg.Start() {
			t.Errorf("got start %v, want %v", got, seg.Start())
		}
		if got := c.Eval(1); got != seg.End() {
			t.Errorf("got end %v, want %v", got, seg.End())
		}
	}
}

func TestCurveEvalMatchesBez(t *testing.T) {
	for _, seg := range testCurves {
		c := NewCurve(seg)
		// Evaluation outside of [0, 1] extrapolates.
		for _, ts := range []float64{-0.5, 0.1, 0.3, 0.9, 1.5} {
			assertNear(t, c.Eval(ts), seg.Eval(ts), 1e-9)
		}
	}
}

func TestCurveDeriv(t *testing.T) {
	for _, seg := range testCurves {
		c := NewCurve(seg)
		const delta = 1e-6
		for i := range 11 {
			ts := float64(i) / 10
			dApprox := c.Eval(ts + delta).Sub(c.Eval(ts - delta)).Mul(0.5 / delta)
			if l := c.Deriv(ts).Sub(dApprox).Hypot(); l > 1e-5 {
				t.Errorf("%v: got difference of %g at t=%v", seg, l, ts)
			}
		}
	}
}

func TestCurveArclenMonotonic(t *testing.T) {
	for _, seg := range testCurves {
		c := NewCurve(seg)
		if got := c.ArclenAt(0); got != 0 {
			t.Errorf("got length %v at t=0", got)
		}
		if got := c.ArclenAt(-1); got != 0 {
			t.Errorf("got length %v at t=-1", got)
		}
		prev := 0.0
		for i := range 101 {
			l := c.ArclenAt(float64(i) / 100)
			if l < prev {
				t.Errorf("%v: length decreases from %v to %v at t=%v", seg, prev, l, float64(i)/100)
			}
			prev = l
		}
		if got, want := c.ArclenAt(2), c.ArclenAt(1); got != want {
			t.Errorf("got length %v at t=2, want %v", got, want)
		}
	}
}

func TestCubicCurveArclenBounds(t *testing.T) {
	c := NewCubicCurve(Pt(0, 0), Pt(0, 1), Pt(1, 1), Pt(1, 0))
	l := c.Arclen()
	if !(l > math.Sqrt2 && l < 3) {
		t.Errorf("got length %v, want between √2 and 3", l)
	}
}

func TestCurveParamAtArclen(t *testing.T) {
	for i, seg := range testCurves {
		c := NewCurve(seg)
		total := c.Arclen()
		span := c.ArclenAt(1)
		// testCurves[5] has a near-cusp, where ArclenAt(1) and Arclen
		// disagree by more than the tolerance below.
		smooth := i != 5
		check := func(s float64) {
			t.Helper()
			ts := c.ParamAtArclen(s)
			if ts < 0 || ts > 1 {
				t.Fatalf("%v: got t=%v for s=%v", seg, ts, s)
			}
			if got := c.ArclenAt(ts) / span; math.Abs(got-s) > 1e-6 {
				t.Errorf("%v: s=%v maps to t=%v with s=%v", seg, s, ts, got)
			}
			if !smooth {
				return
			}
			if got := c.ArclenAt(ts) / total; math.Abs(got-s) > 1e-3 {
				t.Errorf("%v: s=%v maps to t=%v, %v of the total length", seg, s, ts, got)
			}
		}
		// Ascending, then descending, then jumping around, so that every
		// branch of the bracket seeding is taken.
		for i := range 11 {
			check(float64(i) / 10)
		}
		for i := range 11 {
			check(1 - float64(i)/10)
		}
		for _, s := range []float64{0.37, 0.91, 0.05, 0.5, 0.5, 0.49999} {
			check(s)
		}
	}
}

func TestCurveParamAtArclenNearCusp(t *testing.T) {
	c := NewCurve(testCurves[5])
	span := c.ArclenAt(1)
	if d := math.Abs(span-c.Arclen()) / c.Arclen(); d > 0.1 {
		t.Errorf("ArclenAt(1) and Arclen differ by %v", d)
	}
	// The inverse is normalized by ArclenAt(1), so it is exact at the end
	// and monotonic in between.
	diff(t, 1.0, c.ParamAtArclen(1))
	prev := 0.0
	for i := 1; i <= 20; i++ {
		s := float64(i) / 20
		ts := c.ParamAtArclen(s)
		if ts < prev {
			t.Errorf("s=%v maps to t=%v, before t=%v", s, ts, prev)
		}
		prev = ts
		diff(t, s*span, c.ArclenAt(ts), cmpopts.EquateApprox(0, 1e-6*span))
	}
}

func TestCurveParamAtArclenBounds(t *testing.T) {
	c := NewCubicCurve(Pt(0, 0), Pt(0, 1), Pt(1, 1), Pt(1, 0))
	diff(t, 0.0, c.ParamAtArclen(-1))
	diff(t, 0.0, c.ParamAtArclen(0))
	diff(t, 1.0, c.ParamAtArclen(1))
	diff(t, 1.0, c.ParamAtArclen(2))

	// Zero length curves map s to itself.
	var z CubicCurve
	diff(t, 0.25, z.ParamAtArclen(0.25))
}

func TestCurveLazyInvalidation(t *testing.T) {
	c := new(CubicCurve)
	if c.state != stateInvalid {
		t.Fatal("new curve has valid coefficients")
	}
	diff(t, 0.0, c.Arclen())
	if c.state != stateValid {
		t.Fatal("querying the curve didn't compute coefficients")
	}

	c.SetP3(Pt(3, 4))
	if c.state != stateInvalid {
		t.Fatal("setter didn't invalidate coefficients")
	}
	diff(t, 5.0, c.Arclen(), cmpopts.EquateApprox(0, 1e-12))
	assertNear(t, c.Eval(0.5), Pt(0.375, 0.5), 1e-12)

	c.SetP1(Pt(1, 0))
	c.SetP2(Pt(2, 0))
	c.SetP3(Pt(3, 0))
	diff(t, 3.0, c.Arclen(), cmpopts.EquateApprox(0, 1e-12))
	assertNear(t, c.Eval(0.5), Pt(1.5, 0), 1e-12)

	c.Clear()
	diff(t, 0.0, c.Arclen())

	q := NewQuadCurve(Pt(0, 0), Pt(1, 0), Pt(2, 0))
	diff(t, 2.0, q.Arclen(), cmpopts.EquateApprox(0, 1e-12))
	q.SetP2(Pt(4, 0))
	diff(t, 4.0, q.Arclen(), cmpopts.EquateApprox(0, 1e-12))
}

func TestQuadCurveSolveForX(t *testing.T) {
	c := NewQuadCurve(Pt(0, 0), Pt(1, 2), Pt(2, 0))
	ts, n := c.SolveForX(1)
	diff(t, []float64{0.5}, ts[:n])
	diff(t, Pt(1, 1), c.Eval(0.5))

	ts, n = c.SolveForY(0.75)
	diff(t, []float64{0.25, 0.75}, ts[:n], cmpopts.EquateApprox(0, 1e-12))

	// Apex
	ts, n = c.SolveForY(1)
	diff(t, []float64{0.5}, ts[:n], cmpopts.EquateApprox(0, 1e-12))

	ts, n = c.SolveForY(2)
	diff(t, []float64{}, ts[:n])
	ts, n = c.SolveForX(-1)
	diff(t, []float64{}, ts[:n])
}

func TestCubicCurveSolveForX(t *testing.T) {
	// x doubles back, crossing 0.5 three times.
	c := NewCubicCurve(Pt(0, 0), Pt(2, 1), Pt(-1, 2), Pt(1, 3))
	ts, n := c.SolveForX(0.5)
	if n != 3 {
		t.Fatalf("got %d roots %v, want 3", n, ts[:n])
	}
	for i, tt := range ts[:n] {
		if x := c.Eval(tt).X; math.Abs(x-0.5) > 1e-12 {
			t.Errorf("root %v evaluates to x=%v", tt, x)
		}
		if i > 0 && tt <= ts[i-1] {
			t.Errorf("roots not ascending: %v", ts[:n])
		}
	}
	diff(t, 0.5, ts[1], cmpopts.EquateApprox(0, 1e-9))

	// y is monotonic.
	ts, n = c.SolveForY(1.5)
	diff(t, []float64{0.5}, ts[:n], cmpopts.EquateApprox(0, 1e-9))

	ts, n = c.SolveForX(5)
	diff(t, []float64{}, ts[:n])

	// Endpoints
	ts, n = c.SolveForY(0)
	diff(t, []float64{0}, ts[:n], cmpopts.EquateApprox(0, 1e-9))
	ts, n = c.SolveForY(3)
	diff(t, []float64{1}, ts[:n], cmpopts.EquateApprox(0, 1e-9))
}

func TestCubicCurveSolveForXDegenerate(t *testing.T) {
	// A raised quadratic has no cubic term.
	c := new(CubicCurve)
	c.SetSegment(QuadBez{Pt(0, 0), Pt(1, 2), Pt(2, 0)}.Segment())
	ts, n := c.SolveForX(1)
	diff(t, []float64{0.5}, ts[:n], cmpopts.EquateApprox(0, 1e-12))
}

func TestCubicCurveSolveForXNearDegenerate(t *testing.T) {
	// x peaks inside the curve, y is monotonic.
	peak := NewCubicCurve(Pt(0, 0), Pt(1, 1), Pt(1.2, 2), Pt(0.1, 3))
	ex, n := peak.Bez().Extrema()
	if n == 0 {
		t.Fatal("expected an extremum")
	}
	tPeak := ex[0]
	for _, e := range ex[1:n] {
		if peak.Eval(e).X > peak.Eval(tPeak).X {
			tPeak = e
		}
	}
	maxX := peak.Eval(tPeak).X

	// x is nearly constant, deviating by less than 3e-8 from 1.
	vertical := NewCubicCurve(Pt(1, 0), Pt(1+1e-7, 1), Pt(1-1e-7, 2), Pt(1, 3))

	tests := []struct {
		name  string
		c     *CubicCurve
		x     float64
		n     int
		want  []float64
		slack float64
	}{
		{"touch", peak, maxX, 1, []float64{tPeak}, 1e-6},
		{"just inside", peak, maxX - 1e-9, 2, nil, 0},
		{"just outside", peak, maxX + 1e-6, 0, nil, 0},
		{"below", peak, -1, 0, nil, 0},
		{"vertical", vertical, 1, 3, []float64{0, 0.5, 1}, 1e-6},
		{"beside vertical", vertical, 1 + 1e-6, 0, nil, 0},
	}
	for _, tt := range tests {
		ts, n := tt.c.SolveForX(tt.x)
		if n != tt.n {
			t.Errorf("%s: got %d roots %v, want %d", tt.name, n, ts[:n], tt.n)
			continue
		}
		if tt.want != nil {
			diff(t, tt.want, ts[:n], cmpopts.EquateApprox(0, tt.slack))
		}
		for i, r := range ts[:n] {
			if x := tt.c.Eval(r).X; math.Abs(x-tt.x) > 1e-9 {
				t.Errorf("%s: root %v evaluates to x=%v, want %v", tt.name, r, x, tt.x)
			}
			if i > 0 && r <= ts[i-1] {
				t.Errorf("%s: roots not ascending: %v", tt.name, ts[:n])
			}
		}
	}

	// The quadratic solver finds the apex as well.
	q := NewQuadCurve(Pt(0, 0), Pt(1, 1), Pt(0, 2))
	ts, n := q.SolveForX(0.5)
	diff(t, []float64{0.5}, ts[:n], cmpopts.EquateApprox(0, 1e-9))
}

func TestRefineBracketResidual(t *testing.T) {
	step := func(h float64) func(float64) float64 {
		return func(t float64) float64 {
			if t < 0.5 {
				return -h
			}
			return h
		}
	}
	// A jump across zero larger than the accepted residual isn't a root.
	if r, ok := refineBracket(step(1), 0, 1); ok {
		t.Errorf("accepted jump as root at %v", r)
	}
	r, ok := refineBracket(step(isolatedRootResidual/2), 0, 1)
	if !ok {
		t.Fatal("rejected jump within the accepted residual")
	}
	if math.Abs(r-0.5) > 1e-6 {
		t.Errorf("got root %v, want 0.5", r)
	}

	r, ok = refineBracket(func(t float64) float64 { return t*t - 0.25 }, 0, 1)
	if !ok || math.Abs(r-0.5) > 1e-9 {
		t.Errorf("got (%v, %v), want (0.5, true)", r, ok)
	}
}

func TestCurveIntersectLine(t *testing.T) {
	q := NewCurve(QuadBez{Pt(0.0, -10.0), Pt(10.0, 20.0), Pt(20.0, -10.0)}.Segment())
	xs, n := q.IntersectLine(Line{Pt(10.0, -10.0), Pt(10.0, 10.0)})
	diff(t, []LineIntersection{{0.75, 0.5}}, xs[:n], cmpopts.EquateApprox(0, 1e-6))
}

func BenchmarkCurveParamAtArclen(b *testing.B) {
	for _, seg := range testCurves[:3] {
		b.Run(fmt.Sprintf("order%d", seg.Order), func(b *testing.B) {
			c := NewCurve(seg)
			for i := range b.N {
				c.ParamAtArclen(float64(i%100) / 100)
			}
		})
	}
}
