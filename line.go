package bezier

import "math"

// Line represents a line segment.
type Line struct {
	// The line's start point.
	P0 Point
	// The line's end point.
	P1 Point
}

// LineIntersection is an intersection of a [Line] and a curve, as returned by
// the IntersectLine methods.
type LineIntersection struct {
	// The parameter at which the intersection occurs on the line.
	//
	// This value is in the range 0..1.
	LineT float64
	// The parameter at which the intersection occurs on the curve.
	//
	// This value is nominally in the range 0..1, although it may slightly
	// exceed that range at the boundaries.
	SegmentT float64
}

func (li LineIntersection) IsNaN() bool {
	return math.IsNaN(li.LineT) || math.IsNaN(li.SegmentT)
}

// Length returns the length of the line.
func (l Line) Length() float64 {
	return l.P1.Sub(l.P0).Hypot()
}

// CrossingPoint computes the point where two lines, if extended to infinity,
// would cross.
func (l Line) CrossingPoint(o Line) (Point, bool) {
	ab := l.P1.Sub(l.P0)
	cd := o.P1.Sub(o.P0)
	pcd := ab.Cross(cd)
	if pcd == 0 {
		return Point{}, false
	}
	h := ab.Cross(l.P0.Sub(o.P0)) / pcd
	return o.P0.Translate(cd.Mul(h)), true
}

func (l Line) IsNaN() bool {
	return l.P0.IsNaN() || l.P1.IsNaN()
}

func (l Line) BoundingBox() Rect {
	return NewRectFromPoints(l.P0, l.P1)
}

func (l Line) Eval(t float64) Point {
	return l.P0.Lerp(l.P1, t)
}

// Nearest returns the squared distance from pt to the closest point on the
// line, and that point's parameter.
func (l Line) Nearest(pt Point) (distSq, t float64) {
	d := l.P1.Sub(l.P0)
	dotp := d.Dot(pt.Sub(l.P0))
	dSquared := d.Dot(d)
	if dotp <= 0.0 {
		return pt.Sub(l.P0).Hypot2(), 0.0
	} else if dotp >= dSquared {
		return pt.Sub(l.P1).Hypot2(), 1.0
	} else {
		t := dotp / dSquared
		dist := pt.Sub(l.Eval(t)).Hypot2()
		return dist, t
	}
}

func (l Line) Start() Point { return l.P0 }
func (l Line) End() Point   { return l.P1 }

func (l Line) IntersectLine(o Line) ([3]LineIntersection, int) {
	const epsilon = 1e-9
	p0 := o.P0
	p1 := o.P1
	dx := p1.X - p0.X
	dy := p1.Y - p0.Y

	det := dx*(l.P1.Y-l.P0.Y) - dy*(l.P1.X-l.P0.X)
	if math.Abs(det) < epsilon {
		// Lines are coincident (or nearly so).
		return [3]LineIntersection{}, 0
	}
	t := dx*(p0.Y-l.P0.Y) - dy*(p0.X-l.P0.X)
	// t = position on self
	t /= det
	if t >= -epsilon && t <= 1+epsilon {
		// u = position on probe line
		u :=
			(l.P0.X-p0.X)*(l.P1.Y-l.P0.Y) - (l.P0.Y-p0.Y)*(l.P1.X-l.P0.X)
		u /= det
		if u >= 0.0 && u <= 1.0 {
			return [3]LineIntersection{{u, t}}, 1
		}
	}
	return [3]LineIntersection{}, 0
}
