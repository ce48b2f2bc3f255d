package bezier

// DefaultTension is the tension of [BisectorTangents] used by
// [NewBezierSpline].
const DefaultTension = 1.0 / 3.0

// neighbors returns the points before and after points[i], for computing
// tangents. Closed splines wrap around, skipping the duplicated closing
// point. Open splines reflect the second (or second to last) point through
// the endpoint.
func neighbors(points []Point, closed bool, i int) (prev, next Point) {
	last := len(points) - 1
	switch {
	case i > 0:
		prev = points[i-1]
	case closed:
		prev = points[last-1]
	default:
		prev = points[1].Reflect(points[0])
	}
	switch {
	case i < last:
		next = points[i+1]
	case closed:
		next = points[1]
	default:
		next = points[last-1].Reflect(points[last])
	}
	return prev, next
}

// CatmullRomTangents constructs the segments of a uniform Catmull-Rom spline.
//
// The segment from P_i to P_i+1 has control points P_i + (P_i+1 − P_i−1)/6 and
// P_i+1 − (P_i+2 − P_i)/6. The missing neighbors of the endpoints of open
// splines are phantom points obtained by reflection.
type CatmullRomTangents struct{}

func (CatmullRomTangents) Construct(points []Point, closed bool) []CubicBez {
	if len(points) < 2 {
		return nil
	}
	out := make([]CubicBez, len(points)-1)
	for i := range out {
		p1, p2 := points[i], points[i+1]
		p0, _ := neighbors(points, closed, i)
		_, p3 := neighbors(points, closed, i+1)
		out[i] = CubicBez{
			p1,
			p1.Translate(p2.Sub(p0).Mul(1.0 / 6.0)),
			p2.Translate(p3.Sub(p1).Mul(-1.0 / 6.0)),
			p2,
		}
	}
	return out
}

// BisectorTangents constructs spline segments whose tangent at each point
// bisects the angle between the two adjacent chords. Each control arm is
// Tension times the length of its segment's chord.
//
// At the endpoints of open splines, the tangent is the direction of the
// adjacent chord.
type BisectorTangents struct {
	Tension float64
}

func (bt BisectorTangents) Construct(points []Point, closed bool) []CubicBez {
	if len(points) < 2 {
		return nil
	}
	dirs := make([]Vec2, len(points))
	for i := range points {
		dirs[i] = bisector(points, closed, i)
	}
	out := make([]CubicBez, len(points)-1)
	for i := range out {
		p0, p3 := points[i], points[i+1]
		arm := bt.Tension * p0.Distance(p3)
		out[i] = CubicBez{
			p0,
			p0.Translate(dirs[i].Mul(arm)),
			p3.Translate(dirs[i+1].Mul(-arm)),
			p3,
		}
	}
	return out
}

// bisector returns the unit tangent direction at points[i], or the zero vector
// if there is none.
func bisector(points []Point, closed bool, i int) Vec2 {
	last := len(points) - 1
	if !closed && (i == 0 || i == last) {
		if i == 0 {
			return unit(points[1].Sub(points[0]))
		}
		return unit(points[last].Sub(points[last-1]))
	}
	prev, next := neighbors(points, closed, i)
	d := unit(points[i].Sub(prev)).Add(unit(next.Sub(points[i])))
	if d.Hypot2() == 0 {
		// The spline doubles back on itself.
		return unit(next.Sub(prev))
	}
	return unit(d)
}

// unit returns v normalized, or the zero vector if v has no length.
func unit(v Vec2) Vec2 {
	if v.Hypot2() == 0 {
		return Vec2{}
	}
	return v.Normalize()
}
