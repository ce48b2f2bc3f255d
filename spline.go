package bezier

import "math"

// TangentStrategy constructs the cubic segments of an interpolating spline.
//
// Construct is given the spline's points, including the closing point of
// closed splines, and returns one cubic per consecutive pair of points. The
// i-th cubic must start at points[i] and end at points[i+1].
type TangentStrategy interface {
	Construct(points []Point, closed bool) []CubicBez
}

// Spline is a curve that interpolates a sequence of points with one cubic
// Bézier segment per pair of consecutive points. How the segments' control
// points are chosen is up to its [TangentStrategy].
//
// Segments are built lazily on the first query after a mutation. The global
// parameter t in [0, 1] is divided evenly among the segments.
//
// The zero value is an empty open spline using [BisectorTangents] with
// [DefaultTension]. A Spline is not safe for concurrent use.
type Spline struct {
	points   []Point
	closed   bool
	strategy TangentStrategy

	state  curveState
	curves []CubicCurve
	// cumulative[i] is the length of the first i segments.
	cumulative []float64
	haveLength bool

	lastS     float64
	lastIndex int
	lastT     float64
	haveLast  bool
}

// NewSpline returns a spline through points whose segments are constructed by
// strategy.
func NewSpline(strategy TangentStrategy, points ...Point) *Spline {
	return &Spline{
		points:   append([]Point(nil), points...),
		strategy: strategy,
	}
}

// NewCatmullRom returns a uniform Catmull-Rom spline through points.
func NewCatmullRom(points ...Point) *Spline {
	return NewSpline(CatmullRomTangents{}, points...)
}

// NewBezierSpline returns a spline through points whose tangents bisect the
// angles between adjacent chords.
func NewBezierSpline(points ...Point) *Spline {
	return NewSpline(BisectorTangents{Tension: DefaultTension}, points...)
}

func (s *Spline) invalidate() {
	s.state = stateInvalid
	s.curves = s.curves[:0]
	s.cumulative = s.cumulative[:0]
	s.haveLength = false
	s.haveLast = false
}

// Strategy returns the spline's tangent strategy.
func (s *Spline) Strategy() TangentStrategy {
	if s.strategy == nil {
		return BisectorTangents{Tension: DefaultTension}
	}
	return s.strategy
}

// SetStrategy replaces the spline's tangent strategy.
func (s *Spline) SetStrategy(strategy TangentStrategy) {
	s.strategy = strategy
	s.invalidate()
}

// AddPoint appends a point to the spline.
func (s *Spline) AddPoint(pt Point) {
	s.points = append(s.points, pt)
	s.invalidate()
}

// SetPoints replaces the spline's points.
func (s *Spline) SetPoints(points []Point) {
	s.points = append(s.points[:0], points...)
	s.invalidate()
}

// SetData replaces the spline's points with (xs[i], ys[i]). Extra elements of
// the longer slice are ignored.
func (s *Spline) SetData(xs, ys []float64) {
	n := min(len(xs), len(ys))
	s.points = s.points[:0]
	for i := range n {
		s.points = append(s.points, Point{xs[i], ys[i]})
	}
	s.invalidate()
}

// Clear removes all points.
func (s *Spline) Clear() {
	s.points = s.points[:0]
	s.invalidate()
}

// SetClosed sets whether the spline returns to its first point. The closing
// point is added automatically if the last point doesn't already coincide
// with the first.
func (s *Spline) SetClosed(closed bool) {
	s.closed = closed
	s.invalidate()
}

func (s *Spline) Closed() bool { return s.closed }

// Points returns a copy of the spline's points. The automatic closing point
// of closed splines is not included.
func (s *Spline) Points() []Point {
	return append([]Point(nil), s.points...)
}

// interpolated returns the points the segments run through.
func (s *Spline) interpolated() []Point {
	pts := s.points
	if s.closed && len(pts) >= 2 && pts[0] != pts[len(pts)-1] {
		pts = append(pts[:len(pts):len(pts)], pts[0])
	}
	return pts
}

func (s *Spline) ensureValid() {
	if s.state == stateValid {
		return
	}
	pts := s.interpolated()
	s.curves = s.curves[:0]
	if len(pts) >= 2 {
		for _, c := range s.Strategy().Construct(pts, s.closed) {
			s.curves = append(s.curves, CubicCurve{bez: c})
		}
	}
	s.state = stateValid
}

// NumSegments returns the number of cubic segments, one less than the number
// of points (counting the closing point).
func (s *Spline) NumSegments() int {
	s.ensureValid()
	return len(s.curves)
}

// Segment returns the i-th segment. ok is false if i is not in
// [0, NumSegments()).
func (s *Spline) Segment(i int) (seg Segment, ok bool) {
	s.ensureValid()
	if i < 0 || i >= len(s.curves) {
		return Segment{}, false
	}
	return s.curves[i].Segment(), true
}

// Segments returns all segments in order.
func (s *Spline) Segments() []CubicBez {
	s.ensureValid()
	out := make([]CubicBez, len(s.curves))
	for i := range s.curves {
		out[i] = s.curves[i].bez
	}
	return out
}

// SegmentAt maps the global parameter t to a segment index and the local
// parameter within that segment. t <= 0 maps to the start of the first segment
// and t >= 1 to the end of the last.
func (s *Spline) SegmentAt(t float64) (int, float64) {
	s.ensureValid()
	return segmentAt(len(s.curves), t)
}

func segmentAt(k int, t float64) (int, float64) {
	if k == 0 || t <= 0 || math.IsNaN(t) {
		return 0, 0
	}
	if t >= 1 {
		return k - 1, 1
	}
	scaled := t * float64(k)
	idx := min(int(math.Floor(scaled)), k-1)
	return idx, scaled - float64(idx)
}

// Eval evaluates the spline at the global parameter t.
func (s *Spline) Eval(t float64) Point {
	s.ensureValid()
	if len(s.curves) == 0 {
		return s.lonePoint()
	}
	i, lt := segmentAt(len(s.curves), t)
	return s.curves[i].Eval(lt)
}

// lonePoint is the value of splines without segments.
func (s *Spline) lonePoint() Point {
	if len(s.points) == 0 {
		return Point{}
	}
	return s.points[0]
}

// Deriv returns the derivative with respect to the global parameter t.
func (s *Spline) Deriv(t float64) Vec2 {
	s.ensureValid()
	k := len(s.curves)
	if k == 0 {
		return Vec2{}
	}
	i, lt := segmentAt(k, t)
	return s.curves[i].Deriv(lt).Mul(float64(k))
}

func (s *Spline) ensureLengths() {
	s.ensureValid()
	if s.haveLength {
		return
	}
	s.cumulative = append(s.cumulative[:0], 0)
	var sum float64
	for i := range s.curves {
		sum += s.curves[i].Arclen()
		s.cumulative = append(s.cumulative, sum)
	}
	s.haveLength = true
}

// Arclen returns the total length of the spline.
func (s *Spline) Arclen() float64 {
	s.ensureLengths()
	return s.cumulative[len(s.cumulative)-1]
}

// ParamAtArclen maps the normalized arc length frac to the segment that contains
// it and the local parameter within that segment.
func (s *Spline) ParamAtArclen(frac float64) (int, float64) {
	s.ensureLengths()
	k := len(s.curves)
	if k == 0 || frac <= 0 || math.IsNaN(frac) {
		return 0, 0
	}
	if frac >= 1 {
		return k - 1, 1
	}
	if s.haveLast && s.lastS == frac {
		return s.lastIndex, s.lastT
	}

	total := s.cumulative[k]
	target := frac * total
	i := 0
	for i < k-1 && s.cumulative[i+1] < target {
		i++
	}
	var t float64
	if segLen := s.cumulative[i+1] - s.cumulative[i]; segLen > 0 {
		t = s.curves[i].ParamAtArclen((target - s.cumulative[i]) / segLen)
	}
	s.lastS, s.lastIndex, s.lastT, s.haveLast = frac, i, t, true
	return i, t
}

// EvalAtArclen evaluates the spline at the normalized arc length frac.
func (s *Spline) EvalAtArclen(frac float64) Point {
	s.ensureValid()
	if len(s.curves) == 0 {
		return s.lonePoint()
	}
	i, t := s.ParamAtArclen(frac)
	return s.curves[i].Eval(t)
}

// BoundingBox returns the smallest rectangle enclosing all segments.
func (s *Spline) BoundingBox() Rect {
	s.ensureValid()
	if len(s.curves) == 0 {
		p := s.lonePoint()
		return Rect{p.X, p.Y, p.X, p.Y}
	}
	bbox := s.curves[0].BoundingBox()
	for i := range s.curves[1:] {
		bbox = bbox.Union(s.curves[i+1].BoundingBox())
	}
	return bbox
}
