package bezier

// Segment is the plain data form of a quadratic or cubic Bézier curve. It is
// used to pass curve geometry between functions without requiring a live
// [Curve].
//
// For quadratic segments (Order 2), CX and CY hold the single control point
// and CX1 and CY1 are ignored. For cubic segments (Order 3), CX, CY and CX1,
// CY1 are the first and second control points.
type Segment struct {
	Order int     `json:"order"`
	X0    float64 `json:"x0"`
	Y0    float64 `json:"y0"`
	CX    float64 `json:"cx"`
	CY    float64 `json:"cy"`
	CX1   float64 `json:"cx1,omitempty"`
	CY1   float64 `json:"cy1,omitempty"`
	X1    float64 `json:"x1"`
	Y1    float64 `json:"y1"`
}

// IsCubic reports whether the segment has two control points.
func (seg Segment) IsCubic() bool {
	return seg.Order == 3
}

func (seg Segment) Start() Point { return Point{seg.X0, seg.Y0} }
func (seg Segment) End() Point   { return Point{seg.X1, seg.Y1} }

// Quad returns the segment as a quadratic Bézier. Cubic segments are
// approximated by the quadratic whose control point minimizes the squared
// error.
func (seg Segment) Quad() QuadBez {
	if seg.IsCubic() {
		c := seg.Cubic()
		return QuadBez{c.P0, c.approxQuadControl(), c.P3}
	}
	return QuadBez{
		Point{seg.X0, seg.Y0},
		Point{seg.CX, seg.CY},
		Point{seg.X1, seg.Y1},
	}
}

// Cubic returns the segment as a cubic Bézier. Quadratic segments are raised
// exactly.
func (seg Segment) Cubic() CubicBez {
	if !seg.IsCubic() {
		return seg.Quad().Raise()
	}
	return CubicBez{
		Point{seg.X0, seg.Y0},
		Point{seg.CX, seg.CY},
		Point{seg.CX1, seg.CY1},
		Point{seg.X1, seg.Y1},
	}
}

// Eval evaluates the segment at t.
func (seg Segment) Eval(t float64) Point {
	if seg.IsCubic() {
		return seg.Cubic().Eval(t)
	}
	return seg.Quad().Eval(t)
}

func (seg Segment) BoundingBox() Rect {
	if seg.IsCubic() {
		return seg.Cubic().BoundingBox()
	}
	return seg.Quad().BoundingBox()
}

// controlPoints returns the segment's control polygon, with Order+1 points.
func (seg Segment) controlPoints() []Point {
	if seg.IsCubic() {
		c := seg.Cubic()
		return []Point{c.P0, c.P1, c.P2, c.P3}
	}
	q := seg.Quad()
	return []Point{q.P0, q.P1, q.P2}
}
