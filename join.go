package bezier

// Join returns a quadratic Bézier that continues seg to pt.
//
// The new curve starts at seg's end. Its control point is placed on the
// tangent line at seg's end, at half the distance to pt, for a join with
// tangent continuity. Tension, clamped to [0, 1], blends between that point
// (1) and the midpoint of the chord (0), which yields a straight join.
//
// If seg has no defined end tangent, the join is straight.
func Join(seg Segment, pt Point, tension float64) QuadBez {
	tension = min(max(tension, 0), 1)
	start := seg.End()
	mid := start.Midpoint(pt)
	reach := start.Distance(pt) / 2

	var tangent Vec2
	if seg.IsCubic() {
		_, tangent = seg.Cubic().Tangents()
	} else {
		_, tangent = seg.Quad().Tangents()
	}
	if reach == 0 || tangent.Hypot2() == 0 {
		return QuadBez{start, mid, pt}
	}
	along := start.Translate(tangent.Normalize().Mul(reach))
	return QuadBez{start, mid.Lerp(along, tension), pt}
}
