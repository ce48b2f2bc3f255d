package bezier

// Subdivide splits seg at t using de Casteljau's algorithm. The first segment
// covers [0, t] of the original and the second covers [t, 1]; both have the
// same order as seg.
//
// It returns false if t is not in the open interval (0, 1).
func Subdivide(seg Segment, t float64) (Segment, Segment, bool) {
	if !(t > 0 && t < 1) {
		return Segment{}, Segment{}, false
	}
	if seg.IsCubic() {
		l, r := seg.Cubic().SplitAt(t)
		return l.Segment(), r.Segment(), true
	}
	l, r := seg.Quad().SplitAt(t)
	return l.Segment(), r.Segment(), true
}
