package bezier

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// SVGOptions specifies optional settings for [SVG] and [WriteSVG].
type SVGOptions struct {
	// The maximum precision with which to format coordinates. A value of 0
	// chooses the highest precision necessary to unambiguously represent any
	// given coordinate.
	MaxPrecision int
}

// SVG converts a sequence of segments to a string of SVG path commands.
//
// See [WriteSVG] for a version that writes to an [io.Writer] instead of
// returning a string.
func SVG(segs []Segment, opts SVGOptions) string {
	sb := &strings.Builder{}
	WriteSVG(sb, segs, opts)
	return sb.String()
}

// WriteSVG converts a sequence of segments to SVG path commands and writes
// them to w. A move command is emitted for the first segment and for every
// segment that doesn't start where the previous one ended.
//
// See [SVG] for a version that returns a string instead.
//
// Coordinates are absolute. [SVGOptions.MaxPrecision] limits the number of
// decimals, and trailing zeros are trimmed.
func WriteSVG(w io.Writer, segs []Segment, opts SVGOptions) error {
	space := []byte(" ")
	var err error
	write := func(s []byte) {
		if err != nil {
			return
		}
		_, err = w.Write(s)
	}
	writef := func(s string, v ...any) {
		if err != nil {
			return
		}
		_, err = fmt.Fprintf(w, s, v...)
	}
	format := func(n float64) string {
		maxPrec := opts.MaxPrecision
		if maxPrec <= 0 {
			return strconv.FormatFloat(n, 'f', -1, 64)
		} else {
			s := strconv.FormatFloat(n, 'f', maxPrec, 64)
			s = strings.TrimRight(s, "0")
			return strings.TrimSuffix(s, ".")
		}
	}
	var last Point
	for i, seg := range segs {
		if err != nil {
			return err
		}
		if i > 0 {
			write(space)
		}
		if i == 0 || seg.Start() != last {
			writef("M%s,%s ", format(seg.X0), format(seg.Y0))
		}
		if seg.IsCubic() {
			writef("C%s,%s %s,%s %s,%s",
				format(seg.CX), format(seg.CY),
				format(seg.CX1), format(seg.CY1),
				format(seg.X1), format(seg.Y1))
		} else {
			writef("Q%s,%s %s,%s",
				format(seg.CX), format(seg.CY),
				format(seg.X1), format(seg.Y1))
		}
		last = seg.End()
	}
	return err
}
