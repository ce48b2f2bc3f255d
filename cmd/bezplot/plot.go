package main

import (
	"fmt"
	"io"
	"math"

	"oss.terrastruct.com/xdefer"

	"honnef.co/go/bezier"
)

type plot struct {
	spline    *bezier.Spline
	scene     *scene
	tolerance float64
	svg       bezier.SVGOptions
}

// closest returns the point of the spline closest to pt.
func (p *plot) closest(pt bezier.Point) bezier.Point {
	best := p.spline.Eval(0)
	bestDist := math.Inf(1)
	for _, c := range p.spline.Segments() {
		_, q := bezier.ClosestPoint(c.Segment(), pt)
		if d := q.DistanceSquared(pt); d < bestDist {
			best, bestDist = q, d
		}
	}
	return best
}

func (p *plot) render(w io.Writer) (err error) {
	defer xdefer.Errorf(&err, "failed to render SVG")

	segs := make([]bezier.Segment, 0, p.spline.NumSegments())
	for _, c := range p.spline.Segments() {
		segs = append(segs, c.Segment())
	}

	bbox := p.spline.BoundingBox()
	if p.scene.Probe != nil {
		bbox = bbox.UnionPoint(p.scene.Probe.pt())
	}
	bbox = bbox.Inflate(p.scene.Padding, p.scene.Padding)
	stroke := max(bbox.Width(), bbox.Height()) / 400

	_, err = fmt.Fprintf(w,
		`<svg xmlns="http://www.w3.org/2000/svg" viewBox="%g %g %g %g">`+"\n",
		bbox.X0, bbox.Y0, bbox.Width(), bbox.Height())
	if err != nil {
		return err
	}

	if err := p.path(w, segs, "black", stroke); err != nil {
		return err
	}

	if p.scene.Approx {
		var quads []bezier.Segment
		for _, c := range p.spline.Segments() {
			quads = append(quads, bezier.ApproxQuadratics(c, p.tolerance)...)
		}
		if err := p.path(w, quads, "tomato", stroke/2); err != nil {
			return err
		}
	}

	if n := p.scene.Samples; n > 0 {
		for i := range n {
			var s float64
			if n > 1 {
				s = float64(i) / float64(n-1)
			}
			if err := circle(w, p.spline.EvalAtArclen(s), 2*stroke, "steelblue"); err != nil {
				return err
			}
		}
	}

	if p.scene.Probe != nil {
		probe := p.scene.Probe.pt()
		q := p.closest(probe)
		_, err = fmt.Fprintf(w,
			`<line x1="%g" y1="%g" x2="%g" y2="%g" stroke="seagreen" stroke-width="%g"/>`+"\n",
			probe.X, probe.Y, q.X, q.Y, stroke)
		if err != nil {
			return err
		}
		if err := circle(w, probe, 2*stroke, "seagreen"); err != nil {
			return err
		}
	}

	_, err = io.WriteString(w, "</svg>\n")
	return err
}

func (p *plot) path(w io.Writer, segs []bezier.Segment, color string, width float64) error {
	if _, err := io.WriteString(w, `<path d="`); err != nil {
		return err
	}
	if err := bezier.WriteSVG(w, segs, p.svg); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, `" fill="none" stroke="%s" stroke-width="%g"/>`+"\n", color, width)
	return err
}

func circle(w io.Writer, pt bezier.Point, r float64, color string) error {
	_, err := fmt.Fprintf(w, `<circle cx="%g" cy="%g" r="%g" fill="%s"/>`+"\n", pt.X, pt.Y, r, color)
	return err
}
