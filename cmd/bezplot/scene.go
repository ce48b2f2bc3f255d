package main

import (
	"fmt"
	"io"
	"math"
	"os"

	"gopkg.in/yaml.v3"
	"oss.terrastruct.com/xdefer"

	"honnef.co/go/bezier"
)

const (
	kindCatmullRom = "catmull-rom"
	kindBezier     = "bezier"
)

type point struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

func (p point) pt() bezier.Point { return bezier.Pt(p.X, p.Y) }

// scene describes what to plot.
type scene struct {
	// Kind is catmull-rom or bezier. It defaults to catmull-rom.
	Kind   string  `yaml:"kind"`
	Closed bool    `yaml:"closed"`
	Points []point `yaml:"points"`
	// Tension of bezier splines. Zero selects the default.
	Tension float64 `yaml:"tension"`
	// Samples is the number of points to mark evenly spaced by arc length.
	Samples int  `yaml:"samples"`
	Approx  bool `yaml:"approx"`
	// Probe, if set, is a point whose closest point on the spline is marked.
	Probe *point `yaml:"probe"`
	// Padding around the spline's bounding box.
	Padding float64 `yaml:"padding"`
	// Transform is applied to the points before plotting. The probe is in
	// plot coordinates and isn't transformed.
	Transform *transform `yaml:"transform"`
}

type transform struct {
	// Rotate is a rotation in degrees about the first point.
	Rotate float64 `yaml:"rotate"`
	// Scale is a uniform scale factor. Zero means 1.
	Scale float64 `yaml:"scale"`
	// FlipY turns y-up input into the y-down space of SVG.
	FlipY bool `yaml:"flip_y"`
}

func (tr *transform) affine(origin bezier.Point) bezier.Affine {
	aff := bezier.RotateAbout(tr.Rotate*math.Pi/180, origin)
	if tr.Scale != 0 {
		aff = aff.Then(bezier.Scale(tr.Scale, tr.Scale))
	}
	if tr.FlipY {
		aff = aff.Then(bezier.FlipY)
	}
	return aff
}

// loadScene reads a scene from path, or from stdin if path is -.
func loadScene(path string, stdin io.Reader) (_ *scene, err error) {
	defer xdefer.Errorf(&err, "failed to load scene %q", path)

	var b []byte
	if path == "-" {
		b, err = io.ReadAll(stdin)
	} else {
		b, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, err
	}
	return parseScene(b)
}

func parseScene(b []byte) (*scene, error) {
	sc := &scene{
		Kind:    kindCatmullRom,
		Padding: 10,
	}
	if err := yaml.Unmarshal(b, sc); err != nil {
		return nil, err
	}
	switch sc.Kind {
	case kindCatmullRom, kindBezier:
	default:
		return nil, fmt.Errorf("unknown spline kind %q", sc.Kind)
	}
	if len(sc.Points) < 2 {
		return nil, fmt.Errorf("need at least 2 points, got %d", len(sc.Points))
	}
	if sc.Tension < 0 {
		return nil, fmt.Errorf("tension must not be negative, got %v", sc.Tension)
	}
	if sc.Samples < 0 {
		return nil, fmt.Errorf("samples must not be negative, got %d", sc.Samples)
	}
	if tr := sc.Transform; tr != nil && tr.Scale < 0 {
		return nil, fmt.Errorf("scale must not be negative, got %v", tr.Scale)
	}
	return sc, nil
}

func (sc *scene) spline() (_ *bezier.Spline, err error) {
	defer xdefer.Errorf(&err, "failed to build %s spline", sc.Kind)

	pts := make([]bezier.Point, len(sc.Points))
	for i, p := range sc.Points {
		pts[i] = p.pt()
		if pts[i].IsNaN() || pts[i].IsInf() {
			return nil, fmt.Errorf("point %d is not finite", i)
		}
	}
	var sp *bezier.Spline
	switch sc.Kind {
	case kindBezier:
		tension := sc.Tension
		if tension == 0 {
			tension = bezier.DefaultTension
		}
		sp = bezier.NewSpline(bezier.BisectorTangents{Tension: tension}, pts...)
	default:
		sp = bezier.NewCatmullRom(pts...)
	}
	sp.SetClosed(sc.Closed)
	if sc.Transform != nil {
		sp.Transform(sc.Transform.affine(pts[0]))
	}
	return sp, nil
}
