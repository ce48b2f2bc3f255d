package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"honnef.co/go/bezier"
)

const testScene = `
kind: bezier
closed: true
tension: 0.25
samples: 5
approx: true
probe: {x: 50, y: -20}
points:
  - {x: 0, y: 0}
  - {x: 100, y: 0}
  - {x: 100, y: 100}
`

func TestParseScene(t *testing.T) {
	sc, err := parseScene([]byte(testScene))
	if err != nil {
		t.Fatal(err)
	}
	want := &scene{
		Kind:    kindBezier,
		Closed:  true,
		Tension: 0.25,
		Samples: 5,
		Approx:  true,
		Probe:   &point{50, -20},
		Points:  []point{{0, 0}, {100, 0}, {100, 100}},
		Padding: 10,
	}
	if d := cmp.Diff(want, sc); d != "" {
		t.Error(d)
	}
}

func TestParseSceneErrors(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"kind: hermite\npoints: [{x: 0}, {x: 1}]", `unknown spline kind "hermite"`},
		{"points: [{x: 0}]", "need at least 2 points"},
		{"tension: -1\npoints: [{x: 0}, {x: 1}]", "tension must not be negative"},
		{"samples: -3\npoints: [{x: 0}, {x: 1}]", "samples must not be negative"},
		{"points: {x: 0}", "cannot unmarshal"},
		{"transform: {scale: -2}\npoints: [{x: 0}, {x: 1}]", "scale must not be negative"},
	}
	for _, tt := range tests {
		_, err := parseScene([]byte(tt.in))
		if err == nil || !strings.Contains(err.Error(), tt.want) {
			t.Errorf("%q: got error %v, want %q", tt.in, err, tt.want)
		}
	}
}

func TestSceneSpline(t *testing.T) {
	sc, err := parseScene([]byte(testScene))
	if err != nil {
		t.Fatal(err)
	}
	sp, err := sc.spline()
	if err != nil {
		t.Fatal(err)
	}
	// The closing point is appended.
	if n := sp.NumSegments(); n != 3 {
		t.Errorf("got %d segments, want 3", n)
	}
}

func TestSceneTransform(t *testing.T) {
	sc, err := parseScene([]byte(`
points: [{x: 1, y: 1}, {x: 3, y: 1}]
transform: {rotate: 90, scale: 2, flip_y: true}
`))
	if err != nil {
		t.Fatal(err)
	}
	sp, err := sc.spline()
	if err != nil {
		t.Fatal(err)
	}
	// (3, 1) rotates about (1, 1) to (1, 3), scales to (2, 6) and flips.
	want := []bezier.Point{bezier.Pt(2, -2), bezier.Pt(2, -6)}
	if d := cmp.Diff(want, sp.Points(), cmpopts.EquateApprox(0, 1e-9)); d != "" {
		t.Error(d)
	}
}

func TestRun(t *testing.T) {
	var stdout, stderr bytes.Buffer
	err := run(context.Background(), []string{"-"}, strings.NewReader(testScene), &stdout, &stderr)
	if err != nil {
		t.Fatalf("%v\n%s", err, stderr.String())
	}
	out := stdout.String()
	if !strings.HasPrefix(out, "<svg ") || !strings.HasSuffix(out, "</svg>\n") {
		t.Errorf("output isn't an SVG document:\n%s", out)
	}
	if n := strings.Count(out, "<path "); n != 2 {
		t.Errorf("got %d paths, want 2", n)
	}
	// Five samples and the probe.
	if n := strings.Count(out, "<circle "); n != 6 {
		t.Errorf("got %d circles, want 6", n)
	}
	if n := strings.Count(out, "<line "); n != 1 {
		t.Errorf("got %d lines, want 1", n)
	}
}

func TestRunFlags(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "scene.yaml")
	if err := os.WriteFile(in, []byte("points: [{x: 0, y: 0}, {x: 10, y: 5}]\n"), 0o666); err != nil {
		t.Fatal(err)
	}
	out := filepath.Join(dir, "out.svg")

	var stdout, stderr bytes.Buffer
	err := run(context.Background(), []string{"-o", out, "-n", "3", in}, nil, &stdout, &stderr)
	if err != nil {
		t.Fatalf("%v\n%s", err, stderr.String())
	}
	b, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if n := strings.Count(string(b), "<circle "); n != 3 {
		t.Errorf("got %d circles, want 3", n)
	}
	if stdout.Len() != 0 {
		t.Errorf("unexpected output on stdout: %s", stdout.String())
	}
}

func TestRunUsage(t *testing.T) {
	var stdout, stderr bytes.Buffer
	if err := run(context.Background(), []string{"--help"}, nil, &stdout, &stderr); err != nil {
		t.Errorf("--help failed: %v", err)
	}
	if !strings.Contains(stderr.String(), "usage: bezplot") {
		t.Errorf("missing usage in %q", stderr.String())
	}
	if err := run(context.Background(), nil, nil, &stdout, &stderr); err == nil {
		t.Error("expected an error without a scene")
	}
	err := run(context.Background(), []string{filepath.Join(t.TempDir(), "missing.yaml")}, nil, &stdout, &stderr)
	if err == nil || !strings.Contains(err.Error(), "failed to load scene") {
		t.Errorf("got error %v", err)
	}
}
