// Command bezplot renders an interpolating spline described by a YAML scene
// file to SVG.
//
// Besides the spline itself, it can mark points spaced evenly by arc length,
// overlay the quadratic approximation of every segment, and show the point of
// the spline closest to a probe point.
package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"cdr.dev/slog"
	"cdr.dev/slog/sloggers/sloghuman"
	"github.com/spf13/pflag"
	"oss.terrastruct.com/xdefer"

	"honnef.co/go/bezier"
)

func main() {
	err := run(context.Background(), os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "bezplot: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) (err error) {
	flags := pflag.NewFlagSet("bezplot", pflag.ContinueOnError)
	flags.SetOutput(stderr)
	outFlag := flags.StringP("out", "o", "-", "file to write the SVG to, - for stdout")
	samplesFlag := flags.IntP("samples", "n", -1, "number of points to mark evenly by arc length, overrides the scene")
	approxFlag := flags.BoolP("approx", "a", false, "overlay the quadratic approximation of each segment")
	toleranceFlag := flags.Float64("tolerance", bezier.DefaultFitTolerance, "relative arc length error allowed by --approx")
	precisionFlag := flags.Int("precision", 3, "maximum number of decimals in coordinates, 0 for exact")
	debugFlag := flags.BoolP("debug", "d", false, "print debug logs")
	flags.Usage = func() {
		fmt.Fprintf(stderr, "usage: bezplot [flags] <scene.yaml | ->\n\n")
		flags.PrintDefaults()
	}

	err = flags.Parse(args)
	if errors.Is(err, pflag.ErrHelp) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to parse flags: %w", err)
	}
	if flags.NArg() != 1 {
		flags.Usage()
		return errors.New("expected exactly one scene file")
	}

	l := slog.Make(sloghuman.Sink(stderr))
	if *debugFlag {
		l = l.Leveled(slog.LevelDebug)
	}

	sc, err := loadScene(flags.Arg(0), stdin)
	if err != nil {
		return err
	}
	if *samplesFlag >= 0 {
		sc.Samples = *samplesFlag
	}
	if *approxFlag {
		sc.Approx = true
	}
	l.Debug(ctx, "loaded scene",
		slog.F("kind", sc.Kind),
		slog.F("points", len(sc.Points)),
		slog.F("closed", sc.Closed),
	)

	sp, err := sc.spline()
	if err != nil {
		return err
	}
	l.Debug(ctx, "built spline",
		slog.F("segments", sp.NumSegments()),
		slog.F("length", sp.Arclen()),
	)

	p := plot{
		spline:    sp,
		scene:     sc,
		tolerance: *toleranceFlag,
		svg:       bezier.SVGOptions{MaxPrecision: *precisionFlag},
	}
	if err := writeOutput(*outFlag, stdout, p.render); err != nil {
		return err
	}
	l.Info(ctx, "wrote plot", slog.F("out", *outFlag))
	return nil
}

// writeOutput calls render with a writer for the file at path, or stdout if
// path is -.
func writeOutput(path string, stdout io.Writer, render func(io.Writer) error) (err error) {
	defer xdefer.Errorf(&err, "failed to write %q", path)

	if path == "-" {
		bw := bufio.NewWriter(stdout)
		if err := render(bw); err != nil {
			return err
		}
		return bw.Flush()
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	bw := bufio.NewWriter(f)
	if err := render(bw); err != nil {
		return err
	}
	if err := bw.Flush(); err != nil {
		return err
	}
	return f.Close()
}
