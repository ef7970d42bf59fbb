// roadgen builds and previews the virtual road laid under a recorded AR
// camera path.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/sqweek/dialog"
	"go.uber.org/zap"

	"github.com/Faultbox/ar-road/internal/config"
	"github.com/Faultbox/ar-road/internal/logger"
	"github.com/Faultbox/ar-road/internal/pose"
	"github.com/Faultbox/ar-road/internal/report"
	"github.com/Faultbox/ar-road/internal/viewer"
	"github.com/Faultbox/ar-road/pkg/trajectory"
)

func main() {
	if len(os.Args) < 2 {
		printUsage(os.Stderr)
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	var err error
	switch command {
	case "build":
		err = cmdBuild(args, os.Stdout)
	case "curvature", "curv":
		err = cmdCurvature(args, os.Stdout)
	case "plot":
		err = cmdPlot(args, os.Stdout)
	case "view":
		err = cmdView(args)
	case "config":
		err = cmdConfig(args, os.Stdout)
	case "help", "-h", "--help":
		printUsage(os.Stdout)
		return
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage(os.Stderr)
		os.Exit(1)
	}

	logger.Sync()
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, `roadgen - virtual road builder for recorded AR camera paths

Usage:
  roadgen <command> [options] [pfcamera.xml]

Commands:
  build       Build the road mesh and print a summary
  curvature   Print the signed curvature along the path
  plot        Chart the curvature and the road seen from above
  view        Open the interactive preview (asks for a file when none is given)
  config      Print the effective configuration, or save it with -write

Common options:
  -config <file>        Config file (default ./roadgen.yaml)
  -pose <file>          Pose recording (or pass it as the last argument)
  -left-handed          Put the default road width on the right of the path
  -margin <m>           Extra width on both sides
  -camera-height <m>    Camera height above the ground
  -debug                Debug logging

Preview controls:
  Space play/pause   Left/Right step   F follow   R reset view
  Tab wireframe      F12 screenshot    Right click jump to frame
  Left drag orbit    Wheel zoom        WASD/QE move

Examples:
  roadgen build capture/pfcamera.xml
  roadgen curvature -every 30 capture/pfcamera.xml
  roadgen plot -out charts -format svg capture/pfcamera.xml
  roadgen view -left-handed -margin 1 capture/pfcamera.xml
  roadgen config -margin 1.5 -write default`)
}

// session is the loaded config and the geometry built from it.
type session struct {
	cfg       *config.Config
	recording *pose.Recording
	geometry  *trajectory.PathGeometry
	log       *zap.Logger
}

// open parses the common flags, loads config and the pose recording, and
// builds the path geometry. Extra flags are registered by register. With
// browse set, a missing pose file is asked for with a file dialog.
func open(name string, args []string, browse bool, register func(fs *flag.FlagSet)) (*session, error) {
	var flags config.Flags
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	flags.Register(fs)
	if register != nil {
		register(fs)
	}
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		flags.Pose = fs.Arg(0)
	}

	cfg, err := config.Load(&flags)
	if err != nil {
		return nil, err
	}
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		return nil, err
	}
	log := logger.Named(name)

	if cfg.Input.PoseFile == "" && browse {
		if cfg.Input.PoseFile, err = browsePoseFile(); err != nil {
			return nil, err
		}
	}
	if cfg.Input.PoseFile == "" {
		return nil, errors.New("no pose recording given")
	}
	rec, err := pose.Load(cfg.Input.PoseFile, pose.Options{
		ReverseZ: cfg.Input.ReverseZ,
		Logger:   logger.Named("pose"),
	})
	if err != nil {
		return nil, err
	}

	geom, err := trajectory.Build(rec.Positions, rec.Eulers, cfg.GeometryConfig(),
		trajectory.WithLogger(logger.Named("trajectory")))
	if err != nil {
		return nil, fmt.Errorf("building path geometry: %w", err)
	}

	log.Debug("session opened",
		zap.String("pose_file", cfg.Input.PoseFile),
		zap.Int("frames", rec.Len()),
	)
	return &session{cfg: cfg, recording: rec, geometry: geom, log: log}, nil
}

func browsePoseFile() (string, error) {
	path, err := dialog.File().
		Filter("Pose recordings", "xml").
		Filter("All Files", "*").
		Title("Open pose recording").
		Load()
	if errors.Is(err, dialog.ErrCancelled) {
		return "", nil
	}
	return path, err
}

func cmdBuild(args []string, out io.Writer) error {
	var segment int
	s, err := open("build", args, false, func(fs *flag.FlagSet) {
		fs.IntVar(&segment, "segment", 0, "Segment number used in the mesh name")
	})
	if err != nil {
		return err
	}

	opts := s.cfg.RibbonOptions()
	opts.Segment = segment
	mesh, err := s.geometry.BuildRibbon(opts)
	if err != nil {
		return err
	}

	g := s.geometry
	left, right := g.SideOffsets(0)
	fmt.Fprintf(out, "Mesh:      %s\n", mesh.Name)
	fmt.Fprintf(out, "Frames:    %d\n", g.FrameCount())
	fmt.Fprintf(out, "Length:    %.2f m\n", g.ArcLength().TotalLength())
	fmt.Fprintf(out, "Vertices:  %d\n", len(mesh.Vertices))
	fmt.Fprintf(out, "Triangles: %d\n", mesh.TriangleCount())
	fmt.Fprintf(out, "Offsets:   left %.2f, right %.2f, margin %.2f\n", left, right, g.Config().Margin)
	fmt.Fprintf(out, "Bounds:    (%.2f, %.2f, %.2f) - (%.2f, %.2f, %.2f)\n",
		mesh.Bounds.Min.X, mesh.Bounds.Min.Y, mesh.Bounds.Min.Z,
		mesh.Bounds.Max.X, mesh.Bounds.Max.Y, mesh.Bounds.Max.Z)
	if len(mesh.SkippedFrames) > 0 {
		fmt.Fprintf(out, "Skipped:   %d frames %v\n", len(mesh.SkippedFrames), mesh.SkippedFrames)
	}
	return nil
}

func cmdCurvature(args []string, out io.Writer) error {
	var every int
	s, err := open("curvature", args, false, func(fs *flag.FlagSet) {
		fs.IntVar(&every, "every", 10, "Print every Nth frame")
	})
	if err != nil {
		return err
	}
	if every < 1 {
		every = 1
	}

	g := s.geometry
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "frame\tdistance\tcurvature\tradius\tturn\t")
	for f := 0; f < g.FrameCount(); f += every {
		k := g.Curvature(float32(f))
		fmt.Fprintf(tw, "%d\t%.2f\t%.4f\t%s\t%s\t\n", f, g.ArcLength().DistanceAt(f), k, radius(k), turn(k))
	}
	return tw.Flush()
}

func radius(k float32) string {
	if k == 0 {
		return "-"
	}
	if k < 0 {
		k = -k
	}
	return fmt.Sprintf("%.1f", 1/k)
}

func turn(k float32) string {
	switch {
	case k > 0:
		return "left"
	case k < 0:
		return "right"
	}
	return "straight"
}

func cmdPlot(args []string, out io.Writer) error {
	var dir, format string
	s, err := open("plot", args, false, func(fs *flag.FlagSet) {
		fs.StringVar(&dir, "out", ".", "Output directory")
		fs.StringVar(&format, "format", "png", "Chart format (png, svg, pdf)")
	})
	if err != nil {
		return err
	}

	mesh, err := s.geometry.BuildRibbon(s.cfg.RibbonOptions())
	if err != nil {
		return err
	}
	files, err := report.WriteAll(dir, format, s.geometry, mesh)
	if err != nil {
		return err
	}
	for _, f := range files {
		fmt.Fprintf(out, "Wrote %s\n", f)
	}
	return nil
}

func cmdConfig(args []string, out io.Writer) error {
	var flags config.Flags
	var write string
	fs := flag.NewFlagSet("config", flag.ContinueOnError)
	flags.Register(fs)
	fs.StringVar(&write, "write", "", "Save to this file, or to the user config dir with \"default\"")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := config.Load(&flags)
	if err != nil {
		return err
	}

	switch write {
	case "":
		data, err := cfg.Marshal()
		if err != nil {
			return err
		}
		_, err = out.Write(data)
		return err
	case "default":
		path, err := cfg.Save()
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Saved %s\n", path)
	default:
		if err := cfg.SaveTo(write); err != nil {
			return err
		}
		fmt.Fprintf(out, "Saved %s\n", write)
	}
	return nil
}

func cmdView(args []string) error {
	var shots, format string
	s, err := open("view", args, true, func(fs *flag.FlagSet) {
		fs.StringVar(&shots, "screenshots", "", "Directory for F12 screenshots")
		fs.StringVar(&format, "screenshot-format", "png", "Screenshot format (png or bmp)")
	})
	if err != nil {
		return err
	}

	mesh, err := s.geometry.BuildRibbon(s.cfg.RibbonOptions())
	if err != nil {
		return err
	}

	v, err := viewer.New(viewer.Config{
		Title:            "roadgen - " + s.cfg.Input.PoseFile,
		Width:            s.cfg.Viewer.Width,
		Height:           s.cfg.Viewer.Height,
		Fullscreen:       s.cfg.Viewer.Fullscreen,
		VSync:            s.cfg.Viewer.VSync,
		Samples:          s.cfg.Viewer.Samples,
		FrameRate:        s.cfg.Viewer.FrameRate,
		ScreenshotDir:    shots,
		ScreenshotFormat: format,
	}, viewer.Scene{Geometry: s.geometry, Mesh: mesh, Recording: s.recording})
	if err != nil {
		return err
	}
	defer v.Close()

	return v.Run()
}
