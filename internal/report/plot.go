// Package report renders charts of a built road for offline inspection.
package report

import (
	"fmt"
	"image/color"
	gomath "math"
	"os"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/Faultbox/ar-road/pkg/math"
	"github.com/Faultbox/ar-road/pkg/trajectory"
)

var (
	colorRaw      = color.RGBA{R: 150, G: 150, B: 150, A: 255}
	colorSmoothed = color.RGBA{R: 30, G: 110, B: 220, A: 255}
	colorLeft     = color.RGBA{R: 40, G: 170, B: 80, A: 255}
	colorRight    = color.RGBA{R: 210, G: 70, B: 50, A: 255}
)

// Plot size on disk.
var (
	Width  = 12 * vg.Inch
	Height = 6 * vg.Inch
)

// CurvaturePlot charts signed curvature against distance travelled.
// Left turns are positive.
func CurvaturePlot(g *trajectory.PathGeometry) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = "Path curvature"
	p.X.Label.Text = "Distance (m)"
	p.Y.Label.Text = "Curvature (1/m)"
	p.Add(plotter.NewGrid())

	arc := g.ArcLength()
	pts := make(plotter.XYs, 0, g.FrameCount())
	for i := range g.FrameCount() {
		pts = appendFinite(pts, arc.DistanceAt(i), float64(g.Curvature(float32(i))))
	}
	if len(pts) == 0 {
		return p, nil
	}

	line, err := plotter.NewLine(pts)
	if err != nil {
		return nil, err
	}
	line.Color = colorSmoothed
	line.Width = vg.Points(1)
	p.Add(line)

	zero := plotter.NewFunction(func(float64) float64 { return 0 })
	zero.Color = colorRaw
	zero.Dashes = []vg.Length{vg.Points(4), vg.Points(4)}
	p.Add(zero)
	return p, nil
}

// RoadPlot draws the road from above: the raw and smoothed paths and both
// rails of mesh. Rails break where frames were skipped.
func RoadPlot(g *trajectory.PathGeometry, mesh *trajectory.Mesh) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = mesh.Name
	p.X.Label.Text = "X (m)"
	p.Y.Label.Text = "Z (m)"
	p.Add(plotter.NewGrid())

	raw := make([]math.Vec3, g.FrameCount())
	for i := range raw {
		raw[i] = g.Position(i)
	}
	if err := addLine(p, "raw path", topDown(raw), colorRaw, 0.5); err != nil {
		return nil, err
	}
	if err := addLine(p, "smoothed path", topDown(g.SmoothedPath()), colorSmoothed, 1); err != nil {
		return nil, err
	}

	left, right := railRuns(mesh)
	for i := range left {
		label := ""
		if i == 0 {
			label = "left rail"
		}
		if err := addLine(p, label, left[i], colorLeft, 1); err != nil {
			return nil, err
		}
	}
	for i := range right {
		label := ""
		if i == 0 {
			label = "right rail"
		}
		if err := addLine(p, label, right[i], colorRight, 1); err != nil {
			return nil, err
		}
	}

	p.Legend.Top = true
	p.Legend.Left = false
	p.Legend.XOffs = -10
	p.Legend.YOffs = -10
	return p, nil
}

// WriteAll saves the curvature and road charts into dir and returns the
// files written. format is any extension gonum/plot can save, such as
// png, svg or pdf.
func WriteAll(dir, format string, g *trajectory.PathGeometry, mesh *trajectory.Mesh) ([]string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating report dir: %w", err)
	}

	curv, err := CurvaturePlot(g)
	if err != nil {
		return nil, fmt.Errorf("curvature plot: %w", err)
	}
	road, err := RoadPlot(g, mesh)
	if err != nil {
		return nil, fmt.Errorf("road plot: %w", err)
	}

	var files []string
	for _, chart := range []struct {
		name string
		p    *plot.Plot
	}{{"curvature", curv}, {"road", road}} {
		path := filepath.Join(dir, fileStem(mesh.Name)+"_"+chart.name+"."+format)
		if err := chart.p.Save(Width, Height, path); err != nil {
			return files, fmt.Errorf("saving %s: %w", path, err)
		}
		files = append(files, path)
	}
	return files, nil
}

// fileStem turns a mesh name such as "Segment 3" into "segment_3".
func fileStem(name string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), " ", "_")
}

func addLine(p *plot.Plot, label string, pts plotter.XYs, c color.Color, width float64) error {
	if len(pts) < 2 {
		return nil
	}
	line, err := plotter.NewLine(pts)
	if err != nil {
		return err
	}
	line.Color = c
	line.Width = vg.Points(width)
	p.Add(line)
	if label != "" {
		p.Legend.Add(label, line)
	}
	return nil
}

// topDown projects points onto the ground plane, dropping non-finite ones.
func topDown(points []math.Vec3) plotter.XYs {
	pts := make(plotter.XYs, 0, len(points))
	for _, v := range points {
		pts = appendFinite(pts, float64(v.X), float64(v.Z))
	}
	return pts
}

// railRuns splits the left and right rails of mesh into runs of
// consecutive frames.
func railRuns(mesh *trajectory.Mesh) (left, right []plotter.XYs) {
	start := 0
	for k := range mesh.Frames {
		if k > 0 && mesh.Frames[k] != mesh.Frames[k-1]+1 {
			left = append(left, railRun(mesh, start, k, 0))
			right = append(right, railRun(mesh, start, k, 1))
			start = k
		}
	}
	if len(mesh.Frames) > 0 {
		left = append(left, railRun(mesh, start, len(mesh.Frames), 0))
		right = append(right, railRun(mesh, start, len(mesh.Frames), 1))
	}
	return left, right
}

func railRun(mesh *trajectory.Mesh, from, to, side int) plotter.XYs {
	pts := make(plotter.XYs, 0, to-from)
	for k := from; k < to; k++ {
		v := mesh.Vertices[2*k+side]
		pts = append(pts, plotter.XY{X: float64(v.X), Y: float64(v.Z)})
	}
	return pts
}

func appendFinite(pts plotter.XYs, x, y float64) plotter.XYs {
	if gomath.IsNaN(x) || gomath.IsInf(x, 0) || gomath.IsNaN(y) || gomath.IsInf(y, 0) {
		return pts
	}
	return append(pts, plotter.XY{X: x, Y: y})
}
