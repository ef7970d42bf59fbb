package renderer

import (
	gomath "math"

	"github.com/Faultbox/ar-road/pkg/math"
	"github.com/Faultbox/ar-road/pkg/trajectory"
)

// floatsPerVertex is position (x, y, z) followed by colour (r, g, b).
const floatsPerVertex = 6

// Colours used by the preview.
var (
	ColorStraight = [3]float32{0.35, 0.36, 0.40}
	ColorLeft     = [3]float32{0.15, 0.55, 0.95}
	ColorRight    = [3]float32{0.95, 0.45, 0.15}
	ColorPath     = [3]float32{1.0, 0.85, 0.2}
	ColorGrid     = [3]float32{0.22, 0.24, 0.28}
	ColorBounds   = [3]float32{0.5, 0.5, 0.55}
)

// CurvatureColor blends from the straight colour towards the left or right
// turn colour as |k| approaches full. Left turns are positive.
func CurvatureColor(k, full float32) [3]float32 {
	if !(full > 0) || k == 0 || gomath.IsNaN(float64(k)) {
		return ColorStraight
	}
	target := ColorLeft
	if k < 0 {
		target = ColorRight
		k = -k
	}
	t := math.Clamp01(k / full)
	var c [3]float32
	for i := range c {
		c[i] = math.Lerp(ColorStraight[i], target[i], t)
	}
	return c
}

// RoadVertices interleaves the ribbon vertices with a colour per vertex
// pair taken from the curvature at the pair's frame. A nil curvature track
// paints the whole road the straight colour.
func RoadVertices(mesh *trajectory.Mesh, curvature *trajectory.CurvatureTrack, full float32) []float32 {
	out := make([]float32, 0, len(mesh.Vertices)*floatsPerVertex)
	for i, v := range mesh.Vertices {
		c := ColorStraight
		if curvature != nil && i/2 < len(mesh.Frames) {
			c = CurvatureColor(curvature.At(float32(mesh.Frames[i/2])), full)
		}
		out = append(out, v.X, v.Y, v.Z, c[0], c[1], c[2])
	}
	return out
}

// LineVertices colours x, y, z triples with a single colour.
func LineVertices(xyz []float32, c [3]float32) []float32 {
	out := make([]float32, 0, len(xyz)/3*floatsPerVertex)
	for i := 0; i+2 < len(xyz); i += 3 {
		out = append(out, xyz[i], xyz[i+1], xyz[i+2], c[0], c[1], c[2])
	}
	return out
}

// PathVertices colours a polyline for drawing as a line strip.
func PathVertices(points []math.Vec3, c [3]float32) []float32 {
	out := make([]float32, 0, len(points)*floatsPerVertex)
	for _, p := range points {
		out = append(out, p.X, p.Y, p.Z, c[0], c[1], c[2])
	}
	return out
}

// MarkerVertices returns three coloured line segments of length size
// showing a camera pose: red along its left axis, green up, blue forward.
func MarkerVertices(pos math.Vec3, rot math.Quat, size float32) []float32 {
	axes := []struct {
		dir   math.Vec3
		color [3]float32
	}{
		{math.Left, [3]float32{1, 0.2, 0.2}},
		{math.Up, [3]float32{0.2, 1, 0.2}},
		{math.Forward, [3]float32{0.3, 0.5, 1}},
	}
	out := make([]float32, 0, len(axes)*2*floatsPerVertex)
	for _, a := range axes {
		tip := pos.Add(rot.Rotate(a.dir).Scale(size))
		out = append(out,
			pos.X, pos.Y, pos.Z, a.color[0], a.color[1], a.color[2],
			tip.X, tip.Y, tip.Z, a.color[0], a.color[1], a.color[2],
		)
	}
	return out
}

// MaxAbsCurvature returns the largest curvature magnitude on the track,
// used to normalise the road colouring.
func MaxAbsCurvature(track *trajectory.CurvatureTrack) float32 {
	var m float32
	for _, k := range track.Values() {
		if a := float32(gomath.Abs(float64(k))); a > m {
			m = a
		}
	}
	return m
}
