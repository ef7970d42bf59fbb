package trajectory

import (
	gomath "math"

	"github.com/Faultbox/ar-road/pkg/math"
)

const (
	pathSmoothingPasses      = 3
	curvatureSmoothingPasses = 2
)

// SmoothPath returns a copy of path after three passes of 3-point moving
// average. Each pass updates the copy in place, so a point sees its already
// smoothed predecessor. The first and last points are never moved.
func SmoothPath(path []math.Vec3) []math.Vec3 {
	out := make([]math.Vec3, len(path))
	copy(out, path)
	smoothPoints(out, pathSmoothingPasses)
	return out
}

func smoothPoints(p []math.Vec3, passes int) {
	for range passes {
		for i := 1; i < len(p)-1; i++ {
			p[i] = p[i-1].Add(p[i]).Add(p[i+1]).Scale(1.0 / 3)
		}
	}
}

func smoothScalars(v []float32, passes int) {
	for range passes {
		for i := 1; i < len(v)-1; i++ {
			v[i] = float32((float64(v[i-1]) + float64(v[i]) + float64(v[i+1])) / 3)
		}
	}
}

// samplePoint interpolates points at a fractional frame. The frame is rounded
// up to pick the upper neighbour and clamped to the ends of the slice.
func samplePoint(points []math.Vec3, frame float32) math.Vec3 {
	i, t, ok := bracket(len(points), frame)
	if !ok {
		return points[i]
	}
	return points[i-1].Lerp(points[i], t)
}

func sampleScalar(values []float32, frame float32) float32 {
	i, t, ok := bracket(len(values), frame)
	if !ok {
		return values[i]
	}
	return math.Lerp(values[i-1], values[i], t)
}

// bracket resolves a fractional frame against n samples. When ok is false
// the frame lies outside (0, n) and i is the clamped end index to return
// as-is; otherwise the sample lies between i-1 and i at fraction t.
func bracket(n int, frame float32) (i int, t float32, ok bool) {
	if gomath.IsNaN(float64(frame)) {
		return 0, 0, false
	}
	c := gomath.Ceil(float64(frame))
	if c <= 0 {
		return 0, 0, false
	}
	if c >= float64(n) {
		return n - 1, 0, false
	}
	i = int(c)
	return i, frame - float32(i-1), true
}
