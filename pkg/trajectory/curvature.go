package trajectory

import (
	gomath "math"
	"slices"

	"github.com/Faultbox/ar-road/pkg/math"
)

// collinearEpsilon is the squared cross-product magnitude below which three
// samples are treated as a straight line.
const collinearEpsilon = 1e-14

// CurvatureTrack holds the signed curvature of the path at every frame.
// Positive values turn towards the left of the direction of travel.
type CurvatureTrack struct {
	values []float32
}

// NewCurvatureTrack fits a circle through the smoothed path window behind
// each frame, the raw position at the frame, and the smoothed window ahead
// of it. The window is measured in arc length. Frames with no stable circle
// get zero. The result is averaged twice with its neighbours.
func NewCurvatureTrack(path, smoothed []math.Vec3, index *ArcLengthIndex, window float64) *CurvatureTrack {
	values := make([]float32, len(path))
	for i, b := range path {
		d := index.DistanceAt(i)
		a := samplePoint(smoothed, float32(index.FrameAtDistance(d-window)))
		c := samplePoint(smoothed, float32(index.FrameAtDistance(d+window)))

		center, ok := CircleCenter(a, b, c)
		if !ok {
			continue
		}
		values[i] = signedCurvature(a, b, center)
	}
	smoothScalars(values, curvatureSmoothingPasses)
	return &CurvatureTrack{values: values}
}

// Len returns the number of frames in the track.
func (c *CurvatureTrack) Len() int {
	return len(c.values)
}

// Values returns a copy of the per-frame curvature.
func (c *CurvatureTrack) Values() []float32 {
	return slices.Clone(c.values)
}

// At interpolates curvature at a fractional frame, clamped to the track.
func (c *CurvatureTrack) At(frame float32) float32 {
	if len(c.values) == 0 {
		return 0
	}
	return sampleScalar(c.values, frame)
}

// CircleCenter returns the center of the circle through a, b and c.
// ok is false when the points are (nearly) collinear or the construction
// produces a non-finite center.
//
// The center lies on the perpendicular bisector of chord AC, at a distance
// from the chord midpoint found with the law of sines on the triangle formed
// by the two bisector directions and the half-chord difference. Which side of
// AC it falls on depends on whether the angle at b is obtuse.
func CircleCenter(a, b, c math.Vec3) (center math.Vec3, ok bool) {
	ab := b.Sub(a)
	ac := c.Sub(a)
	normal := ab.Cross(ac)
	if normal.LengthSquared() < collinearEpsilon {
		return math.Vec3{}, false
	}
	normal = normal.Normalize()
	if normal.LengthSquared() < collinearEpsilon {
		return math.Vec3{}, false
	}

	bisectAB := ab.Cross(normal).Normalize()
	bisectAC := ac.Cross(normal).Normalize()
	halfDiff := ab.Sub(ac).Scale(0.5)

	apex := bisectAB.Angle(bisectAC)
	side := halfDiff.Angle(bisectAB)
	dist := halfDiff.Length() * sin(side) / sin(apex)

	mid := a.Add(ac.Scale(0.5))
	if ab.Dot(c.Sub(b)) <= 0 {
		center = mid.Add(bisectAC.Scale(dist))
	} else {
		center = mid.Sub(bisectAC.Scale(dist))
	}
	return center, center.IsFinite()
}

// signedCurvature is the inverse radius of the circle centred at center that
// passes through a. It is negative when the center lies to the right of the
// chord a->b, looking down from world up.
func signedCurvature(a, b, center math.Vec3) float32 {
	radius := center.Sub(a).Length()
	leftness := b.Sub(a).Cross(math.Up).Normalize()
	if center.Sub(a).Dot(leftness) < 0 {
		radius = -radius
	}
	return 1 / radius
}

func sin(rad float32) float32 {
	return float32(gomath.Sin(float64(rad)))
}
