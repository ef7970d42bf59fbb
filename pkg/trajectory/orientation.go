package trajectory

import (
	gomath "math"

	"github.com/Faultbox/ar-road/pkg/math"
)

// OrientationTrack holds one facing rotation per frame, derived from the
// smoothed path tangent.
type OrientationTrack struct {
	rotations []math.Quat
}

// NewOrientationTrack faces each interior frame along the central difference
// of its smoothed neighbours, with world up. The end frames have no central
// difference and copy their inner neighbour. A two-frame path faces its only
// segment on both frames.
func NewOrientationTrack(smoothed []math.Vec3) *OrientationTrack {
	n := len(smoothed)
	rotations := make([]math.Quat, n)
	switch {
	case n == 1:
		rotations[0] = math.QuatIdentity()
	case n == 2:
		q := math.LookRotation(smoothed[1].Sub(smoothed[0]), math.Up)
		rotations[0], rotations[1] = q, q
	case n > 2:
		for i := 1; i < n-1; i++ {
			rotations[i] = math.LookRotation(smoothed[i+1].Sub(smoothed[i-1]), math.Up)
		}
		rotations[0] = rotations[1]
		rotations[n-1] = rotations[n-2]
	}
	return &OrientationTrack{rotations: rotations}
}

// Len returns the number of frames in the track.
func (o *OrientationTrack) Len() int {
	return len(o.rotations)
}

// At returns the rotation at a frame clamped to the track.
func (o *OrientationTrack) At(frame int) math.Quat {
	if len(o.rotations) == 0 {
		return math.QuatIdentity()
	}
	return o.rotations[clampIndex(frame, len(o.rotations))]
}

// AtFrame rounds a fractional frame up before the clamped lookup.
func (o *OrientationTrack) AtFrame(frame float32) math.Quat {
	if gomath.IsNaN(float64(frame)) {
		return o.At(0)
	}
	c := gomath.Ceil(float64(frame))
	if c >= float64(len(o.rotations)) {
		return o.At(len(o.rotations) - 1)
	}
	if c <= 0 {
		return o.At(0)
	}
	return o.At(int(c))
}
