package trajectory

import "errors"

// Input and configuration errors. Geometry failures (collinear curvature
// samples, non-finite rail vertices) are never returned; they are replaced
// with safe defaults or reported through Mesh.SkippedFrames.
var (
	ErrPathTooShort          = errors.New("path needs at least two positions")
	ErrRotationCountMismatch = errors.New("rotation count does not match position count")
	ErrOffsetProfileMismatch = errors.New("offset keyframe and magnitude counts differ")
	ErrOffsetProfileOrder    = errors.New("offset keyframes must be strictly increasing")
	ErrInvalidConfig         = errors.New("invalid trajectory config")
	ErrFrameRange            = errors.New("frame range out of bounds")
)
