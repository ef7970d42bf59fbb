// Package trajectory turns a recorded AR camera path into a flat road mesh.
//
// Build smooths the path once and derives every per-frame track from it
// (arc length, facing rotation, curvature, rail offsets). The resulting
// PathGeometry is immutable, so ribbons and curvature queries can be taken
// from it concurrently.
package trajectory

import (
	"fmt"
	"slices"

	"go.uber.org/zap"

	"github.com/Faultbox/ar-road/pkg/math"
)

// PathGeometry bundles a path with all the tracks derived from it.
type PathGeometry struct {
	cfg Config
	log *zap.Logger

	positions []math.Vec3
	rotations []math.Vec3
	smoothed  []math.Vec3

	arcLength   *ArcLengthIndex
	orientation *OrientationTrack
	curvature   *CurvatureTrack
	leftOffset  *OffsetProfile
	rightOffset *OffsetProfile
}

// Option customises Build.
type Option func(*PathGeometry)

// WithLogger sets the logger used for build diagnostics.
func WithLogger(log *zap.Logger) Option {
	return func(g *PathGeometry) {
		if log != nil {
			g.log = log
		}
	}
}

// Build derives the geometry of a camera path. rotations are per-frame
// camera rotation hints carried for playback; they may be nil, otherwise
// their count must match positions. The input slices are copied.
func Build(positions, rotations []math.Vec3, cfg Config, opts ...Option) (*PathGeometry, error) {
	if len(positions) < 2 {
		return nil, fmt.Errorf("%w: got %d", ErrPathTooShort, len(positions))
	}
	if rotations != nil && len(rotations) != len(positions) {
		return nil, fmt.Errorf("%w: %d rotations for %d positions",
			ErrRotationCountMismatch, len(rotations), len(positions))
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	g := &PathGeometry{
		cfg:       cfg,
		log:       zap.NewNop(),
		positions: slices.Clone(positions),
		rotations: slices.Clone(rotations),
	}
	for _, opt := range opts {
		opt(g)
	}

	defLeft, defRight := DefaultSideOffsets(cfg.LeftHanded)
	var err error
	if g.leftOffset, err = NewOffsetProfile(cfg.LeftKeyframes, defLeft); err != nil {
		return nil, fmt.Errorf("left offsets: %w", err)
	}
	if g.rightOffset, err = NewOffsetProfile(cfg.RightKeyframes, defRight); err != nil {
		return nil, fmt.Errorf("right offsets: %w", err)
	}

	g.smoothed = SmoothPath(g.positions)
	g.arcLength = NewArcLengthIndex(g.positions)
	g.orientation = NewOrientationTrack(g.smoothed)
	g.curvature = NewCurvatureTrack(g.positions, g.smoothed, g.arcLength, cfg.CurvatureWindow)

	g.log.Debug("path geometry built",
		zap.Int("frames", len(g.positions)),
		zap.Float64("length", g.arcLength.TotalLength()),
		zap.Bool("left_handed", cfg.LeftHanded),
	)
	return g, nil
}

// Config returns the configuration the geometry was built with.
func (g *PathGeometry) Config() Config {
	return g.cfg
}

// FrameCount returns the number of frames in the path.
func (g *PathGeometry) FrameCount() int {
	return len(g.positions)
}

// Position returns the raw position at a frame clamped to the path.
func (g *PathGeometry) Position(frame int) math.Vec3 {
	return g.positions[clampIndex(frame, len(g.positions))]
}

// Rotation returns the camera rotation hint at a frame clamped to the path,
// or false when the geometry was built without rotations.
func (g *PathGeometry) Rotation(frame int) (math.Vec3, bool) {
	if len(g.rotations) == 0 {
		return math.Vec3{}, false
	}
	return g.rotations[clampIndex(frame, len(g.rotations))], true
}

// SmoothedPosition interpolates the smoothed path at a fractional frame.
func (g *PathGeometry) SmoothedPosition(frame float32) math.Vec3 {
	return samplePoint(g.smoothed, frame)
}

// SmoothedPath returns a copy of the smoothed path.
func (g *PathGeometry) SmoothedPath() []math.Vec3 {
	return slices.Clone(g.smoothed)
}

// ArcLength returns the arc length index of the raw path.
func (g *PathGeometry) ArcLength() *ArcLengthIndex {
	return g.arcLength
}

// Orientation returns the facing rotation at a frame clamped to the path.
func (g *PathGeometry) Orientation(frame int) math.Quat {
	return g.orientation.At(frame)
}

// Curvature returns the signed curvature at a fractional frame. It is meant
// for readouts during playback, such as a difficulty or speed indicator.
func (g *PathGeometry) Curvature(frame float32) float32 {
	return g.curvature.At(frame)
}

// CurvatureTrack returns the per-frame curvature.
func (g *PathGeometry) CurvatureTrack() *CurvatureTrack {
	return g.curvature
}

// SideOffsets returns the configured left and right rail offsets at a frame,
// before any margin is added.
func (g *PathGeometry) SideOffsets(frame float32) (left, right float32) {
	return g.leftOffset.At(frame), g.rightOffset.At(frame)
}
