package trajectory

import (
	"fmt"
	"math"

	"go.uber.org/multierr"
)

// Engine defaults.
const (
	DefaultCameraHeight    = 1.0
	DefaultMargin          = 2.0
	DefaultCurvatureWindow = 10.0

	// defaultSideOffset is the width given to the biased side of the road
	// when no keyframes are configured.
	defaultSideOffset = 4.0
)

// Keyframes maps frame indices to lateral offset magnitudes.
// Frames must be strictly increasing. A nil or empty table means the side
// falls back to its default offset.
type Keyframes struct {
	Frames  []int
	Offsets []float32
}

// Empty reports whether no keyframes are configured.
func (k Keyframes) Empty() bool {
	return len(k.Frames) == 0 && len(k.Offsets) == 0
}

// Config holds the parameters that shape a path geometry.
type Config struct {
	// CameraHeight drops the ribbon from the camera down to the ground.
	CameraHeight float32
	// Margin is added to both rail offsets unless a ribbon build overrides it.
	Margin float32
	// LeftHanded swaps the default side offsets.
	LeftHanded bool
	// CurvatureWindow is the arc length looked behind and ahead of each
	// frame when fitting the curvature circle.
	CurvatureWindow float64

	LeftKeyframes  Keyframes
	RightKeyframes Keyframes
}

// DefaultConfig returns a Config with the engine defaults.
func DefaultConfig() Config {
	return Config{
		CameraHeight:    DefaultCameraHeight,
		Margin:          DefaultMargin,
		CurvatureWindow: DefaultCurvatureWindow,
	}
}

// DefaultSideOffsets returns the left and right offsets used when a side has
// no keyframes.
//
//	handedness    left  right
//	right-handed   4     0
//	left-handed    0     4
func DefaultSideOffsets(leftHanded bool) (left, right float32) {
	if leftHanded {
		return 0, defaultSideOffset
	}
	return defaultSideOffset, 0
}

// Validate reports every problem with the config at once.
func (c Config) Validate() error {
	var err error
	if !finite(float64(c.CameraHeight)) {
		err = multierr.Append(err, fmt.Errorf("%w: camera height %v", ErrInvalidConfig, c.CameraHeight))
	}
	if !finite(float64(c.Margin)) {
		err = multierr.Append(err, fmt.Errorf("%w: margin %v", ErrInvalidConfig, c.Margin))
	}
	if !(c.CurvatureWindow > 0) || math.IsInf(c.CurvatureWindow, 0) {
		err = multierr.Append(err, fmt.Errorf("%w: curvature window %v must be positive", ErrInvalidConfig, c.CurvatureWindow))
	}
	err = multierr.Append(err, validateKeyframes("left", c.LeftKeyframes))
	err = multierr.Append(err, validateKeyframes("right", c.RightKeyframes))
	return err
}

func validateKeyframes(label string, k Keyframes) error {
	if len(k.Frames) != len(k.Offsets) {
		return fmt.Errorf("%w: %s: %d frames, %d offsets",
			ErrOffsetProfileMismatch, label, len(k.Frames), len(k.Offsets))
	}
	for i := 1; i < len(k.Frames); i++ {
		if k.Frames[i] <= k.Frames[i-1] {
			return fmt.Errorf("%w: %s: frame %d follows %d",
				ErrOffsetProfileOrder, label, k.Frames[i], k.Frames[i-1])
		}
	}
	return nil
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
