package trajectory

import (
	"fmt"

	"gonum.org/v1/gonum/interp"
)

// OffsetProfile gives the lateral offset magnitude of one rail per frame.
type OffsetProfile struct {
	constant float32
	curve    *interp.PiecewiseLinear
}

// NewOffsetProfile builds a profile from keyframes. With no keyframes the
// profile returns fallback everywhere. A single keyframe holds its offset
// across the whole path.
func NewOffsetProfile(k Keyframes, fallback float32) (*OffsetProfile, error) {
	if err := validateKeyframes("keyframes", k); err != nil {
		return nil, err
	}
	switch len(k.Frames) {
	case 0:
		return &OffsetProfile{constant: fallback}, nil
	case 1:
		return &OffsetProfile{constant: k.Offsets[0]}, nil
	}

	xs := make([]float64, len(k.Frames))
	ys := make([]float64, len(k.Offsets))
	for i := range k.Frames {
		xs[i] = float64(k.Frames[i])
		ys[i] = float64(k.Offsets[i])
	}
	curve := &interp.PiecewiseLinear{}
	if err := curve.Fit(xs, ys); err != nil {
		return nil, fmt.Errorf("fitting offset keyframes: %w", err)
	}
	return &OffsetProfile{curve: curve}, nil
}

// At returns the offset at a fractional frame. Frames before the first
// keyframe or after the last one take that keyframe's offset; frames in
// between are interpolated linearly.
func (p *OffsetProfile) At(frame float32) float32 {
	if p.curve == nil {
		return p.constant
	}
	return float32(p.curve.Predict(float64(frame)))
}
