// Package pose loads recorded AR camera poses.
//
// A recording is an XML document with one translation and one rotation node
// per video frame:
//
//	<xml>
//	  <pfcamera>
//	    <translation>0.12 1.31 -0.4</translation>
//	    <rotation>-3.1 78.0 0.5</rotation>
//	    ...
//	  </pfcamera>
//	</xml>
//
// Translations are metres. Rotations are Euler angles in degrees, applied
// z first, then x, then y.
package pose

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/Faultbox/ar-road/pkg/math"
)

// Parse errors.
var (
	ErrNoFrames      = errors.New("recording has no translation nodes")
	ErrCountMismatch = errors.New("rotation count does not match translation count")
	ErrMalformed     = errors.New("malformed pose triple")
)

// Options controls how a recording is converted.
type Options struct {
	// ReverseZ converts poses from the capture device's right-handed frame
	// to the left-handed engine frame.
	ReverseZ bool
	Logger   *zap.Logger
}

// Recording is a loaded camera path. Positions is always populated.
// Eulers and Rotations are empty when the file carries no rotation nodes,
// otherwise they have one entry per position.
type Recording struct {
	Positions []math.Vec3
	// Eulers are the rotations as Euler angles in degrees after conversion,
	// wrapped to [0, 360).
	Eulers    []math.Vec3
	Rotations []math.Quat
}

type document struct {
	XMLName xml.Name `xml:"xml"`
	Cameras []struct {
		Translations []string `xml:"translation"`
		Rotations    []string `xml:"rotation"`
	} `xml:"pfcamera"`
}

// Load reads a recording from a file.
func Load(path string, opts Options) (*Recording, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	rec, err := Parse(f, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return rec, nil
}

// Parse reads a recording from r.
func Parse(r io.Reader, opts Options) (*Recording, error) {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	var doc document
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decoding pose xml: %w", err)
	}

	rec := &Recording{}
	for _, cam := range doc.Cameras {
		for i, text := range cam.Translations {
			v, err := parseTriple(text)
			if err != nil {
				return nil, fmt.Errorf("translation %d: %w", i, err)
			}
			if opts.ReverseZ {
				v = ReversePosition(v)
			}
			rec.Positions = append(rec.Positions, v)
		}
		for i, text := range cam.Rotations {
			v, err := parseTriple(text)
			if err != nil {
				return nil, fmt.Errorf("rotation %d: %w", i, err)
			}
			var q math.Quat
			if opts.ReverseZ {
				q = ReverseRotation(v)
			} else {
				q = math.QuatFromEuler(v)
			}
			rec.Rotations = append(rec.Rotations, q)
			rec.Eulers = append(rec.Eulers, q.EulerAngles())
		}
	}

	if len(rec.Positions) == 0 {
		return nil, ErrNoFrames
	}
	if len(rec.Rotations) > 0 && len(rec.Rotations) != len(rec.Positions) {
		return nil, fmt.Errorf("%w: %d rotations, %d translations",
			ErrCountMismatch, len(rec.Rotations), len(rec.Positions))
	}

	log.Debug("pose recording parsed",
		zap.Int("frames", len(rec.Positions)),
		zap.Bool("rotations", len(rec.Rotations) > 0),
		zap.Bool("reverse_z", opts.ReverseZ),
	)
	return rec, nil
}

// parseTriple splits a node's text on single spaces and reads the first
// three fields. Blank fields read as zero.
func parseTriple(text string) (math.Vec3, error) {
	parts := strings.Split(strings.TrimSpace(text), " ")
	if len(parts) < 3 {
		return math.Vec3{}, fmt.Errorf("%w: %q", ErrMalformed, text)
	}
	var xyz [3]float32
	for i := range xyz {
		s := strings.TrimSpace(parts[i])
		if s == "" {
			continue
		}
		f, err := strconv.ParseFloat(s, 32)
		if err != nil {
			return math.Vec3{}, fmt.Errorf("%w: %q: %v", ErrMalformed, text, err)
		}
		xyz[i] = float32(f)
	}
	return math.Vec3{X: xyz[0], Y: xyz[1], Z: xyz[2]}, nil
}

// ReversePosition mirrors a position across the XY plane.
func ReversePosition(v math.Vec3) math.Vec3 {
	return math.Vec3{X: v.X, Y: v.Y, Z: -v.Z}
}

// ReverseRotation builds the rotation for Euler angles in degrees and
// mirrors it across the XY plane to match ReversePosition.
func ReverseRotation(degrees math.Vec3) math.Quat {
	q := math.QuatFromEuler(degrees)
	return math.Quat{X: -q.X, Y: -q.Y, Z: q.Z, W: q.W}
}

// Len returns the number of frames.
func (r *Recording) Len() int {
	return len(r.Positions)
}

// HasRotations reports whether the recording carries camera rotations.
func (r *Recording) HasRotations() bool {
	return len(r.Rotations) > 0
}

// CameraAt returns the camera pose at a fractional frame, clamped to the
// recording. Positions are interpolated linearly and rotations spherically.
// Without rotations the identity is returned.
func (r *Recording) CameraAt(frame float32) (math.Vec3, math.Quat) {
	n := len(r.Positions)
	if n == 0 {
		return math.Vec3{}, math.QuatIdentity()
	}
	if !(frame > 0) {
		return r.Positions[0], r.rotation(0)
	}
	if frame >= float32(n-1) {
		return r.Positions[n-1], r.rotation(n - 1)
	}

	i := int(frame)
	t := frame - float32(i)
	pos := r.Positions[i].Lerp(r.Positions[i+1], t)
	if !r.HasRotations() {
		return pos, math.QuatIdentity()
	}
	return pos, r.Rotations[i].Slerp(r.Rotations[i+1], t)
}

func (r *Recording) rotation(i int) math.Quat {
	if !r.HasRotations() {
		return math.QuatIdentity()
	}
	return r.Rotations[i]
}
