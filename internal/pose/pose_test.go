package pose

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/ar-road/pkg/math"
)

const sampleRecording = `<?xml version="1.0" encoding="utf-8"?>
<xml>
  <pfcamera>
    <translation>0 1.3 0</translation>
    <translation>0.5 1.3 -2</translation>
    <translation>1  1.25 -4</translation>
    <rotation>0 0 0</rotation>
    <rotation>0 90 0</rotation>
    <rotation>10 45 5</rotation>
  </pfcamera>
</xml>`

func TestParseReverseZ(t *testing.T) {
	rec, err := Parse(strings.NewReader(sampleRecording), Options{ReverseZ: true})
	require.NoError(t, err)

	require.Equal(t, 3, rec.Len())
	assert.Equal(t, []math.Vec3{
		{X: 0, Y: 1.3, Z: 0},
		{X: 0.5, Y: 1.3, Z: 2},
		// The double space leaves a blank field, read as zero.
		{X: 1, Y: 0, Z: -1.25},
	}, rec.Positions)

	require.True(t, rec.HasRotations())
	require.Len(t, rec.Eulers, 3)
	assertQuatNear(t, math.QuatIdentity(), rec.Rotations[0])
	assertQuatNear(t, math.Quat{Y: -0.70710677, W: 0.70710677}, rec.Rotations[1])
	assert.InDelta(t, 0, rec.Eulers[1].X, 1e-3)
	assert.InDelta(t, 270, rec.Eulers[1].Y, 1e-3)
	assert.InDelta(t, 0, rec.Eulers[1].Z, 1e-3)
}

func TestParseWithoutReverse(t *testing.T) {
	rec, err := Parse(strings.NewReader(sampleRecording), Options{})
	require.NoError(t, err)

	assert.Equal(t, float32(-2), rec.Positions[1].Z)
	assertQuatNear(t, math.QuatFromEuler(math.Vec3{Y: 90}), rec.Rotations[1])
	assert.InDelta(t, 90, rec.Eulers[1].Y, 1e-3)
}

func TestParseWithoutRotations(t *testing.T) {
	doc := `<xml><pfcamera><translation>1 2 3</translation><translation>4 5 6</translation></pfcamera></xml>`
	rec, err := Parse(strings.NewReader(doc), Options{ReverseZ: true})
	require.NoError(t, err)

	assert.False(t, rec.HasRotations())
	assert.Empty(t, rec.Eulers)

	pos, rot := rec.CameraAt(0.5)
	assert.InDelta(t, 2.5, pos.X, 1e-5)
	assert.InDelta(t, -4.5, pos.Z, 1e-5)
	assert.Equal(t, math.QuatIdentity(), rot)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want error
	}{
		{
			name: "no frames",
			doc:  `<xml><pfcamera></pfcamera></xml>`,
			want: ErrNoFrames,
		},
		{
			name: "short triple",
			doc:  `<xml><pfcamera><translation>1 2</translation></pfcamera></xml>`,
			want: ErrMalformed,
		},
		{
			name: "bad number",
			doc:  `<xml><pfcamera><translation>1 two 3</translation></pfcamera></xml>`,
			want: ErrMalformed,
		},
		{
			name: "count mismatch",
			doc: `<xml><pfcamera>
				<translation>1 2 3</translation><translation>1 2 3</translation>
				<rotation>0 0 0</rotation>
			</pfcamera></xml>`,
			want: ErrCountMismatch,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.doc), Options{})
			assert.ErrorIs(t, err, tt.want)
		})
	}

	_, err := Parse(strings.NewReader("<xml><pfcamera>"), Options{})
	assert.Error(t, err, "truncated document")
}

func TestReverseRotationMirrorsPoses(t *testing.T) {
	euler := math.Vec3{X: 12, Y: 70, Z: -8}
	q := math.QuatFromEuler(euler)
	mirrored := ReverseRotation(euler)

	for _, v := range []math.Vec3{math.Forward, math.Up, math.Left, {X: 1, Y: 2, Z: 3}} {
		want := ReversePosition(q.Rotate(v))
		got := mirrored.Rotate(ReversePosition(v))
		assert.InDelta(t, want.X, got.X, 1e-5)
		assert.InDelta(t, want.Y, got.Y, 1e-5)
		assert.InDelta(t, want.Z, got.Z, 1e-5)
	}
}

func TestCameraAt(t *testing.T) {
	rec := &Recording{
		Positions: []math.Vec3{{X: 0}, {X: 2}, {X: 4}},
		Rotations: []math.Quat{
			math.QuatIdentity(),
			math.QuatFromAxisAngle(math.Up, 1),
			math.QuatFromAxisAngle(math.Up, 2),
		},
	}

	pos, rot := rec.CameraAt(-3)
	assert.Equal(t, math.Vec3{}, pos)
	assert.Equal(t, math.QuatIdentity(), rot)

	pos, rot = rec.CameraAt(1.5)
	assert.InDelta(t, 3, pos.X, 1e-5)
	assertQuatNear(t, math.QuatFromAxisAngle(math.Up, 1.5), rot)

	pos, rot = rec.CameraAt(10)
	assert.Equal(t, math.Vec3{X: 4}, pos)
	assert.Equal(t, rec.Rotations[2], rot)

	pos, rot = (&Recording{}).CameraAt(1)
	assert.Equal(t, math.Vec3{}, pos)
	assert.Equal(t, math.QuatIdentity(), rot)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pfcamera.xml")
	require.NoError(t, os.WriteFile(path, []byte(sampleRecording), 0644))

	rec, err := Load(path, Options{ReverseZ: true})
	require.NoError(t, err)
	assert.Equal(t, 3, rec.Len())

	_, err = Load(filepath.Join(t.TempDir(), "missing.xml"), Options{})
	assert.Error(t, err)
}

func assertQuatNear(t *testing.T, want, got math.Quat) {
	t.Helper()
	// q and -q are the same rotation.
	if want.Dot(got) < 0 {
		got = math.Quat{X: -got.X, Y: -got.Y, Z: -got.Z, W: -got.W}
	}
	assert.InDelta(t, want.X, got.X, 1e-5)
	assert.InDelta(t, want.Y, got.Y, 1e-5)
	assert.InDelta(t, want.Z, got.Z, 1e-5)
	assert.InDelta(t, want.W, got.W, 1e-5)
}
