package renderer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/ar-road/pkg/math"
	"github.com/Faultbox/ar-road/pkg/trajectory"
)

func TestCurvatureColor(t *testing.T) {
	assert.Equal(t, ColorStraight, CurvatureColor(0, 0.1))
	assert.Equal(t, ColorStraight, CurvatureColor(0.05, 0))
	assertColor(t, ColorLeft, CurvatureColor(0.2, 0.1))
	assertColor(t, ColorRight, CurvatureColor(-0.1, 0.1))

	var half [3]float32
	for i := range half {
		half[i] = (ColorStraight[i] + ColorLeft[i]) / 2
	}
	assertColor(t, half, CurvatureColor(0.05, 0.1))
}

func assertColor(t *testing.T, want, got [3]float32) {
	t.Helper()
	for i := range want {
		assert.InDelta(t, want[i], got[i], 1e-6, "channel %d", i)
	}
}

func TestRoadVertices(t *testing.T) {
	path := make([]math.Vec3, 40)
	for i := range path {
		path[i] = math.Vec3{X: float32(i)}
	}
	g, err := trajectory.Build(path, nil, trajectory.DefaultConfig())
	require.NoError(t, err)
	mesh, err := g.BuildRibbon(trajectory.WholePath())
	require.NoError(t, err)

	data := RoadVertices(mesh, g.CurvatureTrack(), 0.05)
	require.Len(t, data, len(mesh.Vertices)*floatsPerVertex)

	// A straight road is painted the straight colour throughout.
	for i := 0; i < len(data); i += floatsPerVertex {
		assert.Equal(t, mesh.Vertices[i/floatsPerVertex].X, data[i])
		assert.Equal(t, ColorStraight[:], data[i+3:i+6])
	}

	assert.Len(t, RoadVertices(mesh, nil, 1), len(data))
}

func TestLineAndPathVertices(t *testing.T) {
	lines := LineVertices([]float32{1, 2, 3, 4, 5, 6}, ColorGrid)
	assert.Equal(t, []float32{
		1, 2, 3, ColorGrid[0], ColorGrid[1], ColorGrid[2],
		4, 5, 6, ColorGrid[0], ColorGrid[1], ColorGrid[2],
	}, lines)

	path := PathVertices([]math.Vec3{{X: 1}, {Y: 2}}, ColorPath)
	assert.Len(t, path, 2*floatsPerVertex)
	assert.Equal(t, float32(2), path[floatsPerVertex+1])
}

func TestMarkerVertices(t *testing.T) {
	pos := math.Vec3{X: 1, Y: 1, Z: 1}
	// Facing +X puts the left axis on +Z.
	rot := math.LookRotation(math.Vec3{X: 1}, math.Up)

	data := MarkerVertices(pos, rot, 2)
	require.Len(t, data, 6*floatsPerVertex)

	tip := func(seg int) math.Vec3 {
		o := (2*seg + 1) * floatsPerVertex
		return math.Vec3{X: data[o], Y: data[o+1], Z: data[o+2]}
	}
	assertNear(t, math.Vec3{X: 1, Y: 1, Z: 3}, tip(0))
	assertNear(t, math.Vec3{X: 1, Y: 3, Z: 1}, tip(1))
	assertNear(t, math.Vec3{X: 3, Y: 1, Z: 1}, tip(2))
}

func TestMaxAbsCurvature(t *testing.T) {
	path := make([]math.Vec3, 10)
	for i := range path {
		path[i] = math.Vec3{Z: float32(i)}
	}
	g, err := trajectory.Build(path, nil, trajectory.DefaultConfig())
	require.NoError(t, err)
	assert.Zero(t, MaxAbsCurvature(g.CurvatureTrack()))
}

func assertNear(t *testing.T, want, got math.Vec3) {
	t.Helper()
	assert.InDelta(t, want.X, got.X, 1e-5)
	assert.InDelta(t, want.Y, got.Y, 1e-5)
	assert.InDelta(t, want.Z, got.Z, 1e-5)
}
