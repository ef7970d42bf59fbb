package trajectory

import (
	gomath "math"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/Faultbox/ar-road/pkg/math"
)

func TestBuildErrors(t *testing.T) {
	t.Parallel()

	t.Run("empty path", func(t *testing.T) {
		_, err := Build(nil, nil, DefaultConfig())
		assert.ErrorIs(t, err, ErrPathTooShort)
	})

	t.Run("single position", func(t *testing.T) {
		_, err := Build([]math.Vec3{{X: 1}}, nil, DefaultConfig())
		assert.ErrorIs(t, err, ErrPathTooShort)
	})

	t.Run("rotation count", func(t *testing.T) {
		_, err := Build(wigglyPath(4), make([]math.Vec3, 3), DefaultConfig())
		assert.ErrorIs(t, err, ErrRotationCountMismatch)
	})

	t.Run("invalid config", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Margin = float32(gomath.NaN())
		cfg.CurvatureWindow = -1
		_, err := Build(wigglyPath(4), nil, cfg)
		assert.ErrorIs(t, err, ErrInvalidConfig)
		assert.Len(t, multierr.Errors(err), 2)
	})

	t.Run("unordered keyframes", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.LeftKeyframes = Keyframes{Frames: []int{3, 1}, Offsets: []float32{1, 1}}
		_, err := Build(wigglyPath(4), nil, cfg)
		assert.ErrorIs(t, err, ErrOffsetProfileOrder)
	})
}

func TestBuildCopiesInput(t *testing.T) {
	t.Parallel()

	path := wigglyPath(8)
	rotations := make([]math.Vec3, len(path))
	rotations[3] = math.Vec3{Y: 90}

	g, err := Build(path, rotations, DefaultConfig())
	require.NoError(t, err)

	path[2] = math.Vec3{X: 1000}
	rotations[3] = math.Vec3{}

	assert.NotEqual(t, float32(1000), g.Position(2).X)
	rot, ok := g.Rotation(3)
	require.True(t, ok)
	assert.Equal(t, math.Vec3{Y: 90}, rot)
	assert.Equal(t, 8, g.FrameCount())
}

func TestPathGeometryAccessors(t *testing.T) {
	t.Parallel()

	path := wigglyPath(30)
	g, err := Build(path, nil, DefaultConfig())
	require.NoError(t, err)

	assert.Equal(t, path[0], g.Position(-5))
	assert.Equal(t, path[29], g.Position(300))
	_, ok := g.Rotation(0)
	assert.False(t, ok)

	smoothed := g.SmoothedPath()
	require.Len(t, smoothed, 30)
	assertVecNear(t, smoothed[4], g.SmoothedPosition(4))
	assertVecNear(t, smoothed[4].Lerp(smoothed[5], 0.5), g.SmoothedPosition(4.5))
	smoothed[4] = math.Vec3{}
	assert.NotEqual(t, math.Vec3{}, g.SmoothedPath()[4])

	assert.Equal(t, 30, g.ArcLength().Len())
	assert.Equal(t, 30, g.CurvatureTrack().Len())
	assert.Equal(t, g.CurvatureTrack().At(12.5), g.Curvature(12.5))

	left, right := g.SideOffsets(10)
	assert.Equal(t, float32(4), left)
	assert.Equal(t, float32(0), right)
	assert.Equal(t, DefaultConfig(), g.Config())
}

func TestBuildTwoPoints(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.CameraHeight = 0
	cfg.Margin = 0
	g, err := Build([]math.Vec3{{}, {X: 4}}, nil, cfg)
	require.NoError(t, err)

	assert.Equal(t, []float32{0, 0}, g.CurvatureTrack().Values())
	assert.Equal(t, 4.0, g.ArcLength().TotalLength())

	mesh, err := g.BuildRibbon(RibbonOptions{EndFrame: -1, LeftOffset: 1, RightOffset: 1})
	require.NoError(t, err)
	assert.Len(t, mesh.Vertices, 4)
	assert.Equal(t, []uint32{1, 0, 3, 0, 2, 3}, mesh.Indices)
	assert.InDelta(t, 1, mesh.Vertices[0].Z, 1e-5)
	assert.InDelta(t, -1, mesh.Vertices[3].Z, 1e-5)
}

func TestBuildRibbonConcurrent(t *testing.T) {
	t.Parallel()

	g, err := Build(circlePath(300, 40, 1), nil, DefaultConfig())
	require.NoError(t, err)

	want, err := g.BuildRibbon(WholePath())
	require.NoError(t, err)

	const workers = 8
	meshes := make([]*Mesh, workers)
	var wg sync.WaitGroup
	for i := range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			meshes[i], _ = g.BuildRibbon(WholePath())
		}()
	}
	wg.Wait()

	for i, got := range meshes {
		require.NotNil(t, got, "worker %d", i)
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("worker %d mesh mismatch (-want +got):\n%s", i, diff)
		}
	}
}

func TestBuildRibbonLogsSkippedFrames(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zapcore.DebugLevel)
	path := straightPath(10, math.Vec3{X: 1})
	path[9].Z = float32(gomath.Inf(1))

	g, err := Build(path, nil, DefaultConfig(), WithLogger(zap.New(core)))
	require.NoError(t, err)
	assert.Equal(t, 1, logs.FilterMessage("path geometry built").Len())

	_, err = g.BuildRibbon(WholePath())
	require.NoError(t, err)

	skipped := logs.FilterMessage("ribbon frames skipped").All()
	require.Len(t, skipped, 1)
	assert.Equal(t, zapcore.WarnLevel, skipped[0].Level)
	assert.Equal(t, int64(5), skipped[0].ContextMap()["count"])
	assert.Equal(t, 1, logs.FilterMessage("ribbon built").Len())
}
