package picking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/ar-road/pkg/math"
	"github.com/Faultbox/ar-road/pkg/trajectory"
)

func TestScreenToRayCentre(t *testing.T) {
	eye := math.Vec3{Y: 10, Z: 10}
	viewProj := math.Perspective(0.9, 2, 0.1, 100).Mul(math.LookAt(eye, math.Vec3{}, math.Up))
	inv, ok := viewProj.Inverse()
	require.True(t, ok)

	ray := ScreenToRay(400, 200, 800, 400, inv)
	want := math.Vec3{}.Sub(eye).Normalize()
	assert.InDelta(t, want.X, ray.Direction.X, 1e-4)
	assert.InDelta(t, want.Y, ray.Direction.Y, 1e-4)
	assert.InDelta(t, want.Z, ray.Direction.Z, 1e-4)

	hit, ok := ray.IntersectPlaneY(0)
	require.True(t, ok)
	assert.InDelta(t, 0, hit.X, 1e-3)
	assert.InDelta(t, 0, hit.Z, 1e-3)
}

func TestIntersectPlaneY(t *testing.T) {
	down := Ray{Origin: math.Vec3{X: 1, Y: 5, Z: 2}, Direction: math.Vec3{Y: -1}}
	hit, ok := down.IntersectPlaneY(1)
	require.True(t, ok)
	assert.Equal(t, math.Vec3{X: 1, Y: 1, Z: 2}, hit)

	_, ok = down.IntersectPlaneY(6)
	assert.False(t, ok, "plane behind the origin")

	flat := Ray{Direction: math.Vec3{X: 1}}
	_, ok = flat.IntersectPlaneY(0)
	assert.False(t, ok, "parallel ray")
}

func TestIntersectBounds(t *testing.T) {
	box := trajectory.Bounds{Min: math.Vec3{X: -1, Y: -1, Z: -1}, Max: math.Vec3{X: 1, Y: 1, Z: 1}}

	tests := []struct {
		name  string
		ray   Ray
		hit   bool
		wantT float32
	}{
		{"towards", Ray{Origin: math.Vec3{X: -5}, Direction: math.Vec3{X: 1}}, true, 4},
		{"inside", Ray{Direction: math.Vec3{Z: 1}}, true, 1},
		{"away", Ray{Origin: math.Vec3{X: -5}, Direction: math.Vec3{X: -1}}, false, 0},
		{"parallel outside", Ray{Origin: math.Vec3{X: -5, Y: 3}, Direction: math.Vec3{X: 1}}, false, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.ray.IntersectBounds(box)
			assert.Equal(t, tt.hit, ok)
			assert.InDelta(t, tt.wantT, got, 1e-6)
		})
	}
}

func TestNearestFrame(t *testing.T) {
	nan := float32(0)
	nan /= nan
	path := []math.Vec3{{X: 0}, {X: 5, Y: 100}, {X: nan}, {X: 10}}

	assert.Equal(t, 1, NearestFrame(path, math.Vec3{X: 6}), "height is ignored")
	assert.Equal(t, 3, NearestFrame(path, math.Vec3{X: 9, Z: 1}))
	assert.Equal(t, -1, NearestFrame(nil, math.Vec3{}))
}
