// Package picking maps screen clicks onto the road.
package picking

import (
	gomath "math"

	"github.com/Faultbox/ar-road/pkg/math"
	"github.com/Faultbox/ar-road/pkg/trajectory"
)

// Ray is a half-line with a normalized direction.
type Ray struct {
	Origin    math.Vec3
	Direction math.Vec3
}

// ScreenToRay converts pixel coordinates to a world-space ray.
// invViewProj is the inverse of the view-projection matrix.
func ScreenToRay(screenX, screenY, viewportW, viewportH float32, invViewProj math.Mat4) Ray {
	ndcX := 2*screenX/viewportW - 1
	ndcY := 1 - 2*screenY/viewportH

	near := invViewProj.TransformPoint(math.Vec3{X: ndcX, Y: ndcY, Z: -1})
	far := invViewProj.TransformPoint(math.Vec3{X: ndcX, Y: ndcY, Z: 1})
	return Ray{Origin: near, Direction: far.Sub(near).Normalize()}
}

// At returns the point at distance t along the ray.
func (r Ray) At(t float32) math.Vec3 {
	return r.Origin.Add(r.Direction.Scale(t))
}

// IntersectPlaneY intersects the ray with the horizontal plane y = planeY.
func (r Ray) IntersectPlaneY(planeY float32) (math.Vec3, bool) {
	if gomath.Abs(float64(r.Direction.Y)) < 0.001 {
		return math.Vec3{}, false
	}
	t := (planeY - r.Origin.Y) / r.Direction.Y
	if t < 0 {
		return math.Vec3{}, false
	}
	return r.At(t), true
}

// IntersectBounds tests the ray against a box with the slab method and
// returns the entry distance, or the exit distance when the ray starts
// inside.
func (r Ray) IntersectBounds(b trajectory.Bounds) (float32, bool) {
	origin, dir := r.Origin.Array(), r.Direction.Array()
	lo, hi := b.Min.Array(), b.Max.Array()

	tmin := float32(-gomath.MaxFloat32)
	tmax := float32(gomath.MaxFloat32)
	for axis := 0; axis < 3; axis++ {
		if dir[axis] == 0 {
			if origin[axis] < lo[axis] || origin[axis] > hi[axis] {
				return 0, false
			}
			continue
		}
		t1 := (lo[axis] - origin[axis]) / dir[axis]
		t2 := (hi[axis] - origin[axis]) / dir[axis]
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tmin = max(tmin, t1)
		tmax = min(tmax, t2)
	}

	if tmax < tmin || tmax < 0 {
		return 0, false
	}
	if tmin < 0 {
		return tmax, true
	}
	return tmin, true
}

// NearestFrame returns the path frame closest to p on the ground plane,
// or -1 for an empty path. Non-finite frames are ignored.
func NearestFrame(path []math.Vec3, p math.Vec3) int {
	best, bestDist := -1, float32(gomath.MaxFloat32)
	for i, q := range path {
		if !q.IsFinite() {
			continue
		}
		dx, dz := q.X-p.X, q.Z-p.Z
		if d := dx*dx + dz*dz; d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}
