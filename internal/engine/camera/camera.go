// Package camera provides the preview camera.
package camera

import (
	gomath "math"

	"github.com/Faultbox/ar-road/pkg/math"
	"github.com/Faultbox/ar-road/pkg/trajectory"
)

// OrbitCamera orbits around a center point.
type OrbitCamera struct {
	Center math.Vec3

	// Spherical coordinates
	Distance float32
	Pitch    float32 // radians above the horizon
	Yaw      float32 // radians around +Y

	MinDistance float32
	MaxDistance float32
	MinPitch    float32
	MaxPitch    float32

	DragSensitivity float32
	ZoomSensitivity float32
}

// NewOrbitCamera creates an orbit camera sized for a walked path of a few
// hundred metres.
func NewOrbitCamera() *OrbitCamera {
	return &OrbitCamera{
		Distance:        30,
		Pitch:           0.6,
		MinDistance:     2,
		MaxDistance:     2000,
		MinPitch:        0.05,
		MaxPitch:        1.55,
		DragSensitivity: 0.005,
		ZoomSensitivity: 0.1,
	}
}

// Position returns the camera position in world space.
func (c *OrbitCamera) Position() math.Vec3 {
	cosP := gomath.Cos(float64(c.Pitch))
	return c.Center.Add(math.Vec3{
		X: c.Distance * float32(cosP*gomath.Sin(float64(c.Yaw))),
		Y: c.Distance * float32(gomath.Sin(float64(c.Pitch))),
		Z: c.Distance * float32(cosP*gomath.Cos(float64(c.Yaw))),
	})
}

// ViewMatrix returns the view matrix for this camera.
func (c *OrbitCamera) ViewMatrix() math.Mat4 {
	return math.LookAt(c.Position(), c.Center, math.Up)
}

// HandleDrag updates rotation based on mouse drag delta.
func (c *OrbitCamera) HandleDrag(deltaX, deltaY float32) {
	c.Yaw -= deltaX * c.DragSensitivity
	c.Pitch = clamp(c.Pitch+deltaY*c.DragSensitivity, c.MinPitch, c.MaxPitch)
}

// HandleZoom updates distance based on scroll wheel delta.
func (c *OrbitCamera) HandleZoom(delta float32) {
	c.Distance = clamp(c.Distance-delta*c.Distance*c.ZoomSensitivity, c.MinDistance, c.MaxDistance)
}

// HandleMovement pans the center on the ground plane relative to the
// current yaw. Speed scales with distance.
func (c *OrbitCamera) HandleMovement(forward, right, up float32) {
	speed := c.Distance * 0.01
	sin := float32(gomath.Sin(float64(c.Yaw)))
	cos := float32(gomath.Cos(float64(c.Yaw)))

	// The camera looks along -(sin, cos) on the ground plane.
	c.Center.X += (-sin*forward + cos*right) * speed
	c.Center.Z += (-cos*forward - sin*right) * speed
	c.Center.Y += up * speed
}

// FitToBounds centers the camera on b and backs off far enough to see it.
func (c *OrbitCamera) FitToBounds(b trajectory.Bounds) {
	c.Center = b.Min.Add(b.Max).Scale(0.5)

	size := max(b.Max.X-b.Min.X, b.Max.Z-b.Min.Z)
	c.Distance = clamp(size*0.9, c.MinDistance, c.MaxDistance)
	c.Pitch = clamp(0.6, c.MinPitch, c.MaxPitch)
	c.Yaw = 0
}

// Follow moves the orbit center to a point without changing the view angle.
func (c *OrbitCamera) Follow(p math.Vec3) {
	c.Center = p
}

func clamp(v, lo, hi float32) float32 {
	return min(max(v, lo), hi)
}
