// Package debug builds helper geometry for the road preview.
package debug

import (
	gomath "math"

	"github.com/Faultbox/ar-road/pkg/math"
	"github.com/Faultbox/ar-road/pkg/trajectory"
)

// BoundsWireframeVertexCount is the number of vertices for a box wireframe (12 edges × 2).
const BoundsWireframeVertexCount = 24

// BoundsWireframe returns line vertices outlining b grown by padding on
// every side, as x, y, z triples.
func BoundsWireframe(b trajectory.Bounds, padding float32) []float32 {
	lo := b.Min.Sub(math.Vec3{X: padding, Y: padding, Z: padding})
	hi := b.Max.Add(math.Vec3{X: padding, Y: padding, Z: padding})

	corner := func(i int) math.Vec3 {
		c := lo
		if i&1 != 0 {
			c.X = hi.X
		}
		if i&2 != 0 {
			c.Y = hi.Y
		}
		if i&4 != 0 {
			c.Z = hi.Z
		}
		return c
	}

	// Corners that differ in exactly one bit share an edge.
	out := make([]float32, 0, BoundsWireframeVertexCount*3)
	for i := range 8 {
		for _, bit := range []int{1, 2, 4} {
			if i&bit != 0 {
				continue
			}
			a, c := corner(i), corner(i|bit)
			out = append(out, a.X, a.Y, a.Z, c.X, c.Y, c.Z)
		}
	}
	return out
}

// GroundGrid returns line vertices for a square grid on the plane y that
// covers b's footprint, snapped outwards to multiples of spacing.
func GroundGrid(b trajectory.Bounds, y, spacing float32) []float32 {
	if !(spacing > 0) {
		return nil
	}
	snap := func(v float32, up bool) float32 {
		f := float64(v / spacing)
		if up {
			return float32(gomath.Ceil(f)) * spacing
		}
		return float32(gomath.Floor(f)) * spacing
	}
	minX, maxX := snap(b.Min.X, false), snap(b.Max.X, true)
	minZ, maxZ := snap(b.Min.Z, false), snap(b.Max.Z, true)

	nx := int(gomath.Round(float64((maxX-minX)/spacing))) + 1
	nz := int(gomath.Round(float64((maxZ-minZ)/spacing))) + 1
	out := make([]float32, 0, (nx+nz)*6)
	for i := range nx {
		x := minX + float32(i)*spacing
		out = append(out, x, y, minZ, x, y, maxZ)
	}
	for i := range nz {
		z := minZ + float32(i)*spacing
		out = append(out, minX, y, z, maxX, y, z)
	}
	return out
}
