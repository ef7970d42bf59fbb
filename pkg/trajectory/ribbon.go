package trajectory

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/ar-road/pkg/math"
)

// RibbonOptions selects the frames and widths of a ribbon build.
type RibbonOptions struct {
	// StartFrame and EndFrame bound the build, both inclusive.
	// A negative EndFrame means the last frame of the path.
	StartFrame int
	EndFrame   int

	// LeftOffset and RightOffset replace the keyframed rail offsets when
	// non-zero.
	LeftOffset  float32
	RightOffset float32

	// Margin replaces Config.Margin when set.
	Margin *float32

	// Segment numbers the mesh name.
	Segment int
	// Material is passed through to the mesh untouched.
	Material any
}

// WholePath returns options covering every frame with the keyframed offsets.
func WholePath() RibbonOptions {
	return RibbonOptions{EndFrame: -1}
}

// Bounds is an axis-aligned bounding box.
type Bounds struct {
	Min math.Vec3
	Max math.Vec3
}

// Mesh is a triangulated quad strip between the left and right rails.
// Vertices alternate left, right per retained frame.
type Mesh struct {
	Name     string
	Vertices []math.Vec3
	Indices  []uint32
	Bounds   Bounds
	Material any

	// Frames holds the path frame of each left, right vertex pair.
	Frames []int
	// SkippedFrames lists frames dropped because a rail vertex was not finite.
	SkippedFrames []int
}

// TriangleCount returns the number of triangles in the index buffer.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// VertexData flattens the vertex buffer to x, y, z triples for GPU upload.
func (m *Mesh) VertexData() []float32 {
	data := make([]float32, 0, len(m.Vertices)*3)
	for _, v := range m.Vertices {
		data = append(data, v.X, v.Y, v.Z)
	}
	return data
}

// BuildRibbon walks the selected frames and emits the road mesh. Each call
// returns a fresh mesh; nothing is shared with earlier builds.
func (g *PathGeometry) BuildRibbon(opts RibbonOptions) (*Mesh, error) {
	n := len(g.positions)
	start, end := opts.StartFrame, opts.EndFrame
	if end < 0 {
		end = n - 1
	}
	if start < 0 || end >= n || start > end {
		return nil, fmt.Errorf("%w: [%d, %d] for %d frames", ErrFrameRange, start, end, n)
	}

	margin := g.cfg.Margin
	if opts.Margin != nil {
		margin = *opts.Margin
	}

	frames := end - start + 1
	strip := ribbonStrip{
		vertices: make([]math.Vec3, 0, frames*2),
		indices:  make([]uint32, 0, (frames-1)*6),
		frames:   make([]int, 0, frames),
	}
	for f := start; f <= end; f++ {
		left, right := g.railVertices(f, opts.LeftOffset, opts.RightOffset, margin)
		strip.add(f, left, right)
	}

	if len(strip.skipped) > 0 {
		g.log.Warn("ribbon frames skipped",
			zap.Int("count", len(strip.skipped)),
			zap.Ints("frames", strip.skipped),
		)
	}
	g.log.Debug("ribbon built",
		zap.Int("segment", opts.Segment),
		zap.Int("vertices", len(strip.vertices)),
		zap.Int("triangles", len(strip.indices)/3),
	)

	return &Mesh{
		Name:          fmt.Sprintf("Segment %d", opts.Segment),
		Vertices:      strip.vertices,
		Indices:       strip.indices,
		Bounds:        boundsOf(strip.vertices),
		Material:      opts.Material,
		Frames:        strip.frames,
		SkippedFrames: strip.skipped,
	}, nil
}

// railVertices places the left and right rail points for a frame. The
// camera position is dropped by the camera height along the frame's up
// axis, and both rails are flattened to that height.
func (g *PathGeometry) railVertices(frame int, leftOffset, rightOffset, margin float32) (left, right math.Vec3) {
	q := g.orientation.At(frame)
	base := g.Position(frame).Sub(q.Rotate(math.Up).Scale(g.cfg.CameraHeight))
	side := q.Rotate(math.Left)

	defLeft, defRight := g.SideOffsets(float32(frame))
	if leftOffset == 0 {
		leftOffset = defLeft
	}
	if rightOffset == 0 {
		rightOffset = defRight
	}

	left = base.Add(side.Scale(leftOffset + margin))
	right = base.Sub(side.Scale(rightOffset + margin))
	left.Y, right.Y = base.Y, base.Y
	return left, right
}

// ribbonStrip accumulates rail pairs into a quad strip, stitching each
// accepted pair to the previously accepted one.
type ribbonStrip struct {
	vertices []math.Vec3
	indices  []uint32
	frames   []int
	skipped  []int
}

func (s *ribbonStrip) add(frame int, left, right math.Vec3) {
	if !left.IsFinite() || !right.IsFinite() {
		s.skipped = append(s.skipped, frame)
		return
	}
	s.vertices = append(s.vertices, left, right)
	s.frames = append(s.frames, frame)
	n := uint32(len(s.vertices))
	if n < 4 {
		return
	}
	s.indices = append(s.indices,
		n-3, n-4, n-1,
		n-4, n-2, n-1,
	)
}

func boundsOf(vertices []math.Vec3) Bounds {
	if len(vertices) == 0 {
		return Bounds{}
	}
	b := Bounds{Min: vertices[0], Max: vertices[0]}
	for _, v := range vertices[1:] {
		b.Min = math.Vec3{X: min(b.Min.X, v.X), Y: min(b.Min.Y, v.Y), Z: min(b.Min.Z, v.Z)}
		b.Max = math.Vec3{X: max(b.Max.X, v.X), Y: max(b.Max.Y, v.Y), Z: max(b.Max.Z, v.Z)}
	}
	return b
}
