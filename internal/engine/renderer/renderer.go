// Package renderer draws the road preview with OpenGL.
package renderer

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/ar-road/internal/engine/shader"
	"github.com/Faultbox/ar-road/internal/logger"
	"github.com/Faultbox/ar-road/pkg/math"
)

// Config holds renderer configuration.
type Config struct {
	Width  int
	Height int
}

// Renderer owns the GL state for one preview window.
type Renderer struct {
	config  Config
	log     *zap.Logger
	program *shader.Program

	road    buffer
	path    buffer
	overlay buffer
	marker  buffer

	// Wireframe draws the road as lines.
	Wireframe bool
}

// New initialises OpenGL and compiles the preview shader.
// Must be called after the OpenGL context is created.
func New(cfg Config) (*Renderer, error) {
	r := &Renderer{config: cfg, log: logger.Named("renderer")}

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}
	r.log.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LEQUAL)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.Enable(gl.PROGRAM_POINT_SIZE)
	gl.Enable(gl.MULTISAMPLE)
	gl.ClearColor(0.08, 0.09, 0.11, 1.0)

	var err error
	r.program, err = shader.Compile(roadVertexShader, roadFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("road shader: %w", err)
	}

	r.road.mode = gl.TRIANGLES
	r.path.mode = gl.LINE_STRIP
	r.overlay.mode = gl.LINES
	r.marker.mode = gl.LINES
	for _, b := range []*buffer{&r.road, &r.path, &r.overlay, &r.marker} {
		b.init()
	}

	r.Resize(cfg.Width, cfg.Height)
	return r, nil
}

// Close frees all GL resources.
func (r *Renderer) Close() {
	r.log.Debug("closing renderer")
	for _, b := range []*buffer{&r.road, &r.path, &r.overlay, &r.marker} {
		b.delete()
	}
	if r.program != nil {
		r.program.Delete()
	}
}

// Resize handles window resize.
func (r *Renderer) Resize(width, height int) {
	r.config.Width = width
	r.config.Height = height
	gl.Viewport(0, 0, int32(width), int32(height))
	r.log.Debug("renderer resized", zap.Int("width", width), zap.Int("height", height))
}

// Aspect returns the viewport aspect ratio.
func (r *Renderer) Aspect() float32 {
	if r.config.Height == 0 {
		return 1
	}
	return float32(r.config.Width) / float32(r.config.Height)
}

// SetRoad uploads the road triangles as interleaved vertices and indices.
func (r *Renderer) SetRoad(vertices []float32, indices []uint32) {
	r.road.upload(vertices, indices, gl.STATIC_DRAW)
	r.log.Debug("road uploaded",
		zap.Int("vertices", len(vertices)/floatsPerVertex),
		zap.Int("triangles", len(indices)/3),
	)
}

// SetPath uploads the camera path line strip.
func (r *Renderer) SetPath(vertices []float32) {
	r.path.upload(vertices, nil, gl.STATIC_DRAW)
}

// SetOverlay uploads static helper lines such as the ground grid.
func (r *Renderer) SetOverlay(vertices []float32) {
	r.overlay.upload(vertices, nil, gl.STATIC_DRAW)
}

// SetMarker replaces the camera marker lines. Called every frame.
func (r *Renderer) SetMarker(vertices []float32) {
	r.marker.upload(vertices, nil, gl.DYNAMIC_DRAW)
}

// Draw renders a frame.
func (r *Renderer) Draw(viewProj math.Mat4) {
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	r.program.Use()
	r.program.SetMat4("uViewProj", viewProj)
	r.program.SetFloat("uPointSize", 1)

	r.program.SetFloat("uAlpha", 0.6)
	r.overlay.draw()

	r.program.SetFloat("uAlpha", 0.85)
	if r.Wireframe {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.LINE)
	}
	gl.Disable(gl.CULL_FACE)
	r.road.draw()
	gl.PolygonMode(gl.FRONT_AND_BACK, gl.FILL)

	r.program.SetFloat("uAlpha", 1)
	r.path.draw()
	gl.Disable(gl.DEPTH_TEST)
	r.marker.draw()
	gl.Enable(gl.DEPTH_TEST)
}

// ReadPixels reads the framebuffer back as bottom-up RGBA rows.
func (r *Renderer) ReadPixels() ([]byte, int, int) {
	w, h := r.config.Width, r.config.Height
	pixels := make([]byte, w*h*4)
	if len(pixels) == 0 {
		return pixels, w, h
	}
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(w), int32(h), gl.RGBA, gl.UNSIGNED_BYTE, unsafe.Pointer(&pixels[0]))
	return pixels, w, h
}

// buffer is a VAO with an interleaved position/colour VBO and an optional
// index buffer.
type buffer struct {
	vao, vbo, ebo uint32
	mode          uint32
	count         int32
	indexed       bool
}

func (b *buffer) init() {
	gl.GenVertexArrays(1, &b.vao)
	gl.BindVertexArray(b.vao)

	gl.GenBuffers(1, &b.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, b.vbo)
	gl.GenBuffers(1, &b.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, b.ebo)

	const stride = floatsPerVertex * 4
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, stride, 0)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, stride, 3*4)
	gl.EnableVertexAttribArray(1)

	gl.BindVertexArray(0)
}

func (b *buffer) upload(vertices []float32, indices []uint32, usage uint32) {
	gl.BindVertexArray(b.vao)
	defer gl.BindVertexArray(0)

	b.count = 0
	b.indexed = indices != nil
	if len(vertices) == 0 {
		return
	}

	gl.BindBuffer(gl.ARRAY_BUFFER, b.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*4, unsafe.Pointer(&vertices[0]), usage)

	if !b.indexed {
		b.count = int32(len(vertices) / floatsPerVertex)
		return
	}
	if len(indices) == 0 {
		return
	}
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(indices)*4, unsafe.Pointer(&indices[0]), usage)
	b.count = int32(len(indices))
}

func (b *buffer) draw() {
	if b.count == 0 {
		return
	}
	gl.BindVertexArray(b.vao)
	if b.indexed {
		gl.DrawElementsWithOffset(b.mode, b.count, gl.UNSIGNED_INT, 0)
	} else {
		gl.DrawArrays(b.mode, 0, b.count)
	}
	gl.BindVertexArray(0)
}

func (b *buffer) delete() {
	if b.vao != 0 {
		gl.DeleteVertexArrays(1, &b.vao)
	}
	if b.vbo != 0 {
		gl.DeleteBuffers(1, &b.vbo)
	}
	if b.ebo != 0 {
		gl.DeleteBuffers(1, &b.ebo)
	}
}
