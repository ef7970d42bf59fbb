// Package viewer runs the interactive road preview: the ribbon mesh, the
// recorded camera path and a marker following the camera through time.
package viewer

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/ar-road/internal/engine/camera"
	"github.com/Faultbox/ar-road/internal/engine/debug"
	"github.com/Faultbox/ar-road/internal/engine/input"
	"github.com/Faultbox/ar-road/internal/engine/picking"
	"github.com/Faultbox/ar-road/internal/engine/renderer"
	"github.com/Faultbox/ar-road/internal/engine/window"
	"github.com/Faultbox/ar-road/internal/logger"
	"github.com/Faultbox/ar-road/internal/pose"
	"github.com/Faultbox/ar-road/pkg/math"
	"github.com/Faultbox/ar-road/pkg/trajectory"
)

// Config holds viewer configuration.
type Config struct {
	Title      string
	Width      int
	Height     int
	Fullscreen bool
	VSync      bool
	Samples    int
	// FrameRate is the playback speed. Zero means DefaultFrameRate.
	FrameRate float64

	// ScreenshotDir receives F12 captures. Empty means the working directory.
	ScreenshotDir    string
	ScreenshotFormat string
}

// Scene is what the viewer shows.
type Scene struct {
	Geometry  *trajectory.PathGeometry
	Mesh      *trajectory.Mesh
	Recording *pose.Recording
}

// Viewer is the preview application.
type Viewer struct {
	config   Config
	log      *zap.Logger
	scene    Scene
	running  bool
	follow   bool
	window   *window.Window
	renderer *renderer.Renderer
	input    *input.Input
	camera   *camera.OrbitCamera
	playback *Playback
	shots    *debug.Screenshots
}

// New opens the window and uploads the scene.
func New(cfg Config, scene Scene) (*Viewer, error) {
	v := &Viewer{
		config: cfg,
		log:    logger.Named("viewer"),
		scene:  scene,
		camera: camera.NewOrbitCamera(),
		input:  input.New(),
		shots:  debug.NewScreenshots(cfg.ScreenshotDir, "road"),
	}
	v.shots.Format = cfg.ScreenshotFormat
	v.playback = NewPlayback(scene.Geometry.FrameCount(), cfg.FrameRate)

	var err error
	v.window, err = window.New(window.Config{
		Title:      cfg.Title,
		Width:      cfg.Width,
		Height:     cfg.Height,
		Fullscreen: cfg.Fullscreen,
		VSync:      cfg.VSync,
		Samples:    cfg.Samples,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	// The renderer needs the GL context the window just created.
	w, h := v.window.DrawableSize()
	v.renderer, err = renderer.New(renderer.Config{Width: w, Height: h})
	if err != nil {
		v.window.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	v.upload()
	v.camera.FitToBounds(scene.Mesh.Bounds)

	v.log.Info("viewer ready",
		zap.Int("frames", scene.Geometry.FrameCount()),
		zap.Int("triangles", scene.Mesh.TriangleCount()),
	)
	return v, nil
}

func (v *Viewer) upload() {
	g, mesh := v.scene.Geometry, v.scene.Mesh

	full := renderer.MaxAbsCurvature(g.CurvatureTrack())
	v.renderer.SetRoad(renderer.RoadVertices(mesh, g.CurvatureTrack(), full), mesh.Indices)

	path := make([]math.Vec3, g.FrameCount())
	for i := range path {
		path[i] = g.Position(i)
	}
	v.renderer.SetPath(renderer.PathVertices(path, renderer.ColorPath))

	overlay := renderer.LineVertices(debug.GroundGrid(mesh.Bounds, mesh.Bounds.Min.Y-0.01, 5), renderer.ColorGrid)
	overlay = append(overlay, renderer.LineVertices(debug.BoundsWireframe(mesh.Bounds, 0.5), renderer.ColorBounds)...)
	v.renderer.SetOverlay(overlay)
}

// Run starts the main loop and returns when the window is closed.
func (v *Viewer) Run() error {
	v.running = true
	lastTime := time.Now()
	frameCount := 0
	fpsTimer := lastTime

	for v.running {
		now := time.Now()
		dt := now.Sub(lastTime).Seconds()
		lastTime = now

		v.handleInput(v.input.Poll())
		v.update(dt)
		v.render()
		v.window.SwapBuffers()

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			v.window.SetTitle(fmt.Sprintf("%s | frame %.0f | %d fps", v.config.Title, v.playback.Frame(), frameCount))
			frameCount = 0
			fpsTimer = time.Now()
		}
	}
	return nil
}

func (v *Viewer) handleInput(f *input.Frame) {
	if f.Quit {
		v.running = false
		return
	}
	if f.Resized {
		w, h := v.window.DrawableSize()
		v.renderer.Resize(w, h)
	}

	v.camera.HandleDrag(f.DragX, f.DragY)
	v.camera.HandleZoom(f.Zoom)
	if !v.follow {
		v.camera.HandleMovement(f.Forward, f.Right, f.Up)
	}
	if f.Pick {
		v.pick(f.PickX, f.PickY)
	}

	for _, a := range f.Actions {
		switch a {
		case input.ActionTogglePlay:
			v.playback.Toggle()
		case input.ActionStepForward:
			v.playback.Step(1)
		case input.ActionStepBack:
			v.playback.Step(-1)
		case input.ActionResetView:
			v.follow = false
			v.camera.FitToBounds(v.scene.Mesh.Bounds)
		case input.ActionToggleFollow:
			v.follow = !v.follow
		case input.ActionToggleWireframe:
			v.renderer.Wireframe = !v.renderer.Wireframe
		case input.ActionScreenshot:
			v.screenshot()
		}
	}
}

func (v *Viewer) update(dt float64) {
	v.playback.Advance(dt)
	pos, rot := v.cameraPose(v.playback.Frame())
	if v.follow {
		v.camera.Follow(pos)
	}
	v.renderer.SetMarker(renderer.MarkerVertices(pos, rot, 1.5))
}

// cameraPose returns the recorded camera pose at a frame, falling back to
// the path and its facing when no recording is attached.
func (v *Viewer) cameraPose(frame float32) (math.Vec3, math.Quat) {
	if rec := v.scene.Recording; rec != nil && rec.HasRotations() {
		return rec.CameraAt(frame)
	}
	g := v.scene.Geometry
	i := int(frame)
	return g.Position(i), g.Orientation(i)
}

func (v *Viewer) viewProj() math.Mat4 {
	proj := math.Perspective(0.9, v.renderer.Aspect(), 0.1, 5000)
	return proj.Mul(v.camera.ViewMatrix())
}

func (v *Viewer) render() {
	v.renderer.Draw(v.viewProj())
}

// pick seeks playback to the path frame under the cursor.
func (v *Viewer) pick(x, y float32) {
	inv, ok := v.viewProj().Inverse()
	if !ok {
		return
	}
	w, h := v.window.Size()
	ray := picking.ScreenToRay(x, y, float32(w), float32(h), inv)

	bounds := v.scene.Mesh.Bounds
	if _, hit := ray.IntersectBounds(bounds); !hit {
		return
	}
	ground, ok := ray.IntersectPlaneY((bounds.Min.Y + bounds.Max.Y) / 2)
	if !ok {
		return
	}
	frame := picking.NearestFrame(v.scene.Geometry.SmoothedPath(), ground)
	if frame < 0 {
		return
	}
	v.playback.Seek(frame)
	v.log.Debug("frame picked", zap.Int("frame", frame), zap.Float64("distance", v.scene.Geometry.ArcLength().DistanceAt(frame)))
}

func (v *Viewer) screenshot() {
	pixels, w, h := v.renderer.ReadPixels()
	path, err := v.shots.SavePixels(pixels, w, h)
	if err != nil {
		v.log.Error("screenshot failed", zap.Error(err))
		return
	}
	v.log.Info("screenshot saved", zap.String("path", path))
}

// Close releases the renderer and the window.
func (v *Viewer) Close() {
	if v.renderer != nil {
		v.renderer.Close()
	}
	if v.window != nil {
		v.window.Close()
	}
}
