// Package config handles roadgen configuration loading and management.
package config

import (
	"fmt"

	"github.com/Faultbox/ar-road/pkg/trajectory"
)

// Config holds all roadgen settings.
type Config struct {
	Trajectory TrajectoryConfig `yaml:"trajectory"`
	Input      InputConfig      `yaml:"input"`
	Viewer     ViewerConfig     `yaml:"viewer"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// TrajectoryConfig holds the road geometry settings.
type TrajectoryConfig struct {
	CameraHeight float32 `yaml:"camera_height"`
	// LeftOffset and RightOffset override the keyframed rail offsets when
	// non-zero.
	LeftOffset      float32    `yaml:"left_offset"`
	RightOffset     float32    `yaml:"right_offset"`
	Margin          float32    `yaml:"margin"`
	LeftHanded      bool       `yaml:"left_handed"`
	CurvatureWindow float64    `yaml:"curvature_window"`
	LeftKeyframes   []Keyframe `yaml:"left_keyframes,omitempty"`
	RightKeyframes  []Keyframe `yaml:"right_keyframes,omitempty"`
}

// Keyframe is one rail offset keyframe.
type Keyframe struct {
	Frame  int     `yaml:"frame"`
	Offset float32 `yaml:"offset"`
}

// InputConfig holds pose recording settings.
type InputConfig struct {
	PoseFile string `yaml:"pose_file"`
	// ReverseZ converts the recording from the capture device's
	// right-handed frame to the engine's left-handed one.
	ReverseZ bool `yaml:"reverse_z"`
}

// ViewerConfig holds preview window settings.
type ViewerConfig struct {
	Width      int  `yaml:"width"`
	Height     int  `yaml:"height"`
	Fullscreen bool `yaml:"fullscreen"`
	VSync      bool `yaml:"vsync"`
	// Samples is the MSAA sample count, 0 to disable.
	Samples int `yaml:"samples"`
	// FrameRate is the playback speed in recorded frames per second.
	FrameRate float64 `yaml:"frame_rate"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Trajectory: TrajectoryConfig{
			CameraHeight:    1.3,
			Margin:          trajectory.DefaultMargin,
			CurvatureWindow: trajectory.DefaultCurvatureWindow,
		},
		Input: InputConfig{
			ReverseZ: true,
		},
		Viewer: ViewerConfig{
			Width:     1280,
			Height:    720,
			VSync:     true,
			Samples:   4,
			FrameRate: 30,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// GeometryConfig maps the trajectory section onto the engine config.
func (c *Config) GeometryConfig() trajectory.Config {
	t := c.Trajectory
	return trajectory.Config{
		CameraHeight:    t.CameraHeight,
		Margin:          t.Margin,
		LeftHanded:      t.LeftHanded,
		CurvatureWindow: t.CurvatureWindow,
		LeftKeyframes:   keyframes(t.LeftKeyframes),
		RightKeyframes:  keyframes(t.RightKeyframes),
	}
}

// RibbonOptions returns whole-path ribbon options carrying the configured
// offset overrides.
func (c *Config) RibbonOptions() trajectory.RibbonOptions {
	opts := trajectory.WholePath()
	opts.LeftOffset = c.Trajectory.LeftOffset
	opts.RightOffset = c.Trajectory.RightOffset
	return opts
}

// Validate checks the settings that the engine does not check itself.
func (c *Config) Validate() error {
	if c.Viewer.Width <= 0 || c.Viewer.Height <= 0 {
		return fmt.Errorf("viewer size %dx%d must be positive", c.Viewer.Width, c.Viewer.Height)
	}
	if c.Viewer.Samples < 0 || c.Viewer.Samples > 16 {
		return fmt.Errorf("viewer samples %d out of range [0, 16]", c.Viewer.Samples)
	}
	if c.Viewer.FrameRate <= 0 {
		return fmt.Errorf("viewer frame rate %g must be positive", c.Viewer.FrameRate)
	}
	if err := c.GeometryConfig().Validate(); err != nil {
		return fmt.Errorf("trajectory: %w", err)
	}
	return nil
}

func keyframes(in []Keyframe) trajectory.Keyframes {
	if len(in) == 0 {
		return trajectory.Keyframes{}
	}
	out := trajectory.Keyframes{
		Frames:  make([]int, len(in)),
		Offsets: make([]float32, len(in)),
	}
	for i, k := range in {
		out.Frames[i] = k.Frame
		out.Offsets[i] = k.Offset
	}
	return out
}
