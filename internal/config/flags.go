package config

import (
	"flag"
	"strconv"
)

// Flags holds command-line overrides. Register binds them to a subcommand's
// flag set; unset flags leave the loaded config untouched.
type Flags struct {
	Config string
	Debug  bool
	Pose   string

	// Options with a meaningful zero value are tracked through Set so an
	// explicit -margin=0 still overrides the file.
	leftHanded   optionalBool
	margin       optionalFloat
	cameraHeight optionalFloat

	Width  int
	Height int
}

// Register adds the flags to fs.
func (f *Flags) Register(fs *flag.FlagSet) {
	fs.StringVar(&f.Config, "config", "", "Path to config file")
	fs.BoolVar(&f.Debug, "debug", false, "Enable debug logging")
	fs.StringVar(&f.Pose, "pose", "", "Path to the pose recording")
	fs.Var(&f.leftHanded, "left-handed", "Bias the default road width to the right of the path")
	fs.Var(&f.margin, "margin", "Extra width added to both sides of the road")
	fs.Var(&f.cameraHeight, "camera-height", "Height of the camera above the ground")
	fs.IntVar(&f.Width, "width", 0, "Viewer window width")
	fs.IntVar(&f.Height, "height", 0, "Viewer window height")
}

// apply writes the flag overrides into cfg.
func (f *Flags) apply(cfg *Config) {
	if f.Debug {
		cfg.Logging.Level = "debug"
	}
	if f.Pose != "" {
		cfg.Input.PoseFile = f.Pose
	}
	if f.leftHanded.set {
		cfg.Trajectory.LeftHanded = f.leftHanded.value
	}
	if f.margin.set {
		cfg.Trajectory.Margin = f.margin.value
	}
	if f.cameraHeight.set {
		cfg.Trajectory.CameraHeight = f.cameraHeight.value
	}
	if f.Width > 0 {
		cfg.Viewer.Width = f.Width
	}
	if f.Height > 0 {
		cfg.Viewer.Height = f.Height
	}
}

type optionalBool struct {
	value bool
	set   bool
}

func (b *optionalBool) String() string { return strconv.FormatBool(b.value) }

func (b *optionalBool) Set(s string) error {
	v, err := strconv.ParseBool(s)
	if err != nil {
		return err
	}
	b.value, b.set = v, true
	return nil
}

// IsBoolFlag lets -left-handed be given without a value.
func (b *optionalBool) IsBoolFlag() bool { return true }

type optionalFloat struct {
	value float32
	set   bool
}

func (f *optionalFloat) String() string {
	return strconv.FormatFloat(float64(f.value), 'g', -1, 32)
}

func (f *optionalFloat) Set(s string) error {
	v, err := strconv.ParseFloat(s, 32)
	if err != nil {
		return err
	}
	f.value, f.set = float32(v), true
	return nil
}
