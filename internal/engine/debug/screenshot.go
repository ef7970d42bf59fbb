package debug

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/image/bmp"
)

// Screenshot formats.
const (
	FormatPNG = "png"
	FormatBMP = "bmp"
)

// Screenshots writes frame captures of the preview.
type Screenshots struct {
	Dir    string
	Prefix string
	// Format is FormatPNG or FormatBMP. Empty means PNG.
	Format string

	// now is replaced in tests.
	now func() time.Time
}

// NewScreenshots returns a writer saving into dir.
func NewScreenshots(dir, prefix string) *Screenshots {
	return &Screenshots{Dir: dir, Prefix: prefix, now: time.Now}
}

// Filename returns the path the next capture will be written to.
func (s *Screenshots) Filename() string {
	name := fmt.Sprintf("%s_%s.%s", s.Prefix, s.now().Format("2006-01-02_15-04-05"), s.format())
	if s.Dir == "" {
		return name
	}
	return filepath.Join(s.Dir, name)
}

// SavePixels saves bottom-up RGBA pixels, as read back from the default
// framebuffer, and returns the file written.
func (s *Screenshots) SavePixels(pixels []byte, width, height int) (string, error) {
	img, err := FlipRGBA(pixels, width, height)
	if err != nil {
		return "", err
	}
	encode, err := encoder(s.format())
	if err != nil {
		return "", err
	}

	if s.Dir != "" {
		if err := os.MkdirAll(s.Dir, 0755); err != nil {
			return "", fmt.Errorf("creating screenshot dir: %w", err)
		}
	}

	path := s.Filename()
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating file: %w", err)
	}
	defer f.Close()

	if err := encode(f, img); err != nil {
		return "", fmt.Errorf("encoding %s: %w", s.format(), err)
	}
	return path, nil
}

func (s *Screenshots) format() string {
	if s.Format == "" {
		return FormatPNG
	}
	return s.Format
}

func encoder(format string) (func(io.Writer, image.Image) error, error) {
	switch format {
	case FormatPNG:
		return png.Encode, nil
	case FormatBMP:
		return bmp.Encode, nil
	}
	return nil, fmt.Errorf("unknown screenshot format %q", format)
}

// FlipRGBA copies bottom-up RGBA rows into a top-down image.
func FlipRGBA(pixels []byte, width, height int) (*image.RGBA, error) {
	if len(pixels) != width*height*4 {
		return nil, fmt.Errorf("pixel data size mismatch: expected %d, got %d", width*height*4, len(pixels))
	}
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	row := width * 4
	for y := range height {
		src := (height - 1 - y) * row
		copy(img.Pix[y*img.Stride:y*img.Stride+row], pixels[src:src+row])
	}
	return img, nil
}
