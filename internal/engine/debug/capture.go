// Package debug writes frame captures to disk for inspection.
package debug

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"time"
)

// Capture saves screenshots and depth buffers as PNG files.
type Capture struct {
	outputDir string
	now       func() time.Time
}

// NewCapture creates a capture handler writing into outputDir.
// An empty outputDir writes to the working directory.
func NewCapture(outputDir string) *Capture {
	return &Capture{
		outputDir: outputDir,
		now:       time.Now,
	}
}

// SaveDepth writes a depth buffer as a grayscale PNG named depth_<kind>_<timestamp>.png.
// depth holds width*height values in [0, 1] with OpenGL's bottom-up row order.
func (c *Capture) SaveDepth(kind string, depth []float32, width, height int) (string, error) {
	if len(depth) != width*height {
		return "", fmt.Errorf("depth data size mismatch: expected %d, got %d", width*height, len(depth))
	}

	img := image.NewGray(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		src := depth[(height-1-y)*width : (height-y)*width] // Flip Y
		dst := img.Pix[y*img.Stride : y*img.Stride+width]
		for x, d := range src {
			dst[x] = depthToByte(d)
		}
	}

	return c.write("depth_"+kind, img)
}

// SaveColor writes RGBA pixels read back from OpenGL as a PNG screenshot.
func (c *Capture) SaveColor(pixels []byte, width, height int) (string, error) {
	if len(pixels) != width*height*4 {
		return "", fmt.Errorf("pixel data size mismatch: expected %d, got %d", width*height*4, len(pixels))
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	rowSize := width * 4
	for y := 0; y < height; y++ {
		srcOffset := (height - 1 - y) * rowSize
		copy(img.Pix[y*img.Stride:y*img.Stride+rowSize], pixels[srcOffset:srcOffset+rowSize])
	}

	return c.write("screenshot", img)
}

func (c *Capture) write(prefix string, img image.Image) (string, error) {
	if c.outputDir != "" {
		if err := os.MkdirAll(c.outputDir, 0755); err != nil {
			return "", fmt.Errorf("creating output dir: %w", err)
		}
	}

	timestamp := c.now().Format("2006-01-02_15-04-05.000")
	filename := filepath.Join(c.outputDir, fmt.Sprintf("%s_%s.png", prefix, timestamp))

	file, err := os.Create(filename)
	if err != nil {
		return "", fmt.Errorf("creating file: %w", err)
	}

	if err := png.Encode(file, img); err != nil {
		file.Close()
		return "", fmt.Errorf("encoding PNG: %w", err)
	}
	if err := file.Close(); err != nil {
		return "", fmt.Errorf("closing file: %w", err)
	}

	return filename, nil
}

func depthToByte(d float32) uint8 {
	switch {
	case d <= 0:
		return 0
	case d >= 1:
		return 255
	}
	return uint8(d*255 + 0.5)
}
