package debug

import (
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedCapture(dir string) *Capture {
	c := NewCapture(dir)
	c.now = func() time.Time { return time.Date(2024, 5, 1, 12, 30, 0, 0, time.UTC) }
	return c
}

func decodePNG(t *testing.T, path string) image.Image {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	img, err := png.Decode(f)
	require.NoError(t, err)
	return img
}

func TestSaveDepth(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "dumps")
	c := fixedCapture(dir)

	// Bottom row (first in GL order) is near, top row is far.
	depth := []float32{
		0, 0, 0,
		1, 1, 1,
	}
	path, err := c.SaveDepth("light", depth, 3, 2)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "depth_light_2024-05-01_12-30-00.000.png"), path)

	img := decodePNG(t, path)
	require.Equal(t, image.Rect(0, 0, 3, 2), img.Bounds())

	gray, ok := img.(*image.Gray)
	require.True(t, ok, "expected grayscale PNG, got %T", img)
	assert.EqualValues(t, 255, gray.GrayAt(0, 0).Y)
	assert.EqualValues(t, 0, gray.GrayAt(2, 1).Y)
}

func TestSaveDepthClampsRange(t *testing.T) {
	c := fixedCapture(t.TempDir())

	path, err := c.SaveDepth("camera", []float32{-0.5, 0.5, 2}, 3, 1)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(filepath.Base(path), "depth_camera_"))

	gray := decodePNG(t, path).(*image.Gray)
	assert.EqualValues(t, 0, gray.GrayAt(0, 0).Y)
	assert.InDelta(t, 127, int(gray.GrayAt(1, 0).Y), 1)
	assert.EqualValues(t, 255, gray.GrayAt(2, 0).Y)
}

func TestSaveDepthSizeMismatch(t *testing.T) {
	c := fixedCapture(t.TempDir())
	_, err := c.SaveDepth("light", make([]float32, 5), 3, 2)
	assert.Error(t, err)
}

func TestSaveColorFlipsRows(t *testing.T) {
	c := fixedCapture(t.TempDir())

	pixels := []byte{
		255, 0, 0, 255, // bottom row: red
		0, 0, 255, 255, // top row: blue
	}
	path, err := c.SaveColor(pixels, 1, 2)
	require.NoError(t, err)

	img := decodePNG(t, path)
	r, _, b, _ := img.At(0, 0).RGBA()
	assert.Zero(t, r)
	assert.NotZero(t, b)

	r, _, _, _ = img.At(0, 1).RGBA()
	assert.NotZero(t, r)
}

func TestSaveColorSizeMismatch(t *testing.T) {
	c := fixedCapture(t.TempDir())
	_, err := c.SaveColor(make([]byte, 7), 1, 2)
	assert.Error(t, err)
}
