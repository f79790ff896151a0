// Package texture loads ground textures and uploads them to OpenGL.
package texture

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg" // Register JPEG decoder
	_ "image/png"  // Register PNG decoder
	"math/rand"
	"os"

	_ "golang.org/x/image/bmp" // Register BMP decoder
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff" // Register TIFF decoder
)

// MaxSize is the largest edge kept when loading; bigger images are scaled down.
const MaxSize = 2048

// Load decodes an image file (PNG, JPEG, BMP or TIFF) into RGBA with rows
// flipped for OpenGL's bottom-left origin.
func Load(path string) (*image.RGBA, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read texture: %w", err)
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}

	return ToRGBA(Fit(img, MaxSize), true), nil
}

// Fit scales img down so neither edge exceeds maxSize, keeping its aspect.
// Images that already fit are returned unchanged.
func Fit(img image.Image, maxSize int) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= maxSize && h <= maxSize {
		return img
	}

	if w >= h {
		h = max(1, h*maxSize/w)
		w = maxSize
	} else {
		w = max(1, w*maxSize/h)
		h = maxSize
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}

// ToRGBA converts any image to *image.RGBA anchored at the origin,
// optionally flipping it vertically.
func ToRGBA(img image.Image, flipY bool) *image.RGBA {
	b := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)

	if flipY {
		flipRows(rgba)
	}
	return rgba
}

func flipRows(img *image.RGBA) {
	h := img.Bounds().Dy()
	row := img.Bounds().Dx() * 4
	tmp := make([]byte, row)

	for y := 0; y < h/2; y++ {
		top := img.Pix[y*img.Stride : y*img.Stride+row]
		bottom := img.Pix[(h-1-y)*img.Stride : (h-1-y)*img.Stride+row]
		copy(tmp, top)
		copy(top, bottom)
		copy(bottom, tmp)
	}
}

// Grass generates a tileable speckled green texture, used when no ground
// texture is configured or it fails to load.
func Grass(size int, seed int64) *image.RGBA {
	rng := rand.New(rand.NewSource(seed))
	img := image.NewRGBA(image.Rect(0, 0, size, size))

	base := color.RGBA{R: 72, G: 118, B: 48, A: 255}
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			shade := rng.Intn(41) - 20
			blade := 0
			if rng.Intn(12) == 0 {
				blade = 25
			}
			img.SetRGBA(x, y, color.RGBA{
				R: clampByte(int(base.R) + shade/2),
				G: clampByte(int(base.G) + shade + blade),
				B: clampByte(int(base.B) + shade/2),
				A: 255,
			})
		}
	}
	return img
}

func clampByte(v int) uint8 {
	return uint8(min(max(v, 0), 255))
}
