// Package renderer owns the OpenGL context state shared by every pass.
package renderer

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/chunkscape/internal/logger"
	"github.com/go-gl/gl/v4.1-core/gl"
)

// Config holds renderer configuration.
type Config struct {
	Width  int // Drawable size in pixels
	Height int
}

// Renderer sets up global GL state and frames each draw.
type Renderer struct {
	config Config
	log    *zap.Logger
}

// New creates a new renderer.
// IMPORTANT: Must be called AFTER OpenGL context is created!
func New(cfg Config) (*Renderer, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	r := &Renderer{
		config: cfg,
		log:    logger.Named("renderer"),
	}

	r.log.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
		zap.String("glsl", gl.GoStr(gl.GetString(gl.SHADING_LANGUAGE_VERSION))),
	)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.Enable(gl.CULL_FACE)
	gl.CullFace(gl.BACK)
	gl.ClearColor(0.2, 0.2, 0.25, 1.0)
	gl.Viewport(0, 0, int32(cfg.Width), int32(cfg.Height))

	return r, nil
}

// Close releases renderer state.
func (r *Renderer) Close() {
	r.log.Info("closing renderer")
}

// Resize handles window resize.
func (r *Renderer) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	r.config.Width = width
	r.config.Height = height
	gl.Viewport(0, 0, int32(width), int32(height))
	r.log.Debug("renderer resized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
}

// Viewport returns the screen viewport as x, y, width, height.
func (r *Renderer) Viewport() [4]int32 {
	return [4]int32{0, 0, int32(r.config.Width), int32(r.config.Height)}
}

// Begin starts a new frame.
func (r *Renderer) Begin() {
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	gl.Viewport(0, 0, int32(r.config.Width), int32(r.config.Height))
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// End finishes the current frame.
func (r *Renderer) End() {
	gl.BindVertexArray(0)
	gl.UseProgram(0)
}

// ReadDepth reads the default framebuffer's depth buffer.
// Rows are bottom-up as OpenGL returns them.
func (r *Renderer) ReadDepth() []float32 {
	w, h := int32(r.config.Width), int32(r.config.Height)
	depth := make([]float32, w*h)
	if len(depth) == 0 {
		return depth
	}

	gl.BindFramebuffer(gl.READ_FRAMEBUFFER, 0)
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, w, h, gl.DEPTH_COMPONENT, gl.FLOAT, gl.Ptr(depth))
	return depth
}

// ReadPixels reads the default framebuffer's color buffer as RGBA bytes,
// bottom row first.
func (r *Renderer) ReadPixels() []byte {
	w, h := int32(r.config.Width), int32(r.config.Height)
	pixels := make([]byte, w*h*4)
	if len(pixels) == 0 {
		return pixels
	}

	gl.BindFramebuffer(gl.READ_FRAMEBUFFER, 0)
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, w, h, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	return pixels
}

// Size returns the drawable size in pixels.
func (r *Renderer) Size() (int, int) {
	return r.config.Width, r.config.Height
}
