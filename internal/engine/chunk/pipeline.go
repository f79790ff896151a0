package chunk

import (
	"github.com/Faultbox/chunkscape/internal/engine/terrain"
	"github.com/Faultbox/chunkscape/pkg/math"
)

// FrameParams are the per-frame camera and light inputs shared by every chunk.
type FrameParams struct {
	ViewProj       math.Mat4
	LightSpace     math.Mat4
	LightDir       math.Vec3
	LightIntensity math.Vec3
	Viewport       [4]int32 // Color pass viewport: x, y, width, height
}

// RenderContext carries the GPU state one pass hands to the next. A pass
// receives the context left by the previous pass and returns what it bound.
type RenderContext struct {
	Frame        FrameParams
	Program      uint32 // Program left active
	Target       uint32 // Framebuffer left bound, 0 for the default
	DepthTexture uint32 // Depth texture written by the depth pass
}

// Pipeline is the rendering state shared by every chunk: compiled programs
// and their uniform locations. It is created once and injected into the
// manager, which destroys it on Cleanup.
type Pipeline interface {
	// NewBuffers allocates the GPU objects for one chunk. The topology's
	// indices and UVs are uploaded once here.
	NewBuffers(topo *terrain.Topology) (Buffers, error)
	// DepthPass renders b from the light into its offscreen depth target.
	DepthPass(rc RenderContext, b Buffers) RenderContext
	// ColorPass renders b from the camera, sampling rc.DepthTexture.
	ColorPass(rc RenderContext, b Buffers) RenderContext
	// Destroy releases the shared programs.
	Destroy()
}

// Buffers are the GPU objects owned by one chunk.
type Buffers interface {
	// Upload replaces the vertex positions and normals.
	Upload(data *terrain.Data)
	// Release frees every GPU object.
	Release()
}
