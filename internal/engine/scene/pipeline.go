// Package scene renders streamed terrain chunks with OpenGL.
package scene

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/chunkscape/internal/engine/chunk"
	"github.com/Faultbox/chunkscape/internal/engine/scene/shaders"
	"github.com/Faultbox/chunkscape/internal/engine/shader"
	"github.com/Faultbox/chunkscape/internal/engine/shadow"
	"github.com/Faultbox/chunkscape/internal/engine/terrain"
)

// Config contains terrain pipeline options.
type Config struct {
	ShadowWidth   int32
	ShadowHeight  int32
	GroundTexture uint32 // Owned by the pipeline once passed in
}

// DefaultConfig returns the default pipeline configuration.
func DefaultConfig() Config {
	return Config{
		ShadowWidth:  shadow.DefaultWidth,
		ShadowHeight: shadow.DefaultHeight,
	}
}

// TerrainPipeline holds the programs shared by every chunk: one for the
// light depth pass and one for the camera color pass.
type TerrainPipeline struct {
	config Config

	depth   *shader.Program
	terrain *shader.Program

	// 1x1 depth map at the far plane, sampled when a chunk has no shadow.
	lit *shadow.Map

	// Depth pass uniforms
	locDepthLightSpace int32

	// Color pass uniforms
	locViewProj       int32
	locLightSpace     int32
	locLightDir       int32
	locLightIntensity int32
	locTexture        int32
	locShadowMap      int32
}

var _ chunk.Pipeline = (*TerrainPipeline)(nil)

// NewTerrainPipeline compiles the terrain programs. Must be called on the
// goroutine that owns the GL context.
func NewTerrainPipeline(cfg Config) (*TerrainPipeline, error) {
	p := &TerrainPipeline{config: cfg}

	var err error
	p.depth, err = shader.Compile("terrain depth", shaders.DepthVertexShader, shaders.DepthFragmentShader)
	if err != nil {
		p.Destroy()
		return nil, err
	}
	p.terrain, err = shader.Compile("terrain", shaders.TerrainVertexShader, shaders.TerrainFragmentShader)
	if err != nil {
		p.Destroy()
		return nil, err
	}

	if err := p.depth.RequireUniforms("uLightSpace"); err != nil {
		p.Destroy()
		return nil, err
	}
	if err := p.terrain.RequireUniforms("uViewProj", "uLightSpace", "uLightDir", "uLightIntensity", "uTexture", "uShadowMap"); err != nil {
		p.Destroy()
		return nil, err
	}

	p.lit, err = shadow.NewMap(1, 1)
	if err != nil {
		p.Destroy()
		return nil, fmt.Errorf("fallback shadow map: %w", err)
	}
	p.lit.Clear()

	p.locDepthLightSpace = p.depth.Uniform("uLightSpace")

	p.locViewProj = p.terrain.Uniform("uViewProj")
	p.locLightSpace = p.terrain.Uniform("uLightSpace")
	p.locLightDir = p.terrain.Uniform("uLightDir")
	p.locLightIntensity = p.terrain.Uniform("uLightIntensity")
	p.locTexture = p.terrain.Uniform("uTexture")
	p.locShadowMap = p.terrain.Uniform("uShadowMap")

	return p, nil
}

// NewBuffers allocates one chunk's buffers and depth target.
func (p *TerrainPipeline) NewBuffers(topo *terrain.Topology) (chunk.Buffers, error) {
	b, err := newChunkBuffers(topo, p.config.ShadowWidth, p.config.ShadowHeight)
	if err != nil {
		return nil, fmt.Errorf("chunk buffers: %w", err)
	}
	return b, nil
}

// DepthPass renders b from the light into its own depth target and leaves
// that target bound.
func (p *TerrainPipeline) DepthPass(rc chunk.RenderContext, b chunk.Buffers) chunk.RenderContext {
	cb, ok := b.(*ChunkBuffers)
	if !ok || !cb.Shadow.IsValid() {
		return rc
	}

	cb.Shadow.Bind()
	p.depth.Use()

	lightSpace := rc.Frame.LightSpace
	gl.UniformMatrix4fv(p.locDepthLightSpace, 1, false, lightSpace.Ptr())
	cb.draw()

	rc.Program = p.depth.ID
	rc.Target = cb.Shadow.FBO
	rc.DepthTexture = cb.Shadow.DepthTexture
	return rc
}

// shadowSource returns the depth map the color pass samples: the chunk's own
// target when the depth pass wrote it, otherwise lit.
func shadowSource(rc chunk.RenderContext, own, lit *shadow.Map) *shadow.Map {
	if own.IsValid() && rc.DepthTexture == own.DepthTexture {
		return own
	}
	return lit
}

// ColorPass renders b from the camera into the default framebuffer,
// sampling the depth texture from rc. A chunk whose depth pass was skipped
// samples a map that reads as fully lit.
func (p *TerrainPipeline) ColorPass(rc chunk.RenderContext, b chunk.Buffers) chunk.RenderContext {
	cb, ok := b.(*ChunkBuffers)
	if !ok {
		return rc
	}

	if rc.Target != 0 {
		cb.Shadow.Unbind(rc.Frame.Viewport)
	}

	p.terrain.Use()

	frame := rc.Frame
	gl.UniformMatrix4fv(p.locViewProj, 1, false, frame.ViewProj.Ptr())
	gl.UniformMatrix4fv(p.locLightSpace, 1, false, frame.LightSpace.Ptr())
	gl.Uniform3f(p.locLightDir, frame.LightDir.X, frame.LightDir.Y, frame.LightDir.Z)
	gl.Uniform3f(p.locLightIntensity, frame.LightIntensity.X, frame.LightIntensity.Y, frame.LightIntensity.Z)

	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, p.config.GroundTexture)
	gl.Uniform1i(p.locTexture, 0)

	shadowSource(rc, cb.Shadow, p.lit).BindTexture(gl.TEXTURE1)
	gl.Uniform1i(p.locShadowMap, 1)

	cb.draw()

	gl.ActiveTexture(gl.TEXTURE0)

	rc.Program = p.terrain.ID
	rc.Target = 0
	return rc
}

// Destroy releases the programs, the fallback shadow map and the ground
// texture.
func (p *TerrainPipeline) Destroy() {
	if p.lit != nil {
		p.lit.Destroy()
		p.lit = nil
	}
	if p.depth != nil {
		p.depth.Delete()
	}
	if p.terrain != nil {
		p.terrain.Delete()
	}
	if p.config.GroundTexture != 0 {
		gl.DeleteTextures(1, &p.config.GroundTexture)
		p.config.GroundTexture = 0
	}
}
