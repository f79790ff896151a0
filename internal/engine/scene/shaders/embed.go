// Package shaders provides embedded GLSL shader sources.
package shaders

import _ "embed"

// TerrainVertexShader is the vertex shader for the terrain color pass.
//
//go:embed terrain.vert
var TerrainVertexShader string

// TerrainFragmentShader is the fragment shader for the terrain color pass.
//
//go:embed terrain.frag
var TerrainFragmentShader string

// DepthVertexShader is the vertex shader for the light depth pass.
//
//go:embed depth.vert
var DepthVertexShader string

// DepthFragmentShader is the fragment shader for the light depth pass.
//
//go:embed depth.frag
var DepthFragmentShader string
