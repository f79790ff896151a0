// Package terrain builds height-field chunk meshes on the CPU.
//
// Nothing in this package touches GPU state, so every function here may run
// on a background goroutine.
package terrain

import (
	"fmt"

	"github.com/Faultbox/chunkscape/pkg/math"
)

// Request describes one chunk to generate: a grid of (Width+1) x (Depth+1)
// samples, one world unit apart, centred on (PosX, PosZ).
type Request struct {
	Width int
	Depth int
	PosX  float32
	PosZ  float32
}

// Validate checks the grid dimensions.
func (r Request) Validate() error {
	if r.Width <= 0 || r.Depth <= 0 {
		return fmt.Errorf("terrain: invalid grid %dx%d", r.Width, r.Depth)
	}
	return nil
}

// VertexCount returns the number of samples in the grid.
func (r Request) VertexCount() int {
	return (r.Width + 1) * (r.Depth + 1)
}

// Data is the per-chunk output of generation: positions and normals, indexed
// identically and laid out row by row along Z. The triangle topology is not
// part of Data; it is shared through Topology.
type Data struct {
	Vertices []math.Vec3
	Normals  []math.Vec3
	Bounds   Bounds
}

// Bounds holds an axis-aligned bounding box.
type Bounds struct {
	Min math.Vec3
	Max math.Vec3
}

// emptyBounds returns inverted bounds that any point will expand.
func emptyBounds() Bounds {
	return Bounds{
		Min: math.Vec3{X: 1e30, Y: 1e30, Z: 1e30},
		Max: math.Vec3{X: -1e30, Y: -1e30, Z: -1e30},
	}
}

// Extend grows b to contain p.
func (b *Bounds) Extend(p math.Vec3) {
	b.Min.X = min(b.Min.X, p.X)
	b.Min.Y = min(b.Min.Y, p.Y)
	b.Min.Z = min(b.Min.Z, p.Z)
	b.Max.X = max(b.Max.X, p.X)
	b.Max.Y = max(b.Max.Y, p.Y)
	b.Max.Z = max(b.Max.Z, p.Z)
}

// Center returns the center point of the box.
func (b Bounds) Center() math.Vec3 {
	return b.Min.Add(b.Max).Scale(0.5)
}
