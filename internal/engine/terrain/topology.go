package terrain

import (
	"sync"

	"github.com/Faultbox/chunkscape/pkg/math"
)

// UVTiling is how many times the ground texture repeats across one chunk.
const UVTiling = 20

// Topology is the part of a chunk mesh that depends only on the grid size:
// the triangle list and texture coordinates. It is shared read-only by every
// chunk with the same dimensions.
type Topology struct {
	Width   int
	Depth   int
	Indices []uint32
	UVs     []math.Vec2
}

type gridSize struct {
	width, depth int
}

var (
	topologyMu    sync.Mutex
	topologyCache = make(map[gridSize]*Topology)
)

// TopologyFor returns the shared topology for a width x depth grid,
// building it on first use.
func TopologyFor(width, depth int) *Topology {
	key := gridSize{width, depth}

	topologyMu.Lock()
	defer topologyMu.Unlock()

	if t, ok := topologyCache[key]; ok {
		return t
	}
	t := newTopology(width, depth)
	topologyCache[key] = t
	return t
}

func newTopology(width, depth int) *Topology {
	t := &Topology{
		Width:   width,
		Depth:   depth,
		Indices: make([]uint32, 0, width*depth*6),
		UVs:     make([]math.Vec2, 0, (width+1)*(depth+1)),
	}

	// Two triangles per cell, both wound so the face normal of flat ground is +Y.
	for z := 0; z < depth; z++ {
		row := uint32(z * (width + 1))
		next := uint32((z + 1) * (width + 1))

		for x := uint32(0); x < uint32(width); x++ {
			topLeft := row + x
			topRight := topLeft + 1
			bottomLeft := next + x
			bottomRight := bottomLeft + 1

			t.Indices = append(t.Indices,
				topLeft, bottomLeft, topRight,
				topRight, bottomLeft, bottomRight,
			)
		}
	}

	for z := 0; z <= depth; z++ {
		for x := 0; x <= width; x++ {
			t.UVs = append(t.UVs, math.Vec2{
				X: float32(x) / float32(width) * UVTiling,
				Y: float32(z) / float32(depth) * UVTiling,
			})
		}
	}

	return t
}

// TriangleCount returns the number of triangles in the topology.
func (t *Topology) TriangleCount() int {
	return len(t.Indices) / 3
}
