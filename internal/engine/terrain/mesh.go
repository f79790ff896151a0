package terrain

import (
	"context"

	"github.com/Faultbox/chunkscape/pkg/math"
)

// Build samples field over the grid described by req and computes smooth
// vertex normals using the shared topology for that grid size.
//
// ctx is checked once per row; a canceled build returns ctx.Err() and no data.
func Build(ctx context.Context, field HeightField, req Request) (*Data, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	topo := TopologyFor(req.Width, req.Depth)

	halfWidth := float32(req.Width) / 2
	halfDepth := float32(req.Depth) / 2

	data := &Data{
		Vertices: make([]math.Vec3, 0, req.VertexCount()),
		Bounds:   emptyBounds(),
	}

	for z := 0; z <= req.Depth; z++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		worldZ := float32(z) - halfDepth + req.PosZ
		for x := 0; x <= req.Width; x++ {
			worldX := float32(x) - halfWidth + req.PosX

			v := math.Vec3{X: worldX, Y: field.Height(worldX, worldZ), Z: worldZ}
			data.Vertices = append(data.Vertices, v)
			data.Bounds.Extend(v)
		}
	}

	data.Normals = ComputeNormals(data.Vertices, topo.Indices)
	return data, nil
}

// ComputeNormals returns one normal per vertex: the normalised sum of the
// unit face normals of every triangle that uses the vertex. Degenerate
// triangles contribute nothing; vertices with no usable face get +Y.
func ComputeNormals(vertices []math.Vec3, indices []uint32) []math.Vec3 {
	normals := make([]math.Vec3, len(vertices))

	for i := 0; i+2 < len(indices); i += 3 {
		i0, i1, i2 := indices[i], indices[i+1], indices[i+2]

		v0 := vertices[i0]
		edge1 := vertices[i1].Sub(v0)
		edge2 := vertices[i2].Sub(v0)

		face := edge1.Cross(edge2)
		if face.LengthSq() == 0 {
			continue
		}
		face = face.Normalize()

		normals[i0] = normals[i0].Add(face)
		normals[i1] = normals[i1].Add(face)
		normals[i2] = normals[i2].Add(face)
	}

	for i, n := range normals {
		if n.LengthSq() == 0 {
			normals[i] = math.Up
			continue
		}
		normals[i] = n.Normalize()
	}

	return normals
}
