package scene

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/chunkscape/internal/engine/shadow"
	"github.com/Faultbox/chunkscape/internal/engine/terrain"
	"github.com/Faultbox/chunkscape/pkg/math"
)

// Vertex attribute locations shared by both terrain programs.
const (
	attribPosition = 0
	attribNormal   = 1
	attribTexCoord = 2
)

const vec3Size = int(unsafe.Sizeof(math.Vec3{}))

// ChunkBuffers are the GPU objects of one terrain chunk. Indices and UVs
// come from the shared topology and are written once; positions and normals
// are replaced on every Upload.
type ChunkBuffers struct {
	vao         uint32
	positionVBO uint32
	normalVBO   uint32
	uvVBO       uint32
	ebo         uint32
	indexCount  int32
	vertexCount int

	Shadow *shadow.Map
}

func newChunkBuffers(topo *terrain.Topology, shadowWidth, shadowHeight int32) (*ChunkBuffers, error) {
	if len(topo.Indices) == 0 || len(topo.UVs) == 0 {
		return nil, fmt.Errorf("empty topology %dx%d", topo.Width, topo.Depth)
	}

	b := &ChunkBuffers{
		indexCount:  int32(len(topo.Indices)),
		vertexCount: len(topo.UVs),
	}

	gl.GenVertexArrays(1, &b.vao)
	gl.BindVertexArray(b.vao)

	// Positions (location 0), allocated now and filled by Upload
	gl.GenBuffers(1, &b.positionVBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, b.positionVBO)
	gl.BufferData(gl.ARRAY_BUFFER, b.vertexCount*vec3Size, nil, gl.DYNAMIC_DRAW)
	gl.VertexAttribPointerWithOffset(attribPosition, 3, gl.FLOAT, false, int32(vec3Size), 0)
	gl.EnableVertexAttribArray(attribPosition)

	// Normals (location 1)
	gl.GenBuffers(1, &b.normalVBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, b.normalVBO)
	gl.BufferData(gl.ARRAY_BUFFER, b.vertexCount*vec3Size, nil, gl.DYNAMIC_DRAW)
	gl.VertexAttribPointerWithOffset(attribNormal, 3, gl.FLOAT, false, int32(vec3Size), 0)
	gl.EnableVertexAttribArray(attribNormal)

	// TexCoords (location 2)
	gl.GenBuffers(1, &b.uvVBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, b.uvVBO)
	uvSize := int(unsafe.Sizeof(math.Vec2{}))
	gl.BufferData(gl.ARRAY_BUFFER, len(topo.UVs)*uvSize, unsafe.Pointer(&topo.UVs[0]), gl.STATIC_DRAW)
	gl.VertexAttribPointerWithOffset(attribTexCoord, 2, gl.FLOAT, false, int32(uvSize), 0)
	gl.EnableVertexAttribArray(attribTexCoord)

	// EBO
	gl.GenBuffers(1, &b.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, b.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(topo.Indices)*4, unsafe.Pointer(&topo.Indices[0]), gl.STATIC_DRAW)

	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)

	sm, err := shadow.NewMap(shadowWidth, shadowHeight)
	if err != nil {
		b.Release()
		return nil, err
	}
	b.Shadow = sm

	return b, nil
}

// Upload replaces the vertex positions and normals.
func (b *ChunkBuffers) Upload(data *terrain.Data) {
	if len(data.Vertices) != b.vertexCount || len(data.Normals) != b.vertexCount {
		return
	}

	gl.BindBuffer(gl.ARRAY_BUFFER, b.positionVBO)
	gl.BufferData(gl.ARRAY_BUFFER, b.vertexCount*vec3Size, unsafe.Pointer(&data.Vertices[0]), gl.DYNAMIC_DRAW)

	gl.BindBuffer(gl.ARRAY_BUFFER, b.normalVBO)
	gl.BufferData(gl.ARRAY_BUFFER, b.vertexCount*vec3Size, unsafe.Pointer(&data.Normals[0]), gl.DYNAMIC_DRAW)

	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
}

func (b *ChunkBuffers) draw() {
	gl.BindVertexArray(b.vao)
	gl.DrawElements(gl.TRIANGLES, b.indexCount, gl.UNSIGNED_INT, nil)
	gl.BindVertexArray(0)
}

// Release frees every GPU object.
func (b *ChunkBuffers) Release() {
	if b.vao != 0 {
		gl.DeleteVertexArrays(1, &b.vao)
		b.vao = 0
	}
	for _, id := range []*uint32{&b.positionVBO, &b.normalVBO, &b.uvVBO, &b.ebo} {
		if *id != 0 {
			gl.DeleteBuffers(1, id)
			*id = 0
		}
	}
	if b.Shadow != nil {
		b.Shadow.Destroy()
		b.Shadow = nil
	}
}
