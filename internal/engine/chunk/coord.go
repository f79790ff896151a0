// Package chunk streams a fixed working set of terrain chunks around the camera.
//
// A Manager keeps (2*viewDistance+1)^2 chunks resident. When the camera
// crosses a chunk boundary the chunks that fell out of the window are
// relabeled to the coordinates that entered it and regenerated in the
// background; each keeps drawing its previous mesh until the new one has
// been uploaded. All methods except those on Task and Scheduler must be
// called from the goroutine that owns the GL context.
package chunk

import (
	"fmt"

	"github.com/chewxy/math32"

	"github.com/Faultbox/chunkscape/internal/engine/terrain"
	"github.com/Faultbox/chunkscape/pkg/math"
)

// Coord identifies a cell of the infinite chunk grid.
type Coord struct {
	X, Z int
}

// CoordOf returns the chunk containing a world position.
func CoordOf(pos math.Vec3, chunkSize int) Coord {
	size := float32(chunkSize)
	return Coord{
		X: int(math32.Floor(pos.X / size)),
		Z: int(math32.Floor(pos.Z / size)),
	}
}

// Add returns c offset by (dx, dz).
func (c Coord) Add(dx, dz int) Coord {
	return Coord{c.X + dx, c.Z + dz}
}

// Request returns the generation request for a chunk at c. The chunk grid is
// centred on c*chunkSize with one sample per world unit.
func (c Coord) Request(chunkSize int) terrain.Request {
	return terrain.Request{
		Width: chunkSize,
		Depth: chunkSize,
		PosX:  float32(c.X * chunkSize),
		PosZ:  float32(c.Z * chunkSize),
	}
}

func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Z)
}
