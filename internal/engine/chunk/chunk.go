package chunk

import (
	"context"
	"sync"

	"github.com/Faultbox/chunkscape/internal/engine/terrain"
)

// Chunk is one resident cell of the working set. It is relabeled rather
// than recreated as the camera moves, so its GPU buffers live as long as
// the manager.
type Chunk struct {
	mu sync.Mutex

	coord   Coord
	version uint64

	sched    *Scheduler
	pipeline Pipeline
	buffers  Buffers

	task     *Task
	bounds   terrain.Bounds
	loaded   bool
	released bool
}

func newChunk(coord Coord, sched *Scheduler, pipeline Pipeline, topo *terrain.Topology) (*Chunk, error) {
	buffers, err := pipeline.NewBuffers(topo)
	if err != nil {
		return nil, err
	}
	return &Chunk{
		coord:    coord,
		sched:    sched,
		pipeline: pipeline,
		buffers:  buffers,
	}, nil
}

// Coord returns the coordinate the chunk is currently labeled with.
func (c *Chunk) Coord() Coord {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.coord
}

// Version returns how many times the chunk has been relabeled.
func (c *Chunk) Version() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.version
}

// Bounds returns the bounding box of the mesh currently uploaded.
func (c *Chunk) Bounds() terrain.Bounds {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.bounds
}

// Loaded reports whether any mesh has been uploaded yet.
func (c *Chunk) Loaded() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loaded
}

// Buffers returns the chunk's GPU objects.
func (c *Chunk) Buffers() Buffers {
	return c.buffers
}

// Relabel moves the chunk to coord. Any generation still running for the
// previous label is canceled and its result will be rejected by Accepts.
// The uploaded mesh is kept until the next UpdateBuffers.
func (c *Chunk) Relabel(coord Coord) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.coord = coord
	c.version++
	if c.task != nil {
		c.task.Cancel()
		c.task = nil
	}
}

// GenerateAsync starts generating req in the background for the chunk's
// current label. It never blocks and never touches GPU state.
func (c *Chunk) GenerateAsync(ctx context.Context, req terrain.Request) *Task {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.task != nil {
		c.task.Cancel()
	}

	task := c.sched.Submit(ctx, req)
	task.target = c.coord
	task.owner = c
	task.version = c.version

	c.task = task
	return task
}

// Accepts reports whether t was started for the chunk's current label.
func (c *Chunk) Accepts(t *Task) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return t.owner == c && t.version == c.version && t.target == c.coord
}

// UpdateBuffers uploads data into the chunk's existing buffers. It must run
// on the GL goroutine.
func (c *Chunk) UpdateBuffers(data *terrain.Data) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.released || data == nil {
		return
	}

	c.buffers.Upload(data)
	c.bounds = data.Bounds
	c.loaded = true
	c.task = nil
}

// Render draws the chunk: a depth pass from the light, then a color pass
// from the camera that samples it. Chunks with no mesh yet draw nothing.
func (c *Chunk) Render(frame FrameParams) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.released || !c.loaded {
		return
	}

	rc := c.pipeline.DepthPass(RenderContext{Frame: frame}, c.buffers)
	c.pipeline.ColorPass(rc, c.buffers)
}

// Cleanup cancels pending generation and releases the chunk's GPU objects.
// Further calls do nothing.
func (c *Chunk) Cleanup() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.released {
		return
	}
	if c.task != nil {
		c.task.Cancel()
		c.task = nil
	}
	c.buffers.Release()
	c.released = true
}
