package chunk

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Faultbox/chunkscape/internal/engine/terrain"
	"github.com/Faultbox/chunkscape/internal/logger"
	"github.com/Faultbox/chunkscape/pkg/math"
)

type state int

const (
	stateUninitialized state = iota
	stateStreaming
	stateTornDown
)

// Options configures a Manager.
type Options struct {
	ChunkSize    int // World units per chunk edge
	ViewDistance int // Chunks kept on each side of the center
	Workers      int // Generations running at once
}

// Stats is a snapshot of streaming activity.
type Stats struct {
	Center    Coord
	Resident  int
	Pending   int
	Relabeled uint64 // Chunks moved to a new coordinate
	Completed uint64 // Results uploaded
	Discarded uint64 // Results dropped because their chunk moved on
	Canceled  uint64 // Tasks that stopped before producing a result
	Failed    uint64 // Tasks that returned any other error
}

// Manager owns the working set of chunks around the camera.
type Manager struct {
	opts     Options
	pipeline Pipeline
	sched    *Scheduler
	topo     *terrain.Topology
	log      *zap.Logger

	ctx    context.Context
	cancel context.CancelFunc

	state   state
	center  Coord
	chunks  []*Chunk
	byCoord map[Coord]*Chunk
	pending map[Coord]*Task

	stats Stats
}

// NewManager creates a manager that samples field and draws with pipeline.
// The manager takes ownership of pipeline and destroys it in Cleanup.
func NewManager(opts Options, field terrain.HeightField, pipeline Pipeline) (*Manager, error) {
	if opts.ChunkSize <= 0 {
		return nil, fmt.Errorf("chunk: chunk size %d must be positive", opts.ChunkSize)
	}
	if opts.ViewDistance < 0 {
		return nil, fmt.Errorf("chunk: view distance %d must not be negative", opts.ViewDistance)
	}
	if field == nil || pipeline == nil {
		return nil, errors.New("chunk: height field and pipeline are required")
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Manager{
		opts:     opts,
		pipeline: pipeline,
		sched:    NewScheduler(field, opts.Workers),
		topo:     terrain.TopologyFor(opts.ChunkSize, opts.ChunkSize),
		log:      logger.Named("chunk"),
		ctx:      ctx,
		cancel:   cancel,
		byCoord:  make(map[Coord]*Chunk),
		pending:  make(map[Coord]*Task),
	}, nil
}

// Initialize builds the full working set around camPos and blocks until
// every chunk has been generated and uploaded.
func (m *Manager) Initialize(ctx context.Context, camPos math.Vec3) error {
	switch m.state {
	case stateStreaming:
		return ErrAlreadyInitialized
	case stateTornDown:
		return ErrTornDown
	}

	center := CoordOf(camPos, m.opts.ChunkSize)
	coords := Window{Center: center, Radius: m.opts.ViewDistance}.Coords()

	chunks := make([]*Chunk, 0, len(coords))
	release := func() {
		for _, ch := range chunks {
			ch.Cleanup()
		}
	}

	for _, c := range coords {
		ch, err := newChunk(c, m.sched, m.pipeline, m.topo)
		if err != nil {
			release()
			return fmt.Errorf("create chunk %s: %w", c, err)
		}
		chunks = append(chunks, ch)
	}

	results := make([]*terrain.Data, len(chunks))
	g, gctx := errgroup.WithContext(ctx)
	for i, ch := range chunks {
		task := ch.GenerateAsync(gctx, ch.Coord().Request(m.opts.ChunkSize))
		g.Go(func() error {
			data, err := task.Wait()
			if err != nil {
				return fmt.Errorf("generate chunk %s: %w", task.Target(), err)
			}
			results[i] = data
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		m.sched.Wait()
		release()
		return err
	}

	for i, ch := range chunks {
		ch.UpdateBuffers(results[i])
		m.byCoord[ch.Coord()] = ch
	}

	m.chunks = chunks
	m.center = center
	m.state = stateStreaming

	m.log.Info("terrain initialized",
		zap.Stringer("center", center),
		zap.Int("chunks", len(chunks)),
		zap.Int("chunk_size", m.opts.ChunkSize),
		zap.Int("view_distance", m.opts.ViewDistance))

	return nil
}

// Update recenters the working set on camPos and collects finished
// generation. It never blocks on background work.
func (m *Manager) Update(camPos math.Vec3) {
	if m.state != stateStreaming {
		return
	}

	newCenter := CoordOf(camPos, m.opts.ChunkSize)
	if newCenter != m.center {
		m.recenter(newCenter)
	}

	m.poll()
}

func (m *Manager) recenter(newCenter Coord) {
	toReplace, toAdd := Diff(m.center, newCenter, m.opts.ViewDistance)

	m.log.Debug("chunk boundary crossed",
		zap.Stringer("from", m.center),
		zap.Stringer("to", newCenter),
		zap.Int("replace", len(toReplace)),
		zap.Int("add", len(toAdd)))

	// Detach everything first so a target never collides with a chunk that
	// is about to leave.
	moving := make([]*Chunk, len(toReplace))
	for i, from := range toReplace {
		ch, ok := m.byCoord[from]
		if !ok {
			m.log.Warn("chunk to replace not found", zap.Stringer("coord", from))
			continue
		}
		delete(m.byCoord, from)
		moving[i] = ch
	}

	for i, ch := range moving {
		if ch == nil {
			continue
		}
		to := toAdd[i]

		ch.Relabel(to)
		m.byCoord[to] = ch
		m.stats.Relabeled++

		if prev, ok := m.pending[to]; ok {
			m.supersede(prev)
		}
		m.pending[to] = ch.GenerateAsync(m.ctx, to.Request(m.opts.ChunkSize))
	}

	m.center = newCenter
}

// supersede drops a pending task whose target was just handed to another
// generation. A finished task is accounted for by how it ended; its chunk
// has already moved on, so a successful result counts as discarded.
func (m *Manager) supersede(prev *Task) {
	if prev.Ready() {
		m.collect(prev)
		return
	}
	prev.Cancel()
	m.stats.Canceled++
}

// poll uploads every finished task whose chunk still wants it.
func (m *Manager) poll() {
	for target, task := range m.pending {
		if !task.Ready() {
			continue
		}
		delete(m.pending, target)
		m.collect(task)
	}
}

func (m *Manager) collect(task *Task) {
	data, err := task.Wait()
	switch {
	case errors.Is(err, context.Canceled):
		m.stats.Canceled++
		return
	case err != nil:
		// The old mesh stays; the next relabel retries.
		m.stats.Failed++
		m.log.Warn("chunk generation failed", zap.Stringer("coord", task.Target()), zap.Error(err))
		return
	}

	ch, ok := m.byCoord[task.Target()]
	if !ok {
		m.stats.Discarded++
		m.log.Warn("no chunk for finished task", zap.Stringer("coord", task.Target()))
		return
	}
	if !ch.Accepts(task) {
		m.stats.Discarded++
		m.log.Debug("discarding stale chunk result", zap.Stringer("coord", task.Target()))
		return
	}

	ch.UpdateBuffers(data)
	m.stats.Completed++
}

// Render updates the working set for camPos and draws every resident chunk.
func (m *Manager) Render(frame FrameParams, camPos math.Vec3) {
	m.Update(camPos)
	if m.state != stateStreaming {
		return
	}

	for _, ch := range m.chunks {
		ch.Render(frame)
	}
}

// WaitIdle blocks until no generation is pending, uploading results as they
// finish. It must run on the GL goroutine.
func (m *Manager) WaitIdle(ctx context.Context) error {
	if m.state != stateStreaming {
		return ErrNotInitialized
	}

	for {
		m.poll()

		var next *Task
		for _, task := range m.pending {
			next = task
			break
		}
		if next == nil {
			return nil
		}

		select {
		case <-next.Done():
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// Cleanup cancels outstanding generation, waits for every background task
// to return, and then releases all chunks and the pipeline. Calling it again
// does nothing.
func (m *Manager) Cleanup() {
	if m.state == stateTornDown {
		return
	}

	pending := len(m.pending)
	m.cancel()
	m.sched.Wait()

	for target := range m.pending {
		delete(m.pending, target)
	}
	for _, ch := range m.chunks {
		ch.Cleanup()
	}
	m.pipeline.Destroy()

	m.log.Info("terrain released",
		zap.Int("chunks", len(m.chunks)),
		zap.Int("pending_dropped", pending))

	m.chunks = nil
	clear(m.byCoord)
	m.state = stateTornDown
}

// Center returns the coordinate the working set is centred on.
func (m *Manager) Center() Coord {
	return m.center
}

// Len returns the number of resident chunks.
func (m *Manager) Len() int {
	return len(m.chunks)
}

// Pending returns the number of generation tasks not yet collected.
func (m *Manager) Pending() int {
	return len(m.pending)
}

// Chunk returns the chunk labeled c.
func (m *Manager) Chunk(c Coord) (*Chunk, bool) {
	ch, ok := m.byCoord[c]
	return ch, ok
}

// Coords returns the resident coordinates sorted by Z then X.
func (m *Manager) Coords() []Coord {
	coords := make([]Coord, 0, len(m.chunks))
	for _, ch := range m.chunks {
		coords = append(coords, ch.Coord())
	}
	sort.Slice(coords, func(i, j int) bool {
		if coords[i].Z != coords[j].Z {
			return coords[i].Z < coords[j].Z
		}
		return coords[i].X < coords[j].X
	})
	return coords
}

// Stats returns a snapshot of streaming counters.
func (m *Manager) Stats() Stats {
	s := m.stats
	s.Center = m.center
	s.Resident = len(m.chunks)
	s.Pending = len(m.pending)
	return s
}
