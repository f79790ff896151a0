package chunk

import (
	"errors"
	"sync"
	"sync/atomic"

	"github.com/Faultbox/chunkscape/internal/engine/terrain"
)

// fakeBuffers records what the chunk asked of its GPU objects.
type fakeBuffers struct {
	mu       sync.Mutex
	uploads  int
	released int
	last     *terrain.Data
}

func (b *fakeBuffers) Upload(data *terrain.Data) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.uploads++
	b.last = data
}

func (b *fakeBuffers) Release() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.released++
}

func (b *fakeBuffers) releasedCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.released
}

const fakeDepthTexture = 11

// fakePipeline stands in for the GL pipeline.
type fakePipeline struct {
	mu          sync.Mutex
	buffers     []*fakeBuffers
	failAfter   int // NewBuffers fails once this many buffers exist; 0 never fails
	depthPasses int
	colorPasses int
	badContext  int // Color passes that did not see the depth pass output
	destroyed   int
}

func (p *fakePipeline) NewBuffers(topo *terrain.Topology) (Buffers, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.failAfter > 0 && len(p.buffers) >= p.failAfter {
		return nil, errors.New("out of buffers")
	}
	b := &fakeBuffers{}
	p.buffers = append(p.buffers, b)
	return b, nil
}

func (p *fakePipeline) DepthPass(rc RenderContext, _ Buffers) RenderContext {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.depthPasses++
	rc.Program = 1
	rc.Target = 5
	rc.DepthTexture = fakeDepthTexture
	return rc
}

func (p *fakePipeline) ColorPass(rc RenderContext, _ Buffers) RenderContext {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.colorPasses++
	if rc.DepthTexture != fakeDepthTexture || rc.Target != 5 {
		p.badContext++
	}
	rc.Program = 2
	rc.Target = 0
	return rc
}

func (p *fakePipeline) Destroy() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.destroyed++
}

func (p *fakePipeline) destroyedCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.destroyed
}

func (p *fakePipeline) releasedBuffers() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	n := 0
	for _, b := range p.buffers {
		n += b.releasedCount()
	}
	return n
}

// gatedField is a flat height field whose samples block while the gate is shut.
type gatedField struct {
	mu   sync.Mutex
	gate chan struct{}

	inFlight atomic.Int32
	peak     atomic.Int32
}

func newGatedField() *gatedField {
	g := &gatedField{gate: make(chan struct{})}
	close(g.gate)
	return g
}

func (g *gatedField) Shut() {
	g.mu.Lock()
	defer g.mu.Unlock()
	select {
	case <-g.gate:
		g.gate = make(chan struct{})
	default:
	}
}

func (g *gatedField) Open() {
	g.mu.Lock()
	defer g.mu.Unlock()
	select {
	case <-g.gate:
	default:
		close(g.gate)
	}
}

func (g *gatedField) Height(_, _ float32) float32 {
	n := g.inFlight.Add(1)
	defer g.inFlight.Add(-1)
	for {
		p := g.peak.Load()
		if n <= p || g.peak.CompareAndSwap(p, n) {
			break
		}
	}

	g.mu.Lock()
	gate := g.gate
	g.mu.Unlock()
	<-gate
	return 0
}
