package chunk

import (
	"context"

	"github.com/Faultbox/chunkscape/internal/engine/terrain"
)

// Task is one background chunk generation. Its result may be read once
// Done is closed.
type Task struct {
	target  Coord
	owner   *Chunk
	version uint64

	cancel context.CancelFunc
	done   chan struct{}

	data *terrain.Data
	err  error
}

// Target returns the coordinate the task generates.
func (t *Task) Target() Coord {
	return t.target
}

// Done returns a channel closed when the task has finished.
func (t *Task) Done() <-chan struct{} {
	return t.done
}

// Ready reports whether the task has finished, without blocking.
func (t *Task) Ready() bool {
	select {
	case <-t.done:
		return true
	default:
		return false
	}
}

// Wait blocks until the task finishes and returns its result.
func (t *Task) Wait() (*terrain.Data, error) {
	<-t.done
	return t.data, t.err
}

// Cancel asks the task to stop. A task that already finished is unaffected.
func (t *Task) Cancel() {
	t.cancel()
}
