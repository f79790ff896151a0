package chunk

import (
	"context"
	"sync"

	"golang.org/x/sync/semaphore"

	"github.com/Faultbox/chunkscape/internal/engine/terrain"
)

// Scheduler runs chunk generation on background goroutines, at most
// workers at a time.
type Scheduler struct {
	field terrain.HeightField
	sem   *semaphore.Weighted
	wg    sync.WaitGroup
}

// NewScheduler creates a scheduler sampling field.
func NewScheduler(field terrain.HeightField, workers int) *Scheduler {
	if workers < 1 {
		workers = 1
	}
	return &Scheduler{
		field: field,
		sem:   semaphore.NewWeighted(int64(workers)),
	}
}

// Submit starts generating req and returns immediately. The task stops early
// with ctx's error if ctx is canceled or the task is canceled.
func (s *Scheduler) Submit(ctx context.Context, req terrain.Request) *Task {
	taskCtx, cancel := context.WithCancel(ctx)
	task := &Task{
		cancel: cancel,
		done:   make(chan struct{}),
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer close(task.done)
		defer cancel()

		if err := s.sem.Acquire(taskCtx, 1); err != nil {
			task.err = err
			return
		}
		defer s.sem.Release(1)

		task.data, task.err = terrain.Build(taskCtx, s.field, req)
	}()

	return task
}

// Wait blocks until every submitted task has finished.
func (s *Scheduler) Wait() {
	s.wg.Wait()
}
