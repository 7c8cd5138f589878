package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
)

// Orchestrator owns the job queue and worker pool.
type Orchestrator struct {
	queue   chan *Job
	worker  *Worker
	workers int
	log     *slog.Logger

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewOrchestrator creates the pipeline with a bounded queue.
func NewOrchestrator(worker *Worker, workers, queueSize int, log *slog.Logger) *Orchestrator {
	if workers < 1 {
		workers = 1
	}
	if queueSize < 1 {
		queueSize = 1
	}
	return &Orchestrator{
		queue:   make(chan *Job, queueSize),
		worker:  worker,
		workers: workers,
		log:     log,
	}
}

// Start launches the worker goroutines.
func (o *Orchestrator) Start(ctx context.Context) {
	workerCtx, cancel := context.WithCancel(ctx)
	o.cancel = cancel

	for range o.workers {
		o.wg.Add(1)
		go func() {
			defer o.wg.Done()
			for {
				select {
				case <-workerCtx.Done():
					return
				case job, ok := <-o.queue:
					if !ok {
						return
					}
					o.worker.Process(workerCtx, job)
				}
			}
		}()
	}
}

// Stop closes the queue, waits for queued and in-flight jobs to finish,
// then releases the worker context.
func (o *Orchestrator) Stop() {
	close(o.queue)
	o.wg.Wait()
	if o.cancel != nil {
		o.cancel()
	}
}

// Submit enqueues a job without blocking; a full queue is an error the
// caller reports to the client.
func (o *Orchestrator) Submit(job *Job) error {
	select {
	case o.queue <- job:
		return nil
	default:
		return fmt.Errorf("job queue is full (%d)", cap(o.queue))
	}
}

// QueueDepth returns the number of jobs waiting.
func (o *Orchestrator) QueueDepth() int {
	return len(o.queue)
}
