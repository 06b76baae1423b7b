// Package async provides a bounded worker queue for batch receipt scanning.
// Recognition itself is serialized inside the extract service; the queue
// overlaps file IO and keeps batch runs from flooding memory.
package async

import (
	"context"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/flipledger/flipledger/internal/extract"
)

// Job is one image to run through extraction.
type Job struct {
	Path        string
	SubmittedAt time.Time
}

// Sink receives each finished extraction alongside the path it came from.
type Sink func(path string, result extract.Result)

type ScanQueue struct {
	svc     *extract.Service
	sink    Sink
	logger  *slog.Logger
	workers int
	timeout time.Duration

	ch   chan Job
	wg   sync.WaitGroup
	once sync.Once

	mu     sync.Mutex
	closed bool
}

type Option func(*ScanQueue)

func WithWorkers(n int) Option {
	return func(q *ScanQueue) {
		if n > 0 {
			q.workers = n
		}
	}
}

func WithQueueSize(n int) Option {
	return func(q *ScanQueue) {
		if n > 0 {
			q.ch = make(chan Job, n)
		}
	}
}

func WithScanTimeout(d time.Duration) Option {
	return func(q *ScanQueue) {
		if d > 0 {
			q.timeout = d
		}
	}
}

func NewScanQueue(svc *extract.Service, sink Sink, logger *slog.Logger, opts ...Option) *ScanQueue {
	if logger == nil {
		logger = slog.Default()
	}
	q := &ScanQueue{
		svc:     svc,
		sink:    sink,
		logger:  logger,
		workers: 2,
		timeout: 2 * time.Minute,
		ch:      make(chan Job, 64),
	}
	for _, o := range opts {
		o(q)
	}
	q.start()
	return q
}

func (q *ScanQueue) start() {
	q.once.Do(func() {
		for i := 0; i < q.workers; i++ {
			q.wg.Add(1)
			go func(workerID int) {
				defer q.wg.Done()
				q.logger.Info("worker started", "worker_id", workerID)

				for job := range q.ch {
					q.process(workerID, job)
				}

				q.logger.Info("worker stopped", "worker_id", workerID)
			}(i + 1)
		}
	})
}

func (q *ScanQueue) process(workerID int, job Job) {
	ctx, cancel := context.WithTimeout(context.Background(), q.timeout)
	defer cancel()

	f, err := os.Open(job.Path)
	if err != nil {
		q.logger.Error("open image failed", "worker_id", workerID, "path", job.Path, "error", err)
		q.sink(job.Path, extract.Result{Success: false, Err: err.Error(), Quantity: 1})
		return
	}
	defer f.Close()

	result := q.svc.ExtractReceipt(ctx, f, nil)
	if !result.Success {
		q.logger.Error("scan failed", "worker_id", workerID, "path", job.Path, "error", result.Err)
	} else {
		q.logger.Info("scanned image", "worker_id", workerID, "path", job.Path, "name", result.Name)
	}
	q.sink(job.Path, result)
}

func (q *ScanQueue) Enqueue(_ context.Context, job Job) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		q.logger.Warn("cannot enqueue: queue is shutting down", "path", job.Path)
		return nil
	}
	select {
	case q.ch <- job:
	default:
		q.logger.Warn("queue full, applying backpressure", "path", job.Path)
		q.ch <- job
	}
	return nil
}

func (q *ScanQueue) Shutdown(ctx context.Context) {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return
	}
	q.closed = true
	close(q.ch)
	q.mu.Unlock()

	done := make(chan struct{})
	go func() { defer close(done); q.wg.Wait() }()

	select {
	case <-ctx.Done():
		q.logger.Warn("shutdown interrupted by context")
	case <-done:
		q.logger.Info("queue drained, shutdown complete")
	}
}
