package ingestion

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"sync"
	"time"

	"github.com/diwise/iot-telemetry-alerts/internal/pkg/application/alerts"
	"github.com/diwise/iot-telemetry-alerts/internal/pkg/infrastructure/metrics"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
)

var (
	ErrQueueFull   = errors.New("alert queue is full")
	ErrPoolStopped = errors.New("alert workers are stopped")
)

type job struct {
	ctx context.Context
	e   alerts.Evaluation
}

// pool runs alert processing off the ingestion path. Jobs carry the logger of
// the request that produced them but never its cancellation.
type pool struct {
	process        func(context.Context, alerts.Evaluation)
	queue          chan job
	workers        int
	enqueueTimeout time.Duration
	jobTimeout     time.Duration

	mu      sync.RWMutex
	started bool
	stopped bool

	wg     sync.WaitGroup
	ctx    context.Context
	cancel context.CancelFunc
}

func newPool(cfg Config, process func(context.Context, alerts.Evaluation)) *pool {
	ctx, cancel := context.WithCancel(context.Background())

	metrics.WorkerQueueCapacity.Set(float64(cfg.QueueSize))

	return &pool{
		process:        process,
		queue:          make(chan job, cfg.QueueSize),
		workers:        cfg.Workers,
		enqueueTimeout: cfg.EnqueueTimeout,
		jobTimeout:     cfg.JobTimeout,
		ctx:            ctx,
		cancel:         cancel,
	}
}

func (p *pool) start(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.started || p.stopped {
		return
	}
	p.started = true

	logging.GetFromContext(ctx).Info("starting alert workers", "workers", p.workers, "queue_size", cap(p.queue))

	for i := range p.workers {
		p.wg.Add(1)
		go p.worker(i)
	}
}

// enqueue waits at most enqueueTimeout for room in the queue.
func (p *pool) enqueue(ctx context.Context, e alerts.Evaluation) error {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.stopped {
		return ErrPoolStopped
	}

	j := job{
		ctx: logging.NewContextWithLogger(p.ctx, logging.GetFromContext(ctx)),
		e:   e,
	}

	timer := time.NewTimer(p.enqueueTimeout)
	defer timer.Stop()

	select {
	case p.queue <- j:
		metrics.WorkerQueueSize.Set(float64(len(p.queue)))
		return nil
	case <-timer.C:
		return ErrQueueFull
	case <-ctx.Done():
		return ctx.Err()
	}
}

// stop lets the workers drain the queue. If ctx ends first, in-flight jobs are cancelled.
func (p *pool) stop(ctx context.Context) error {
	p.mu.Lock()
	if p.stopped {
		p.mu.Unlock()
		return nil
	}
	p.stopped = true
	close(p.queue)
	started := p.started
	p.mu.Unlock()

	if !started {
		p.cancel()
		return nil
	}

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		p.cancel()
		return nil
	case <-ctx.Done():
		p.cancel()
		<-done
		return fmt.Errorf("alert workers did not drain in time: %w", ctx.Err())
	}
}

func (p *pool) worker(id int) {
	defer p.wg.Done()

	for j := range p.queue {
		metrics.WorkerQueueSize.Set(float64(len(p.queue)))
		p.run(id, j)
	}
}

func (p *pool) run(id int, j job) {
	log := logging.GetFromContext(j.ctx).With("worker_id", id)

	defer func() {
		if r := recover(); r != nil {
			metrics.WorkerPanicsTotal.Inc()
			metrics.WorkerJobsTotal.WithLabelValues("panic").Inc()
			log.Error("panic recovered in alert worker", "panic", fmt.Sprint(r), "stack", string(debug.Stack()))
		}
	}()

	ctx, cancel := context.WithTimeout(j.ctx, p.jobTimeout)
	defer cancel()

	p.process(logging.NewContextWithLogger(ctx, log), j.e)
	metrics.WorkerJobsTotal.WithLabelValues("done").Inc()
}
