package workerpool

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var (
	ErrAlreadyRunning = errors.New("worker pool is already running")
	ErrNotRunning     = errors.New("worker pool is not running")
	ErrQueueFull      = errors.New("worker pool queue is full")
)

type Executor interface {
	Execute(ctx context.Context) error
}

type ExecutorFunc func(ctx context.Context) error

func (f ExecutorFunc) Execute(ctx context.Context) error {
	return f(ctx)
}

type job struct {
	ctx      context.Context //nolint:containedctx
	executor Executor
}

// WorkerPool runs submitted executors on a fixed number of workers. Jobs
// already queued when Stop is called still run before Stop returns.
type WorkerPool struct {
	name        string
	workerCount int
	queueSize   int
	execTimeout time.Duration
	logger      zerolog.Logger
	jobChan     chan job
	cancel      context.CancelFunc
	wg          sync.WaitGroup
	mu          sync.RWMutex
	running     bool
}

type Option func(*WorkerPool)

func New(opts ...Option) *WorkerPool {
	pool := &WorkerPool{
		name:        "worker-pool",
		workerCount: 1,
		queueSize:   0,
		execTimeout: 0,
		logger:      log.Logger,
		jobChan:     nil,
		cancel:      nil,
		wg:          sync.WaitGroup{},
		mu:          sync.RWMutex{},
		running:     false,
	}

	for _, opt := range opts {
		opt(pool)
	}

	return pool
}

func WithWorkerCount(count int) Option {
	return func(pool *WorkerPool) {
		if count > 0 {
			pool.workerCount = count
		}
	}
}

func WithQueueSize(size int) Option {
	return func(pool *WorkerPool) {
		if size >= 0 {
			pool.queueSize = size
		}
	}
}

func WithExecutionTimeout(timeout time.Duration) Option {
	return func(pool *WorkerPool) {
		if timeout > 0 {
			pool.execTimeout = timeout
		}
	}
}

func WithLogger(logger zerolog.Logger) Option {
	return func(pool *WorkerPool) {
		pool.logger = logger
	}
}

func WithName(name string) Option {
	return func(pool *WorkerPool) {
		if name != "" {
			pool.name = name
		}
	}
}

func (pool *WorkerPool) Name() string {
	return pool.name
}

func (pool *WorkerPool) WorkerCount() int {
	return pool.workerCount
}

func (pool *WorkerPool) Running() bool {
	pool.mu.RLock()
	defer pool.mu.RUnlock()

	return pool.running
}

func (pool *WorkerPool) Start(ctx context.Context) error {
	pool.mu.Lock()
	if pool.running {
		pool.mu.Unlock()

		return ErrAlreadyRunning
	}

	pool.running = true
	pool.jobChan = make(chan job, pool.queueSize)

	workerCtx, cancel := context.WithCancel(ctx)
	pool.cancel = cancel
	pool.mu.Unlock()

	pool.logger.Debug().
		Str("pool", pool.name).
		Int("worker_count", pool.workerCount).
		Int("queue_size", pool.queueSize).
		Dur("exec_timeout", pool.execTimeout).
		Msg("Worker pool is starting.")

	for workerID := range pool.workerCount {
		pool.wg.Add(1)

		go pool.worker(workerCtx, workerID)
	}

	return nil
}

func (pool *WorkerPool) Stop() error {
	pool.mu.Lock()
	if !pool.running {
		pool.mu.Unlock()

		return nil
	}

	pool.running = false
	pool.mu.Unlock()

	pool.logger.Debug().Str("pool", pool.name).Msg("Worker pool is stopping.")

	if pool.cancel != nil {
		pool.cancel()
	}

	pool.wg.Wait()

	pool.logger.Debug().Str("pool", pool.name).Msg("Worker pool has stopped.")

	return nil
}

// Submit queues executor and blocks until a worker accepts it, ctx is done
// or the queue has room. The executor receives ctx, not the pool's context.
func (pool *WorkerPool) Submit(ctx context.Context, executor Executor) error {
	pool.mu.RLock()
	defer pool.mu.RUnlock()

	if !pool.running {
		return ErrNotRunning
	}

	select {
	case pool.jobChan <- job{ctx: ctx, executor: executor}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// TrySubmit queues executor without waiting. It returns ErrQueueFull when no
// worker is idle and the queue has no room.
func (pool *WorkerPool) TrySubmit(ctx context.Context, executor Executor) error {
	pool.mu.RLock()
	defer pool.mu.RUnlock()

	if !pool.running {
		return ErrNotRunning
	}

	select {
	case pool.jobChan <- job{ctx: ctx, executor: executor}:
		return nil
	default:
		return ErrQueueFull
	}
}

func (pool *WorkerPool) worker(ctx context.Context, id int) {
	defer pool.wg.Done()

	for {
		select {
		case <-ctx.Done():
			pool.drain(id)

			return
		case j := <-pool.jobChan:
			pool.executeWithTimeout(j, id)
		}
	}
}

func (pool *WorkerPool) drain(id int) {
	for {
		select {
		case j := <-pool.jobChan:
			pool.executeWithTimeout(j, id)
		default:
			return
		}
	}
}

func (pool *WorkerPool) executeWithTimeout(j job, workerID int) {
	var (
		execCtx context.Context
		cancel  context.CancelFunc
	)

	if pool.execTimeout > 0 {
		execCtx, cancel = context.WithTimeout(j.ctx, pool.execTimeout)
	} else {
		execCtx, cancel = context.WithCancel(j.ctx)
	}

	defer cancel()

	err := j.executor.Execute(execCtx)
	if err != nil {
		pool.logger.Debug().
			Err(err).
			Str("pool", pool.name).
			Int("worker_id", workerID).
			Msg("Executor returned an error.")
	}
}
