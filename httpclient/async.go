package httpclient

import (
	"context"
	"fmt"

	"github.com/jigsawstack/jigsawstack-go/workerpool"
)

const (
	DefaultAsyncWorkers   = 8
	DefaultAsyncQueueSize = 256
)

// Future holds the eventual result of an asynchronous call.
type Future[T any] struct {
	done  chan struct{}
	value T
	err   error
}

func newFuture[T any]() *Future[T] {
	return &Future[T]{done: make(chan struct{})} //nolint:exhaustruct
}

func (f *Future[T]) Done() <-chan struct{} {
	return f.done
}

// Await blocks until the call finishes or ctx is done. Cancelling ctx does
// not cancel the call itself.
func (f *Future[T]) Await(ctx context.Context) (T, error) {
	select {
	case <-f.done:
		return f.value, f.err
	case <-ctx.Done():
		var zero T

		return zero, ctx.Err()
	}
}

func (f *Future[T]) complete(value T, err error) {
	f.value = value
	f.err = err
	close(f.done)
}

func (f *Future[T]) run(ctx context.Context, fn func(context.Context) (T, error)) {
	defer func() {
		if r := recover(); r != nil {
			var zero T

			f.complete(zero, fmt.Errorf("%w: %v", ErrAsyncPanic, r))
		}
	}()

	value, err := fn(ctx)
	f.complete(value, err)
}

// Go runs fn on a new goroutine.
func Go[T any](ctx context.Context, fn func(context.Context) (T, error)) *Future[T] {
	future := newFuture[T]()

	go future.run(ctx, fn)

	return future
}

// Async queues fn on the AsyncClient's worker pool and returns at once. If
// the queue is full or the pool is stopped the future completes immediately
// with workerpool.ErrQueueFull or workerpool.ErrNotRunning.
func Async[T any](ctx context.Context, a *AsyncClient, fn func(context.Context) (T, error)) *Future[T] {
	future := newFuture[T]()

	err := a.pool.TrySubmit(ctx, workerpool.ExecutorFunc(func(execCtx context.Context) error {
		future.run(execCtx, fn)

		return future.err
	}))
	if err != nil {
		var zero T

		future.complete(zero, err)
	}

	return future
}

// AsyncClient mirrors Client with non-blocking executors backed by a
// bounded worker pool. Sync and async calls share one Client.
type AsyncClient struct {
	client *Client
	pool   *workerpool.WorkerPool
}

func NewAsync(client *Client, opts ...workerpool.Option) (*AsyncClient, error) {
	poolOpts := append([]workerpool.Option{
		workerpool.WithName("jigsawstack-async"),
		workerpool.WithLogger(client.logger),
		workerpool.WithWorkerCount(DefaultAsyncWorkers),
		workerpool.WithQueueSize(DefaultAsyncQueueSize),
	}, opts...)

	pool := workerpool.New(poolOpts...)

	if err := pool.Start(context.Background()); err != nil {
		return nil, err
	}

	return &AsyncClient{client: client, pool: pool}, nil
}

func (a *AsyncClient) Client() *Client {
	return a.client
}

func (a *AsyncClient) Close() error {
	return a.pool.Stop()
}

func (a *AsyncClient) Perform(ctx context.Context, req *Request, opts ...RequestOption) *Future[*Envelope] {
	return Async(ctx, a, func(ctx context.Context) (*Envelope, error) {
		return a.client.Perform(ctx, req, opts...)
	})
}

func (a *AsyncClient) PerformWithContent(ctx context.Context, req *Request, opts ...RequestOption) *Future[*Envelope] {
	return Async(ctx, a, func(ctx context.Context) (*Envelope, error) {
		return a.client.PerformWithContent(ctx, req, opts...)
	})
}

func (a *AsyncClient) PerformFile(ctx context.Context, req *Request, opts ...RequestOption) *Future[*Envelope] {
	return Async(ctx, a, func(ctx context.Context) (*Envelope, error) {
		return a.client.PerformFile(ctx, req, opts...)
	})
}

func (a *AsyncClient) PerformWithContentFile(
	ctx context.Context,
	req *Request,
	opts ...RequestOption,
) *Future[*Envelope] {
	return Async(ctx, a, func(ctx context.Context) (*Envelope, error) {
		return a.client.PerformWithContentFile(ctx, req, opts...)
	})
}

// PerformStreaming opens the stream on the pool. The stream is bound to the
// caller's ctx rather than the job's, so it outlives the job.
func (a *AsyncClient) PerformStreaming(ctx context.Context, req *Request, opts ...RequestOption) *Future[*Stream] {
	return Async(ctx, a, func(context.Context) (*Stream, error) {
		return a.client.PerformStreaming(ctx, req, opts...)
	})
}

func (a *AsyncClient) PerformWithContentStreaming(
	ctx context.Context,
	req *Request,
	opts ...RequestOption,
) *Future[*Stream] {
	return Async(ctx, a, func(context.Context) (*Stream, error) {
		return a.client.PerformWithContentStreaming(ctx, req, opts...)
	})
}
