// Package resource bounds the process-wide resources a planner may use.
package resource

import (
	"context"
	"io"

	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"
)

// Config holds resource limits.
type Config struct {
	// MaxSearchWorkers is the maximum number of concurrent frontier
	// expansion workers. If 0, defaults to 1.
	MaxSearchWorkers int64

	// IOLimitBytesPerSec is the maximum snapshot read throughput.
	// If 0, unlimited.
	IOLimitBytesPerSec int64
}

// Controller manages worker concurrency and snapshot IO throughput.
type Controller struct {
	cfg Config

	workerSem *semaphore.Weighted
	ioLimiter *rate.Limiter // nil if unlimited
}

// NewController creates a new resource controller.
func NewController(cfg Config) *Controller {
	if cfg.MaxSearchWorkers <= 0 {
		cfg.MaxSearchWorkers = 1
	}

	c := &Controller{
		cfg:       cfg,
		workerSem: semaphore.NewWeighted(cfg.MaxSearchWorkers),
	}

	if cfg.IOLimitBytesPerSec > 0 {
		c.ioLimiter = rate.NewLimiter(rate.Limit(cfg.IOLimitBytesPerSec), int(cfg.IOLimitBytesPerSec))
	}

	return c
}

// MaxSearchWorkers returns the configured worker bound.
func (c *Controller) MaxSearchWorkers() int64 {
	return c.cfg.MaxSearchWorkers
}

// AcquireWorker blocks until a worker slot is available or ctx is done.
func (c *Controller) AcquireWorker(ctx context.Context) error {
	return c.workerSem.Acquire(ctx, 1)
}

// ReleaseWorker returns a worker slot.
func (c *Controller) ReleaseWorker() {
	c.workerSem.Release(1)
}

// ThrottleReader wraps r so reads respect the configured IO limit.
// Without a limit, r is returned unchanged.
func (c *Controller) ThrottleReader(ctx context.Context, r io.Reader) io.Reader {
	if c.ioLimiter == nil {
		return r
	}
	return &throttledReader{ctx: ctx, r: r, limiter: c.ioLimiter}
}

type throttledReader struct {
	ctx     context.Context
	r       io.Reader
	limiter *rate.Limiter
}

func (t *throttledReader) Read(p []byte) (int, error) {
	// Cap single reads at the limiter burst so a large read cannot demand
	// more tokens than the limiter can ever grant.
	if burst := t.limiter.Burst(); len(p) > burst {
		p = p[:burst]
	}

	n, err := t.r.Read(p)
	if n > 0 {
		if waitErr := t.limiter.WaitN(t.ctx, n); waitErr != nil && err == nil {
			err = waitErr
		}
	}
	return n, err
}
