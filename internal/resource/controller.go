package resource

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"
)

// ErrMemoryLimitExceeded is returned when a reservation would exceed the memory budget.
var ErrMemoryLimitExceeded = errors.New("memory limit exceeded")

// Config holds resource limits.
type Config struct {
	// MaxConcurrentFits is the number of fits allowed to run at once.
	// If 0, defaults to 1.
	MaxConcurrentFits int64

	// MemoryLimitBytes caps the memory reserved by running fits.
	// If 0, reservations are only tracked.
	MemoryLimitBytes int64

	// IOLimitBytesPerSec caps archive throughput. If 0, unlimited.
	IOLimitBytesPerSec int64
}

// Controller hands out fit slots, memory reservations and IO tokens.
type Controller struct {
	cfg Config

	fitSem  *semaphore.Weighted
	memSem  *semaphore.Weighted // nil if unlimited
	memUsed atomic.Int64
	running atomic.Int64

	ioLimiter *rate.Limiter
}

// NewController creates a new resource controller.
func NewController(cfg Config) *Controller {
	if cfg.MaxConcurrentFits <= 0 {
		cfg.MaxConcurrentFits = 1
	}

	c := &Controller{
		cfg:    cfg,
		fitSem: semaphore.NewWeighted(cfg.MaxConcurrentFits),
	}

	if cfg.MemoryLimitBytes > 0 {
		c.memSem = semaphore.NewWeighted(cfg.MemoryLimitBytes)
	}

	if cfg.IOLimitBytesPerSec > 0 {
		c.ioLimiter = rate.NewLimiter(rate.Limit(cfg.IOLimitBytesPerSec), int(cfg.IOLimitBytesPerSec))
	}

	return c
}

// Lease is a fit slot plus a memory reservation. Release is idempotent.
type Lease struct {
	c     *Controller
	bytes int64
	once  sync.Once
}

// Release returns the slot and the memory to the controller.
func (l *Lease) Release() {
	if l == nil || l.c == nil {
		return
	}
	l.once.Do(func() {
		l.c.releaseMemory(l.bytes)
		l.c.running.Add(-1)
		l.c.fitSem.Release(1)
	})
}

// AcquireFit blocks until a fit slot is free, then reserves memBytes.
// The slot is given back if the reservation fails.
func (c *Controller) AcquireFit(ctx context.Context, memBytes int64) (*Lease, error) {
	if c == nil {
		return &Lease{}, nil
	}
	if err := c.fitSem.Acquire(ctx, 1); err != nil {
		return nil, err
	}
	if err := c.reserveMemory(memBytes); err != nil {
		c.fitSem.Release(1)
		return nil, fmt.Errorf("%w: need %d bytes, %d of %d in use", err, memBytes, c.MemoryUsage(), c.cfg.MemoryLimitBytes)
	}
	c.running.Add(1)
	return &Lease{c: c, bytes: max(memBytes, 0)}, nil
}

func (c *Controller) reserveMemory(bytes int64) error {
	if bytes <= 0 {
		return nil
	}
	if c.memSem != nil && !c.memSem.TryAcquire(bytes) {
		return ErrMemoryLimitExceeded
	}
	c.memUsed.Add(bytes)
	return nil
}

func (c *Controller) releaseMemory(bytes int64) {
	if bytes <= 0 {
		return
	}
	if c.memSem != nil {
		c.memSem.Release(bytes)
	}
	c.memUsed.Add(-bytes)
}

// MemoryUsage returns the bytes currently reserved.
func (c *Controller) MemoryUsage() int64 {
	if c == nil {
		return 0
	}
	return c.memUsed.Load()
}

// MemoryLimit returns the configured memory limit in bytes (0 if unlimited).
func (c *Controller) MemoryLimit() int64 {
	if c == nil {
		return 0
	}
	return c.cfg.MemoryLimitBytes
}

// RunningFits returns the number of leases currently held.
func (c *Controller) RunningFits() int64 {
	if c == nil {
		return 0
	}
	return c.running.Load()
}

// MaxConcurrentFits returns the configured fit concurrency.
func (c *Controller) MaxConcurrentFits() int {
	if c == nil {
		return 1
	}
	return int(c.cfg.MaxConcurrentFits)
}

// AcquireIO waits until the IO limit allows n bytes. Requests larger than
// one second of budget are split so they never exceed the bucket size.
func (c *Controller) AcquireIO(ctx context.Context, n int) error {
	if c == nil || c.ioLimiter == nil {
		return nil
	}
	burst := c.ioLimiter.Burst()
	for n > 0 {
		chunk := min(n, burst)
		if err := c.ioLimiter.WaitN(ctx, chunk); err != nil {
			return err
		}
		n -= chunk
	}
	return nil
}
