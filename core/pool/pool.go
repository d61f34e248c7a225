// Package pool provides a bounded worker pool for the per-file extraction
// map. Each submitted job reads its own file and writes its own result slot,
// so jobs share no mutable state; aggregate sums are reduced by the caller
// after Wait returns.
package pool

import (
	"errors"
	"runtime"
	"sync"
	"sync/atomic"
)

// ErrPoolClosed is returned when submitting to a pool after Wait or Close.
var ErrPoolClosed = errors.New("worker pool is closed")

// Config configures a worker pool.
type Config struct {
	// Workers is the number of concurrent workers.
	Workers int

	// QueueSize bounds the pending-job channel.
	QueueSize int
}

// DefaultConfig returns sensible defaults sized to the host.
func DefaultConfig() Config {
	return Config{
		Workers:   runtime.NumCPU(),
		QueueSize: 256,
	}
}

// Pool is a one-shot bounded worker pool: submit jobs, then Wait for all of
// them to settle. A pool cannot be reused after Wait.
type Pool struct {
	jobs   chan func()
	wg     sync.WaitGroup
	closed atomic.Bool

	submitted atomic.Int64
	completed atomic.Int64
}

// New creates and starts a pool.
func New(cfg Config) *Pool {
	if cfg.Workers <= 0 {
		cfg.Workers = runtime.NumCPU()
	}
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = 256
	}

	p := &Pool{
		jobs: make(chan func(), cfg.QueueSize),
	}

	p.wg.Add(cfg.Workers)
	for i := 0; i < cfg.Workers; i++ {
		go p.worker()
	}

	return p
}

// worker drains the job channel until it is closed.
func (p *Pool) worker() {
	defer p.wg.Done()

	for job := range p.jobs {
		job()
		p.completed.Add(1)
	}
}

// Submit enqueues a job, blocking when the queue is full.
func (p *Pool) Submit(job func()) error {
	if p.closed.Load() {
		return ErrPoolClosed
	}

	p.submitted.Add(1)
	p.jobs <- job
	return nil
}

// Wait closes the queue and blocks until every submitted job has completed.
func (p *Pool) Wait() {
	if p.closed.CompareAndSwap(false, true) {
		close(p.jobs)
	}
	p.wg.Wait()
}

// Submitted returns the number of jobs accepted.
func (p *Pool) Submitted() int64 {
	return p.submitted.Load()
}

// Completed returns the number of jobs finished.
func (p *Pool) Completed() int64 {
	return p.completed.Load()
}
