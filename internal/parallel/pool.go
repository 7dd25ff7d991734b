package parallel

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// Pool is a pool of goroutines for batch processing.
//
// The pool distributes jobs across multiple workers, each with their own
// queue. Workers can steal jobs from other workers when their own queue is
// empty, which balances load when some jobs are slower than others - a
// batch of image files rarely costs the same per file.
//
// Thread safety: Pool is safe for concurrent use.
type Pool struct {
	// workers is the number of worker goroutines.
	workers int

	// queues holds per-worker job queues.
	// Each worker primarily pulls from its own queue but can steal from others.
	queues []chan func()

	// done signals workers to stop.
	done chan struct{}

	// wg waits for all workers to finish.
	wg sync.WaitGroup

	// running indicates whether the pool is accepting jobs.
	running atomic.Bool
}

// NewPool creates a pool with the specified number of workers.
// If workers is 0 or negative, GOMAXPROCS is used.
// The pool starts immediately and workers begin waiting for jobs.
func NewPool(workers int) *Pool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	// A few queued jobs per worker hides submission latency.
	queueSize := workers * 4
	if queueSize < 8 {
		queueSize = 8
	}

	p := &Pool{
		workers: workers,
		queues:  make([]chan func(), workers),
		done:    make(chan struct{}),
	}
	for i := 0; i < workers; i++ {
		p.queues[i] = make(chan func(), queueSize)
	}

	p.running.Store(true)

	p.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go p.worker(i)
	}

	return p
}

// worker is the main loop for each worker goroutine.
func (p *Pool) worker(id int) {
	defer p.wg.Done()

	mine := p.queues[id]

	for {
		select {
		case <-p.done:
			// Drain remaining jobs before exiting
			p.drain(mine)
			return

		case job := <-mine:
			if job != nil {
				job()
			}

		default:
			// Try to steal a job from another worker
			if stolen := p.steal(id); stolen != nil {
				stolen()
			} else {
				// Nothing available anywhere, block on own queue
				select {
				case <-p.done:
					p.drain(mine)
					return
				case job := <-mine:
					if job != nil {
						job()
					}
				}
			}
		}
	}
}

// drain executes all remaining jobs in a queue.
func (p *Pool) drain(queue chan func()) {
	for {
		select {
		case job := <-queue:
			if job != nil {
				job()
			}
		default:
			return
		}
	}
}

// steal attempts to take a job from another worker's queue.
// Returns nil if no job is available.
func (p *Pool) steal(myID int) func() {
	for i := 0; i < p.workers; i++ {
		if i == myID {
			continue
		}
		select {
		case job := <-p.queues[i]:
			return job
		default:
			// Queue is empty, try next
		}
	}
	return nil
}

// ExecuteAll distributes the jobs across workers and waits for all of
// them to complete. If the pool is closed, this is a no-op.
func (p *Pool) ExecuteAll(jobs []func()) {
	if len(jobs) == 0 || !p.running.Load() {
		return
	}

	var completionWG sync.WaitGroup
	completionWG.Add(len(jobs))

	for i, fn := range jobs {
		workerID := i % p.workers
		job := fn

		wrapped := func() {
			defer completionWG.Done()
			job()
		}

		// Submit to the worker's queue (may block if the queue is full)
		select {
		case p.queues[workerID] <- wrapped:
		case <-p.done:
			completionWG.Done()
		}
	}

	completionWG.Wait()
}

// Submit sends a single job to the pool without waiting for it.
// The job goes to the worker with the shortest queue.
// If the pool is closed, this is a no-op.
func (p *Pool) Submit(fn func()) {
	if fn == nil || !p.running.Load() {
		return
	}

	// Find the worker with the shortest queue (simple load balancing)
	minLen := len(p.queues[0])
	minIdx := 0
	for i := 1; i < p.workers; i++ {
		if qLen := len(p.queues[i]); qLen < minLen {
			minLen = qLen
			minIdx = i
		}
	}

	select {
	case p.queues[minIdx] <- fn:
	case <-p.done:
		// Pool is closing
	}
}

// Close gracefully shuts down the pool.
// It stops accepting new jobs, waits for all queued jobs to complete,
// and then stops all workers.
// Close is safe to call multiple times.
func (p *Pool) Close() {
	if !p.running.CompareAndSwap(true, false) {
		// Already closed
		return
	}

	close(p.done)
	p.wg.Wait()
}

// Workers returns the number of workers in the pool.
func (p *Pool) Workers() int {
	return p.workers
}

// IsRunning returns true if the pool is still accepting jobs.
func (p *Pool) IsRunning() bool {
	return p.running.Load()
}
