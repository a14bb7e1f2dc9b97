// Package tasks provides the worker pool used for per-block compute and a
// queue serializing work onto the thread that owns the graphics context.
package tasks

import (
	"runtime"
	"sync"
)

// Pool is a fixed-size worker pool. Tasks are independent; the pool gives
// no ordering guarantees between them.
type Pool struct {
	work chan func()
	wg   sync.WaitGroup
}

// NewPool starts a pool with the given number of workers; zero or negative
// means one per CPU.
func NewPool(workers int) *Pool {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	p := &Pool{
		work: make(chan func(), workers*2),
	}
	p.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer p.wg.Done()
			for fn := range p.work {
				fn()
			}
		}()
	}
	return p
}

// Submit enqueues a task. It blocks when the queue is full. Submitting
// after Close panics.
func (p *Pool) Submit(fn func()) {
	p.work <- fn
}

// Close stops accepting tasks and waits for queued ones to finish.
func (p *Pool) Close() {
	close(p.work)
	p.wg.Wait()
}

// MainQueue serializes tasks onto one designated thread, typically the one
// owning the graphics context. Producers Post from any goroutine; the
// owning thread consumes with RunUntil.
type MainQueue struct {
	tasks chan func()
}

// NewMainQueue returns an empty queue.
func NewMainQueue() *MainQueue {
	return &MainQueue{
		tasks: make(chan func(), 64),
	}
}

// Post enqueues fn for execution on the owning thread. Blocks when the
// queue is full.
func (q *MainQueue) Post(fn func()) {
	q.tasks <- fn
}

// RunUntil executes posted tasks on the calling thread until done is closed
// and the queue has drained.
func (q *MainQueue) RunUntil(done <-chan struct{}) {
	for {
		select {
		case fn := <-q.tasks:
			fn()
		case <-done:
			for {
				select {
				case fn := <-q.tasks:
					fn()
				default:
					return
				}
			}
		}
	}
}
