package tasks

import (
	"sync"
	"sync/atomic"
	"testing"
)

func TestPoolRunsAllTasks(t *testing.T) {
	p := NewPool(4)

	var count atomic.Int64
	for i := 0; i < 100; i++ {
		p.Submit(func() {
			count.Add(1)
		})
	}
	p.Close()

	if got := count.Load(); got != 100 {
		t.Errorf("expected 100 tasks run, got %d", got)
	}
}

func TestPoolDefaultWorkerCount(t *testing.T) {
	p := NewPool(0)

	done := make(chan struct{})
	p.Submit(func() { close(done) })
	<-done
	p.Close()
}

func TestMainQueueRunsOnCallingGoroutine(t *testing.T) {
	q := NewMainQueue()
	done := make(chan struct{})

	var wg sync.WaitGroup
	var posted atomic.Int64
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 10; j++ {
				q.Post(func() { posted.Add(1) })
			}
		}()
	}

	go func() {
		wg.Wait()
		close(done)
	}()

	q.RunUntil(done)

	if got := posted.Load(); got != 80 {
		t.Errorf("expected 80 tasks executed, got %d", got)
	}
}
