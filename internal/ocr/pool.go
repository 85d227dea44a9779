package ocr

import (
	"context"
	"sync"
)

// Pool is a bounded pool of OCR workers. Workers are created lazily
// up to capacity; beyond that, callers queue FIFO until a worker is
// released. Release hands the worker directly to the oldest waiter
// instead of parking it, so queue order is respected.
type Pool struct {
	mu       sync.Mutex
	capacity int
	created  int
	idle     []*Worker
	waiters  []chan *Worker
	factory  func() (*Worker, error)
}

func NewPool(capacity int, factory func() (*Worker, error)) *Pool {
	if capacity <= 0 {
		capacity = 1
	}
	return &Pool{capacity: capacity, factory: factory}
}

// Acquire returns an idle worker, creates one if the pool is below
// capacity, or blocks in FIFO order until one is released. A caller
// whose ctx expires while queued backs out without leaking a slot.
func (p *Pool) Acquire(ctx context.Context) (*Worker, error) {
	p.mu.Lock()
	if n := len(p.idle); n > 0 {
		w := p.idle[n-1]
		p.idle = p.idle[:n-1]
		p.mu.Unlock()
		return w, nil
	}
	if p.created < p.capacity {
		p.created++
		p.mu.Unlock()
		w, err := p.factory()
		if err != nil {
			p.mu.Lock()
			p.created--
			p.mu.Unlock()
			return nil, err
		}
		return w, nil
	}
	ch := make(chan *Worker, 1)
	p.waiters = append(p.waiters, ch)
	p.mu.Unlock()

	select {
	case w := <-ch:
		return w, nil
	case <-ctx.Done():
		p.mu.Lock()
		for i, c := range p.waiters {
			if c == ch {
				p.waiters = append(p.waiters[:i], p.waiters[i+1:]...)
				break
			}
		}
		p.mu.Unlock()
		// A release may have raced the cancellation; put the handed
		// worker back so it is not lost.
		select {
		case w := <-ch:
			p.Release(w)
		default:
		}
		return nil, ctx.Err()
	}
}

// Release returns a worker to the pool, preferring the oldest waiter.
func (p *Pool) Release(w *Worker) {
	p.mu.Lock()
	if len(p.waiters) > 0 {
		ch := p.waiters[0]
		p.waiters = p.waiters[1:]
		p.mu.Unlock()
		ch <- w
		return
	}
	p.idle = append(p.idle, w)
	p.mu.Unlock()
}
