package events

import (
	"sync"
	"time"
)

// queue is an unbounded FIFO drained into out by a single goroutine.
//
// After close the backlog is still delivered, but only while someone keeps
// receiving: once a send has been pending for linger the rest is dropped and
// out is closed, so an abandoned queue never pins its goroutine.
type queue[T any] struct {
	linger time.Duration

	mu      sync.Mutex
	cond    *sync.Cond
	items   []T
	closed  bool
	closing chan struct{}
	out     chan T
}

func newQueue[T any](linger time.Duration) *queue[T] {
	q := &queue[T]{
		linger:  linger,
		closing: make(chan struct{}),
		out:     make(chan T),
	}
	q.cond = sync.NewCond(&q.mu)
	go q.run()
	return q
}

// push appends vs, or reports false once the queue is closed.
func (q *queue[T]) push(vs ...T) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return false
	}
	q.items = append(q.items, vs...)
	q.cond.Signal()
	return true
}

// close stops accepting items. Safe to call twice.
func (q *queue[T]) close() {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return
	}
	q.closed = true
	close(q.closing)
	q.cond.Signal()
}

// next blocks for the head item. It reports false once the queue is closed
// and empty.
func (q *queue[T]) next() (T, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	var zero T
	for len(q.items) == 0 && !q.closed {
		q.cond.Wait()
	}
	if len(q.items) == 0 {
		return zero, false
	}
	v := q.items[0]
	q.items[0] = zero
	q.items = q.items[1:]
	return v, true
}

func (q *queue[T]) drop() {
	q.mu.Lock()
	defer q.mu.Unlock()
	clear(q.items)
	q.items = nil
}

func (q *queue[T]) run() {
	defer close(q.out)
	closing := q.closing
	var timer *time.Timer
	var expired <-chan time.Time
	for {
		v, ok := q.next()
		if !ok {
			return
		}
	send:
		for {
			select {
			case q.out <- v:
				break send
			case <-closing:
				closing = nil
				timer = time.NewTimer(q.linger)
				defer timer.Stop()
				expired = timer.C
			case <-expired:
				q.drop()
				return
			}
		}
		if timer != nil {
			// The linger period restarts with every delivered item.
			timer.Reset(q.linger)
		}
	}
}
