package controls

import (
	"context"
	"sync"
)

// Loop is a single-consumer callback queue.
type Loop struct {
	queue chan func()
	done  chan struct{}
	once  sync.Once
}

// NewLoop creates a [Loop] buffering up to size callbacks before [Loop.Post] blocks.
func NewLoop(size int) *Loop {
	if size < 1 {
		size = 1
	}
	return &Loop{queue: make(chan func(), size), done: make(chan struct{})}
}

// Post queues fn. Safe to call from any goroutine. After [Loop.Close], fn is dropped.
func (l *Loop) Post(fn func()) {
	select {
	case <-l.done:
		return
	default:
	}

	select {
	case l.queue <- fn:
	case <-l.done:
	}
}

// Close releases every blocked and future [Loop.Post]. Safe to call more than once.
func (l *Loop) Close() {
	l.once.Do(func() { close(l.done) })
}

// Next exposes the queue for hosts that drain it from their own event loop.
func (l *Loop) Next() <-chan func() {
	return l.queue
}

// Run drains the queue on the calling goroutine until ctx is done or the loop is closed.
func (l *Loop) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-l.done:
			return nil
		case fn := <-l.queue:
			fn()
		}
	}
}

// Drain runs every callback currently queued without blocking and returns how many ran.
func (l *Loop) Drain() int {
	n := 0
	for {
		select {
		case fn := <-l.queue:
			fn()
			n++
		default:
			return n
		}
	}
}
