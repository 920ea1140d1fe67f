package coordinator

import (
	"context"
	"errors"
	"sync"
)

// ErrLoopStopped is returned by Step once the loop was stopped.
var ErrLoopStopped = errors.New("presentation loop stopped")

// Poster schedules fn on the presentation goroutine. Post is called from
// worker goroutines and must not run fn inline.
type Poster interface {
	Post(fn func())
}

// PosterFunc adapts a function to Poster.
type PosterFunc func(fn func())

// Post implements Poster.
func (f PosterFunc) Post(fn func()) {
	f(fn)
}

// Loop is a channel-backed presentation loop for surfaces that do not
// bring their own event queue. The goroutine calling Run or Step is the
// presentation goroutine.
type Loop struct {
	queue chan func()
	stop  chan struct{}
	once  sync.Once
}

// NewLoop creates a loop whose queue holds up to buffer pending callbacks
// before Post blocks the posting worker.
func NewLoop(buffer int) *Loop {
	if buffer < 0 {
		buffer = 0
	}
	return &Loop{
		queue: make(chan func(), buffer),
		stop:  make(chan struct{}),
	}
}

// Post queues fn. After Stop it drops fn instead of blocking.
func (l *Loop) Post(fn func()) {
	select {
	case l.queue <- fn:
	case <-l.stop:
	}
}

// Step runs exactly one queued callback, waiting for one to arrive.
func (l *Loop) Step(ctx context.Context) error {
	select {
	case fn := <-l.queue:
		fn()
		return nil
	case <-l.stop:
		return ErrLoopStopped
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Run processes callbacks until ctx is done or Stop is called.
func (l *Loop) Run(ctx context.Context) error {
	for {
		if err := l.Step(ctx); err != nil {
			if errors.Is(err, ErrLoopStopped) {
				return nil
			}
			return err
		}
	}
}

// Stop ends Run and makes later Posts no-ops. It is safe to call twice.
func (l *Loop) Stop() {
	l.once.Do(func() { close(l.stop) })
}
