package coordinator

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"
)

// Operation is one unit of remote work run off the presentation goroutine.
type Operation func(ctx context.Context) (any, error)

// Dispatcher runs operations in the background.
type Dispatcher interface {
	Dispatch(action Action, op Operation, onComplete func(Outcome)) string
}

// Executor runs each dispatched operation on its own goroutine and posts
// the completion back through a Poster.
type Executor struct {
	ctx    context.Context
	poster Poster
	logger *slog.Logger
	wg     sync.WaitGroup
}

// NewExecutor creates an executor. Operations get a context carrying the
// values of ctx but never its cancellation: once dispatched they run to
// completion.
func NewExecutor(ctx context.Context, poster Poster, logger *slog.Logger) *Executor {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Executor{
		ctx:    context.WithoutCancel(ctx),
		poster: poster,
		logger: logger,
	}
}

// Dispatch starts op and returns the dispatch id. onComplete receives the
// outcome on the presentation goroutine, after op returned.
func (e *Executor) Dispatch(action Action, op Operation, onComplete func(Outcome)) string {
	id := uuid.NewString()
	e.wg.Add(1)
	go func() {
		defer e.wg.Done()
		outcome := e.run(action, id, op)
		e.poster.Post(func() { onComplete(outcome) })
	}()
	return id
}

// Wait blocks until every dispatched worker has posted its completion.
func (e *Executor) Wait() {
	e.wg.Wait()
}

func (e *Executor) run(action Action, id string, op Operation) (outcome Outcome) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("operation panicked", "action", action, "dispatch_id", id, "panic", r)
			outcome = Failure(fmt.Errorf("%s: unexpected failure: %v", action, r))
		}
	}()

	e.logger.Debug("operation started", "action", action, "dispatch_id", id)
	value, err := op(e.ctx)
	if err != nil {
		e.logger.Debug("operation failed", "action", action, "dispatch_id", id, "error", err)
		return Failure(err)
	}
	e.logger.Debug("operation finished", "action", action, "dispatch_id", id)
	return Success(value)
}
