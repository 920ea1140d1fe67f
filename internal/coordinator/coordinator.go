package coordinator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/rpggio/quotedesk/internal/client/remote"
	"github.com/rpggio/quotedesk/internal/domain/quote"
)

// Remote is the quote store the coordinator talks to.
type Remote interface {
	ListQuotes(ctx context.Context) ([]quote.Quote, error)
	CreateQuote(ctx context.Context, in quote.Input) (*quote.Quote, error)
	UpdateQuote(ctx context.Context, id int64, in quote.Input) (*quote.Quote, error)
	DeleteQuote(ctx context.Context, id int64) error
}

// Renderer is implemented by the presentation surface. Every method is
// called on the presentation goroutine.
type Renderer interface {
	RenderList(quotes []quote.Quote)
	RenderError(msg string)
	RenderFormCleared()
	RenderNotice(msg string)
	SetBusy(action Action, busy bool)
}

// Coordinator turns surface intents into background calls and applies
// their outcomes. It is owned by the presentation goroutine.
type Coordinator struct {
	remote   Remote
	renderer Renderer
	exec     Dispatcher
	gate     ActionGate
	logger   *slog.Logger
}

// Option configures a Coordinator.
type Option func(*Coordinator)

// WithGate replaces the default per-action gate.
func WithGate(gate ActionGate) Option {
	return func(c *Coordinator) { c.gate = gate }
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Coordinator) { c.logger = logger }
}

// New creates a coordinator.
func New(r Remote, renderer Renderer, exec Dispatcher, opts ...Option) *Coordinator {
	c := &Coordinator{
		remote:   r,
		renderer: renderer,
		exec:     exec,
		gate:     NewGate(),
		logger:   slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// OnRefreshRequested reloads the list.
func (c *Coordinator) OnRefreshRequested() {
	c.dispatch(ActionRefresh, func(ctx context.Context) (any, error) {
		return c.remote.ListQuotes(ctx)
	})
}

// OnAddRequested creates a quote. Invalid input is reported synchronously
// and never dispatched.
func (c *Coordinator) OnAddRequested(in quote.Input) {
	in = quote.Normalize(in)
	if err := quote.ValidateInput(in); err != nil {
		c.rejectInvalid(ActionAdd, err)
		return
	}
	c.dispatch(ActionAdd, func(ctx context.Context) (any, error) {
		return c.remote.CreateQuote(ctx, in)
	})
}

// OnUpdateRequested replaces the quote with the given id.
func (c *Coordinator) OnUpdateRequested(id int64, in quote.Input) {
	in = quote.Normalize(in)
	err := validateSelection(id)
	if err == nil {
		err = quote.ValidateInput(in)
	}
	if err != nil {
		c.rejectInvalid(ActionUpdate, err)
		return
	}
	c.dispatch(ActionUpdate, func(ctx context.Context) (any, error) {
		return c.remote.UpdateQuote(ctx, id, in)
	})
}

// OnDeleteRequested removes the quote with the given id.
func (c *Coordinator) OnDeleteRequested(id int64) {
	if err := validateSelection(id); err != nil {
		c.rejectInvalid(ActionDelete, err)
		return
	}
	c.dispatch(ActionDelete, func(ctx context.Context) (any, error) {
		return id, c.remote.DeleteQuote(ctx, id)
	})
}

// Apply consumes an outcome on the presentation goroutine. The action's
// gate is released on every path.
func (c *Coordinator) Apply(action Action, outcome Outcome) {
	defer c.gate.Leave(action)
	c.renderer.SetBusy(action, false)

	if !outcome.OK() {
		c.logger.Info("action failed", "action", action, "error", outcome.Err)
		c.renderer.RenderError(failureMessage(action, outcome.Err))
		return
	}

	switch action {
	case ActionRefresh:
		quotes, ok := outcome.Value.([]quote.Quote)
		if !ok {
			c.renderer.RenderError(unexpectedResult(action, outcome.Value))
			return
		}
		c.renderer.RenderList(quotes)
		c.renderer.RenderNotice(fmt.Sprintf("loaded %d quotes", len(quotes)))

	case ActionAdd, ActionUpdate:
		q, ok := outcome.Value.(*quote.Quote)
		if !ok || q == nil {
			c.renderer.RenderError(unexpectedResult(action, outcome.Value))
			return
		}
		c.renderer.RenderFormCleared()
		if action == ActionAdd {
			c.renderer.RenderNotice(fmt.Sprintf("added quote %d", q.ID))
		} else {
			c.renderer.RenderNotice(fmt.Sprintf("updated quote %d", q.ID))
		}
		c.OnRefreshRequested()

	case ActionDelete:
		c.renderer.RenderFormCleared()
		if id, ok := outcome.Value.(int64); ok {
			c.renderer.RenderNotice(fmt.Sprintf("deleted quote %d", id))
		} else {
			c.renderer.RenderNotice("quote deleted")
		}
		c.OnRefreshRequested()
	}
}

// InFlight reports whether action is admitted and not yet applied. It is
// only meaningful with the default gate.
func (c *Coordinator) InFlight(action Action) bool {
	g, ok := c.gate.(*Gate)
	return ok && g.InFlight(action)
}

func (c *Coordinator) dispatch(action Action, op Operation) {
	if !c.gate.TryEnter(action) {
		c.logger.Debug("intent dropped, action in flight", "action", action)
		return
	}
	c.renderer.SetBusy(action, true)
	id := c.exec.Dispatch(action, op, func(outcome Outcome) {
		c.Apply(action, outcome)
	})
	c.logger.Debug("action dispatched", "action", action, "dispatch_id", id)
}

func (c *Coordinator) rejectInvalid(action Action, err error) {
	c.logger.Debug("intent rejected", "action", action, "error", err)
	c.renderer.RenderError(fmt.Sprintf("%s: %v", action, err))
}

func validateSelection(id int64) error {
	if id <= 0 {
		return &quote.ValidationError{Field: "quote", Reason: "must be selected"}
	}
	return nil
}

func failureMessage(action Action, err error) string {
	var netErr *remote.NetworkError
	switch {
	case errors.Is(err, remote.ErrNotFound):
		return fmt.Sprintf("%s failed: quote not found", action)
	case errors.As(err, &netErr):
		return fmt.Sprintf("%s failed: service unreachable: %v", action, netErr.Err)
	default:
		return fmt.Sprintf("%s failed: %v", action, err)
	}
}

func unexpectedResult(action Action, value any) string {
	return fmt.Sprintf("%s failed: unexpected result %T", action, value)
}
