package coordinator

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/rpggio/quotedesk/internal/client/remote"
	"github.com/rpggio/quotedesk/internal/domain/quote"
	"github.com/stretchr/testify/require"
)

// fakeRemote is an in-memory Remote. Workers call it concurrently.
type fakeRemote struct {
	mu          sync.Mutex
	quotes      []quote.Quote
	nextID      int64
	listCalls   int
	createCalls int
	updateCalls int
	deleteCalls int

	// listGate, when set, holds ListQuotes until it is closed.
	listGate chan struct{}
	listErr  error
}

func (f *fakeRemote) ListQuotes(ctx context.Context) ([]quote.Quote, error) {
	f.mu.Lock()
	f.listCalls++
	gate := f.listGate
	f.mu.Unlock()

	if gate != nil {
		<-gate
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]quote.Quote{}, f.quotes...), nil
}

func (f *fakeRemote) CreateQuote(_ context.Context, in quote.Input) (*quote.Quote, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.createCalls++
	f.nextID++
	q := quote.Quote{ID: f.nextID, Text: in.Text, Author: in.Author, Tags: in.Tags}
	f.quotes = append(f.quotes, q)
	return &q, nil
}

func (f *fakeRemote) UpdateQuote(_ context.Context, id int64, in quote.Input) (*quote.Quote, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updateCalls++
	for i := range f.quotes {
		if f.quotes[i].ID == id {
			f.quotes[i] = quote.Quote{ID: id, Text: in.Text, Author: in.Author, Tags: in.Tags}
			q := f.quotes[i]
			return &q, nil
		}
	}
	return nil, notFound("update quote")
}

func (f *fakeRemote) DeleteQuote(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleteCalls++
	for i := range f.quotes {
		if f.quotes[i].ID == id {
			f.quotes = append(f.quotes[:i], f.quotes[i+1:]...)
			return nil
		}
	}
	return notFound("delete quote")
}

func (f *fakeRemote) calls() (list, create, update, del int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.listCalls, f.createCalls, f.updateCalls, f.deleteCalls
}

func notFound(op string) error {
	return &remote.ServiceError{Op: op, StatusCode: http.StatusNotFound, Message: "quote not found"}
}

// recorder is a Renderer that records every call. It is only touched on
// the goroutine driving the loop.
type recorder struct {
	lists   [][]quote.Quote
	errors  []string
	notices []string
	cleared int
	busy    []string
}

func (r *recorder) RenderList(quotes []quote.Quote) { r.lists = append(r.lists, quotes) }
func (r *recorder) RenderError(msg string)          { r.errors = append(r.errors, msg) }
func (r *recorder) RenderFormCleared()              { r.cleared++ }
func (r *recorder) RenderNotice(msg string)         { r.notices = append(r.notices, msg) }
func (r *recorder) SetBusy(action Action, busy bool) {
	r.busy = append(r.busy, fmt.Sprintf("%s=%t", action, busy))
}

// countingGate counts Leave calls per action on top of a real Gate.
type countingGate struct {
	*Gate
	leaves map[Action]int
}

func newCountingGate() *countingGate {
	return &countingGate{Gate: NewGate(), leaves: map[Action]int{}}
}

func (g *countingGate) Leave(action Action) {
	g.leaves[action]++
	g.Gate.Leave(action)
}

// stubDispatcher records dispatches without running them.
type stubDispatcher struct {
	actions []Action
}

func (d *stubDispatcher) Dispatch(action Action, _ Operation, _ func(Outcome)) string {
	d.actions = append(d.actions, action)
	return fmt.Sprintf("stub-%d", len(d.actions))
}

// harness runs the coordinator with the test goroutine as the
// presentation goroutine.
type harness struct {
	loop   *Loop
	exec   *Executor
	coord  *Coordinator
	remote *fakeRemote
	view   *recorder
}

func newHarness(t *testing.T, r *fakeRemote) *harness {
	t.Helper()
	loop := NewLoop(16)
	exec := NewExecutor(context.Background(), loop, nil)
	view := &recorder{}
	h := &harness{
		loop:   loop,
		exec:   exec,
		coord:  New(r, view, exec),
		remote: r,
		view:   view,
	}
	t.Cleanup(func() {
		loop.Stop()
		exec.Wait()
	})
	return h
}

// step applies the next posted completion.
func (h *harness) step(t *testing.T) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, h.loop.Step(ctx))
}

// idle asserts nothing else gets posted for a short while.
func (h *harness) idle(t *testing.T) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	require.ErrorIs(t, h.loop.Step(ctx), context.DeadlineExceeded)
}
