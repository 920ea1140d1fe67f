package tui

import (
	"context"
	"errors"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rpggio/quotedesk/internal/coordinator"
)

// programPoster hands completions to the bubbletea event loop.
type programPoster struct {
	program *tea.Program
}

func (p programPoster) Post(fn func()) {
	p.program.Send(applyMsg{fn: fn})
}

// Run starts the terminal client against remote and blocks until the user
// quits or ctx is cancelled.
func Run(ctx context.Context, remote coordinator.Remote, logger *slog.Logger, opts ...tea.ProgramOption) error {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	model := New()
	opts = append([]tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}, opts...)
	program := tea.NewProgram(model, opts...)

	exec := coordinator.NewExecutor(ctx, programPoster{program: program}, logger)
	model.Bind(coordinator.New(remote, model, exec, coordinator.WithLogger(logger)))

	logger.Info("client started")
	_, err := program.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		err = nil
	}
	// Workers still in flight finish on their own, bounded by the client
	// timeout; their completions are dropped once the program has exited.
	logger.Info("client stopped")
	return err
}
