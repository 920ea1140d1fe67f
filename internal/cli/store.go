package cli

import (
	"fmt"
	"log/slog"

	"github.com/rpggio/quotedesk/internal/domain/activity"
	"github.com/rpggio/quotedesk/internal/domain/quote"
	"github.com/rpggio/quotedesk/internal/sqlite"
)

// store is the opened database with its services.
type store struct {
	db       *sqlite.DB
	quotes   *quote.Service
	activity *activity.Service
}

func openStore(path string, logger *slog.Logger) (*store, error) {
	if err := ensureDir(path); err != nil {
		return nil, fmt.Errorf("failed to prepare database path: %w", err)
	}

	db, err := sqlite.New(path)
	if err != nil {
		return nil, err
	}
	if err := db.RunMigrations(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	quoteRepo := sqlite.NewQuoteRepository(db)
	searchRepo := sqlite.NewSearchRepository(db)
	activityRepo := sqlite.NewActivityRepository(db)

	logger.Debug("database ready", "path", path)
	return &store{
		db:       db,
		quotes:   quote.NewService(quoteRepo, searchRepo, activityRepo, logger),
		activity: activity.NewService(activityRepo, logger),
	}, nil
}

func (s *store) Close() error {
	return s.db.Close()
}
