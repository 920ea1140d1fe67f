package quote

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/rpggio/quotedesk/internal/domain/activity"
	"github.com/rpggio/quotedesk/internal/repository"
)

// Service handles quote business logic.
type Service struct {
	quotes     Repository
	search     SearchRepository
	activities ActivityRepository
	logger     *slog.Logger
}

// NewService creates a new quote service. search, activities and logger may
// be nil.
func NewService(
	quotes Repository,
	search SearchRepository,
	activities ActivityRepository,
	logger *slog.Logger,
) *Service {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Service{
		quotes:     quotes,
		search:     search,
		activities: activities,
		logger:     logger,
	}
}

// List returns stored quotes in storage order.
func (s *Service) List(ctx context.Context, opts ListOptions) ([]Quote, error) {
	quotes, err := s.quotes.List(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("listing quotes: %w", err)
	}
	if quotes == nil {
		quotes = []Quote{}
	}
	return quotes, nil
}

// Get loads a single quote.
func (s *Service) Get(ctx context.Context, id int64) (*Quote, error) {
	if err := ValidateID(id); err != nil {
		return nil, err
	}
	q, err := s.quotes.Get(ctx, id)
	if err != nil {
		return nil, mapRepoError("loading quote", err)
	}
	return q, nil
}

// Search runs a full-text query over text, author and tags.
func (s *Service) Search(ctx context.Context, query string, opts SearchOptions) ([]SearchResult, error) {
	if strings.TrimSpace(query) == "" {
		return nil, &ValidationError{Field: "query", Reason: "must not be empty"}
	}
	if s.search == nil {
		return nil, errors.New("search not configured")
	}
	results, err := s.search.Search(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("searching quotes: %w", err)
	}
	if results == nil {
		results = []SearchResult{}
	}
	return results, nil
}

// Create validates and stores a new quote.
func (s *Service) Create(ctx context.Context, in Input) (*Quote, error) {
	in = Normalize(in)
	if err := ValidateInput(in); err != nil {
		return nil, err
	}

	q := &Quote{Text: in.Text, Author: in.Author, Tags: in.Tags}
	if err := s.quotes.Create(ctx, q); err != nil {
		return nil, fmt.Errorf("creating quote: %w", err)
	}

	s.logActivity(ctx, activity.TypeQuoteCreated, &q.ID, fmt.Sprintf("created quote %d", q.ID))
	s.logger.Debug("quote created", "id", q.ID, "author", q.Author)
	return q, nil
}

// Update replaces the editable fields of an existing quote.
func (s *Service) Update(ctx context.Context, id int64, in Input) (*Quote, error) {
	if err := ValidateID(id); err != nil {
		return nil, err
	}
	in = Normalize(in)
	if err := ValidateInput(in); err != nil {
		return nil, err
	}

	q := &Quote{ID: id, Text: in.Text, Author: in.Author, Tags: in.Tags}
	if err := s.quotes.Update(ctx, q); err != nil {
		return nil, mapRepoError("updating quote", err)
	}

	s.logActivity(ctx, activity.TypeQuoteUpdated, &q.ID, fmt.Sprintf("updated quote %d", q.ID))
	s.logger.Debug("quote updated", "id", q.ID)
	return q, nil
}

// Delete removes a quote. Deleting a missing quote returns ErrQuoteNotFound.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := ValidateID(id); err != nil {
		return err
	}
	if err := s.quotes.Delete(ctx, id); err != nil {
		return mapRepoError("deleting quote", err)
	}

	s.logActivity(ctx, activity.TypeQuoteDeleted, &id, fmt.Sprintf("deleted quote %d", id))
	s.logger.Debug("quote deleted", "id", id)
	return nil
}

// Reset removes every stored quote.
func (s *Service) Reset(ctx context.Context) error {
	if err := s.quotes.Reset(ctx); err != nil {
		return fmt.Errorf("resetting quotes: %w", err)
	}
	return nil
}

// Import stores a batch of quotes in one transaction. Inputs that fail
// validation are skipped and counted in the returned skipped value.
func (s *Service) Import(ctx context.Context, inputs []Input) (imported []Quote, skipped int, err error) {
	batch := make([]*Quote, 0, len(inputs))
	for _, in := range inputs {
		in = Normalize(in)
		if err := ValidateInput(in); err != nil {
			s.logger.Warn("skipping invalid quote", "author", in.Author, "error", err)
			skipped++
			continue
		}
		batch = append(batch, &Quote{Text: in.Text, Author: in.Author, Tags: in.Tags})
	}
	if len(batch) == 0 {
		return []Quote{}, skipped, nil
	}

	if err := s.quotes.CreateBatch(ctx, batch); err != nil {
		return nil, skipped, fmt.Errorf("importing quotes: %w", err)
	}

	imported = make([]Quote, 0, len(batch))
	for _, q := range batch {
		imported = append(imported, *q)
	}
	s.logActivity(ctx, activity.TypeQuotesImported, nil, fmt.Sprintf("imported %d quotes", len(imported)))
	return imported, skipped, nil
}

func (s *Service) logActivity(ctx context.Context, typ activity.ActivityType, quoteID *int64, summary string) {
	if s.activities == nil {
		return
	}
	if err := s.activities.Log(ctx, &activity.ActivityEntry{
		QuoteID:      quoteID,
		ActivityType: typ,
		Summary:      summary,
	}); err != nil {
		s.logger.Warn("failed to log activity", "type", typ, "error", err)
	}
}

func mapRepoError(op string, err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return ErrQuoteNotFound
	}
	return fmt.Errorf("%s: %w", op, err)
}
