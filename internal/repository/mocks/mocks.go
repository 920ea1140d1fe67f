package mocks

import (
	"context"

	"github.com/rpggio/quotedesk/internal/domain/activity"
	"github.com/rpggio/quotedesk/internal/domain/quote"
	"github.com/stretchr/testify/mock"
)

// QuoteRepository is a mock for quote.Repository.
type QuoteRepository struct {
	mock.Mock
}

func (m *QuoteRepository) Create(ctx context.Context, q *quote.Quote) error {
	args := m.Called(ctx, q)
	return args.Error(0)
}

func (m *QuoteRepository) CreateBatch(ctx context.Context, quotes []*quote.Quote) error {
	args := m.Called(ctx, quotes)
	return args.Error(0)
}

func (m *QuoteRepository) Get(ctx context.Context, id int64) (*quote.Quote, error) {
	args := m.Called(ctx, id)
	if q, ok := args.Get(0).(*quote.Quote); ok {
		return q, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *QuoteRepository) Update(ctx context.Context, q *quote.Quote) error {
	args := m.Called(ctx, q)
	return args.Error(0)
}

func (m *QuoteRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *QuoteRepository) List(ctx context.Context, opts quote.ListOptions) ([]quote.Quote, error) {
	args := m.Called(ctx, opts)
	if list, ok := args.Get(0).([]quote.Quote); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *QuoteRepository) Reset(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// SearchRepository is a mock for quote.SearchRepository.
type SearchRepository struct {
	mock.Mock
}

func (m *SearchRepository) Search(ctx context.Context, query string, opts quote.SearchOptions) ([]quote.SearchResult, error) {
	args := m.Called(ctx, query, opts)
	if list, ok := args.Get(0).([]quote.SearchResult); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

// ActivityRepository is a mock for activity.Repository.
type ActivityRepository struct {
	mock.Mock
}

func (m *ActivityRepository) Log(ctx context.Context, entry *activity.ActivityEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *ActivityRepository) List(ctx context.Context, opts activity.ListActivityOptions) ([]activity.ActivityEntry, error) {
	args := m.Called(ctx, opts)
	if list, ok := args.Get(0).([]activity.ActivityEntry); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}
