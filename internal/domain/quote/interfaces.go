package quote

import (
	"context"

	"github.com/rpggio/quotedesk/internal/domain/activity"
)

// Repository provides persistence for quotes.
type Repository interface {
	Create(ctx context.Context, q *Quote) error
	CreateBatch(ctx context.Context, quotes []*Quote) error
	Get(ctx context.Context, id int64) (*Quote, error)
	Update(ctx context.Context, q *Quote) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, opts ListOptions) ([]Quote, error)
	Reset(ctx context.Context) error
}

// SearchRepository performs full-text search.
type SearchRepository interface {
	Search(ctx context.Context, query string, opts SearchOptions) ([]SearchResult, error)
}

// ActivityRepository logs quote activities.
type ActivityRepository interface {
	Log(ctx context.Context, entry *activity.ActivityEntry) error
}
