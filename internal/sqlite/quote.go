package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/rpggio/quotedesk/internal/domain/quote"
	"github.com/rpggio/quotedesk/internal/repository"
)

// QuoteRepository implements quote.Repository for SQLite
type QuoteRepository struct {
	db *DB
}

// NewQuoteRepository creates a new QuoteRepository
func NewQuoteRepository(db *DB) *QuoteRepository {
	return &QuoteRepository{db: db}
}

const insertQuote = `INSERT INTO quotes (text, author, tags) VALUES (?, ?, ?)`

// execer is satisfied by both *sql.DB and *sql.Tx.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func createQuote(ctx context.Context, ex execer, q *quote.Quote) error {
	result, err := ex.ExecContext(ctx, insertQuote, q.Text, q.Author, quote.FormatTags(q.Tags))
	if err != nil {
		if isNotNullViolation(err) {
			return repository.ErrInvalidInput
		}
		return err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read quote id: %w", err)
	}
	q.ID = id
	if q.Tags == nil {
		q.Tags = []string{}
	}
	return nil
}

// Create inserts a quote and assigns its ID
func (r *QuoteRepository) Create(ctx context.Context, q *quote.Quote) error {
	if err := createQuote(ctx, r.db, q); err != nil {
		return fmt.Errorf("failed to create quote: %w", err)
	}
	return nil
}

// CreateBatch inserts every quote in one transaction. Either all rows are
// stored or none are.
func (r *QuoteRepository) CreateBatch(ctx context.Context, quotes []*quote.Quote) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, q := range quotes {
		if err := createQuote(ctx, tx, q); err != nil {
			return fmt.Errorf("failed to create quote: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit quotes: %w", err)
	}
	return nil
}

// Get retrieves a quote by ID
func (r *QuoteRepository) Get(ctx context.Context, id int64) (*quote.Quote, error) {
	row := r.db.QueryRowContext(ctx, `SELECT id, text, author, tags FROM quotes WHERE id = ?`, id)
	q, err := scanQuote(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get quote: %w", err)
	}
	return q, nil
}

// Update replaces text, author and tags of an existing quote
func (r *QuoteRepository) Update(ctx context.Context, q *quote.Quote) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE quotes SET text = ?, author = ?, tags = ? WHERE id = ?`,
		q.Text, q.Author, quote.FormatTags(q.Tags), q.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update quote: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return repository.ErrNotFound
	}
	if q.Tags == nil {
		q.Tags = []string{}
	}
	return nil
}

// Delete removes a quote by ID
func (r *QuoteRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM quotes WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete quote: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// List returns quotes in id order, optionally filtered by author
func (r *QuoteRepository) List(ctx context.Context, opts quote.ListOptions) ([]quote.Quote, error) {
	query := `SELECT id, text, author, tags FROM quotes`
	var args []any

	if author := strings.TrimSpace(opts.Author); author != "" {
		query += " WHERE author = ?"
		args = append(args, author)
	}

	query += " ORDER BY id"

	if opts.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, opts.Limit)
	} else if opts.Offset > 0 {
		query += " LIMIT -1"
	}
	if opts.Offset > 0 {
		query += " OFFSET ?"
		args = append(args, opts.Offset)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list quotes: %w", err)
	}
	defer rows.Close()

	quotes := []quote.Quote{}
	for rows.Next() {
		q, err := scanQuote(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan quote: %w", err)
		}
		quotes = append(quotes, *q)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating quote rows: %w", err)
	}

	return quotes, nil
}

// Reset deletes every quote and restarts id numbering
func (r *QuoteRepository) Reset(ctx context.Context) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM quotes`); err != nil {
		return fmt.Errorf("failed to clear quotes: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM sqlite_sequence WHERE name = 'quotes'`); err != nil {
		return fmt.Errorf("failed to reset quote ids: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit reset: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanQuote(row rowScanner) (*quote.Quote, error) {
	var q quote.Quote
	var tags sql.NullString
	if err := row.Scan(&q.ID, &q.Text, &q.Author, &tags); err != nil {
		return nil, err
	}
	q.Tags = quote.ParseTags(tags.String)
	return &q, nil
}
