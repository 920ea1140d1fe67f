package sqlite

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"github.com/rpggio/quotedesk/internal/domain/quote"
)

// SearchRepository implements quote.SearchRepository for SQLite
type SearchRepository struct {
	db *DB
}

// NewSearchRepository creates a new SearchRepository
func NewSearchRepository(db *DB) *SearchRepository {
	return &SearchRepository{db: db}
}

// Search performs a full-text search over quote text, author and tags.
// Results are ordered best match first.
func (r *SearchRepository) Search(ctx context.Context, query string, opts quote.SearchOptions) ([]quote.SearchResult, error) {
	match := matchExpression(query)
	if match == "" {
		return []quote.SearchResult{}, nil
	}

	stmt := `
		SELECT q.id, q.text, q.author, q.tags, bm25(quotes_fts) AS rank
		FROM quotes_fts
		JOIN quotes q ON q.id = quotes_fts.rowid
		WHERE quotes_fts MATCH ?
		ORDER BY rank, q.id
	`
	args := []any{match}

	if opts.Limit > 0 {
		stmt += " LIMIT ?"
		args = append(args, opts.Limit)
	} else if opts.Offset > 0 {
		stmt += " LIMIT -1"
	}
	if opts.Offset > 0 {
		stmt += " OFFSET ?"
		args = append(args, opts.Offset)
	}

	rows, err := r.db.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to search quotes: %w", err)
	}
	defer rows.Close()

	results := []quote.SearchResult{}
	for rows.Next() {
		var result quote.SearchResult
		var tags *string
		if err := rows.Scan(
			&result.Quote.ID,
			&result.Quote.Text,
			&result.Quote.Author,
			&tags,
			&result.Rank,
		); err != nil {
			return nil, fmt.Errorf("failed to scan search result: %w", err)
		}
		raw := ""
		if tags != nil {
			raw = *tags
		}
		result.Quote.Tags = quote.ParseTags(raw)
		results = append(results, result)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating search results: %w", err)
	}

	return results, nil
}

// matchExpression turns free text into an FTS5 query where every word must
// match. Each word is quoted so FTS operators in user input are literal.
func matchExpression(query string) string {
	words := strings.Fields(query)
	terms := make([]string, 0, len(words))
	for _, w := range words {
		if strings.IndexFunc(w, isWordRune) < 0 {
			continue
		}
		w = strings.ReplaceAll(w, `"`, `""`)
		terms = append(terms, `"`+w+`"`)
	}
	return strings.Join(terms, " ")
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}
