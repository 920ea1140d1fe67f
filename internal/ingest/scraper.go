package ingest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/rpggio/quotedesk/internal/domain/quote"
)

// DefaultMaxPages bounds a run when no limit is configured.
const DefaultMaxPages = 5

// Importer stores scraped quotes. *quote.Service implements it.
type Importer interface {
	Reset(ctx context.Context) error
	Import(ctx context.Context, inputs []quote.Input) ([]quote.Quote, int, error)
}

// Config configures a Scraper.
type Config struct {
	BaseURL  string
	MaxPages int
	// Reset empties the store before the first page is imported.
	Reset      bool
	HTTPClient *http.Client
	Logger     *slog.Logger
}

// Summary reports what a run did.
type Summary struct {
	Pages    int
	Imported int
	Skipped  int
}

// Scraper walks the listing pages starting at the base URL.
type Scraper struct {
	base     *url.URL
	maxPages int
	reset    bool
	importer Importer
	http     *http.Client
	logger   *slog.Logger
}

// NewScraper validates cfg and creates a scraper.
func NewScraper(cfg Config, importer Importer) (*Scraper, error) {
	base, err := url.Parse(cfg.BaseURL)
	if err != nil || (base.Scheme != "http" && base.Scheme != "https") || base.Host == "" {
		return nil, fmt.Errorf("invalid base url %q", cfg.BaseURL)
	}
	if base.Path == "" {
		base.Path = "/"
	}
	if cfg.MaxPages <= 0 {
		cfg.MaxPages = DefaultMaxPages
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = &http.Client{Timeout: 30 * time.Second}
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.DiscardHandler)
	}
	return &Scraper{
		base:     base,
		maxPages: cfg.MaxPages,
		reset:    cfg.Reset,
		importer: importer,
		http:     cfg.HTTPClient,
		logger:   cfg.Logger,
	}, nil
}

// Run fetches up to MaxPages pages, importing each page in one batch. It
// stops early when a page has no next link.
func (s *Scraper) Run(ctx context.Context) (Summary, error) {
	var sum Summary

	if s.reset {
		if err := s.importer.Reset(ctx); err != nil {
			return sum, fmt.Errorf("resetting store: %w", err)
		}
		s.logger.Info("store reset")
	}

	next := s.base
	for sum.Pages < s.maxPages {
		page, err := s.fetch(ctx, next)
		if err != nil {
			return sum, err
		}
		sum.Pages++

		imported, skipped, err := s.importer.Import(ctx, page.Quotes)
		if err != nil {
			return sum, fmt.Errorf("importing page %d: %w", sum.Pages, err)
		}
		sum.Imported += len(imported)
		sum.Skipped += skipped
		s.logger.Info("page imported",
			"page", sum.Pages,
			"url", next.String(),
			"quotes", len(imported),
			"skipped", skipped)

		if page.NextPath == "" {
			s.logger.Info("no next page, stopping", "pages", sum.Pages)
			break
		}
		ref, err := url.Parse(page.NextPath)
		if err != nil {
			return sum, fmt.Errorf("invalid next link %q: %w", page.NextPath, err)
		}
		next = next.ResolveReference(ref)
	}

	s.logger.Info("ingest finished", "pages", sum.Pages, "imported", sum.Imported, "skipped", sum.Skipped)
	return sum, nil
}

// ErrUnexpectedStatus is returned for non-200 page responses.
var ErrUnexpectedStatus = errors.New("unexpected status")

func (s *Scraper) fetch(ctx context.Context, u *url.URL) (*Page, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("User-Agent", "quotedesk-ingest/1.0")

	s.logger.Debug("fetching page", "url", u.String())
	resp, err := s.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", u, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching %s: %w: %d", u, ErrUnexpectedStatus, resp.StatusCode)
	}
	return ParsePage(resp.Body)
}
