package transport

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rpggio/quotedesk/internal/domain/activity"
	"github.com/rpggio/quotedesk/internal/domain/quote"
)

// QuoteService is the quote API consumed by the HTTP layer.
type QuoteService interface {
	List(ctx context.Context, opts quote.ListOptions) ([]quote.Quote, error)
	Get(ctx context.Context, id int64) (*quote.Quote, error)
	Search(ctx context.Context, query string, opts quote.SearchOptions) ([]quote.SearchResult, error)
	Create(ctx context.Context, in quote.Input) (*quote.Quote, error)
	Update(ctx context.Context, id int64, in quote.Input) (*quote.Quote, error)
	Delete(ctx context.Context, id int64) error
}

// ActivityService exposes the change log.
type ActivityService interface {
	GetRecentActivity(ctx context.Context, opts activity.ListActivityOptions) ([]activity.ActivityEntry, error)
}

// Config wires the HTTP server.
type Config struct {
	Quotes   QuoteService
	Activity ActivityService
	// MCP is mounted at /mcp when set.
	MCP http.Handler
	// Auth guards every route except / and /health when set.
	Auth   func(http.Handler) http.Handler
	Logger *slog.Logger
}

// Server wires HTTP handlers.
type Server struct {
	quotes   QuoteService
	activity ActivityService
	logger   *slog.Logger
}

// NewServer creates an HTTP server router with middleware.
func NewServer(cfg Config) *chi.Mux {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(LoggingMiddleware(logger))
	r.Use(middleware.Recoverer)

	srv := &Server{quotes: cfg.Quotes, activity: cfg.Activity, logger: logger}

	r.Get("/", srv.handleRoot)
	r.Get("/health", srv.handleHealth)

	r.Group(func(r chi.Router) {
		if cfg.Auth != nil {
			r.Use(cfg.Auth)
		}

		r.Route("/quotes", func(r chi.Router) {
			r.Get("/", srv.handleListQuotes)
			r.Post("/", srv.handleCreateQuote)
			r.Get("/search", srv.handleSearchQuotes)
			r.Get("/{id}", srv.handleGetQuote)
			r.Put("/{id}", srv.handleUpdateQuote)
			r.Delete("/{id}", srv.handleDeleteQuote)
		})

		if srv.activity != nil {
			r.Get("/activity", srv.handleActivity)
		}
		if cfg.MCP != nil {
			r.Handle("/mcp", cfg.MCP)
		}
	})

	return r
}

func (s *Server) handleRoot(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, messageBody{Message: "quotes system"})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleListQuotes(w http.ResponseWriter, r *http.Request) {
	limit, err := intParam(r, "limit")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	offset, err := intParam(r, "offset")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	quotes, err := s.quotes.List(r.Context(), quote.ListOptions{
		Author: r.URL.Query().Get("author"),
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		writeServiceError(w, r, s.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, quotes)
}

func (s *Server) handleSearchQuotes(w http.ResponseWriter, r *http.Request) {
	limit, err := intParam(r, "limit")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	results, err := s.quotes.Search(r.Context(), r.URL.Query().Get("q"), quote.SearchOptions{Limit: limit})
	if err != nil {
		writeServiceError(w, r, s.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, results)
}

func (s *Server) handleGetQuote(w http.ResponseWriter, r *http.Request) {
	id, ok := s.quoteID(w, r)
	if !ok {
		return
	}
	q, err := s.quotes.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, s.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, q)
}

func (s *Server) handleCreateQuote(w http.ResponseWriter, r *http.Request) {
	var in quote.Input
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	q, err := s.quotes.Create(r.Context(), in)
	if err != nil {
		writeServiceError(w, r, s.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, q)
}

func (s *Server) handleUpdateQuote(w http.ResponseWriter, r *http.Request) {
	id, ok := s.quoteID(w, r)
	if !ok {
		return
	}
	var in quote.Input
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	q, err := s.quotes.Update(r.Context(), id, in)
	if err != nil {
		writeServiceError(w, r, s.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, q)
}

func (s *Server) handleDeleteQuote(w http.ResponseWriter, r *http.Request) {
	id, ok := s.quoteID(w, r)
	if !ok {
		return
	}
	if err := s.quotes.Delete(r.Context(), id); err != nil {
		writeServiceError(w, r, s.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, messageBody{Message: "quote deleted"})
}

func (s *Server) handleActivity(w http.ResponseWriter, r *http.Request) {
	limit, err := intParam(r, "limit")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	entries, err := s.activity.GetRecentActivity(r.Context(), activity.ListActivityOptions{Limit: limit})
	if err != nil {
		writeServiceError(w, r, s.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

func (s *Server) quoteID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid quote id "+strconv.Quote(raw))
		return 0, false
	}
	return id, true
}
