package testserver

import (
	"fmt"
	"log/slog"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rpggio/quotedesk/internal/domain/activity"
	"github.com/rpggio/quotedesk/internal/domain/quote"
	"github.com/rpggio/quotedesk/internal/mcp"
	"github.com/rpggio/quotedesk/internal/sqlite"
	"github.com/rpggio/quotedesk/internal/transport"
	"github.com/stretchr/testify/require"
)

// TestServer is a fully wired API service backed by an in-memory database.
type TestServer struct {
	Server   *httptest.Server
	DB       *sqlite.DB
	Token    string
	Quotes   *quote.Service
	Activity *activity.Service
}

// New starts a server for the test. A non-empty token enables bearer auth.
func New(t *testing.T, token string) *TestServer {
	t.Helper()

	logger := slog.New(slog.DiscardHandler)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := sqlite.New(dsn)
	require.NoError(t, err)
	require.NoError(t, db.RunMigrations())

	quoteRepo := sqlite.NewQuoteRepository(db)
	searchRepo := sqlite.NewSearchRepository(db)
	activityRepo := sqlite.NewActivityRepository(db)

	quoteSvc := quote.NewService(quoteRepo, searchRepo, activityRepo, logger)
	activitySvc := activity.NewService(activityRepo, logger)

	mcpServer := mcp.NewServer(mcp.Config{
		Services: mcp.Services{Quotes: quoteSvc, Activity: activitySvc},
		Version:  "test",
		Logger:   logger,
	})

	cfg := transport.Config{
		Quotes:   quoteSvc,
		Activity: activitySvc,
		MCP:      mcp.NewHTTPHandler(mcpServer, logger),
		Logger:   logger,
	}
	if token != "" {
		cfg.Auth = transport.AuthMiddleware(transport.NewStaticToken(token))
	}

	server := httptest.NewServer(transport.NewServer(cfg))

	ts := &TestServer{
		Server:   server,
		DB:       db,
		Token:    token,
		Quotes:   quoteSvc,
		Activity: activitySvc,
	}

	t.Cleanup(func() {
		server.Close()
		_ = db.Close()
	})

	return ts
}

// URL returns the server base URL.
func (ts *TestServer) URL() string {
	return ts.Server.URL
}

// Seed stores quotes directly through the service.
func (ts *TestServer) Seed(t *testing.T, inputs ...quote.Input) []quote.Quote {
	t.Helper()
	imported, skipped, err := ts.Quotes.Import(t.Context(), inputs)
	require.NoError(t, err)
	require.Zero(t, skipped)
	return imported
}
