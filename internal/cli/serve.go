package cli

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/rpggio/quotedesk/internal/config"
	"github.com/rpggio/quotedesk/internal/mcp"
	"github.com/rpggio/quotedesk/internal/transport"
)

const (
	shutdownTimeout   = 5 * time.Second
	readHeaderTimeout = 10 * time.Second
)

func newServeCmd(a *app) *cobra.Command {
	var host string
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the quote API service",
		Long: `Run the REST API over the quote store, with the MCP tool endpoint
mounted at /mcp. Stops gracefully on SIGINT or SIGTERM.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := a.cfg
			if cmd.Flags().Changed("host") {
				cfg.Server.Host = host
			}
			if cmd.Flags().Changed("port") {
				cfg.Server.Port = port
			}

			logger, closeLog, err := newLogger(cfg.Log, a.stdout)
			if err != nil {
				return err
			}
			defer closeLog()

			st, err := openStore(cfg.DB.Path, logger)
			if err != nil {
				logger.Error("failed to open database", "error", err)
				return err
			}
			defer st.Close()

			lis, err := net.Listen("tcp", cfg.Server.Addr())
			if err != nil {
				return err
			}
			return serve(cmd.Context(), lis, newAPIHandler(cfg, st, logger), logger)
		},
	}
	cmd.Flags().StringVar(&host, "host", "", "listen host (overrides server.host)")
	cmd.Flags().IntVar(&port, "port", 0, "listen port (overrides server.port)")
	return cmd
}

// newAPIHandler builds the REST router with the MCP endpoint mounted.
func newAPIHandler(cfg config.Config, st *store, logger *slog.Logger) http.Handler {
	mcpServer := mcp.NewServer(mcp.Config{
		Services: mcp.Services{Quotes: st.quotes, Activity: st.activity},
		Version:  Version,
		Logger:   logger,
	})

	tcfg := transport.Config{
		Quotes:   st.quotes,
		Activity: st.activity,
		MCP:      mcp.NewHTTPHandler(mcpServer, logger),
		Logger:   logger,
	}
	if cfg.Auth.Enabled {
		tcfg.Auth = transport.AuthMiddleware(transport.NewStaticToken(cfg.Auth.Token))
	}
	logger.Info("api configured", "auth", cfg.Auth.Enabled)
	return transport.NewServer(tcfg)
}

// serve runs handler on lis until ctx is done, then shuts down gracefully.
func serve(ctx context.Context, lis net.Listener, handler http.Handler, logger *slog.Logger) error {
	httpServer := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", lis.Addr().String())
		errCh <- httpServer.Serve(lis)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		logger.Error("server error", "error", err)
		return err
	case <-ctx.Done():
	}

	return waitForShutdown(logger, httpServer, errCh)
}

func waitForShutdown(logger *slog.Logger, server *http.Server, errCh <-chan error) error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	logger.Info("shutting down")
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("shutdown error", "error", err)
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
