package cli

import (
	"github.com/spf13/cobra"

	"github.com/rpggio/quotedesk/internal/mcp"
)

func newMCPCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Serve the quote tools over stdio",
		Long: `Run the MCP quote tools over stdin/stdout against the local store.
Logs go to stderr to keep stdout clean for JSON-RPC.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger, closeLog, err := newLogger(a.cfg.Log, a.stderr)
			if err != nil {
				return err
			}
			defer closeLog()

			st, err := openStore(a.cfg.DB.Path, logger)
			if err != nil {
				return err
			}
			defer st.Close()

			server := mcp.NewServer(mcp.Config{
				Services: mcp.Services{Quotes: st.quotes, Activity: st.activity},
				Version:  Version,
				Logger:   logger,
			})
			logger.Info("starting stdio transport")
			return mcp.RunStdio(cmd.Context(), server)
		},
	}
}
