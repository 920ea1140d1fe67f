package cli

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/rpggio/quotedesk/internal/client/remote"
	"github.com/rpggio/quotedesk/internal/tui"
)

func newClientCmd(a *app) *cobra.Command {
	var apiURL string

	cmd := &cobra.Command{
		Use:   "client",
		Short: "Open the terminal client",
		Long: `Browse and edit quotes held by a running API service. Logs go to
log.path when set and are discarded otherwise, since the terminal
belongs to the interface.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := a.cfg
			if cmd.Flags().Changed("api-url") {
				cfg.Client.APIURL = apiURL
			}

			logger, closeLog, err := newLogger(cfg.Log, io.Discard)
			if err != nil {
				return err
			}
			defer closeLog()

			opts := []remote.Option{remote.WithLogger(logger)}
			if cfg.Auth.Token != "" {
				opts = append(opts, remote.WithToken(cfg.Auth.Token))
			}
			rc, err := remote.New(cfg.Client.APIURL, cfg.Client.Timeout, opts...)
			if err != nil {
				return err
			}

			logger.Info("connecting", "api_url", cfg.Client.APIURL, "timeout", cfg.Client.Timeout)
			return tui.Run(cmd.Context(), rc, logger)
		},
	}
	cmd.Flags().StringVar(&apiURL, "api-url", "", "API service base URL (overrides client.api_url)")
	return cmd
}
