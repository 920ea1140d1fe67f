package cli

import (
	"fmt"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/rpggio/quotedesk/internal/ingest"
)

func newIngestCmd(a *app) *cobra.Command {
	var (
		baseURL  string
		maxPages int
		noReset  bool
	)

	cmd := &cobra.Command{
		Use:   "ingest",
		Short: "Scrape quote pages into the store",
		Long: `Fetch listing pages starting at ingest.base_url, follow the "next"
link up to ingest.max_pages pages and store every quote found. With
ingest.reset the store is emptied first.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := a.cfg
			flags := cmd.Flags()
			if flags.Changed("base-url") {
				cfg.Ingest.BaseURL = baseURL
			}
			if flags.Changed("max-pages") {
				cfg.Ingest.MaxPages = maxPages
			}
			if flags.Changed("no-reset") {
				cfg.Ingest.Reset = !noReset
			}

			logger, closeLog, err := newLogger(cfg.Log, a.stderr)
			if err != nil {
				return err
			}
			defer closeLog()

			st, err := openStore(cfg.DB.Path, logger)
			if err != nil {
				return err
			}
			defer st.Close()

			scraper, err := ingest.NewScraper(ingest.Config{
				BaseURL:    cfg.Ingest.BaseURL,
				MaxPages:   cfg.Ingest.MaxPages,
				Reset:      cfg.Ingest.Reset,
				HTTPClient: &http.Client{Timeout: cfg.Client.Timeout},
				Logger:     logger,
			}, st.quotes)
			if err != nil {
				return err
			}

			sum, err := scraper.Run(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "imported %d quotes from %d pages (%d skipped)\n",
				sum.Imported, sum.Pages, sum.Skipped)
			return nil
		},
	}
	cmd.Flags().StringVar(&baseURL, "base-url", "", "site to scrape (overrides ingest.base_url)")
	cmd.Flags().IntVar(&maxPages, "max-pages", 0, "page limit (overrides ingest.max_pages)")
	cmd.Flags().BoolVar(&noReset, "no-reset", false, "keep existing quotes")
	return cmd
}
