package cli

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rpggio/quotedesk/internal/domain/quote"
)

func execute(t *testing.T, fsys afero.Fs, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	root := NewRootCmd(WithFs(fsys), WithOutput(&out, &errOut))
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestRoot_Version(t *testing.T) {
	out, err := execute(t, afero.NewMemMapFs(), "--version")
	require.NoError(t, err)
	assert.Contains(t, out, "quotedesk version "+Version)
}

func TestRoot_Help(t *testing.T) {
	out, err := execute(t, afero.NewMemMapFs())
	require.NoError(t, err)
	for _, sub := range []string{"serve", "client", "ingest", "mcp"} {
		assert.Contains(t, out, sub)
	}
}

func TestRoot_MissingConfigFile(t *testing.T) {
	_, err := execute(t, afero.NewMemMapFs(), "--config", "/etc/quotedesk.yaml", "ingest")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestRoot_InvalidConfig(t *testing.T) {
	fsys := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fsys, "/cfg.yaml", []byte("auth:\n  enabled: true\n"), 0o644))

	_, err := execute(t, fsys, "--config", "/cfg.yaml", "ingest")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "auth.token")
}

func TestIngestCmd(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `<div class="quote"><span class="text">one</span><small class="author">A</small></div>`+
			`<li class="next"><a href="/page/2/">Next</a></li>`)
	})
	mux.HandleFunc("GET /page/2/", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `<div class="quote"><span class="text">two</span><small class="author">B</small>`+
			`<a class="tag">t</a></div><div class="quote"><span class="text"> </span></div>`)
	})
	site := httptest.NewServer(mux)
	t.Cleanup(site.Close)

	dbPath := filepath.Join(t.TempDir(), "quotes.db")
	fsys := afero.NewMemMapFs()
	cfg := fmt.Sprintf("db:\n  path: %s\ningest:\n  base_url: %s\n  max_pages: 3\n", dbPath, site.URL)
	require.NoError(t, afero.WriteFile(fsys, "/cfg.yaml", []byte(cfg), 0o644))

	out, err := execute(t, fsys, "--config", "/cfg.yaml", "ingest")
	require.NoError(t, err)
	assert.Equal(t, "imported 2 quotes from 2 pages (1 skipped)\n", out)

	// A second run without reset appends.
	out, err = execute(t, fsys, "--config", "/cfg.yaml", "ingest", "--no-reset", "--max-pages", "1")
	require.NoError(t, err)
	assert.Equal(t, "imported 1 quotes from 1 pages (0 skipped)\n", out)

	st, err := openStore(dbPath, slog.New(slog.DiscardHandler))
	require.NoError(t, err)
	defer st.Close()
	quotes, err := st.quotes.List(context.Background(), quote.ListOptions{})
	require.NoError(t, err)
	require.Len(t, quotes, 3)
	assert.Equal(t, []string{"t"}, quotes[1].Tags)
}
