package functional_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rpggio/quotedesk/internal/domain/quote"
	"github.com/rpggio/quotedesk/internal/testserver"
	"github.com/stretchr/testify/require"
)

const testToken = "functional-token"

// bearerTransport adds an Authorization header to every request.
type bearerTransport struct {
	token string
	base  http.RoundTripper
}

func (b *bearerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	if b.token != "" {
		req.Header.Set("Authorization", "Bearer "+b.token)
	}
	return b.base.RoundTrip(req)
}

// connect opens an MCP session against the server's /mcp endpoint.
func connect(t *testing.T, ts *testserver.TestServer, token string) (*sdkmcp.ClientSession, error) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client := sdkmcp.NewClient(&sdkmcp.Implementation{Name: "functional-test", Version: "1.0.0"}, nil)
	transport := &sdkmcp.StreamableClientTransport{
		Endpoint:   ts.URL() + "/mcp",
		HTTPClient: &http.Client{Transport: &bearerTransport{token: token, base: http.DefaultTransport}},
		MaxRetries: -1,
	}
	session, err := client.Connect(ctx, transport, nil)
	if err != nil {
		return nil, err
	}
	// Sessions must be closed before the httptest server shuts down.
	t.Cleanup(func() { _ = session.Close() })
	return session, nil
}

func mustConnect(t *testing.T, ts *testserver.TestServer) *sdkmcp.ClientSession {
	t.Helper()
	session, err := connect(t, ts, ts.Token)
	require.NoError(t, err)
	return session
}

// callTool calls a tool and decodes its JSON text content into out.
func callTool(t *testing.T, session *sdkmcp.ClientSession, name string, args map[string]any, out any) {
	t.Helper()
	result := rawCall(t, session, name, args)
	require.False(t, result.IsError, "%s failed: %s", name, contentText(t, result))
	if out != nil {
		require.NoError(t, json.Unmarshal([]byte(contentText(t, result)), out))
	}
}

// callToolError calls a tool that must fail and returns its error text.
func callToolError(t *testing.T, session *sdkmcp.ClientSession, name string, args map[string]any) string {
	t.Helper()
	result := rawCall(t, session, name, args)
	require.True(t, result.IsError, "%s should have failed", name)
	return contentText(t, result)
}

func rawCall(t *testing.T, session *sdkmcp.ClientSession, name string, args map[string]any) *sdkmcp.CallToolResult {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	result, err := session.CallTool(ctx, &sdkmcp.CallToolParams{Name: name, Arguments: args})
	require.NoError(t, err)
	return result
}

func contentText(t *testing.T, result *sdkmcp.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, result.Content)
	text, ok := result.Content[0].(*sdkmcp.TextContent)
	require.True(t, ok, "expected text content, got %T", result.Content[0])
	return text.Text
}

func TestFunctional_Authentication(t *testing.T) {
	ts := testserver.New(t, testToken)

	_, err := connect(t, ts, "")
	require.Error(t, err)

	_, err = connect(t, ts, "wrong-token")
	require.Error(t, err)

	session, err := connect(t, ts, testToken)
	require.NoError(t, err)
	require.NotNil(t, session)
}

func TestFunctional_QuoteWorkflow(t *testing.T) {
	ts := testserver.New(t, testToken)
	session := mustConnect(t, ts)

	var added struct {
		Quote quote.Quote `json:"quote"`
	}
	callTool(t, session, "add_quote", map[string]any{
		"text":   "  abc ",
		"author": "x",
		"tags":   []string{"a", " b ", ""},
	}, &added)
	require.Equal(t, int64(1), added.Quote.ID)
	require.Equal(t, "abc", added.Quote.Text)
	require.Equal(t, []string{"a", "b"}, added.Quote.Tags)

	// The HTTP API sees what the tools wrote.
	stored, err := ts.Quotes.Get(context.Background(), added.Quote.ID)
	require.NoError(t, err)
	require.Equal(t, added.Quote, *stored)

	callTool(t, session, "update_quote", map[string]any{
		"id":     added.Quote.ID,
		"text":   "abd",
		"author": "y",
	}, nil)

	var got struct {
		Quote quote.Quote `json:"quote"`
	}
	callTool(t, session, "get_quote", map[string]any{"id": added.Quote.ID}, &got)
	require.Equal(t, "abd", got.Quote.Text)
	require.Equal(t, []string{}, got.Quote.Tags)

	var deleted struct {
		Message string `json:"message"`
	}
	callTool(t, session, "delete_quote", map[string]any{"id": added.Quote.ID}, &deleted)
	require.Equal(t, "quote deleted", deleted.Message)

	msg := callToolError(t, session, "delete_quote", map[string]any{"id": added.Quote.ID})
	require.Contains(t, msg, "QUOTE_NOT_FOUND")
}

func TestFunctional_Validation(t *testing.T) {
	ts := testserver.New(t, testToken)
	session := mustConnect(t, ts)

	msg := callToolError(t, session, "add_quote", map[string]any{"text": "   ", "author": "x"})
	require.Contains(t, msg, "INVALID_INPUT")

	msg = callToolError(t, session, "search_quotes", map[string]any{"query": " "})
	require.Contains(t, msg, "INVALID_INPUT")

	var listed struct {
		Quotes []quote.Quote `json:"quotes"`
	}
	callTool(t, session, "list_quotes", map[string]any{}, &listed)
	require.Empty(t, listed.Quotes)
}

func TestFunctional_ListAndSearch(t *testing.T) {
	ts := testserver.New(t, testToken)
	ts.Seed(t,
		quote.Input{Text: "Not all those who wander are lost.", Author: "J.R.R. Tolkien", Tags: []string{"travel"}},
		quote.Input{Text: "Stay hungry, stay foolish.", Author: "Steve Jobs", Tags: []string{"life"}},
		quote.Input{Text: "All that is gold does not glitter.", Author: "J.R.R. Tolkien"},
	)
	session := mustConnect(t, ts)

	var listed struct {
		Quotes []quote.Quote `json:"quotes"`
	}
	callTool(t, session, "list_quotes", map[string]any{"author": "J.R.R. Tolkien"}, &listed)
	require.Len(t, listed.Quotes, 2)
	require.Equal(t, int64(1), listed.Quotes[0].ID)
	require.Equal(t, int64(3), listed.Quotes[1].ID)

	callTool(t, session, "list_quotes", map[string]any{"limit": 1, "offset": 1}, &listed)
	require.Len(t, listed.Quotes, 1)
	require.Equal(t, "Stay hungry, stay foolish.", listed.Quotes[0].Text)

	var found struct {
		Results []quote.SearchResult `json:"results"`
	}
	callTool(t, session, "search_quotes", map[string]any{"query": "hungry"}, &found)
	require.Len(t, found.Results, 1)
	require.Equal(t, "Steve Jobs", found.Results[0].Quote.Author)
}

func TestFunctional_RecentActivity(t *testing.T) {
	ts := testserver.New(t, testToken)
	session := mustConnect(t, ts)

	callTool(t, session, "add_quote", map[string]any{"text": "one", "author": "a"}, nil)
	callTool(t, session, "add_quote", map[string]any{"text": "two", "author": "b"}, nil)
	callTool(t, session, "delete_quote", map[string]any{"id": 1}, nil)

	var recent struct {
		Entries []struct {
			Type    string `json:"type"`
			QuoteID *int64 `json:"quote_id"`
		} `json:"entries"`
	}
	callTool(t, session, "get_recent_activity", map[string]any{"limit": 2}, &recent)
	require.Len(t, recent.Entries, 2)
	require.Equal(t, "quote_deleted", recent.Entries[0].Type)
	require.Equal(t, "quote_created", recent.Entries[1].Type)
}

func TestFunctional_MCPProtocolCompliance(t *testing.T) {
	ts := testserver.New(t, testToken)
	session := mustConnect(t, ts)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	initResult := session.InitializeResult()
	require.NotNil(t, initResult)
	require.Equal(t, "quotedesk", initResult.ServerInfo.Name)
	require.NotEmpty(t, initResult.Instructions)

	tools, err := session.ListTools(ctx, nil)
	require.NoError(t, err)
	for _, tool := range tools.Tools {
		require.NotEmpty(t, tool.Description, "tool %s has no description", tool.Name)
		require.NotNil(t, tool.InputSchema, "tool %s has no input schema", tool.Name)
	}

	res, err := session.ReadResource(ctx, &sdkmcp.ReadResourceParams{URI: "quotedesk://docs/usage"})
	require.NoError(t, err)
	require.NotEmpty(t, res.Contents)
	require.NotEmpty(t, res.Contents[0].Text)
}
