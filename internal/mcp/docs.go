package mcp

import (
	"context"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

const serverInstructions = `quotedesk stores quotations: each quote has an integer id, text, an author and a list of tags.

Workflow:
1) Browse with list_quotes (use limit) or search_quotes(query).
2) Change data with add_quote, update_quote(id, ...) and delete_quote(id).
3) get_recent_activity shows what changed recently.

Text is required. Tags are trimmed; empty tags are dropped. Errors carry a code:
QUOTE_NOT_FOUND (bad id) or INVALID_INPUT (empty text, non-positive id, empty query).

Docs: quotedesk://docs/usage`

type docResource struct {
	URI         string
	Name        string
	Title       string
	Description string
	Content     string
}

var docResources = []docResource{
	{
		URI:         "quotedesk://docs/usage",
		Name:        "docs_usage",
		Title:       "quotedesk usage",
		Description: "Tool overview, data model and error codes.",
		Content: `# quotedesk

## Data model

- ` + "`id`" + `: assigned by the server, starts at 1.
- ` + "`text`" + `: the quotation. Must not be empty.
- ` + "`author`" + `: free text, trimmed.
- ` + "`tags`" + `: list of strings. Stored comma separated, so a tag can't contain a comma.

## Tools

- ` + "`list_quotes`" + ` returns quotes in id order. Filter with ` + "`author`" + `, page with ` + "`limit`" + `/` + "`offset`" + `.
- ` + "`search_quotes`" + ` matches every word of ` + "`query`" + ` against text, author and tags.
- ` + "`get_quote`" + `, ` + "`add_quote`" + `, ` + "`update_quote`" + `, ` + "`delete_quote`" + ` work on one quote.
- ` + "`get_recent_activity`" + ` lists the change log, newest first.

## Errors

- ` + "`QUOTE_NOT_FOUND`" + `: no quote has that id. Deleting twice reports this.
- ` + "`INVALID_INPUT`" + `: empty text, an id below 1, or an empty search query.
`,
	},
}

func registerDocResources(server *sdkmcp.Server) {
	for _, doc := range docResources {
		server.AddResource(&sdkmcp.Resource{
			URI:         doc.URI,
			Name:        doc.Name,
			Title:       doc.Title,
			Description: doc.Description,
			MIMEType:    "text/markdown",
			Size:        int64(len(doc.Content)),
		}, func(_ context.Context, req *sdkmcp.ReadResourceRequest) (*sdkmcp.ReadResourceResult, error) {
			uri := doc.URI
			if req != nil && req.Params != nil && req.Params.URI != "" {
				uri = req.Params.URI
			}
			return &sdkmcp.ReadResourceResult{
				Contents: []*sdkmcp.ResourceContents{{
					URI:      uri,
					MIMEType: "text/markdown",
					Text:     doc.Content,
				}},
			}, nil
		})
	}
}
