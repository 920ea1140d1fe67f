package mcp

import (
	"context"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rpggio/quotedesk/internal/domain/activity"
	"github.com/rpggio/quotedesk/internal/domain/quote"
)

func registerTools(server *sdkmcp.Server, svc Services) {
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "list_quotes",
		Description: "List stored quotes in id order, optionally filtered by author",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, in ListQuotesParams) (*sdkmcp.CallToolResult, QuoteListResult, error) {
		quotes, err := svc.Quotes.List(ctx, quote.ListOptions{Author: in.Author, Limit: in.Limit, Offset: in.Offset})
		if err != nil {
			return nil, QuoteListResult{}, toolError(err)
		}
		return nil, QuoteListResult{Quotes: quotes}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "search_quotes",
		Description: "Full-text search over quote text, author and tags, best match first",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, in SearchQuotesParams) (*sdkmcp.CallToolResult, SearchQuotesResult, error) {
		results, err := svc.Quotes.Search(ctx, in.Query, quote.SearchOptions{Limit: in.Limit})
		if err != nil {
			return nil, SearchQuotesResult{}, toolError(err)
		}
		return nil, SearchQuotesResult{Results: results}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "get_quote",
		Description: "Get a single quote by id",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, in QuoteIDParams) (*sdkmcp.CallToolResult, QuoteResult, error) {
		q, err := svc.Quotes.Get(ctx, in.ID)
		if err != nil {
			return nil, QuoteResult{}, toolError(err)
		}
		return nil, QuoteResult{Quote: *q}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "add_quote",
		Description: "Store a new quote. Text is required; tags are trimmed and empty tags dropped",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, in AddQuoteParams) (*sdkmcp.CallToolResult, QuoteResult, error) {
		q, err := svc.Quotes.Create(ctx, quote.Input{Text: in.Text, Author: in.Author, Tags: in.Tags})
		if err != nil {
			return nil, QuoteResult{}, toolError(err)
		}
		return nil, QuoteResult{Quote: *q}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "update_quote",
		Description: "Replace the text, author and tags of an existing quote",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, in UpdateQuoteParams) (*sdkmcp.CallToolResult, QuoteResult, error) {
		q, err := svc.Quotes.Update(ctx, in.ID, quote.Input{Text: in.Text, Author: in.Author, Tags: in.Tags})
		if err != nil {
			return nil, QuoteResult{}, toolError(err)
		}
		return nil, QuoteResult{Quote: *q}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "delete_quote",
		Description: "Delete a quote by id. Deleting a missing quote fails with QUOTE_NOT_FOUND",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, in QuoteIDParams) (*sdkmcp.CallToolResult, DeleteQuoteResult, error) {
		if err := svc.Quotes.Delete(ctx, in.ID); err != nil {
			return nil, DeleteQuoteResult{}, toolError(err)
		}
		return nil, DeleteQuoteResult{Message: "quote deleted"}, nil
	})

	if svc.Activity == nil {
		return
	}

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "get_recent_activity",
		Description: "List recent quote changes, newest first",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, in RecentActivityParams) (*sdkmcp.CallToolResult, RecentActivityResult, error) {
		entries, err := svc.Activity.GetRecentActivity(ctx, activity.ListActivityOptions{Limit: in.Limit})
		if err != nil {
			return nil, RecentActivityResult{}, toolError(err)
		}
		return nil, RecentActivityResult{Entries: entries}, nil
	})
}
