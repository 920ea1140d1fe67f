package mcp

import (
	"github.com/rpggio/quotedesk/internal/domain/activity"
	"github.com/rpggio/quotedesk/internal/domain/quote"
)

type ListQuotesParams struct {
	Author string `json:"author,omitempty" jsonschema:"only return quotes by this exact author"`
	Limit  int    `json:"limit,omitempty" jsonschema:"maximum number of quotes to return"`
	Offset int    `json:"offset,omitempty" jsonschema:"number of quotes to skip"`
}

type SearchQuotesParams struct {
	Query string `json:"query" jsonschema:"words to look for in text, author and tags"`
	Limit int    `json:"limit,omitempty" jsonschema:"maximum number of results"`
}

type QuoteIDParams struct {
	ID int64 `json:"id" jsonschema:"quote id"`
}

type AddQuoteParams struct {
	Text   string   `json:"text" jsonschema:"quotation text, required"`
	Author string   `json:"author,omitempty" jsonschema:"who said it"`
	Tags   []string `json:"tags,omitempty" jsonschema:"free-form tags"`
}

type UpdateQuoteParams struct {
	ID     int64    `json:"id" jsonschema:"quote id"`
	Text   string   `json:"text" jsonschema:"replacement text, required"`
	Author string   `json:"author,omitempty" jsonschema:"replacement author"`
	Tags   []string `json:"tags,omitempty" jsonschema:"replacement tags"`
}

type RecentActivityParams struct {
	Limit int `json:"limit,omitempty" jsonschema:"maximum number of entries, newest first"`
}

type QuoteListResult struct {
	Quotes []quote.Quote `json:"quotes"`
}

type SearchQuotesResult struct {
	Results []quote.SearchResult `json:"results"`
}

type QuoteResult struct {
	Quote quote.Quote `json:"quote"`
}

type DeleteQuoteResult struct {
	Message string `json:"message"`
}

type RecentActivityResult struct {
	Entries []activity.ActivityEntry `json:"entries"`
}
