package quote

// Quote is a quotation together with its author and tags.
type Quote struct {
	ID     int64    `json:"id"`
	Text   string   `json:"text"`
	Author string   `json:"author"`
	Tags   []string `json:"tags"`
}

// Input carries the editable fields of a quote.
type Input struct {
	Text   string   `json:"text"`
	Author string   `json:"author"`
	Tags   []string `json:"tags"`
}

// SearchResult represents a search hit with relevance
type SearchResult struct {
	Quote Quote   `json:"quote"`
	Rank  float64 `json:"rank"`
}
