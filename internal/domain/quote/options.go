package quote

// ListOptions provides filtering options for listing quotes.
type ListOptions struct {
	Author string
	Limit  int
	Offset int
}

// SearchOptions provides paging options for search.
type SearchOptions struct {
	Limit  int
	Offset int
}
