package activity

import "time"

// ActivityType represents the type of activity event
type ActivityType string

const (
	TypeQuoteCreated   ActivityType = "quote_created"
	TypeQuoteUpdated   ActivityType = "quote_updated"
	TypeQuoteDeleted   ActivityType = "quote_deleted"
	TypeQuotesImported ActivityType = "quotes_imported"
)

// ActivityEntry represents an event in the activity log
type ActivityEntry struct {
	ID           int64        `json:"id"`
	QuoteID      *int64       `json:"quote_id,omitempty"`
	ActivityType ActivityType `json:"type"`
	Summary      string       `json:"summary"`
	Details      string       `json:"details,omitempty"`
	CreatedAt    time.Time    `json:"created_at"`
}
