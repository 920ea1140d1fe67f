package activity

// DefaultListLimit caps GetRecentActivity when no limit is given.
const DefaultListLimit = 50

// ListActivityOptions provides filtering options for listing activity.
type ListActivityOptions struct {
	QuoteID      *int64
	ActivityType *ActivityType
	Limit        int
	Offset       int
}
