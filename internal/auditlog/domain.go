// Package auditlog renders the audit trail written by the other modules.
package auditlog

import "time"

// TimelineEntry is one audit row with the actor name resolved.
type TimelineEntry struct {
	OccurredAt time.Time
	ActorName  string
	Action     string
	Entity     string
	EntityID   string
}

// ListFilter narrows and pages the audit listing. From and To bound
// occurred_at inclusively; zero values leave the side unbounded.
type ListFilter struct {
	Entity  string
	ActorID int64
	From    time.Time
	To      time.Time
	Page    int
	PerPage int
}
