package events

import "time"

const TimeEntryLifecycleTopic = "fieldops.timeentry.lifecycle.v1"

type TimeEntrySubmittedEvent struct {
	EventType  string    `json:"event_type"`
	GroupID    string    `json:"group_id"`
	UserID     string    `json:"user_id"`
	OccurredAt time.Time `json:"occurred_at"`
}

// TimeEntryResubmittedEvent records the identity churn of a resubmission:
// the old aggregate is gone, ReplacedBy is authoritative.
type TimeEntryResubmittedEvent struct {
	EventType  string    `json:"event_type"`
	OldGroupID string    `json:"old_group_id"`
	ReplacedBy string    `json:"replaced_by"`
	UserID     string    `json:"user_id"`
	OccurredAt time.Time `json:"occurred_at"`
}
