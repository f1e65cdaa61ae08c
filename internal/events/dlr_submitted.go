package events

import "time"

const DLRLifecycleTopic = "fieldops.dlr.lifecycle.v1"

type DLRSubmittedEvent struct {
	EventType  string    `json:"event_type"`
	DLRID      string    `json:"dlr_id"`
	DLRNumber  string    `json:"dlr_number"`
	UserID     string    `json:"user_id"`
	OccurredAt time.Time `json:"occurred_at"`
}
