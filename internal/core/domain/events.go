package domain

import "time"

// ChangeAction is the kind of row mutation a change event describes.
type ChangeAction string

const (
	ActionInsert ChangeAction = "INSERT"
	ActionUpdate ChangeAction = "UPDATE"
	ActionDelete ChangeAction = "DELETE"
)

// ChangeEvent is a row-level change notification. Consumers treat it as an
// invalidation/re-fetch trigger, not as a delta feed.
type ChangeEvent struct {
	Table       string       `json:"table"`
	Action      ChangeAction `json:"action"`
	EntityID    string       `json:"entityID"`
	WorkplaceID string       `json:"workplaceID"`
	OccurredAt  time.Time    `json:"occurredAt"`
}
