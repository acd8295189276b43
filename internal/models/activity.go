package models

import "time"

// Activity actions.
const (
	ActionCreate = "CREATE"
	ActionUpdate = "UPDATE"
	ActionDelete = "DELETE"
)

// Activity is a single entry in a user's mutation history.
type Activity struct {
	ID         string    `json:"id"`
	OccurredAt time.Time `json:"occurred_at"`
	UserID     int       `json:"user_id"`
	Kind       string    `json:"kind"` // task | ticket
	RecordID   int       `json:"record_id"`
	Action     string    `json:"action"` // CREATE | UPDATE | DELETE
}
