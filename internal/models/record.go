package models

import "time"

// Record kinds served by the API. Every kind shares the records table.
const (
	KindTask   = "task"
	KindTicket = "ticket"
)

// Record is a row owned by exactly one user. OwnerID and Kind never change after creation.
type Record struct {
	ID          int       `json:"id"`
	OwnerID     int       `json:"owner_id"`
	Kind        string    `json:"kind"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Date        string    `json:"date,omitempty"` // opaque, client-defined
	Time        string    `json:"time,omitempty"` // opaque, client-defined
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// RecordFields carries the client-writable part of a record.
type RecordFields struct {
	Title       string
	Description string
	Date        string
	Time        string
}

// RecordPatch is a partial update; nil fields are left unchanged.
type RecordPatch struct {
	Title       *string
	Description *string
	Date        *string
	Time        *string
}

// IsEmpty reports whether the patch changes nothing.
func (p RecordPatch) IsEmpty() bool {
	return p.Title == nil && p.Description == nil && p.Date == nil && p.Time == nil
}

// Apply copies the non-nil patch fields onto r.
func (p RecordPatch) Apply(r *Record) {
	if p.Title != nil {
		r.Title = *p.Title
	}
	if p.Description != nil {
		r.Description = *p.Description
	}
	if p.Date != nil {
		r.Date = *p.Date
	}
	if p.Time != nil {
		r.Time = *p.Time
	}
}
