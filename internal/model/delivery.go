// internal/model/delivery.go
package model

import "time"

// Delivery is one (contact, channel) send produced from a handed-off draft.
type Delivery struct {
	ID              int       `db:"id" json:"id"`
	DraftID         string    `db:"draft_id" json:"draft_id"`
	ContactID       string    `db:"contact_id" json:"contact_id"`
	Channel         Channel   `db:"channel" json:"channel"`
	Status          string    `db:"status" json:"status"` // sent, failed
	RenderedContent string    `db:"rendered_content" json:"rendered_content"`
	LastError       string    `db:"last_error,omitempty" json:"last_error,omitempty"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
}

// HandoffMeta describes a draft handed to the external sender.
type HandoffMeta struct {
	ID       string    `json:"id"`
	Type     string    `json:"type"`
	Producer string    `json:"producer"`
	Time     time.Time `json:"time"`
}

// HandoffEvent carries a submitted draft to whoever schedules and sends it.
type HandoffEvent struct {
	Meta HandoffMeta   `json:"meta"`
	Data DraftSnapshot `json:"data"`
}
