package models

import "time"

// ContactEntry is a support-ledger record, e.g. the comment attached to a
// data-deletion request (category "Data Deletion").
type ContactEntry struct {
	ID        int64     `json:"id"`
	Category  string    `json:"category"`
	Email     string    `json:"email"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}
