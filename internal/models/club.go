package models

import "time"

type Club struct {
	ID           int64   `json:"id"`
	Mass         string  `json:"mass"`
	Ref          string  `json:"ref"`
	Title        string  `json:"title"`
	Nickname     string  `json:"nickname"`
	Manager      *string `json:"manager,omitempty"`
	ManagerEmail *string `json:"-"`
}

// ClubReport is a head-inserted feed entry, capped at FeedCap per club.
type ClubReport struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	Image   string `json:"image"`
}

type ManagerRecord struct {
	Manager   string     `json:"manager"`
	Arrival   time.Time  `json:"arrival"`
	Departure *time.Time `json:"departure"`
}
