package models

// FeedCap bounds the head-inserting news/report feeds.
const FeedCap = 15

type Mass struct {
	ID             int64  `json:"id"`
	Ref            string `json:"ref"`
	Name           string `json:"name"`
	UnmanagedTotal int    `json:"unmanaged_total"`
}

// NewsItem is a head-inserted feed entry, capped at FeedCap per mass.
type NewsItem struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	Image   string `json:"image"`
}
