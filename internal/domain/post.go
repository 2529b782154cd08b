package domain

import "time"

// Post is a single social-media post as returned by the fetcher.
// Posts are immutable once fetched and keep the fetcher's ordering
// (typically reverse-chronological; never re-sorted downstream).
type Post struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}
