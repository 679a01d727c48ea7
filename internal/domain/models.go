package domain

import "time"

// Story represents a single search hit
type Story struct {
	ID           string
	URL          string
	Title        string
	Author       string
	CommentCount int
	Points       int
	Text         string    // plain-text story body, empty for link posts
	CreatedAt    time.Time // zero if the API omitted it
}

// SearchPage is one page of search results as returned by the API
type SearchPage struct {
	Hits    []Story
	Page    int
	NbPages int // total pages available, 0 if unknown
}

// HasMore reports whether a page after this one exists.
// An unknown page count is treated as "maybe".
func (p SearchPage) HasMore() bool {
	if p.NbPages <= 0 {
		return true
	}
	return p.Page+1 < p.NbPages
}
