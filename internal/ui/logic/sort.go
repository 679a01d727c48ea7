package logic

import (
	"fmt"
	"sort"
	"strings"

	"hackerstories/internal/domain"
)

// SortKey represents the column the story list is ordered by
type SortKey int

const (
	SortNone SortKey = iota
	SortTitle
	SortAuthor
	SortComments
	SortPoints
)

// SortKeys lists every key in column order
var SortKeys = []SortKey{SortNone, SortTitle, SortAuthor, SortComments, SortPoints}

func (k SortKey) String() string {
	switch k {
	case SortTitle:
		return "title"
	case SortAuthor:
		return "author"
	case SortComments:
		return "comments"
	case SortPoints:
		return "points"
	default:
		return "none"
	}
}

// ParseSortKey accepts the names produced by String, case-insensitively.
func ParseSortKey(s string) (SortKey, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return SortNone, nil
	case "title":
		return SortTitle, nil
	case "author":
		return SortAuthor, nil
	case "comments", "comment":
		return SortComments, nil
	case "points", "point":
		return SortPoints, nil
	}
	return SortNone, fmt.Errorf("unknown sort key %q", s)
}

// SortState is the current ordering of the list. It is a view concern and
// never changes the underlying results.
type SortState struct {
	Key     SortKey
	Reverse bool
}

// Toggle selects key. Selecting the active key again flips the direction,
// selecting a different key starts ascending.
func (s SortState) Toggle(key SortKey) SortState {
	return SortState{Key: key, Reverse: s.Key == key && !s.Reverse}
}

// Sort returns a sorted copy of items. Ties keep their original order and
// SortNone returns the items in insertion order.
func (s SortState) Sort(items []domain.Story) []domain.Story {
	out := make([]domain.Story, len(items))
	copy(out, items)

	less := lessFunc(s.Key)
	if less == nil {
		return out
	}
	sort.SliceStable(out, func(i, j int) bool {
		if s.Reverse {
			return less(out[j], out[i])
		}
		return less(out[i], out[j])
	})
	return out
}

func lessFunc(key SortKey) func(a, b domain.Story) bool {
	switch key {
	case SortTitle:
		return func(a, b domain.Story) bool { return a.Title < b.Title }
	case SortAuthor:
		return func(a, b domain.Story) bool { return a.Author < b.Author }
	case SortComments:
		return func(a, b domain.Story) bool { return a.CommentCount < b.CommentCount }
	case SortPoints:
		return func(a, b domain.Story) bool { return a.Points < b.Points }
	}
	return nil
}
