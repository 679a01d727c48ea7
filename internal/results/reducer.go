// Package results holds the story list state machine.
//
// State only changes through Reduce. Reduce is pure: it never performs I/O and
// never mutates the slice held by the state it was given.
package results

import (
	"fmt"

	"hackerstories/internal/domain"
)

// State is the fetch lifecycle plus the accumulated story list
type State struct {
	Items     []domain.Story
	Page      int
	IsLoading bool
	IsError   bool
}

// Kind tags each action variant
type Kind int

const (
	KindFetchInit Kind = iota + 1
	KindFetchSuccess
	KindFetchFailure
	KindChangePage
	KindRemoveItem
)

func (k Kind) String() string {
	switch k {
	case KindFetchInit:
		return "fetch_init"
	case KindFetchSuccess:
		return "fetch_success"
	case KindFetchFailure:
		return "fetch_failure"
	case KindChangePage:
		return "change_page"
	case KindRemoveItem:
		return "remove_item"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Action is a state transition request
type Action interface {
	Kind() Kind
}

// FetchInit marks a request as in flight
type FetchInit struct{}

func (FetchInit) Kind() Kind { return KindFetchInit }

// FetchSuccess carries one page of stories. Page 0 replaces the list,
// any other page is appended to it.
type FetchSuccess struct {
	Items []domain.Story
	Page  int
}

func (FetchSuccess) Kind() Kind { return KindFetchSuccess }

// FetchFailure marks the in-flight request as failed
type FetchFailure struct{}

func (FetchFailure) Kind() Kind { return KindFetchFailure }

// ChangePage records the page to load next. It does not fetch anything.
type ChangePage struct {
	Page int
}

func (ChangePage) Kind() Kind { return KindChangePage }

// RemoveItem drops the story with the given ID
type RemoveItem struct {
	ID string
}

func (RemoveItem) Kind() Kind { return KindRemoveItem }

// Initial returns the empty start state
func Initial() State {
	return State{Items: []domain.Story{}}
}

// Reduce applies a single action. An unrecognized action is a programming
// error and panics.
func Reduce(s State, action Action) State {
	if action == nil {
		panic("results: nil action")
	}

	switch a := action.(type) {
	case FetchInit:
		s.IsLoading = true
		s.IsError = false

	case FetchSuccess:
		s.IsLoading = false
		s.IsError = false
		s.Page = a.Page
		if a.Page == 0 {
			s.Items = append([]domain.Story{}, a.Items...)
		} else {
			items := make([]domain.Story, 0, len(s.Items)+len(a.Items))
			items = append(items, s.Items...)
			s.Items = append(items, a.Items...)
		}

	case FetchFailure:
		s.IsLoading = false
		s.IsError = true

	case ChangePage:
		s.Page = a.Page

	case RemoveItem:
		for i, story := range s.Items {
			if story.ID == a.ID {
				items := make([]domain.Story, 0, len(s.Items)-1)
				items = append(items, s.Items[:i]...)
				s.Items = append(items, s.Items[i+1:]...)
				break
			}
		}

	default:
		panic(fmt.Sprintf("results: unknown action %T (%s)", action, action.Kind()))
	}

	return s
}

// SumComments totals the comment counts of the given stories
func SumComments(items []domain.Story) int {
	total := 0
	for _, story := range items {
		total += story.CommentCount
	}
	return total
}
