package state

import (
	"hackerstories/internal/ui/logic"
)

// AppState contains the UI state that is not owned by the orchestrator.
// Stories, paging and loading flags live in fetch.Orchestrator.
type AppState struct {
	// Ordering of the visible list
	Sort            logic.SortState
	SortOptionIndex int // highlighted option in sort mode

	// Popups
	ShowHelp    bool
	ShowInfo    bool
	InfoContent string

	StatusMessage string
}

// NewAppState creates a new application state
func NewAppState() *AppState {
	return &AppState{}
}

// HasPopup reports whether a popup currently owns the keyboard
func (s *AppState) HasPopup() bool {
	return s.ShowHelp || s.ShowInfo
}

// ClosePopups hides every popup
func (s *AppState) ClosePopups() {
	s.ShowHelp = false
	s.ShowInfo = false
	s.InfoContent = ""
}
