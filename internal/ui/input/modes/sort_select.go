package modes

import (
	tea "github.com/charmbracelet/bubbletea"

	"hackerstories/internal/ui/input/types"
	"hackerstories/internal/ui/logic"
)

// SortOptions available for sorting
var SortOptions = []struct {
	Key         logic.SortKey
	Shortcut    string
	Name        string
	Description string
}{
	{logic.SortNone, "n", "None", "Order returned by the search"},
	{logic.SortTitle, "t", "Title", "Sort by story title"},
	{logic.SortAuthor, "a", "Author", "Sort by author"},
	{logic.SortComments, "c", "Comments", "Sort by number of comments"},
	{logic.SortPoints, "p", "Points", "Sort by points"},
}

// SortIndex returns the position of key in SortOptions
func SortIndex(key logic.SortKey) int {
	for i, option := range SortOptions {
		if option.Key == key {
			return i
		}
	}
	return 0
}

type SortSelectMode struct {
	sortIndex int
}

func NewSortSelectMode() *SortSelectMode {
	return &SortSelectMode{}
}

func (m *SortSelectMode) Name() string {
	return "sort"
}

func (m *SortSelectMode) Enter(ctx types.Context) []types.Action {
	m.sortIndex = ctx.CurrentSortIndex()
	return []types.Action{types.UpdateSortIndexAction{Index: m.sortIndex}}
}

func (m *SortSelectMode) Exit(ctx types.Context) []types.Action {
	return nil
}

// HandleKey processes key messages for sort selection. Choosing the active
// column again flips its direction.
func (m *SortSelectMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	switch msg.String() {
	case "ctrl+c":
		return []types.Action{types.QuitAction{}}, true

	case "esc", "q":
		return []types.Action{types.ChangeModeAction{Mode: types.ModeNormal}}, true

	case "enter", " ":
		return []types.Action{
			types.SortByAction{Index: m.sortIndex},
			types.ChangeModeAction{Mode: types.ModeNormal},
		}, true

	case "up", "k":
		m.sortIndex--
		if m.sortIndex < 0 {
			m.sortIndex = len(SortOptions) - 1
		}
		return []types.Action{types.UpdateSortIndexAction{Index: m.sortIndex}}, true

	case "down", "j":
		m.sortIndex++
		if m.sortIndex >= len(SortOptions) {
			m.sortIndex = 0
		}
		return []types.Action{types.UpdateSortIndexAction{Index: m.sortIndex}}, true
	}

	for i, option := range SortOptions {
		if msg.String() == option.Shortcut {
			m.sortIndex = i
			return []types.Action{
				types.UpdateSortIndexAction{Index: i},
				types.SortByAction{Index: i},
				types.ChangeModeAction{Mode: types.ModeNormal},
			}, true
		}
	}

	return nil, true
}

// GetCurrentIndex returns the current sort option index
func (m *SortSelectMode) GetCurrentIndex() int {
	return m.sortIndex
}
