package input

import (
	"hackerstories/internal/domain"
	"hackerstories/internal/ui/input/modes"
	"hackerstories/internal/ui/logic"
)

// ModelContext implements the Context interface for the input handler
type ModelContext struct {
	Stories   []domain.Story // in display order
	Navigator *logic.Navigator
	Recent    []string
	Term      string
	Sort      logic.SortState
}

// CurrentIndex returns the current selected index
func (c *ModelContext) CurrentIndex() int {
	return c.Navigator.SelectedIndex()
}

// TotalItems returns the number of stories shown
func (c *ModelContext) TotalItems() int {
	return len(c.Stories)
}

// CurrentStoryID returns the ID of the story under the cursor
func (c *ModelContext) CurrentStoryID() string {
	i := c.CurrentIndex()
	if i < 0 || i >= len(c.Stories) {
		return ""
	}
	return c.Stories[i].ID
}

func (c *ModelContext) RecentCount() int {
	return len(c.Recent)
}

func (c *ModelContext) SearchTerm() string {
	return c.Term
}

func (c *ModelContext) CurrentSortIndex() int {
	return modes.SortIndex(c.Sort.Key)
}
