package views

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"

	"hackerstories/internal/domain"
	"hackerstories/internal/ui/logic"
)

// Columns holds the cell widths of the story table
type Columns struct {
	Title    int
	Author   int
	Comments int
	Points   int
}

// NewColumns splits width the way the list header does: 40% title,
// 30% author, 10% each for comments and points.
func NewColumns(width int) Columns {
	if width < 40 {
		width = 40
	}
	usable := width - 2 // cursor marker
	c := Columns{
		Title:    usable * 40 / 100,
		Author:   usable * 30 / 100,
		Comments: usable * 10 / 100,
		Points:   usable * 10 / 100,
	}
	if c.Comments < 8 {
		c.Comments = 8
	}
	if c.Points < 6 {
		c.Points = 6
	}
	return c
}

// StoryRenderer handles rendering of story rows
type StoryRenderer struct {
	styles *Styles
}

// NewStoryRenderer creates a new story renderer
func NewStoryRenderer(styles *Styles) *StoryRenderer {
	return &StoryRenderer{styles: styles}
}

// RenderHeader renders the column header with the
// direction arrow on the active sort column.
func (r *StoryRenderer) RenderHeader(cols Columns, sort logic.SortState) string {
	cell := func(label string, key logic.SortKey, width int) string {
		if sort.Key == key {
			arrow := "▼"
			if sort.Reverse {
				arrow = "▲"
			}
			return r.styles.ActiveColumn.Render(fit(label+" "+arrow, width-1)) + " "
		}
		return r.styles.ColumnHeader.Render(fit(label, width-1)) + " "
	}
	return "  " +
		cell("Title", logic.SortTitle, cols.Title) +
		cell("Author", logic.SortAuthor, cols.Author) +
		cell("Comments", logic.SortComments, cols.Comments) +
		cell("Points", logic.SortPoints, cols.Points)
}

// RenderStory renders one story row
func (r *StoryRenderer) RenderStory(story domain.Story, cols Columns, isSelected bool) string {
	marker := "  "
	if isSelected {
		marker = "> "
	}

	title := fit(story.Title, cols.Title-1)
	author := fit(story.Author, cols.Author-1)
	comments := fitRight(fmt.Sprintf("%d", story.CommentCount), cols.Comments-1)
	points := fitRight(fmt.Sprintf("%d", story.Points), cols.Points-1)

	authorStyle := r.styles.Author
	commentStyle := r.styles.Comments
	pointStyle := r.styles.Points
	titleStyle := r.styles.Label.UnsetBold()
	if isSelected {
		titleStyle = titleStyle.Inherit(r.styles.SelectionBg).Bold(true)
		authorStyle = authorStyle.Inherit(r.styles.SelectionBg)
		commentStyle = commentStyle.Inherit(r.styles.SelectionBg)
		pointStyle = pointStyle.Inherit(r.styles.SelectionBg)
	}

	var b strings.Builder
	b.WriteString(marker)
	b.WriteString(titleStyle.Render(title + " "))
	b.WriteString(authorStyle.Render(author + " "))
	b.WriteString(commentStyle.Render(comments + " "))
	b.WriteString(pointStyle.Render(points))
	return b.String()
}

// fit truncates or pads s to exactly width display cells
func fit(s string, width int) string {
	if width <= 0 {
		return ""
	}
	s = runewidth.Truncate(s, width, "…")
	return runewidth.FillRight(s, width)
}

func fitRight(s string, width int) string {
	if width <= 0 {
		return ""
	}
	s = runewidth.Truncate(s, width, "…")
	return runewidth.FillLeft(s, width)
}
