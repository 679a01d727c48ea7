package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"hackerstories/internal/domain"
	"hackerstories/internal/ui/input/modes"
	"hackerstories/internal/ui/logic"
)

// ChromeLines is the number of rows the view uses around the story list:
// container padding, title, search line, recent searches, status line,
// column header and the help bar.
const ChromeLines = 9

// ViewState contains all the state needed for rendering
type ViewState struct {
	Width  int
	Height int

	TotalComments int
	Term          string
	InputMode     string // "", "search" or "sort"
	TextInput     string // rendered text input while searching
	Recent        []string

	Stories        []domain.Story // display order
	SelectedIndex  int
	ViewportOffset int
	ViewportHeight int
	IsLoading      bool
	IsError        bool
	HasMore        bool
	Spinner        string

	Sort            logic.SortState
	SortOptionIndex int

	StatusMessage string
	HelpBar       string
	ShowHelp      bool
	HelpContent   string
	ShowInfo      bool
	InfoContent   string
}

// Renderer handles all view rendering
type Renderer struct {
	styles      *Styles
	storyRender *StoryRenderer
	popupRender *PopupRenderer
}

// NewRenderer creates a new renderer
func NewRenderer() *Renderer {
	styles := NewStyles()
	return &Renderer{
		styles:      styles,
		storyRender: NewStoryRenderer(styles),
		popupRender: NewPopupRenderer(styles),
	}
}

// Styles exposes the renderer's styles
func (r *Renderer) Styles() *Styles {
	return r.styles
}

// Render produces the complete view
func (r *Renderer) Render(state ViewState) string {
	content := &strings.Builder{}

	width := state.Width
	if width <= 0 {
		width = 80 // Default terminal width
	}
	innerWidth := width - 4 // Account for main container padding

	content.WriteString(r.renderTitle(state, innerWidth))
	content.WriteString("\n")
	content.WriteString(r.renderSearchLine(state))
	content.WriteString("\n")
	content.WriteString(r.renderRecent(state))
	content.WriteString("\n")
	content.WriteString(r.renderStatusLine(state))
	content.WriteString("\n")

	cols := NewColumns(innerWidth)
	content.WriteString(r.storyRender.RenderHeader(cols, state.Sort))
	content.WriteString("\n")
	content.WriteString(r.renderStoryList(state, cols))

	// Push the help bar to the bottom
	if state.HelpBar != "" {
		currentLines := strings.Count(content.String(), "\n") + 1
		availableLines := state.Height - 2
		if availableLines <= 0 {
			availableLines = 22
		}
		if pad := availableLines - currentLines - 1; pad > 0 {
			content.WriteString(strings.Repeat("\n", pad))
		}
		content.WriteString("\n")
		content.WriteString(state.HelpBar)
	}

	mainStyle := r.styles.Main
	if state.Height > 0 {
		mainStyle = mainStyle.MaxHeight(state.Height)
	}
	finalContent := mainStyle.Render(content.String())

	if state.ShowInfo && state.InfoContent != "" {
		return r.popupRender.RenderPopupOverlay(finalContent, state.InfoContent, state.Height, state.Width, r.styles.InfoBox)
	}
	if state.ShowHelp && state.HelpContent != "" {
		return r.popupRender.RenderPopupOverlay(finalContent, state.HelpContent, state.Height, state.Width, r.styles.HelpBox)
	}
	return finalContent
}

// renderTitle renders the header with the comment total and, while a
// request is outstanding, the spinner on the right
func (r *Renderer) renderTitle(state ViewState, width int) string {
	title := r.styles.Title.Render(fmt.Sprintf("My Hacker Stories with %d comments.", state.TotalComments))
	if !state.IsLoading {
		return title
	}
	right := r.styles.StatusLoading.Render(strings.TrimSpace(state.Spinner + " Loading..."))
	pad := width - lipgloss.Width(title) - lipgloss.Width(right)
	if pad < 2 {
		pad = 2
	}
	return title + strings.Repeat(" ", pad) + right
}

func (r *Renderer) renderSearchLine(state ViewState) string {
	label := r.styles.Label.Render("Search:")
	switch state.InputMode {
	case "search":
		hint := r.styles.Dim.Render("  enter submit • esc done")
		if state.TextInput == "" {
			return label + " " + hint
		}
		return label + " " + state.TextInput + hint
	case "sort":
		return r.renderSortOptions(state)
	}
	if state.Term == "" {
		return label + " " + r.styles.Dim.Render("(empty, press / to type a term)")
	}
	return label + " " + state.Term + r.styles.Dim.Render("  / edit")
}

func (r *Renderer) renderRecent(state ViewState) string {
	if len(state.Recent) == 0 {
		return r.styles.Dim.Render("No recent searches")
	}
	parts := make([]string, 0, len(state.Recent))
	for i, term := range state.Recent {
		parts = append(parts, r.styles.RecentKey.Render(fmt.Sprintf("[%d]", i+1))+" "+r.styles.Recent.Render(term))
	}
	return r.styles.Dim.Render("Recent: ") + strings.Join(parts, "  ")
}

func (r *Renderer) renderStatusLine(state ViewState) string {
	switch {
	case state.IsError:
		line := r.styles.StatusError.Render("Something went wrong ...")
		if state.StatusMessage != "" {
			line += "  " + r.styles.Status.Render(state.StatusMessage)
		}
		return line
	case state.StatusMessage != "":
		return r.styles.Status.Render(state.StatusMessage)
	}
	return ""
}

// renderStoryList renders the rows inside the viewport. The row after the
// last story is the sentinel.
func (r *Renderer) renderStoryList(state ViewState, cols Columns) string {
	height := state.ViewportHeight
	if height < 1 {
		height = 1
	}
	if len(state.Stories) == 0 && !state.IsLoading {
		return r.styles.Dim.Render("  No stories")
	}

	var lines []string
	end := state.ViewportOffset + height
	for i := state.ViewportOffset; i < end && i <= len(state.Stories); i++ {
		if i == len(state.Stories) {
			lines = append(lines, r.renderSentinel(state))
			break
		}
		lines = append(lines, r.storyRender.RenderStory(state.Stories[i], cols, i == state.SelectedIndex))
	}

	if below := len(state.Stories) - end; below > 0 {
		lines = append(lines, r.styles.Scroll.Render(fmt.Sprintf("  ↓ %d more below", below)))
	}
	return strings.Join(lines, "\n")
}

func (r *Renderer) renderSentinel(state ViewState) string {
	switch {
	case state.IsLoading:
		return r.styles.StatusLoading.Render("  Loading...")
	case state.IsError:
		return r.styles.Dim.Render("  scroll up and back down to retry")
	case state.HasMore:
		return r.styles.Dim.Render("  ··· more stories ···")
	}
	return r.styles.Dim.Render("  end of results")
}

// renderSortOptions renders the sort mode selection interface
func (r *Renderer) renderSortOptions(state ViewState) string {
	if state.SortOptionIndex < 0 || state.SortOptionIndex >= len(modes.SortOptions) {
		return ""
	}
	option := modes.SortOptions[state.SortOptionIndex]
	sortLine := fmt.Sprintf("Sort by: %s - %s", option.Name, option.Description)
	return sortLine + r.styles.Dim.Render("  ↑/↓ change • enter apply • t/a/c/p/n direct • esc cancel")
}
