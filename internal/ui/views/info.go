package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"hackerstories/internal/domain"
)

// RenderStoryInfo builds the body of the info popup for a story
func RenderStoryInfo(s domain.Story, width int) string {
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Bold(true).Render(s.Title))
	b.WriteString("\n\n")

	url := s.URL
	if url == "" {
		url = "(no link)"
	}
	fmt.Fprintf(&b, "URL:      %s\n", url)
	fmt.Fprintf(&b, "Author:   %s\n", s.Author)
	fmt.Fprintf(&b, "Points:   %d\n", s.Points)
	fmt.Fprintf(&b, "Comments: %d\n", s.CommentCount)
	if !s.CreatedAt.IsZero() {
		fmt.Fprintf(&b, "Created:  %s\n", s.CreatedAt.Format("2006-01-02 15:04"))
	}
	if s.Text != "" {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Width(width).Render(s.Text))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Faint(true).Render("esc close"))
	return b.String()
}
