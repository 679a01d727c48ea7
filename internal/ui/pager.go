package ui

import (
	"fmt"
	"io"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/noborus/ov/oviewer"

	"hackerstories/internal/domain"
)

// pagerMsg contains the result of a pager command
type pagerMsg struct {
	err error
}

// Pager shows long content in ov, handing the terminal over while it runs
type Pager struct {
	program *tea.Program // reference to Bubble Tea program for terminal management
}

// NewPager creates a new pager
func NewPager() *Pager {
	return &Pager{}
}

// SetProgram sets the program reference for terminal management
func (p *Pager) SetProgram(program *tea.Program) {
	p.program = program
}

// Show pages content with ov
func (p *Pager) Show(content string) error {
	return p.run(strings.NewReader(content))
}

func (p *Pager) run(r io.Reader) error {
	if p.program == nil {
		return fmt.Errorf("program not set")
	}

	root, err := oviewer.NewRoot(r)
	if err != nil {
		return err
	}

	// Configure ov to not write on exit (to avoid messing with our screen)
	config := oviewer.NewConfig()
	config.IsWriteOnExit = false
	config.IsWriteOriginal = false
	root.SetConfig(config)

	if err := p.program.ReleaseTerminal(); err != nil {
		return err
	}
	defer func() {
		fmt.Print("\x1b[2J\x1b[H")
		time.Sleep(100 * time.Millisecond)
		_ = p.program.RestoreTerminal()
	}()

	return root.Run()
}

// StoriesDocument renders stories as plain text for the pager
func StoriesDocument(term string, stories []domain.Story) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Search: %s (%d stories)\n\n", term, len(stories))
	for i, s := range stories {
		fmt.Fprintf(&b, "%3d. %s\n", i+1, s.Title)
		if s.URL != "" {
			fmt.Fprintf(&b, "     %s\n", s.URL)
		}
		fmt.Fprintf(&b, "     by %s | %d points | %d comments\n", s.Author, s.Points, s.CommentCount)
		if s.Text != "" {
			for _, line := range strings.Split(s.Text, "\n") {
				fmt.Fprintf(&b, "     %s\n", line)
			}
		}
		b.WriteString("\n")
	}
	return b.String()
}
