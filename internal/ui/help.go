package ui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
)

// KeyMap describes the normal-mode bindings for the help views. Matching is
// done by the input modes; these bindings only document them.
type KeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Page   key.Binding
	Ends   key.Binding
	Search key.Binding
	Recent key.Binding
	Sort   key.Binding
	Info   key.Binding
	Remove key.Binding
	Retry  key.Binding
	Pager  key.Binding
	Help   key.Binding
	Quit   key.Binding
}

// DefaultKeyMap returns the bindings handled by the normal mode
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Page:   key.NewBinding(key.WithKeys("pgup", "pgdown"), key.WithHelp("PgUp/PgDn", "page")),
		Ends:   key.NewBinding(key.WithKeys("g", "G", "home", "end"), key.WithHelp("gg/G", "top/bottom")),
		Search: key.NewBinding(key.WithKeys("/", "e"), key.WithHelp("/", "search")),
		Recent: key.NewBinding(key.WithKeys("1", "2", "3", "4", "5"), key.WithHelp("1-5", "recent search")),
		Sort:   key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "sort")),
		Info:   key.NewBinding(key.WithKeys("i", "enter"), key.WithHelp("i/enter", "story info")),
		Remove: key.NewBinding(key.WithKeys("d", "x"), key.WithHelp("d", "dismiss story")),
		Retry:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
		Pager:  key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "open in pager")),
		Help:   key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Search, k.Recent, k.Sort, k.Info, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Page, k.Ends},
		{k.Search, k.Recent, k.Retry, k.Sort},
		{k.Info, k.Remove, k.Pager},
		{k.Help, k.Quit},
	}
}

// renderHelpContent renders the full help popup body
func renderHelpContent(h help.Model, keys KeyMap) string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("208")).
		MarginBottom(1)

	full := h
	full.ShowAll = true
	return titleStyle.Render("Hacker Stories Help") + "\n" +
		full.View(keys) + "\n\n" +
		lipgloss.NewStyle().Faint(true).Render("Sort mode: t title • a author • c comments • p points • n none\nChoosing the active column again reverses it.\n\nesc close")
}
