package ui

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"hackerstories/internal/domain"
	"hackerstories/internal/fetch"
	"hackerstories/internal/results"
	"hackerstories/internal/ui/input"
	"hackerstories/internal/ui/input/modes"
	inputtypes "hackerstories/internal/ui/input/types"
	"hackerstories/internal/ui/logic"
	"hackerstories/internal/ui/state"
	"hackerstories/internal/ui/views"
)

const statusTimeout = 4 * time.Second

// Options configures a Model
type Options struct {
	Logger *slog.Logger
}

// Model represents the UI state
type Model struct {
	ctx    context.Context
	orch   *fetch.Orchestrator
	logger *slog.Logger
	state  *state.AppState

	width  int
	height int

	help        help.Model
	keys        KeyMap
	spinner     spinner.Model
	inPagerMode bool
	statusSeq   int

	navigator    *logic.Navigator
	sentinel     logic.SentinelDetector
	renderer     *views.Renderer
	inputHandler *input.Handler
	pager        *Pager

	// stories is the sorted view of the orchestrator's items
	stories []domain.Story

	// Program reference for terminal management
	program *tea.Program
}

// NewModel creates a new UI model. ctx bounds every network request.
func NewModel(ctx context.Context, orch *fetch.Orchestrator, opts Options) *Model {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	m := &Model{
		ctx:          ctx,
		orch:         orch,
		logger:       logger,
		state:        state.NewAppState(),
		help:         help.New(),
		keys:         DefaultKeyMap(),
		spinner:      sp,
		navigator:    logic.NewNavigator(),
		renderer:     views.NewRenderer(),
		inputHandler: input.New(),
		pager:        NewPager(),
	}
	m.syncStories()
	return m
}

// SetProgram sets the program reference for terminal management
func (m *Model) SetProgram(p *tea.Program) {
	m.program = p
	m.pager.SetProgram(p)
}

// Init starts the spinner and the first search
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.fetchCmd(m.orch.Start()))
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.updateViewportHeight()
		return m, m.checkSentinel()

	case tea.KeyMsg:
		if m.state.HasPopup() {
			switch msg.String() {
			case "esc", "q", "i", "?", "enter":
				m.state.ClosePopups()
			case "ctrl+c":
				return m, tea.Quit
			}
			return m, nil
		}

		ctx := &input.ModelContext{
			Stories:   m.stories,
			Navigator: m.navigator,
			Recent:    m.orch.RecentSearches(),
			Term:      m.orch.Term(),
			Sort:      m.state.Sort,
		}
		actions, cmd := m.inputHandler.HandleKey(msg, ctx)

		cmds := []tea.Cmd{cmd}
		for _, action := range actions {
			cmds = append(cmds, m.processAction(action))
		}
		cmds = append(cmds, m.checkSentinel())
		return m, tea.Batch(cmds...)

	case searchResultMsg:
		if !m.orch.Complete(msg.resp) {
			return m, nil
		}
		m.syncStories()
		if msg.resp.Err == nil {
			// New rows may leave the sentinel on screen; let it fire again
			m.sentinel.Reset()
		}
		return m, m.checkSentinel()

	case EventMsg:
		return m, m.handleEvent(msg.Event)

	case spinner.TickMsg:
		if m.inPagerMode {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case pagerMsg:
		if msg.err != nil {
			m.logger.Warn("pager failed", "error", msg.err)
			return m, m.setStatus(fmt.Sprintf("Pager failed: %v", msg.err))
		}
		return m, nil

	case pauseRenderingMsg:
		m.inPagerMode = true
		return m, nil

	case resumeRenderingMsg:
		m.inPagerMode = false
		return m, m.spinner.Tick

	case clearStatusMsg:
		if msg.seq == m.statusSeq {
			m.state.StatusMessage = ""
		}
		return m, nil

	default:
		return m, m.inputHandler.Update(msg)
	}
}

// View renders the UI
func (m *Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	s := m.orch.State()
	vs := views.ViewState{
		Width:           m.width,
		Height:          m.height,
		TotalComments:   results.SumComments(s.Items),
		Term:            m.orch.Term(),
		Recent:          m.orch.RecentSearches(),
		Stories:         m.stories,
		SelectedIndex:   m.navigator.SelectedIndex(),
		ViewportOffset:  m.navigator.ViewportOffset(),
		ViewportHeight:  m.navigator.ViewportHeight(),
		IsLoading:       s.IsLoading,
		IsError:         s.IsError,
		HasMore:         m.orch.HasMore(),
		Spinner:         m.spinner.View(),
		Sort:            m.state.Sort,
		SortOptionIndex: m.state.SortOptionIndex,
		StatusMessage:   m.state.StatusMessage,
		HelpBar:         m.help.View(m.keys),
		ShowHelp:        m.state.ShowHelp,
		ShowInfo:        m.state.ShowInfo,
		InfoContent:     m.state.InfoContent,
	}
	if m.state.ShowHelp {
		vs.HelpContent = renderHelpContent(m.help, m.keys)
	}

	switch m.inputHandler.CurrentMode() {
	case inputtypes.ModeSearch:
		vs.InputMode = "search"
		if ti := m.inputHandler.TextInput(); ti != nil {
			vs.TextInput = ti.View()
		}
	case inputtypes.ModeSort:
		vs.InputMode = "sort"
	}

	return m.renderer.Render(vs)
}

// processAction processes an action from the input handler
func (m *Model) processAction(action inputtypes.Action) tea.Cmd {
	m.logger.Debug("processAction", "action", action.Type())
	switch a := action.(type) {
	case inputtypes.NavigateAction:
		switch a.Direction {
		case "up":
			m.navigator.Move(-1)
		case "down":
			m.navigator.Move(1)
		case "pageup":
			m.navigator.PageUp()
		case "pagedown":
			m.navigator.PageDown()
		case "home":
			m.navigator.Home()
		case "end":
			m.navigator.End()
		}

	case inputtypes.UpdateTextAction:
		m.orch.SetTerm(a.Text)

	case inputtypes.SubmitTextAction:
		if a.Mode != inputtypes.ModeSearch {
			return nil
		}
		if a.Text == "" {
			return m.setStatus("Type a search term first")
		}
		return m.startSearch(m.orch.Submit(a.Text))

	case inputtypes.CancelTextAction:
		// The term is already persisted as it is typed

	case inputtypes.SelectRecentAction:
		recent := m.orch.RecentSearches()
		if a.Index < 0 || a.Index >= len(recent) {
			return nil
		}
		return m.startSearch(m.orch.SelectRecent(recent[a.Index]))

	case inputtypes.RetryAction:
		return m.startSearch(m.orch.Start())

	case inputtypes.RemoveStoryAction:
		m.orch.RemoveStory(a.ID)
		m.syncStories()

	case inputtypes.ToggleInfoAction:
		if story, ok := m.currentStory(); ok {
			m.state.ShowInfo = true
			m.state.InfoContent = views.RenderStoryInfo(story, 64)
		}

	case inputtypes.ToggleHelpAction:
		m.state.ShowHelp = !m.state.ShowHelp

	case inputtypes.UpdateSortIndexAction:
		m.state.SortOptionIndex = a.Index

	case inputtypes.SortByAction:
		if a.Index < 0 || a.Index >= len(modes.SortOptions) {
			return nil
		}
		m.state.Sort = m.state.Sort.Toggle(modes.SortOptions[a.Index].Key)
		m.syncStories()

	case inputtypes.OpenPagerAction:
		return m.pagerCmd(StoriesDocument(m.orch.CurrentTerm(), m.stories))

	case inputtypes.QuitAction:
		return tea.Quit
	}
	return nil
}

// handleEvent turns forwarded domain events into status messages
func (m *Model) handleEvent(event domain.DomainEvent) tea.Cmd {
	switch e := event.(type) {
	case domain.ErrorEvent:
		return m.setStatus(e.Message)
	case domain.FetchDroppedEvent:
		return m.setStatus("Still loading, try again in a moment")
	case domain.FetchFailedEvent:
		return m.setStatus(e.Err.Error())
	}
	return nil
}

// startSearch resets the list position for a fresh search and runs req
func (m *Model) startSearch(req *fetch.Request) tea.Cmd {
	if req == nil {
		return nil
	}
	if req.Page == 0 {
		m.navigator.Reset()
		m.sentinel.Reset()
	}
	m.state.StatusMessage = ""
	return m.fetchCmd(req)
}

// fetchCmd runs req off the update loop and reports back with a
// searchResultMsg
func (m *Model) fetchCmd(req *fetch.Request) tea.Cmd {
	if req == nil {
		return nil
	}
	r := *req
	orch := m.orch
	ctx := m.ctx
	return func() tea.Msg {
		return searchResultMsg{resp: orch.Execute(ctx, r)}
	}
}

// checkSentinel samples the sentinel row and asks for the next page on a
// hidden to visible transition. Nothing is sampled while a request is out;
// the detector is reset when it completes.
func (m *Model) checkSentinel() tea.Cmd {
	if m.orch.State().IsLoading {
		return nil
	}
	if !m.sentinel.Observe(m.navigator.SentinelVisible()) {
		return nil
	}
	return m.fetchCmd(m.orch.SentinelVisible())
}

// syncStories rebuilds the sorted view after the items or the ordering changed
func (m *Model) syncStories() {
	m.stories = m.state.Sort.Sort(m.orch.State().Items)
	m.navigator.SetTotal(len(m.stories))
}

func (m *Model) currentStory() (domain.Story, bool) {
	i := m.navigator.SelectedIndex()
	if i < 0 || i >= len(m.stories) {
		return domain.Story{}, false
	}
	return m.stories[i], true
}

func (m *Model) updateViewportHeight() {
	m.navigator.SetViewportHeight(m.height - views.ChromeLines)
}

func (m *Model) setStatus(msg string) tea.Cmd {
	m.statusSeq++
	seq := m.statusSeq
	m.state.StatusMessage = msg
	return tea.Tick(statusTimeout, func(time.Time) tea.Msg { return clearStatusMsg{seq: seq} })
}

// pagerCmd returns a command that shows content using the ov pager
func (m *Model) pagerCmd(content string) tea.Cmd {
	if m.program == nil {
		return m.setStatus("Pager unavailable")
	}
	return func() tea.Msg {
		m.program.Send(pauseRenderingMsg{})
		err := m.pager.Show(content)
		m.program.Send(resumeRenderingMsg{})
		return pagerMsg{err: err}
	}
}
