// Package fetch drives the results state machine from user and network events.
//
// An Orchestrator is not safe for concurrent use. It is meant to be driven
// from a single event loop: Submit, SentinelVisible and Complete mutate state,
// while Execute performs the network call and may run on any goroutine.
package fetch

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"hackerstories/internal/domain"
	"hackerstories/internal/eventbus"
	"hackerstories/internal/query"
	"hackerstories/internal/results"
	"hackerstories/internal/store"
)

// DefaultRecentLimit is how many recent searches are offered
const DefaultRecentLimit = 5

// Fetcher performs one search request
type Fetcher interface {
	Search(ctx context.Context, rawURL string) (domain.SearchPage, error)
}

// Request is a fetch that has been started and must be executed
type Request struct {
	ID   string // correlation id for logs
	Seq  uint64
	URL  string
	Term string
	Page int
}

// Response is the outcome of executing a Request
type Response struct {
	Request Request
	Page    domain.SearchPage
	Err     error
}

// Options configures an Orchestrator
type Options struct {
	Fetcher     Fetcher
	Term        *store.SemiPersistent
	Builder     query.Builder
	Bus         eventbus.EventBus // optional
	Logger      *slog.Logger      // optional
	RecentLimit int               // 0 means DefaultRecentLimit

	// InitialTerm, when set, replaces the persisted term before the
	// history is seeded, so Start searches it.
	InitialTerm string
}

// Orchestrator owns the request history and the results state
type Orchestrator struct {
	fetcher     Fetcher
	term        *store.SemiPersistent
	builder     query.Builder
	bus         eventbus.EventBus
	logger      *slog.Logger
	recentLimit int

	state results.State
	urls  []string

	seq      uint64
	inFlight uint64 // seq of the outstanding request, 0 when idle

	loaded     bool // a page has been applied since the last fresh search
	loadedPage int
	hasMore    bool
}

// New creates an orchestrator. The URL history starts with the persisted
// term (or InitialTerm) at page 0; call Start to fetch it.
func New(opts Options) (*Orchestrator, error) {
	if opts.Fetcher == nil {
		return nil, errors.New("fetch: nil fetcher")
	}
	if opts.Term == nil {
		return nil, errors.New("fetch: nil term")
	}
	if opts.Builder.Base == "" {
		opts.Builder = query.New("")
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}
	if opts.RecentLimit <= 0 {
		opts.RecentLimit = DefaultRecentLimit
	}

	o := &Orchestrator{
		fetcher:     opts.Fetcher,
		term:        opts.Term,
		builder:     opts.Builder,
		bus:         opts.Bus,
		logger:      opts.Logger,
		recentLimit: opts.RecentLimit,
		state:       results.Initial(),
		hasMore:     true,
	}
	if opts.InitialTerm != "" {
		o.SetTerm(opts.InitialTerm)
	}
	o.urls = []string{o.builder.BuildURL(o.term.Value(), 0)}
	return o, nil
}

// State returns the current results state
func (o *Orchestrator) State() results.State {
	return o.state
}

// Term returns the term currently in the input
func (o *Orchestrator) Term() string {
	return o.term.Value()
}

// CurrentTerm returns the term of the most recent request
func (o *Orchestrator) CurrentTerm() string {
	return query.ExtractTerm(o.urls[len(o.urls)-1])
}

// URLs returns a copy of the request history
func (o *Orchestrator) URLs() []string {
	return append([]string(nil), o.urls...)
}

// HasMore reports whether another page may be loaded for the current term
func (o *Orchestrator) HasMore() bool {
	return o.hasMore
}

// RecentSearches returns the recent distinct terms, oldest first, excluding
// the current one
func (o *Orchestrator) RecentSearches() []string {
	return RecentSearches(o.urls, o.recentLimit)
}

// SetTerm changes the input term and persists it if it changed
func (o *Orchestrator) SetTerm(term string) {
	changed, err := o.term.Set(term)
	if err != nil {
		o.logger.Error("persisting search term failed", "term", term, "error", err)
		o.publish(domain.ErrorEvent{Message: "could not save search term", Err: err})
		return
	}
	if changed {
		o.publish(domain.TermPersistedEvent{Term: term})
	}
}

// Start fetches the first page of the current term without adding to the
// history. It is the fetch done once at startup and the retry of a search.
func (o *Orchestrator) Start() *Request {
	if o.state.IsLoading {
		o.drop("start while loading")
		return nil
	}
	term := o.CurrentTerm()
	o.resetPaging()
	o.state = results.Reduce(o.state, results.ChangePage{Page: 0})
	return o.issue(o.builder.BuildURL(term, 0), term, 0)
}

// Submit starts a fresh search for term. It returns nil when the search is
// refused: the term is empty or a request is already in flight.
func (o *Orchestrator) Submit(term string) *Request {
	if term == "" {
		return nil
	}
	if o.state.IsLoading {
		o.drop("search while loading")
		return nil
	}

	url := o.builder.BuildURL(term, 0)
	o.urls = append(o.urls, url)
	o.resetPaging()
	o.state = results.Reduce(o.state, results.ChangePage{Page: 0})

	o.logger.Info("search submitted", "term", term)
	o.publish(domain.SearchSubmittedEvent{Term: term, URL: url})
	return o.issue(url, term, 0)
}

// SelectRecent makes term the input term and searches for it
func (o *Orchestrator) SelectRecent(term string) *Request {
	if o.state.IsLoading {
		o.drop("recent search while loading")
		return nil
	}
	o.SetTerm(term)
	return o.Submit(term)
}

// SentinelVisible handles the end of the list coming into view by requesting
// the next page of the current term. It returns nil when no request is made.
func (o *Orchestrator) SentinelVisible() *Request {
	if o.state.IsLoading {
		o.drop("page while loading")
		return nil
	}
	if !o.loaded || !o.hasMore {
		return nil
	}

	// Count from the last page that actually arrived so a failed
	// continuation is retried rather than skipped
	next := o.loadedPage + 1
	o.state = results.Reduce(o.state, results.ChangePage{Page: next})

	term := o.CurrentTerm()
	url := o.builder.BuildURL(term, o.state.Page)
	o.urls = append(o.urls, url)
	return o.issue(url, term, o.state.Page)
}

// Execute performs the network call for req. It does not touch orchestrator
// state and may be called from any goroutine.
func (o *Orchestrator) Execute(ctx context.Context, req Request) Response {
	page, err := o.fetcher.Search(ctx, req.URL)
	return Response{Request: req, Page: page, Err: err}
}

// Complete applies the outcome of a request. Responses for anything but the
// in-flight request are discarded; it reports whether resp was applied.
func (o *Orchestrator) Complete(resp Response) bool {
	req := resp.Request
	if req.Seq == 0 || req.Seq != o.inFlight {
		o.logger.Warn("discarding stale response", "request_id", req.ID, "url", req.URL)
		o.publish(domain.StaleResponseEvent{RequestID: req.ID, URL: req.URL})
		return false
	}
	o.inFlight = 0

	if resp.Err != nil {
		o.state = results.Reduce(o.state, results.FetchFailure{})
		o.logger.Warn("fetch failed", "request_id", req.ID, "url", req.URL, "error", resp.Err)
		o.publish(domain.FetchFailedEvent{RequestID: req.ID, URL: req.URL, Err: resp.Err})
		return true
	}

	page := resp.Page
	o.state = results.Reduce(o.state, results.FetchSuccess{Items: page.Hits, Page: page.Page})
	o.loaded = true
	o.loadedPage = page.Page
	o.hasMore = len(page.Hits) > 0 && page.HasMore()

	o.logger.Info("fetch succeeded", "request_id", req.ID, "page", page.Page, "hits", len(page.Hits), "total", len(o.state.Items))
	o.publish(domain.FetchSucceededEvent{RequestID: req.ID, URL: req.URL, Page: page.Page, Hits: len(page.Hits)})
	return true
}

// RemoveStory dismisses the story with the given id
func (o *Orchestrator) RemoveStory(id string) {
	before := len(o.state.Items)
	o.state = results.Reduce(o.state, results.RemoveItem{ID: id})
	if len(o.state.Items) != before {
		o.publish(domain.StoryRemovedEvent{ID: id})
	}
}

// issue moves the state to loading before handing the request out, so a
// second event arriving before the response is refused
func (o *Orchestrator) issue(url, term string, page int) *Request {
	o.state = results.Reduce(o.state, results.FetchInit{})
	o.seq++
	o.inFlight = o.seq

	req := &Request{
		ID:   uuid.NewString(),
		Seq:  o.seq,
		URL:  url,
		Term: term,
		Page: page,
	}
	o.logger.Debug("fetch started", "request_id", req.ID, "url", url)
	o.publish(domain.FetchStartedEvent{RequestID: req.ID, URL: url, Page: page})
	return req
}

func (o *Orchestrator) resetPaging() {
	o.loaded = false
	o.loadedPage = 0
	o.hasMore = true
}

func (o *Orchestrator) drop(reason string) {
	o.logger.Debug("fetch dropped", "reason", reason)
	o.publish(domain.FetchDroppedEvent{Reason: reason})
}

func (o *Orchestrator) publish(e domain.DomainEvent) {
	if o.bus != nil {
		o.bus.Publish(e)
	}
}
