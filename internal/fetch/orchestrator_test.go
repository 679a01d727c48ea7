package fetch

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hackerstories/internal/domain"
	"hackerstories/internal/eventbus"
	"hackerstories/internal/query"
	"hackerstories/internal/store"
)

// fakeFetcher answers from a table keyed by URL and records every call
type fakeFetcher struct {
	pages  map[string]domain.SearchPage
	errs   map[string]error
	calls  []string
	during func() // runs inside Search, before answering
}

func newFakeFetcher() *fakeFetcher {
	return &fakeFetcher{
		pages: make(map[string]domain.SearchPage),
		errs:  make(map[string]error),
	}
}

func (f *fakeFetcher) Search(_ context.Context, rawURL string) (domain.SearchPage, error) {
	f.calls = append(f.calls, rawURL)
	if f.during != nil {
		f.during()
	}
	if err, ok := f.errs[rawURL]; ok {
		return domain.SearchPage{}, err
	}
	return f.pages[rawURL], nil
}

var builder = query.New("")

func stories(ids ...string) []domain.Story {
	out := make([]domain.Story, 0, len(ids))
	for _, id := range ids {
		out = append(out, domain.Story{ID: id, Title: "Story " + id, CommentCount: 1})
	}
	return out
}

func storyIDs(items []domain.Story) []string {
	out := make([]string, 0, len(items))
	for _, s := range items {
		out = append(out, s.ID)
	}
	return out
}

func newOrchestrator(t *testing.T, f Fetcher, kv store.Store, bus eventbus.EventBus) *Orchestrator {
	t.Helper()
	if kv == nil {
		kv = store.NewMemoryStore()
	}
	o, err := New(Options{
		Fetcher: f,
		Term:    store.NewSemiPersistent(kv, "search", "React", nil),
		Builder: builder,
		Bus:     bus,
	})
	require.NoError(t, err)
	return o
}

// run executes and completes req synchronously
func run(t *testing.T, o *Orchestrator, req *Request) {
	t.Helper()
	require.NotNil(t, req)
	require.True(t, o.Complete(o.Execute(context.Background(), *req)))
}

func TestNewRequiresCollaborators(t *testing.T) {
	_, err := New(Options{Term: store.NewSemiPersistent(store.NewMemoryStore(), "k", "v", nil)})
	require.Error(t, err)

	_, err = New(Options{Fetcher: newFakeFetcher()})
	require.Error(t, err)
}

func TestInitialURLUsesPersistedTerm(t *testing.T) {
	kv := store.NewMemoryStore()
	require.NoError(t, kv.Set("search", "Elm"))

	o := newOrchestrator(t, newFakeFetcher(), kv, nil)

	assert.Equal(t, []string{builder.BuildURL("Elm", 0)}, o.URLs())
	assert.Equal(t, "Elm", o.Term())
	assert.Equal(t, "Elm", o.CurrentTerm())
}

func TestInitialURLFallsBackToDefaultTerm(t *testing.T) {
	o := newOrchestrator(t, newFakeFetcher(), nil, nil)
	assert.Equal(t, []string{builder.BuildURL("React", 0)}, o.URLs())
}

func TestStartFetchesInitialTerm(t *testing.T) {
	f := newFakeFetcher()
	f.pages[builder.BuildURL("React", 0)] = domain.SearchPage{Hits: stories("r1"), Page: 0, NbPages: 1}
	o := newOrchestrator(t, f, nil, nil)

	run(t, o, o.Start())

	assert.Equal(t, []string{"r1"}, storyIDs(o.State().Items))
	assert.Equal(t, []string{builder.BuildURL("React", 0)}, f.calls)
}

func TestInitialTermSeedsHistory(t *testing.T) {
	kv := store.NewMemoryStore()
	require.NoError(t, kv.Set("search", "React"))
	f := newFakeFetcher()
	f.pages[builder.BuildURL("Go", 0)] = domain.SearchPage{Hits: stories("g1"), Page: 0, NbPages: 1}

	o, err := New(Options{
		Fetcher:     f,
		Term:        store.NewSemiPersistent(kv, "search", "React", nil),
		Builder:     builder,
		InitialTerm: "Go",
	})
	require.NoError(t, err)
	run(t, o, o.Start())

	assert.Equal(t, []string{builder.BuildURL("Go", 0)}, o.URLs())
	assert.Equal(t, []string{builder.BuildURL("Go", 0)}, f.calls)
	assert.Empty(t, o.RecentSearches())

	v, _, err := kv.Get("search")
	require.NoError(t, err)
	assert.Equal(t, "Go", v)
}

func TestSubmitEndToEndSuccess(t *testing.T) {
	f := newFakeFetcher()
	rustURL := builder.BuildURL("Rust", 0)
	f.pages[rustURL] = domain.SearchPage{Hits: stories("a", "b"), Page: 0}
	o := newOrchestrator(t, f, nil, nil)

	// FetchInit must be visible before the network call goes out
	f.during = func() {
		assert.True(t, o.State().IsLoading)
	}

	req := o.Submit("Rust")
	require.NotNil(t, req)
	assert.True(t, o.State().IsLoading)
	assert.Equal(t, rustURL, req.URL)
	assert.NotEmpty(t, req.ID)

	run(t, o, req)

	s := o.State()
	assert.False(t, s.IsLoading)
	assert.False(t, s.IsError)
	assert.Len(t, s.Items, 2)
	assert.Equal(t, 0, s.Page)
}

func TestSubmitEndToEndFailure(t *testing.T) {
	f := newFakeFetcher()
	f.pages[builder.BuildURL("Go", 0)] = domain.SearchPage{Hits: stories("g1", "g2"), Page: 0}
	f.errs[builder.BuildURL("Rust", 0)] = errors.New("connection reset")
	o := newOrchestrator(t, f, nil, nil)

	run(t, o, o.Submit("Go"))
	run(t, o, o.Submit("Rust"))

	s := o.State()
	assert.False(t, s.IsLoading)
	assert.True(t, s.IsError)
	assert.Equal(t, []string{"g1", "g2"}, storyIDs(s.Items))
}

func TestSubmitWhileLoadingIsDropped(t *testing.T) {
	f := newFakeFetcher()
	o := newOrchestrator(t, f, nil, nil)

	first := o.Submit("Rust")
	require.NotNil(t, first)

	assert.Nil(t, o.Submit("Go"))
	assert.Nil(t, o.SelectRecent("Go"))
	assert.Nil(t, o.SentinelVisible())
	assert.Nil(t, o.Start())

	run(t, o, first)
	assert.Len(t, f.calls, 1, "only one request may go out")
	assert.Equal(t, "Rust", o.CurrentTerm())
}

func TestSubmitEmptyTermIsIgnored(t *testing.T) {
	o := newOrchestrator(t, newFakeFetcher(), nil, nil)
	assert.Nil(t, o.Submit(""))
	assert.False(t, o.State().IsLoading)
}

func TestSentinelLoadsNextPage(t *testing.T) {
	f := newFakeFetcher()
	f.pages[builder.BuildURL("Rust", 0)] = domain.SearchPage{Hits: stories("a", "b"), Page: 0, NbPages: 3}
	f.pages[builder.BuildURL("Rust", 1)] = domain.SearchPage{Hits: stories("c"), Page: 1, NbPages: 3}
	o := newOrchestrator(t, f, nil, nil)

	run(t, o, o.Submit("Rust"))

	req := o.SentinelVisible()
	require.NotNil(t, req)
	assert.Equal(t, 1, o.State().Page)
	assert.Equal(t, builder.BuildURL("Rust", 1), req.URL)
	assert.True(t, o.State().IsLoading)

	assert.Nil(t, o.SentinelVisible(), "sentinel is ignored while loading")

	run(t, o, req)
	assert.Equal(t, []string{"a", "b", "c"}, storyIDs(o.State().Items))
	assert.Equal(t, 1, o.State().Page)
}

func TestSentinelUsesSubmittedTermNotInput(t *testing.T) {
	f := newFakeFetcher()
	f.pages[builder.BuildURL("Rust", 0)] = domain.SearchPage{Hits: stories("a"), Page: 0}
	o := newOrchestrator(t, f, nil, nil)

	run(t, o, o.Submit("Rust"))
	o.SetTerm("Rus") // typing, not submitted

	req := o.SentinelVisible()
	require.NotNil(t, req)
	assert.Equal(t, "Rust", req.Term)
}

func TestSentinelBeforeFirstPageIsIgnored(t *testing.T) {
	o := newOrchestrator(t, newFakeFetcher(), nil, nil)
	assert.Nil(t, o.SentinelVisible())
}

func TestSentinelStopsAtLastPage(t *testing.T) {
	f := newFakeFetcher()
	f.pages[builder.BuildURL("Rust", 0)] = domain.SearchPage{Hits: stories("a"), Page: 0, NbPages: 1}
	o := newOrchestrator(t, f, nil, nil)

	run(t, o, o.Submit("Rust"))

	assert.False(t, o.HasMore())
	assert.Nil(t, o.SentinelVisible())
}

func TestSentinelStopsOnEmptyPage(t *testing.T) {
	f := newFakeFetcher()
	f.pages[builder.BuildURL("Rust", 0)] = domain.SearchPage{Hits: stories("a"), Page: 0}
	f.pages[builder.BuildURL("Rust", 1)] = domain.SearchPage{Page: 1}
	o := newOrchestrator(t, f, nil, nil)

	run(t, o, o.Submit("Rust"))
	run(t, o, o.SentinelVisible())

	assert.Nil(t, o.SentinelVisible())
	assert.Equal(t, []string{"a"}, storyIDs(o.State().Items))
}

func TestSentinelRetriesFailedPage(t *testing.T) {
	f := newFakeFetcher()
	f.pages[builder.BuildURL("Rust", 0)] = domain.SearchPage{Hits: stories("a"), Page: 0}
	f.errs[builder.BuildURL("Rust", 1)] = errors.New("timeout")
	o := newOrchestrator(t, f, nil, nil)

	run(t, o, o.Submit("Rust"))
	run(t, o, o.SentinelVisible())
	require.True(t, o.State().IsError)

	delete(f.errs, builder.BuildURL("Rust", 1))
	f.pages[builder.BuildURL("Rust", 1)] = domain.SearchPage{Hits: stories("b"), Page: 1}

	req := o.SentinelVisible()
	require.NotNil(t, req)
	assert.Equal(t, 1, req.Page)
	run(t, o, req)
	assert.Equal(t, []string{"a", "b"}, storyIDs(o.State().Items))
	assert.False(t, o.State().IsError)
}

func TestFreshSearchResetsPaging(t *testing.T) {
	f := newFakeFetcher()
	f.pages[builder.BuildURL("Rust", 0)] = domain.SearchPage{Hits: stories("a"), Page: 0}
	f.pages[builder.BuildURL("Rust", 1)] = domain.SearchPage{Hits: stories("b"), Page: 1}
	f.pages[builder.BuildURL("Go", 0)] = domain.SearchPage{Hits: stories("g"), Page: 0}
	o := newOrchestrator(t, f, nil, nil)

	run(t, o, o.Submit("Rust"))
	run(t, o, o.SentinelVisible())
	require.Equal(t, 1, o.State().Page)

	req := o.Submit("Go")
	assert.Equal(t, 0, o.State().Page)
	run(t, o, req)

	assert.Equal(t, []string{"g"}, storyIDs(o.State().Items))
}

func TestStaleResponseIsDiscarded(t *testing.T) {
	f := newFakeFetcher()
	f.pages[builder.BuildURL("Rust", 0)] = domain.SearchPage{Hits: stories("a"), Page: 0}
	o := newOrchestrator(t, f, nil, nil)

	req := o.Submit("Rust")
	resp := o.Execute(context.Background(), *req)
	require.True(t, o.Complete(resp))

	// Delivering the same response again must not re-apply it
	assert.False(t, o.Complete(resp))
	assert.False(t, o.Complete(Response{}))
	assert.Equal(t, []string{"a"}, storyIDs(o.State().Items))
}

func TestSetTermPersistsOnlyChanges(t *testing.T) {
	kv := store.NewMemoryStore()
	o := newOrchestrator(t, newFakeFetcher(), kv, nil)

	_, ok, _ := kv.Get("search")
	assert.False(t, ok, "nothing is written at startup")

	o.SetTerm("Rust")
	v, ok, _ := kv.Get("search")
	assert.True(t, ok)
	assert.Equal(t, "Rust", v)
	assert.Equal(t, "Rust", o.Term())
}

func TestSelectRecentSetsTermAndSearches(t *testing.T) {
	kv := store.NewMemoryStore()
	f := newFakeFetcher()
	o := newOrchestrator(t, f, kv, nil)

	req := o.SelectRecent("Go")
	require.NotNil(t, req)
	assert.Equal(t, "Go", o.Term())
	assert.Equal(t, builder.BuildURL("Go", 0), req.URL)
	v, _, _ := kv.Get("search")
	assert.Equal(t, "Go", v)
}

func TestRemoveStory(t *testing.T) {
	f := newFakeFetcher()
	f.pages[builder.BuildURL("Rust", 0)] = domain.SearchPage{Hits: stories("a", "b", "c"), Page: 0}
	o := newOrchestrator(t, f, nil, nil)
	run(t, o, o.Submit("Rust"))

	o.RemoveStory("b")
	assert.Equal(t, []string{"a", "c"}, storyIDs(o.State().Items))

	o.RemoveStory("zzz")
	assert.Equal(t, []string{"a", "c"}, storyIDs(o.State().Items))
}

func TestRecentSearchesFromOrchestrator(t *testing.T) {
	f := newFakeFetcher()
	o := newOrchestrator(t, f, nil, nil)

	for _, term := range []string{"A", "B", "A", "C"} {
		run(t, o, o.Submit(term))
	}

	// History is React, A, B, A, C
	assert.Equal(t, []string{"React", "B", "A"}, o.RecentSearches())
}

func TestEventsArePublished(t *testing.T) {
	bus := eventbus.New(nil)
	defer bus.Close()

	started := make(chan domain.FetchStartedEvent, 1)
	failed := make(chan domain.FetchFailedEvent, 1)
	bus.Subscribe(eventbus.EventFetchStarted, func(e eventbus.DomainEvent) { started <- e.(domain.FetchStartedEvent) })
	bus.Subscribe(eventbus.EventFetchFailed, func(e eventbus.DomainEvent) { failed <- e.(domain.FetchFailedEvent) })

	f := newFakeFetcher()
	f.errs[builder.BuildURL("Rust", 0)] = errors.New("boom")
	o := newOrchestrator(t, f, nil, bus)

	req := o.Submit("Rust")
	run(t, o, req)

	select {
	case e := <-started:
		assert.Equal(t, req.ID, e.RequestID)
	case <-time.After(2 * time.Second):
		t.Fatal("no FetchStarted event")
	}
	select {
	case e := <-failed:
		assert.Equal(t, req.URL, e.URL)
		assert.EqualError(t, e.Err, "boom")
	case <-time.After(2 * time.Second):
		t.Fatal("no FetchFailed event")
	}
}

func TestStartRetriesFirstPageOfCurrentTerm(t *testing.T) {
	f := newFakeFetcher()
	f.pages[builder.BuildURL("Rust", 0)] = domain.SearchPage{Hits: stories("a"), Page: 0}
	f.pages[builder.BuildURL("Rust", 1)] = domain.SearchPage{Hits: stories("b"), Page: 1}
	o := newOrchestrator(t, f, nil, nil)

	run(t, o, o.Submit("Rust"))
	run(t, o, o.SentinelVisible())
	history := len(o.URLs())

	req := o.Start()
	require.NotNil(t, req)
	assert.Equal(t, builder.BuildURL("Rust", 0), req.URL)
	assert.Equal(t, 0, o.State().Page)
	run(t, o, req)

	assert.Equal(t, []string{"a"}, storyIDs(o.State().Items))
	assert.Len(t, o.URLs(), history, "a retry does not grow the history")
}
