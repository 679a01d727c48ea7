//go:build e2e && unix

package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
)

// fakeStory is one hit served by the fake search API
type fakeStory struct {
	ID       string `json:"objectID"`
	Title    string `json:"title"`
	URL      string `json:"url,omitempty"`
	Author   string `json:"author"`
	Comments int    `json:"num_comments"`
	Points   int    `json:"points"`
}

type fakePage struct {
	Hits    []fakeStory `json:"hits"`
	Page    int         `json:"page"`
	NbPages int         `json:"nbPages"`
}

// fakeAPI serves search results per term and page
type fakeAPI struct {
	srv *httptest.Server

	mu       sync.Mutex
	results  map[string][][]fakeStory
	requests []string
	failing  bool
}

func newFakeAPI() *fakeAPI {
	api := &fakeAPI{results: make(map[string][][]fakeStory)}
	mux := http.NewServeMux()
	mux.HandleFunc("/search", api.handleSearch)
	api.srv = httptest.NewServer(mux)
	return api
}

func (a *fakeAPI) URL() string { return a.srv.URL }

func (a *fakeAPI) Close() { a.srv.Close() }

// SetFailing makes every request answer 500
func (a *fakeAPI) SetFailing(failing bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.failing = failing
}

// Requests returns "term#page" for every request seen
func (a *fakeAPI) Requests() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]string(nil), a.requests...)
}

func (a *fakeAPI) handleSearch(w http.ResponseWriter, r *http.Request) {
	term := r.URL.Query().Get("query")
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))

	a.mu.Lock()
	a.requests = append(a.requests, fmt.Sprintf("%s#%d", term, page))
	failing := a.failing
	pages := a.results[term]
	a.mu.Unlock()

	if failing {
		http.Error(w, "unavailable", http.StatusInternalServerError)
		return
	}

	resp := fakePage{Hits: []fakeStory{}, Page: page, NbPages: len(pages)}
	if page < len(pages) {
		resp.Hits = pages[page]
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}

// ServeStories registers the pages returned for term, starting a fake API
// on first use
func (tf *TUITestFramework) ServeStories(term string, pages ...[]fakeStory) *fakeAPI {
	if tf.api == nil {
		tf.api = newFakeAPI()
	}
	tf.api.mu.Lock()
	tf.api.results[term] = pages
	tf.api.mu.Unlock()
	return tf.api
}

// CreateTestWorkspace creates a temporary directory used as HOME and working
// directory of the app
func (tf *TUITestFramework) CreateTestWorkspace() (string, error) {
	tmpDir := tf.t.TempDir()
	tf.workspace = tmpDir
	return tmpDir, nil
}

// numberedStories builds n stories titled "<prefix> story <i>"
func numberedStories(prefix string, from, n int) []fakeStory {
	out := make([]fakeStory, 0, n)
	for i := from; i < from+n; i++ {
		out = append(out, fakeStory{
			ID:       fmt.Sprintf("%s-%d", prefix, i),
			Title:    fmt.Sprintf("%s story %d", prefix, i),
			URL:      fmt.Sprintf("https://example.com/%s/%d", prefix, i),
			Author:   fmt.Sprintf("author%d", i),
			Comments: i,
			Points:   100 - i,
		})
	}
	return out
}
