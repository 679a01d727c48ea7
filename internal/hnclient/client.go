// Package hnclient talks to the Hacker News search API.
package hnclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"hackerstories/internal/domain"
	"hackerstories/internal/query"
)

// ErrFetchFailed is returned for every failed search, whatever the cause
var ErrFetchFailed = errors.New("fetch failed")

// maxBodyBytes caps how much of a response body is read
const maxBodyBytes = 8 << 20

// Client performs search requests
type Client struct {
	httpClient *http.Client
	userAgent  string
	logger     *slog.Logger
}

// Option configures a Client
type Option func(*Client)

// WithUserAgent sets the User-Agent header sent with each request
func WithUserAgent(ua string) Option {
	return func(c *Client) { c.userAgent = ua }
}

// WithLogger sets the logger used for request diagnostics
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// New creates a client. A nil httpClient gets a client without timeout.
func New(httpClient *http.Client, opts ...Option) *Client {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	c := &Client{
		httpClient: httpClient,
		userAgent:  "hackerstories",
		logger:     slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type searchResponse struct {
	Hits    []hit `json:"hits"`
	Page    *int  `json:"page"`
	NbPages int   `json:"nbPages"`
}

type hit struct {
	ObjectID    string `json:"objectID"`
	URL         string `json:"url"`
	Title       string `json:"title"`
	Author      string `json:"author"`
	NumComments int    `json:"num_comments"`
	Points      int    `json:"points"`
	StoryText   string `json:"story_text"`
	CreatedAt   string `json:"created_at"`
}

// Search issues a GET for a URL produced by query.Builder and decodes the page.
// Any failure is reported as ErrFetchFailed.
func (c *Client) Search(ctx context.Context, rawURL string) (domain.SearchPage, error) {
	start := time.Now()
	wire := query.WireURL(rawURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, wire, nil)
	if err != nil {
		return domain.SearchPage{}, fmt.Errorf("%w: creating request: %v", ErrFetchFailed, err)
	}
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.SearchPage{}, fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
		return domain.SearchPage{}, fmt.Errorf("%w: HTTP %d", ErrFetchFailed, resp.StatusCode)
	}

	var sr searchResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes)).Decode(&sr); err != nil {
		return domain.SearchPage{}, fmt.Errorf("%w: decoding response: %v", ErrFetchFailed, err)
	}

	page := domain.SearchPage{
		Hits:    make([]domain.Story, 0, len(sr.Hits)),
		NbPages: sr.NbPages,
	}
	// The API echoes the page; fall back to the one we asked for
	if sr.Page != nil {
		page.Page = *sr.Page
	} else {
		page.Page = query.ExtractPage(rawURL)
	}
	for _, h := range sr.Hits {
		page.Hits = append(page.Hits, h.toStory())
	}

	c.logger.Debug("search completed", "url", wire, "hits", len(page.Hits), "page", page.Page, "elapsed", time.Since(start))
	return page, nil
}

func (h hit) toStory() domain.Story {
	s := domain.Story{
		ID:           h.ObjectID,
		URL:          h.URL,
		Title:        h.Title,
		Author:       h.Author,
		CommentCount: h.NumComments,
		Points:       h.Points,
	}
	if h.StoryText != "" {
		s.Text = PlainText(h.StoryText)
	}
	if h.CreatedAt != "" {
		if t, err := time.Parse(time.RFC3339, h.CreatedAt); err == nil {
			s.CreatedAt = t
		}
	}
	return s
}
