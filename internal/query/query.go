// Package query builds search request URLs and reads them back.
//
// URLs produced here double as search-history entries, so they are built by
// plain concatenation without percent-encoding: ExtractTerm must return the
// exact term that went in. WireURL produces the encoded form that is actually
// sent over the network.
package query

import (
	"net/url"
	"strconv"
	"strings"
)

// DefaultBase is the public Hacker News search endpoint
const DefaultBase = "https://hn.algolia.com/api/v1"

const (
	searchPath = "/search"
	termParam  = "query="
	pageParam  = "&page="
)

// Builder maps a term and page to a request URL under a fixed base
type Builder struct {
	Base string
}

// New creates a builder for the given base. An empty base means DefaultBase.
func New(base string) Builder {
	base = strings.TrimRight(strings.TrimSpace(base), "/")
	if base == "" {
		base = DefaultBase
	}
	return Builder{Base: base}
}

// BuildURL returns {base}/search?query={term}&page={page}
func (b Builder) BuildURL(term string, page int) string {
	base := b.Base
	if base == "" {
		base = DefaultBase
	}
	return base + searchPath + "?" + termParam + term + pageParam + strconv.Itoa(page)
}

// ExtractTerm returns the search term of a URL produced by BuildURL.
// URLs without a query string yield "".
func ExtractTerm(rawURL string) string {
	params, ok := queryString(rawURL)
	if !ok || !strings.HasPrefix(params, termParam) {
		return ""
	}
	params = params[len(termParam):]
	// The page parameter is always last and the term may itself contain
	// "&page=", so cut at the last occurrence.
	if i := strings.LastIndex(params, pageParam); i >= 0 {
		params = params[:i]
	}
	return params
}

// ExtractPage returns the page number of a URL produced by BuildURL, or 0.
func ExtractPage(rawURL string) int {
	params, ok := queryString(rawURL)
	if !ok {
		return 0
	}
	i := strings.LastIndex(params, pageParam)
	if i < 0 {
		return 0
	}
	page, err := strconv.Atoi(params[i+len(pageParam):])
	if err != nil || page < 0 {
		return 0
	}
	return page
}

// WireURL returns the percent-encoded form of a URL produced by BuildURL
func WireURL(rawURL string) string {
	q := strings.Index(rawURL, "?")
	if q < 0 {
		return rawURL
	}
	return rawURL[:q] + "?query=" + url.QueryEscape(ExtractTerm(rawURL)) + "&page=" + strconv.Itoa(ExtractPage(rawURL))
}

func queryString(rawURL string) (string, bool) {
	q := strings.Index(rawURL, "?")
	if q < 0 {
		return "", false
	}
	return rawURL[q+1:], true
}
