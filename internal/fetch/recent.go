package fetch

import "hackerstories/internal/query"

// RecentSearches derives the recent-search list from a request history.
// Only the last occurrence of each term is kept, so searching a term again
// moves it to the end. The newest term is the current one and is left out;
// at most limit terms before it are returned, oldest first.
func RecentSearches(urls []string, limit int) []string {
	if len(urls) == 0 || limit <= 0 {
		return nil
	}

	terms := make([]string, len(urls))
	lastIndex := make(map[string]int, len(urls))
	for i, u := range urls {
		terms[i] = query.ExtractTerm(u)
		lastIndex[terms[i]] = i
	}

	distinct := make([]string, 0, len(lastIndex))
	for i, term := range terms {
		if lastIndex[term] == i {
			distinct = append(distinct, term)
		}
	}

	distinct = distinct[:len(distinct)-1]
	if len(distinct) > limit {
		distinct = distinct[len(distinct)-limit:]
	}
	return distinct
}
