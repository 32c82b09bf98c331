package search

import (
	"strings"

	"github.com/kaitj/nmind-proceedings/contract"
)

// TagQuery is a parsed comma-delimited tag query.
type TagQuery struct {
	// Terms are the trimmed, non-empty tags in query order.
	Terms []string
	// Exact is set when the raw query ends with a comma, meaning the last
	// term is finished and must match a tag exactly.
	Exact bool
}

// ParseTagQuery splits raw on commas, trims each term and drops empty ones.
func ParseTagQuery(raw string) TagQuery {
	tq := TagQuery{Exact: strings.HasSuffix(raw, ",")}
	for _, part := range strings.Split(raw, ",") {
		if term := strings.TrimSpace(part); term != "" {
			tq.Terms = append(tq.Terms, term)
		}
	}
	return tq
}

// Apply filters libs with the strategy selected by the query.
func (tq TagQuery) Apply(libs []contract.Library) []contract.Library {
	if tq.Exact {
		return FilterTagsExact(libs, tq.Terms)
	}
	return FilterTagsInclusiveFinal(libs, tq.Terms)
}

// FilterTagsExact keeps libraries that have, for every query, a tag equal to
// it ignoring case.
func FilterTagsExact(libs []contract.Library, queries []string) []contract.Library {
	for _, q := range queries {
		libs = filterTags(libs, q, strings.EqualFold)
	}
	return libs
}

// FilterTagsInclusiveFinal matches all but the last query exactly and the last
// query as a case-insensitive substring of some tag, so a tag still being typed
// already narrows the results. With no queries libs is returned as is.
func FilterTagsInclusiveFinal(libs []contract.Library, queries []string) []contract.Library {
	if len(queries) == 0 {
		return libs
	}
	last := len(queries) - 1
	libs = FilterTagsExact(libs, queries[:last])
	return filterTags(libs, queries[last], containsFold)
}

func filterTags(libs []contract.Library, query string, match func(tag, query string) bool) []contract.Library {
	var result []contract.Library
	for _, lib := range libs {
		if hasTag(lib.Tags, query, match) {
			result = append(result, lib)
		}
	}
	return result
}

func hasTag(tags []string, query string, match func(tag, query string) bool) bool {
	for _, t := range tags {
		if match(t, query) {
			return true
		}
	}
	return false
}

func containsFold(tag, query string) bool {
	return strings.Contains(strings.ToLower(tag), strings.ToLower(query))
}
