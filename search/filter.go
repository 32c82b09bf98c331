// Package search filters the library catalog by completed section tiers, tags and name.
package search

import (
	"errors"
	"fmt"
	"strings"

	"github.com/kaitj/nmind-proceedings/checklist"
	"github.com/kaitj/nmind-proceedings/contract"
)

var (
	// ErrNoEvaluations is returned when a section-tier filter meets a library with no evaluations.
	ErrNoEvaluations = errors.New("library has no evaluations")

	// ErrChecklistPathNotFound is returned when a section-tier token does not name
	// a section and tier present on a library's most recent checklist.
	ErrChecklistPathNotFound = errors.New("checklist has no such section tier")
)

// Query holds the three query parameters of a directory search.
type Query struct {
	Text         string   `json:"text"`
	Tags         string   `json:"tags"`
	SectionTiers []string `json:"section_tiers"`
}

// IsZero reports whether the query filters nothing.
func (q Query) IsZero() bool {
	return q.Text == "" && q.Tags == "" && len(q.SectionTiers) == 0
}

// FilterLibraryData lists the catalog and applies, in order, the section-tier
// completion filter, the tag filter and the name filter. An error listing the
// catalog is returned unchanged. A section-tier error aborts the whole call.
func FilterLibraryData(catalog contract.Catalog, q Query) ([]contract.Library, error) {
	libs, err := catalog.List()
	if err != nil {
		return nil, err
	}
	return Filter(libs, q)
}

// Filter applies q to libs without modifying libs.
func Filter(libs []contract.Library, q Query) ([]contract.Library, error) {
	result := libs

	if len(q.SectionTiers) > 0 {
		var err error
		result, err = FilterCompletedSectionTiers(result, q.SectionTiers)
		if err != nil {
			return nil, err
		}
	}

	if q.Tags != "" {
		tq := ParseTagQuery(q.Tags)
		result = tq.Apply(result)
	}

	if q.Text != "" {
		result = FilterByName(result, q.Text)
	}

	return result, nil
}

// FilterCompletedSectionTiers keeps libraries whose most recent evaluation has
// every item answered true for each "section-tier" token. Tokens narrow the
// set in turn. A library without evaluations, or without the named section
// tier, fails the whole call.
func FilterCompletedSectionTiers(libs []contract.Library, tokens []string) ([]contract.Library, error) {
	result := libs
	for _, token := range tokens {
		section, tier, hasTier := splitSectionTier(token)

		var kept []contract.Library
		for i := range result {
			lib := &result[i]
			eval := checklist.MostRecentEvaluation(lib.Evaluations)
			if eval == nil {
				return nil, fmt.Errorf("library %q: %w", lib.Name, ErrNoEvaluations)
			}
			st, ok := eval.Checklist.SectionTier(section, tier)
			if !hasTier || !ok {
				return nil, fmt.Errorf("library %q, %q: %w", lib.Name, token, ErrChecklistPathNotFound)
			}
			if st.AllTrue() {
				kept = append(kept, *lib)
			}
		}
		result = kept
	}
	return result, nil
}

// splitSectionTier splits "section-tier" on hyphens and returns the first two
// parts. Anything after a second hyphen is ignored.
func splitSectionTier(token string) (section, tier string, ok bool) {
	parts := strings.Split(token, "-")
	if len(parts) < 2 {
		return parts[0], "", false
	}
	return parts[0], parts[1], true
}

// FilterByName keeps libraries whose name contains text, case-insensitively.
func FilterByName(libs []contract.Library, text string) []contract.Library {
	needle := strings.ToLower(text)
	var result []contract.Library
	for _, lib := range libs {
		if strings.Contains(strings.ToLower(lib.Name), needle) {
			result = append(result, lib)
		}
	}
	return result
}
