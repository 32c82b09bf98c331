package search

import (
	"github.com/kaitj/nmind-proceedings/checklist"
	"github.com/kaitj/nmind-proceedings/contract"
)

// Listing is a library as shown in search results.
type Listing struct {
	Name           string                `json:"name"`
	Description    string                `json:"description"`
	Tags           []string              `json:"tags"`
	URLs           []contract.LibraryURL `json:"urls"`
	LastEvaluated  string                `json:"last_evaluated,omitempty"`
	CompletedTiers []string              `json:"completed_tiers"`
}

// NewListings converts libraries into search result listings, badged with the
// section tiers their most recent evaluation completes.
func NewListings(libs []contract.Library) []Listing {
	out := make([]Listing, 0, len(libs))
	for i := range libs {
		lib := &libs[i]
		listing := Listing{
			Name:        lib.Name,
			Description: lib.Description,
			Tags:        lib.Tags,
			URLs:        lib.URLs,
		}
		eval := checklist.MostRecentEvaluation(lib.Evaluations)
		if eval != nil {
			listing.LastEvaluated = eval.Date
		}
		listing.CompletedTiers = checklist.CompletedSectionTiers(eval)
		out = append(out, listing)
	}
	return out
}
