package checklist

import (
	"slices"
	"sort"

	"github.com/kaitj/nmind-proceedings/contract"
)

// SectionTierSummary is the scored, display-ready view of one section tier.
type SectionTierSummary struct {
	Section string                   `json:"section"`
	Tier    string                   `json:"tier"`
	Score   contract.Fraction        `json:"score"`
	Items   []contract.ChecklistItem `json:"items"`
}

// Token returns the "section-tier" token used by completion filters.
func (s SectionTierSummary) Token() string {
	return s.Section + "-" + s.Tier
}

// HistoryEntry is one evaluation in a library's history.
type HistoryEntry struct {
	Date          string `json:"date"`
	SchemaVersion int    `json:"schema_version"`
}

// Summary is the detail view of a library and its most recent evaluation.
type Summary struct {
	Name            string                `json:"name"`
	Description     string                `json:"description"`
	Tags            []string              `json:"tags"`
	URLs            []contract.LibraryURL `json:"urls"`
	EvaluationCount int                   `json:"evaluation_count"`
	Date            string                `json:"date,omitempty"`
	SchemaVersion   int                   `json:"schema_version,omitempty"`
	SectionTiers    []SectionTierSummary  `json:"section_tiers"`
	Completed       []string              `json:"completed"`
	History         []HistoryEntry        `json:"history"`
}

// Summarize scores every section tier of the library's most recent evaluation
// against its schema. Sections and tiers are returned in lexical order. A
// library without evaluations yields a summary with no section tiers.
func Summarize(schemas []contract.EvaluationSchema, lib *contract.Library) (*Summary, error) {
	sum := &Summary{
		Name:            lib.Name,
		Description:     lib.Description,
		Tags:            lib.Tags,
		URLs:            lib.URLs,
		EvaluationCount: len(lib.Evaluations),
		SectionTiers:    []SectionTierSummary{},
		Completed:       []string{},
		History:         history(lib.Evaluations),
	}

	eval := MostRecentEvaluation(lib.Evaluations)
	if eval == nil {
		return sum, nil
	}
	sum.Date = eval.Date
	sum.SchemaVersion = eval.SchemaVersion

	for _, section := range sortedKeys(eval.Checklist) {
		tiers := eval.Checklist[section]
		for _, tier := range sortedKeys(tiers) {
			st := tiers[tier]
			items, err := MungeSectionTier(schemas, st, eval.SchemaVersion)
			if err != nil {
				return nil, err
			}
			sum.SectionTiers = append(sum.SectionTiers, SectionTierSummary{
				Section: section,
				Tier:    tier,
				Score:   MungeValue(st),
				Items:   items,
			})
		}
	}
	sum.Completed = CompletedSectionTiers(eval)
	return sum, nil
}

// CompletedSectionTiers returns the sorted "section-tier" tokens of eval whose
// items are all answered true. A tier with no items counts as complete.
func CompletedSectionTiers(eval *contract.Evaluation) []string {
	completed := []string{}
	if eval == nil {
		return completed
	}
	for section, tiers := range eval.Checklist {
		for tier, st := range tiers {
			if st.AllTrue() {
				completed = append(completed, section+"-"+tier)
			}
		}
	}
	sort.Strings(completed)
	return completed
}

// history lists evals newest first without reordering the library's own slice.
func history(evals []contract.Evaluation) []HistoryEntry {
	sorted := SortEvaluationsByDate(slices.Clone(evals))
	out := make([]HistoryEntry, 0, len(sorted))
	for _, ev := range sorted {
		out = append(out, HistoryEntry{Date: ev.Date, SchemaVersion: ev.SchemaVersion})
	}
	return out
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
