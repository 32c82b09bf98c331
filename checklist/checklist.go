// Package checklist resolves evaluations against their schemas and reshapes
// checklist answers for display.
package checklist

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/araddon/dateparse"

	"github.com/kaitj/nmind-proceedings/contract"
)

// ErrSchemaNotFound is returned when no schema matches an evaluation's schema version.
var ErrSchemaNotFound = errors.New("no matching schema found")

// MostRecentEvaluation returns the evaluation with the greatest Date, compared
// as raw strings. Among equal dates the earliest in evals wins. Returns nil
// for an empty slice. evals is not reordered.
func MostRecentEvaluation(evals []contract.Evaluation) *contract.Evaluation {
	if len(evals) == 0 {
		return nil
	}
	best := 0
	for i := 1; i < len(evals); i++ {
		if evals[best].Date < evals[i].Date {
			best = i
		}
	}
	return &evals[best]
}

// SortEvaluationsByDate sorts evals in place, newest first, by parsed date and
// returns the same slice. Evaluations whose date cannot be parsed sort after
// all others, keeping their relative order.
//
// Unlike MostRecentEvaluation this parses dates, so the two can disagree on
// non-ISO date strings.
func SortEvaluationsByDate(evals []contract.Evaluation) []contract.Evaluation {
	slices.SortStableFunc(evals, func(a, b contract.Evaluation) int {
		ta, okA := ParseDate(a.Date)
		tb, okB := ParseDate(b.Date)
		switch {
		case !okA && !okB:
			return 0
		case !okA:
			return 1
		case !okB:
			return -1
		}
		return tb.Compare(ta)
	})
	return evals
}

// ParseDate parses an evaluation date in any of the common layouts. Dates
// without a zone are read as UTC; ambiguous numeric dates are month first.
func ParseDate(s string) (time.Time, bool) {
	t, err := dateparse.ParseIn(s, time.UTC)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// MungeValue counts the positive answers in a section tier.
func MungeValue(st contract.SectionTier) contract.Fraction {
	f := contract.Fraction{Denominator: st.Len()}
	for _, e := range st.Entries() {
		if e.Value {
			f.Numerator++
		}
	}
	return f
}

// PromptByID returns the prompt of the schema item with the given id.
func PromptByID(schema *contract.EvaluationSchema, id string) (string, bool) {
	for _, item := range schema.Items {
		if item.ID == id {
			return item.Prompt, true
		}
	}
	return "", false
}

// FindSchemaByVersion returns the first schema with the given version, or nil.
func FindSchemaByVersion(schemas []contract.EvaluationSchema, version int) *contract.EvaluationSchema {
	for i := range schemas {
		if schemas[i].Version() == version {
			return &schemas[i]
		}
	}
	return nil
}

// MungeSectionTier pairs each answer in st with its prompt from the schema for
// version. Answers whose id is not in the schema are dropped. Output follows
// the order of st. An item with an empty prompt is treated as missing.
func MungeSectionTier(schemas []contract.EvaluationSchema, st contract.SectionTier, version int) ([]contract.ChecklistItem, error) {
	schema := FindSchemaByVersion(schemas, version)
	if schema == nil {
		return nil, fmt.Errorf("schema version %d: %w", version, ErrSchemaNotFound)
	}

	items := make([]contract.ChecklistItem, 0, st.Len())
	for _, e := range st.Entries() {
		prompt, ok := PromptByID(schema, e.ID)
		if !ok || prompt == "" {
			continue
		}
		items = append(items, contract.ChecklistItem{Prompt: prompt, Value: e.Value})
	}
	return items, nil
}

// LibraryURLByText returns the library link whose label is exactly text, or nil.
func LibraryURLByText(lib *contract.Library, text string) *contract.LibraryURL {
	for i := range lib.URLs {
		if lib.URLs[i].Text == text {
			return &lib.URLs[i]
		}
	}
	return nil
}
