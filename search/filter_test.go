package search

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/kaitj/nmind-proceedings/contract"
)

func names(libs []contract.Library) []string {
	out := []string{}
	for _, l := range libs {
		out = append(out, l.Name)
	}
	return out
}

func evalWith(date string, checklist contract.Checklist) contract.Evaluation {
	return contract.Evaluation{Date: date, SchemaVersion: 1, Checklist: checklist}
}

func tier(values ...bool) contract.SectionTier {
	entries := make([]contract.SectionTierEntry, len(values))
	for i, v := range values {
		entries[i] = contract.SectionTierEntry{ID: string(rune('a' + i)), Value: v}
	}
	return contract.NewSectionTier(entries...)
}

func testLibraries() []contract.Library {
	return []contract.Library{
		{
			Name: "React Router",
			Tags: []string{"react", "routing"},
			Evaluations: []contract.Evaluation{
				evalWith("2021-01-01", contract.Checklist{"docs": {"bronze": tier(false)}}),
				evalWith("2023-01-01", contract.Checklist{
					"docs":    {"bronze": tier(true, true), "silver": tier(true, false)},
					"testing": {"bronze": tier(true)},
				}),
			},
		},
		{
			Name: "Vue Router",
			Tags: []string{"Vue", "routing"},
			Evaluations: []contract.Evaluation{
				evalWith("2022-05-05", contract.Checklist{
					"docs":    {"bronze": tier(true), "silver": tier(true)},
					"testing": {"bronze": tier(false)},
				}),
			},
		},
		{
			Name: "Testing Library",
			Tags: []string{"react", "testing-library"},
			Evaluations: []contract.Evaluation{
				evalWith("2022-02-02", contract.Checklist{
					"docs":    {"bronze": tier(true), "silver": tier()},
					"testing": {"bronze": tier(true, true)},
				}),
			},
		},
		{
			Name: "vuex",
			Tags: []string{"vue-state"},
			Evaluations: []contract.Evaluation{
				evalWith("2020-01-01", contract.Checklist{
					"docs":    {"bronze": tier(false), "silver": tier(false)},
					"testing": {"bronze": tier(false)},
				}),
			},
		},
	}
}

type stubCatalog struct {
	libs []contract.Library
	err  error
}

func (s stubCatalog) Schemas() []contract.EvaluationSchema { return nil }
func (s stubCatalog) List() ([]contract.Library, error)    { return s.libs, s.err }
func (s stubCatalog) Get(string) *contract.Library         { return nil }

func TestFilterLibraryData_EmptyQueryReturnsAll(t *testing.T) {
	libs := testLibraries()
	got, err := FilterLibraryData(stubCatalog{libs: libs}, Query{})
	if err != nil {
		t.Fatalf("FilterLibraryData error: %v", err)
	}
	if diff := cmp.Diff(libs, got, cmp.AllowUnexported(contract.SectionTier{})); diff != "" {
		t.Errorf("unfiltered result mismatch (-want +got):\n%s", diff)
	}
}

func TestFilterLibraryData_CatalogError(t *testing.T) {
	boom := errors.New("dataset unavailable")
	_, err := FilterLibraryData(stubCatalog{err: boom}, Query{Text: "x"})
	if !errors.Is(err, boom) {
		t.Fatalf("expected catalog error, got %v", err)
	}
}

func TestFilterLibraryData_ExactTagWithTrailingComma(t *testing.T) {
	got, err := FilterLibraryData(stubCatalog{libs: testLibraries()}, Query{Tags: "vue,"})
	if err != nil {
		t.Fatalf("FilterLibraryData error: %v", err)
	}
	if diff := cmp.Diff([]string{"Vue Router"}, names(got)); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestFilterLibraryData_InclusiveFinalTag(t *testing.T) {
	got, err := FilterLibraryData(stubCatalog{libs: testLibraries()}, Query{Tags: "vue"})
	if err != nil {
		t.Fatalf("FilterLibraryData error: %v", err)
	}
	if diff := cmp.Diff([]string{"Vue Router", "vuex"}, names(got)); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestFilterLibraryData_NamePreservesOrder(t *testing.T) {
	got, err := FilterLibraryData(stubCatalog{libs: testLibraries()}, Query{Text: "ROUTER"})
	if err != nil {
		t.Fatalf("FilterLibraryData error: %v", err)
	}
	if diff := cmp.Diff([]string{"React Router", "Vue Router"}, names(got)); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestFilterLibraryData_NameIgnoresDescription(t *testing.T) {
	libs := []contract.Library{{Name: "alpha", Description: "router utilities"}}
	got, err := Filter(libs, Query{Text: "router"})
	if err != nil {
		t.Fatalf("Filter error: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected no matches, got %v", names(got))
	}
}

func TestFilterLibraryData_AllStages(t *testing.T) {
	q := Query{Text: "router", Tags: "rout", SectionTiers: []string{"docs-bronze"}}
	got, err := FilterLibraryData(stubCatalog{libs: testLibraries()}, q)
	if err != nil {
		t.Fatalf("FilterLibraryData error: %v", err)
	}
	if diff := cmp.Diff([]string{"React Router", "Vue Router"}, names(got)); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestFilterCompletedSectionTiers_UsesMostRecentEvaluation(t *testing.T) {
	got, err := FilterCompletedSectionTiers(testLibraries(), []string{"docs-bronze"})
	if err != nil {
		t.Fatalf("FilterCompletedSectionTiers error: %v", err)
	}
	// React Router's older evaluation is incomplete; only the newest one counts.
	if diff := cmp.Diff([]string{"React Router", "Vue Router", "Testing Library"}, names(got)); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestFilterCompletedSectionTiers_TokensAreANDed(t *testing.T) {
	got, err := FilterCompletedSectionTiers(testLibraries(), []string{"docs-silver", "testing-bronze"})
	if err != nil {
		t.Fatalf("FilterCompletedSectionTiers error: %v", err)
	}
	// Testing Library's empty silver tier counts as complete.
	if diff := cmp.Diff([]string{"Testing Library"}, names(got)); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestFilterCompletedSectionTiers_NoEvaluationsFailsWholeCall(t *testing.T) {
	libs := append(testLibraries(), contract.Library{Name: "unevaluated"})
	got, err := FilterCompletedSectionTiers(libs, []string{"docs-bronze"})
	if !errors.Is(err, ErrNoEvaluations) {
		t.Fatalf("expected ErrNoEvaluations, got %v", err)
	}
	if got != nil {
		t.Errorf("expected no partial result, got %v", names(got))
	}
}

func TestFilterCompletedSectionTiers_MissingPath(t *testing.T) {
	for _, token := range []string{"docs-gold", "security-bronze", "docs"} {
		_, err := FilterCompletedSectionTiers(testLibraries(), []string{token})
		if !errors.Is(err, ErrChecklistPathNotFound) {
			t.Errorf("token %q: expected ErrChecklistPathNotFound, got %v", token, err)
		}
	}
}

func TestFilterCompletedSectionTiers_ExtraHyphensIgnored(t *testing.T) {
	got, err := FilterCompletedSectionTiers(testLibraries(), []string{"testing-bronze-extra"})
	if err != nil {
		t.Fatalf("FilterCompletedSectionTiers error: %v", err)
	}
	if diff := cmp.Diff([]string{"React Router", "Testing Library"}, names(got)); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestFilterCompletedSectionTiers_EmptySetSkipsLaterChecks(t *testing.T) {
	libs := testLibraries()[3:]
	got, err := FilterCompletedSectionTiers(libs, []string{"docs-bronze", "nonexistent-tier"})
	if err != nil {
		t.Fatalf("expected no error once the set is empty, got %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected empty result, got %v", names(got))
	}
}

func TestQuery_IsZero(t *testing.T) {
	if !(Query{}).IsZero() {
		t.Error("empty query should be zero")
	}
	if (Query{SectionTiers: []string{"docs-bronze"}}).IsZero() {
		t.Error("query with section tiers should not be zero")
	}
}
