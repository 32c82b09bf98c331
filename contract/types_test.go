package contract

import (
	"encoding/json"
	"testing"
)

// Compile-time interface check: verify Catalog is implementable.
var _ Catalog = (*catalogStub)(nil)

type catalogStub struct{}

func (catalogStub) Schemas() []EvaluationSchema { return nil }
func (catalogStub) List() ([]Library, error)    { return nil, nil }
func (catalogStub) Get(string) *Library         { return nil }

func TestSectionTier_PreservesDocumentOrder(t *testing.T) {
	var st SectionTier
	if err := json.Unmarshal([]byte(`{"zeta":true,"alpha":false,"mid":true}`), &st); err != nil {
		t.Fatalf("Unmarshal error: %v", err)
	}

	entries := st.Entries()
	want := []string{"zeta", "alpha", "mid"}
	if len(entries) != len(want) {
		t.Fatalf("expected %d entries, got %d", len(want), len(entries))
	}
	for i, id := range want {
		if entries[i].ID != id {
			t.Errorf("entries[%d].ID = %q, want %q", i, entries[i].ID, id)
		}
	}
	if v, ok := st.Get("alpha"); !ok || v {
		t.Errorf("Get(alpha) = %v, %v; want false, true", v, ok)
	}
}

func TestSectionTier_DuplicateKeyKeepsFirstPosition(t *testing.T) {
	var st SectionTier
	if err := json.Unmarshal([]byte(`{"a":false,"b":true,"a":true}`), &st); err != nil {
		t.Fatalf("Unmarshal error: %v", err)
	}
	if st.Len() != 2 {
		t.Fatalf("Len = %d, want 2", st.Len())
	}
	if e := st.Entries()[0]; e.ID != "a" || !e.Value {
		t.Errorf("first entry = %+v, want {a true}", e)
	}
}

func TestSectionTier_RejectsNonBoolean(t *testing.T) {
	var st SectionTier
	if err := json.Unmarshal([]byte(`{"a":"yes"}`), &st); err == nil {
		t.Fatal("expected error for non-boolean value")
	}
	if err := json.Unmarshal([]byte(`[true]`), &st); err == nil {
		t.Fatal("expected error for array")
	}
}

func TestSectionTier_MarshalRoundTripOrder(t *testing.T) {
	st := NewSectionTier(
		SectionTierEntry{ID: "q2", Value: true},
		SectionTierEntry{ID: "q1", Value: false},
	)
	data, err := json.Marshal(st)
	if err != nil {
		t.Fatalf("Marshal error: %v", err)
	}
	if string(data) != `{"q2":true,"q1":false}` {
		t.Errorf("Marshal = %s", data)
	}
}

func TestSectionTier_AllTrue(t *testing.T) {
	if !(SectionTier{}).AllTrue() {
		t.Error("empty section tier should be vacuously complete")
	}
	st := NewSectionTier(SectionTierEntry{ID: "a", Value: true}, SectionTierEntry{ID: "b", Value: false})
	if st.AllTrue() {
		t.Error("expected AllTrue false")
	}
}

func TestChecklist_SectionTier(t *testing.T) {
	var ev Evaluation
	raw := `{"date":"2023-01-02","schemaVersion":1,"checklist":{"docs":{"bronze":{"readme":true}}}}`
	if err := json.Unmarshal([]byte(raw), &ev); err != nil {
		t.Fatalf("Unmarshal error: %v", err)
	}

	st, ok := ev.Checklist.SectionTier("docs", "bronze")
	if !ok || st.Len() != 1 {
		t.Fatalf("SectionTier(docs, bronze) = %v, %v", st, ok)
	}
	if _, ok := ev.Checklist.SectionTier("docs", "gold"); ok {
		t.Error("expected missing tier")
	}
	if _, ok := ev.Checklist.SectionTier("tests", "bronze"); ok {
		t.Error("expected missing section")
	}
}

func TestEvaluationSchema_Version(t *testing.T) {
	var s EvaluationSchema
	if err := json.Unmarshal([]byte(`{"@context":{"@version":3},"items":[{"id":"a","prompt":"A?"}]}`), &s); err != nil {
		t.Fatalf("Unmarshal error: %v", err)
	}
	if s.Version() != 3 {
		t.Errorf("Version = %d, want 3", s.Version())
	}
}

func TestFraction(t *testing.T) {
	tests := []struct {
		f        Fraction
		percent  int
		complete bool
		str      string
	}{
		{Fraction{0, 0}, 0, true, "0/0"},
		{Fraction{2, 3}, 66, false, "2/3"},
		{Fraction{4, 4}, 100, true, "4/4"},
	}
	for _, tt := range tests {
		if got := tt.f.Percent(); got != tt.percent {
			t.Errorf("%v.Percent() = %d, want %d", tt.f, got, tt.percent)
		}
		if got := tt.f.Complete(); got != tt.complete {
			t.Errorf("%v.Complete() = %v, want %v", tt.f, got, tt.complete)
		}
		if got := tt.f.String(); got != tt.str {
			t.Errorf("String() = %q, want %q", got, tt.str)
		}
	}
}
