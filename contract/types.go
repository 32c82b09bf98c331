package contract

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Dataset is the bundled document holding every schema and evaluated library.
type Dataset struct {
	EvaluationSchemas  []EvaluationSchema `json:"evaluationSchemas"`
	EvaluatedLibraries []Library          `json:"evaluatedLibraries"`
}

// EvaluationSchema is a versioned set of checklist prompts.
type EvaluationSchema struct {
	Context SchemaContext `json:"@context"`
	Items   []SchemaItem  `json:"items"`
}

// SchemaContext carries the linked-data context of a schema, including its version.
type SchemaContext struct {
	Version int `json:"@version"`
}

// Version returns the schema version. Presence and type are checked when the
// dataset is loaded, so a zero value here means the schema declared version 0.
func (s *EvaluationSchema) Version() int {
	return s.Context.Version
}

// SchemaItem is a single checklist prompt.
type SchemaItem struct {
	ID     string `json:"id"`
	Prompt string `json:"prompt"`
}

// Evaluation is one assessment of a library at a point in time.
type Evaluation struct {
	Date          string    `json:"date"`
	SchemaVersion int       `json:"schemaVersion"`
	Checklist     Checklist `json:"checklist"`
}

// Checklist maps section name to tier name to the answered items.
type Checklist map[string]map[string]SectionTier

// SectionTier returns the items answered for section/tier and whether that path exists.
func (c Checklist) SectionTier(section, tier string) (SectionTier, bool) {
	tiers, ok := c[section]
	if !ok {
		return SectionTier{}, false
	}
	st, ok := tiers[tier]
	return st, ok
}

// SectionTierEntry is one answered checklist item.
type SectionTierEntry struct {
	ID    string
	Value bool
}

// SectionTier is an ordered mapping of item id to answer. Entries keep the
// order in which they appear in the source document.
type SectionTier struct {
	entries []SectionTierEntry
}

// NewSectionTier builds a SectionTier from entries in the given order.
// A repeated id overwrites the earlier value in place.
func NewSectionTier(entries ...SectionTierEntry) SectionTier {
	var st SectionTier
	for _, e := range entries {
		st.set(e.ID, e.Value)
	}
	return st
}

func (st *SectionTier) set(id string, v bool) {
	for i := range st.entries {
		if st.entries[i].ID == id {
			st.entries[i].Value = v
			return
		}
	}
	st.entries = append(st.entries, SectionTierEntry{ID: id, Value: v})
}

// Len returns the number of answered items.
func (st SectionTier) Len() int { return len(st.entries) }

// Entries returns a copy of the entries in insertion order.
func (st SectionTier) Entries() []SectionTierEntry {
	out := make([]SectionTierEntry, len(st.entries))
	copy(out, st.entries)
	return out
}

// Get returns the answer for id.
func (st SectionTier) Get(id string) (value, ok bool) {
	for _, e := range st.entries {
		if e.ID == id {
			return e.Value, true
		}
	}
	return false, false
}

// AllTrue reports whether every item is answered true. Vacuously true when empty.
func (st SectionTier) AllTrue() bool {
	for _, e := range st.entries {
		if !e.Value {
			return false
		}
	}
	return true
}

// UnmarshalJSON decodes a JSON object of booleans, preserving key order.
func (st *SectionTier) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("section tier: expected object, got %v", tok)
	}

	st.entries = nil
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("section tier: expected string key, got %v", keyTok)
		}
		var v bool
		if err := dec.Decode(&v); err != nil {
			return fmt.Errorf("section tier item %q: %w", key, err)
		}
		st.set(key, v)
	}

	if _, err := dec.Token(); err != nil {
		return err
	}
	return nil
}

// MarshalJSON encodes the entries as a JSON object in insertion order.
func (st SectionTier) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range st.entries {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(e.ID)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		if e.Value {
			buf.WriteString(":true")
		} else {
			buf.WriteString(":false")
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Library is a catalog entry and its embedded evaluations.
type Library struct {
	Name        string       `json:"name"`
	Tags        []string     `json:"tags"`
	URLs        []LibraryURL `json:"urls"`
	Description string       `json:"description"`
	Evaluations []Evaluation `json:"evaluations"`
}

// LibraryURL is a labelled link.
type LibraryURL struct {
	Text string `json:"text"`
	URL  string `json:"url"`
}

// Fraction is a count of positive answers over total answers.
type Fraction struct {
	Numerator   int `json:"numerator"`
	Denominator int `json:"denominator"`
}

// Percent returns the fraction as a whole percentage, 0 when there is nothing to count.
func (f Fraction) Percent() int {
	if f.Denominator == 0 {
		return 0
	}
	return f.Numerator * 100 / f.Denominator
}

// Complete reports whether every counted answer is positive.
func (f Fraction) Complete() bool {
	return f.Numerator == f.Denominator
}

func (f Fraction) String() string {
	return fmt.Sprintf("%d/%d", f.Numerator, f.Denominator)
}

// ChecklistItem is a checklist answer paired with its display prompt.
type ChecklistItem struct {
	Prompt string `json:"prompt"`
	Value  bool   `json:"value"`
}
