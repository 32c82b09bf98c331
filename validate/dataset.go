// Package validate checks a raw dataset document before it is loaded.
package validate

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/xeipuuv/gojsonschema"

	"github.com/kaitj/nmind-proceedings/checklist"
	"github.com/kaitj/nmind-proceedings/contract"
)

//go:embed dataset.schema.json
var datasetSchemaJSON []byte

var compiledSchema = sync.OnceValues(func() (*gojsonschema.Schema, error) {
	return gojsonschema.NewSchema(gojsonschema.NewBytesLoader(datasetSchemaJSON))
})

// ValidationResult holds errors and warnings from dataset validation.
type ValidationResult struct {
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

// IsValid returns true if there are no validation errors.
func (r *ValidationResult) IsValid() bool {
	return len(r.Errors) == 0
}

// ValidateDataset checks raw against the dataset JSON Schema and then checks
// the cross references the schema cannot express. When raw is valid the
// decoded dataset is returned alongside the result.
func ValidateDataset(raw []byte) (*contract.Dataset, *ValidationResult) {
	r := &ValidationResult{}

	schema, err := compiledSchema()
	if err != nil {
		r.Errors = append(r.Errors, fmt.Sprintf("compiling dataset schema: %v", err))
		return nil, r
	}

	res, err := schema.Validate(gojsonschema.NewBytesLoader(raw))
	if err != nil {
		r.Errors = append(r.Errors, fmt.Sprintf("parsing dataset: %v", err))
		return nil, r
	}
	if !res.Valid() {
		for _, e := range res.Errors() {
			r.Errors = append(r.Errors, e.String())
		}
		return nil, r
	}

	var ds contract.Dataset
	if err := json.Unmarshal(raw, &ds); err != nil {
		r.Errors = append(r.Errors, fmt.Sprintf("decoding dataset: %v", err))
		return nil, r
	}

	checkSchemas(&ds, r)
	checkLibraries(&ds, r)

	if !r.IsValid() {
		return nil, r
	}
	return &ds, r
}

func checkSchemas(ds *contract.Dataset, r *ValidationResult) {
	seen := make(map[int]bool, len(ds.EvaluationSchemas))
	for i := range ds.EvaluationSchemas {
		s := &ds.EvaluationSchemas[i]
		if seen[s.Version()] {
			r.Errors = append(r.Errors, fmt.Sprintf("evaluationSchemas[%d]: duplicate @version %d", i, s.Version()))
		}
		seen[s.Version()] = true

		ids := make(map[string]bool, len(s.Items))
		for j, item := range s.Items {
			if ids[item.ID] {
				r.Errors = append(r.Errors, fmt.Sprintf("evaluationSchemas[%d].items[%d]: duplicate id %q", i, j, item.ID))
			}
			ids[item.ID] = true
		}
	}
}

func checkLibraries(ds *contract.Dataset, r *ValidationResult) {
	names := make(map[string]bool, len(ds.EvaluatedLibraries))
	for i := range ds.EvaluatedLibraries {
		lib := &ds.EvaluatedLibraries[i]
		if lib.Name == "" {
			r.Errors = append(r.Errors, fmt.Sprintf("evaluatedLibraries[%d]: name is required", i))
		} else if names[lib.Name] {
			r.Warnings = append(r.Warnings, fmt.Sprintf("evaluatedLibraries[%d]: duplicate name %q, lookups return the first", i, lib.Name))
		}
		names[lib.Name] = true

		if len(lib.Evaluations) == 0 {
			r.Warnings = append(r.Warnings, fmt.Sprintf("library %q has no evaluations; section-tier filters will fail", lib.Name))
		}

		for j := range lib.Evaluations {
			checkEvaluation(ds.EvaluationSchemas, lib.Name, j, &lib.Evaluations[j], r)
		}
	}
}

func checkEvaluation(schemas []contract.EvaluationSchema, libName string, idx int, ev *contract.Evaluation, r *ValidationResult) {
	where := fmt.Sprintf("library %q evaluations[%d]", libName, idx)

	if _, ok := checklist.ParseDate(ev.Date); !ok {
		r.Warnings = append(r.Warnings, fmt.Sprintf("%s: unparseable date %q", where, ev.Date))
	}

	schema := checklist.FindSchemaByVersion(schemas, ev.SchemaVersion)
	if schema == nil {
		r.Warnings = append(r.Warnings, fmt.Sprintf("%s: unknown schemaVersion %d; its checklist cannot be displayed", where, ev.SchemaVersion))
		return
	}

	for section, tiers := range ev.Checklist {
		for tier, st := range tiers {
			for _, e := range st.Entries() {
				if _, ok := checklist.PromptByID(schema, e.ID); !ok {
					r.Warnings = append(r.Warnings, fmt.Sprintf("%s: %s-%s item %q is not in schema version %d", where, section, tier, e.ID, ev.SchemaVersion))
				}
			}
		}
	}
}
