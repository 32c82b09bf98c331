// Package local loads the proceedings dataset from the embedded copy or a file.
package local

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/kaitj/nmind-proceedings/contract"
	"github.com/kaitj/nmind-proceedings/validate"
)

//go:embed embedded/data.json
var embeddedFS embed.FS

// EmbeddedPath is the location of the bundled dataset inside the embedded filesystem.
const EmbeddedPath = "embedded/data.json"

// ErrInvalidDataset is returned when a dataset fails validation.
var ErrInvalidDataset = errors.New("invalid dataset")

// Catalog implements contract.Catalog over a dataset loaded once.
type Catalog struct {
	source   string
	schemas  []contract.EvaluationSchema
	libs     []contract.Library
	byName   map[string]*contract.Library
	warnings []string
}

// NewEmbeddedCatalog loads the dataset bundled into the binary.
func NewEmbeddedCatalog() (*Catalog, error) {
	return NewCatalog(embeddedFS, EmbeddedPath)
}

// NewCatalog loads the dataset at path in fsys.
func NewCatalog(fsys fs.FS, path string) (*Catalog, error) {
	raw, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("reading dataset %s: %w", path, err)
	}
	return Parse(raw, path)
}

// LoadFile loads a dataset from the local filesystem.
func LoadFile(path string) (*Catalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading dataset %s: %w", path, err)
	}
	return Parse(raw, path)
}

// ReadDataset returns the raw dataset at path, or the embedded dataset when
// path is empty, along with a label for where it came from.
func ReadDataset(path string) ([]byte, string, error) {
	if path == "" {
		raw, err := embeddedFS.ReadFile(EmbeddedPath)
		return raw, "embedded", err
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, path, fmt.Errorf("reading dataset %s: %w", path, err)
	}
	return raw, path, nil
}

// Open loads the dataset at path, or the embedded dataset when path is empty.
func Open(path string) (*Catalog, error) {
	raw, source, err := ReadDataset(path)
	if err != nil {
		return nil, err
	}
	return Parse(raw, source)
}

// Parse validates and decodes raw. source is used in error messages only.
func Parse(raw []byte, source string) (*Catalog, error) {
	ds, result := validate.ValidateDataset(raw)
	if !result.IsValid() {
		return nil, fmt.Errorf("%s: %w: %s", source, ErrInvalidDataset, strings.Join(result.Errors, "; "))
	}

	byName := make(map[string]*contract.Library, len(ds.EvaluatedLibraries))
	for i := range ds.EvaluatedLibraries {
		lib := &ds.EvaluatedLibraries[i]
		if _, dup := byName[lib.Name]; !dup {
			byName[lib.Name] = lib
		}
	}

	return &Catalog{
		source:   source,
		schemas:  ds.EvaluationSchemas,
		libs:     ds.EvaluatedLibraries,
		byName:   byName,
		warnings: result.Warnings,
	}, nil
}

// Source returns where the dataset was loaded from.
func (c *Catalog) Source() string { return c.source }

// Warnings returns the non-fatal validation findings from loading.
func (c *Catalog) Warnings() []string { return c.warnings }

// Schemas returns every evaluation schema in dataset order.
func (c *Catalog) Schemas() []contract.EvaluationSchema {
	return c.schemas
}

// List returns all evaluated libraries in dataset order.
func (c *Catalog) List() ([]contract.Library, error) {
	return c.libs, nil
}

// Get returns the library with the given name, or nil if not found.
func (c *Catalog) Get(name string) *contract.Library {
	return c.byName[name]
}
