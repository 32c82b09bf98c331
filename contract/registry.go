// Package contract defines the catalog types shared across the nmind-proceedings packages.
package contract

// Catalog provides read access to a loaded, immutable dataset.
type Catalog interface {
	// Schemas returns every evaluation schema in dataset order.
	Schemas() []EvaluationSchema

	// List returns all evaluated libraries in dataset order.
	List() ([]Library, error)

	// Get returns the library with the given name, or nil if not found.
	Get(name string) *Library
}
