package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/kaitj/nmind-proceedings/checklist"
	"github.com/kaitj/nmind-proceedings/contract"
	"github.com/kaitj/nmind-proceedings/search"
)

// SchemaInfo summarises a schema version for listing.
type SchemaInfo struct {
	Version int `json:"version"`
	Items   int `json:"items"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// filterStatus maps a search error to an HTTP status.
func filterStatus(err error) int {
	if errors.Is(err, search.ErrNoEvaluations) || errors.Is(err, search.ErrChecklistPathNotFound) {
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}

// runQuery filters the catalog and records the outcome.
func (s *Server) runQuery(q search.Query) ([]contract.Library, error) {
	libs, err := search.FilterLibraryData(s.catalog, q)
	if err != nil {
		s.metrics.filterFails.Inc()
		return nil, err
	}
	s.metrics.resultSize.Observe(float64(len(libs)))
	return libs, nil
}

// handleHealth returns a health check response.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	libs, err := s.catalog.List()
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "ok",
		"libraries": len(libs),
		"schemas":   len(s.catalog.Schemas()),
	})
}

// handleListLibraries filters the catalog with ?text=, ?tags= and repeated ?tier=.
func (s *Server) handleListLibraries(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()
	q := search.Query{
		Text:         params.Get("text"),
		Tags:         params.Get("tags"),
		SectionTiers: params["tier"],
	}

	libs, err := s.runQuery(q)
	if err != nil {
		s.logger.Warn("search failed", map[string]any{
			"error":      err,
			"request_id": RequestIDFromContext(r.Context()),
		})
		writeError(w, filterStatus(err), err.Error())
		return
	}

	writeJSON(w, http.StatusOK, search.NewListings(libs))
}

// handleGetLibrary returns the scored detail view of a single library.
func (s *Server) handleGetLibrary(w http.ResponseWriter, r *http.Request) {
	lib := s.catalog.Get(r.PathValue("name"))
	if lib == nil {
		writeError(w, http.StatusNotFound, "library not found")
		return
	}

	sum, err := checklist.Summarize(s.catalog.Schemas(), lib)
	if err != nil {
		s.logger.Error("summarizing library", map[string]any{"library": lib.Name, "error": err})
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, sum)
}

// handleLibraryLink redirects to the library URL labelled {text}.
func (s *Server) handleLibraryLink(w http.ResponseWriter, r *http.Request) {
	lib := s.catalog.Get(r.PathValue("name"))
	if lib == nil {
		writeError(w, http.StatusNotFound, "library not found")
		return
	}
	u := checklist.LibraryURLByText(lib, r.PathValue("text"))
	if u == nil {
		writeError(w, http.StatusNotFound, "link not found")
		return
	}
	http.Redirect(w, r, u.URL, http.StatusFound)
}

// handleListSchemas lists the schema versions in dataset order.
func (s *Server) handleListSchemas(w http.ResponseWriter, _ *http.Request) {
	schemas := s.catalog.Schemas()
	list := make([]SchemaInfo, 0, len(schemas))
	for i := range schemas {
		list = append(list, SchemaInfo{Version: schemas[i].Version(), Items: len(schemas[i].Items)})
	}
	writeJSON(w, http.StatusOK, list)
}

// handleGetSchema returns one schema by version.
func (s *Server) handleGetSchema(w http.ResponseWriter, r *http.Request) {
	version, err := strconv.Atoi(r.PathValue("version"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "version must be an integer")
		return
	}
	schema := checklist.FindSchemaByVersion(s.catalog.Schemas(), version)
	if schema == nil {
		writeError(w, http.StatusNotFound, "schema not found")
		return
	}
	writeJSON(w, http.StatusOK, schema)
}
