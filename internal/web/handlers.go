package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sheetmap/sheetmap/internal/core"
)

// schemaSummary is the API representation of a registered schema.
type schemaSummary struct {
	Key           string   `json:"key"`
	Group         string   `json:"group"`
	Label         string   `json:"label"`
	HeaderRow     int      `json:"headerRow"`
	GroupBySheet  bool     `json:"groupBySheet"`
	OutputColumns []string `json:"outputColumns"`
}

func summarize(def core.SchemaDefinition) schemaSummary {
	return schemaSummary{
		Key:           def.Info.Key,
		Group:         def.Info.Group,
		Label:         def.Info.Label,
		HeaderRow:     def.HeaderRow,
		GroupBySheet:  def.GroupBySheet,
		OutputColumns: def.OutputColumns(),
	}
}

// handleHealth reports liveness and the number of registered schemas.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]any{
		"status":  "ok",
		"schemas": core.SchemaCount(),
	})
}

// handleListSchemas returns all registered schemas, sorted by group
// then key.
func (s *Server) handleListSchemas(w http.ResponseWriter, r *http.Request) {
	defs := core.All()
	out := make([]schemaSummary, 0, len(defs))
	for _, def := range defs {
		out = append(out, summarize(def))
	}
	writeJSON(w, out)
}

// handleGetSchema returns one schema by key.
func (s *Server) handleGetSchema(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "schemaKey")
	def, ok := core.Get(key)
	if !ok {
		writeError(w, r, http.StatusNotFound, codeSchemaNotFound, "unknown schema: "+key)
		return
	}
	writeJSON(w, summarize(def))
}
