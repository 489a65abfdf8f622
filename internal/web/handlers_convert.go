package web

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/sheetmap/sheetmap/internal/core"
	"github.com/sheetmap/sheetmap/internal/logging"
	"github.com/sheetmap/sheetmap/internal/spreadsheet"
)

// handleConvert accepts a spreadsheet upload and runs it through the
// named schema. The file is staged to a temp file so the reader can
// sniff it by extension, and removed when the request finishes.
//
// Optional form values:
//   - headerRow: zero-based header row index, overrides the schema default
//   - groupBySheet: "true"/"false", overrides the schema default
//   - persist: "false" to skip writing the result JSON to the output dir
func (s *Server) handleConvert(w http.ResponseWriter, r *http.Request) {
	schemaKey := chi.URLParam(r, "schemaKey")
	if _, ok := core.Get(schemaKey); !ok {
		writeError(w, r, http.StatusNotFound, codeSchemaNotFound, "unknown schema: "+schemaKey)
		return
	}

	maxSize := s.cfg.Upload.MaxFileSize
	r.Body = http.MaxBytesReader(w, r.Body, maxSize)

	if err := r.ParseMultipartForm(maxSize); err != nil {
		writeError(w, r, http.StatusBadRequest, codeFileTooLarge, "file too large or invalid form")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, r, http.StatusBadRequest, codeFileMissing, "no file provided")
		return
	}
	defer file.Close()

	ov, err := parseOverrides(r)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, codeInvalidOverride, err.Error())
		return
	}

	// Stage the upload; the reader dispatches on file extension.
	ext := filepath.Ext(header.Filename)
	tmp, err := os.CreateTemp(s.cfg.Upload.TempDir, "upload_*"+ext)
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, codeFileStaging, "failed to stage upload")
		return
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, file); err != nil {
		tmp.Close()
		writeError(w, r, http.StatusInternalServerError, codeFileStaging, "failed to stage upload")
		return
	}
	if err := tmp.Close(); err != nil {
		writeError(w, r, http.StatusInternalServerError, codeFileStaging, "failed to stage upload")
		return
	}

	book, err := spreadsheet.ReadFile(tmp.Name())
	if err != nil {
		writeError(w, r, http.StatusBadRequest, codeFileUnreadable, "unreadable spreadsheet: "+err.Error())
		return
	}

	conv, err := s.service.Convert(schemaKey, book, ov)
	if err != nil {
		writeError(w, r, http.StatusNotFound, codeSchemaNotFound, err.Error())
		return
	}

	if r.FormValue("persist") != "false" {
		if err := s.service.Persist(conv); err != nil {
			// The conversion itself succeeded; report but don't fail.
			logging.FromContext(r.Context()).Warn("persist failed",
				"schema", schemaKey, "error", err)
		}
	}

	logging.FromContext(r.Context()).Info("conversion complete",
		"schema", schemaKey,
		"file", header.Filename,
		"sheets", conv.Stats.Sheets,
		"rows_in", conv.Stats.RowsIn,
		"rows_out", conv.Stats.RowsOut,
		"duration_ms", conv.Stats.DurationMS,
	)

	writeJSON(w, conv)
}

// parseOverrides reads the optional per-request override form values.
func parseOverrides(r *http.Request) (core.Overrides, error) {
	var ov core.Overrides

	if v := r.FormValue("headerRow"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return ov, fmt.Errorf("invalid headerRow value: %q", v)
		}
		ov.HeaderRow = &n
	}

	if v := r.FormValue("groupBySheet"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return ov, fmt.Errorf("invalid groupBySheet value: %q", v)
		}
		ov.GroupBySheet = &b
	}

	return ov, nil
}
