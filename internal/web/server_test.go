package web

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sheetmap/sheetmap/internal/config"
	"github.com/sheetmap/sheetmap/internal/core"
	_ "github.com/sheetmap/sheetmap/internal/core/schemas"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()

	cfg := &config.Config{}
	cfg.Server.RequestTimeout = 30 * time.Second
	cfg.Upload.MaxFileSize = 1 << 20
	cfg.Output.Dir = t.TempDir()
	cfg.Rate.Enabled = false

	return NewServer(core.NewService(cfg.Output.Dir), cfg)
}

// multipartBody builds a multipart form with a single file field plus
// extra form values, returning the body and content type.
func multipartBody(t *testing.T, filename, content string, fields map[string]string) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	fw, err := mw.CreateFormFile("file", filename)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := fw.Write([]byte(content)); err != nil {
		t.Fatalf("write form file: %v", err)
	}

	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			t.Fatalf("write field %s: %v", k, err)
		}
	}

	if err := mw.Close(); err != nil {
		t.Fatalf("close multipart writer: %v", err)
	}
	return &buf, mw.FormDataContentType()
}

func TestHealthz(t *testing.T) {
	srv := newTestServer(t)

	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("status field = %v, want ok", body["status"])
	}
	if n, _ := body["schemas"].(float64); n < 1 {
		t.Errorf("schemas = %v, want at least 1 registered", body["schemas"])
	}
}

func TestListSchemas(t *testing.T) {
	srv := newTestServer(t)

	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/schemas", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var schemas []schemaSummary
	if err := json.Unmarshal(rec.Body.Bytes(), &schemas); err != nil {
		t.Fatalf("decode body: %v", err)
	}

	found := false
	for _, s := range schemas {
		if s.Key == "invoice_lines" {
			found = true
			if len(s.OutputColumns) == 0 {
				t.Error("invoice_lines has no output columns")
			}
		}
	}
	if !found {
		t.Error("invoice_lines schema not listed")
	}
}

func TestGetSchema_NotFound(t *testing.T) {
	srv := newTestServer(t)

	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/schemas/nope", nil))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestConvert_CSV(t *testing.T) {
	srv := newTestServer(t)

	csv := "Description,Price,SKU\nWidget,\"€ 10,50\",A-1\n"
	body, contentType := multipartBody(t, "lines.csv", csv, map[string]string{
		"persist": "false",
	})

	req := httptest.NewRequest(http.MethodPost, "/api/convert/invoice_lines", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body: %s", rec.Code, rec.Body.String())
	}

	var conv struct {
		Schema  string           `json:"schema"`
		Grouped bool             `json:"grouped"`
		Result  []map[string]any `json:"result"`
		Stats   struct {
			RowsIn  int `json:"rowsIn"`
			RowsOut int `json:"rowsOut"`
		} `json:"stats"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &conv); err != nil {
		t.Fatalf("decode body: %v", err)
	}

	if conv.Schema != "invoice_lines" || conv.Grouped {
		t.Errorf("got schema=%q grouped=%v, want invoice_lines flat", conv.Schema, conv.Grouped)
	}
	if conv.Stats.RowsIn != 1 || conv.Stats.RowsOut != 1 {
		t.Errorf("stats = %+v, want 1 row in and out", conv.Stats)
	}
	if len(conv.Result) != 1 {
		t.Fatalf("got %d records, want 1", len(conv.Result))
	}

	rec0 := conv.Result[0]
	if rec0["description"] != "Widget" {
		t.Errorf("description = %v, want Widget", rec0["description"])
	}
	if rec0["price"] != 10.5 {
		t.Errorf("price = %v, want 10.5", rec0["price"])
	}
	if rec0["SKU"] != "A-1" {
		t.Errorf("SKU = %v, want A-1", rec0["SKU"])
	}
}

func TestConvert_UnknownSchema(t *testing.T) {
	srv := newTestServer(t)

	body, contentType := multipartBody(t, "x.csv", "A\n1\n", nil)
	req := httptest.NewRequest(http.MethodPost, "/api/convert/bogus", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}

	var resp errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	if resp.Code != codeSchemaNotFound {
		t.Errorf("code = %q, want %q", resp.Code, codeSchemaNotFound)
	}
}

func TestConvert_InvalidOverride(t *testing.T) {
	srv := newTestServer(t)

	body, contentType := multipartBody(t, "x.csv", "A\n1\n", map[string]string{
		"headerRow": "minus one",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/convert/invoice_lines", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestConvert_NoFile(t *testing.T) {
	srv := newTestServer(t)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/convert/invoice_lines", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}
