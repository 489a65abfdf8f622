package core

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// Service is the main entry point for conversions. It holds no state
// beyond the output directory for persisted results; every conversion
// is an independent, synchronous pass over its inputs.
type Service struct {
	outputDir string
}

// NewService creates a Service that persists conversion results under
// outputDir. The directory is created on first use.
func NewService(outputDir string) *Service {
	return &Service{outputDir: outputDir}
}

// Overrides carries per-request deviations from a schema's defaults.
// Nil members leave the schema's own setting in effect.
type Overrides struct {
	HeaderRow    *int
	GroupBySheet *bool
}

// ConversionStats summarizes one conversion for logging and the API
// response.
type ConversionStats struct {
	Schema      string        `json:"schema"`
	Sheets      int           `json:"sheets"`
	RowsIn      int           `json:"rowsIn"`
	RowsOut     int           `json:"rowsOut"`
	RowsDropped int           `json:"rowsDropped"`
	Duration    time.Duration `json:"-"`
	DurationMS  int64         `json:"durationMs"`
	OutputPath  string        `json:"outputPath,omitempty"`
}

// Conversion is the result of one Convert call. Result is either
// []Record (flat) or map[string][]Record (grouped by sheet), matching
// the Grouped flag.
type Conversion struct {
	Schema  string          `json:"schema"`
	Grouped bool            `json:"grouped"`
	Result  any             `json:"result"`
	Stats   ConversionStats `json:"stats"`
}

// Convert tabularizes the workbook and maps it through the named
// schema. The only error is an unknown schema key; data anomalies
// degrade to dropped rows or defaults inside the mapper.
func (s *Service) Convert(schemaKey string, book *Workbook, ov Overrides) (*Conversion, error) {
	def, ok := Get(schemaKey)
	if !ok {
		return nil, fmt.Errorf("unknown schema: %s", schemaKey)
	}

	headerRow := def.HeaderRow
	if ov.HeaderRow != nil {
		headerRow = *ov.HeaderRow
	}
	grouped := def.GroupBySheet
	if ov.GroupBySheet != nil {
		grouped = *ov.GroupBySheet
	}

	start := time.Now()
	stats := ConversionStats{Schema: schemaKey, Sheets: len(book.Sheets)}

	var result any
	if grouped {
		groups := TabulateGrouped(book, headerRow)
		for _, records := range groups {
			stats.RowsIn += len(records)
		}
		mapped := MapGrouped(groups, def.Fields)
		for _, records := range mapped {
			stats.RowsOut += len(records)
		}
		result = mapped
	} else {
		records := TabulateFlat(book, headerRow)
		stats.RowsIn = len(records)
		mapped := MapRecords(records, def.Fields)
		stats.RowsOut = len(mapped)
		result = mapped
	}

	stats.RowsDropped = stats.RowsIn - stats.RowsOut
	stats.Duration = time.Since(start)
	stats.DurationMS = stats.Duration.Milliseconds()

	return &Conversion{
		Schema:  schemaKey,
		Grouped: grouped,
		Result:  result,
		Stats:   stats,
	}, nil
}

// Persist writes the conversion result to a uniquely named JSON file
// in the service's output directory and records the path in the
// stats. Persistence failure does not invalidate the conversion; the
// caller still has the in-memory result.
func (s *Service) Persist(conv *Conversion) error {
	if err := os.MkdirAll(s.outputDir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	name := fmt.Sprintf("%s_%s.json", conv.Schema, uuid.NewString())
	path := filepath.Join(s.outputDir, name)

	data, err := json.MarshalIndent(conv.Result, "", "  ")
	if err != nil {
		return fmt.Errorf("encode result: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write result: %w", err)
	}

	conv.Stats.OutputPath = path
	slog.Debug("conversion persisted", "schema", conv.Schema, "path", path)
	return nil
}
