// Package core provides the business logic for spreadsheet conversion.
// This package has no UI dependencies and can be used by any frontend.
package core

// Record is one materialized data row, keyed by trimmed header name.
// Values are string (cell content), float64 (coerced numeric output),
// or nil. A nil value under a present key means "cell absent at that
// position" and is distinct from a missing key.
type Record map[string]any

// Sheet is one named grid of already-evaluated display strings, as
// produced by the spreadsheet reader.
type Sheet struct {
	Name string
	Rows [][]string
}

// Workbook is an ordered collection of sheets. Sheet order matters for
// flat (ungrouped) tabularization output.
type Workbook struct {
	Sheets []Sheet
}

// FieldKind discriminates the three field-specification variants.
type FieldKind int

const (
	// FieldRename copies a same-named source field through unchanged.
	FieldRename FieldKind = iota
	// FieldMapped copies/transforms one source field (with name
	// variations) into one output field.
	FieldMapped
	// FieldComputed derives one numeric output field from one or more
	// source columns via an aggregation function.
	FieldComputed
)

// SourceColumn names one input column of a computed field, with ordered
// naming variations tried in addition to the primary name.
type SourceColumn struct {
	Name       string
	Variations []string
}

// Candidates returns the primary name followed by the variations.
func (c SourceColumn) Candidates() []string {
	return append([]string{c.Name}, c.Variations...)
}

// FormatFunc renders the accumulated source string values of a mapped
// field into the output value. It may receive more than one value when
// the field's variations name co-located source columns (for example a
// street line plus a country code). A nil result falls back to the
// field's default, then to null.
type FormatFunc func(values []string) any

// OperationFunc aggregates the grouped numeric matrix of a computed
// field into a single number. Row i holds the i-th surviving numeric
// value of each source column; columns with fewer parsed values simply
// contribute fewer elements to later rows.
type OperationFunc func(rows [][]float64) float64

// FieldSpec is one entry of a schema's column-mapping table.
// Which members apply depends on Kind; the mapper switches on Kind
// exhaustively.
type FieldSpec struct {
	Kind FieldKind

	// Source is the primary source column name (rename and mapped).
	Source string
	// Variations are alternate source names tried, in order, when the
	// primary name is absent from the record (mapped only).
	Variations []string
	// Output is the key written to the output record.
	Output string

	// ExcludeWhenNull drops the whole row when the resolved source
	// value is null (mapped only).
	ExcludeWhenNull bool
	// Numeric coerces the resolved value through the numeric cleaner;
	// a failed parse drops the row (mapped only).
	Numeric bool
	// Currency marks a numeric field as carrying currency symbols and
	// locale separators. The cleaner strips those for every numeric
	// field, so the flag is documentation for schema authors.
	Currency bool

	// Format renders the accumulated string values (mapped only).
	Format FormatFunc
	// Default substitutes for a missing or null result.
	Default any

	// Columns and Operation define a computed field.
	Columns   []SourceColumn
	Operation OperationFunc
}

// Rename builds the bare-name variant: copy the value of the
// same-named source field, output key equals source key.
func Rename(name string) FieldSpec {
	return FieldSpec{Kind: FieldRename, Source: name, Output: name}
}

// Candidates returns the ordered source-name list for a rename or
// mapped field: primary name first, then the declared variations.
func (f FieldSpec) Candidates() []string {
	return append([]string{f.Source}, f.Variations...)
}

// SchemaInfo contains display information about a schema.
type SchemaInfo struct {
	Key   string // Unique identifier: "supplier_orders"
	Group string // Document family: "Sales", "Purchasing"
	Label string // Display name: "Supplier Orders"
}

// SchemaDefinition contains everything needed to convert one document
// type: where the header row sits, whether output stays grouped by
// sheet, and the ordered column-mapping table.
type SchemaDefinition struct {
	Info         SchemaInfo
	HeaderRow    int
	GroupBySheet bool
	Fields       []FieldSpec
}

// OutputColumns lists the output keys of the schema's fields, in
// declaration order.
func (d SchemaDefinition) OutputColumns() []string {
	cols := make([]string, len(d.Fields))
	for i, f := range d.Fields {
		cols[i] = f.Output
	}
	return cols
}
