package core

// mapper.go applies a schema's ordered field specifications to
// tabularized records, producing filtered, renamed and derived output
// records.
//
// Every record is processed independently; a row either maps to one
// output record or is excluded entirely. There is no error path: an
// unparseable number or a null-required field drops the row, a missing
// source column degrades to the field's default or null.

import "strings"

// resolveOutcome is the terminal state of candidate resolution for one
// rename/mapped field on one record.
type resolveOutcome int

const (
	// outcomeUnresolved: no candidate name was present in the record.
	outcomeUnresolved resolveOutcome = iota
	// outcomeAccepted: a candidate was found and produced a value.
	outcomeAccepted
	// outcomeExcludedNull: the found value was null and the field
	// requires one (ExcludeWhenNull).
	outcomeExcludedNull
	// outcomeExcludedParse: the found value failed numeric coercion.
	outcomeExcludedParse
)

// resolution carries the result of walking a field's candidate names
// over one record.
type resolution struct {
	outcome resolveOutcome
	value   any      // accepted value (string, float64 or nil)
	strings []string // trimmed string values collected for formatting
}

// excluded reports whether the resolution drops the row.
func (r resolution) excluded() bool {
	return r.outcome == outcomeExcludedNull || r.outcome == outcomeExcludedParse
}

// MapRecords maps a flat record sequence through the field table.
// Rows resolving to exclusion are dropped; order is otherwise
// preserved.
func MapRecords(records []Record, fields []FieldSpec) []Record {
	out := make([]Record, 0, len(records))
	for _, rec := range records {
		if mapped, ok := MapRow(rec, fields); ok {
			out = append(out, mapped)
		}
	}
	return out
}

// MapGrouped maps each sheet's record sequence independently. The
// sheet key set is preserved even when every row of a sheet is
// excluded.
func MapGrouped(groups map[string][]Record, fields []FieldSpec) map[string][]Record {
	out := make(map[string][]Record, len(groups))
	for name, records := range groups {
		out[name] = MapRecords(records, fields)
	}
	return out
}

// MapRow produces the output record for one input record. The second
// return value is false when the row is excluded.
func MapRow(rec Record, fields []FieldSpec) (Record, bool) {
	out := make(Record, len(fields))
	excluded := false

	for _, field := range fields {
		switch field.Kind {
		case FieldComputed:
			// Computed fields never exclude a row.
			out[field.Output] = computeField(rec, field)
		case FieldRename, FieldMapped:
			res := resolveField(rec, field)
			if res.excluded() {
				// The row is dropped, but later fields still run so
				// their formatters see the same inputs either way.
				excluded = true
			}
			storeField(out, field, res)
		}
	}

	if excluded {
		return nil, false
	}
	return out, true
}

// resolveField walks the candidate names of a rename/mapped field.
// The first name present as a key in the record ends the search,
// whether or not its value is null: presence, not nullity, resolves
// the field. Formatter-backed fields additionally collect string
// values from the remaining candidates so multi-slot formatters (for
// example street line plus country code) see every co-located value.
func resolveField(rec Record, field FieldSpec) resolution {
	names := field.Candidates()

	foundAt := -1
	var value any
	for i, name := range names {
		if v, ok := rec[name]; ok {
			foundAt, value = i, v
			break
		}
	}
	if foundAt < 0 {
		return resolution{outcome: outcomeUnresolved}
	}

	res := resolution{outcome: outcomeAccepted, value: value}

	if field.ExcludeWhenNull && value == nil {
		res.outcome = outcomeExcludedNull
	}

	if field.Numeric {
		n, ok := ParseNumber(stringValue(value))
		if !ok {
			res.outcome = outcomeExcludedParse
			return res
		}
		if res.outcome == outcomeAccepted {
			res.value = n
		}
		return res
	}

	if s, ok := value.(string); ok {
		res.strings = append(res.strings, strings.TrimSpace(s))
	}
	if field.Format != nil {
		for _, name := range names[foundAt+1:] {
			if v, ok := rec[name]; ok {
				if s, ok := v.(string); ok {
					res.strings = append(res.strings, strings.TrimSpace(s))
				}
			}
		}
	}
	return res
}

// storeField writes the resolved value (or the fallback chain) under
// the field's output key.
func storeField(out Record, field FieldSpec, res resolution) {
	if field.Numeric {
		// Numeric values are stored by resolveField's accepted path.
		switch res.outcome {
		case outcomeAccepted:
			out[field.Output] = res.value
		case outcomeUnresolved:
			if field.Default != nil {
				out[field.Output] = field.Default
			}
		}
		return
	}

	if field.Format != nil {
		values := res.strings
		if len(values) == 0 {
			values = []string{""}
		}
		if v := field.Format(values); v != nil {
			out[field.Output] = v
		} else if field.Default != nil {
			out[field.Output] = field.Default
		} else {
			out[field.Output] = nil
		}
		return
	}

	if n := len(res.strings); n > 0 {
		out[field.Output] = res.strings[n-1]
		return
	}
	if field.Default != nil {
		out[field.Output] = field.Default
		return
	}
	out[field.Output] = nil
}

// computeField builds the grouped numeric matrix for a computed field
// and applies its operation. With no valid numeric inputs the result
// is the field default, or 0 when no default is declared. A computed
// result of 0 from the operation itself is a valid value and is never
// replaced by the default.
func computeField(rec Record, field FieldSpec) any {
	columns := make([][]float64, 0, len(field.Columns))
	for _, col := range field.Columns {
		var values []float64
		for _, name := range col.Candidates() {
			v, ok := rec[name]
			if !ok || v == nil {
				continue
			}
			if n, ok := ParseNumber(stringValue(v)); ok {
				values = append(values, n)
			}
		}
		columns = append(columns, values)
	}

	rows := groupRows(columns)
	if len(rows) == 0 {
		if field.Default != nil {
			return field.Default
		}
		return float64(0)
	}
	if field.Operation == nil {
		return float64(0)
	}
	return field.Operation(rows)
}

// groupRows re-groups per-column numeric lists into rows by positional
// index: row i takes the i-th value of every column that still has
// one. Columns of different lengths contribute fewer elements to later
// rows.
func groupRows(columns [][]float64) [][]float64 {
	depth := 0
	for _, col := range columns {
		if len(col) > depth {
			depth = len(col)
		}
	}

	rows := make([][]float64, 0, depth)
	for i := 0; i < depth; i++ {
		var row []float64
		for _, col := range columns {
			if i < len(col) {
				row = append(row, col[i])
			}
		}
		rows = append(rows, row)
	}
	return rows
}

// stringValue renders a record value for numeric parsing. Only string
// cells can carry a number at this stage; anything else parses as
// invalid.
func stringValue(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}
