// Package core provides the business logic for spreadsheet conversion.
//
// This package is the heart of the converter, containing all domain
// logic independent of any transport layer. It can be used by web
// handlers, CLI tools, or tests without modification.
//
// # Architecture
//
// The package is organized around two stages and their configuration:
//
//   - Tabularization: a raw sheet grid plus a header-row index becomes
//     an ordered sequence of keyed records ([TabulateSheet],
//     [TabulateGrouped], [TabulateFlat]).
//   - Column mapping: an ordered field-specification table reshapes
//     each record into the output schema ([MapRecords], [MapGrouped]),
//     renaming fields, resolving naming variations, coercing numbers,
//     deriving computed values and dropping excluded rows.
//   - Schema registry: document types are registered at init time via
//     [Register]; each [SchemaDefinition] carries the header-row
//     index, the grouping mode and the field table.
//   - Service: [Service.Convert] runs both stages and
//     [Service.Persist] writes the JSON result to disk.
//
// # Schema Registry
//
// Schemas are registered at init time:
//
//	core.Register(core.SchemaDefinition{
//	    Info:   core.SchemaInfo{Key: "invoice_lines", Group: "Sales", Label: "Invoice Lines"},
//	    Fields: []core.FieldSpec{
//	        {Kind: core.FieldMapped, Source: "Name", Output: "description", ExcludeWhenNull: true},
//	        {Kind: core.FieldMapped, Source: "Price", Output: "price", Numeric: true, Currency: true},
//	    },
//	})
//
// # Error Handling
//
// The two stages have no error path. Unparseable numbers are filtered
// from computed-field candidate pools or drop the row for mapped
// numeric fields; missing source columns degrade to defaults or null.
// Each row's outcome is independent, so one malformed row cannot
// affect the rest of the batch.
package core
