package core

// tabulate.go turns raw sheet grids into keyed records.
//
// One caller-designated row is the header; its trimmed cells become the
// record keys for every later row. Rows above the header are discarded,
// they are typically titles or print banners. Tabularization never
// fails: malformed input degrades to nil-filled fields.

// TabulateSheet converts a single grid into records using the row at
// headerRow as the header. Rows with an index at or below headerRow are
// not emitted. A cell index beyond a row's length yields nil for that
// key. Duplicate header keys are not deduplicated; later columns
// overwrite earlier ones sharing a key (last write wins).
func TabulateSheet(rows [][]string, headerRow int) []Record {
	if headerRow < 0 || headerRow >= len(rows) {
		return []Record{}
	}

	header := make([]string, len(rows[headerRow]))
	for i, cell := range rows[headerRow] {
		header[i] = CleanHeader(cell)
	}

	records := make([]Record, 0, len(rows)-headerRow-1)
	for _, row := range rows[headerRow+1:] {
		rec := make(Record, len(header))
		for i, key := range header {
			if i < len(row) {
				rec[key] = row[i]
			} else {
				rec[key] = nil
			}
		}
		records = append(records, rec)
	}
	return records
}

// TabulateGrouped tabularizes every sheet independently and keeps the
// results keyed by sheet name. A sheet with no data rows maps to an
// empty slice, the key is preserved.
func TabulateGrouped(book *Workbook, headerRow int) map[string][]Record {
	out := make(map[string][]Record, len(book.Sheets))
	for _, sheet := range book.Sheets {
		out[sheet.Name] = TabulateSheet(sheet.Rows, headerRow)
	}
	return out
}

// TabulateFlat tabularizes every sheet and concatenates the records
// into one sequence, iterating sheets in workbook order and preserving
// row order within each sheet.
func TabulateFlat(book *Workbook, headerRow int) []Record {
	var out []Record
	for _, sheet := range book.Sheets {
		out = append(out, TabulateSheet(sheet.Rows, headerRow)...)
	}
	if out == nil {
		out = []Record{}
	}
	return out
}
