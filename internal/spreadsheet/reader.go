// Package spreadsheet reads uploaded files into workbooks of display
// strings.
//
// The conversion core never touches file formats: it consumes a
// Workbook of sheet-name → grid-of-strings, with formulas already
// evaluated to their display values. This package is the collaborator
// that honors that contract, backed by excelize for Excel files and
// encoding/csv for CSV files.
package spreadsheet

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sheetmap/sheetmap/internal/core"
	"github.com/xuri/excelize/v2"
)

// ReadFile loads a spreadsheet from disk. Supported extensions are
// .xlsx, .xlsm and .csv; a CSV becomes a single-sheet workbook named
// after the file.
func ReadFile(path string) (*core.Workbook, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return readExcel(path)
	case ".csv":
		return readCSV(path)
	default:
		return nil, fmt.Errorf("unsupported file type: %s", filepath.Ext(path))
	}
}

// readExcel loads every sheet of an Excel workbook in workbook order.
// excelize.GetRows returns evaluated display strings, which is exactly
// the cell contract the core expects.
func readExcel(path string) (*core.Workbook, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	book := &core.Workbook{}
	for _, name := range f.GetSheetList() {
		rows, err := f.GetRows(name)
		if err != nil {
			return nil, fmt.Errorf("read sheet %q: %w", name, err)
		}
		book.Sheets = append(book.Sheets, core.Sheet{Name: name, Rows: rows})
	}
	return book, nil
}

// readCSV loads a CSV file as a one-sheet workbook. Rows may have
// varying field counts; the tabularizer nil-pads short rows, so no
// width validation happens here.
func readCSV(path string) (*core.Workbook, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return &core.Workbook{Sheets: []core.Sheet{{Name: name, Rows: rows}}}, nil
}
