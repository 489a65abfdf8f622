package spreadsheet

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"
)

// writeTestWorkbook builds a two-sheet xlsx file on disk and returns
// its path.
func writeTestWorkbook(t *testing.T) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	// The default sheet becomes "Orders".
	if err := f.SetSheetName("Sheet1", "Orders"); err != nil {
		t.Fatalf("rename sheet: %v", err)
	}
	if err := f.SetSheetRow("Orders", "A1", &[]any{"Name", "Price"}); err != nil {
		t.Fatalf("set header: %v", err)
	}
	if err := f.SetSheetRow("Orders", "A2", &[]any{"Widget", "10"}); err != nil {
		t.Fatalf("set row: %v", err)
	}

	if _, err := f.NewSheet("Returns"); err != nil {
		t.Fatalf("new sheet: %v", err)
	}
	if err := f.SetSheetRow("Returns", "A1", &[]any{"Name"}); err != nil {
		t.Fatalf("set header: %v", err)
	}
	if err := f.SetSheetRow("Returns", "A2", &[]any{"Gadget"}); err != nil {
		t.Fatalf("set row: %v", err)
	}

	path := filepath.Join(t.TempDir(), "test.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("save workbook: %v", err)
	}
	return path
}

func TestReadFile_Excel(t *testing.T) {
	path := writeTestWorkbook(t)

	book, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}

	if len(book.Sheets) != 2 {
		t.Fatalf("got %d sheets, want 2", len(book.Sheets))
	}
	if book.Sheets[0].Name != "Orders" || book.Sheets[1].Name != "Returns" {
		t.Errorf("sheet order = %q, %q; want Orders, Returns", book.Sheets[0].Name, book.Sheets[1].Name)
	}

	orders := book.Sheets[0].Rows
	if len(orders) != 2 {
		t.Fatalf("Orders has %d rows, want 2", len(orders))
	}
	if orders[0][0] != "Name" || orders[1][1] != "10" {
		t.Errorf("Orders cells = %v, want header + data row", orders)
	}
}

func TestReadFile_CSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lines.csv")
	data := "Name,Price\nWidget,10\nGadget,20\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write csv: %v", err)
	}

	book, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}

	if len(book.Sheets) != 1 {
		t.Fatalf("got %d sheets, want 1", len(book.Sheets))
	}
	if book.Sheets[0].Name != "lines" {
		t.Errorf("sheet name = %q, want file base name", book.Sheets[0].Name)
	}
	if len(book.Sheets[0].Rows) != 3 {
		t.Errorf("got %d rows, want 3", len(book.Sheets[0].Rows))
	}
}

func TestReadFile_RaggedCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ragged.csv")
	data := "Name,Price,Qty\nWidget,10\nGadget\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write csv: %v", err)
	}

	book, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile must accept rows of varying width: %v", err)
	}
	if got := len(book.Sheets[0].Rows); got != 3 {
		t.Errorf("got %d rows, want 3", got)
	}
}

func TestReadFile_UnsupportedExtension(t *testing.T) {
	if _, err := ReadFile("upload.pdf"); err == nil {
		t.Fatal("expected error for unsupported extension")
	}
}
