package parser

import (
	"reflect"
	"testing"

	"github.com/xuri/excelize/v2"

	"integrity-gateway/internal/model"
)

// buildWorkbook creates an in-memory xlsx payload for parser tests.
func buildWorkbook(t *testing.T, set func(f *excelize.File)) []byte {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()
	set(f)

	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("Failed to build workbook: %v", err)
	}
	return buf.Bytes()
}

func TestSpreadsheetParseNativeTypes(t *testing.T) {
	payload := buildWorkbook(t, func(f *excelize.File) {
		f.SetCellValue("Sheet1", "A1", "name")
		f.SetCellValue("Sheet1", "B1", "amount")
		f.SetCellValue("Sheet1", "C1", "active")
		f.SetCellValue("Sheet1", "A2", "alice")
		f.SetCellValue("Sheet1", "B2", 42.5)
		f.SetCellBool("Sheet1", "C2", true)
		f.SetCellValue("Sheet1", "A3", "bob")
		// B3 left empty
		f.SetCellBool("Sheet1", "C3", false)
	})

	table, err := NewSpreadsheetParser().Parse(payload, "book.xlsx")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if !reflect.DeepEqual(table.Columns, []string{"name", "amount", "active"}) {
		t.Errorf("Unexpected columns: %v", table.Columns)
	}
	if table.NumRows() != 2 {
		t.Fatalf("Expected 2 rows, got %d", table.NumRows())
	}

	if table.Rows[0]["name"] != "alice" {
		t.Errorf("Expected name alice, got %v", table.Rows[0]["name"])
	}
	if table.Rows[0]["amount"] != 42.5 {
		t.Errorf("Expected amount 42.5 as float64, got %v (%T)", table.Rows[0]["amount"], table.Rows[0]["amount"])
	}
	if table.Rows[0]["active"] != true {
		t.Errorf("Expected active true as bool, got %v (%T)", table.Rows[0]["active"], table.Rows[0]["active"])
	}
	if table.Rows[1]["amount"] != nil {
		t.Errorf("Expected empty cell to be null, got %v", table.Rows[1]["amount"])
	}
	if table.Rows[1]["active"] != false {
		t.Errorf("Expected active false, got %v", table.Rows[1]["active"])
	}
}

func TestSpreadsheetParseBlankHeaderCellsAreNamed(t *testing.T) {
	payload := buildWorkbook(t, func(f *excelize.File) {
		f.SetCellValue("Sheet1", "A1", "a")
		f.SetCellValue("Sheet1", "C1", "c")
		f.SetCellValue("Sheet1", "A2", "x")
		f.SetCellValue("Sheet1", "B2", "y")
		f.SetCellValue("Sheet1", "C2", "z")
	})

	table, err := NewSpreadsheetParser().Parse(payload, "book.xlsx")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if !reflect.DeepEqual(table.Columns, []string{"a", "Column 2", "c"}) {
		t.Errorf("Unexpected columns: %v", table.Columns)
	}
}

func TestSpreadsheetParseCorruptPayloadIsFormatError(t *testing.T) {
	_, err := NewSpreadsheetParser().Parse([]byte("not a workbook"), "broken.xlsx")
	fe, ok := AsFormatError(err)
	if !ok {
		t.Fatalf("Expected FormatError, got %v", err)
	}
	if fe.Kind != model.KindSpreadsheet {
		t.Errorf("Expected kind %s, got %s", model.KindSpreadsheet, fe.Kind)
	}
}
