package model

import (
	"reflect"
	"testing"
)

func TestEnsureColumnKeepsFirstSeenOrder(t *testing.T) {
	table := NewTable("a", "b")
	table.EnsureColumn("c")
	table.EnsureColumn("a")
	table.EnsureColumn("b")

	want := []string{"a", "b", "c"}
	if !reflect.DeepEqual(table.Columns, want) {
		t.Errorf("Expected columns %v, got %v", want, table.Columns)
	}

	if !table.HasColumn("b") {
		t.Errorf("Expected table to have column b")
	}
	if table.HasColumn("d") {
		t.Errorf("Did not expect table to have column d")
	}
}

func TestAppendCountsRows(t *testing.T) {
	table := NewTable("a")
	if table.NumRows() != 0 {
		t.Errorf("Expected 0 rows, got %d", table.NumRows())
	}

	table.Append(Row{"a": "1"})
	table.Append(Row{"a": nil})
	if table.NumRows() != 2 {
		t.Errorf("Expected 2 rows, got %d", table.NumRows())
	}
}

func TestKindForFilename(t *testing.T) {
	cases := []struct {
		filename string
		want     SourceKind
	}{
		{"data.csv", KindDelimitedText},
		{"DATA.CSV", KindDelimitedText},
		{"report.xlsx", KindSpreadsheet},
		{"contract.pdf", KindDocumentText},
		{"notes.docx", KindUnknown},
		{"noextension", KindUnknown},
	}

	for _, tc := range cases {
		if got := KindForFilename(tc.filename); got != tc.want {
			t.Errorf("KindForFilename(%q) = %s, want %s", tc.filename, got, tc.want)
		}
	}
}

func TestNewFileSourceDerivesKind(t *testing.T) {
	src := NewFileSource("customers.csv", []byte("a,b\n"))
	if src.Kind != KindDelimitedText {
		t.Errorf("Expected kind %s, got %s", KindDelimitedText, src.Kind)
	}
	if src.Name != "customers.csv" {
		t.Errorf("Expected name customers.csv, got %s", src.Name)
	}
}
