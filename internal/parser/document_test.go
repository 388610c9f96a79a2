package parser

import (
	"testing"

	"integrity-gateway/internal/model"
)

func TestWrapExtractedTextShape(t *testing.T) {
	table := WrapExtractedText("page1\npage2")

	if table.NumRows() != 1 {
		t.Fatalf("Expected 1 row, got %d", table.NumRows())
	}
	if table.NumColumns() != 1 {
		t.Fatalf("Expected 1 column, got %d", table.NumColumns())
	}
	if table.Columns[0] != ExtractedTextColumn {
		t.Errorf("Expected column %q, got %q", ExtractedTextColumn, table.Columns[0])
	}
	if table.Rows[0][ExtractedTextColumn] != "page1\npage2" {
		t.Errorf("Unexpected extracted text: %v", table.Rows[0][ExtractedTextColumn])
	}
}

func TestDocumentParseCorruptPayloadIsFormatError(t *testing.T) {
	_, err := NewDocumentTextParser().Parse([]byte("definitely not a pdf"), "broken.pdf")
	fe, ok := AsFormatError(err)
	if !ok {
		t.Fatalf("Expected FormatError, got %v", err)
	}
	if fe.Kind != model.KindDocumentText {
		t.Errorf("Expected kind %s, got %s", model.KindDocumentText, fe.Kind)
	}
	if fe.Source != "broken.pdf" {
		t.Errorf("Expected source broken.pdf, got %s", fe.Source)
	}
}
