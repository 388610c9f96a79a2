package parser

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"

	"integrity-gateway/internal/model"
)

// ExtractedTextColumn is the single column name of a document-text table.
const ExtractedTextColumn = "Extracted Text"

// DocumentTextParser extracts the full text of a PDF document, page by page,
// and wraps it as a single-row, single-column table. Free text has no tabular
// structure, so no rows or columns from the source document are reconstructed.
type DocumentTextParser struct{}

// NewDocumentTextParser creates a document-text parser.
func NewDocumentTextParser() *DocumentTextParser {
	return &DocumentTextParser{}
}

// Kind returns the source kind this parser handles
func (p *DocumentTextParser) Kind() model.SourceKind {
	return model.KindDocumentText
}

// Parse extracts all page texts, joined by a newline separator.
func (p *DocumentTextParser) Parse(payload []byte, name string) (table *model.Table, err error) {
	// The pdf library panics on some malformed files; fold those into the
	// same skip-and-continue path as ordinary parse failures.
	defer func() {
		if r := recover(); r != nil {
			table = nil
			err = NewFormatError(model.KindDocumentText, name, fmt.Sprintf("document parsing panicked: %v", r), nil)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(payload), int64(len(payload)))
	if err != nil {
		return nil, NewFormatError(model.KindDocumentText, name, "corrupt document", err)
	}

	pages := make([]string, 0, reader.NumPage())
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			return nil, NewFormatError(model.KindDocumentText, name, fmt.Sprintf("failed to extract text from page %d", i), err)
		}
		pages = append(pages, text)
	}

	return WrapExtractedText(strings.Join(pages, "\n")), nil
}

// WrapExtractedText wraps already-extracted document text in the degenerate
// single-row, single-column table shape.
func WrapExtractedText(text string) *model.Table {
	table := model.NewTable(ExtractedTextColumn)
	table.Append(model.Row{ExtractedTextColumn: text})
	return table
}
