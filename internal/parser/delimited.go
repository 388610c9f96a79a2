package parser

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"unicode/utf8"

	"integrity-gateway/internal/model"
)

// DelimitedTextParser parses delimiter-separated text. The first line is the
// header and defines the column order. Rows shorter than the header are
// padded with nulls; rows longer than the header are a format error. Empty
// fields are treated as nulls so they count against completeness.
type DelimitedTextParser struct {
	// Delimiter is the field separator. Zero value means comma.
	Delimiter rune
}

// NewDelimitedTextParser creates a comma-delimited text parser.
func NewDelimitedTextParser() *DelimitedTextParser {
	return &DelimitedTextParser{Delimiter: ','}
}

// Kind returns the source kind this parser handles
func (p *DelimitedTextParser) Kind() model.SourceKind {
	return model.KindDelimitedText
}

// Parse decodes payload as UTF-8 delimited text and returns one row per
// non-header line. All cell values are strings or nulls.
func (p *DelimitedTextParser) Parse(payload []byte, name string) (*model.Table, error) {
	if !utf8.Valid(payload) {
		return nil, NewFormatError(model.KindDelimitedText, name, "payload is not valid UTF-8", nil)
	}

	reader := csv.NewReader(bytes.NewReader(payload))
	reader.Comma = p.delimiter()
	// Ragged rows are handled below; short rows pad with nulls, long rows fail.
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, NewFormatError(model.KindDelimitedText, name, "malformed delimited text", err)
	}
	if len(records) == 0 {
		return model.NewTable(), nil
	}

	header := records[0]
	table := model.NewTable(header...)

	for i, record := range records[1:] {
		if len(record) > len(header) {
			reason := fmt.Sprintf("row %d has %d fields, header has %d", i+2, len(record), len(header))
			return nil, NewFormatError(model.KindDelimitedText, name, reason, nil)
		}
		row := make(model.Row, len(header))
		for j, column := range header {
			if j < len(record) && record[j] != "" {
				row[column] = record[j]
			} else {
				row[column] = nil
			}
		}
		table.Append(row)
	}

	return table, nil
}

func (p *DelimitedTextParser) delimiter() rune {
	if p.Delimiter == 0 {
		return ','
	}
	return p.Delimiter
}
