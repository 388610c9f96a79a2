package parser

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"integrity-gateway/internal/model"
)

// SpreadsheetParser parses xlsx workbooks. Only the first worksheet is read;
// its first row is the header. Cell values keep their native scalar type:
// numbers become float64, booleans become bool, empty cells become nulls and
// everything else stays a string.
type SpreadsheetParser struct{}

// NewSpreadsheetParser creates a spreadsheet parser.
func NewSpreadsheetParser() *SpreadsheetParser {
	return &SpreadsheetParser{}
}

// Kind returns the source kind this parser handles
func (p *SpreadsheetParser) Kind() model.SourceKind {
	return model.KindSpreadsheet
}

// Parse reads the first worksheet of the workbook into a table.
func (p *SpreadsheetParser) Parse(payload []byte, name string) (*model.Table, error) {
	f, err := excelize.OpenReader(bytes.NewReader(payload))
	if err != nil {
		return nil, NewFormatError(model.KindSpreadsheet, name, "corrupt spreadsheet", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return model.NewTable(), nil
	}
	sheet := sheets[0]

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, NewFormatError(model.KindSpreadsheet, name, "failed to read worksheet", err)
	}
	if len(rows) == 0 {
		return model.NewTable(), nil
	}

	columns := headerColumns(rows[0])
	table := model.NewTable(columns...)

	for i := 1; i < len(rows); i++ {
		row := make(model.Row, len(columns))
		for j, column := range columns {
			axis, err := excelize.CoordinatesToCellName(j+1, i+1)
			if err != nil {
				row[column] = nil
				continue
			}
			row[column] = p.cellValue(f, sheet, axis)
		}
		table.Append(row)
	}

	return table, nil
}

// cellValue reads one cell and converts it to the matching Go scalar.
func (p *SpreadsheetParser) cellValue(f *excelize.File, sheet, axis string) interface{} {
	raw, err := f.GetCellValue(sheet, axis, excelize.Options{RawCellValue: true})
	if err != nil || raw == "" {
		return nil
	}

	cellType, err := f.GetCellType(sheet, axis)
	if err != nil {
		return raw
	}

	switch cellType {
	case excelize.CellTypeBool:
		return raw == "1" || strings.EqualFold(raw, "true")
	case excelize.CellTypeNumber, excelize.CellTypeUnset:
		// Plain numeric cells carry no explicit type attribute in xlsx.
		if n, err := strconv.ParseFloat(raw, 64); err == nil {
			return n
		}
		return raw
	default:
		return raw
	}
}

// headerColumns builds column names from the header row, naming blank header
// cells by position.
func headerColumns(header []string) []string {
	columns := make([]string, len(header))
	for i, name := range header {
		if name == "" {
			name = fmt.Sprintf("Column %d", i+1)
		}
		columns[i] = name
	}
	return columns
}
