package dataprocessing

import (
	"strings"
)

// InferRowWidth returns the number of columns per row, taken from the tab
// separated fields of the first line.
//
// Cost exports end every line with a tab. Once CRLFs are collapsed that
// trailing slot is gone, so the cost width is one less than the field count.
func InferRowWidth(raw []byte, format Format) int {
	text := decodeText(raw)
	first := text
	if i := strings.IndexByte(text, '\n'); i >= 0 {
		first = text[:i]
	}

	width := strings.Count(first, "\t") + 1
	if format == FormatCost {
		width--
	}
	if width < 1 {
		width = 1
	}
	return width
}

// Chunk groups tokens into rows of width tokens. The last row is shorter when
// the token count is not a multiple of width.
func Chunk(tokens []string, width int) [][]string {
	if width < 1 || len(tokens) == 0 {
		return nil
	}

	rows := make([][]string, 0, (len(tokens)+width-1)/width)
	for i := 0; i < len(tokens); i += width {
		end := min(i+width, len(tokens))
		rows = append(rows, tokens[i:end:end])
	}
	return rows
}

// Table is a reconstructed export: the first row becomes the header.
type Table struct {
	Header []string
	Rows   [][]string
	Width  int
}

// NewTable shifts the first row off as the header.
func NewTable(rows [][]string, width int) Table {
	if len(rows) == 0 {
		return Table{Width: width}
	}
	return Table{Header: rows[0], Rows: rows[1:], Width: width}
}

// BuildTable runs tokenization and row reconstruction for one export.
func BuildTable(raw []byte, format Format) Table {
	width := InferRowWidth(raw, format)
	return NewTable(Chunk(Tokenize(raw, format), width), width)
}

// Cell returns row[idx], or "" when the row is too short.
func Cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}
