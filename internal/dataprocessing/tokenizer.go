package dataprocessing

import (
	"bytes"
	"strings"

	xunicode "golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Format selects the tokenization rules of an export.
type Format int

const (
	// FormatCost is the advertising cost export. Its lines are tab
	// terminated and CRLF line breaks carry no meaning.
	FormatCost Format = iota
	// FormatRevenue is the advertising revenue export. Line breaks survive
	// inside tokens and are split out afterwards.
	FormatRevenue
)

func (f Format) String() string {
	switch f {
	case FormatCost:
		return "cost"
	case FormatRevenue:
		return "revenue"
	default:
		return "unknown"
	}
}

var (
	utf8BOM    = []byte{0xEF, 0xBB, 0xBF}
	utf16LEBOM = []byte{0xFF, 0xFE}
	utf16BEBOM = []byte{0xFE, 0xFF}
)

// decodeText converts raw export bytes to a string. UTF-16 exports are
// recognised by their byte-order mark; anything else is taken as UTF-8.
func decodeText(raw []byte) string {
	switch {
	case bytes.HasPrefix(raw, utf16LEBOM), bytes.HasPrefix(raw, utf16BEBOM):
		dec := xunicode.UTF16(xunicode.LittleEndian, xunicode.UseBOM).NewDecoder()
		out, _, err := transform.Bytes(dec, raw)
		if err == nil {
			return string(out)
		}
	case bytes.HasPrefix(raw, utf8BOM):
		return string(raw[len(utf8BOM):])
	}
	return string(raw)
}

// Tokenize splits an export into a flat token stream.
//
// Commas are removed everywhere so thousands separators do not break number
// parsing. Tabs delimit tokens and NUL characters are stripped from each one.
// For FormatCost every CRLF is dropped first, so rows run together. For
// FormatRevenue a token holding newlines is split into one token per line,
// and a trailing carriage return is trimmed from each piece. Country labels
// at the start of a revenue row therefore never end in "\r".
func Tokenize(raw []byte, format Format) []string {
	text := decodeText(raw)
	if format == FormatCost {
		text = strings.ReplaceAll(text, "\r\n", "")
	}
	text = strings.ReplaceAll(text, ",", "")

	fields := strings.Split(text, "\t")
	tokens := make([]string, 0, len(fields))
	for _, field := range fields {
		field = strings.ReplaceAll(field, "\x00", "")
		if format == FormatRevenue && strings.Contains(field, "\n") {
			for _, piece := range strings.Split(field, "\n") {
				tokens = append(tokens, strings.TrimSuffix(piece, "\r"))
			}
			continue
		}
		tokens = append(tokens, field)
	}
	return tokens
}
