package dataprocessing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name   string
		raw    string
		format Format
		want   []string
	}{
		{
			name:   "cost collapses CRLF",
			raw:    "A\tB\t\r\nx\t1\t\r\n",
			format: FormatCost,
			want:   []string{"A", "B", "x", "1", ""},
		},
		{
			name:   "thousands separators removed",
			raw:    "India\t1,234.50\t",
			format: FormatCost,
			want:   []string{"India", "1234.50", ""},
		},
		{
			name:   "NUL characters stripped",
			raw:    "I\x00n\x00d\x00i\x00a\x00\t1\x000\x00",
			format: FormatCost,
			want:   []string{"India", "10"},
		},
		{
			name:   "revenue splits newlines inside tokens",
			raw:    "Country\tEarn\r\nIndia\t10\r\n",
			format: FormatRevenue,
			want:   []string{"Country", "Earn", "India", "10", ""},
		},
		{
			name:   "revenue trims carriage return only at line ends",
			raw:    "Earn\r\nIndia\r\n\tUS\rx",
			format: FormatRevenue,
			want:   []string{"Earn", "India", "", "US\rx"},
		},
		{
			name:   "revenue keeps tokens without newline",
			raw:    "a\tb\tc",
			format: FormatRevenue,
			want:   []string{"a", "b", "c"},
		},
		{
			name:   "utf8 bom dropped",
			raw:    "\xEF\xBB\xBFCountry\tCost",
			format: FormatRevenue,
			want:   []string{"Country", "Cost"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Tokenize([]byte(tt.raw), tt.format))
		})
	}
}

func TestTokenize_UTF16WithBOM(t *testing.T) {
	raw := utf16LE("Country\tEarn\r\nUS\t5\r\n")

	tokens := Tokenize(raw, FormatRevenue)

	assert.Equal(t, []string{"Country", "Earn", "US", "5", ""}, tokens)
}

func TestTokenize_NoNULInOutput(t *testing.T) {
	raw := []byte("a\x00\tb\x00\x00\r\n\x00c")
	for _, format := range []Format{FormatCost, FormatRevenue} {
		for _, tok := range Tokenize(raw, format) {
			assert.NotContains(t, tok, "\x00", "format %s", format)
		}
	}
}

func TestFormat_String(t *testing.T) {
	assert.Equal(t, "cost", FormatCost.String())
	assert.Equal(t, "revenue", FormatRevenue.String())
	assert.Equal(t, "unknown", Format(9).String())
}
