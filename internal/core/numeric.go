package core

// numeric.go provides the numeric/currency cleaner for cell values.
//
// Spreadsheet exports carry numbers in whatever shape the authoring
// locale produced:
//   - Currency symbols and surrounding text ("€ 1.234,56", "EUR 10")
//   - European decimal commas ("10,50")
//   - Grouping separators in either convention ("1.234,56", "1,234.56")
//
// ParseNumber normalizes all of these to a float64. Anything that does
// not survive cleaning is reported as invalid, never as an error: the
// mapper turns invalid numbers into row exclusions or filters them out
// of computed-field candidate pools.

import (
	"math"
	"strconv"
	"strings"
)

// ParseNumber cleans a raw cell value and parses it as a float.
// The second return value is false when the input does not contain a
// usable number.
//
// Cleaning keeps only digits, '.', ',' and '-'. When both separators
// appear, the one occurring last is the decimal separator and the other
// is grouping; with only a comma, the first comma becomes the decimal
// point. NaN and infinities are invalid.
func ParseNumber(raw string) (float64, bool) {
	var b strings.Builder
	for _, r := range raw {
		if (r >= '0' && r <= '9') || r == '.' || r == ',' || r == '-' {
			b.WriteRune(r)
		}
	}
	s := strings.TrimSpace(b.String())
	if s == "" {
		return 0, false
	}

	lastDot := strings.LastIndexByte(s, '.')
	lastComma := strings.LastIndexByte(s, ',')
	switch {
	case lastDot >= 0 && lastComma >= 0 && lastComma > lastDot:
		// European style: dots group, comma is decimal.
		s = strings.ReplaceAll(s, ".", "")
		s = strings.Replace(s, ",", ".", 1)
	case lastDot >= 0 && lastComma >= 0:
		// US style: commas group, dot is decimal.
		s = strings.ReplaceAll(s, ",", "")
	case lastComma >= 0:
		s = strings.Replace(s, ",", ".", 1)
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// CleanHeader normalizes one header cell into a record key.
// Trims whitespace and strips the Excel text-formula wrapper (="...")
// that spreadsheet exports sometimes leave on header cells.
func CleanHeader(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, `="`) && strings.HasSuffix(s, `"`) && len(s) > 3 {
		s = s[2 : len(s)-1]
		s = strings.TrimSpace(s)
	}
	return s
}
