package schemas

// formatters.go provides the format and normalization functions used by
// the schema tables.
//
// Formatters receive the trimmed string values collected for a field:
// the resolved source value first, followed by any co-located variation
// values (for example a country code next to a street line). They
// return the output value, or nil to fall back to the field's default.

import (
	"strings"
	"time"
	"unicode"
)

// countryCodes maps common country names to ISO 3166-1 alpha-2 codes.
// Exports from regional ERP systems spell countries out; downstream
// consumers want the code.
var countryCodes = map[string]string{
	"austria":        "AT",
	"belgium":        "BE",
	"denmark":        "DK",
	"france":         "FR",
	"germany":        "DE",
	"ireland":        "IE",
	"italy":          "IT",
	"luxembourg":     "LU",
	"netherlands":    "NL",
	"norway":         "NO",
	"poland":         "PL",
	"portugal":       "PT",
	"spain":          "ES",
	"sweden":         "SE",
	"switzerland":    "CH",
	"united kingdom": "GB",
	"united states":  "US",
}

// NormalizeCountry converts a country name to its ISO alpha-2 code.
// If the input is already a code or not recognized, returns as-is.
func NormalizeCountry(s string) string {
	s = strings.TrimSpace(s)
	if code, ok := countryCodes[strings.ToLower(s)]; ok {
		return code
	}

	sUpper := strings.ToUpper(s)
	for _, code := range countryCodes {
		if sUpper == code {
			return code
		}
	}

	return s
}

// countryFormat wraps NormalizeCountry as a FormatFunc.
func countryFormat(values []string) any {
	if values[0] == "" {
		return nil
	}
	return NormalizeCountry(values[0])
}

// splitStreet separates an address line into street name and house
// number. The country code decides which side the number sits on:
// "US" and "GB" addresses lead with the number ("12 Main St"), the
// rest trail it ("Hauptstraße 12", "Dorpsstraat 12a").
func splitStreet(line, country string) (street, number string) {
	line = strings.TrimSpace(line)
	if line == "" {
		return "", ""
	}

	numberFirst := false
	switch NormalizeCountry(country) {
	case "US", "GB", "IE":
		numberFirst = true
	}

	fields := strings.Fields(line)
	if len(fields) < 2 {
		return line, ""
	}

	if numberFirst {
		if startsWithDigit(fields[0]) {
			return strings.Join(fields[1:], " "), fields[0]
		}
		return line, ""
	}

	last := fields[len(fields)-1]
	if startsWithDigit(last) {
		return strings.Join(fields[:len(fields)-1], " "), last
	}
	return line, ""
}

func startsWithDigit(s string) bool {
	for _, r := range s {
		return unicode.IsDigit(r)
	}
	return false
}

// streetNameFormat extracts the street name from an address line. The
// second value slot, when present, carries the country code that
// drives the split direction.
func streetNameFormat(values []string) any {
	country := ""
	if len(values) > 1 {
		country = values[1]
	}
	street, _ := splitStreet(values[0], country)
	if street == "" {
		return nil
	}
	return street
}

// houseNumberFormat extracts the house number from an address line,
// using the same country-driven split as streetNameFormat.
func houseNumberFormat(values []string) any {
	country := ""
	if len(values) > 1 {
		country = values[1]
	}
	_, number := splitStreet(values[0], country)
	if number == "" {
		return nil
	}
	return number
}

// Date layouts split by year format for proper 2-digit year handling.
var (
	twoDigitYearLayouts = []string{
		"1/2/06", "01/02/06", "1-2-06", "1.2.06", "01.02.06",
	}
	fourDigitYearLayouts = []string{
		"1/2/2006", "01/02/2006", "1-2-2006", "01-02-2006", "1.2.2006", "01.02.2006",
		"2006-01-02", "2006/01/02", "2006.01.02",
		"Jan 2, 2006", "2 Jan 2006",
		"20060102",
	}
)

// twoDigitYearPivot defines how 2-digit years are interpreted: years
// that would land more than this many years in the future are assumed
// to be in the previous century.
const twoDigitYearPivot = 20

// isoDateFormat parses the common spreadsheet date spellings and
// renders them as ISO 8601 (YYYY-MM-DD). Unparseable input returns nil
// so the field falls back to its default.
func isoDateFormat(values []string) any {
	s := strings.TrimSpace(values[0])
	if s == "" {
		return nil
	}

	for _, layout := range fourDigitYearLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("2006-01-02")
		}
	}

	pivotYear := time.Now().Year() + twoDigitYearPivot
	for _, layout := range twoDigitYearLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			if t.Year() > pivotYear {
				t = t.AddDate(-100, 0, 0)
			}
			return t.Format("2006-01-02")
		}
	}

	return nil
}
