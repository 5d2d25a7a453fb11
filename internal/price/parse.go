package price

import (
	"strconv"
	"strings"
)

// Parse extracts a numeric value from localized market price text such as
// "1500,00 pуб.". The first whitespace-delimited token is taken, comma
// decimal separators become dots, and the result is parsed as a float.
//
// Parsing never fails: empty input, a non-numeric token, or the lookup
// failure sentinel all yield 0.0. A malformed price must never halt the
// tracking loop.
func Parse(raw string) float64 {
	fields := strings.Fields(raw)
	if len(fields) == 0 {
		return 0
	}

	token := strings.ReplaceAll(fields[0], ",", ".")
	v, err := strconv.ParseFloat(token, 64)
	if err != nil {
		return 0
	}
	return v
}
