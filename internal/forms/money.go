package forms

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
)

// ParseCents converts a dollar amount such as "1,299.99" or "$45" to cents.
func ParseCents(s string) (int64, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "$")
	s = strings.ReplaceAll(s, ",", "")
	if s == "" {
		return 0, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("parse amount %q: %w", s, err)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("parse amount %q: not a number", s)
	}
	return int64(math.Round(f * 100)), nil
}

// FormatCents renders cents with thousands separators and two decimals.
func FormatCents(symbol string, cents int64) string {
	return symbol + humanize.FormatFloat("#,###.##", float64(cents)/100)
}
