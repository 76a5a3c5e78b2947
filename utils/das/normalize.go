package das

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

var (
	// day-first dates; 4-digit year is tried before 2-digit year
	reDateLongYear  = regexp.MustCompile(`^(\d{1,2})[/.\-](\d{1,2})[/.\-](\d{4})$`)
	reDateShortYear = regexp.MustCompile(`^(\d{1,2})[/.\-](\d{1,2})[/.\-](\d{2})$`)

	reDecimal = regexp.MustCompile(`^(\d+\.?\d*|\.\d+)$`)
)

// NormalizeDate converts a DD/MM/YYYY (or DD/MM/YY) date using '/', '-' or '.'
// separators into YYYY-MM-DD. Two-digit years map to 20YY.
//
// Only ranges are checked (day 1-31, month 1-12); 31/02/2024 is accepted.
func NormalizeDate(raw string) (string, bool) {
	s := stripSpaces(raw)

	var day, month, year int
	if m := reDateLongYear.FindStringSubmatch(s); m != nil {
		day, month, year = atoi(m[1]), atoi(m[2]), atoi(m[3])
	} else if m := reDateShortYear.FindStringSubmatch(s); m != nil {
		day, month, year = atoi(m[1]), atoi(m[2]), 2000+atoi(m[3])
	} else {
		return "", false
	}

	if day < 1 || day > 31 || month < 1 || month > 12 {
		return "", false
	}

	return fmt.Sprintf("%04d-%02d-%02d", year, month, day), true
}

// NormalizeMonetary parses a Brazilian-formatted amount ("3.412,23") into a float.
// Zero is a valid result and is reported with ok == true.
func NormalizeMonetary(raw string) (float64, bool) {
	s := stripSpaces(raw)
	s = strings.ReplaceAll(s, ".", "")
	s = strings.Replace(s, ",", ".", 1)

	if !reDecimal.MatchString(s) {
		return 0, false
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0, false
	}
	return v, true
}

// FormatAmount renders an amount in the shortest point-decimal form.
func FormatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func stripSpaces(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}

// atoi is only called on regexp-validated digit groups.
func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
