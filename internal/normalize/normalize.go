package normalize

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Helpers for coercing loosely formatted spreadsheet cell values into
// canonical forms. Every function degrades to a "not ok" result instead of
// returning an error; row-level validation decides what to do with it.

var (
	dayFirstRe  = regexp.MustCompile(`^\d{2}-\d{2}-\d{4}$`)
	yearMonthRe = regexp.MustCompile(`^\d{4}-\d{2}$`)
)

// genericDateLayouts are tried in order when the input matches neither of the
// two fast-path shapes. Day-first layouts come before month-first ones on
// purpose: source files are dd-mm-yyyy exports.
var genericDateLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"02/01/2006",
	"2 Jan 2006",
	"02 Jan 2006",
	"Jan 2, 2006",
	"2006-01-02T15:04:05",
	time.RFC3339,
}

// Date coerces a date cell to yyyy-mm-dd. Recognized shapes: dd-mm-yyyy
// (rearranged), yyyy-mm (day forced to 01), then the generic layout list.
// Empty or unparseable input returns ok=false.
func Date(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", false
	}
	if dayFirstRe.MatchString(s) {
		t, err := time.Parse("02-01-2006", s)
		if err != nil {
			return "", false
		}
		return t.Format("2006-01-02"), true
	}
	if yearMonthRe.MatchString(s) {
		t, err := time.Parse("2006-01-02", s+"-01")
		if err != nil {
			return "", false
		}
		return t.Format("2006-01-02"), true
	}
	for _, layout := range genericDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("2006-01-02"), true
		}
	}
	return "", false
}

// Number strips thousands separators and whitespace and parses the rest.
// Non-finite results are rejected.
func Number(s string) (float64, bool) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	s = strings.ReplaceAll(s, " ", "")
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
		return 0, false
	}
	return f, true
}

// Decimal is the money-field companion of Number.
func Decimal(s string) (decimal.Decimal, bool) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	s = strings.ReplaceAll(s, " ", "")
	if s == "" {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

// Bool maps approval-type tokens onto a tri-state: (true,true), (false,true)
// or unknown (_,false).
func Bool(s string) (value bool, known bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "1", "yes", "approved":
		return true, true
	case "false", "0", "no", "rejected":
		return false, true
	}
	return false, false
}
