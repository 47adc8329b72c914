package format

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Display helpers shared by the export writers and the JSON list responses.

// DisplayDate renders a canonical yyyy-mm-dd value as "02 Jan 2006".
// Unparseable input is passed through untouched.
func DisplayDate(s string) string {
	if s == "" {
		return ""
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return s
	}
	return t.Format("02 Jan 2006")
}

// Currency renders an amount with Indian digit grouping and a rupee prefix,
// e.g. 1234567.89 -> "₹12,34,567.89".
func Currency(d decimal.Decimal) string {
	s := d.StringFixed(2)
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")
	intPart, fracPart, _ := strings.Cut(s, ".")
	grouped := groupIndian(intPart)
	out := "₹" + grouped + "." + fracPart
	if neg {
		out = "-" + out
	}
	return out
}

// groupIndian groups the last three digits, then pairs: 1234567 -> 12,34,567.
func groupIndian(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	head := digits[:len(digits)-3]
	tail := digits[len(digits)-3:]
	var parts []string
	for len(head) > 2 {
		parts = append([]string{head[len(head)-2:]}, parts...)
		head = head[:len(head)-2]
	}
	if head != "" {
		parts = append([]string{head}, parts...)
	}
	return strings.Join(parts, ",") + "," + tail
}

// StatusBadge maps a validation status onto the label/class pair the
// frontend renders as a colored chip.
func StatusBadge(status string) (label, class string) {
	switch strings.ToLower(strings.TrimSpace(status)) {
	case "approved":
		return "Approved", "badge-success"
	case "rejected":
		return "Rejected", "badge-danger"
	case "pending":
		return "Pending", "badge-warning"
	}
	return status, "badge-neutral"
}

// ApprovalLabel renders a tri-state approval flag. An undecided approval is
// labeled Pending so the approval filter can select it.
func ApprovalLabel(v *bool) string {
	if v == nil {
		return "Pending"
	}
	if *v {
		return "Approved"
	}
	return "Rejected"
}

// ExportFilename builds a timestamped download name, e.g.
// "validations_20250205_143012.csv".
func ExportFilename(prefix, ext string, at time.Time) string {
	return fmt.Sprintf("%s_%s.%s", prefix, at.Format("20060102_150405"), ext)
}
