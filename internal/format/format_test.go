package format

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestDisplayDate(t *testing.T) {
	require.Equal(t, "05 Feb 2025", DisplayDate("2025-02-05"))
	require.Equal(t, "", DisplayDate(""))
	require.Equal(t, "garbage", DisplayDate("garbage"))
}

func TestCurrency_IndianGrouping(t *testing.T) {
	cases := []struct {
		in       string
		expected string
	}{
		{"0", "₹0.00"},
		{"999", "₹999.00"},
		{"1000", "₹1,000.00"},
		{"123456", "₹1,23,456.00"},
		{"1234567.89", "₹12,34,567.89"},
		{"-45000", "-₹45,000.00"},
	}
	for _, tc := range cases {
		d, err := decimal.NewFromString(tc.in)
		require.NoError(t, err)
		require.Equal(t, tc.expected, Currency(d), "Currency(%s)", tc.in)
	}
}

func TestStatusBadge(t *testing.T) {
	label, class := StatusBadge("approved")
	require.Equal(t, "Approved", label)
	require.Equal(t, "badge-success", class)

	label, class = StatusBadge("Pending")
	require.Equal(t, "Pending", label)
	require.Equal(t, "badge-warning", class)

	_, class = StatusBadge("weird")
	require.Equal(t, "badge-neutral", class)
}

func TestApprovalLabel(t *testing.T) {
	yes, no := true, false
	require.Equal(t, "Approved", ApprovalLabel(&yes))
	require.Equal(t, "Rejected", ApprovalLabel(&no))
	require.Equal(t, "Pending", ApprovalLabel(nil))
}

func TestExportFilename(t *testing.T) {
	at := time.Date(2025, 2, 5, 14, 30, 12, 0, time.UTC)
	require.Equal(t, "validations_20250205_143012.csv", ExportFilename("validations", "csv", at))
}
