package normalize

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDate_DayFirstRearranged(t *testing.T) {
	cases := []struct {
		in       string
		expected string
	}{
		{"05-02-2025", "2025-02-05"},
		{"31-12-2024", "2024-12-31"},
		{"01-01-2025", "2025-01-01"},
	}
	for _, tc := range cases {
		got, ok := Date(tc.in)
		require.True(t, ok, "Date(%q)", tc.in)
		require.Equal(t, tc.expected, got)
	}
}

func TestDate_YearMonthForcesFirstDay(t *testing.T) {
	got, ok := Date("2025-02")
	require.True(t, ok)
	require.Equal(t, "2025-02-01", got)
}

func TestDate_GenericFallback(t *testing.T) {
	got, ok := Date("2025/03/15")
	require.True(t, ok)
	require.Equal(t, "2025-03-15", got)

	got, ok = Date("2 Jan 2025")
	require.True(t, ok)
	require.Equal(t, "2025-01-02", got)
}

func TestDate_Unparseable(t *testing.T) {
	for _, in := range []string{"", "   ", "not-a-date", "99-99-2025"} {
		_, ok := Date(in)
		require.False(t, ok, "Date(%q) should not parse", in)
	}
}

func TestNumber(t *testing.T) {
	cases := []struct {
		in       string
		expected float64
		ok       bool
	}{
		{"1,200", 1200, true},
		{"1,20,000.50", 120000.50, true},
		{" 42 ", 42, true},
		{"-3.5", -3.5, true},
		{"", 0, false},
		{"abc", 0, false},
	}
	for _, tc := range cases {
		got, ok := Number(tc.in)
		require.Equal(t, tc.ok, ok, "Number(%q)", tc.in)
		if tc.ok {
			require.Equal(t, tc.expected, got)
		}
	}
}

func TestDecimal(t *testing.T) {
	d, ok := Decimal("1,234.50")
	require.True(t, ok)
	require.Equal(t, "1234.5", d.String())

	_, ok = Decimal("")
	require.False(t, ok)
}

func TestBool_TriState(t *testing.T) {
	v, known := Bool("Approved")
	require.True(t, known)
	require.True(t, v)

	v, known = Bool("rejected")
	require.True(t, known)
	require.False(t, v)

	v, known = Bool("YES")
	require.True(t, known)
	require.True(t, v)

	_, known = Bool("maybe")
	require.False(t, known)

	_, known = Bool("")
	require.False(t, known)
}
