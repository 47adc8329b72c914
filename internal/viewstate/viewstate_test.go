package viewstate

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func sampleRows() []Row {
	return []Row{
		{"customer_name": "Acme Industries", "revenue": 1200.0, "validation_status": "Pending", "rev_month": "2025-01-01"},
		{"customer_name": "Bright Corp", "revenue": 800.0, "validation_status": "Approved", "rev_month": "2025-02-01"},
		{"customer_name": "acme retail", "revenue": 450.0, "validation_status": "Rejected", "rev_month": "2024-11-01"},
		{"customer_name": "Delta Ltd", "revenue": 2000.0, "validation_status": "Pending", "rev_month": "2025-02-01"},
	}
}

func TestDerive_SubstringFilterCaseInsensitive(t *testing.T) {
	c := NewController(10, "validation_status")
	c.SetFilter("customer_name", "ACME")
	page := c.Derive(sampleRows())
	require.Equal(t, 2, page.Total)
	for _, row := range page.Rows {
		require.Contains(t, []string{"Acme Industries", "acme retail"}, row["customer_name"])
	}
}

func TestDerive_StatusFilter(t *testing.T) {
	c := NewController(10, "validation_status")
	c.SetStatus("pending")
	page := c.Derive(sampleRows())
	require.Equal(t, 2, page.Total)
}

func TestDerive_SortToggleFlipsOrder(t *testing.T) {
	c := NewController(10, "validation_status")
	c.ToggleSort("revenue")
	asc := c.Derive(sampleRows())
	require.Equal(t, 450.0, asc.Rows[0]["revenue"])
	require.Equal(t, 2000.0, asc.Rows[len(asc.Rows)-1]["revenue"])

	c.ToggleSort("revenue")
	desc := c.Derive(sampleRows())
	require.Equal(t, 2000.0, desc.Rows[0]["revenue"])
	require.Equal(t, asc.Total, desc.Total, "membership unchanged by sort direction")
}

func TestDerive_MixedTypesCompareEqual(t *testing.T) {
	rows := []Row{
		{"v": "abc"},
		{"v": 1.0},
		{"v": "xyz"},
	}
	c := NewController(10, "")
	c.ToggleSort("v")
	// must not panic; relative order of mixed-type cells is unspecified
	page := c.Derive(rows)
	require.Equal(t, 3, page.Total)
}

func TestDerive_Pagination(t *testing.T) {
	rows := make([]Row, 12)
	for i := range rows {
		rows[i] = Row{"n": float64(i)}
	}
	c := NewController(5, "")
	c.Page = 3
	page := c.Derive(rows)
	require.Equal(t, 12, page.Total)
	require.Equal(t, 3, page.TotalPages)
	require.Len(t, page.Rows, 2)

	c.Page = 99
	page = c.Derive(rows)
	require.Equal(t, 3, page.Page, "page clamped to last")
}

func TestVisiblePages(t *testing.T) {
	cases := []struct {
		total, current int
		expected       []int
	}{
		{10, 1, []int{1, 2, 3}},
		{10, 10, []int{8, 9, 10}},
		{10, 5, []int{4, 5, 6}},
		{3, 2, []int{1, 2, 3}},
		{1, 1, []int{1}},
		{0, 1, nil},
	}
	for _, tc := range cases {
		require.Equal(t, tc.expected, VisiblePages(tc.total, tc.current),
			fmt.Sprintf("VisiblePages(%d,%d)", tc.total, tc.current))
	}
}

func TestDateFilter_StateMachine(t *testing.T) {
	f := DateFilter{Field: "rev_month"}
	require.Equal(t, Closed, f.State())

	f.Open()
	require.Equal(t, YearMenu, f.State())

	// selecting a month before a year is a no-op
	f.SelectMonth("02")
	require.Equal(t, YearMenu, f.State())

	f.SelectYear("2025")
	require.Equal(t, MonthMenu, f.State(), "control stays open until a month is chosen")
	require.Equal(t, "2025", f.Year())

	f.SelectMonth("02")
	require.Equal(t, Closed, f.State())
	require.Equal(t, "02", f.Month())

	require.True(t, f.Matches("2025-02-01"))
	require.False(t, f.Matches("2025-03-01"))
	require.False(t, f.Matches("2024-02-01"))

	f.Reset()
	require.True(t, f.Matches("1999-01-01"), "reset means all")
}

func TestDateFilter_Back(t *testing.T) {
	f := DateFilter{Field: "rev_month"}
	f.Open()
	f.SelectYear("2024")
	f.Back()
	require.Equal(t, YearMenu, f.State())
	require.Equal(t, "", f.Year())
}

func TestYearsAndMonths(t *testing.T) {
	rows := sampleRows()
	require.Equal(t, []string{"2025", "2024"}, Years(rows, "rev_month"))
	require.Equal(t, []string{"01", "02"}, MonthsFor(rows, "rev_month", "2025"))
}
