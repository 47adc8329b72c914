package store

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuildWhere_Empty(t *testing.T) {
	where, args := buildWhere(Filter{})
	require.Empty(t, where)
	require.Empty(t, args)
}

func TestBuildWhere_PositionalArgs(t *testing.T) {
	where, args := buildWhere(Filter{
		CustomerNameLike: "acme",
		RevMonth:         "2025-02-01",
		ProjectID:        "P9",
	})
	require.Equal(t, " WHERE customer_name ILIKE $1 AND rev_month = $2 AND project_id = $3", where)
	require.Equal(t, []any{"%acme%", "2025-02-01", "P9"}, args)
}

func TestBuildWhereMIS_IgnoresStatus(t *testing.T) {
	where, args := buildWhereMIS(Filter{Status: "Approved", CustomerID: "C1"})
	require.Equal(t, " WHERE customer_id = $1", where)
	require.Equal(t, []any{"C1"}, args)
}

func TestOrderClause_WhitelistsColumn(t *testing.T) {
	require.Equal(t, " ORDER BY rev_month ASC", orderClause(Filter{OrderBy: "rev_month"}, validationOrderColumns, "sl_no"))
	require.Equal(t, " ORDER BY rev_month DESC", orderClause(Filter{OrderBy: "rev_month", Descending: true}, validationOrderColumns, "sl_no"))

	// anything outside the column whitelist falls back
	require.Equal(t, " ORDER BY sl_no ASC", orderClause(Filter{OrderBy: "rev_month; DROP TABLE x"}, validationOrderColumns, "sl_no"))
	require.Equal(t, " ORDER BY sl_no ASC", orderClause(Filter{OrderBy: "revenue_display"}, validationOrderColumns, "sl_no"))
	require.Equal(t, " ORDER BY sl_no ASC", orderClause(Filter{}, validationOrderColumns, "sl_no"))
}
