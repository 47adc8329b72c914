package store

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// The refresh must recompute every rollup project, including ones whose
// unapproved leads have all been approved since the last run. That requires
// aggregating over a LEFT JOIN from the rollup table's own project set;
// an inner join against the unapproved-lead aggregate would skip projects
// with zero remaining unapproved leads and leave stale counts behind.
func TestRefreshLeadRollupsSQL_ResetsClearedProjects(t *testing.T) {
	require.Contains(t, refreshLeadRollupsSQL, "SELECT DISTINCT project_id FROM mis_records",
		"project set must come from the rollup table, not the lead table")
	require.Contains(t, refreshLeadRollupsSQL, "LEFT JOIN lead_records")

	// COUNT over the joined lead id and a COALESCEd SUM both collapse to
	// zero for a project with no unapproved leads left.
	require.Contains(t, refreshLeadRollupsSQL, "COUNT(lr.lead_id)")
	require.Contains(t, refreshLeadRollupsSQL, "COALESCE(SUM(lr.cost), 0)")

	// the approval condition must live in the join, not a WHERE clause,
	// or the LEFT JOIN degrades back to an inner join
	joinPart := refreshLeadRollupsSQL[strings.Index(refreshLeadRollupsSQL, "LEFT JOIN"):]
	require.Contains(t, joinPart[:strings.Index(joinPart, "GROUP BY")], "client_incharge_approval IS DISTINCT FROM TRUE")
}
