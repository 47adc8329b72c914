package leads

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"RevTrackSaas/internal/store"
	"RevTrackSaas/internal/viewstate"
)

func sampleLeads() []store.LeadRecord {
	yes, no := true, false
	date := "2025-02-10"
	return []store.LeadRecord{
		{LeadID: "L1", ProjectID: "P1", ProjectName: "Rollout", WorkCompletionDate: &date,
			ClientInchargeApproval: &yes, Cost: decimal.NewFromInt(500)},
		{LeadID: "L2", ProjectID: "P1", ProjectName: "Rollout", WorkCompletionDate: &date,
			ClientInchargeApproval: &no, Cost: decimal.NewFromInt(300)},
		{LeadID: "L3", ProjectID: "P1", ProjectName: "Rollout", WorkCompletionDate: &date,
			ClientInchargeApproval: nil, Cost: decimal.NewFromInt(200)},
	}
}

func deriveWithApproval(t *testing.T, approval string) []string {
	t.Helper()
	req := listRequest{Approval: approval}
	rows := make([]string, 0)
	page := req.controller().Derive(rowsFor(sampleLeads()))
	for _, row := range page.Rows {
		id, _ := row["lead_id"].(string)
		rows = append(rows, id)
	}
	return rows
}

func rowsFor(records []store.LeadRecord) []viewstate.Row {
	out := make([]viewstate.Row, len(records))
	for i, l := range records {
		out[i] = toRow(l)
	}
	return out
}

func TestApprovalFilter_SelectsEachState(t *testing.T) {
	require.Equal(t, []string{"L1"}, deriveWithApproval(t, "Approved"))
	require.Equal(t, []string{"L2"}, deriveWithApproval(t, "Rejected"))

	// an undecided approval must be reachable through the Pending filter
	require.Equal(t, []string{"L3"}, deriveWithApproval(t, "Pending"))
}

func TestToRow_UndecidedApprovalLabeledPending(t *testing.T) {
	row := toRow(sampleLeads()[2])
	require.Equal(t, "Pending", row["client_approval_label"])
	require.Equal(t, "Pending", row["project_approval_label"])
}
