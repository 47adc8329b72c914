package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"RevTrackSaas/internal/config"
	"RevTrackSaas/internal/importer"
)

const leadColumns = `lead_id, project_id, project_name, work_completion_date::text, revised_completion_date::text, final_completion_date::text, unit_basis_commercial, project_incharge_approval, project_incharge_approval_date::text, client_incharge_approval, client_incharge_approval_date::text, user_id, cost, zone, state, city, tc_code, role, shift`

var leadOrderColumns = map[string]bool{
	"lead_id": true, "project_name": true, "work_completion_date": true,
	"revised_completion_date": true, "cost": true, "zone": true,
	"state": true, "city": true,
}

// ListLeads fetches lead records matching the filter, ordered by lead_id.
func ListLeads(ctx context.Context, pool *pgxpool.Pool, f Filter) ([]LeadRecord, error) {
	where, args := buildWhere(f)
	query := `SELECT ` + leadColumns + ` FROM lead_records` + where + orderClause(f, leadOrderColumns, "lead_id")

	rows, err := pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list leads: %w", err)
	}
	defer rows.Close()

	var out []LeadRecord
	for rows.Next() {
		var l LeadRecord
		if err := rows.Scan(&l.LeadID, &l.ProjectID, &l.ProjectName,
			&l.WorkCompletionDate, &l.RevisedCompletionDate, &l.FinalCompletionDate,
			&l.UnitBasisCommercial,
			&l.ProjectInchargeApproval, &l.ProjectInchargeApprovalDate,
			&l.ClientInchargeApproval, &l.ClientInchargeApprovalDate,
			&l.UserID, &l.Cost, &l.Zone, &l.State, &l.City, &l.TCCode, &l.Role, &l.Shift); err != nil {
			return nil, fmt.Errorf("scan lead: %w", err)
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

// ExistingLeadIDs reads which of the given ids are already present, in
// lookup chunks of config.LookupChunkSize ids per query.
func ExistingLeadIDs(ctx context.Context, pool *pgxpool.Pool, ids []string) (map[string]struct{}, error) {
	existing := make(map[string]struct{})
	for _, chunk := range importer.ChunkStrings(ids, config.LookupChunkSize) {
		rows, err := pool.Query(ctx, `SELECT lead_id FROM lead_records WHERE lead_id = ANY($1)`, chunk)
		if err != nil {
			return nil, fmt.Errorf("existing lead ids: %w", err)
		}
		for rows.Next() {
			var id string
			if err := rows.Scan(&id); err != nil {
				rows.Close()
				return nil, err
			}
			existing[id] = struct{}{}
		}
		rows.Close()
		if err := rows.Err(); err != nil {
			return nil, err
		}
	}
	return existing, nil
}

// InsertLeadChunk writes one chunk of leads in a single multi-row INSERT.
func InsertLeadChunk(ctx context.Context, pool *pgxpool.Pool, leads []LeadRecord) error {
	if len(leads) == 0 {
		return nil
	}
	const cols = 19
	placeholders := make([]string, 0, len(leads))
	args := make([]any, 0, len(leads)*cols)
	for i, l := range leads {
		base := i * cols
		ph := make([]string, cols)
		for j := range ph {
			ph[j] = fmt.Sprintf("$%d", base+j+1)
		}
		placeholders = append(placeholders, "("+strings.Join(ph, ",")+")")
		args = append(args,
			l.LeadID, l.ProjectID, l.ProjectName,
			l.WorkCompletionDate, l.RevisedCompletionDate, l.FinalCompletionDate,
			l.UnitBasisCommercial,
			l.ProjectInchargeApproval, l.ProjectInchargeApprovalDate,
			l.ClientInchargeApproval, l.ClientInchargeApprovalDate,
			l.UserID, l.Cost, l.Zone, l.State, l.City, l.TCCode, l.Role, l.Shift)
	}
	query := `INSERT INTO lead_records (lead_id, project_id, project_name, work_completion_date, revised_completion_date, final_completion_date, unit_basis_commercial, project_incharge_approval, project_incharge_approval_date, client_incharge_approval, client_incharge_approval_date, user_id, cost, zone, state, city, tc_code, role, shift) VALUES ` +
		strings.Join(placeholders, ",")
	if _, err := pool.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("insert lead chunk: %w", err)
	}
	return nil
}

// approvalColumns whitelists the two mutable approval flags.
var approvalColumns = map[string]string{
	"project_incharge_approval": "project_incharge_approval_date",
	"client_incharge_approval":  "client_incharge_approval_date",
}

// UpdateLeadApproval sets one approval flag and stamps its date column from
// the server clock.
func UpdateLeadApproval(ctx context.Context, pool *pgxpool.Pool, leadID, column string, approved bool) error {
	dateCol, ok := approvalColumns[column]
	if !ok {
		return fmt.Errorf("not an approval column: %s", column)
	}
	query := fmt.Sprintf(`UPDATE lead_records SET %s = $1, %s = now() WHERE lead_id = $2`, column, dateCol)
	if _, err := pool.Exec(ctx, query, approved, leadID); err != nil {
		return fmt.Errorf("update lead approval: %w", err)
	}
	return nil
}

// BulkUpdateLeadApproval applies one approval flag across a key list in a
// single request. Ids absent from the table are silently unaffected.
func BulkUpdateLeadApproval(ctx context.Context, pool *pgxpool.Pool, leadIDs []string, column string, approved bool) (int64, error) {
	dateCol, ok := approvalColumns[column]
	if !ok {
		return 0, fmt.Errorf("not an approval column: %s", column)
	}
	query := fmt.Sprintf(`UPDATE lead_records SET %s = $1, %s = now() WHERE lead_id = ANY($2)`, column, dateCol)
	tag, err := pool.Exec(ctx, query, approved, leadIDs)
	if err != nil {
		return 0, fmt.Errorf("bulk lead approval: %w", err)
	}
	return tag.RowsAffected(), nil
}

// UpdateLeadRevisedDate sets the revised work-completion date.
func UpdateLeadRevisedDate(ctx context.Context, pool *pgxpool.Pool, leadID, date string) error {
	if _, err := pool.Exec(ctx, `UPDATE lead_records SET revised_completion_date = $1 WHERE lead_id = $2`, date, leadID); err != nil {
		return fmt.Errorf("update revised date: %w", err)
	}
	return nil
}
