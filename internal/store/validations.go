package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

const validationColumns = `sl_no, validation_file_id, customer_id, customer_name, project_id, project_name, rev_month::text, revenue, validation_status, validation_approval_at`

var validationOrderColumns = map[string]bool{
	"sl_no": true, "rev_month": true, "revenue": true,
	"customer_name": true, "project_name": true, "validation_status": true,
}

// ListValidations fetches validation records matching the filter, default
// order sl_no ascending.
func ListValidations(ctx context.Context, pool *pgxpool.Pool, f Filter) ([]ValidationRecord, error) {
	where, args := buildWhere(f)
	query := `SELECT ` + validationColumns + ` FROM validation_records` + where + orderClause(f, validationOrderColumns, "sl_no")

	rows, err := pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list validations: %w", err)
	}
	defer rows.Close()

	var out []ValidationRecord
	for rows.Next() {
		var v ValidationRecord
		if err := rows.Scan(&v.SlNo, &v.ValidationFileID, &v.CustomerID, &v.CustomerName,
			&v.ProjectID, &v.ProjectName, &v.RevMonth, &v.Revenue,
			&v.ValidationStatus, &v.ValidationApproval); err != nil {
			return nil, fmt.Errorf("scan validation: %w", err)
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

// UpdateValidationStatus sets the status and the server-side approval
// timestamp for every id in one request. There is no transaction beyond the
// single statement.
func UpdateValidationStatus(ctx context.Context, pool *pgxpool.Pool, ids []string, status string) (int64, error) {
	tag, err := pool.Exec(ctx, `
		UPDATE validation_records
		SET validation_status = $1, validation_approval_at = now()
		WHERE validation_file_id = ANY($2)
	`, status, ids)
	if err != nil {
		return 0, fmt.Errorf("bulk status update: %w", err)
	}
	return tag.RowsAffected(), nil
}

// StatusCount is one slice of the approved/pending/rejected chart.
type StatusCount struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
}

// ValidationStatusCounts groups validations by status for the chart view.
func ValidationStatusCounts(ctx context.Context, pool *pgxpool.Pool, f Filter) ([]StatusCount, error) {
	where, args := buildWhere(f)
	rows, err := pool.Query(ctx, `SELECT validation_status, COUNT(*) FROM validation_records`+where+` GROUP BY validation_status`, args...)
	if err != nil {
		return nil, fmt.Errorf("status counts: %w", err)
	}
	defer rows.Close()

	var out []StatusCount
	for rows.Next() {
		var c StatusCount
		if err := rows.Scan(&c.Status, &c.Count); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
