package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

const misColumns = `sl_no, rev_month::text, customer_id, customer_name, project_id, project_name, revenue, approved_cost, unapproved_lead_count, unapproved_lead_cost, lob, margin`

var misOrderColumns = map[string]bool{
	"sl_no": true, "rev_month": true, "revenue": true, "approved_cost": true,
	"margin": true, "lob": true, "customer_name": true, "project_name": true,
}

// ListMIS fetches rollup rows matching the filter, newest month first.
func ListMIS(ctx context.Context, pool *pgxpool.Pool, f Filter) ([]MISRecord, error) {
	where, args := buildWhereMIS(f)
	query := `SELECT ` + misColumns + ` FROM mis_records` + where + orderClause(f, misOrderColumns, "rev_month")

	rows, err := pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list mis: %w", err)
	}
	defer rows.Close()

	var out []MISRecord
	for rows.Next() {
		var m MISRecord
		if err := rows.Scan(&m.SlNo, &m.RevMonth, &m.CustomerID, &m.CustomerName,
			&m.ProjectID, &m.ProjectName, &m.Revenue, &m.ApprovedCost,
			&m.UnapprovedLeadCount, &m.UnapprovedLeadCost, &m.LOB, &m.Margin); err != nil {
			return nil, fmt.Errorf("scan mis: %w", err)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// buildWhereMIS is buildWhere without the status condition; mis_records has
// no validation_status column.
func buildWhereMIS(f Filter) (string, []any) {
	f.Status = ""
	return buildWhere(f)
}

// ExistingMISKeys reads the (rev_month, customer_id, project_id) triples
// already present, one query per distinct rev_month, keyed the same way the
// import dedup keys its rows.
func ExistingMISKeys(ctx context.Context, pool *pgxpool.Pool, revMonths []string) (map[string]struct{}, error) {
	existing := make(map[string]struct{})
	for _, month := range revMonths {
		rows, err := pool.Query(ctx,
			`SELECT rev_month::text, customer_id, project_id FROM mis_records WHERE rev_month = $1`, month)
		if err != nil {
			return nil, fmt.Errorf("existing mis keys for %s: %w", month, err)
		}
		for rows.Next() {
			var rev, cust, proj string
			if err := rows.Scan(&rev, &cust, &proj); err != nil {
				rows.Close()
				return nil, err
			}
			if len(rev) > 10 {
				rev = rev[:10]
			}
			existing[rev+"|"+cust+"|"+proj] = struct{}{}
		}
		rows.Close()
		if err := rows.Err(); err != nil {
			return nil, err
		}
	}
	return existing, nil
}

// InsertMISChunk writes one chunk of rollup rows in a single multi-row
// INSERT. sl_no is left to the table's sequence.
func InsertMISChunk(ctx context.Context, pool *pgxpool.Pool, records []MISRecord) error {
	if len(records) == 0 {
		return nil
	}
	const cols = 11
	placeholders := make([]string, 0, len(records))
	args := make([]any, 0, len(records)*cols)
	for i, m := range records {
		base := i * cols
		ph := make([]string, cols)
		for j := range ph {
			ph[j] = fmt.Sprintf("$%d", base+j+1)
		}
		placeholders = append(placeholders, "("+strings.Join(ph, ",")+")")
		args = append(args,
			m.RevMonth, m.CustomerID, m.CustomerName, m.ProjectID, m.ProjectName,
			m.Revenue, m.ApprovedCost, m.UnapprovedLeadCount, m.UnapprovedLeadCost,
			m.LOB, m.Margin)
	}
	query := `INSERT INTO mis_records (rev_month, customer_id, customer_name, project_id, project_name, revenue, approved_cost, unapproved_lead_count, unapproved_lead_cost, lob, margin) VALUES ` +
		strings.Join(placeholders, ",")
	if _, err := pool.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("insert mis chunk: %w", err)
	}
	return nil
}

// MonthRevenue is one bar of the revenue-by-month chart.
type MonthRevenue struct {
	Month   string          `json:"month"`
	Revenue decimal.Decimal `json:"revenue"`
	Margin  decimal.Decimal `json:"margin"`
}

// RevenueByMonth aggregates rollup revenue and margin per month, ascending.
func RevenueByMonth(ctx context.Context, pool *pgxpool.Pool, f Filter) ([]MonthRevenue, error) {
	where, args := buildWhereMIS(f)
	rows, err := pool.Query(ctx, `
		SELECT rev_month::text, COALESCE(SUM(revenue),0), COALESCE(SUM(margin),0)
		FROM mis_records`+where+`
		GROUP BY rev_month ORDER BY rev_month`, args...)
	if err != nil {
		return nil, fmt.Errorf("revenue by month: %w", err)
	}
	defer rows.Close()

	var out []MonthRevenue
	for rows.Next() {
		var m MonthRevenue
		if err := rows.Scan(&m.Month, &m.Revenue, &m.Margin); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// LOBShare is one slice of the line-of-business share chart.
type LOBShare struct {
	LOB     string          `json:"lob"`
	Revenue decimal.Decimal `json:"revenue"`
	Margin  decimal.Decimal `json:"margin"`
}

// LOBShares aggregates revenue and margin per line-of-business tag.
func LOBShares(ctx context.Context, pool *pgxpool.Pool, f Filter) ([]LOBShare, error) {
	where, args := buildWhereMIS(f)
	rows, err := pool.Query(ctx, `
		SELECT lob, COALESCE(SUM(revenue),0), COALESCE(SUM(margin),0)
		FROM mis_records`+where+`
		GROUP BY lob ORDER BY 2 DESC`, args...)
	if err != nil {
		return nil, fmt.Errorf("lob shares: %w", err)
	}
	defer rows.Close()

	var out []LOBShare
	for rows.Next() {
		var s LOBShare
		if err := rows.Scan(&s.LOB, &s.Revenue, &s.Margin); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// refreshLeadRollupsSQL aggregates per project over a LEFT JOIN from the
// rollup table's own project set, so a project whose last unapproved lead
// just got approved is written back to zero instead of keeping its stale
// count.
const refreshLeadRollupsSQL = `
	UPDATE mis_records m
	SET unapproved_lead_count = l.cnt,
	    unapproved_lead_cost  = l.cost
	FROM (
		SELECT p.project_id,
		       COUNT(lr.lead_id)         AS cnt,
		       COALESCE(SUM(lr.cost), 0) AS cost
		FROM (SELECT DISTINCT project_id FROM mis_records) p
		LEFT JOIN lead_records lr
		  ON lr.project_id = p.project_id
		 AND lr.client_incharge_approval IS DISTINCT FROM TRUE
		GROUP BY p.project_id
	) l
	WHERE m.project_id = l.project_id
`

// RefreshLeadRollups recomputes unapproved_lead_count and
// unapproved_lead_cost on every rollup row from the lead table. Run
// nightly by the cron service; the original recomputed these on every page
// load instead.
func RefreshLeadRollups(ctx context.Context, pool *pgxpool.Pool) (int64, error) {
	tag, err := pool.Exec(ctx, refreshLeadRollupsSQL)
	if err != nil {
		return 0, fmt.Errorf("refresh lead rollups: %w", err)
	}
	return tag.RowsAffected(), nil
}
