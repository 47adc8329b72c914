package store

import (
	"fmt"
	"strings"
)

// buildWhere renders the optional Filter fields into a WHERE clause with
// positional args. Substring filters are ILIKE; the rest are equality.
func buildWhere(f Filter) (string, []any) {
	var conds []string
	var args []any
	add := func(cond string, v any) {
		args = append(args, v)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}

	if f.CustomerNameLike != "" {
		add("customer_name ILIKE $%d", "%"+f.CustomerNameLike+"%")
	}
	if f.ProjectNameLike != "" {
		add("project_name ILIKE $%d", "%"+f.ProjectNameLike+"%")
	}
	if f.Status != "" {
		add("validation_status = $%d", f.Status)
	}
	if f.RevMonth != "" {
		add("rev_month = $%d", f.RevMonth)
	}
	if f.CustomerID != "" {
		add("customer_id = $%d", f.CustomerID)
	}
	if f.ProjectID != "" {
		add("project_id = $%d", f.ProjectID)
	}

	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// orderClause renders ORDER BY for the requested column when the table's
// whitelist allows it, else the fallback. The whitelist is what keeps a
// caller-supplied sort key out of the SQL text.
func orderClause(f Filter, allowed map[string]bool, fallback string) string {
	col := f.OrderBy
	if !allowed[col] {
		col = fallback
	}
	dir := " ASC"
	if f.Descending {
		dir = " DESC"
	}
	return " ORDER BY " + col + dir
}
