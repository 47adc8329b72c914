package importer

import "strings"

// Import targets. Header lists are the exact required sets; extra columns in
// the input are ignored and sl_no, when present, is never read.

// MISKind covers the monthly revenue/cost rollup import.
func MISKind() KindSpec {
	return KindSpec{
		Name: "mis",
		Fields: map[string]FieldKind{
			"rev_month":             KindDate,
			"customer_name":         KindString,
			"customer_id":           KindString,
			"project_id":            KindString,
			"project_name":          KindString,
			"revenue":               KindMoney,
			"approved_cost":         KindMoney,
			"unapproved_lead_count": KindNumber,
			"unapproved_lead_cost":  KindMoney,
			"lob":                   KindString,
			"margin":                KindMoney,
		},
		KeyFields: []string{"rev_month", "customer_id", "project_id"},
	}
}

// LeadKind covers the lead import.
func LeadKind() KindSpec {
	return KindSpec{
		Name: "leads",
		Fields: map[string]FieldKind{
			"lead_id":                       KindString,
			"project_id":                    KindString,
			"project_name":                  KindString,
			"work_completion_date":          KindDate,
			"unit_basis_commercial":         KindMoney,
			"project_incharge_approval":     KindBool,
			"project_incharge_approval_date": KindDate,
			"client_incharge_approval":      KindBool,
			"client_incharge_approval_date": KindDate,
			"user_id":                       KindString,
			"cost":                          KindMoney,
			"zone":                          KindString,
			"state":                         KindString,
			"city":                          KindString,
			"tc_code":                       KindString,
			"role":                          KindString,
			"shift":                         KindString,
		},
		KeyFields: []string{"lead_id"},
	}
}

// MISKey builds the composite dedup key: rev_month truncated to its date
// part, then customer_id and project_id, pipe-joined.
func MISKey(row Row) string {
	rev, _ := row["rev_month"].(string)
	if len(rev) > 10 {
		rev = rev[:10]
	}
	cust, _ := row["customer_id"].(string)
	proj, _ := row["project_id"].(string)
	return rev + "|" + cust + "|" + proj
}

// LeadKey is the lead_id itself.
func LeadKey(row Row) string {
	id, _ := row["lead_id"].(string)
	return strings.TrimSpace(id)
}
