package store

import (
	"time"

	"github.com/shopspring/decimal"
)

// Record types as persisted in Postgres. sl_no columns are server-owned
// serials and are never written by this code.

type ValidationRecord struct {
	SlNo               int64           `json:"sl_no"`
	ValidationFileID   string          `json:"validation_file_id"`
	CustomerID         string          `json:"customer_id"`
	CustomerName       string          `json:"customer_name"`
	ProjectID          string          `json:"project_id"`
	ProjectName        string          `json:"project_name"`
	RevMonth           string          `json:"rev_month"`
	Revenue            decimal.Decimal `json:"revenue"`
	ValidationStatus   string          `json:"validation_status"`
	ValidationApproval *time.Time      `json:"validation_approval_at"`
}

type LeadRecord struct {
	LeadID                      string           `json:"lead_id"`
	ProjectID                   string           `json:"project_id"`
	ProjectName                 string           `json:"project_name"`
	WorkCompletionDate          *string          `json:"work_completion_date"`
	RevisedCompletionDate       *string          `json:"revised_completion_date"`
	FinalCompletionDate         *string          `json:"final_completion_date"`
	UnitBasisCommercial         decimal.Decimal  `json:"unit_basis_commercial"`
	ProjectInchargeApproval     *bool            `json:"project_incharge_approval"`
	ProjectInchargeApprovalDate *string          `json:"project_incharge_approval_date"`
	ClientInchargeApproval      *bool            `json:"client_incharge_approval"`
	ClientInchargeApprovalDate  *string          `json:"client_incharge_approval_date"`
	UserID                      string           `json:"user_id"`
	Cost                        decimal.Decimal  `json:"cost"`
	Zone                        string           `json:"zone"`
	State                       string           `json:"state"`
	City                        string           `json:"city"`
	TCCode                      string           `json:"tc_code"`
	Role                        string           `json:"role"`
	Shift                       string           `json:"shift"`
}

type MISRecord struct {
	SlNo                int64           `json:"sl_no"`
	RevMonth            string          `json:"rev_month"`
	CustomerID          string          `json:"customer_id"`
	CustomerName        string          `json:"customer_name"`
	ProjectID           string          `json:"project_id"`
	ProjectName         string          `json:"project_name"`
	Revenue             decimal.Decimal `json:"revenue"`
	ApprovedCost        decimal.Decimal `json:"approved_cost"`
	UnapprovedLeadCount int             `json:"unapproved_lead_count"`
	UnapprovedLeadCost  decimal.Decimal `json:"unapproved_lead_cost"`
	LOB                 string          `json:"lob"`
	Margin              decimal.Decimal `json:"margin"`
}

// Filter carries the optional equality/substring conditions a list query can
// apply remotely. Empty fields are omitted from the WHERE clause.
type Filter struct {
	CustomerNameLike string
	ProjectNameLike  string
	Status           string
	RevMonth         string
	CustomerID       string
	ProjectID        string
	OrderBy          string
	Descending       bool
}
