package leads

import (
	"encoding/json"
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"

	"RevTrackSaas/api"
	"RevTrackSaas/api/constants"
	"RevTrackSaas/internal/config"
	"RevTrackSaas/internal/format"
	"RevTrackSaas/internal/logger"
	"RevTrackSaas/internal/normalize"
	"RevTrackSaas/internal/store"
	"RevTrackSaas/internal/viewstate"
)

// listRequest mirrors the drill-down from the validation summary: the
// query-string context (project_id, rev_month, validation_status) arrives in
// the body along with the lead table's own view state.
type listRequest struct {
	UserID      string            `json:"user_id"`
	ProjectID   string            `json:"project_id"`
	ProjectName string            `json:"project_name"`
	Filters     map[string]string `json:"filters"`
	Approval    string            `json:"approval"` // Approved/Rejected/Pending on client_incharge_approval
	Year        string            `json:"year"`
	Month       string            `json:"month"`
	SortKey     string            `json:"sort_key"`
	SortDesc    bool              `json:"sort_desc"`
	Page        int               `json:"page"`
}

func (req *listRequest) controller() *viewstate.Controller {
	c := &viewstate.Controller{
		PageSize:    config.LeadPageSize,
		StatusField: "client_approval_label",
		Filters:     req.Filters,
		Status:      req.Approval,
		SortKey:     req.SortKey,
		SortDesc:    req.SortDesc,
		Page:        req.Page,
		Date:        viewstate.DateFilter{Field: "work_completion_date"},
	}
	c.Date.Set(req.Year, req.Month)
	return c
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func toRow(l store.LeadRecord) viewstate.Row {
	return viewstate.Row{
		"lead_id":                        l.LeadID,
		"project_id":                     l.ProjectID,
		"project_name":                   l.ProjectName,
		"work_completion_date":           deref(l.WorkCompletionDate),
		"work_completion_display":        format.DisplayDate(deref(l.WorkCompletionDate)),
		"revised_completion_date":        deref(l.RevisedCompletionDate),
		"final_completion_date":          deref(l.FinalCompletionDate),
		"unit_basis_commercial":          l.UnitBasisCommercial,
		"project_incharge_approval":      l.ProjectInchargeApproval,
		"project_approval_label":         format.ApprovalLabel(l.ProjectInchargeApproval),
		"project_incharge_approval_date": deref(l.ProjectInchargeApprovalDate),
		"client_incharge_approval":       l.ClientInchargeApproval,
		"client_approval_label":          format.ApprovalLabel(l.ClientInchargeApproval),
		"client_incharge_approval_date":  deref(l.ClientInchargeApprovalDate),
		"user_id":                        l.UserID,
		"cost":                           l.Cost,
		"cost_display":                   format.Currency(l.Cost),
		"zone":                           l.Zone,
		"state":                          l.State,
		"city":                           l.City,
		"tc_code":                        l.TCCode,
		"role":                           l.Role,
		"shift":                          l.Shift,
	}
}

func fetchRows(r *http.Request, pool *pgxpool.Pool, req *listRequest) ([]viewstate.Row, error) {
	records, err := store.ListLeads(r.Context(), pool, store.Filter{
		ProjectID:       req.ProjectID,
		ProjectNameLike: req.ProjectName,
		OrderBy:         req.SortKey,
		Descending:      req.SortDesc,
	})
	if err != nil {
		return nil, err
	}
	rows := make([]viewstate.Row, len(records))
	for i, l := range records {
		rows[i] = toRow(l)
	}
	return rows, nil
}

// Handler: GetLeads
func GetLeads(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req listRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			api.RespondWithError(w, http.StatusBadRequest, constants.ErrInvalidJSON)
			return
		}

		rows, err := fetchRows(r, pool, &req)
		if err != nil {
			api.RespondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}

		page := req.controller().Derive(rows)
		api.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
			"page":          page,
			"visible_pages": viewstate.VisiblePages(page.TotalPages, page.Page),
			"years":         viewstate.Years(rows, "work_completion_date"),
			"months":        viewstate.MonthsFor(rows, "work_completion_date", req.Year),
		})
	}
}

// Handler: UpdateApproval flips one approval flag on a single lead.
func UpdateApproval(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			UserID   string `json:"user_id"`
			LeadID   string `json:"lead_id"`
			Column   string `json:"column"`
			Approved bool   `json:"approved"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.LeadID == "" {
			api.RespondWithError(w, http.StatusBadRequest, constants.ErrInvalidJSON)
			return
		}
		if err := store.UpdateLeadApproval(r.Context(), pool, req.LeadID, req.Column, req.Approved); err != nil {
			api.RespondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}
		if logger.GlobalLogger != nil {
			logger.GlobalLogger.LogAudit("Lead " + req.LeadID + " " + req.Column + " updated by " + api.RequestedByFromCtx(r.Context(), req.UserID))
		}
		api.RespondWithJSON(w, http.StatusOK, map[string]interface{}{"lead_id": req.LeadID})
	}
}

// Handler: BulkUpdateApproval applies one approval flag across a key list.
// The update is a single request; there is no per-id atomicity beyond it.
func BulkUpdateApproval(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			UserID   string   `json:"user_id"`
			LeadIDs  []string `json:"lead_ids"`
			Column   string   `json:"column"`
			Approved bool     `json:"approved"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || len(req.LeadIDs) == 0 {
			api.RespondWithError(w, http.StatusBadRequest, constants.ErrInvalidJSON)
			return
		}
		updated, err := store.BulkUpdateLeadApproval(r.Context(), pool, req.LeadIDs, req.Column, req.Approved)
		if err != nil {
			api.RespondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}
		if logger.GlobalLogger != nil {
			logger.GlobalLogger.LogAudit("Bulk lead approval by " + api.RequestedByFromCtx(r.Context(), req.UserID))
		}
		api.RespondWithJSON(w, http.StatusOK, map[string]interface{}{"updated": updated})
	}
}

// Handler: UpdateRevisedDate sets the revised work-completion date on one
// lead. The date cell is normalized the same way imports are.
func UpdateRevisedDate(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			UserID      string `json:"user_id"`
			LeadID      string `json:"lead_id"`
			RevisedDate string `json:"revised_completion_date"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.LeadID == "" {
			api.RespondWithError(w, http.StatusBadRequest, constants.ErrInvalidJSON)
			return
		}
		date, ok := normalize.Date(req.RevisedDate)
		if !ok {
			api.RespondWithError(w, http.StatusBadRequest, "revised_completion_date is not a recognizable date")
			return
		}
		if err := store.UpdateLeadRevisedDate(r.Context(), pool, req.LeadID, date); err != nil {
			api.RespondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}
		api.RespondWithJSON(w, http.StatusOK, map[string]interface{}{"lead_id": req.LeadID, "revised_completion_date": date})
	}
}
