package validations

import (
	"encoding/json"
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"

	"RevTrackSaas/api"
	"RevTrackSaas/api/constants"
	"RevTrackSaas/internal/config"
	"RevTrackSaas/internal/format"
	"RevTrackSaas/internal/logger"
	"RevTrackSaas/internal/store"
	"RevTrackSaas/internal/viewstate"
)

// listRequest carries the drill-down params plus the table view state. The
// drill-down fields narrow the remote fetch; everything else is applied
// in memory over the fetched set on every change.
type listRequest struct {
	UserID     string            `json:"user_id"`
	CustomerID string            `json:"customer_id"`
	ProjectID  string            `json:"project_id"`
	RevMonth   string            `json:"rev_month"`
	Filters    map[string]string `json:"filters"`
	Status     string            `json:"status"`
	Year       string            `json:"year"`
	Month      string            `json:"month"`
	SortKey    string            `json:"sort_key"`
	SortDesc   bool              `json:"sort_desc"`
	Page       int               `json:"page"`
}

func (req *listRequest) storeFilter(r *http.Request) store.Filter {
	f := store.Filter{
		CustomerID: req.CustomerID,
		ProjectID:  req.ProjectID,
		RevMonth:   req.RevMonth,
		OrderBy:    req.SortKey,
		Descending: req.SortDesc,
	}
	// client sessions only ever see their own customer
	if scope := api.CustomerScopeFromCtx(r.Context()); scope != "" {
		f.CustomerID = scope
	}
	return f
}

func (req *listRequest) controller() *viewstate.Controller {
	c := &viewstate.Controller{
		PageSize:    config.ValidationPageSize,
		StatusField: "validation_status",
		Filters:     req.Filters,
		Status:      req.Status,
		SortKey:     req.SortKey,
		SortDesc:    req.SortDesc,
		Page:        req.Page,
		Date:        viewstate.DateFilter{Field: "rev_month"},
	}
	c.Date.Set(req.Year, req.Month)
	return c
}

func toRow(v store.ValidationRecord) viewstate.Row {
	label, class := format.StatusBadge(v.ValidationStatus)
	approvalAt := ""
	if v.ValidationApproval != nil {
		approvalAt = v.ValidationApproval.Format(constants.DateTimeFormat)
	}
	return viewstate.Row{
		"sl_no":                  v.SlNo,
		"validation_file_id":     v.ValidationFileID,
		"customer_id":            v.CustomerID,
		"customer_name":          v.CustomerName,
		"project_id":             v.ProjectID,
		"project_name":           v.ProjectName,
		"rev_month":              v.RevMonth,
		"rev_month_display":      format.DisplayDate(v.RevMonth),
		"revenue":                v.Revenue,
		"revenue_display":        format.Currency(v.Revenue),
		"validation_status":      v.ValidationStatus,
		"status_label":           label,
		"status_class":           class,
		"validation_approval_at": approvalAt,
	}
}

// fetchRows is the single upstream fetch backing both the table and its
// export: remote filter narrows to the drill-down scope, everything finer
// happens in memory.
func fetchRows(r *http.Request, pool *pgxpool.Pool, req *listRequest) ([]viewstate.Row, error) {
	records, err := store.ListValidations(r.Context(), pool, req.storeFilter(r))
	if err != nil {
		return nil, err
	}
	rows := make([]viewstate.Row, len(records))
	for i, v := range records {
		rows[i] = toRow(v)
	}
	return rows, nil
}

// Handler: GetValidations
func GetValidations(pool *pgxpool.Pool) http.HandlerFunc {
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
			"years":         viewstate.Years(rows, "rev_month"),
			"months":        viewstate.MonthsFor(rows, "rev_month", req.Year),
		})
	}
}

// Handler: BulkUpdateStatus approves or rejects a set of validation files in
// one request. The approval timestamp is set server-side.
func BulkUpdateStatus(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			UserID string   `json:"user_id"`
			IDs    []string `json:"validation_file_ids"`
			Status string   `json:"status"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || len(req.IDs) == 0 {
			api.RespondWithError(w, http.StatusBadRequest, constants.ErrInvalidJSON)
			return
		}
		switch req.Status {
		case constants.StatusApproved, constants.StatusRejected, constants.StatusPending:
		default:
			api.RespondWithError(w, http.StatusBadRequest, "status must be Pending, Approved or Rejected")
			return
		}

		updated, err := store.UpdateValidationStatus(r.Context(), pool, req.IDs, req.Status)
		if err != nil {
			api.RespondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}
		if logger.GlobalLogger != nil {
			logger.GlobalLogger.LogAudit("Validation status " + req.Status + " by " + api.RequestedByFromCtx(r.Context(), req.UserID))
		}
		api.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
			"updated": updated,
		})
	}
}

// Handler: StatusCounts feeds the approved/pending/rejected chart.
func StatusCounts(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req listRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			api.RespondWithError(w, http.StatusBadRequest, constants.ErrInvalidJSON)
			return
		}
		counts, err := store.ValidationStatusCounts(r.Context(), pool, req.storeFilter(r))
		if err != nil {
			api.RespondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}
		api.RespondWithJSON(w, http.StatusOK, counts)
	}
}
