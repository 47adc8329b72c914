package mis

import (
	"encoding/json"
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"

	"RevTrackSaas/api"
	"RevTrackSaas/api/constants"
	"RevTrackSaas/internal/config"
	"RevTrackSaas/internal/format"
	"RevTrackSaas/internal/store"
	"RevTrackSaas/internal/viewstate"
)

// listRequest carries the drill-down params plus the rollup table view
// state. mis_records has no status column, so the status slot of the view
// controller is unused here.
type listRequest struct {
	UserID     string            `json:"user_id"`
	CustomerID string            `json:"customer_id"`
	ProjectID  string            `json:"project_id"`
	RevMonth   string            `json:"rev_month"`
	Filters    map[string]string `json:"filters"`
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
		PageSize: config.MISPageSize,
		Filters:  req.Filters,
		SortKey:  req.SortKey,
		SortDesc: req.SortDesc,
		Page:     req.Page,
		Date:     viewstate.DateFilter{Field: "rev_month"},
	}
	c.Date.Set(req.Year, req.Month)
	return c
}

func toRow(m store.MISRecord) viewstate.Row {
	return viewstate.Row{
		"sl_no":                        m.SlNo,
		"rev_month":                    m.RevMonth,
		"rev_month_display":            format.DisplayDate(m.RevMonth),
		"customer_id":                  m.CustomerID,
		"customer_name":                m.CustomerName,
		"project_id":                   m.ProjectID,
		"project_name":                 m.ProjectName,
		"revenue":                      m.Revenue,
		"revenue_display":              format.Currency(m.Revenue),
		"approved_cost":                m.ApprovedCost,
		"approved_cost_display":        format.Currency(m.ApprovedCost),
		"unapproved_lead_count":        m.UnapprovedLeadCount,
		"unapproved_lead_cost":         m.UnapprovedLeadCost,
		"unapproved_lead_cost_display": format.Currency(m.UnapprovedLeadCost),
		"lob":                          m.LOB,
		"margin":                       m.Margin,
		"margin_display":               format.Currency(m.Margin),
	}
}

func fetchRows(r *http.Request, pool *pgxpool.Pool, req *listRequest) ([]viewstate.Row, error) {
	records, err := store.ListMIS(r.Context(), pool, req.storeFilter(r))
	if err != nil {
		return nil, err
	}
	rows := make([]viewstate.Row, len(records))
	for i, m := range records {
		rows[i] = toRow(m)
	}
	return rows, nil
}

// Handler: GetMIS
func GetMIS(pool *pgxpool.Pool) http.HandlerFunc {
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

// Handler: RevenueChart feeds the revenue/margin by month bar chart.
func RevenueChart(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req listRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			api.RespondWithError(w, http.StatusBadRequest, constants.ErrInvalidJSON)
			return
		}
		points, err := store.RevenueByMonth(r.Context(), pool, req.storeFilter(r))
		if err != nil {
			api.RespondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}
		api.RespondWithJSON(w, http.StatusOK, points)
	}
}

// Handler: LOBChart feeds the line-of-business share chart.
func LOBChart(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req listRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			api.RespondWithError(w, http.StatusBadRequest, constants.ErrInvalidJSON)
			return
		}
		shares, err := store.LOBShares(r.Context(), pool, req.storeFilter(r))
		if err != nil {
			api.RespondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}
		api.RespondWithJSON(w, http.StatusOK, shares)
	}
}
