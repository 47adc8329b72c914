package mis

import (
	"encoding/json"
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"

	"RevTrackSaas/api"
	"RevTrackSaas/api/constants"
)

var exportColumns = []string{
	"sl_no", "rev_month_display", "customer_name", "project_name",
	"revenue_display", "approved_cost_display", "unapproved_lead_count",
	"unapproved_lead_cost_display", "lob", "margin_display",
}

var exportHeader = []string{
	"Sl No", "Rev Month", "Customer", "Project",
	"Revenue", "Approved Cost", "Unapproved Leads",
	"Unapproved Lead Cost", "LOB", "Margin",
}

// Handler: Export writes the current filtered rollup view as a CSV or XLSX
// download, minus pagination.
func Export(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			listRequest
			Format string `json:"format"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			api.RespondWithError(w, http.StatusBadRequest, constants.ErrInvalidJSON)
			return
		}

		records, err := fetchRows(r, pool, &req.listRequest)
		if err != nil {
			api.RespondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}

		c := req.controller()
		c.PageSize = len(records) + 1 // export is never paginated
		c.Page = 1
		page := c.Derive(records)

		out := make([][]string, len(page.Rows))
		for i, row := range page.Rows {
			line := make([]string, len(exportColumns))
			for j, col := range exportColumns {
				line[j] = api.CellString(row[col])
			}
			out[i] = line
		}

		if req.Format == "xlsx" {
			api.WriteXLSX(w, "mis", exportHeader, out)
			return
		}
		api.WriteCSV(w, "mis", exportHeader, out)
	}
}
