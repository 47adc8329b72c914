package leads

import (
	"encoding/json"
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"

	"RevTrackSaas/api"
	"RevTrackSaas/api/constants"
)

var exportColumns = []string{
	"lead_id", "project_name", "work_completion_display", "revised_completion_date",
	"unit_basis_commercial", "cost_display", "project_approval_label",
	"client_approval_label", "zone", "state", "city", "tc_code", "role", "shift",
}

var exportHeader = []string{
	"Lead ID", "Project", "Work Completion", "Revised Completion",
	"Unit Basis Commercial", "Cost", "Project Incharge",
	"Client Incharge", "Zone", "State", "City", "TC Code", "Role", "Shift",
}

// Handler: Export writes the current filtered lead view as a CSV or XLSX
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
			api.WriteXLSX(w, "leads", exportHeader, out)
			return
		}
		api.WriteCSV(w, "leads", exportHeader, out)
	}
}
