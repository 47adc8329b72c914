package leads

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"RevTrackSaas/api"
	"RevTrackSaas/internal/importer"
	"RevTrackSaas/internal/logger"
	"RevTrackSaas/internal/store"
)

// leadSink writes parsed lead rows through the store layer.
type leadSink struct {
	pool *pgxpool.Pool
}

func (s *leadSink) ExistingKeys(ctx context.Context, rows []importer.Row) (map[string]struct{}, error) {
	ids := make([]string, 0, len(rows))
	for _, row := range rows {
		if id := importer.LeadKey(row); id != "" {
			ids = append(ids, id)
		}
	}
	return store.ExistingLeadIDs(ctx, s.pool, ids)
}

func (s *leadSink) Insert(ctx context.Context, rows []importer.Row) error {
	records := make([]store.LeadRecord, len(rows))
	for i, row := range rows {
		records[i] = rowToLead(row)
	}
	return store.InsertLeadChunk(ctx, s.pool, records)
}

func rowString(row importer.Row, field string) string {
	s, _ := row[field].(string)
	return s
}

func rowStringPtr(row importer.Row, field string) *string {
	if s, ok := row[field].(string); ok {
		return &s
	}
	return nil
}

func rowDecimal(row importer.Row, field string) decimal.Decimal {
	if d, ok := row[field].(decimal.Decimal); ok {
		return d
	}
	return decimal.Zero
}

func rowBoolPtr(row importer.Row, field string) *bool {
	if b, ok := row[field].(bool); ok {
		return &b
	}
	return nil
}

func rowToLead(row importer.Row) store.LeadRecord {
	return store.LeadRecord{
		LeadID:                      importer.LeadKey(row),
		ProjectID:                   rowString(row, "project_id"),
		ProjectName:                 rowString(row, "project_name"),
		WorkCompletionDate:          rowStringPtr(row, "work_completion_date"),
		UnitBasisCommercial:         rowDecimal(row, "unit_basis_commercial"),
		ProjectInchargeApproval:     rowBoolPtr(row, "project_incharge_approval"),
		ProjectInchargeApprovalDate: rowStringPtr(row, "project_incharge_approval_date"),
		ClientInchargeApproval:      rowBoolPtr(row, "client_incharge_approval"),
		ClientInchargeApprovalDate:  rowStringPtr(row, "client_incharge_approval_date"),
		UserID:                      rowString(row, "user_id"),
		Cost:                        rowDecimal(row, "cost"),
		Zone:                        rowString(row, "zone"),
		State:                       rowString(row, "state"),
		City:                        rowString(row, "city"),
		TCCode:                      rowString(row, "tc_code"),
		Role:                        rowString(row, "role"),
		Shift:                       rowString(row, "shift"),
	}
}

// Handler: Upload ingests a lead file (csv, txt, xlsx or xls), deduplicates
// it by lead_id against the table and within the batch, and inserts the
// survivors in chunks.
func Upload(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(32 << 20); err != nil {
			api.RespondWithError(w, http.StatusBadRequest, "Failed to parse multipart form")
			return
		}
		userID := r.FormValue("user_id")
		files := r.MultipartForm.File["file"]
		if len(files) == 0 {
			api.RespondWithError(w, http.StatusBadRequest, "No files uploaded")
			return
		}
		fh := files[0]

		file, err := fh.Open()
		if err != nil {
			api.RespondWithError(w, http.StatusBadRequest, "Failed to open uploaded file")
			return
		}
		defer file.Close()

		result, err := importer.ParseUploadFile(file, importer.FileExt(fh.Filename), importer.LeadKind())
		if err != nil {
			api.RespondWithError(w, http.StatusBadRequest, err.Error())
			return
		}

		batchID := uuid.New().String()
		summary := importer.Submit(r.Context(), result.Rows, importer.LeadKey, &leadSink{pool: pool})
		if logger.GlobalLogger != nil {
			logger.GlobalLogger.LogAudit("Lead upload " + fh.Filename + " batch " + batchID + " by " + api.RequestedByFromCtx(r.Context(), userID))
		}
		api.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
			"batch_id": batchID,
			"summary":  summary,
			"dropped":  result.Dropped,
		})
	}
}
