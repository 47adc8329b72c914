package mis

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

// misSink writes parsed rollup rows through the store layer. The dedup
// pre-read is keyed per distinct rev_month in the batch.
type misSink struct {
	pool *pgxpool.Pool
}

func (s *misSink) ExistingKeys(ctx context.Context, rows []importer.Row) (map[string]struct{}, error) {
	seen := make(map[string]struct{})
	var months []string
	for _, row := range rows {
		month, _ := row["rev_month"].(string)
		if month == "" {
			continue
		}
		if _, dup := seen[month]; dup {
			continue
		}
		seen[month] = struct{}{}
		months = append(months, month)
	}
	return store.ExistingMISKeys(ctx, s.pool, months)
}

func (s *misSink) Insert(ctx context.Context, rows []importer.Row) error {
	records := make([]store.MISRecord, len(rows))
	for i, row := range rows {
		records[i] = rowToMIS(row)
	}
	return store.InsertMISChunk(ctx, s.pool, records)
}

func rowString(row importer.Row, field string) string {
	s, _ := row[field].(string)
	return s
}

func rowDecimal(row importer.Row, field string) decimal.Decimal {
	if d, ok := row[field].(decimal.Decimal); ok {
		return d
	}
	return decimal.Zero
}

func rowToMIS(row importer.Row) store.MISRecord {
	count := 0
	if n, ok := row["unapproved_lead_count"].(float64); ok {
		count = int(n)
	}
	return store.MISRecord{
		RevMonth:            rowString(row, "rev_month"),
		CustomerID:          rowString(row, "customer_id"),
		CustomerName:        rowString(row, "customer_name"),
		ProjectID:           rowString(row, "project_id"),
		ProjectName:         rowString(row, "project_name"),
		Revenue:             rowDecimal(row, "revenue"),
		ApprovedCost:        rowDecimal(row, "approved_cost"),
		UnapprovedLeadCount: count,
		UnapprovedLeadCost:  rowDecimal(row, "unapproved_lead_cost"),
		LOB:                 rowString(row, "lob"),
		Margin:              rowDecimal(row, "margin"),
	}
}

// Handler: Upload ingests a rollup file (csv, txt, xlsx or xls). Besides the
// usual summary it detects the known sl_no sequence conflict in the insert
// errors and attaches the remediation text so the operator can fix the
// sequence before re-importing.
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

		result, err := importer.ParseUploadFile(file, importer.FileExt(fh.Filename), importer.MISKind())
		if err != nil {
			api.RespondWithError(w, http.StatusBadRequest, err.Error())
			return
		}

		batchID := uuid.New().String()
		summary := importer.Submit(r.Context(), result.Rows, importer.MISKey, &misSink{pool: pool})
		if logger.GlobalLogger != nil {
			logger.GlobalLogger.LogAudit("MIS upload " + fh.Filename + " batch " + batchID + " by " + api.RequestedByFromCtx(r.Context(), userID))
		}

		resp := map[string]interface{}{
			"batch_id": batchID,
			"summary":  summary,
			"dropped":  result.Dropped,
		}
		for _, msg := range summary.Errors {
			if store.MessageIndicatesConflict(msg) {
				resp["conflict_help"] = store.SequenceConflictHelp
				break
			}
		}
		api.RespondWithJSON(w, http.StatusOK, resp)
	}
}
