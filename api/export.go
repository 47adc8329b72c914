package api

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"RevTrackSaas/api/constants"
	"RevTrackSaas/internal/format"
)

// WriteCSV streams a quoted CSV download with a timestamped filename.
func WriteCSV(w http.ResponseWriter, prefix string, header []string, rows [][]string) {
	filename := format.ExportFilename(prefix, "csv", time.Now())
	w.Header().Set(constants.ContentTypeHeader, constants.ContentTypeCSV)
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)

	cw := csv.NewWriter(w)
	cw.Write(header)
	for _, row := range rows {
		cw.Write(row)
	}
	cw.Flush()
}

// WriteXLSX streams a single-sheet workbook download.
func WriteXLSX(w http.ResponseWriter, prefix string, header []string, rows [][]string) {
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)

	cell, _ := excelize.CoordinatesToCellName(1, 1)
	f.SetSheetRow(sheet, cell, &header)
	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		values := make([]interface{}, len(row))
		for j, v := range row {
			values[j] = v
		}
		f.SetSheetRow(sheet, cell, &values)
	}

	filename := format.ExportFilename(prefix, "xlsx", time.Now())
	w.Header().Set(constants.ContentTypeHeader, constants.ContentTypeXLSX)
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	f.Write(w)
}

// CellString renders any table cell value for an export row.
func CellString(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case decimal.Decimal:
		return t.String()
	case bool:
		return strconv.FormatBool(t)
	}
	return fmt.Sprint(v)
}
