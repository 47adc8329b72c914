package importer

import (
	"errors"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/extrame/xls"
	"github.com/xuri/excelize/v2"
)

// FileExt returns the lowercased extension of an uploaded filename.
func FileExt(filename string) string {
	return strings.ToLower(filepath.Ext(filename))
}

// ParseUploadFile reads an uploaded file into a ParseResult. CSV goes through
// the raw-text path (bare comma split); .xlsx and .xls are read with their
// workbook libraries and fed through ParseRecords.
func ParseUploadFile(file multipart.File, ext string, spec KindSpec) (*ParseResult, error) {
	switch ext {
	case ".csv", ".txt":
		raw, err := io.ReadAll(file)
		if err != nil {
			return nil, err
		}
		return Parse(string(raw), spec)
	case ".xlsx":
		f, err := excelize.OpenReader(file)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		sheet := f.GetSheetName(0)
		records, err := f.GetRows(sheet)
		if err != nil {
			return nil, err
		}
		return ParseRecords(records, spec)
	case ".xls":
		book, err := xls.OpenReader(file, "utf-8")
		if err != nil {
			return nil, err
		}
		records := book.ReadAllCells(65536)
		return ParseRecords(records, spec)
	}
	return nil, errors.New("unsupported file type: " + ext)
}
