package importer

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"RevTrackSaas/internal/config"
	"RevTrackSaas/internal/normalize"
)

// Batch import pipeline: Parse turns raw delimited text into normalized rows,
// Submit deduplicates the batch against the store and writes it in bounded
// chunks. Both phases hold the whole batch in memory; files are monthly
// exports of a few thousand rows, not streams.

// FieldKind selects the normalizer applied to a column.
type FieldKind int

const (
	KindString FieldKind = iota
	KindDate
	KindNumber
	KindMoney
	KindBool
)

// KindSpec describes one import target: its required headers and the fields
// that jointly form the row's primary key.
type KindSpec struct {
	Name      string
	Fields    map[string]FieldKind // required header -> normalizer
	KeyFields []string
}

// Row holds normalized cell values keyed by header name. Values are string,
// float64, decimal.Decimal or bool; a cell that failed normalization is nil.
type Row map[string]any

// ParseResult is the surviving row set plus the count of rows silently
// dropped for a missing primary key. The drop is intentional data hygiene
// inherited from the source system; the count exists so callers (and tests)
// can observe it.
type ParseResult struct {
	Rows    []Row
	Dropped int
}

// ErrMissingData means the input had no header row plus at least one data row.
var ErrMissingData = errors.New("file must contain a header row and at least one data row")

// MissingHeadersError identifies every required header absent from the input.
type MissingHeadersError struct {
	Missing []string
}

func (e *MissingHeadersError) Error() string {
	return "missing required headers: " + strings.Join(e.Missing, ", ")
}

// Parse splits raw text into lines on any newline convention, reads the first
// non-blank line as the header row, checks required headers
// case-insensitively, and normalizes every remaining line into a Row.
//
// Cells are split on bare commas. Quoted fields with embedded delimiters are
// not handled; the feeding exports never quote, and changing that here would
// silently change which rows survive.
func Parse(raw string, spec KindSpec) (*ParseResult, error) {
	lines := splitLines(raw)
	records := make([][]string, len(lines))
	for i, line := range lines {
		records[i] = splitCells(line)
	}
	return ParseRecords(records, spec)
}

// ParseRecords is the pre-celled entry point used for spreadsheet uploads,
// where the workbook reader has already split rows into cells.
func ParseRecords(records [][]string, spec KindSpec) (*ParseResult, error) {
	if len(records) < 2 {
		return nil, ErrMissingData
	}

	header := records[0]
	position := make(map[string]int, len(header))
	for i, h := range header {
		position[strings.ToLower(strings.TrimSpace(h))] = i
	}

	var missing []string
	for name := range spec.Fields {
		if _, ok := position[strings.ToLower(name)]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return nil, &MissingHeadersError{Missing: missing}
	}

	result := &ParseResult{}
	for _, cells := range records[1:] {
		row := make(Row, len(spec.Fields))
		for name, kind := range spec.Fields {
			idx := position[strings.ToLower(name)]
			cell := ""
			if idx < len(cells) {
				cell = strings.TrimSpace(cells[idx])
			}
			row[name] = normalizeCell(cell, kind)
		}
		if !hasKey(row, spec.KeyFields) {
			result.Dropped++
			continue
		}
		result.Rows = append(result.Rows, row)
	}
	return result, nil
}

func normalizeCell(cell string, kind FieldKind) any {
	switch kind {
	case KindDate:
		if v, ok := normalize.Date(cell); ok {
			return v
		}
		return nil
	case KindNumber:
		if v, ok := normalize.Number(cell); ok {
			return v
		}
		return nil
	case KindMoney:
		if v, ok := normalize.Decimal(cell); ok {
			return v
		}
		return nil
	case KindBool:
		if v, known := normalize.Bool(cell); known {
			return v
		}
		return nil
	}
	if cell == "" {
		return nil
	}
	return cell
}

func hasKey(row Row, keyFields []string) bool {
	for _, f := range keyFields {
		v, ok := row[f]
		if !ok || v == nil {
			return false
		}
		if s, isStr := v.(string); isStr && strings.TrimSpace(s) == "" {
			return false
		}
	}
	return true
}

func splitLines(raw string) []string {
	raw = strings.ReplaceAll(raw, "\r\n", "\n")
	raw = strings.ReplaceAll(raw, "\r", "\n")
	var lines []string
	for _, line := range strings.Split(raw, "\n") {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

func splitCells(line string) []string {
	cells := strings.Split(line, ",")
	for i := range cells {
		cells[i] = strings.TrimSpace(cells[i])
	}
	return cells
}

// Sink is the write side of a submission. ExistingKeys pre-reads the dedup
// keys already present remotely for the batch; Insert writes one chunk.
type Sink interface {
	ExistingKeys(ctx context.Context, rows []Row) (map[string]struct{}, error)
	Insert(ctx context.Context, rows []Row) error
}

// Summary aggregates a submission outcome. Skipped covers both remote and
// in-batch duplicates: processed - inserted - failed.
type Summary struct {
	Processed int      `json:"processed"`
	Inserted  int      `json:"inserted"`
	Skipped   int      `json:"skipped"`
	Failed    int      `json:"failed"`
	Errors    []string `json:"errors,omitempty"`
}

// Submit deduplicates rows against the sink's existing keys and within the
// batch itself, then inserts survivors in chunks of config.InsertChunkSize,
// strictly sequentially. A failed chunk counts all of its rows as failed and
// stops the submission: later chunks are never attempted (they land in
// Skipped), there are no retries, and chunks that already succeeded are not
// rolled back.
func Submit(ctx context.Context, rows []Row, key func(Row) string, sink Sink) Summary {
	summary := Summary{Processed: len(rows)}
	if len(rows) == 0 {
		return summary
	}

	existing, err := sink.ExistingKeys(ctx, rows)
	if err != nil {
		summary.Failed = len(rows)
		summary.Errors = append(summary.Errors, fmt.Sprintf("duplicate pre-read failed: %v", err))
		return summary
	}

	seen := make(map[string]struct{}, len(rows))
	survivors := make([]Row, 0, len(rows))
	for _, row := range rows {
		k := key(row)
		if _, dup := existing[k]; dup {
			continue
		}
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		survivors = append(survivors, row)
	}

	for start := 0; start < len(survivors); start += config.InsertChunkSize {
		end := start + config.InsertChunkSize
		if end > len(survivors) {
			end = len(survivors)
		}
		chunk := survivors[start:end]
		if err := sink.Insert(ctx, chunk); err != nil {
			summary.Failed += len(chunk)
			summary.Errors = append(summary.Errors, err.Error())
			break
		}
		summary.Inserted += len(chunk)
	}

	summary.Skipped = summary.Processed - summary.Inserted - summary.Failed
	return summary
}

// ChunkStrings splits ids into slices of at most size, for chunked pre-reads.
func ChunkStrings(ids []string, size int) [][]string {
	if size <= 0 {
		size = config.LookupChunkSize
	}
	var chunks [][]string
	for start := 0; start < len(ids); start += size {
		end := start + size
		if end > len(ids) {
			end = len(ids)
		}
		chunks = append(chunks, ids[start:end])
	}
	return chunks
}
