package importer

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

const misHeader = "rev_month,customer_name,customer_id,project_id,project_name,revenue,approved_cost,unapproved_lead_count,unapproved_lead_cost,lob,margin"

func misLine(revMonth, custID, projID string) string {
	return fmt.Sprintf("%s,Acme,%s,%s,Rollout,1200,800,3,150,Staffing,400", revMonth, custID, projID)
}

func TestParse_TooFewLines(t *testing.T) {
	_, err := Parse("", MISKind())
	require.ErrorIs(t, err, ErrMissingData)

	_, err = Parse(misHeader+"\n\n  \n", MISKind())
	require.ErrorIs(t, err, ErrMissingData)
}

func TestParse_MissingHeaderReported(t *testing.T) {
	header := strings.TrimSuffix(misHeader, ",margin")
	_, err := Parse(header+"\n"+misLine("2025-02", "C1", "P1"), MISKind())

	var missing *MissingHeadersError
	require.ErrorAs(t, err, &missing)
	require.Contains(t, missing.Missing, "margin")
}

func TestParse_HeaderCaseInsensitive(t *testing.T) {
	res, err := Parse(strings.ToUpper(misHeader)+"\n"+misLine("2025-02", "C1", "P1"), MISKind())
	require.NoError(t, err)
	require.Len(t, res.Rows, 1)
}

func TestParse_NormalizesFields(t *testing.T) {
	res, err := Parse(misHeader+"\n"+misLine("05-02-2025", "C1", "P1"), MISKind())
	require.NoError(t, err)
	require.Len(t, res.Rows, 1)

	row := res.Rows[0]
	require.Equal(t, "2025-02-05", row["rev_month"])
	require.Equal(t, 3.0, row["unapproved_lead_count"])
}

func TestParse_RowMissingKeyDroppedSilently(t *testing.T) {
	raw := misHeader + "\n" +
		misLine("2025-02", "C1", "P1") + "\n" +
		misLine("2025-02", "", "P2") // no customer_id
	res, err := Parse(raw, MISKind())
	require.NoError(t, err)
	require.Len(t, res.Rows, 1)
	require.Equal(t, 1, res.Dropped)
}

func TestParse_LeadRowMissingLeadID(t *testing.T) {
	spec := LeadKind()
	var headers []string
	for name := range spec.Fields {
		headers = append(headers, name)
	}
	header := strings.Join(headers, ",")
	// one row of all-empty cells: lead_id missing
	res, err := Parse(header+"\n"+strings.Repeat(",", len(headers)-1), spec)
	require.NoError(t, err)
	require.Len(t, res.Rows, 0)
	require.Equal(t, 1, res.Dropped)
}

func TestParse_ShortAndLongRows(t *testing.T) {
	// trailing columns missing -> empty; extra columns -> ignored
	raw := "lead_id,project_id\nL1\nL2,P2,extra,cells"
	spec := KindSpec{
		Name: "t",
		Fields: map[string]FieldKind{
			"lead_id":    KindString,
			"project_id": KindString,
		},
		KeyFields: []string{"lead_id"},
	}
	res, err := Parse(raw, spec)
	require.NoError(t, err)
	require.Len(t, res.Rows, 2)
	require.Nil(t, res.Rows[0]["project_id"])
	require.Equal(t, "P2", res.Rows[1]["project_id"])
}

func TestMISKey_TruncatesToDate(t *testing.T) {
	row := Row{"rev_month": "2025-02-01T00:00:00", "customer_id": "C1", "project_id": "P1"}
	require.Equal(t, "2025-02-01|C1|P1", MISKey(row))
}

// fakeSink records insert calls and serves a canned existing-key set.
type fakeSink struct {
	existing  map[string]struct{}
	inserts   [][]Row
	failCalls map[int]error // insert call index -> error
	key       func(Row) string
	record    bool // when set, successful inserts feed back into existing
}

func (s *fakeSink) ExistingKeys(ctx context.Context, rows []Row) (map[string]struct{}, error) {
	out := make(map[string]struct{}, len(s.existing))
	for k := range s.existing {
		out[k] = struct{}{}
	}
	return out, nil
}

func (s *fakeSink) Insert(ctx context.Context, rows []Row) error {
	call := len(s.inserts)
	s.inserts = append(s.inserts, rows)
	if err, ok := s.failCalls[call]; ok {
		return err
	}
	if s.record {
		for _, r := range rows {
			s.existing[s.key(r)] = struct{}{}
		}
	}
	return nil
}

func leadRows(n int) []Row {
	rows := make([]Row, n)
	for i := range rows {
		rows[i] = Row{"lead_id": fmt.Sprintf("L%04d", i)}
	}
	return rows
}

func TestSubmit_ChunksOf500(t *testing.T) {
	sink := &fakeSink{existing: map[string]struct{}{}}
	summary := Submit(context.Background(), leadRows(1200), LeadKey, sink)

	require.Len(t, sink.inserts, 3)
	require.Len(t, sink.inserts[0], 500)
	require.Len(t, sink.inserts[1], 500)
	require.Len(t, sink.inserts[2], 200)
	require.Equal(t, Summary{Processed: 1200, Inserted: 1200}, summary)
}

func TestSubmit_MiddleChunkFailure(t *testing.T) {
	sink := &fakeSink{
		existing:  map[string]struct{}{},
		failCalls: map[int]error{1: errors.New("connection reset")},
	}
	summary := Submit(context.Background(), leadRows(1200), LeadKey, sink)

	require.Len(t, sink.inserts, 2, "submission stops at the failed chunk")
	require.Equal(t, 1200, summary.Processed)
	require.Equal(t, 500, summary.Inserted)
	require.Equal(t, 500, summary.Failed)
	require.Equal(t, 200, summary.Skipped, "unattempted remainder counts as skipped")
	require.Len(t, summary.Errors, 1)
}

func TestSubmit_DedupIdempotence(t *testing.T) {
	sink := &fakeSink{existing: map[string]struct{}{}, key: LeadKey, record: true}
	rows := leadRows(42)

	first := Submit(context.Background(), rows, LeadKey, sink)
	require.Equal(t, 42, first.Inserted)

	second := Submit(context.Background(), rows, LeadKey, sink)
	require.Equal(t, 42, second.Processed)
	require.Equal(t, 0, second.Inserted)
	require.Equal(t, second.Processed, second.Skipped)
}

func TestSubmit_InBatchDuplicates(t *testing.T) {
	sink := &fakeSink{existing: map[string]struct{}{}}
	rows := []Row{
		{"lead_id": "L1"},
		{"lead_id": "L2"},
		{"lead_id": "L1"}, // repeated within the batch
	}
	summary := Submit(context.Background(), rows, LeadKey, sink)
	require.Equal(t, 3, summary.Processed)
	require.Equal(t, 2, summary.Inserted)
	require.Equal(t, 1, summary.Skipped)
}

func TestChunkStrings(t *testing.T) {
	ids := make([]string, 2500)
	for i := range ids {
		ids[i] = fmt.Sprint(i)
	}
	chunks := ChunkStrings(ids, 1000)
	require.Len(t, chunks, 3)
	require.Len(t, chunks[2], 500)
}
