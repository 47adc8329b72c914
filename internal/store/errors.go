package store

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// SequenceConflictHelp is the remediation text surfaced when an insert trips
// a unique violation on the serial column. It happens when the sl_no sequence
// falls behind the table after manual data loads; the fix is manual on the
// remote side, not something the import retries.
const SequenceConflictHelp = "The sl_no sequence is out of sync with the table. " +
	"Run: SELECT setval(pg_get_serial_sequence('<table>','sl_no'), (SELECT MAX(sl_no) FROM <table>)); then re-import the failed rows."

// IsSequenceConflict pattern-matches the known remote conflict signature:
// SQLSTATE 23505 or an error message mentioning a duplicate key or conflict.
func IsSequenceConflict(err error) bool {
	if err == nil {
		return false
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return true
	}
	return MessageIndicatesConflict(err.Error())
}

// MessageIndicatesConflict is the string-level form of IsSequenceConflict,
// for error text already flattened into an import report.
func MessageIndicatesConflict(msg string) bool {
	msg = strings.ToLower(msg)
	return strings.Contains(msg, "duplicate key value") || strings.Contains(msg, "conflict")
}
