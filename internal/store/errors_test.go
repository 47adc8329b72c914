package store

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"
)

func TestIsSequenceConflict(t *testing.T) {
	require.False(t, IsSequenceConflict(nil))
	require.False(t, IsSequenceConflict(errors.New("connection refused")))

	require.True(t, IsSequenceConflict(&pgconn.PgError{Code: "23505"}))
	require.True(t, IsSequenceConflict(fmt.Errorf("insert mis chunk: %w", &pgconn.PgError{Code: "23505"})))
	require.True(t, IsSequenceConflict(errors.New(`duplicate key value violates unique constraint "mis_records_pkey"`)))
	require.True(t, IsSequenceConflict(errors.New("write conflict on mis_records")))
}

func TestMessageIndicatesConflict(t *testing.T) {
	require.True(t, MessageIndicatesConflict("ERROR: Duplicate key value violates unique constraint"))
	require.False(t, MessageIndicatesConflict("timeout waiting for connection"))
}
