package state

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newMockStore wires a sqlmock connection into a store so driver errors
// can be injected.
func newMockStore(t *testing.T) (*SQLiteStore, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return &SQLiteStore{db: db, logger: slog.New(slog.DiscardHandler)}, mock
}

var generationColumns = []string{
	"id", "pipeline", "sql_text", "descriptor_json",
	"source_type", "sink_type", "status", "error", "created_at",
}

func TestRecordGeneration_ExecError(t *testing.T) {
	store, mock := newMockStore(t)
	mock.ExpectExec("INSERT INTO generations").WillReturnError(assert.AnError)

	err := store.RecordGeneration(context.Background(), &Generation{
		Pipeline: "events",
		SQLText:  "q",
		Status:   GenerationStatusSuccess,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to record generation")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetGeneration_QueryError(t *testing.T) {
	store, mock := newMockStore(t)
	mock.ExpectQuery("SELECT (.+) FROM generations").WillReturnError(assert.AnError)

	_, err := store.GetGeneration(context.Background(), "some-id")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to get generation")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetGeneration_NoRows(t *testing.T) {
	store, mock := newMockStore(t)
	mock.ExpectQuery("SELECT (.+) FROM generations").
		WillReturnRows(sqlmock.NewRows(generationColumns))

	_, err := store.GetGeneration(context.Background(), "missing-id")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "generation not found")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListGenerations_QueryError(t *testing.T) {
	store, mock := newMockStore(t)
	mock.ExpectQuery("SELECT (.+) FROM generations").WillReturnError(assert.AnError)

	_, err := store.ListGenerations(context.Background(), ListFilter{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to list generations")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListGenerations_ScanError(t *testing.T) {
	store, mock := newMockStore(t)

	// A NULL id cannot scan into a plain string.
	rows := sqlmock.NewRows(generationColumns).
		AddRow(nil, "events", "q", "{}", "cassandra", "druid", "success", nil, time.Now())
	mock.ExpectQuery("SELECT (.+) FROM generations").WillReturnRows(rows)

	_, err := store.ListGenerations(context.Background(), ListFilter{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to scan generation")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListGenerations_RowError(t *testing.T) {
	store, mock := newMockStore(t)

	rows := sqlmock.NewRows(generationColumns).
		AddRow("id-1", "events", "q", "{}", "cassandra", "druid", "success", nil, time.Now()).
		RowError(0, assert.AnError)
	mock.ExpectQuery("SELECT (.+) FROM generations").WillReturnRows(rows)

	_, err := store.ListGenerations(context.Background(), ListFilter{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to list generations")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPruneGenerations_ExecError(t *testing.T) {
	store, mock := newMockStore(t)
	mock.ExpectExec("DELETE FROM generations").WillReturnError(assert.AnError)

	_, err := store.PruneGenerations(context.Background(), 5)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to prune generations")
	assert.NoError(t, mock.ExpectationsWereMet())
}
