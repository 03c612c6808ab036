package migration

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	orig := logOutput
	logOutput = &buf
	t.Cleanup(func() { logOutput = orig })
	return &buf
}

func events(t *testing.T, buf *bytes.Buffer) []string {
	t.Helper()
	var out []string
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		var m map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &m))
		out = append(out, m["event"].(string))
	}
	return out
}

func TestEnsureMigrated_Skip(t *testing.T) {
	buf := captureLogs(t)
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT to_regclass").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	err = EnsureMigrated(context.Background(), db, time.UTC, "db")

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
	assert.Equal(t, []string{"db_migration_check", "db_migration_skip"}, events(t, buf))
}

func TestEnsureMigrated_RunsSteps(t *testing.T) {
	buf := captureLogs(t)
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT to_regclass").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectExec("CREATE TABLE IF NOT EXISTS reports").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("CREATE INDEX IF NOT EXISTS idx_reports_selected_date").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("CREATE INDEX IF NOT EXISTS idx_reports_created_at").WillReturnResult(sqlmock.NewResult(0, 0))

	err = EnsureMigrated(context.Background(), db, time.UTC, "db")

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
	got := events(t, buf)
	assert.Equal(t, "db_migration_start", got[1])
	assert.Equal(t, "db_migration_success", got[len(got)-1])
}

func TestEnsureMigrated_StepFailure(t *testing.T) {
	buf := captureLogs(t)
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT to_regclass").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectExec("CREATE TABLE IF NOT EXISTS reports").WillReturnError(errors.New("permission denied"))

	err = EnsureMigrated(context.Background(), db, time.UTC, "db")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "create_table_reports")
	assert.Contains(t, buf.String(), `"level":"error"`)
}

func TestEnsureMigrated_CheckFailure(t *testing.T) {
	captureLogs(t)
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT to_regclass").WillReturnError(errors.New("conn reset"))

	err = EnsureMigrated(context.Background(), db, time.UTC, "db")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to check sentinel table")
}
