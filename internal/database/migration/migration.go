package migration

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"time"
)

type migrationStep struct {
	Name string
	SQL  string
}

var steps = []migrationStep{
	{
		Name: "create_table_reports",
		SQL: `CREATE TABLE IF NOT EXISTS reports (
  id            UUID        PRIMARY KEY,
  filename      TEXT        NOT NULL,
  storage_path  TEXT        NOT NULL UNIQUE,
  size          BIGINT      NOT NULL CHECK (size >= 0),
  content_type  TEXT        NOT NULL,
  selected_date TEXT        NOT NULL DEFAULT '',
  row_count     INTEGER     NOT NULL CHECK (row_count >= 0),
  created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_index_reports_selected_date",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_reports_selected_date ON reports (selected_date);`,
	},
	{
		Name: "create_index_reports_created_at",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_reports_created_at ON reports (created_at);`,
	},
}

// EnsureMigrated creates the report archive schema unless the 'reports' table already exists.
func EnsureMigrated(ctx context.Context, db *sql.DB, loc *time.Location, dbHost string) error {
	start := time.Now()
	ev := func(event, status string, extra map[string]any) {
		data := map[string]any{
			"component": "database",
			"event":     event,
			"status":    status,
			"db_host":   dbHost,
		}
		for k, v := range extra {
			data[k] = v
		}
		logJSON(loc, data)
	}

	ev("db_migration_check", "starting", nil)

	var exists bool
	if err := db.QueryRowContext(ctx, "SELECT to_regclass('public.reports') IS NOT NULL").Scan(&exists); err != nil {
		ev("db_migration_failed", "error", map[string]any{
			"error_message": fmt.Sprintf("failed to check sentinel table: %v", err),
			"duration_ms":   time.Since(start).Milliseconds(),
		})
		return fmt.Errorf("failed to check sentinel table: %w", err)
	}
	if exists {
		ev("db_migration_skip", "success", map[string]any{
			"msg":         "schema already exists, skipping migration",
			"duration_ms": time.Since(start).Milliseconds(),
		})
		return nil
	}

	ev("db_migration_start", "in_progress", nil)
	for _, step := range steps {
		stepStart := time.Now()
		if _, err := db.ExecContext(ctx, step.SQL); err != nil {
			ev("db_migration_failed", "error", map[string]any{
				"migration_step":   step.Name,
				"error_message":    err.Error(),
				"duration_ms":      time.Since(start).Milliseconds(),
				"step_duration_ms": time.Since(stepStart).Milliseconds(),
			})
			return fmt.Errorf("migration step %s failed: %w", step.Name, err)
		}
		ev("db_migration_step", "success", map[string]any{
			"migration_step":   step.Name,
			"step_duration_ms": time.Since(stepStart).Milliseconds(),
		})
	}

	ev("db_migration_success", "success", map[string]any{
		"duration_ms": time.Since(start).Milliseconds(),
	})
	return nil
}

var logOutput io.Writer = os.Stdout

func logJSON(loc *time.Location, data map[string]any) {
	data["ts"] = time.Now().In(loc).Format(time.RFC3339Nano)
	if _, ok := data["level"]; !ok {
		if data["status"] == "error" {
			data["level"] = "error"
		} else {
			data["level"] = "info"
		}
	}

	b, err := json.Marshal(data)
	if err != nil {
		log.Printf("failed to marshal migration log: %v", err)
		return
	}
	_, _ = fmt.Fprintln(logOutput, string(b))
}
