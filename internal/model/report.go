package model

import "time"

// Report is the archive record of an exported invoice report.
// SelectedDate is the date filter the report was generated with; empty means all dates.
// This is a pure domain model with no database-specific dependencies or tags.
type Report struct {
	ID           string    `json:"id"`
	Filename     string    `json:"filename"`
	StoragePath  string    `json:"storage_path"`
	Size         int64     `json:"size"`
	ContentType  string    `json:"content_type"`
	SelectedDate string    `json:"selected_date"`
	RowCount     int       `json:"row_count"`
	CreatedAt    time.Time `json:"created_at"`
}
