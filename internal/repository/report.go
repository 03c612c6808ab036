package repository

import (
	"context"

	"retailadmin/internal/model"
)

// ReportRepository defines data access for archived invoice reports using SQL queries only.
// Strictly persistence operations, no business logic.
type ReportRepository interface {
	// Create inserts a new report record and returns the stored row.
	Create(ctx context.Context, r *model.Report) (*model.Report, error)

	// FindByID returns a report by its ID, or sql.ErrNoRows.
	FindByID(ctx context.Context, id string) (*model.Report, error)

	// List returns a page of reports, newest first, and the total row count.
	List(ctx context.Context, pq PageQuery) (*PageResult[model.Report], error)

	// Delete removes a report by ID. It returns nil if the row was deleted or did not exist.
	Delete(ctx context.Context, id string) error
}
