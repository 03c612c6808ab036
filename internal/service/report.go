package service

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/google/uuid"

	"retailadmin/internal/model"
	"retailadmin/internal/report"
	"retailadmin/internal/repository"
	"retailadmin/internal/storage"
)

var (
	ErrIDRequired = errors.New("id is required")
	ErrNotFound   = errors.New("report not found")
	ErrNoDocument = errors.New("document is nil")
)

// ReportListResult is the service-level DTO for paginated reports.
type ReportListResult struct {
	Items []model.Report `json:"data"`
	Total int            `json:"total"`
}

// ReportDetail is an archived report with a time-limited download link.
type ReportDetail struct {
	model.Report
	DownloadURL string    `json:"download_url"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// ReportService manages the archive of exported invoice reports.
type ReportService interface {
	// Archive uploads the rendered document to object storage and records its metadata.
	// The stored object is removed again if the metadata cannot be saved.
	Archive(ctx context.Context, doc *report.Document) (*model.Report, error)

	// List returns archived reports using limit/offset and a total count.
	List(ctx context.Context, limit, offset int) (*ReportListResult, error)

	// Get returns a single report with a presigned download URL.
	Get(ctx context.Context, id string) (*ReportDetail, error)

	// Open streams a report's content. The caller must close the reader.
	Open(ctx context.Context, id string) (io.ReadCloser, *model.Report, error)

	// Delete removes a report from both storage and repository.
	Delete(ctx context.Context, id string) error
}

type reportService struct {
	store         storage.Storage
	repo          repository.ReportRepository
	presignExpiry time.Duration
	now           func() time.Time
}

// NewReportService constructs a new ReportService.
func NewReportService(store storage.Storage, repo repository.ReportRepository, presignExpiry time.Duration) ReportService {
	if presignExpiry <= 0 {
		presignExpiry = 15 * time.Minute
	}
	return &reportService{store: store, repo: repo, presignExpiry: presignExpiry, now: time.Now}
}

func (s *reportService) Archive(ctx context.Context, doc *report.Document) (*model.Report, error) {
	if doc == nil {
		return nil, ErrNoDocument
	}
	id := uuid.New().String()
	key := storage.ReportKey(id, doc.FileName)

	objInfo, err := s.store.Put(ctx, key, bytes.NewReader(doc.Data), storage.PutObjectOptions{
		Size:        int64(len(doc.Data)),
		ContentType: doc.ContentType,
		Metadata: map[string]string{
			"selected-date": doc.SelectedDate,
			"row-count":     strconv.Itoa(doc.Rows),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("upload to storage: %w", err)
	}

	rec := &model.Report{
		ID:           id,
		Filename:     doc.FileName,
		StoragePath:  objInfo.Key,
		Size:         int64(len(doc.Data)),
		ContentType:  doc.ContentType,
		SelectedDate: doc.SelectedDate,
		RowCount:     doc.Rows,
		CreatedAt:    s.now().UTC(),
	}
	stored, err := s.repo.Create(ctx, rec)
	if err != nil {
		if delErr := s.store.Delete(ctx, key); delErr != nil {
			return nil, fmt.Errorf("db save failed: %v; rollback delete failed: %v", err, delErr)
		}
		return nil, fmt.Errorf("db save failed: %w", err)
	}
	return stored, nil
}

func (s *reportService) List(ctx context.Context, limit, offset int) (*ReportListResult, error) {
	if limit <= 0 {
		limit = 10
	}
	if offset < 0 {
		offset = 0
	}

	res, err := s.repo.List(ctx, repository.PageQuery{Limit: limit, Offset: offset})
	if err != nil {
		return nil, err
	}
	return &ReportListResult{Items: res.Items, Total: res.Total}, nil
}

func (s *reportService) find(ctx context.Context, id string) (*model.Report, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	rec, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return rec, nil
}

func (s *reportService) Get(ctx context.Context, id string) (*ReportDetail, error) {
	rec, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	u, err := s.store.PresignGet(ctx, rec.StoragePath, s.presignExpiry)
	if err != nil {
		return nil, fmt.Errorf("presign: %w", err)
	}
	return &ReportDetail{
		Report:      *rec,
		DownloadURL: u,
		ExpiresAt:   s.now().UTC().Add(s.presignExpiry),
	}, nil
}

func (s *reportService) Open(ctx context.Context, id string) (io.ReadCloser, *model.Report, error) {
	rec, err := s.find(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	rc, _, err := s.store.Get(ctx, rec.StoragePath)
	if err != nil {
		return nil, nil, fmt.Errorf("open storage: %w", err)
	}
	return rc, rec, nil
}

// Delete removes the stored object first; if that fails the row is kept so the object is not orphaned.
func (s *reportService) Delete(ctx context.Context, id string) error {
	rec, err := s.find(ctx, id)
	if err != nil {
		return err
	}
	if err := s.store.Delete(ctx, rec.StoragePath); err != nil {
		return fmt.Errorf("delete storage: %w", err)
	}
	return s.repo.Delete(ctx, id)
}
