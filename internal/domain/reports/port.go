package reports

import "context"

// Repository port (interface for persistence). Records are append-only from
// the pipeline's point of view: Save inserts, Delete removes, nothing
// mutates an existing record in place.
type Repository interface {
	Save(ctx context.Context, r *Report) error
	Get(ctx context.Context, userID string, id ReportID) (*Report, error)
	Latest(ctx context.Context, userID string, limit int) ([]*Report, error)
	Paginate(ctx context.Context, userID string, page, pageSize int) (PaginatedResult, error)
	Delete(ctx context.Context, userID string, id ReportID) error
	CountByStatus(ctx context.Context, userID string) (map[Status]int, error)
}

// FileStore port (interface for object storage of uploaded report files)
type FileStore interface {
	UploadBytes(ctx context.Context, key, contentType string, data []byte) (string, error)
}
