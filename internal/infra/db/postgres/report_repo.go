package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"math"

	domain "github.com/healthmate-app/healthmate-api/internal/domain/reports"
)

type ReportRepository struct {
	db *sql.DB
}

func NewReportRepository(db *sql.DB) *ReportRepository {
	return &ReportRepository{db: db}
}

const reportColumns = `id, user_id, report_type, report_date, status, file_name, file_url,
       bp, sugar, weight, notes, summary, analysis, created_at`

func scanReport(row interface{ Scan(...any) error }) (*domain.Report, error) {
	var r domain.Report
	var fileURL, notes, summary, analysis sql.NullString
	if err := row.Scan(
		&r.ID, &r.UserID, &r.Type, &r.Date, &r.Status, &r.FileName, &fileURL,
		&r.BP, &r.Sugar, &r.Weight, &notes, &summary, &analysis, &r.CreatedAt,
	); err != nil {
		return nil, err
	}
	r.FileURL = fileURL.String
	r.Notes = notes.String
	r.Summary = summary.String
	r.Analysis = analysis.String
	return &r, nil
}

// Save insert report record
func (r *ReportRepository) Save(ctx context.Context, rep *domain.Report) error {
	const q = `
INSERT INTO health_reports
(id, user_id, report_type, report_date, status, file_name, file_url,
 bp, sugar, weight, notes, summary, analysis, created_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,
        $8,$9,$10,$11,$12,$13,$14);`
	_, err := r.db.ExecContext(ctx, q,
		rep.ID, rep.UserID, rep.Type, rep.Date, rep.Status, rep.FileName, rep.FileURL,
		rep.BP, rep.Sugar, rep.Weight, rep.Notes, rep.Summary, rep.Analysis, rep.CreatedAt,
	)
	return err
}

// Get by ID + user
func (r *ReportRepository) Get(ctx context.Context, userID string, id domain.ReportID) (*domain.Report, error) {
	q := `SELECT ` + reportColumns + `
FROM health_reports
WHERE user_id=$1 AND id=$2
LIMIT 1;`
	return scanReport(r.db.QueryRowContext(ctx, q, userID, id))
}

// Latest reports per user
func (r *ReportRepository) Latest(ctx context.Context, userID string, limit int) ([]*domain.Report, error) {
	if limit <= 0 {
		limit = 20
	}
	q := `SELECT ` + reportColumns + `
FROM health_reports
WHERE user_id=$1 ORDER BY created_at DESC
LIMIT $2;`
	rows, err := r.db.QueryContext(ctx, q, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []*domain.Report
	for rows.Next() {
		rep, err := scanReport(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rep)
	}
	return out, rows.Err()
}

// Paginate with offset + limit (classic pagination)
func (r *ReportRepository) Paginate(ctx context.Context, userID string, page, pageSize int) (domain.PaginatedResult, error) {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}
	offset := (page - 1) * pageSize

	q := `SELECT ` + reportColumns + `
FROM health_reports
WHERE user_id=$1 ORDER BY created_at DESC
LIMIT $2 OFFSET $3;`
	rows, err := r.db.QueryContext(ctx, q, userID, pageSize, offset)
	if err != nil {
		return domain.PaginatedResult{}, fmt.Errorf("querying reports: %w", err)
	}
	defer rows.Close()

	var reports []*domain.Report
	for rows.Next() {
		rep, err := scanReport(rows)
		if err != nil {
			return domain.PaginatedResult{}, fmt.Errorf("scanning row: %w", err)
		}
		reports = append(reports, rep)
	}
	if err = rows.Err(); err != nil {
		return domain.PaginatedResult{}, fmt.Errorf("iterating rows: %w", err)
	}

	var total int64
	if err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM health_reports WHERE user_id=$1;`, userID,
	).Scan(&total); err != nil {
		return domain.PaginatedResult{}, fmt.Errorf("getting total count: %w", err)
	}

	return domain.PaginatedResult{
		Data:       reports,
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: int(math.Ceil(float64(total) / float64(pageSize))),
	}, nil
}

// Delete removes one report owned by the user
func (r *ReportRepository) Delete(ctx context.Context, userID string, id domain.ReportID) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM health_reports WHERE user_id=$1 AND id=$2;`, userID, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// CountByStatus recap for the dashboard cards
func (r *ReportRepository) CountByStatus(ctx context.Context, userID string) (map[domain.Status]int, error) {
	const q = `
SELECT status, COUNT(*) FROM health_reports WHERE user_id=$1 GROUP BY status;`
	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[domain.Status]int)
	for rows.Next() {
		var st domain.Status
		var n int
		if err := rows.Scan(&st, &n); err != nil {
			return nil, err
		}
		out[st] = n
	}
	return out, rows.Err()
}
