package postgres

import (
	"context"
	"database/sql"

	domain "github.com/healthmate-app/healthmate-api/internal/domain/vitals"
)

type VitalsRepository struct {
	db *sql.DB
}

func NewVitalsRepository(db *sql.DB) *VitalsRepository {
	return &VitalsRepository{db: db}
}

func (r *VitalsRepository) Save(ctx context.Context, v *domain.Vital) error {
	const q = `
INSERT INTO vitals (id, user_id, vital_type, value, vital_date, status, created_at)
VALUES ($1,$2,$3,$4,$5,$6,$7);`
	_, err := r.db.ExecContext(ctx, q, v.ID, v.UserID, v.Type, v.Value, v.Date, v.Status, v.CreatedAt)
	return err
}

func (r *VitalsRepository) Latest(ctx context.Context, userID string, limit int) ([]*domain.Vital, error) {
	if limit <= 0 {
		limit = 20
	}
	const q = `
SELECT id, user_id, vital_type, value, vital_date, status, created_at
FROM vitals
WHERE user_id=$1 ORDER BY created_at DESC
LIMIT $2;`
	rows, err := r.db.QueryContext(ctx, q, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []*domain.Vital
	for rows.Next() {
		var v domain.Vital
		if err := rows.Scan(&v.ID, &v.UserID, &v.Type, &v.Value, &v.Date, &v.Status, &v.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, &v)
	}
	return out, rows.Err()
}

func (r *VitalsRepository) Delete(ctx context.Context, userID string, id domain.VitalID) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM vitals WHERE user_id=$1 AND id=$2;`, userID, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *VitalsRepository) Count(ctx context.Context, userID string) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM vitals WHERE user_id=$1;`, userID).Scan(&n)
	return n, err
}
