package vitals

import "context"

// Repository port (interface for persistence)
type Repository interface {
	Save(ctx context.Context, v *Vital) error
	Latest(ctx context.Context, userID string, limit int) ([]*Vital, error)
	Delete(ctx context.Context, userID string, id VitalID) error
	Count(ctx context.Context, userID string) (int, error)
}
