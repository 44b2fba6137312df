package vitals

import (
	"context"
	"time"

	"github.com/google/uuid"

	domain "github.com/healthmate-app/healthmate-api/internal/domain/vitals"
)

// Service implements use-cases for manual vitals tracking.
type Service struct {
	Repo  domain.Repository
	Clock Clock
}

// Clock abstraction so services are easy to test
type Clock interface {
	Now() time.Time
}

// RecordCommand carries a new manual reading.
type RecordCommand struct {
	UserID string
	Type   domain.VitalType
	Value  string
	Date   string
	Status string
}

// Record appends a new vitals entry for the user.
func (s *Service) Record(ctx context.Context, cmd RecordCommand) (*domain.Vital, error) {
	v := &domain.Vital{
		ID:        domain.VitalID(uuid.New().String()),
		UserID:    cmd.UserID,
		Type:      cmd.Type,
		Value:     cmd.Value,
		Date:      cmd.Date,
		Status:    cmd.Status,
		CreatedAt: s.Clock.Now(),
	}
	if err := s.Repo.Save(ctx, v); err != nil {
		return nil, err
	}
	return v, nil
}

// Latest returns the N most recent vitals for a user
func (s *Service) Latest(ctx context.Context, userID string, limit int) ([]*domain.Vital, error) {
	return s.Repo.Latest(ctx, userID, limit)
}

// Delete removes one vitals entry by id
func (s *Service) Delete(ctx context.Context, userID string, id domain.VitalID) error {
	return s.Repo.Delete(ctx, userID, id)
}

// Count returns the total vitals entries for a user
func (s *Service) Count(ctx context.Context, userID string) (int, error) {
	return s.Repo.Count(ctx, userID)
}
