package vitals

import (
	"context"
	"database/sql"
	"testing"
	"time"

	domain "github.com/healthmate-app/healthmate-api/internal/domain/vitals"
)

type memRepo struct {
	items []*domain.Vital
}

func (m *memRepo) Save(_ context.Context, v *domain.Vital) error {
	m.items = append(m.items, v)
	return nil
}

func (m *memRepo) Latest(_ context.Context, userID string, limit int) ([]*domain.Vital, error) {
	var out []*domain.Vital
	for i := len(m.items) - 1; i >= 0 && len(out) < limit; i-- {
		if m.items[i].UserID == userID {
			out = append(out, m.items[i])
		}
	}
	return out, nil
}

func (m *memRepo) Delete(_ context.Context, userID string, id domain.VitalID) error {
	for i, v := range m.items {
		if v.UserID == userID && v.ID == id {
			m.items = append(m.items[:i], m.items[i+1:]...)
			return nil
		}
	}
	return sql.ErrNoRows
}

func (m *memRepo) Count(_ context.Context, userID string) (int, error) {
	n := 0
	for _, v := range m.items {
		if v.UserID == userID {
			n++
		}
	}
	return n, nil
}

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

func TestRecordAssignsIDAndTimestamp(t *testing.T) {
	repo := &memRepo{}
	now := time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)
	svc := &Service{Repo: repo, Clock: fixedClock{t: now}}

	v, err := svc.Record(context.Background(), RecordCommand{
		UserID: "u1",
		Type:   domain.TypeBP,
		Value:  "120/80",
		Date:   "2026-08-30",
		Status: "Normal",
	})
	if err != nil {
		t.Fatalf("Record: %v", err)
	}
	if v.ID == "" {
		t.Error("expected generated id")
	}
	if !v.CreatedAt.Equal(now) {
		t.Errorf("CreatedAt = %v, want %v", v.CreatedAt, now)
	}
	if len(repo.items) != 1 {
		t.Fatalf("expected 1 stored vital, got %d", len(repo.items))
	}
}

func TestLatestIsScopedToUser(t *testing.T) {
	repo := &memRepo{}
	svc := &Service{Repo: repo, Clock: fixedClock{t: time.Now()}}

	for _, user := range []string{"u1", "u2", "u1"} {
		if _, err := svc.Record(context.Background(), RecordCommand{
			UserID: user, Type: domain.TypeSugar, Value: "98", Date: "2026-08-30",
		}); err != nil {
			t.Fatalf("Record: %v", err)
		}
	}

	list, err := svc.Latest(context.Background(), "u1", 10)
	if err != nil {
		t.Fatalf("Latest: %v", err)
	}
	if len(list) != 2 {
		t.Errorf("expected 2 vitals for u1, got %d", len(list))
	}

	n, err := svc.Count(context.Background(), "u2")
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if n != 1 {
		t.Errorf("Count(u2) = %d, want 1", n)
	}
}

func TestDeleteMissingVital(t *testing.T) {
	svc := &Service{Repo: &memRepo{}, Clock: fixedClock{t: time.Now()}}
	if err := svc.Delete(context.Background(), "u1", "missing"); err == nil {
		t.Error("expected error deleting missing vital")
	}
}
