package auth

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	domain "github.com/healthmate-app/healthmate-api/internal/domain/users"
)

type memRepo struct {
	byEmail map[string]*domain.User
}

func newMemRepo() *memRepo { return &memRepo{byEmail: map[string]*domain.User{}} }

func (m *memRepo) Create(_ context.Context, u *domain.User) error {
	if _, ok := m.byEmail[u.Email]; ok {
		return domain.ErrEmailTaken
	}
	m.byEmail[u.Email] = u
	return nil
}

func (m *memRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	u, ok := m.byEmail[email]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return u, nil
}

func (m *memRepo) GetByID(_ context.Context, id domain.UserID) (*domain.User, error) {
	for _, u := range m.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, sql.ErrNoRows
}

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

func newService(repo domain.Repository) *Service {
	return &Service{
		Users:    repo,
		Secret:   []byte("test-secret"),
		TokenTTL: 24 * time.Hour,
		Clock:    fixedClock{t: time.Now()},
	}
}

func TestRegisterAndLogin(t *testing.T) {
	repo := newMemRepo()
	svc := newService(repo)

	u, err := svc.Register(context.Background(), "  Test@Email.com ", "123456", "Test User")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if u.Email != "test@email.com" {
		t.Errorf("email not normalized: %q", u.Email)
	}
	if u.PasswordHash == "123456" || u.PasswordHash == "" {
		t.Error("password must be stored hashed")
	}

	token, logged, err := svc.Login(context.Background(), "test@email.com", "123456")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if logged.ID != u.ID {
		t.Errorf("login returned wrong user: %s", logged.ID)
	}

	userID, err := ParseToken(token, []byte("test-secret"))
	if err != nil {
		t.Fatalf("ParseToken: %v", err)
	}
	if userID != string(u.ID) {
		t.Errorf("token user id = %q, want %q", userID, u.ID)
	}
}

func TestLoginFailures(t *testing.T) {
	repo := newMemRepo()
	svc := newService(repo)
	if _, err := svc.Register(context.Background(), "a@b.com", "hunter2", ""); err != nil {
		t.Fatalf("Register: %v", err)
	}

	if _, _, err := svc.Login(context.Background(), "a@b.com", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("wrong password: err = %v, want ErrInvalidCredentials", err)
	}
	if _, _, err := svc.Login(context.Background(), "nobody@b.com", "hunter2"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("unknown email: err = %v, want ErrInvalidCredentials", err)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	repo := newMemRepo()
	svc := newService(repo)
	if _, err := svc.Register(context.Background(), "a@b.com", "pw1", ""); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if _, err := svc.Register(context.Background(), "a@b.com", "pw2", ""); !errors.Is(err, domain.ErrEmailTaken) {
		t.Errorf("err = %v, want ErrEmailTaken", err)
	}
}

func TestParseTokenRejectsTampering(t *testing.T) {
	repo := newMemRepo()
	svc := newService(repo)
	if _, err := svc.Register(context.Background(), "a@b.com", "pw", ""); err != nil {
		t.Fatalf("Register: %v", err)
	}
	token, _, err := svc.Login(context.Background(), "a@b.com", "pw")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	if _, err := ParseToken(token, []byte("other-secret")); err == nil {
		t.Error("token validated with the wrong secret")
	}
	if _, err := ParseToken(token+"x", []byte("test-secret")); err == nil {
		t.Error("tampered token validated")
	}
}
