package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	domain "github.com/healthmate-app/healthmate-api/internal/domain/users"
)

// ErrInvalidCredentials covers both unknown email and wrong password, so a
// failed login never reveals which one it was.
var ErrInvalidCredentials = errors.New("invalid email or password")

// ErrInvalidInput indicates a malformed registration request.
var ErrInvalidInput = errors.New("email and password are required")

// Service implements register/login use-cases. Tokens are HS256 JWTs signed
// with Secret and valid for TokenTTL.
type Service struct {
	Users    domain.Repository
	Secret   []byte
	TokenTTL time.Duration
	Clock    Clock
}

// Clock abstraction so services are easy to test
type Clock interface {
	Now() time.Time
}

// Register creates an account with a bcrypt password hash.
func (s *Service) Register(ctx context.Context, email, password, fullName string) (*domain.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, ErrInvalidInput
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	u := &domain.User{
		ID:           domain.UserID(uuid.New().String()),
		Email:        email,
		FullName:     strings.TrimSpace(fullName),
		PasswordHash: string(hash),
		CreatedAt:    s.Clock.Now(),
	}
	if err := s.Users.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// Login verifies the password and issues a signed token.
func (s *Service) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	u, err := s.Users.GetByEmail(ctx, email)
	if err != nil {
		return "", nil, ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return "", nil, ErrInvalidCredentials
	}

	now := s.Clock.Now()
	claims := jwt.MapClaims{
		"user_id": string(u.ID),
		"email":   u.Email,
		"iat":     now.Unix(),
		"exp":     now.Add(s.TokenTTL).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.Secret)
	if err != nil {
		return "", nil, fmt.Errorf("signing token: %w", err)
	}
	return token, u, nil
}

// ParseToken validates a token string and returns the user id it carries.
func ParseToken(tokenString string, secret []byte) (string, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return secret, nil
	})
	if err != nil || !token.Valid {
		return "", errors.New("invalid token")
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", errors.New("invalid token claims")
	}
	userID, _ := claims["user_id"].(string)
	if userID == "" {
		return "", errors.New("token missing user id")
	}
	return userID, nil
}
