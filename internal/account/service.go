// Package account implements registration and login. Password hashes never
// leave this package and credential failures are deliberately
// indistinguishable between unknown email and wrong password.
package account

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/examportal/backend/internal/auth"
)

var (
	ErrDuplicateEmail     = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// TokenIssuer is the slice of the token service this package needs.
type TokenIssuer interface {
	Issue(userID, email, name string) (string, error)
}

type Service struct {
	store      Store
	tokens     TokenIssuer
	bcryptCost int
}

func NewService(store Store, tokens TokenIssuer, bcryptCost int) *Service {
	return &Service{store: store, tokens: tokens, bcryptCost: bcryptCost}
}

// Register creates a user and issues a session token. Input format checks
// (name/email/password shape) are the transport layer's responsibility.
func (s *Service) Register(ctx context.Context, name, email, password string) (string, *User, error) {
	_, err := s.store.GetUserByEmail(ctx, email)
	if err == nil {
		return "", nil, ErrDuplicateEmail
	}
	if !errors.Is(err, ErrNotFound) {
		return "", nil, err
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return "", nil, fmt.Errorf("hash password: %w", err)
	}

	u := &User{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    time.Now().Unix(),
	}
	if err := s.store.CreateUser(ctx, u); err != nil {
		return "", nil, err
	}

	token, err := s.tokens.Issue(u.ID, u.Email, u.Name)
	if err != nil {
		return "", nil, fmt.Errorf("issue token: %w", err)
	}
	return token, u, nil
}

// Login verifies credentials and issues a fresh token carrying the user's
// current name and email.
func (s *Service) Login(ctx context.Context, email, password string) (string, *User, error) {
	u, err := s.store.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}
	if !auth.CheckPassword(u.PasswordHash, password) {
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(u.ID, u.Email, u.Name)
	if err != nil {
		return "", nil, fmt.Errorf("issue token: %w", err)
	}
	return token, u, nil
}
