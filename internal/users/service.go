package users

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

// Service contains account management logic.
type Service struct {
	Repo Repo
}

// Register creates a user with a bcrypt password hash.
func (s *Service) Register(ctx context.Context, name, email, password string) (User, error) {
	name = strings.TrimSpace(name)
	email = normalizeEmail(email)
	if name == "" || email == "" || password == "" {
		return User{}, errors.New("name, email and password are required")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return User{}, err
	}

	now := time.Now().UTC()
	user := User{
		ID:           uuid.NewString(),
		Email:        email,
		Name:         name,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.Repo.Create(ctx, user); err != nil {
		return User{}, err
	}
	return user, nil
}

// Authenticate verifies email and password, returning ErrInvalidCredentials
// for unknown accounts and wrong passwords alike.
func (s *Service) Authenticate(ctx context.Context, email, password string) (User, error) {
	user, err := s.Repo.GetByEmail(ctx, email)
	if errors.Is(err, ErrNotFound) {
		return User{}, ErrInvalidCredentials
	}
	if err != nil {
		return User{}, err
	}
	if user.PasswordHash == "" {
		return User{}, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return User{}, ErrInvalidCredentials
	}
	return user, nil
}

// Get returns a user by ID.
func (s *Service) Get(ctx context.Context, userID string) (User, error) {
	return s.Repo.GetByID(ctx, userID)
}

// UpsertGoogle links or creates an account from a Google profile. An existing
// account with the same email is reused and tagged with the Google subject.
func (s *Service) UpsertGoogle(ctx context.Context, sub, email, name string) (User, error) {
	email = normalizeEmail(email)
	if sub == "" || email == "" {
		return User{}, errors.New("google subject and email are required")
	}

	user, err := s.Repo.GetByEmail(ctx, email)
	if err == nil {
		if user.GoogleSub != sub || (name != "" && user.Name != name) {
			user.GoogleSub = sub
			if name != "" {
				user.Name = name
			}
			user.UpdatedAt = time.Now().UTC()
			if err := s.Repo.Update(ctx, user); err != nil {
				return User{}, err
			}
		}
		return user, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return User{}, err
	}

	now := time.Now().UTC()
	user = User{
		ID:        uuid.NewString(),
		Email:     email,
		Name:      name,
		GoogleSub: sub,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.Repo.Create(ctx, user); err != nil {
		return User{}, err
	}
	return user, nil
}
