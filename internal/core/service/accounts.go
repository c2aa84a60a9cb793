package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/rl1809/grocery-backend/internal/core/domain"
	"github.com/rl1809/grocery-backend/internal/port"
)

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrMissingCredentials = errors.New("email and password are required")
)

// AccountService handles signup, login and the contact directory.
type AccountService struct {
	dir         port.DirectoryRepository
	tokenSecret string
	tokenTTL    time.Duration
}

func NewAccountService(dir port.DirectoryRepository, tokenSecret string, tokenTTL time.Duration) *AccountService {
	return &AccountService{dir: dir, tokenSecret: tokenSecret, tokenTTL: tokenTTL}
}

func (s *AccountService) Signup(ctx context.Context, email, password string) error {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || password == "" {
		return ErrMissingCredentials
	}

	existing, err := s.dir.UserByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("lookup user: %w", err)
	}
	if existing != nil {
		return ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	user := domain.User{
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.dir.CreateUser(ctx, user); err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

// Login verifies credentials and returns a signed access token.
func (s *AccountService) Login(ctx context.Context, email, password string) (string, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || password == "" {
		return "", ErrMissingCredentials
	}

	user, err := s.dir.UserByEmail(ctx, email)
	if err != nil {
		return "", fmt.Errorf("lookup user: %w", err)
	}
	if user == nil {
		return "", ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	token, err := signToken(s.tokenSecret, s.tokenTTL, user.Email)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return token, nil
}

func (s *AccountService) UpdateContact(ctx context.Context, contact domain.Contact) error {
	contact.UserEmail = strings.TrimSpace(strings.ToLower(contact.UserEmail))
	if contact.UserEmail == "" {
		return ErrMissingEmail
	}
	return s.dir.UpsertContact(ctx, contact)
}

// Contact returns nil when the user has no contact record.
func (s *AccountService) Contact(ctx context.Context, email string) (*domain.Contact, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" {
		return nil, ErrMissingEmail
	}
	return s.dir.ContactByEmail(ctx, email)
}
