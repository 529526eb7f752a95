package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"towerup-backend/internal/models"
	"towerup-backend/internal/store"
)

var ErrInvalidCredentials = errors.New("invalid email or password")

// Service authenticates back-office accounts against admin_users.
type Service struct {
	admins store.Repository[models.AdminUser]
	tokens *TokenService
	log    *zap.Logger
}

func NewService(admins store.Repository[models.AdminUser], tokens *TokenService, log *zap.Logger) *Service {
	return &Service{admins: admins, tokens: tokens, log: log.Named("auth")}
}

func (s *Service) Tokens() *TokenService {
	return s.tokens
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Login checks the credentials and issues a session token. Unknown email and
// wrong password are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, email, password string) (*models.LoginResponse, error) {
	admin, err := s.admins.FindOne(ctx, store.Query{}.Where("email", normalizeEmail(email)))
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if !CheckPassword(admin.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}

	token, expiresAt, err := s.tokens.Issue(*admin)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	admin.LastLoginAt = &now
	if err := s.admins.Update(ctx, admin); err != nil {
		s.log.Warn("failed to record last login", zap.String("email", admin.Email), zap.Error(err))
	}

	return &models.LoginResponse{Token: token, ExpiresAt: expiresAt, Admin: admin.Profile()}, nil
}

// CreateAdmin adds an account. It fails if the email is taken.
func (s *Service) CreateAdmin(ctx context.Context, email, name, password string) (*models.AdminUser, error) {
	email = normalizeEmail(email)
	if _, err := s.admins.FindOne(ctx, store.Query{}.Where("email", email)); err == nil {
		return nil, fmt.Errorf("admin %s already exists", email)
	} else if !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}

	hash, err := HashPassword(password)
	if err != nil {
		return nil, err
	}

	admin := &models.AdminUser{Email: email, Name: name, PasswordHash: hash}
	if err := s.admins.Create(ctx, admin); err != nil {
		return nil, err
	}
	return admin, nil
}

// EnsureAdmin creates the bootstrap account once. An existing account is left
// untouched, its password is never reset from configuration.
func (s *Service) EnsureAdmin(ctx context.Context, email, name, password string) (bool, error) {
	if email == "" || password == "" {
		return false, nil
	}
	_, err := s.admins.FindOne(ctx, store.Query{}.Where("email", normalizeEmail(email)))
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return false, err
	}
	if _, err := s.CreateAdmin(ctx, email, name, password); err != nil {
		return false, err
	}
	s.log.Info("bootstrap admin created", zap.String("email", normalizeEmail(email)))
	return true, nil
}

func (s *Service) Profile(ctx context.Context, claims *Claims) (models.AdminProfile, error) {
	id, err := uuid.Parse(claims.Subject)
	if err != nil {
		return models.AdminProfile{}, ErrInvalidToken
	}
	admin, err := s.admins.Get(ctx, id)
	if err != nil {
		return models.AdminProfile{}, err
	}
	return admin.Profile(), nil
}
