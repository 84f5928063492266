package application

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/explorea/countries-api/internal/domain/entity"
	repo "github.com/explorea/countries-api/internal/domain/repository"
	"github.com/explorea/countries-api/pkg/helpers"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserAlreadyExists  = errors.New("user already exists")
	ErrUserNotFound       = errors.New("user not found")
)

// AuthService registers accounts and exchanges credentials for session
// tokens. Tokens are stateless: logout is a client-side concern and a
// token stays valid until its natural expiry.
type AuthService struct {
	Repo   repo.UserRepository
	JWT    *helpers.JWTManager
	Logger *logrus.Logger
}

func NewAuthService(repo repo.UserRepository, jwt *helpers.JWTManager, logger *logrus.Logger) *AuthService {
	return &AuthService{Repo: repo, JWT: jwt, Logger: logger}
}

// normalizeEmail fixes the identity key: emails are trimmed and
// lowercased at both registration and login.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates a new account and returns a session token for it.
func (s *AuthService) Register(ctx context.Context, email, password string) (string, time.Time, error) {
	email = normalizeEmail(email)

	if existing, err := s.Repo.GetByEmail(ctx, email); err == nil && existing != nil {
		return "", time.Time{}, ErrUserAlreadyExists
	}

	hash, err := helpers.HashPassword(password)
	if err != nil {
		return "", time.Time{}, err
	}

	u := &entity.User{Email: email, Password: hash, Favorites: []entity.Favorite{}}
	if err := s.Repo.Create(ctx, u); err != nil {
		// The unique index is the backstop for the check-then-insert race.
		if errors.Is(err, repo.ErrDuplicateEmail) {
			return "", time.Time{}, ErrUserAlreadyExists
		}
		return "", time.Time{}, err
	}

	return s.issueToken(u)
}

// Login validates credentials and returns a session token. A missing user
// and a wrong password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, time.Time, error) {
	email = normalizeEmail(email)

	u, err := s.Repo.GetByEmail(ctx, email)
	if err != nil || u == nil {
		return "", time.Time{}, ErrInvalidCredentials
	}
	if !helpers.CompareHashAndPassword(u.Password, password) {
		return "", time.Time{}, ErrInvalidCredentials
	}

	return s.issueToken(u)
}

func (s *AuthService) issueToken(u *entity.User) (string, time.Time, error) {
	token, exp, err := s.JWT.Issue(u.ID)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", u.ID).Error("token generation failed")
		}
		return "", time.Time{}, err
	}
	return token, exp, nil
}
