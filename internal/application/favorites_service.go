package application

import (
	"context"
	"errors"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/explorea/countries-api/internal/domain/entity"
	repo "github.com/explorea/countries-api/internal/domain/repository"
)

var (
	ErrAlreadyFavorited   = errors.New("country already in favorites")
	ErrInvalidCountryName = errors.New("countryName is required")
	ErrOwnerMissing       = errors.New("favorites owner record missing")
)

// FavoritesService is the CRUD contract over a user's saved countries.
// Invariant: at most one favorite per countryName for a given user, with a
// case-sensitive match on the exact name. Add is strict (a duplicate is a
// reported conflict, not a no-op); remove is idempotent.
//
// Mutations are fetch-mutate-persist over the whole embedded collection and
// are not isolated against a concurrent writer of the same user; this is an
// accepted limitation of the storage layout.
type FavoritesService struct {
	Repo   repo.UserRepository
	Logger *logrus.Logger
}

func NewFavoritesService(repo repo.UserRepository, logger *logrus.Logger) *FavoritesService {
	return &FavoritesService{Repo: repo, Logger: logger}
}

// List returns the user's favorites in insertion order.
func (s *FavoritesService) List(ctx context.Context, userID string) ([]entity.Favorite, error) {
	u, err := s.getOwner(ctx, userID)
	if err != nil {
		return nil, err
	}
	return u.Favorites, nil
}

// Add appends a favorite and returns the updated list. A second add for the
// same countryName fails with ErrAlreadyFavorited.
func (s *FavoritesService) Add(ctx context.Context, userID string, fav entity.Favorite) ([]entity.Favorite, error) {
	if strings.TrimSpace(fav.CountryName) == "" {
		return nil, ErrInvalidCountryName
	}

	u, err := s.getOwner(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u.HasFavorite(fav.CountryName) {
		return nil, ErrAlreadyFavorited
	}

	updated := append(u.Favorites, fav)
	if err := s.Repo.UpdateFavorites(ctx, userID, updated); err != nil {
		return nil, err
	}
	return updated, nil
}

// Remove filters out any favorite matching countryName and returns the
// updated list. Removing a name that was never favorited succeeds and
// returns the list unchanged.
func (s *FavoritesService) Remove(ctx context.Context, userID, countryName string) ([]entity.Favorite, error) {
	u, err := s.getOwner(ctx, userID)
	if err != nil {
		return nil, err
	}

	updated := make([]entity.Favorite, 0, len(u.Favorites))
	for _, f := range u.Favorites {
		if f.CountryName != countryName {
			updated = append(updated, f)
		}
	}
	if len(updated) == len(u.Favorites) {
		return u.Favorites, nil
	}

	if err := s.Repo.UpdateFavorites(ctx, userID, updated); err != nil {
		return nil, err
	}
	return updated, nil
}

// getOwner resolves the identity to its user record. A valid token whose
// user row is gone is an integrity fault; callers surface it as a 500.
func (s *FavoritesService) getOwner(ctx context.Context, userID string) (*entity.User, error) {
	u, err := s.Repo.GetByID(ctx, userID)
	if err != nil || u == nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", userID).Error("favorites owner lookup failed")
		}
		return nil, ErrOwnerMissing
	}
	return u, nil
}
