package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/explorea/countries-api/internal/domain/entity"
	"github.com/explorea/countries-api/internal/domain/repository"
)

// uniqueViolation is the Postgres error code for a unique constraint breach.
const uniqueViolation = "23505"

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

func (r *UserRepository) Create(ctx context.Context, u *entity.User) error {
	favs, err := marshalFavorites(u.Favorites)
	if err != nil {
		return err
	}
	row := r.pool.QueryRow(ctx, `
		INSERT INTO users (email, password_hash, favorites)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at
	`, u.Email, u.Password, favs)

	if err := row.Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return repository.ErrDuplicateEmail
		}
		return err
	}
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, email, password_hash, favorites, created_at, updated_at
		FROM users
		WHERE id = $1
	`, id)
	return scanUser(row)
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, email, password_hash, favorites, created_at, updated_at
		FROM users
		WHERE email = $1
	`, email)
	return scanUser(row)
}

// UpdateFavorites overwrites the favorites column for one user. Callers
// perform fetch-mutate-persist; two concurrent writers for the same user
// can lose one update (whole-column last write wins).
func (r *UserRepository) UpdateFavorites(ctx context.Context, id string, favorites []entity.Favorite) error {
	favs, err := marshalFavorites(favorites)
	if err != nil {
		return err
	}
	res, err := r.pool.Exec(ctx, `
		UPDATE users
		SET favorites = $1, updated_at = $2
		WHERE id = $3
	`, favs, time.Now(), id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func scanUser(row pgx.Row) (*entity.User, error) {
	u := &entity.User{}
	var favs []byte
	if err := row.Scan(&u.ID, &u.Email, &u.Password, &favs, &u.CreatedAt, &u.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	if err := json.Unmarshal(favs, &u.Favorites); err != nil {
		return nil, err
	}
	if u.Favorites == nil {
		u.Favorites = []entity.Favorite{}
	}
	return u, nil
}

func marshalFavorites(favorites []entity.Favorite) ([]byte, error) {
	if favorites == nil {
		favorites = []entity.Favorite{}
	}
	return json.Marshal(favorites)
}

var _ repository.UserRepository = (*UserRepository)(nil)
