package application

import (
	"context"
	"fmt"
	"sync"

	"github.com/explorea/countries-api/internal/domain/entity"
	"github.com/explorea/countries-api/internal/domain/repository"
)

// fakeUserRepo is an in-memory repository.UserRepository for service tests.
type fakeUserRepo struct {
	mu     sync.Mutex
	users  map[string]*entity.User // id -> user
	emails map[string]string       // email -> id
	nextID int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		users:  map[string]*entity.User{},
		emails: map[string]string{},
	}
}

func (r *fakeUserRepo) Create(_ context.Context, u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.emails[u.Email]; ok {
		return repository.ErrDuplicateEmail
	}
	r.nextID++
	u.ID = fmt.Sprintf("user-%d", r.nextID)
	cp := cloneUser(u)
	r.users[u.ID] = cp
	r.emails[u.Email] = u.ID
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return cloneUser(u), nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	id, ok := r.emails[email]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return cloneUser(r.users[id]), nil
}

func (r *fakeUserRepo) UpdateFavorites(_ context.Context, id string, favorites []entity.Favorite) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	u.Favorites = append([]entity.Favorite(nil), favorites...)
	return nil
}

func cloneUser(u *entity.User) *entity.User {
	cp := *u
	cp.Favorites = append([]entity.Favorite(nil), u.Favorites...)
	if cp.Favorites == nil {
		cp.Favorites = []entity.Favorite{}
	}
	return &cp
}

var _ repository.UserRepository = (*fakeUserRepo)(nil)
