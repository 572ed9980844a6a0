package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/alr63095/ClubConnect/internal/domain"
)

type UserRepository struct {
	mu    sync.RWMutex
	users map[string]domain.User
}

func NewUserRepo() *UserRepository {
	return &UserRepository{users: make(map[string]domain.User)}
}

func (r *UserRepository) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.Email == user.Email {
			return domain.ErrEmailTaken
		}
	}
	r.users[user.ID] = cloneUser(*user)
	return nil
}

func (r *UserRepository) Get(_ context.Context, id string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	u = cloneUser(u)
	return &u, nil
}

func (r *UserRepository) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if u.Email == email {
			u = cloneUser(u)
			return &u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *UserRepository) List(_ context.Context) ([]*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	res := make([]*domain.User, 0, len(r.users))
	for _, u := range r.users {
		u := cloneUser(u)
		res = append(res, &u)
	}
	sort.Slice(res, func(i, j int) bool { return res[i].Name < res[j].Name })
	return res, nil
}

func (r *UserRepository) ListAdminsByClub(_ context.Context, clubID string) ([]*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var res []*domain.User
	for _, u := range r.users {
		if u.Role == domain.RoleAdmin && u.AdminOf(clubID) {
			u := cloneUser(u)
			res = append(res, &u)
		}
	}
	sort.Slice(res, func(i, j int) bool { return res[i].Name < res[j].Name })
	return res, nil
}

func cloneUser(u domain.User) domain.User {
	u.ClubIDs = append([]string(nil), u.ClubIDs...)
	if u.SportPreferences != nil {
		prefs := make(map[string]int, len(u.SportPreferences))
		for k, v := range u.SportPreferences {
			prefs[k] = v
		}
		u.SportPreferences = prefs
	}
	return u
}
