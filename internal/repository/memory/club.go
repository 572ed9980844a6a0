// Package memory implements the repository ports over process-local maps.
// It is the reference store: selectable via config and the substrate the
// service tests run against. Every repository hands out copies, so callers
// never share memory with the store.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/alr63095/ClubConnect/internal/domain"
)

type ClubRepository struct {
	mu    sync.RWMutex
	clubs map[string]domain.Club
}

func NewClubRepo() *ClubRepository {
	return &ClubRepository{clubs: make(map[string]domain.Club)}
}

func (r *ClubRepository) Create(_ context.Context, club *domain.Club) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.clubs[club.ID] = cloneClub(*club)
	return nil
}

func (r *ClubRepository) Get(_ context.Context, id string) (*domain.Club, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	club, ok := r.clubs[id]
	if !ok {
		return nil, domain.ErrClubNotFound
	}
	club = cloneClub(club)
	return &club, nil
}

func (r *ClubRepository) ListByIDs(_ context.Context, ids []string) ([]*domain.Club, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	res := make([]*domain.Club, 0, len(ids))
	for _, id := range ids {
		if club, ok := r.clubs[id]; ok {
			club = cloneClub(club)
			res = append(res, &club)
		}
	}
	return res, nil
}

func (r *ClubRepository) ListAll(_ context.Context) ([]*domain.Club, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	res := make([]*domain.Club, 0, len(r.clubs))
	for _, club := range r.clubs {
		club := cloneClub(club)
		res = append(res, &club)
	}
	sort.Slice(res, func(i, j int) bool { return res[i].Name < res[j].Name })
	return res, nil
}

func (r *ClubRepository) Update(_ context.Context, club *domain.Club) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.clubs[club.ID]; !ok {
		return domain.ErrClubNotFound
	}
	r.clubs[club.ID] = cloneClub(*club)
	return nil
}

func (r *ClubRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.clubs[id]; !ok {
		return domain.ErrClubNotFound
	}
	delete(r.clubs, id)
	return nil
}

func cloneClub(c domain.Club) domain.Club {
	c.Sports = append([]string(nil), c.Sports...)
	return c
}
