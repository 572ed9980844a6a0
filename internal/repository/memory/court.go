package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/alr63095/ClubConnect/internal/domain"
)

type CourtRepository struct {
	mu     sync.RWMutex
	courts map[string]domain.Court
}

func NewCourtRepo() *CourtRepository {
	return &CourtRepository{courts: make(map[string]domain.Court)}
}

func (r *CourtRepository) Get(_ context.Context, id string) (*domain.Court, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	court, ok := r.courts[id]
	if !ok {
		return nil, domain.ErrCourtNotFound
	}
	court = cloneCourt(court)
	return &court, nil
}

func (r *CourtRepository) ListByClub(_ context.Context, clubID string) ([]*domain.Court, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var res []*domain.Court
	for _, court := range r.courts {
		if court.ClubID == clubID {
			court := cloneCourt(court)
			res = append(res, &court)
		}
	}
	sort.Slice(res, func(i, j int) bool { return res[i].Name < res[j].Name })
	return res, nil
}

func (r *CourtRepository) Upsert(_ context.Context, court *domain.Court) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.courts[court.ID] = cloneCourt(*court)
	return nil
}

func (r *CourtRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.courts[id]; !ok {
		return domain.ErrCourtNotFound
	}
	delete(r.courts, id)
	return nil
}

func (r *CourtRepository) DeleteByClub(_ context.Context, clubID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, court := range r.courts {
		if court.ClubID == clubID {
			delete(r.courts, id)
		}
	}
	return nil
}

func cloneCourt(c domain.Court) domain.Court {
	c.Features = append([]string(nil), c.Features...)
	c.SlotPrices = append([]domain.SlotPrice(nil), c.SlotPrices...)
	return c
}
