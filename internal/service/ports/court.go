package ports

import (
	"context"

	"github.com/alr63095/ClubConnect/internal/domain"
)

type CourtRepo interface {
	Get(ctx context.Context, id string) (*domain.Court, error)
	ListByClub(ctx context.Context, clubID string) ([]*domain.Court, error)
	Upsert(ctx context.Context, court *domain.Court) error
	Delete(ctx context.Context, id string) error
	DeleteByClub(ctx context.Context, clubID string) error
}
