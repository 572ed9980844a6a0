package ports

import (
	"context"

	"github.com/alr63095/ClubConnect/internal/domain"
)

type ClubRepo interface {
	Create(ctx context.Context, club *domain.Club) error
	Get(ctx context.Context, id string) (*domain.Club, error)
	ListByIDs(ctx context.Context, ids []string) ([]*domain.Club, error)
	ListAll(ctx context.Context) ([]*domain.Club, error)
	Update(ctx context.Context, club *domain.Club) error
	Delete(ctx context.Context, id string) error
}
