package ports

import (
	"context"

	"github.com/alr63095/ClubConnect/internal/domain"
)

type UserRepo interface {
	Create(ctx context.Context, user *domain.User) error
	Get(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
	ListAdminsByClub(ctx context.Context, clubID string) ([]*domain.User, error)
}
