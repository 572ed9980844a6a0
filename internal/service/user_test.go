package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alr63095/ClubConnect/internal/domain"
)

func TestUserService_Register(t *testing.T) {
	f := newFixtures()
	svc := NewUserService(f.users)

	user, err := svc.Register(context.Background(), domain.CreateUserInput{
		Name:  "alice",
		Email: "alice@example.com",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, user.ID)
	assert.Equal(t, domain.RolePlayer, user.Role)
}

func TestUserService_Register_DuplicateEmail(t *testing.T) {
	f := newFixtures()
	svc := NewUserService(f.users)

	_, err := svc.Register(context.Background(), domain.CreateUserInput{Name: "alice", Email: "a@example.com"})
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), domain.CreateUserInput{Name: "alice2", Email: "a@example.com"})
	assert.ErrorIs(t, err, domain.ErrEmailTaken)
}

func TestUserService_Register_Validation(t *testing.T) {
	f := newFixtures()
	svc := NewUserService(f.users)

	_, err := svc.Register(context.Background(), domain.CreateUserInput{Email: "a@example.com"})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = svc.Register(context.Background(), domain.CreateUserInput{Name: "alice"})
	assert.ErrorIs(t, err, domain.ErrValidation)
}
