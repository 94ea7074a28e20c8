package repository

import (
	"context"
	"testing"

	"github.com/Domenick1991/airline/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepository(t *testing.T) {
	pool := openTestDB(t)
	ctx := context.Background()
	repo := NewUserRepository(pool)

	u := seedUser(t, pool, "user@example.com")

	err := repo.Create(ctx, &domain.User{Email: "user@example.com", PasswordHash: "x"})
	assert.ErrorIs(t, err, domain.ErrUserExists)

	byEmail, err := repo.GetByEmail(ctx, "user@example.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID, byEmail.ID)
	assert.Equal(t, "hash", byEmail.PasswordHash)

	updated, err := repo.UpdateProfile(ctx, u.ID, domain.ProfileUpdate{FirstName: "Ravi", LastName: "Kumar", Phone: "+91 98000 00000"})
	require.NoError(t, err)
	assert.Equal(t, "Ravi", updated.FirstName)
	assert.Equal(t, "+91 98000 00000", updated.Phone)

	_, err = repo.GetByID(ctx, 999999)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}
