package repositories_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/storefront/app/models"
	"github.com/shashiranjanraj/storefront/app/repositories"
	"github.com/shashiranjanraj/storefront/internal/testdb"
)

func newUserInput(email string) models.CreateUserInput {
	return models.CreateUserInput{
		Email:     email,
		FirstName: "Ada",
		LastName:  "Lovelace",
		Password:  "password123",
	}
}

func TestUserCreateAndGet(t *testing.T) {
	repo := repositories.NewUserRepository(testdb.Open(t))
	ctx := context.Background()

	created, err := repo.Create(ctx, newUserInput("ada@example.com"))
	require.NoError(t, err)
	require.NotNil(t, created)
	assert.NotZero(t, created.ID)
	assert.Equal(t, "ada@example.com", created.Email)

	// The stored digest is bcrypt output, never the raw password.
	assert.True(t, strings.HasPrefix(created.HashedPassword, "$2"))
	assert.NotContains(t, created.HashedPassword, "password123")

	got, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, *created, *got)
}

func TestUserGetByIDAbsent(t *testing.T) {
	repo := repositories.NewUserRepository(testdb.Open(t))

	got, err := repo.GetByID(context.Background(), 12345)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestUserDuplicateEmail(t *testing.T) {
	repo := repositories.NewUserRepository(testdb.Open(t))
	ctx := context.Background()

	_, err := repo.Create(ctx, newUserInput("ada@example.com"))
	require.NoError(t, err)

	// The unique-index violation must surface as an error from Create,
	// never as a panic, regardless of how the driver reports it.
	dup, err := repo.Create(ctx, newUserInput("ada@example.com"))
	require.Error(t, err)
	assert.Nil(t, dup)

	// Only the first row persists.
	all, err := repo.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestUserUpdate(t *testing.T) {
	repo := repositories.NewUserRepository(testdb.Open(t))
	ctx := context.Background()

	created, err := repo.Create(ctx, newUserInput("ada@example.com"))
	require.NoError(t, err)

	updated, err := repo.Update(ctx, created.ID, models.UpdateUserInput{
		FirstName: "Augusta",
		LastName:  "King",
	})
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, "Augusta", updated.FirstName)
	assert.Equal(t, "King", updated.LastName)
	// Email and digest survive a name change.
	assert.Equal(t, created.Email, updated.Email)
	assert.Equal(t, created.HashedPassword, updated.HashedPassword)
}

func TestUserUpdateAbsent(t *testing.T) {
	repo := repositories.NewUserRepository(testdb.Open(t))

	updated, err := repo.Update(context.Background(), 999, models.UpdateUserInput{
		FirstName: "No",
		LastName:  "One",
	})
	require.NoError(t, err)
	assert.Nil(t, updated)
}

func TestUserDeleteIdempotent(t *testing.T) {
	repo := repositories.NewUserRepository(testdb.Open(t))
	ctx := context.Background()

	created, err := repo.Create(ctx, newUserInput("ada@example.com"))
	require.NoError(t, err)

	ok, err := repo.Delete(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	got, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Nil(t, got)

	// Deleting again reports the same outcome.
	ok, err = repo.Delete(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestUserGetByCredentials(t *testing.T) {
	repo := repositories.NewUserRepository(testdb.Open(t))
	ctx := context.Background()

	created, err := repo.Create(ctx, newUserInput("ada@example.com"))
	require.NoError(t, err)

	got, err := repo.GetByCredentials(ctx, "ada@example.com", "password123")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, created.ID, got.ID)

	// Wrong password and unknown email are indistinguishable.
	got, err = repo.GetByCredentials(ctx, "ada@example.com", "wrong")
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = repo.GetByCredentials(ctx, "nobody@example.com", "password123")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestUserExists(t *testing.T) {
	repo := repositories.NewUserRepository(testdb.Open(t))
	ctx := context.Background()

	created, err := repo.Create(ctx, newUserInput("ada@example.com"))
	require.NoError(t, err)

	ok, err := repo.Exists(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.Exists(ctx, created.ID+1)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestUserGetAll(t *testing.T) {
	repo := repositories.NewUserRepository(testdb.Open(t))
	ctx := context.Background()

	all, err := repo.GetAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)

	_, err = repo.Create(ctx, newUserInput("ada@example.com"))
	require.NoError(t, err)
	_, err = repo.Create(ctx, newUserInput("alan@example.com"))
	require.NoError(t, err)

	all, err = repo.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
