package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/study-planner-api/internal/models"
)

func TestKeyPointRepository_OwnerScoping(t *testing.T) {
	db := newTestDB(t)
	users := NewUserRepository(db)
	repo := NewKeyPointRepository(db)

	alice := &models.User{Username: "alice", Email: "alice@example.com", PasswordHash: "hash"}
	bob := &models.User{Username: "bob", Email: "bob@example.com", PasswordHash: "hash"}
	require.NoError(t, users.Create(alice))
	require.NoError(t, users.Create(bob))

	keyPoint := &models.KeyPoint{Content: "Mitochondria is the powerhouse of the cell", UserID: alice.ID}
	require.NoError(t, repo.Create(keyPoint))
	require.NotZero(t, keyPoint.ID)
	require.False(t, keyPoint.CreatedAt.IsZero())

	bobs, err := repo.ListByOwner(bob.ID)
	require.NoError(t, err)
	assert.Empty(t, bobs)

	_, err = repo.FindByIDForOwner(keyPoint.ID, bob.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, repo.Delete(keyPoint.ID, bob.ID), ErrNotFound)

	alices, err := repo.ListByOwner(alice.ID)
	require.NoError(t, err)
	require.Len(t, alices, 1)
	assert.Equal(t, keyPoint.Content, alices[0].Content)

	require.NoError(t, repo.Delete(keyPoint.ID, alice.ID))
	alices, err = repo.ListByOwner(alice.ID)
	require.NoError(t, err)
	assert.Empty(t, alices)
}
