package repository

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserFindActiveBySub(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)
	u := seedUser(t, db)

	found, err := repo.FindActiveBySub(u.SubUUID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, u.ID, found.ID)

	u.Active = false
	require.NoError(t, repo.Save(u))

	found, err = repo.FindActiveBySub(u.SubUUID)
	assert.NoError(t, err)
	assert.Nil(t, found)

	found, err = repo.FindBySub("nobody")
	assert.NoError(t, err)
	assert.Nil(t, found)
}

func TestUserDeleteRejectedWhileOwningRecords(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)
	u := seedUser(t, db)
	cat := seedCategory(t, db, u, "book")

	var rerr *ReferentialError
	require.True(t, errors.As(repo.Delete(u), &rerr))
	assert.Equal(t, "category", rerr.Dependent)

	require.NoError(t, NewCategoryRepository(db).Delete(cat))
	require.NoError(t, repo.Delete(u))

	found, err := repo.FindByID(u.ID)
	require.NoError(t, err)
	assert.Nil(t, found)
}

func TestUserFindActiveByEmail(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)
	u := seedUser(t, db)

	found, err := repo.FindActiveByEmail("owner@example.com")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, u.ID, found.ID)

	found, err = repo.FindActiveByEmail("someone@example.com")
	assert.NoError(t, err)
	assert.Nil(t, found)
}
