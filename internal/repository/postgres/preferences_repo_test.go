package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/icare-app/icare-server/internal/domain"
	"github.com/icare-app/icare-server/internal/repository/postgres"
	"github.com/icare-app/icare-server/internal/testutil"
)

func TestPreferencesRepository_CreateAndGet(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repo := postgres.NewPreferencesRepository(testDB.DB)
	ctx := context.Background()

	user, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
	prefs := domain.NewDefaultPreferences(user.ID)

	require.NoError(t, repo.Create(ctx, prefs))

	got, err := repo.GetByUserID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, prefs.ID, got.ID)
	assert.True(t, got.HideReels)

	_, err = repo.GetByUserID(ctx, uuid.New())
	assert.Error(t, err)
}

func TestPreferencesRepository_Upsert(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repo := postgres.NewPreferencesRepository(testDB.DB)
	ctx := context.Background()

	user, _ := testutil.NewUserBuilder().Build(t, testDB.DB)

	// First upsert creates the row.
	first := domain.NewDefaultPreferences(user.ID)
	require.NoError(t, repo.Upsert(ctx, first))

	// A second writer that lost the create race carries a fresh id but the
	// same user_id; its write folds into the existing row.
	lockEnd := time.Now().Add(time.Hour)
	second := domain.NewDefaultPreferences(user.ID)
	second.HideStories = true
	second.LockMode = true
	second.LockEndTime = &lockEnd
	require.NoError(t, repo.Upsert(ctx, second))

	var count int64
	testDB.DB.Model(&domain.UserPreferences{}).Where("user_id = ?", user.ID).Count(&count)
	assert.Equal(t, int64(1), count)

	got, err := repo.GetByUserID(ctx, user.ID)
	require.NoError(t, err)
	assert.True(t, got.HideStories)
	assert.True(t, got.LockMode)
	require.NotNil(t, got.LockEndTime)
	assert.WithinDuration(t, lockEnd, *got.LockEndTime, time.Second)
}
