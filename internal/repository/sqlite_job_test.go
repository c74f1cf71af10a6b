package repository

import (
	"context"
	"testing"

	"github.com/mkovach/crewboard/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJobRepo_RoundTripAndList(t *testing.T) {
	repo := NewSQLiteJobRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	expo := testutil.NewTestJob("Spring Expo", "Harbor Convention Center")
	gala := testutil.NewTestJob("Gala Strike", "Meridian Events")
	require.NoError(t, repo.Create(ctx, expo))
	require.NoError(t, repo.Create(ctx, gala))

	got, err := repo.GetByID(ctx, expo.ID)
	require.NoError(t, err)
	assert.Equal(t, "Harbor Convention Center", got.ClientName)

	all, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Gala Strike", all[0].Name, "listing sorts by name")
}

func TestJobRepo_ListByClient(t *testing.T) {
	repo := NewSQLiteJobRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, testutil.NewTestJob("Expo", "Harbor")))
	require.NoError(t, repo.Create(ctx, testutil.NewTestJob("Gala", "Meridian")))
	require.NoError(t, repo.Create(ctx, testutil.NewTestJob("Strike", "Harbor")))

	got, err := repo.ListByClient(ctx, "Harbor")
	require.NoError(t, err)
	require.Len(t, got, 2)
	for _, j := range got {
		assert.Equal(t, "Harbor", j.ClientName)
	}

	none, err := repo.ListByClient(ctx, "Nobody")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestJobRepo_DeleteMissing(t *testing.T) {
	repo := NewSQLiteJobRepo(testutil.NewTestDB(t))
	assert.ErrorIs(t, repo.Delete(context.Background(), "missing"), ErrNotFound)
}
