package repository

import (
	"context"
	"testing"

	"github.com/alexanderramin/lumina/internal/domain"
	"github.com/alexanderramin/lumina/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfileRepo_GetMissing(t *testing.T) {
	repo := NewSQLiteProfileRepo(testutil.NewTestDB(t))

	_, err := repo.Get(context.Background())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestProfileRepo_SaveAndGet(t *testing.T) {
	repo := NewSQLiteProfileRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	in := testutil.NewTestProfile(
		testutil.WithDay(4),
		testutil.WithLastScore(66.67),
		testutil.Returning(),
		testutil.WithBuffer(5, "Topic 5", testutil.NewTestContent("Day Five")),
	)
	require.NoError(t, repo.Save(ctx, in))

	got, err := repo.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, in.Name, got.Name)
	assert.Equal(t, domain.RoleDeveloper, got.Role)
	assert.Equal(t, 4, got.CurrentDay)
	assert.InDelta(t, 66.67, got.LastQuizScore, 0.001)
	assert.True(t, got.IsReturningUser)
	require.NotNil(t, got.ContentBuffer)
	assert.True(t, got.ContentBuffer.Matches(5, "Topic 5"))
	assert.Equal(t, "Day Five", got.ContentBuffer.Data.DayTitle)
	assert.Len(t, got.ContentBuffer.Data.Quiz, 3)
}

func TestProfileRepo_SaveOverwritesAndClearsBuffer(t *testing.T) {
	repo := NewSQLiteProfileRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	p := testutil.NewTestProfile(testutil.WithBuffer(2, "Topic 2", testutil.NewTestContent("Two")))
	require.NoError(t, repo.Save(ctx, p))

	p.ContentBuffer = nil
	p.PersonaName = ""
	p.CurrentDay = 2
	require.NoError(t, repo.Save(ctx, p))

	got, err := repo.Get(ctx)
	require.NoError(t, err)
	assert.Nil(t, got.ContentBuffer)
	assert.Empty(t, got.PersonaName)
	assert.Equal(t, 2, got.CurrentDay)
}

func TestProfileRepo_Delete(t *testing.T) {
	repo := NewSQLiteProfileRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, testutil.NewTestProfile()))
	require.NoError(t, repo.Delete(ctx))

	_, err := repo.Get(ctx)
	assert.ErrorIs(t, err, ErrNotFound)
	require.NoError(t, repo.Delete(ctx), "deleting twice is not an error")
}

func TestProfileRepo_ClampsExpertiseOnSave(t *testing.T) {
	repo := NewSQLiteProfileRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, testutil.NewTestProfile(testutil.WithExpertise(14))))
	got, err := repo.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.MaxExpertise, got.ExpertiseLevel)
}
