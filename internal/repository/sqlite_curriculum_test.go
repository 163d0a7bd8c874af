package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/alexanderramin/lumina/internal/db"
	"github.com/alexanderramin/lumina/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCurriculumRepo_RoundTrip(t *testing.T) {
	repo := NewSQLiteCurriculumRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	_, err := repo.Get(ctx)
	require.ErrorIs(t, err, ErrNotFound)

	in := testutil.NewTestCurriculum(3)
	require.NoError(t, repo.Save(ctx, in))

	got, err := repo.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, in.TrackName, got.TrackName)
	assert.Equal(t, in.Schedule, got.Schedule)
}

func TestCurriculumRepo_SaveReplacesSchedule(t *testing.T) {
	repo := NewSQLiteCurriculumRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, testutil.NewTestCurriculum(5)))
	require.NoError(t, repo.Save(ctx, testutil.NewTestCurriculum(2)))

	got, err := repo.Get(ctx)
	require.NoError(t, err)
	assert.Len(t, got.Schedule, 2)
}

func TestCurriculumRepo_Delete(t *testing.T) {
	repo := NewSQLiteCurriculumRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, testutil.NewTestCurriculum(3)))
	require.NoError(t, repo.Delete(ctx))
	_, err := repo.Get(ctx)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCurriculumRepo_SaveRollsBackOnDayFailure(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()
	require.NoError(t, NewSQLiteCurriculumRepo(database).Save(ctx, testutil.NewTestCurriculum(2)))

	boom := errors.New("disk full")
	// Exec 1 deletes, exec 2 inserts the header, exec 3 is the first day.
	uow := &testutil.FailOnNthExecUoW{DB: database, FailOn: 3, Err: boom}
	err := uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return NewSQLiteCurriculumRepo(tx).Save(ctx, testutil.NewTestCurriculum(4))
	})
	require.ErrorIs(t, err, boom)

	got, err := NewSQLiteCurriculumRepo(database).Get(ctx)
	require.NoError(t, err)
	assert.Len(t, got.Schedule, 2, "previous curriculum survives a failed replace")
}
