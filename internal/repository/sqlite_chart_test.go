package repository

import (
	"context"
	"testing"
	"time"

	"github.com/alexanderramin/ganttkit/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChartRepo_CreateAndGetByID(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteChartRepo(db)
	ctx := context.Background()

	chart := testutil.NewTestChart("Release", testutil.WithDescription("Q3 rollout"))
	require.NoError(t, repo.Create(ctx, chart))

	fetched, err := repo.GetByID(ctx, chart.ID)
	require.NoError(t, err)
	assert.Equal(t, chart.ID, fetched.ID)
	assert.Equal(t, chart.Name, fetched.Name)
	assert.Equal(t, "Q3 rollout", fetched.Description)
	assert.True(t, chart.CreatedAt.Equal(fetched.CreatedAt))
}

func TestChartRepo_GetByName_CaseInsensitive(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteChartRepo(db)
	ctx := context.Background()

	chart := testutil.NewTestChart("Roadmap")
	chart.Name = "Roadmap"
	require.NoError(t, repo.Create(ctx, chart))

	fetched, err := repo.GetByName(ctx, "ROADMAP")
	require.NoError(t, err)
	assert.Equal(t, chart.ID, fetched.ID)
}

func TestChartRepo_DuplicateNameRejected(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteChartRepo(db)
	ctx := context.Background()

	a := testutil.NewTestChart("x")
	a.Name = "Plan"
	b := testutil.NewTestChart("x")
	b.Name = "plan"
	require.NoError(t, repo.Create(ctx, a))
	assert.Error(t, repo.Create(ctx, b))
}

func TestChartRepo_NotFound(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteChartRepo(db)
	ctx := context.Background()

	_, err := repo.GetByID(ctx, "nonexistent")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = repo.GetByName(ctx, "nonexistent")
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, repo.Delete(ctx, "nonexistent"), ErrNotFound)
}

func TestChartRepo_ListAndUpdate(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteChartRepo(db)
	ctx := context.Background()

	c1 := testutil.NewTestChart("One")
	c2 := testutil.NewTestChart("Two")
	c2.CreatedAt = c1.CreatedAt.Add(time.Minute)
	require.NoError(t, repo.Create(ctx, c2))
	require.NoError(t, repo.Create(ctx, c1))

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, c1.ID, list[0].ID)
	assert.Equal(t, c2.ID, list[1].ID)

	c1.Name = "Renamed"
	c1.UpdatedAt = c1.UpdatedAt.Add(time.Hour)
	require.NoError(t, repo.Update(ctx, c1))

	fetched, err := repo.GetByID(ctx, c1.ID)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", fetched.Name)
	assert.True(t, c1.UpdatedAt.Equal(fetched.UpdatedAt))
}
