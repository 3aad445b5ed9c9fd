package service

import (
	"context"
	"testing"

	"github.com/alexanderramin/ganttkit/internal/domain"
	"github.com/alexanderramin/ganttkit/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChartService_CreateAssignsIDAndTimestamps(t *testing.T) {
	svc := newTestServices(t)
	ctx := context.Background()

	c := &domain.Chart{Name: "  Release plan  ", Description: "Q3"}
	require.NoError(t, svc.charts.Create(ctx, c))
	assert.NotEmpty(t, c.ID)
	assert.Equal(t, "Release plan", c.Name)
	assert.False(t, c.CreatedAt.IsZero())

	fetched, err := svc.charts.GetByName(ctx, "release PLAN")
	require.NoError(t, err)
	assert.Equal(t, c.ID, fetched.ID)
	assert.Equal(t, "Q3", fetched.Description)

	ev := svc.events.last()
	assert.Equal(t, "create-chart", ev.Name)
	assert.True(t, ev.Success)
}

func TestChartService_CreateRejectsEmptyAndDuplicateNames(t *testing.T) {
	svc := newTestServices(t)
	ctx := context.Background()

	err := svc.charts.Create(ctx, &domain.Chart{Name: "   "})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "chart name is required")
	assert.False(t, svc.events.last().Success)

	require.NoError(t, svc.charts.Create(ctx, &domain.Chart{Name: "Roadmap"}))
	err = svc.charts.Create(ctx, &domain.Chart{Name: "ROADMAP"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `chart "ROADMAP" already exists`)
}

func TestChartService_Rename(t *testing.T) {
	svc := newTestServices(t)
	ctx := context.Background()

	c := &domain.Chart{Name: "Old"}
	require.NoError(t, svc.charts.Create(ctx, c))
	require.NoError(t, svc.charts.Rename(ctx, c.ID, "New"))

	fetched, err := svc.charts.GetByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, "New", fetched.Name)

	assert.Error(t, svc.charts.Rename(ctx, c.ID, ""))
	assert.ErrorIs(t, svc.charts.Rename(ctx, "missing", "X"), repository.ErrNotFound)
}

func TestChartService_RenameToTakenName(t *testing.T) {
	svc := newTestServices(t)
	ctx := context.Background()

	a := &domain.Chart{Name: "Alpha"}
	b := &domain.Chart{Name: "Beta"}
	require.NoError(t, svc.charts.Create(ctx, a))
	require.NoError(t, svc.charts.Create(ctx, b))

	err := svc.charts.Rename(ctx, b.ID, "ALPHA")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `chart "Alpha" already exists`)
	assert.NotContains(t, err.Error(), "UNIQUE")

	// Changing only the case of a chart's own name is allowed.
	require.NoError(t, svc.charts.Rename(ctx, a.ID, "ALPHA"))
	fetched, err := svc.charts.GetByID(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, "ALPHA", fetched.Name)
}

func TestChartService_DeleteCascadesToBars(t *testing.T) {
	svc := newTestServices(t)
	ctx := context.Background()

	c := &domain.Chart{Name: "Doomed"}
	require.NoError(t, svc.charts.Create(ctx, c))
	_, err := svc.bars.Put(ctx, c.ID, domain.NewBar("a"))
	require.NoError(t, err)

	require.NoError(t, svc.charts.Delete(ctx, c.ID))
	_, err = svc.bars.Get(ctx, c.ID, "a")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	assert.ErrorIs(t, svc.charts.Delete(ctx, c.ID), repository.ErrNotFound)
}
