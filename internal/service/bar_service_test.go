package service

import (
	"context"
	"math"
	"testing"

	"github.com/alexanderramin/ganttkit/internal/domain"
	"github.com/alexanderramin/ganttkit/internal/repository"
	"github.com/alexanderramin/ganttkit/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createChart(t *testing.T, svc *testServices, name string) *domain.Chart {
	t.Helper()
	c := &domain.Chart{Name: name}
	require.NoError(t, svc.charts.Create(context.Background(), c))
	return c
}

func TestBarService_PutAppendsInOrder(t *testing.T) {
	svc := newTestServices(t)
	ctx := context.Background()
	chart := createChart(t, svc, "Sprint")

	for i, id := range []string{"c", "a", "b"} {
		sb, err := svc.bars.Put(ctx, chart.ID, domain.NewBar(id))
		require.NoError(t, err)
		assert.Equal(t, i, sb.Position)
	}

	list, err := svc.bars.List(ctx, chart.ID)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "c", list[0].Bar.Config.ID)
	assert.Equal(t, "a", list[1].Bar.Config.ID)
	assert.Equal(t, "b", list[2].Bar.Config.ID)
}

func TestBarService_PutReplacesExistingBarInPlace(t *testing.T) {
	svc := newTestServices(t)
	ctx := context.Background()
	chart := createChart(t, svc, "Sprint")

	_, err := svc.bars.Put(ctx, chart.ID, domain.NewBar("first"))
	require.NoError(t, err)
	original, err := svc.bars.Put(ctx, chart.ID, testutil.NewTestBar("second", testutil.WithLabel("Old", "")))
	require.NoError(t, err)
	_, err = svc.bars.Put(ctx, chart.ID, domain.NewBar("third"))
	require.NoError(t, err)

	updated, err := svc.bars.Put(ctx, chart.ID, testutil.NewTestBar("second", testutil.WithLabel("New", "red")))
	require.NoError(t, err)
	assert.Equal(t, original.Position, updated.Position)
	assert.Equal(t, true, svc.events.last().Fields["updated"])

	fetched, err := svc.bars.Get(ctx, chart.ID, "second")
	require.NoError(t, err)
	assert.Equal(t, "New", fetched.Bar.LabelName())
	assert.Equal(t, 1, fetched.Position)
}

func TestBarService_PutRejectsInvalidBar(t *testing.T) {
	svc := newTestServices(t)
	ctx := context.Background()
	chart := createChart(t, svc, "Sprint")

	bad := testutil.NewTestBar(" ", testutil.WithDragLimits(math.Inf(-1), 5))
	_, err := svc.bars.Put(ctx, chart.ID, bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bar validation failed (2 errors)")
	assert.Contains(t, err.Error(), "ganttBarConfig.id is required")

	count, err := svc.bars.Count(ctx, chart.ID)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestBarService_PutUnknownChart(t *testing.T) {
	svc := newTestServices(t)
	_, err := svc.bars.Put(context.Background(), "nope", domain.NewBar("a"))
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestBarService_Delete(t *testing.T) {
	svc := newTestServices(t)
	ctx := context.Background()
	chart := createChart(t, svc, "Sprint")

	_, err := svc.bars.Put(ctx, chart.ID, domain.NewBar("a"))
	require.NoError(t, err)
	require.NoError(t, svc.bars.Delete(ctx, chart.ID, "a"))
	assert.ErrorIs(t, svc.bars.Delete(ctx, chart.ID, "a"), repository.ErrNotFound)
}

func TestBarService_Bundles(t *testing.T) {
	svc := newTestServices(t)
	ctx := context.Background()
	chart := createChart(t, svc, "Sprint")

	for _, b := range []*domain.Bar{
		testutil.NewTestBar("x1", testutil.WithBundle("x")),
		testutil.NewTestBar("solo"),
		testutil.NewTestBar("a1", testutil.WithBundle("a")),
		testutil.NewTestBar("x2", testutil.WithBundle("x")),
	} {
		_, err := svc.bars.Put(ctx, chart.ID, b)
		require.NoError(t, err)
	}

	bundles, err := svc.bars.Bundles(ctx, chart.ID)
	require.NoError(t, err)
	assert.Equal(t, []domain.Bundle{
		{Name: "a", BarIDs: []string{"a1"}},
		{Name: "x", BarIDs: []string{"x1", "x2"}},
	}, bundles)

	members, err := svc.bars.BundleMembers(ctx, chart.ID, "x")
	require.NoError(t, err)
	require.Len(t, members, 2)
	assert.Equal(t, "x1", members[0].Bar.Config.ID)

	_, err = svc.bars.BundleMembers(ctx, chart.ID, "missing")
	assert.ErrorIs(t, err, repository.ErrNotFound)
	_, err = svc.bars.BundleMembers(ctx, chart.ID, "")
	assert.Error(t, err)
}
