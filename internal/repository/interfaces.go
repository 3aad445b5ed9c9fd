package repository

import (
	"context"

	"github.com/alexanderramin/ganttkit/internal/domain"
)

type ChartRepo interface {
	Create(ctx context.Context, c *domain.Chart) error
	GetByID(ctx context.Context, id string) (*domain.Chart, error)
	GetByName(ctx context.Context, name string) (*domain.Chart, error)
	List(ctx context.Context) ([]*domain.Chart, error)
	Update(ctx context.Context, c *domain.Chart) error
	Delete(ctx context.Context, id string) error
}

type BarRepo interface {
	Create(ctx context.Context, b *domain.StoredBar) error
	Upsert(ctx context.Context, b *domain.StoredBar) error
	Get(ctx context.Context, chartID, barID string) (*domain.StoredBar, error)
	ListByChart(ctx context.Context, chartID string) ([]*domain.StoredBar, error)
	ListByBundle(ctx context.Context, chartID, bundle string) ([]*domain.StoredBar, error)
	NextPosition(ctx context.Context, chartID string) (int, error)
	Count(ctx context.Context, chartID string) (int, error)
	Delete(ctx context.Context, chartID, barID string) error
	DeleteByChart(ctx context.Context, chartID string) error
}
