package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/ganttkit/internal/db"
	"github.com/alexanderramin/ganttkit/internal/domain"
	"github.com/alexanderramin/ganttkit/internal/repository"
)

type barService struct {
	charts   repository.ChartRepo
	bars     repository.BarRepo
	uow      db.UnitOfWork
	observer UseCaseObserver
}

func NewBarService(
	charts repository.ChartRepo,
	bars repository.BarRepo,
	uow db.UnitOfWork,
	observers ...UseCaseObserver,
) BarService {
	return &barService{
		charts:   charts,
		bars:     bars,
		uow:      uow,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *barService) Put(ctx context.Context, chartID string, bar *domain.Bar) (stored *domain.StoredBar, err error) {
	uc := startUseCase(s.observer, "put-bar", map[string]any{"chart_id": chartID, "bar_id": bar.Config.ID})
	defer uc.done(ctx, &err)

	if errs := bar.Validate(); len(errs) > 0 {
		return nil, formatValidationErrors("bar", errs)
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txCharts := repository.NewSQLiteChartRepo(tx)
		txBars := repository.NewSQLiteBarRepo(tx)

		if _, err := txCharts.GetByID(ctx, chartID); err != nil {
			return err
		}

		now := time.Now().UTC()
		existing, err := txBars.Get(ctx, chartID, bar.Config.ID)
		switch {
		case err == nil:
			uc.fields["updated"] = true
			stored = &domain.StoredBar{
				ChartID:   chartID,
				Position:  existing.Position,
				Bar:       bar,
				CreatedAt: existing.CreatedAt,
				UpdatedAt: now,
			}
			return txBars.Upsert(ctx, stored)
		case errors.Is(err, repository.ErrNotFound):
			pos, err := txBars.NextPosition(ctx, chartID)
			if err != nil {
				return err
			}
			uc.fields["updated"] = false
			stored = &domain.StoredBar{
				ChartID:   chartID,
				Position:  pos,
				Bar:       bar,
				CreatedAt: now,
				UpdatedAt: now,
			}
			return txBars.Create(ctx, stored)
		default:
			return err
		}
	})
	if err != nil {
		return nil, fmt.Errorf("storing bar %q: %w", bar.Config.ID, err)
	}
	return stored, nil
}

func (s *barService) Get(ctx context.Context, chartID, barID string) (*domain.StoredBar, error) {
	return s.bars.Get(ctx, chartID, barID)
}

func (s *barService) List(ctx context.Context, chartID string) ([]*domain.StoredBar, error) {
	if _, err := s.charts.GetByID(ctx, chartID); err != nil {
		return nil, err
	}
	return s.bars.ListByChart(ctx, chartID)
}

func (s *barService) Count(ctx context.Context, chartID string) (int, error) {
	return s.bars.Count(ctx, chartID)
}

func (s *barService) Delete(ctx context.Context, chartID, barID string) (err error) {
	uc := startUseCase(s.observer, "delete-bar", map[string]any{"chart_id": chartID, "bar_id": barID})
	defer uc.done(ctx, &err)

	return s.bars.Delete(ctx, chartID, barID)
}

func (s *barService) Bundles(ctx context.Context, chartID string) ([]domain.Bundle, error) {
	stored, err := s.List(ctx, chartID)
	if err != nil {
		return nil, err
	}
	return domain.GroupByBundle(barsOf(stored)), nil
}

func (s *barService) BundleMembers(ctx context.Context, chartID, bundle string) ([]*domain.StoredBar, error) {
	if bundle == "" {
		return nil, fmt.Errorf("bundle name is required")
	}
	members, err := s.bars.ListByBundle(ctx, chartID, bundle)
	if err != nil {
		return nil, err
	}
	if len(members) == 0 {
		return nil, fmt.Errorf("bundle %q: %w", bundle, repository.ErrNotFound)
	}
	return members, nil
}

func barsOf(stored []*domain.StoredBar) []*domain.Bar {
	bars := make([]*domain.Bar, 0, len(stored))
	for _, sb := range stored {
		bars = append(bars, sb.Bar)
	}
	return bars
}
