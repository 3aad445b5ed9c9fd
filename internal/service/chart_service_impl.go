package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/ganttkit/internal/domain"
	"github.com/alexanderramin/ganttkit/internal/repository"
	"github.com/google/uuid"
)

type chartService struct {
	charts   repository.ChartRepo
	observer UseCaseObserver
}

func NewChartService(charts repository.ChartRepo, observers ...UseCaseObserver) ChartService {
	return &chartService{charts: charts, observer: useCaseObserverOrNoop(observers)}
}

func (s *chartService) Create(ctx context.Context, c *domain.Chart) (err error) {
	uc := startUseCase(s.observer, "create-chart", map[string]any{"chart": c.Name})
	defer uc.done(ctx, &err)

	c.Name = strings.TrimSpace(c.Name)
	if c.Name == "" {
		return fmt.Errorf("chart name is required")
	}
	if _, err := s.charts.GetByName(ctx, c.Name); err == nil {
		return fmt.Errorf("chart %q already exists", c.Name)
	} else if !errors.Is(err, repository.ErrNotFound) {
		return err
	}
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	c.CreatedAt = now
	c.UpdatedAt = now
	return s.charts.Create(ctx, c)
}

func (s *chartService) GetByID(ctx context.Context, id string) (*domain.Chart, error) {
	return s.charts.GetByID(ctx, id)
}

func (s *chartService) GetByName(ctx context.Context, name string) (*domain.Chart, error) {
	return s.charts.GetByName(ctx, strings.TrimSpace(name))
}

func (s *chartService) List(ctx context.Context) ([]*domain.Chart, error) {
	return s.charts.List(ctx)
}

func (s *chartService) Rename(ctx context.Context, id, name string) (err error) {
	uc := startUseCase(s.observer, "rename-chart", map[string]any{"chart_id": id, "name": name})
	defer uc.done(ctx, &err)

	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("chart name is required")
	}
	c, err := s.charts.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if other, err := s.charts.GetByName(ctx, name); err == nil && other.ID != c.ID {
		return fmt.Errorf("chart %q already exists", other.Name)
	} else if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return err
	}
	c.Name = name
	c.UpdatedAt = time.Now().UTC()
	return s.charts.Update(ctx, c)
}

func (s *chartService) Delete(ctx context.Context, id string) (err error) {
	uc := startUseCase(s.observer, "delete-chart", map[string]any{"chart_id": id})
	defer uc.done(ctx, &err)

	return s.charts.Delete(ctx, id)
}
