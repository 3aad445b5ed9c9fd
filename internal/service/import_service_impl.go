package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/ganttkit/internal/db"
	"github.com/alexanderramin/ganttkit/internal/domain"
	"github.com/alexanderramin/ganttkit/internal/importer"
	"github.com/alexanderramin/ganttkit/internal/repository"
	"github.com/google/uuid"
)

type importService struct {
	uow      db.UnitOfWork
	observer UseCaseObserver
}

// NewImportService creates an ImportService. All writes of one import happen
// in a single transaction.
func NewImportService(uow db.UnitOfWork, observers ...UseCaseObserver) ImportService {
	return &importService{uow: uow, observer: useCaseObserverOrNoop(observers)}
}

func (s *importService) ImportFile(ctx context.Context, path string, opts ImportOptions) (*ImportResult, error) {
	doc, err := importer.LoadDocument(path)
	if err != nil {
		return nil, fmt.Errorf("loading bar file: %w", err)
	}
	return s.ImportDocument(ctx, doc, opts)
}

func (s *importService) ImportDocument(ctx context.Context, doc *importer.Document, opts ImportOptions) (result *ImportResult, err error) {
	uc := startUseCase(s.observer, "import-bars", map[string]any{"bars": len(doc.Bars), "replace": opts.Replace})
	defer uc.done(ctx, &err)

	if errs := importer.ValidateDocument(doc); len(errs) > 0 {
		return nil, formatValidationErrors("bar file", errs)
	}

	bars, err := importer.Convert(doc)
	if err != nil {
		return nil, fmt.Errorf("converting bars: %w", err)
	}
	var domainErrs []error
	for i, b := range bars {
		for _, e := range b.Validate() {
			domainErrs = append(domainErrs, fmt.Errorf("bars[%d]: %w", i, e))
		}
	}
	if len(domainErrs) > 0 {
		return nil, formatValidationErrors("bar file", domainErrs)
	}

	chart, err := chartFromImport(doc, opts)
	if err != nil {
		return nil, err
	}
	uc.fields["chart"] = chart.Name

	result = &ImportResult{Chart: chart, BarCount: len(bars), Warnings: importer.Lint(bars)}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		charts := repository.NewSQLiteChartRepo(tx)
		barRepo := repository.NewSQLiteBarRepo(tx)

		existing, err := charts.GetByName(ctx, chart.Name)
		switch {
		case err == nil:
			if !opts.Replace {
				return fmt.Errorf("chart %q already exists (use replace to overwrite it)", chart.Name)
			}
			// The chart keeps its id; only its bars and description are replaced.
			if err := barRepo.DeleteByChart(ctx, existing.ID); err != nil {
				return fmt.Errorf("clearing existing chart: %w", err)
			}
			chart.ID = existing.ID
			chart.Name = existing.Name
			chart.CreatedAt = existing.CreatedAt
			if doc.Chart == nil {
				chart.Description = existing.Description
			}
			if err := charts.Update(ctx, chart); err != nil {
				return err
			}
			result.Replaced = true
		case errors.Is(err, repository.ErrNotFound):
			if err := charts.Create(ctx, chart); err != nil {
				return err
			}
		default:
			return err
		}

		for i, b := range bars {
			sb := &domain.StoredBar{
				ChartID:   chart.ID,
				Position:  i,
				Bar:       b,
				CreatedAt: chart.UpdatedAt,
				UpdatedAt: chart.UpdatedAt,
			}
			if err := barRepo.Create(ctx, sb); err != nil {
				return fmt.Errorf("bars[%d]: %w", i, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func chartFromImport(doc *importer.Document, opts ImportOptions) (*domain.Chart, error) {
	c := &domain.Chart{Name: strings.TrimSpace(opts.ChartName)}
	if doc.Chart != nil {
		if c.Name == "" {
			c.Name = strings.TrimSpace(doc.Chart.Name)
		}
		c.Description = doc.Chart.Description
	}
	if c.Name == "" {
		return nil, fmt.Errorf("chart name is required: pass one or add a chart header to the file")
	}
	now := time.Now().UTC()
	c.ID = uuid.New().String()
	c.CreatedAt = now
	c.UpdatedAt = now
	return c, nil
}
