package service

import (
	"context"
	"io"

	"github.com/alexanderramin/ganttkit/internal/config"
	"github.com/alexanderramin/ganttkit/internal/domain"
	"github.com/alexanderramin/ganttkit/internal/importer"
)

type ChartService interface {
	Create(ctx context.Context, c *domain.Chart) error
	GetByID(ctx context.Context, id string) (*domain.Chart, error)
	GetByName(ctx context.Context, name string) (*domain.Chart, error)
	List(ctx context.Context) ([]*domain.Chart, error)
	Rename(ctx context.Context, id, name string) error
	Delete(ctx context.Context, id string) error
}

type BarService interface {
	// Put validates bar and stores it in the chart, replacing any bar with the
	// same id. New bars are appended after the last position.
	Put(ctx context.Context, chartID string, bar *domain.Bar) (*domain.StoredBar, error)
	Get(ctx context.Context, chartID, barID string) (*domain.StoredBar, error)
	List(ctx context.Context, chartID string) ([]*domain.StoredBar, error)
	Count(ctx context.Context, chartID string) (int, error)
	Delete(ctx context.Context, chartID, barID string) error
	Bundles(ctx context.Context, chartID string) ([]domain.Bundle, error)
	BundleMembers(ctx context.Context, chartID, bundle string) ([]*domain.StoredBar, error)
}

// ImportResult holds the outcome of a bar import.
type ImportResult struct {
	Chart    *domain.Chart
	BarCount int
	Replaced bool
	Warnings []string
}

// ImportOptions controls how an import lands in storage. ChartName overrides
// the name carried in the document header.
type ImportOptions struct {
	ChartName string
	Replace   bool
}

type ImportService interface {
	ImportFile(ctx context.Context, path string, opts ImportOptions) (*ImportResult, error)
	ImportDocument(ctx context.Context, doc *importer.Document, opts ImportOptions) (*ImportResult, error)
}

type ExportService interface {
	// Export writes the chart's bars, in position order, as a bare array.
	Export(ctx context.Context, chartID string, format config.ExportFormat, w io.Writer) (int, error)
}
