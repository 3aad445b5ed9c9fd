package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/alexanderramin/ganttkit/internal/config"
	"github.com/alexanderramin/ganttkit/internal/domain"
	"github.com/alexanderramin/ganttkit/internal/repository"
	"gopkg.in/yaml.v3"
)

type exportService struct {
	charts   repository.ChartRepo
	bars     repository.BarRepo
	observer UseCaseObserver
}

func NewExportService(charts repository.ChartRepo, bars repository.BarRepo, observers ...UseCaseObserver) ExportService {
	return &exportService{charts: charts, bars: bars, observer: useCaseObserverOrNoop(observers)}
}

func (s *exportService) Export(ctx context.Context, chartID string, format config.ExportFormat, w io.Writer) (n int, err error) {
	uc := startUseCase(s.observer, "export-bars", map[string]any{"chart_id": chartID, "format": string(format)})
	defer uc.done(ctx, &err)

	if _, err := s.charts.GetByID(ctx, chartID); err != nil {
		return 0, err
	}
	stored, err := s.bars.ListByChart(ctx, chartID)
	if err != nil {
		return 0, err
	}
	bars := barsOf(stored)
	uc.fields["bars"] = len(bars)

	data, err := domain.EncodeJSON(bars, "  ")
	if err != nil {
		return 0, fmt.Errorf("encoding bars: %w", err)
	}

	switch format {
	case config.FormatJSON, "":
		data = append(data, '\n')
	case config.FormatYAML:
		if data, err = jsonToYAML(data); err != nil {
			return 0, fmt.Errorf("encoding bars as yaml: %w", err)
		}
	default:
		return 0, fmt.Errorf("unsupported export format %q", format)
	}

	if _, err := w.Write(data); err != nil {
		return 0, fmt.Errorf("writing export: %w", err)
	}
	return len(bars), nil
}

// jsonToYAML re-encodes a JSON document as YAML. Numbers keep their JSON
// spelling so integers beyond float64 precision survive.
func jsonToYAML(data []byte) ([]byte, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	return yaml.Marshal(yamlNumbers(v))
}

func yamlNumbers(v any) any {
	switch t := v.(type) {
	case map[string]any:
		for k, e := range t {
			t[k] = yamlNumbers(e)
		}
		return t
	case []any:
		for i, e := range t {
			t[i] = yamlNumbers(e)
		}
		return t
	case json.Number:
		tag := "!!int"
		if strings.ContainsAny(t.String(), ".eE") {
			tag = "!!float"
		}
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: t.String()}
	default:
		return v
	}
}
