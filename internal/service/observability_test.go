package service

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/alexanderramin/ganttkit/internal/domain"
	"github.com/alexanderramin/ganttkit/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogUseCaseObserver_WritesSortedFields(t *testing.T) {
	var buf bytes.Buffer
	obs := NewLogUseCaseObserver(&buf)
	obs.ObserveUseCase(context.Background(), UseCaseEvent{
		Name:    "put-bar",
		Success: true,
		Fields:  map[string]any{"chart_id": "c1", "bar_id": "b1"},
	})

	line := buf.String()
	assert.Contains(t, line, "level=INFO")
	assert.Contains(t, line, "msg=service_use_case")
	assert.Contains(t, line, "use_case=put-bar")
	assert.Less(t, strings.Index(line, "bar_id=b1"), strings.Index(line, "chart_id=c1"))
}

func TestLogUseCaseObserver_ErrorsLogAtErrorLevel(t *testing.T) {
	var buf bytes.Buffer
	obs := NewLogUseCaseObserver(&buf)
	obs.ObserveUseCase(context.Background(), UseCaseEvent{Name: "delete-chart", Err: errors.New("boom")})

	assert.Contains(t, buf.String(), "level=ERROR")
	assert.Contains(t, buf.String(), "error=boom")
}

func TestNewLogUseCaseObserver_NilWriterIsNoop(t *testing.T) {
	assert.IsType(t, NoopUseCaseObserver{}, NewLogUseCaseObserver(nil))
}

func TestChartService_ReportsThroughLogObserver(t *testing.T) {
	var buf bytes.Buffer
	svc := newTestServices(t)
	charts := NewChartService(repository.NewSQLiteChartRepo(svc.db), NewLogUseCaseObserver(&buf))

	require.NoError(t, charts.Create(context.Background(), &domain.Chart{Name: "Logged"}))
	assert.Contains(t, buf.String(), "use_case=create-chart")
	assert.Contains(t, buf.String(), "chart=Logged")
	assert.Contains(t, buf.String(), "success=true")
}
