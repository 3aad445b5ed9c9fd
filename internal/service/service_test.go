package service

import (
	"context"
	"database/sql"
	"sync"
	"testing"

	"github.com/alexanderramin/ganttkit/internal/repository"
	"github.com/alexanderramin/ganttkit/internal/testutil"
)

type testServices struct {
	db     *sql.DB
	charts ChartService
	bars   BarService
	imp    ImportService
	exp    ExportService
	events *recordingObserver
}

func newTestServices(t *testing.T) *testServices {
	t.Helper()
	database := testutil.NewTestDB(t)
	chartRepo := repository.NewSQLiteChartRepo(database)
	barRepo := repository.NewSQLiteBarRepo(database)
	uow := testutil.NewTestUoW(database)
	obs := &recordingObserver{}
	return &testServices{
		db:     database,
		charts: NewChartService(chartRepo, obs),
		bars:   NewBarService(chartRepo, barRepo, uow, obs),
		imp:    NewImportService(uow, obs),
		exp:    NewExportService(chartRepo, barRepo, obs),
		events: obs,
	}
}

type recordingObserver struct {
	mu     sync.Mutex
	events []UseCaseEvent
}

func (r *recordingObserver) ObserveUseCase(_ context.Context, event UseCaseEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
}

func (r *recordingObserver) last() UseCaseEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.events) == 0 {
		return UseCaseEvent{}
	}
	return r.events[len(r.events)-1]
}
