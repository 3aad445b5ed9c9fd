package main

import (
	"fmt"
	"os"

	"github.com/alexanderramin/ganttkit/internal/cli"
	"github.com/alexanderramin/ganttkit/internal/config"
	"github.com/alexanderramin/ganttkit/internal/db"
	"github.com/alexanderramin/ganttkit/internal/repository"
	"github.com/alexanderramin/ganttkit/internal/service"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Wire repositories
	chartRepo := repository.NewSQLiteChartRepo(database)
	barRepo := repository.NewSQLiteBarRepo(database)

	// Wire unit of work for transactional operations
	uow := db.NewSQLiteUnitOfWork(database)

	var observer service.UseCaseObserver = service.NoopUseCaseObserver{}
	if cfg.LogUseCases {
		observer = service.NewLogUseCaseObserver(os.Stderr)
	}

	app := &cli.App{
		Charts: service.NewChartService(chartRepo, observer),
		Bars:   service.NewBarService(chartRepo, barRepo, uow, observer),
		Import: service.NewImportService(uow, observer),
		Export: service.NewExportService(chartRepo, barRepo, observer),
		Config: cfg,
	}

	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	return cli.NewRootCmd(app).Execute()
}
