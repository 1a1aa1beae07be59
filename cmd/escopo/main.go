package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/alexanderramin/escopo/internal/cli"
	"github.com/alexanderramin/escopo/internal/config"
	"github.com/alexanderramin/escopo/internal/db"
	"github.com/alexanderramin/escopo/internal/logging"
	"github.com/alexanderramin/escopo/internal/repository"
	"github.com/alexanderramin/escopo/internal/service"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(cli.ExitCode(err))
	}
}

func run() error {
	// Config file: ESCOPO_CONFIG, or ~/.escopo/config.yaml when present.
	cfg, err := config.Load(os.Getenv("ESCOPO_CONFIG"))
	if err != nil {
		return err
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	database, dialect, err := db.Open(cfg.DBOptions())
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()
	logger.Debug("database ready", zap.String("driver", string(dialect)))

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	if cfg.Metrics.Textfile != "" {
		defer func() {
			if err := prometheus.WriteToTextfile(cfg.Metrics.Textfile, registry); err != nil {
				logger.Warn("writing metrics textfile", zap.String("path", cfg.Metrics.Textfile), zap.Error(err))
			}
		}()
	}
	observers := []service.UseCaseObserver{
		service.NewLogUseCaseObserver(logger),
		service.NewMetricsUseCaseObserver(registry),
	}

	// Wire repositories
	conn := dialect.Bind(database)
	projectRepo := repository.NewSQLProjectRepo(conn)
	typeRepo := repository.NewSQLLevelTypeRepo(conn)
	scheduleRepo := repository.NewSQLScheduleRepo(conn)
	nodeStores := repository.NewSQLNodeStores(conn)

	// Wire unit of work for transactional operations
	uow := db.NewUnitOfWork(database, dialect)

	// Wire services
	opts := service.HierarchyOptions{UpdateMode: cfg.Hierarchy.UpdateMode}
	hierarchy := service.NewHierarchyService(nodeStores, projectRepo, typeRepo, opts, observers...)

	app := &cli.App{
		Projects:  service.NewProjectService(projectRepo, nil, observers...),
		Hierarchy: hierarchy,
		Schedule:  service.NewScheduleService(scheduleRepo, projectRepo, nil, observers...),
		Summary:   service.NewSummaryService(hierarchy, projectRepo, typeRepo, observers...),
		Types:     service.NewLevelTypeService(typeRepo),
		Import:    service.NewImportService(uow, opts, observers...),
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	return cli.NewRootCmd(app).ExecuteContext(ctx)
}
