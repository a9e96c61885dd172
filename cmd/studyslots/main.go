package main

import (
	"context"
	"fmt"
	"os"

	"github.com/alexanderramin/studyslots/internal/cli"
	"github.com/alexanderramin/studyslots/internal/clock"
	"github.com/alexanderramin/studyslots/internal/config"
	"github.com/alexanderramin/studyslots/internal/db"
	"github.com/alexanderramin/studyslots/internal/repository"
	"github.com/alexanderramin/studyslots/internal/scheduler"
	"github.com/alexanderramin/studyslots/internal/service"
	"github.com/alexanderramin/studyslots/internal/tracing"
	"github.com/mattn/go-isatty"
	"github.com/viant/afs"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()
	cfg := config.Load()

	shutdown, err := tracing.Init("studyslots", version, cfg.TraceFile)
	if err != nil {
		return fmt.Errorf("initializing tracing: %w", err)
	}
	defer shutdown(ctx)

	fs := afs.New()
	catalog, err := config.LoadCatalog(ctx, fs, cfg.SlotsPath)
	if err != nil {
		return fmt.Errorf("loading slot catalog: %w", err)
	}

	// Wire the task store
	var store repository.StoreTx
	switch cfg.Store {
	case config.StoreJSON:
		store = repository.NewJSONTaskStore(fs, cfg.JSONURL)
	default:
		database, err := db.OpenDB(cfg.DBPath)
		if err != nil {
			return fmt.Errorf("opening database: %w", err)
		}
		defer database.Close()
		store = repository.NewSQLiteStoreTx(db.NewSQLiteUnitOfWork(database))
	}

	builder := &scheduler.Builder{
		Catalog:     catalog,
		HorizonDays: cfg.HorizonDays,
		LeadDays:    cfg.LeadDays,
	}

	var observers []service.UseCaseObserver
	if cfg.LogCalls {
		observers = append(observers, service.NewLogUseCaseObserver(os.Stderr))
	}

	clk := clock.System{}
	app := &cli.App{
		Planner: service.NewPlannerService(store, builder, clk, observers...),
		Clock:   clk,
	}

	// Detect interactive terminal for the add form and the board.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	return cli.NewRootCmd(app).ExecuteContext(ctx)
}
