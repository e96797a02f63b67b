package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/jask/inventorly/internal/config"
	"github.com/jask/inventorly/internal/database"
	"github.com/jask/inventorly/internal/database/memstore"
	"github.com/jask/inventorly/internal/database/repository"
	"github.com/jask/inventorly/internal/logging"
	"github.com/jask/inventorly/internal/service"
	"github.com/jask/inventorly/internal/tui"
)

const usage = `usage: inventorly [command]

commands:
  (none)     start the terminal app
  template   print the bulk upload CSV template
  reset      wipe the sqlite database and reload the demo data
`

func main() {
	// a missing .env is normal
	_ = godotenv.Load()

	cmd := ""
	if len(os.Args) > 1 {
		cmd = os.Args[1]
	}
	switch cmd {
	case "", "template", "reset":
	case "help", "-h", "--help":
		fmt.Print(usage)
		return
	default:
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	if err := run(context.Background(), cmd); err != nil {
		log.Fatalf("%s", err)
	}
}

// run does the work of main so deferred cleanup happens before any exit.
func run(ctx context.Context, cmd string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if cmd == "template" {
		if err := service.WriteTemplate(os.Stdout); err != nil {
			return fmt.Errorf("template: %w", err)
		}
		return nil
	}
	if cmd == "reset" && cfg.Database.Driver != config.DriverSQLite {
		return fmt.Errorf("reset: only the sqlite store persists; set database.driver = %q", config.DriverSQLite)
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		return fmt.Errorf("logging: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	store, db, err := openStore(ctx, cfg)
	if err != nil {
		return fmt.Errorf("store: %w", err)
	}
	if db != nil {
		defer db.Close()
	}

	var maintenance *service.MaintenanceService
	if db != nil {
		maintenance = &service.MaintenanceService{DB: db, Store: store, Log: logger}
	}
	if cmd == "reset" {
		if err := maintenance.Reset(ctx); err != nil {
			return fmt.Errorf("reset: %w", err)
		}
		fmt.Printf("reset %s\n", cfg.Database.Path)
		return nil
	}

	items := &service.ItemService{Items: store.Items, Log: logger}
	jobs := &service.JobService{
		Projects:    store.Projects,
		Assignments: store.Assignments,
		Items:       store.Items,
		Log:         logger,
		Latency:     cfg.Auth.NetworkLatency,
	}
	services := tui.Services{
		Auth: &service.AuthService{
			Users:         store.Users,
			Codes:         store.Codes,
			Sender:        service.LogSender{Log: logger},
			Log:           logger,
			Latency:       cfg.Auth.NetworkLatency,
			CodeTTL:       cfg.Auth.CodeTTL,
			AcceptAnyCode: cfg.Auth.AcceptAnyCode,
			Retries:       cfg.Auth.SendRetries,
		},
		Items:       items,
		Jobs:        jobs,
		Reports:     &service.ReportService{Items: items, Jobs: jobs, Log: logger},
		Bulk:        &service.BulkService{Items: store.Items, Log: logger, ParseDelay: cfg.Import.ParseDelay},
		Maintenance: maintenance,
	}

	logger.Info("starting", zap.String("store", cfg.Database.Driver))
	p := tea.NewProgram(tui.New(ctx, cfg, services, logger), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}

// openStore returns the configured store with the demo data loaded. db is nil
// for the memory store.
func openStore(ctx context.Context, cfg config.Config) (repository.Store, *sql.DB, error) {
	if cfg.Database.Driver == config.DriverMemory {
		store := memstore.New()
		if err := database.SeedDefaults(ctx, store); err != nil {
			return repository.Store{}, nil, fmt.Errorf("seed defaults: %w", err)
		}
		return store, nil, nil
	}

	if err := os.MkdirAll(filepath.Dir(cfg.Database.Path), 0o755); err != nil {
		return repository.Store{}, nil, fmt.Errorf("mkdir db dir: %w", err)
	}
	if err := database.RunMigrations(cfg.Database.Path); err != nil {
		return repository.Store{}, nil, fmt.Errorf("migrate: %w", err)
	}
	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		return repository.Store{}, nil, fmt.Errorf("open db: %w", err)
	}
	store := repository.NewSQLStore(db)
	if err := database.SeedDefaults(ctx, store); err != nil {
		db.Close()
		return repository.Store{}, nil, fmt.Errorf("seed defaults: %w", err)
	}
	return store, db, nil
}
