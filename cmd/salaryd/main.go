package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	corecfg "github.com/aevon-lab/salary-crossfilter/internal/core/config"
	"github.com/aevon-lab/salary-crossfilter/internal/core/storage"
	"github.com/aevon-lab/salary-crossfilter/internal/core/storage/csvfile"
	"github.com/aevon-lab/salary-crossfilter/internal/core/storage/postgres"
	"github.com/aevon-lab/salary-crossfilter/internal/dashboard"
	"github.com/aevon-lab/salary-crossfilter/internal/migrations"
	"github.com/aevon-lab/salary-crossfilter/internal/server"
	"github.com/aevon-lab/salary-crossfilter/internal/session"
	"golang.org/x/sync/errgroup"
)

func main() {
	configPath := flag.String("config", "salaryd.yaml", "Path to configuration file")
	seedPath := flag.String("seed", "", "Import this CSV into Postgres, then exit")
	flag.Parse()

	// 0. Initialize Logger
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, nil)))

	// 1. Load Configuration
	cfg, err := corecfg.Load(*configPath)
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.Log.SlogLevel()})))
	slog.Info("Loaded config",
		"dataset_source", cfg.Dataset.Source,
		"panel_source", cfg.PanelLoading.Source,
		"panels", len(cfg.PanelLoading.Panels),
		"session_capacity", cfg.Sessions.Capacity,
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 2. One-shot seeding mode
	if *seedPath != "" {
		if err := seed(ctx, cfg, *seedPath); err != nil {
			slog.Error("Seeding failed", "error", err)
			os.Exit(1)
		}
		slog.Info("Seeding complete", "path", *seedPath)
		return
	}

	// 3. Initialize the record source
	if err := cfg.CheckDataset(); err != nil {
		slog.Error("Dataset is not readable", "error", err)
		os.Exit(1)
	}
	checks := map[string]server.HealthChecker{}
	var store storage.RecordStore
	if cfg.UsesDatabase() {
		adapter, err := openDatabase(cfg)
		if err != nil {
			slog.Error("Failed to initialize database", "error", err)
			os.Exit(1)
		}
		defer adapter.Close()
		checks["database"] = adapter
		store = adapter
	} else {
		store = csvfile.NewStore(cfg.Dataset.CSVPath)
	}

	// 4. Load the dataset once; every session indexes the same records
	sessions, err := session.Load(ctx, store, cfg.PanelLoading.Repository, cfg.Sessions.Capacity)
	if err != nil {
		slog.Error("Failed to load dataset", "error", err)
		os.Exit(1)
	}
	defer sessions.Close()

	// 5. Initialize Server
	srv := server.New(fmtAddr(cfg.Server.Host, cfg.Server.Port), cfg.Server.Mode, checks)
	dashboard.NewHandler(sessions, int64(cfg.Server.MaxBodySizeKB)<<10).RegisterRoutes(srv.Engine)

	// 6. Run the HTTP server and the signal watcher until either stops.
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return srv.Run(gctx)
	})

	g.Go(func() error {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		defer signal.Stop(quit)

		select {
		case <-quit:
			slog.Info("Signal received, shutting down...")
			cancel()
		case <-gctx.Done():
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		slog.Error("Server stopped with error", "error", err)
	}

	slog.Info("Shutdown complete")
}

// openDatabase connects, migrates and prepares the Postgres record store.
func openDatabase(cfg *corecfg.Config) (*postgres.Adapter, error) {
	adapter, err := postgres.NewAdapter(
		cfg.Database.DSN,
		cfg.Database.MaxOpenConns,
		cfg.Database.MaxIdleConns,
	)
	if err != nil {
		return nil, err
	}

	if err := migrations.RunMigrations(adapter.DB(), cfg.Database.AutoMigrate); err != nil {
		adapter.Close()
		return nil, fmt.Errorf("failed to run database migrations: %w", err)
	}

	if err := adapter.Prepare(); err != nil {
		adapter.Close()
		return nil, err
	}
	return adapter, nil
}

// seed replaces the Postgres dataset with the contents of a CSV file.
func seed(ctx context.Context, cfg *corecfg.Config, path string) error {
	if cfg.Database.DSN == "" {
		return fmt.Errorf("seeding needs database.dsn")
	}

	records, err := csvfile.NewStore(path).LoadRecords(ctx)
	if err != nil {
		return err
	}

	adapter, err := openDatabase(cfg)
	if err != nil {
		return err
	}
	defer adapter.Close()

	if err := adapter.SaveRecords(ctx, records); err != nil {
		return err
	}

	n, err := adapter.CountRecords(ctx)
	if err != nil {
		return err
	}
	slog.Info("[Postgres] Dataset seeded", "records", n)
	return nil
}

func fmtAddr(host string, port int) string {
	return fmt.Sprintf("%s:%d", host, port)
}
