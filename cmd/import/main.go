// Package main is the bulk importer for numbered quote archive files.
// Each line of the input is "N. quote text"; parsed quotes are created
// directly in APPROVED state against the configured store backend.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/mortalnow/dan-s-bullshit/internal/adapters/storage"
	"github.com/mortalnow/dan-s-bullshit/internal/app"
	"github.com/mortalnow/dan-s-bullshit/internal/platform/config"
	"github.com/mortalnow/dan-s-bullshit/internal/platform/logging"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		file    string
		source  string
		workers int
		dryRun  bool
	)

	flag.StringVar(&file, "file", "", "path to the numbered quote file (required)")
	flag.StringVar(&source, "source", "", "provenance tag for imported quotes (default: input file name)")
	flag.IntVar(&workers, "workers", app.DefaultImportWorkers, "concurrent create workers")
	flag.BoolVar(&dryRun, "dry-run", false, "parse the file and report without writing")
	flag.Parse()

	if file == "" {
		flag.Usage()
		return fmt.Errorf("-file is required")
	}

	if source == "" {
		source = filepath.Base(file)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	f, err := os.Open(file)
	if err != nil {
		return fmt.Errorf("opening import file: %w", err)
	}
	defer f.Close()

	records, err := app.ParseRecords(f)
	if err != nil {
		return err
	}

	if len(records) == 0 {
		return fmt.Errorf("no quote records found in %s", file)
	}

	if dryRun {
		fmt.Printf("parsed %d quote records from %s (dry run, nothing written)\n", len(records), file)
		return nil
	}

	profile := os.Getenv("APP_ENVIRONMENT")
	if profile == "" {
		profile = "local"
	}

	cfg, err := config.Load(profile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	logger := logging.New(&logging.Config{
		Level:   cfg.Log.Level,
		Format:  cfg.Log.Format,
		Service: cfg.App.Name + "-import",
		Version: cfg.App.Version,
	})
	slog.SetDefault(logger)

	store, closeStore, err := storage.New(cfg, logger)
	if err != nil {
		return fmt.Errorf("opening quote store: %w", err)
	}

	defer func() {
		if closeErr := closeStore(); closeErr != nil {
			logger.Error("store close error", slog.Any("error", closeErr))
		}
	}()

	importer := app.NewImportService(app.ImportServiceConfig{
		Store:  store,
		Logger: logger,
	})

	report, err := importer.Import(ctx, records, source, workers)
	if err != nil {
		return err
	}

	fmt.Printf("imported %d, skipped %d duplicates, %d failed (of %d records)\n",
		report.Imported, report.Skipped, report.Failed, len(records))

	if report.Failed > 0 {
		return fmt.Errorf("%d records failed to import", report.Failed)
	}

	return nil
}
