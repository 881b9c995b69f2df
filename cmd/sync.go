package cmd

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"catalog-sync/core/config"
	"catalog-sync/core/logger"
	"catalog-sync/core/source"
	"catalog-sync/core/syncer"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Flags for the sync command
	syncLimit  int
	syncDelete bool
)

// syncCmd runs a synchronization pass from the command line.
var syncCmd = &cobra.Command{
	Use:   "sync [kind]",
	Short: "Synchronize the catalog with the target platform",
	Long: `Synchronize source entities with the target platform.

Without arguments, every kind is synced in dependency order. With a kind
argument (file, object, page, collection, redirect, price), only that
kind is synced; its dependencies are assumed to be in place.

Examples:
  # Full sync
  catalog-sync sync

  # Sync only files, capped at 100 entities
  catalog-sync sync file --limit 100

  # Retract everything previously synced for redirects
  catalog-sync sync redirect --delete`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSync,
}

func init() {
	syncCmd.Flags().IntVar(&syncLimit, "limit", 0, "Max entities per kind (0 = unlimited)")
	syncCmd.Flags().BoolVar(&syncDelete, "delete", false, "Delete target records instead of syncing")

	RootCmd.AddCommand(syncCmd)
}

func runSync(cmd *cobra.Command, args []string) error {
	// Stop cleanly between entities on Ctrl-C.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer l.Sync()

	engine, err := buildEngine(cfg, l)
	if err != nil {
		return err
	}

	opts := syncer.Options{Limit: syncLimit, DeleteMode: syncDelete}

	var summary *syncer.RunSummary
	if len(args) == 1 {
		kind := source.Kind(args[0])
		if !kind.Valid() {
			return fmt.Errorf("unknown kind %q", args[0])
		}
		l.Info("Starting sync", zap.String("kind", args[0]))
		summary, err = engine.SyncKind(ctx, kind, opts)
	} else {
		l.Info("Starting full sync")
		summary, err = engine.SyncAll(ctx, opts)
	}
	if err != nil {
		return err
	}

	printRunSummary(l, summary)
	return nil
}

// printRunSummary prints a formatted run report using the logger.
func printRunSummary(l *zap.Logger, run *syncer.RunSummary) {
	for _, k := range run.Kinds {
		fields := []zap.Field{
			zap.String("kind", k.Kind),
			zap.Int("created", k.Created),
			zap.Int("updated", k.Updated),
			zap.Int("skipped_unchanged", k.SkippedUnchanged),
			zap.Int("skipped_missing_reference", k.SkippedMissingReference),
			zap.Int("failed", k.Failed),
			zap.Int("deleted", k.Deleted),
			zap.Int("stale_mappings_removed", k.StaleMappingsRemoved),
			zap.String("duration", k.Duration),
		}
		if k.FetchError != "" {
			fields = append(fields, zap.String("fetch_error", k.FetchError))
		}
		l.Info("Kind summary", fields...)

		for _, sample := range k.Errors {
			l.Warn("Entity error", zap.String("kind", k.Kind), zap.String("error", sample))
		}
	}

	l.Info("Sync run complete",
		zap.String("run_id", run.RunID),
		zap.String("execution_time", run.ExecutionTime),
	)
}
