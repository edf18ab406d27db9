package commands

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/allisson/receiptvault/internal/app"
	"github.com/allisson/receiptvault/internal/config"
)

// RunReconcile runs one orphaned-state sweep over the object store and logs
// the resulting report. Intended to run periodically (cron or a scheduled
// job), it removes metadata and policy records whose blob is gone and
// reports stored blobs that no record references.
func RunReconcile(ctx context.Context) error {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	container := app.NewContainer(cfg)
	logger := container.Logger()
	defer closeContainer(container, logger)

	reconciler, err := container.Reconciler(ctx)
	if err != nil {
		return fmt.Errorf("failed to build reconciler: %w", err)
	}

	report, err := reconciler.Sweep(ctx)
	if err != nil {
		return fmt.Errorf("reconciliation sweep failed: %w", err)
	}

	logger.Info("reconciliation sweep completed",
		slog.Int("scanned_paths", report.ScannedPaths),
		slog.Int("orphaned_metadata", report.OrphanedMetadata),
		slog.Int("orphaned_policies", report.OrphanedPolicies),
		slog.Int("unindexed_blobs", report.UnindexedBlobs),
	)
	return nil
}
