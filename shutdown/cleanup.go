package shutdown

import (
	"context"
	"os"
	"path/filepath"

	"status_backend/core"

	"go.uber.org/zap"
)

// FinalRetentionSweep returns a shutdown function that runs one last
// data-retention pass before the database closes. The sweep function
// reports how many records it removed.
//
// Priority recommendation: 25-29 (after the writers stop, before the
// database closes)
//
// The returned function never fails the shutdown sequence: sweep errors
// are logged and swallowed, since a skipped sweep just runs again on the
// next scheduled cleanup.
//
// Usage:
//
//	manager.Register("retention-sweep", 28, shutdown.FinalRetentionSweep(logger, func(ctx context.Context) (int64, error) {
//	    result, err := database.CleanupWithContext(ctx, retentionDays)
//	    return result.TotalDeleted, err
//	}))
func FinalRetentionSweep(logger *zap.Logger, sweep func(ctx context.Context) (int64, error)) core.ShutdownFunc {
	return func(ctx context.Context) error {
		logger.Debug("Running final retention sweep")

		removed, err := sweep(ctx)
		if err != nil {
			logger.Warn("Final retention sweep failed, will retry on next run",
				zap.Error(err),
			)
			return nil
		}

		logger.Info("Final retention sweep complete",
			zap.Int64("records_removed", removed),
		)
		return nil
	}
}

// CleanupTempFiles returns a shutdown function that removes scratch files
// matching "temp_*" in the given directory.
//
// Priority recommendation: 40+ (final cleanup, after services stopped)
//
// The cleanup function:
//   - Removes files matching "temp_*" in the directory
//   - Logs each file removal (success or failure)
//   - Continues cleanup even if individual file removals fail
//   - Returns nil to avoid blocking shutdown (errors are logged)
//
// Usage:
//
//	manager.Register("cleanup-temp", 45, shutdown.CleanupTempFiles(logger, core.GetDataDirectory()))
func CleanupTempFiles(logger *zap.Logger, dir string) core.ShutdownFunc {
	return func(ctx context.Context) error {
		return cleanupTempFiles(ctx, logger, dir)
	}
}

// cleanupTempFiles removes files matching "temp_*" in the directory.
// It returns nil even if some files fail to delete (errors are logged).
func cleanupTempFiles(ctx context.Context, logger *zap.Logger, dir string) error {
	logger.Debug("Starting temp file cleanup",
		zap.String("directory", dir),
	)

	pattern := filepath.Join(dir, "temp_*")
	matches, err := filepath.Glob(pattern)
	if err != nil {
		logger.Error("Failed to list temporary files",
			zap.String("pattern", pattern),
			zap.Error(err),
		)
		// Return nil to not block shutdown
		return nil
	}

	if len(matches) == 0 {
		logger.Debug("No temporary files to clean up")
		return nil
	}

	logger.Info("Cleaning up temporary files",
		zap.Int("file_count", len(matches)),
	)

	var removedCount int
	var failedCount int

	for _, match := range matches {
		// Check context between file deletions
		select {
		case <-ctx.Done():
			logger.Warn("Shutdown context cancelled during cleanup",
				zap.Int("removed", removedCount),
				zap.Int("remaining", len(matches)-removedCount-failedCount),
			)
			return nil
		default:
		}

		if err := os.Remove(match); err != nil {
			failedCount++
			logger.Warn("Failed to remove temporary file",
				zap.String("file", filepath.Base(match)),
				zap.Error(err),
			)
		} else {
			removedCount++
			logger.Debug("Removed temporary file",
				zap.String("file", filepath.Base(match)),
			)
		}
	}

	logger.Info("Temp file cleanup complete",
		zap.Int("removed", removedCount),
		zap.Int("failed", failedCount),
	)

	return nil
}
