package commands

import (
	"context"
	"fmt"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/mvnoffline/internal/domain/repositories"
)

// CleanOptions carries the merged flag and configuration values for a
// repository cleanup.
type CleanOptions struct {
	RepoDir         string
	Workers         int
	DryRun          bool
	RemoveEmptyDirs bool
}

// Clean strips resolver cache state out of a repository so offline builds do
// not trip over stale resolution records.
type Clean interface {
	Execute(ctx context.Context, opts CleanOptions) (*repositories.CleanReport, error)
}

// CleanCommand implements Clean on top of a CacheCleaner backend.
type CleanCommand struct {
	cleaner repositories.CacheCleaner
}

// NewCleanCommand creates the command with its backend.
func NewCleanCommand(cleaner repositories.CacheCleaner) *CleanCommand {
	return &CleanCommand{cleaner: cleaner}
}

// Execute runs the cleanup and logs its outcome.
func (it *CleanCommand) Execute(
	ctx context.Context, opts CleanOptions,
) (*repositories.CleanReport, error) {
	cleanReport, err := it.cleaner.Clean(ctx, opts.RepoDir, repositories.CleanOptions{
		DryRun:          opts.DryRun,
		Workers:         opts.Workers,
		RemoveEmptyDirs: opts.RemoveEmptyDirs,
	})
	if err != nil {
		return nil, fmt.Errorf("cache cleanup failed: %w", err)
	}

	verb := "removed"
	if opts.DryRun {
		verb = "would remove"
	}
	logger.Infof("[clean] %s %d stale file(s), %d cache dir(s), %d empty dir(s)",
		verb, cleanReport.FilesRemoved, cleanReport.CacheDirsRemoved, cleanReport.EmptyDirsRemoved)
	for _, failure := range cleanReport.Errors {
		logger.Warnf("[clean] %s", failure)
	}
	return cleanReport, nil
}
