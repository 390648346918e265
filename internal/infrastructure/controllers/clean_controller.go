package controllers

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/rios0rios0/mvnoffline/internal/domain/commands"
	"github.com/rios0rios0/mvnoffline/internal/domain/entities"
)

// CleanController handles the clean subcommand.
type CleanController struct {
	command commands.Clean
}

// NewCleanController creates a new CleanController.
func NewCleanController(command commands.Clean) *CleanController {
	return &CleanController{command: command}
}

// GetBind returns the Cobra command metadata for the clean controller.
func (it *CleanController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "clean <repo-dir>",
		Short: "Remove resolver cache state from a repository",
		Long: `Delete resolver bookkeeping (_remote.repositories, *.lastUpdated,
resolver-status.properties, .cache directories) from a repository so offline
builds do not re-attempt remote resolution against stale records.`,
	}
}

// AddFlags registers the clean-specific flags.
func (it *CleanController) AddFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("dry-run", false, "Report what would be removed without deleting")
	cmd.Flags().IntP("workers", "w", 0, "Concurrent removal workers")
	cmd.Flags().Bool("keep-empty-dirs", false, "Do not prune directories left empty")
}

// Execute runs the repository cleanup.
func (it *CleanController) Execute(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return errors.New("a repository directory is required")
	}

	settings := loadSettings(cmd)
	applyVerbosity(cmd)

	opts := commands.CleanOptions{
		RepoDir:         args[0],
		Workers:         settings.Workers,
		RemoveEmptyDirs: settings.Clean.RemoveEmptyDirs,
	}
	if value, _ := cmd.Flags().GetInt("workers"); value > 0 {
		opts.Workers = value
	}
	opts.DryRun, _ = cmd.Flags().GetBool("dry-run")
	if keep, _ := cmd.Flags().GetBool("keep-empty-dirs"); keep {
		opts.RemoveEmptyDirs = false
	}

	_, err := it.command.Execute(context.Background(), opts)
	return err
}
