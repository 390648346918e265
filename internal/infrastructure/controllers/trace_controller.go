package controllers

import (
	"context"
	"fmt"
	"os"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/mvnoffline/internal/domain/commands"
	"github.com/rios0rios0/mvnoffline/internal/domain/entities"
	"github.com/rios0rios0/mvnoffline/internal/report"
)

// TraceController handles the trace subcommand.
type TraceController struct {
	command commands.Trace
}

// NewTraceController creates a new TraceController.
func NewTraceController(command commands.Trace) *TraceController {
	return &TraceController{command: command}
}

// GetBind returns the Cobra command metadata for the trace controller.
func (it *TraceController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "trace [project-dir]",
		Short: "Build an offline repository for a project",
		Long: `Resolve a project's full dependency tree, copy every required artifact
from a source repository into a target repository, and report what is still
missing and how much each gap matters for an offline build.`,
	}
}

// AddFlags registers the trace-specific flags.
func (it *TraceController) AddFlags(cmd *cobra.Command) {
	cmd.Flags().String("source-repo", "", "Repository to copy artifacts from")
	cmd.Flags().String("target-repo", "", "Repository to copy artifacts into")
	cmd.Flags().String("maven-command", "", "Build tool executable (default: auto-detect)")
	cmd.Flags().IntP("workers", "w", 0, "Concurrent copy workers")
	cmd.Flags().Bool("analyze-only", false, "Parse and classify without copying artifacts")
	cmd.Flags().Bool("copy-missing-only", false,
		"Only retry artifacts that failed in the previous run")
	cmd.Flags().Bool("verify", false, "Run an offline compile and package after copying")
}

// Execute runs the trace pipeline.
func (it *TraceController) Execute(cmd *cobra.Command, args []string) error {
	settings := loadSettings(cmd)
	applyVerbosity(cmd)

	projectDir := "."
	if len(args) > 0 {
		projectDir = args[0]
	}

	opts := it.buildOptions(cmd, projectDir, settings)
	if opts.SourceRepo == "" || opts.TargetRepo == "" {
		return fmt.Errorf("source and target repositories are required " +
			"(--source-repo/--target-repo or the configuration file)")
	}

	result, err := it.command.Execute(context.Background(), opts)
	if result != nil {
		fmt.Fprint(cmd.OutOrStdout(), report.Render(result, report.DefaultStyles()))
	}
	return err
}

func (it *TraceController) buildOptions(
	cmd *cobra.Command, projectDir string, settings *entities.Settings,
) commands.TraceOptions {
	opts := commands.TraceOptions{
		ProjectDir:   projectDir,
		SourceRepo:   settings.SourceRepo,
		TargetRepo:   settings.TargetRepo,
		MavenCommand: settings.Maven.Command,
		Workers:      settings.Workers,
		Verify:       settings.Verify,
	}

	if value, _ := cmd.Flags().GetString("source-repo"); value != "" {
		opts.SourceRepo = value
	}
	if value, _ := cmd.Flags().GetString("target-repo"); value != "" {
		opts.TargetRepo = value
	}
	if value, _ := cmd.Flags().GetString("maven-command"); value != "" {
		opts.MavenCommand = value
	}
	if value, _ := cmd.Flags().GetInt("workers"); value > 0 {
		opts.Workers = value
	}
	opts.AnalyzeOnly, _ = cmd.Flags().GetBool("analyze-only")
	opts.CopyMissingOnly, _ = cmd.Flags().GetBool("copy-missing-only")
	if cmd.Flags().Changed("verify") {
		opts.Verify, _ = cmd.Flags().GetBool("verify")
	}
	return opts
}

// loadSettings reads the configuration file when one exists, falling back to
// defaults so the CLI stays usable with flags alone.
func loadSettings(cmd *cobra.Command) *entities.Settings {
	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		found, err := entities.FindConfigFile()
		if err != nil {
			return entities.DefaultSettings()
		}
		path = found
	}

	settings, err := entities.NewSettings(path)
	if err != nil {
		logger.Warnf("ignoring configuration file %s: %v", path, err)
		return entities.DefaultSettings()
	}
	logger.Debugf("loaded configuration from %s", path)
	return settings
}

func applyVerbosity(cmd *cobra.Command) {
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose || os.Getenv("DEBUG") == "true" {
		logger.SetLevel(logger.DebugLevel)
	}
}
