package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/mvnoffline/internal/classify"
	"github.com/rios0rios0/mvnoffline/internal/copier"
	"github.com/rios0rios0/mvnoffline/internal/domain/entities"
	"github.com/rios0rios0/mvnoffline/internal/domain/repositories"
	"github.com/rios0rios0/mvnoffline/internal/infrastructure/repositories/maven"
	"github.com/rios0rios0/mvnoffline/internal/pom"
	"github.com/rios0rios0/mvnoffline/internal/report"
	"github.com/rios0rios0/mvnoffline/internal/tree"
)

// ErrCriticalArtifactsMissing signals that the offline repository still
// lacks artifacts the build cannot run without.
var ErrCriticalArtifactsMissing = errors.New("critical artifacts missing from offline repository")

// TraceOptions carries the merged flag and configuration values for a run.
type TraceOptions struct {
	ProjectDir      string
	SourceRepo      string
	TargetRepo      string
	MavenCommand    string
	Workers         int
	AnalyzeOnly     bool
	CopyMissingOnly bool
	Verify          bool
}

// Trace builds an offline repository for a project and reports what is
// still missing.
type Trace interface {
	Execute(ctx context.Context, opts TraceOptions) (*report.Report, error)
}

// TraceCommand implements Trace against pluggable build tool and store
// backends.
type TraceCommand struct {
	newBuildTool repositories.BuildToolFactory
	newSource    repositories.SourceStoreFactory
	newTarget    repositories.TargetStoreFactory
}

// NewTraceCommand creates the command with its backend factories.
func NewTraceCommand(
	newBuildTool repositories.BuildToolFactory,
	newSource repositories.SourceStoreFactory,
	newTarget repositories.TargetStoreFactory,
) *TraceCommand {
	return &TraceCommand{
		newBuildTool: newBuildTool,
		newSource:    newSource,
		newTarget:    newTarget,
	}
}

// Execute runs the full pipeline: dependency tree, effective model, copy,
// classification, offline settings and optional build verification. The
// returned report is non-nil whenever the tree was parsed, even when the
// error is ErrCriticalArtifactsMissing.
func (it *TraceCommand) Execute(
	ctx context.Context, opts TraceOptions,
) (*report.Report, error) {
	projectDir, err := filepath.Abs(opts.ProjectDir)
	if err != nil {
		return nil, fmt.Errorf("invalid project directory: %w", err)
	}
	if _, statErr := os.Stat(filepath.Join(projectDir, "pom.xml")); statErr != nil {
		return nil, fmt.Errorf("no pom.xml in %s: %w", projectDir, statErr)
	}

	buildTool := it.newBuildTool(opts.MavenCommand)
	if probeErr := buildTool.Probe(ctx); probeErr != nil {
		return nil, fmt.Errorf("build tool unavailable: %w", probeErr)
	}

	logger.Infof("resolving dependency tree for %s", projectDir)
	treeText, err := buildTool.DependencyTree(ctx, projectDir)
	if err != nil {
		return nil, fmt.Errorf("dependency tree failed: %w", err)
	}

	graph := tree.Parse(treeText)
	if graph.Len() == 0 {
		return nil, errors.New("dependency tree produced no coordinates")
	}
	logger.Infof("parsed %d coordinates (%d omitted occurrences, %d warnings)",
		graph.Len(), graph.OmittedCount(), len(graph.Warnings()))

	managed := it.extractManaged(ctx, buildTool, projectDir)
	graph.AnnotateManaged(managed)

	source := it.newSource(opts.SourceRepo)
	target := it.newTarget(opts.TargetRepo)

	summary, err := it.copyPhase(ctx, graph, source, target, projectDir, opts)
	if err != nil {
		return nil, err
	}

	var classifications []entities.Classification
	if summary != nil {
		classifications = classify.Classify(summary.Failures(), graph, managed)
		it.suggestVersions(classifications, source)
	}

	settingsPath, err := maven.WriteOfflineSettings(opts.TargetRepo)
	if err != nil {
		return nil, err
	}

	var verification *report.Verification
	if opts.Verify && !opts.AnalyzeOnly {
		verification = it.verify(ctx, buildTool, projectDir, settingsPath)
	}

	result := report.Build(
		projectDir, opts.SourceRepo, opts.TargetRepo, settingsPath,
		graph, summary, classifications, verification,
	)

	if path, writeErr := result.WriteJSON(projectDir); writeErr != nil {
		logger.Warnf("could not persist report: %v", writeErr)
	} else {
		logger.Infof("report written to %s", path)
	}
	if path, scriptErr := result.WriteFetchScript(projectDir); scriptErr != nil {
		logger.Warnf("could not write fetch script: %v", scriptErr)
	} else if path != "" {
		logger.Infof("fetch script written to %s", path)
	}

	if missing := result.CriticalMissing(); len(missing) > 0 {
		return result, fmt.Errorf("%w: %d artifact(s)", ErrCriticalArtifactsMissing, len(missing))
	}
	return result, nil
}

// extractManaged reads the effective model for managed versions and plugins.
// It is best effort: a failure degrades classification but not the run.
func (it *TraceCommand) extractManaged(
	ctx context.Context, buildTool repositories.BuildToolRepository, projectDir string,
) entities.ManagedSet {
	data, err := buildTool.EffectiveModel(ctx, projectDir)
	if err != nil {
		logger.Warnf("effective model unavailable, classification will be degraded: %v", err)
		return entities.ManagedSet{}
	}

	managed, err := pom.Extract(data)
	if err != nil {
		logger.Warnf("effective model unreadable: %v", err)
		return entities.ManagedSet{}
	}
	logger.Debugf("effective model declares %d managed modules", len(managed))
	return managed
}

func (it *TraceCommand) copyPhase(
	ctx context.Context,
	graph *entities.DependencyGraph,
	source repositories.SourceStore,
	target repositories.TargetStore,
	projectDir string,
	opts TraceOptions,
) (*entities.CopySummary, error) {
	if opts.AnalyzeOnly {
		logger.Info("analysis only, skipping artifact copy")
		return nil, nil
	}

	copyOpts := copier.Options{Workers: opts.Workers}
	if opts.CopyMissingOnly {
		only, err := report.LoadPreviousFailures(projectDir)
		if err != nil {
			return nil, fmt.Errorf("cannot retry missing artifacts: %w", err)
		}
		logger.Infof("retrying %d previously failed artifact(s)", len(only))
		copyOpts.Only = only
	}

	summary, err := copier.Run(ctx, graph, source, target, copyOpts)
	if err != nil {
		return nil, fmt.Errorf("copy interrupted: %w", err)
	}
	logger.Infof("copied %d of %d coordinates (%d files)",
		summary.Copied, len(summary.Results), summary.FilesCopied)
	return summary, nil
}

// suggestVersions annotates critical failures with versions that do exist in
// the source repository.
func (it *TraceCommand) suggestVersions(
	classifications []entities.Classification, source repositories.SourceStore,
) {
	for i := range classifications {
		if !classifications[i].Category.Critical() {
			continue
		}
		coord := classifications[i].Coordinate
		classifications[i].SimilarVersions = source.SimilarVersions(coord.GroupID, coord.ArtifactID)
	}
}

func (it *TraceCommand) verify(
	ctx context.Context, buildTool repositories.BuildToolRepository,
	projectDir, settingsPath string,
) *report.Verification {
	verification := &report.Verification{Ran: true}

	logger.Info("verifying offline compile")
	compileResult := buildTool.Compile(ctx, projectDir, settingsPath)
	verification.CompilePassed = compileResult.Passed
	verification.MissingMentioned = maven.ExtractMissingArtifacts(compileResult.Output)

	if compileResult.Passed {
		logger.Info("verifying offline package")
		packageResult := buildTool.Package(ctx, projectDir, settingsPath)
		verification.PackagePassed = packageResult.Passed
		verification.MissingMentioned = append(
			verification.MissingMentioned,
			maven.ExtractMissingArtifacts(packageResult.Output)...,
		)
	}
	return verification
}
