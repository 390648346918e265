//go:build unit

package commands_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/mvnoffline/internal/domain/commands"
	"github.com/rios0rios0/mvnoffline/internal/domain/entities"
	"github.com/rios0rios0/mvnoffline/internal/domain/repositories"
	"github.com/rios0rios0/mvnoffline/internal/report"
	"github.com/rios0rios0/mvnoffline/test/infrastructure/repositorydoubles"
)

const traceTreeText = `com.example:app:jar:1.0.0
+- com.example:web:jar:1.0:compile
|  \- com.example:core:jar:2.0:compile
\- junit:junit:jar:4.13.2:test
`

func newProjectDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "pom.xml"), []byte("<project/>"), 0o644))
	return dir
}

func candidatesFor(artifactID, version string) []repositories.Candidate {
	base := artifactID + "-" + version
	return []repositories.Candidate{
		{Name: base + ".jar", Path: "/src/" + base + ".jar", Kind: repositories.CandidateArtifact},
		{Name: base + ".pom", Path: "/src/" + base + ".pom", Kind: repositories.CandidateDescriptor},
	}
}

func newFullSource() *repositorydoubles.SpySourceStore {
	return &repositorydoubles.SpySourceStore{
		Candidates: map[string][]repositories.Candidate{
			"com.example:web:jar:1.0":  candidatesFor("web", "1.0"),
			"com.example:core:jar:2.0": candidatesFor("core", "2.0"),
			"junit:junit:jar:4.13.2":   candidatesFor("junit", "4.13.2"),
		},
	}
}

func newCommand(
	buildTool *repositorydoubles.SpyBuildToolRepository,
	source *repositorydoubles.SpySourceStore,
	target *repositorydoubles.SpyTargetStore,
) *commands.TraceCommand {
	return commands.NewTraceCommand(
		func(string) repositories.BuildToolRepository { return buildTool },
		func(string) repositories.SourceStore { return source },
		func(string) repositories.TargetStore { return target },
	)
}

func TestTraceCommand(t *testing.T) {
	t.Parallel()

	t.Run("should trace, copy and report a complete run", func(t *testing.T) {
		t.Parallel()

		// given
		projectDir := newProjectDir(t)
		buildTool := &repositorydoubles.SpyBuildToolRepository{TreeText: traceTreeText}
		command := newCommand(buildTool, newFullSource(), &repositorydoubles.SpyTargetStore{})

		// when
		result, err := command.Execute(context.Background(), commands.TraceOptions{
			ProjectDir: projectDir,
			SourceRepo: "/src",
			TargetRepo: t.TempDir(),
			Workers:    2,
		})

		// then
		require.NoError(t, err)
		require.NotNil(t, result)
		assert.Equal(t, 3, result.Stats.Copied)
		assert.Equal(t, 0, result.Stats.Failed)
		assert.FileExists(t, filepath.Join(projectDir, report.FileName))
		assert.NoFileExists(t, filepath.Join(projectDir, report.FetchScriptName))
	})

	t.Run("should classify failures and signal critical gaps", func(t *testing.T) {
		t.Parallel()

		// given
		projectDir := newProjectDir(t)
		buildTool := &repositorydoubles.SpyBuildToolRepository{TreeText: traceTreeText}
		source := newFullSource()
		delete(source.Candidates, "com.example:core:jar:2.0")
		source.Similar = map[string][]string{"com.example:core": {"2.1", "1.9"}}
		command := newCommand(buildTool, source, &repositorydoubles.SpyTargetStore{})

		// when
		result, err := command.Execute(context.Background(), commands.TraceOptions{
			ProjectDir: projectDir,
			SourceRepo: "/src",
			TargetRepo: t.TempDir(),
			Workers:    1,
		})

		// then
		require.ErrorIs(t, err, commands.ErrCriticalArtifactsMissing)
		require.NotNil(t, result)
		require.Len(t, result.Classifications, 1)
		classification := result.Classifications[0]
		assert.Equal(t, entities.CategoryEssential, classification.Category)
		assert.Equal(t, []string{"2.1", "1.9"}, classification.SimilarVersions)
		assert.FileExists(t, filepath.Join(projectDir, report.FetchScriptName))
	})

	t.Run("should skip copying in analyze-only mode", func(t *testing.T) {
		t.Parallel()

		// given
		projectDir := newProjectDir(t)
		buildTool := &repositorydoubles.SpyBuildToolRepository{TreeText: traceTreeText}
		source := newFullSource()
		target := &repositorydoubles.SpyTargetStore{}
		command := newCommand(buildTool, source, target)

		// when
		result, err := command.Execute(context.Background(), commands.TraceOptions{
			ProjectDir:  projectDir,
			SourceRepo:  "/src",
			TargetRepo:  t.TempDir(),
			AnalyzeOnly: true,
		})

		// then
		require.NoError(t, err)
		assert.Equal(t, 0, result.Stats.Eligible)
		assert.Empty(t, target.Writes)
		assert.Empty(t, source.LocatedKeys)
	})

	t.Run("should retry only the previously failed coordinates", func(t *testing.T) {
		t.Parallel()

		// given
		projectDir := newProjectDir(t)
		previous := &report.Report{Failures: []entities.CopyResult{{
			Coordinate: entities.Coordinate{
				GroupID: "com.example", ArtifactID: "core", Packaging: "jar", Version: "2.0",
			},
		}}}
		_, err := previous.WriteJSON(projectDir)
		require.NoError(t, err)

		buildTool := &repositorydoubles.SpyBuildToolRepository{TreeText: traceTreeText}
		source := newFullSource()
		command := newCommand(buildTool, source, &repositorydoubles.SpyTargetStore{})

		// when
		result, execErr := command.Execute(context.Background(), commands.TraceOptions{
			ProjectDir:      projectDir,
			SourceRepo:      "/src",
			TargetRepo:      t.TempDir(),
			CopyMissingOnly: true,
			Workers:         1,
		})

		// then
		require.NoError(t, execErr)
		assert.Equal(t, 1, result.Stats.Eligible)
		assert.Equal(t, []string{"com.example:core:jar:2.0"}, source.LocatedKeys)
	})

	t.Run("should fail fast without a pom.xml", func(t *testing.T) {
		t.Parallel()

		// given
		command := newCommand(&repositorydoubles.SpyBuildToolRepository{},
			newFullSource(), &repositorydoubles.SpyTargetStore{})

		// when
		_, err := command.Execute(context.Background(), commands.TraceOptions{
			ProjectDir: t.TempDir(),
			SourceRepo: "/src",
			TargetRepo: t.TempDir(),
		})

		// then
		require.Error(t, err)
		assert.Contains(t, err.Error(), "pom.xml")
	})

	t.Run("should fail fast when the build tool is unavailable", func(t *testing.T) {
		t.Parallel()

		// given
		buildTool := &repositorydoubles.SpyBuildToolRepository{
			ProbeErr: errors.New("mvn not found"),
		}
		command := newCommand(buildTool, newFullSource(), &repositorydoubles.SpyTargetStore{})

		// when
		_, err := command.Execute(context.Background(), commands.TraceOptions{
			ProjectDir: newProjectDir(t),
			SourceRepo: "/src",
			TargetRepo: t.TempDir(),
		})

		// then
		require.Error(t, err)
		assert.Contains(t, err.Error(), "build tool unavailable")
	})

	t.Run("should reject an empty dependency tree", func(t *testing.T) {
		t.Parallel()

		// given
		buildTool := &repositorydoubles.SpyBuildToolRepository{
			TreeText: "[INFO] BUILD SUCCESS\n",
		}
		command := newCommand(buildTool, newFullSource(), &repositorydoubles.SpyTargetStore{})

		// when
		_, err := command.Execute(context.Background(), commands.TraceOptions{
			ProjectDir: newProjectDir(t),
			SourceRepo: "/src",
			TargetRepo: t.TempDir(),
		})

		// then
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no coordinates")
	})

	t.Run("should degrade gracefully when the effective model fails", func(t *testing.T) {
		t.Parallel()

		// given
		buildTool := &repositorydoubles.SpyBuildToolRepository{
			TreeText: traceTreeText,
			ModelErr: errors.New("help:effective-pom exploded"),
		}
		command := newCommand(buildTool, newFullSource(), &repositorydoubles.SpyTargetStore{})

		// when
		result, err := command.Execute(context.Background(), commands.TraceOptions{
			ProjectDir: newProjectDir(t),
			SourceRepo: "/src",
			TargetRepo: t.TempDir(),
			Workers:    1,
		})

		// then
		require.NoError(t, err)
		assert.Equal(t, 3, result.Stats.Copied)
	})

	t.Run("should run compile and package verification", func(t *testing.T) {
		t.Parallel()

		// given
		buildTool := &repositorydoubles.SpyBuildToolRepository{
			TreeText:      traceTreeText,
			CompileResult: repositories.BuildToolResult{Passed: true},
			PackageResult: repositories.BuildToolResult{
				Passed: false,
				Output: "Could not find artifact com.example:core:jar:2.0",
			},
		}
		command := newCommand(buildTool, newFullSource(), &repositorydoubles.SpyTargetStore{})

		// when
		result, err := command.Execute(context.Background(), commands.TraceOptions{
			ProjectDir: newProjectDir(t),
			SourceRepo: "/src",
			TargetRepo: t.TempDir(),
			Workers:    1,
			Verify:     true,
		})

		// then
		require.NoError(t, err)
		require.NotNil(t, result.Verification)
		assert.True(t, result.Verification.Ran)
		assert.True(t, result.Verification.CompilePassed)
		assert.False(t, result.Verification.PackagePassed)
		assert.Equal(t, []string{"com.example:core:jar:2.0"}, result.Verification.MissingMentioned)
		require.Len(t, buildTool.CompileSettings, 1)
		assert.Contains(t, buildTool.CompileSettings[0], "settings.xml")
	})
}
