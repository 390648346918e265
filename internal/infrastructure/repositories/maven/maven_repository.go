// Package maven adapts the external Maven process behind the domain's
// BuildToolRepository interface. Everything here is thin I/O: commands are
// spawned, their text captured, and nothing is interpreted beyond exit
// status.
package maven

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"time"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/mvnoffline/internal/domain/repositories"
)

const commandTimeout = 5 * time.Minute

// Repository invokes the Maven executable.
type Repository struct {
	command string
}

// NewRepository creates a Maven adapter. An empty command means the platform
// candidates are probed on the first Probe call.
func NewRepository(command string) repositories.BuildToolRepository {
	return &Repository{command: command}
}

// Probe locates a working Maven executable. Failure here is terminal for the
// whole analysis.
func (it *Repository) Probe(ctx context.Context) error {
	candidates := []string{it.command}
	if it.command == "" {
		if runtime.GOOS == "windows" {
			candidates = []string{"mvn.cmd", "mvn.bat", "mvn"}
		} else {
			candidates = []string{"mvn"}
		}
	}

	for _, cand := range candidates {
		if cand == "" {
			continue
		}
		probeCtx, cancel := context.WithTimeout(ctx, 10*time.Second) //nolint:mnd // short probe
		err := exec.CommandContext(probeCtx, cand, "-version").Run()
		cancel()
		if err == nil {
			logger.Debugf("[maven] Using command %q", cand)
			it.command = cand
			return nil
		}
	}

	return fmt.Errorf("no working maven executable found (tried %v)", candidates)
}

// DependencyTree runs dependency:tree in verbose mode, falling back to the
// plain tree when verbose output fails.
func (it *Repository) DependencyTree(ctx context.Context, projectDir string) (string, error) {
	out, err := it.run(ctx, projectDir,
		"dependency:tree", "-Dverbose=true", "-DoutputType=text", "-B")
	if err == nil {
		return out, nil
	}

	logger.Warnf("[maven] Verbose dependency tree failed (%v), retrying without verbose", err)
	out, err = it.run(ctx, projectDir, "dependency:tree", "-DoutputType=text", "-B")
	if err != nil {
		return "", fmt.Errorf("dependency:tree failed: %w", err)
	}
	return out, nil
}

// EffectiveModel runs help:effective-pom into a temporary file and returns
// its contents.
func (it *Repository) EffectiveModel(ctx context.Context, projectDir string) ([]byte, error) {
	tmp, err := os.CreateTemp("", "effective-pom-*.xml")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	_ = tmp.Close()
	defer os.Remove(tmpPath)

	if _, runErr := it.run(ctx, projectDir,
		"help:effective-pom", "-Doutput="+tmpPath, "-B"); runErr != nil {
		return nil, fmt.Errorf("help:effective-pom failed: %w", runErr)
	}

	data, readErr := os.ReadFile(tmpPath)
	if readErr != nil {
		return nil, fmt.Errorf("failed to read effective model: %w", readErr)
	}
	return data, nil
}

// Compile attempts a compile against the generated offline settings.
func (it *Repository) Compile(ctx context.Context, projectDir, settingsPath string) repositories.BuildToolResult {
	return it.verify(ctx, projectDir, settingsPath, "compile")
}

// Package attempts a package with tests skipped.
func (it *Repository) Package(ctx context.Context, projectDir, settingsPath string) repositories.BuildToolResult {
	return it.verify(ctx, projectDir, settingsPath, "package", "-DskipTests")
}

func (it *Repository) verify(
	ctx context.Context,
	projectDir, settingsPath string,
	args ...string,
) repositories.BuildToolResult {
	full := args
	if settingsPath != "" {
		full = append(full, "-s", settingsPath, "--offline")
	}
	full = append(full, "-q", "-B")

	out, err := it.run(ctx, projectDir, full...)
	return repositories.BuildToolResult{Passed: err == nil, Output: out}
}

// run executes the Maven command in the project directory, capturing
// combined output.
func (it *Repository) run(ctx context.Context, projectDir string, args ...string) (string, error) {
	if it.command == "" {
		if err := it.Probe(ctx); err != nil {
			return "", err
		}
	}

	runCtx, cancel := context.WithTimeout(ctx, commandTimeout)
	defer cancel()

	cmd := exec.CommandContext(runCtx, it.command, args...)
	cmd.Dir = filepath.Clean(projectDir)

	logger.Debugf("[maven] Running %s %v in %s", it.command, args, cmd.Dir)
	out, err := cmd.CombinedOutput()
	if err != nil {
		return string(out), fmt.Errorf("%s %v: %w", it.command, args, err)
	}
	return string(out), nil
}
