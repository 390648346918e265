//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/rios0rios0/mvnoffline/internal/domain/repositories"
)

// SpyBuildToolRepository implements repositories.BuildToolRepository as a
// configurable spy. Configure the response fields for the methods your test
// exercises, then inspect the call-tracking fields to verify behavior.
type SpyBuildToolRepository struct {
	// --- Probe ---
	ProbeErr error

	// --- DependencyTree ---
	TreeText string
	TreeErr  error
	// spy: project dirs requested
	TreeProjectDirs []string

	// --- EffectiveModel ---
	ModelData []byte
	ModelErr  error

	// --- Compile / Package ---
	CompileResult repositories.BuildToolResult
	PackageResult repositories.BuildToolResult
	// spy: settings paths received
	CompileSettings []string
	PackageSettings []string
}

var _ repositories.BuildToolRepository = (*SpyBuildToolRepository)(nil)

func (s *SpyBuildToolRepository) Probe(_ context.Context) error {
	return s.ProbeErr
}

func (s *SpyBuildToolRepository) DependencyTree(
	_ context.Context, projectDir string,
) (string, error) {
	s.TreeProjectDirs = append(s.TreeProjectDirs, projectDir)
	return s.TreeText, s.TreeErr
}

func (s *SpyBuildToolRepository) EffectiveModel(
	_ context.Context, _ string,
) ([]byte, error) {
	return s.ModelData, s.ModelErr
}

func (s *SpyBuildToolRepository) Compile(
	_ context.Context, _ string, settingsPath string,
) repositories.BuildToolResult {
	s.CompileSettings = append(s.CompileSettings, settingsPath)
	return s.CompileResult
}

func (s *SpyBuildToolRepository) Package(
	_ context.Context, _ string, settingsPath string,
) repositories.BuildToolResult {
	s.PackageSettings = append(s.PackageSettings, settingsPath)
	return s.PackageResult
}
