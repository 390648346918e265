package repositories

import (
	"context"
)

// BuildToolResult is the outcome of a compile or package invocation: a
// pass/fail status plus the raw diagnostic text. The core never parses the
// text beyond this.
type BuildToolResult struct {
	Passed bool
	Output string
}

// BuildToolRepository abstracts the external build tool. The core treats all
// of its output as opaque text streams; only the dependency-tree text is
// parsed, by the tree package.
type BuildToolRepository interface {
	// Probe verifies the build tool can be invoked at all. A probe failure
	// is terminal for every phase that depends on the tool.
	Probe(ctx context.Context) error

	// DependencyTree returns the verbose dependency-tree text for the
	// project, falling back to non-verbose output when verbose mode fails.
	DependencyTree(ctx context.Context, projectDir string) (string, error)

	// EffectiveModel returns the effective project-configuration document.
	EffectiveModel(ctx context.Context, projectDir string) ([]byte, error)

	// Compile attempts a compile against the given settings file.
	Compile(ctx context.Context, projectDir, settingsPath string) BuildToolResult

	// Package attempts a package (tests skipped) against the given settings file.
	Package(ctx context.Context, projectDir, settingsPath string) BuildToolResult
}

// BuildToolFactory creates a build tool adapter for the given executable
// override (empty means auto-detect).
type BuildToolFactory func(command string) BuildToolRepository
