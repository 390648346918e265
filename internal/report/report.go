// Package report assembles, persists and renders the result of a trace run.
package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/rios0rios0/mvnoffline/internal/domain/entities"
)

const (
	// FileName is the JSON report written into the project directory.
	FileName = "dependency-analysis-report.json"

	// FetchScriptName is the helper script listing critical missing
	// artifacts for a machine with network access.
	FetchScriptName = "fetch-missing-deps.sh"
)

// Stats summarizes the run in counters.
type Stats struct {
	TotalCoordinates int `json:"total_coordinates"`
	Eligible         int `json:"eligible"`
	Copied           int `json:"copied"`
	Failed           int `json:"failed"`
	FilesCopied      int `json:"files_copied"`
	Omitted          int `json:"omitted"`
	ParseWarnings    int `json:"parse_warnings"`
}

// Verification records the optional offline build check.
type Verification struct {
	Ran              bool     `json:"ran"`
	CompilePassed    bool     `json:"compile_passed"`
	PackagePassed    bool     `json:"package_passed"`
	MissingMentioned []string `json:"missing_mentioned,omitempty"`
}

// Report is the full machine-readable output of a trace run.
type Report struct {
	GeneratedAt     time.Time                 `json:"generated_at"`
	ProjectDir      string                    `json:"project_dir"`
	SourceRepo      string                    `json:"source_repo"`
	TargetRepo      string                    `json:"target_repo"`
	SettingsPath    string                    `json:"settings_path,omitempty"`
	Stats           Stats                     `json:"stats"`
	Scopes          map[string]int            `json:"scope_distribution"`
	Classifications []entities.Classification `json:"classifications,omitempty"`
	Failures        []entities.CopyResult     `json:"failures,omitempty"`
	Warnings        []entities.ParseWarning   `json:"warnings,omitempty"`
	Verification    *Verification             `json:"verification,omitempty"`
}

// Build derives a report from the run's intermediate results. The copy
// summary may be nil when the run was analysis only.
func Build(
	projectDir, sourceRepo, targetRepo, settingsPath string,
	graph *entities.DependencyGraph,
	summary *entities.CopySummary,
	classifications []entities.Classification,
	verification *Verification,
) *Report {
	r := &Report{
		GeneratedAt:     time.Now().UTC(),
		ProjectDir:      projectDir,
		SourceRepo:      sourceRepo,
		TargetRepo:      targetRepo,
		SettingsPath:    settingsPath,
		Scopes:          map[string]int{},
		Classifications: classifications,
		Warnings:        graph.Warnings(),
		Verification:    verification,
	}

	canonical := graph.CanonicalNodes()
	r.Stats.TotalCoordinates = len(canonical)
	r.Stats.Omitted = graph.OmittedCount()
	r.Stats.ParseWarnings = len(r.Warnings)
	for _, node := range canonical {
		scope := string(node.Scope)
		if scope == "" {
			scope = string(entities.ScopeCompile)
		}
		r.Scopes[scope]++
	}

	if summary != nil {
		r.Stats.Eligible = len(summary.Results)
		r.Stats.Copied = summary.Copied
		r.Stats.Failed = summary.Failed
		r.Stats.FilesCopied = summary.FilesCopied
		r.Failures = summary.Failures()
	}
	return r
}

// CriticalMissing lists the coordinate keys classified as blocking the
// offline build.
func (it *Report) CriticalMissing() []string {
	var keys []string
	for _, c := range it.Classifications {
		if c.Category.Critical() {
			keys = append(keys, c.Coordinate.Key())
		}
	}
	sort.Strings(keys)
	return keys
}

// WriteJSON persists the report into the project directory and returns the
// path written.
func (it *Report) WriteJSON(projectDir string) (string, error) {
	data, err := json.MarshalIndent(it, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode report: %w", err)
	}

	path := filepath.Join(projectDir, FileName)
	if writeErr := os.WriteFile(path, data, 0o644); writeErr != nil {
		return "", fmt.Errorf("failed to write report: %w", writeErr)
	}
	return path, nil
}

// LoadPreviousFailures reads an earlier report from the project directory and
// returns the coordinate keys that failed, for retry runs that should skip
// artifacts already copied.
func LoadPreviousFailures(projectDir string) (map[string]bool, error) {
	data, err := os.ReadFile(filepath.Join(projectDir, FileName))
	if err != nil {
		return nil, fmt.Errorf("no previous report found: %w", err)
	}

	var previous Report
	if unmarshalErr := json.Unmarshal(data, &previous); unmarshalErr != nil {
		return nil, fmt.Errorf("previous report unreadable: %w", unmarshalErr)
	}

	keys := make(map[string]bool, len(previous.Failures))
	for _, failure := range previous.Failures {
		keys[failure.Coordinate.Key()] = true
	}
	return keys, nil
}

// WriteFetchScript writes a shell script that downloads the critical missing
// artifacts on a machine with network access. Returns the empty string when
// nothing critical is missing.
func (it *Report) WriteFetchScript(projectDir string) (string, error) {
	var critical []entities.Classification
	for _, c := range it.Classifications {
		if c.Category.Critical() {
			critical = append(critical, c)
		}
	}
	if len(critical) == 0 {
		return "", nil
	}

	var b strings.Builder
	b.WriteString("#!/bin/sh\n")
	b.WriteString("# Downloads the artifacts the offline repository is missing.\n")
	b.WriteString("# Run on a machine with network access, then sync the local\n")
	b.WriteString("# repository back to the offline environment.\n")
	b.WriteString("set -e\n\n")
	for _, c := range critical {
		coord := c.Coordinate
		fmt.Fprintf(&b, "mvn dependency:get -Dartifact=%s:%s:%s",
			coord.GroupID, coord.ArtifactID, coord.Version)
		if coord.Packaging != "" && coord.Packaging != "jar" {
			fmt.Fprintf(&b, ":%s", coord.Packaging)
		}
		b.WriteString("\n")
	}

	path := filepath.Join(projectDir, FetchScriptName)
	if err := os.WriteFile(path, []byte(b.String()), 0o755); err != nil {
		return "", fmt.Errorf("failed to write fetch script: %w", err)
	}
	return path, nil
}
