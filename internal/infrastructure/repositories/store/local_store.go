// Package store implements the artifact store interfaces on the local
// filesystem, following the standard repository layout
// (group/path/artifact/version/files).
package store

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rios0rios0/mvnoffline/internal/domain/entities"
	"github.com/rios0rios0/mvnoffline/internal/domain/repositories"
	"github.com/rios0rios0/mvnoffline/internal/mvnver"
)

const maxSimilarVersions = 5

// LocalSourceStore reads artifacts from an existing repository on disk.
type LocalSourceStore struct {
	root string
}

// NewLocalSourceStore creates a read-only store rooted at the given path.
func NewLocalSourceStore(root string) repositories.SourceStore {
	return &LocalSourceStore{root: root}
}

// Locate lists the files available for a coordinate: the version directory's
// regular files plus the module's repository metadata one level up.
func (it *LocalSourceStore) Locate(
	coord entities.Coordinate,
) (string, []repositories.Candidate, error) {
	dir := filepath.Join(it.root, filepath.FromSlash(coord.Path()))

	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		return dir, nil, fmt.Errorf("source directory unavailable: %w", err)
	}

	var candidates []repositories.Candidate
	for _, entry := range dirEntries {
		if !entry.Type().IsRegular() {
			continue
		}
		name := entry.Name()
		candidates = append(candidates, repositories.Candidate{
			Path: filepath.Join(dir, name),
			Name: name,
			Kind: classifyFile(name, coord),
		})
	}

	// maven-metadata files sit beside the version directories.
	parent := filepath.Dir(dir)
	if metaEntries, metaErr := os.ReadDir(parent); metaErr == nil {
		for _, entry := range metaEntries {
			if entry.Type().IsRegular() && strings.HasPrefix(entry.Name(), "maven-metadata") {
				candidates = append(candidates, repositories.Candidate{
					Path: filepath.Join(parent, entry.Name()),
					Name: entry.Name(),
					Kind: repositories.CandidateMetadata,
				})
			}
		}
	}

	return dir, candidates, nil
}

// classifyFile decides what role a repository file plays for the coordinate.
func classifyFile(name string, coord entities.Coordinate) repositories.CandidateKind {
	switch {
	case strings.HasSuffix(name, ".sha1"), strings.HasSuffix(name, ".md5"),
		strings.HasSuffix(name, ".asc"):
		return repositories.CandidateOther
	case strings.HasSuffix(name, ".pom"):
		return repositories.CandidateDescriptor
	case strings.HasSuffix(name, "."+coord.FileExtension()):
		return repositories.CandidateArtifact
	default:
		return repositories.CandidateOther
	}
}

// SimilarVersions lists other locally available versions of the module,
// newest first, capped for report readability.
func (it *LocalSourceStore) SimilarVersions(groupID, artifactID string) []string {
	artifactDir := filepath.Join(
		it.root,
		filepath.FromSlash(strings.ReplaceAll(groupID, ".", "/")),
		artifactID,
	)

	dirEntries, err := os.ReadDir(artifactDir)
	if err != nil {
		return nil
	}

	var versions []string
	for _, entry := range dirEntries {
		name := entry.Name()
		if entry.IsDir() && name != "" && name[0] >= '0' && name[0] <= '9' {
			versions = append(versions, name)
		}
	}

	mvnver.SortDescending(versions)
	if len(versions) > maxSimilarVersions {
		versions = versions[:maxSimilarVersions]
	}
	return versions
}

// LocalTargetStore writes artifacts into the offline repository. It is
// append-only: distinct coordinates never share a destination path.
type LocalTargetStore struct {
	root string
}

// NewLocalTargetStore creates a store rooted at the given path.
func NewLocalTargetStore(root string) repositories.TargetStore {
	return &LocalTargetStore{root: root}
}

// Root returns the store's base directory.
func (it *LocalTargetStore) Root() string {
	return it.root
}

// Write copies the source file into relDir/name, creating parents. The data
// lands in a temporary file first and is renamed into place so an
// interrupted run never leaves a partially written artifact.
func (it *LocalTargetStore) Write(relDir, name, sourcePath string) error {
	destDir := filepath.Join(it.root, filepath.FromSlash(relDir))
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return fmt.Errorf("failed to create %s: %w", destDir, err)
	}

	src, err := os.Open(sourcePath)
	if err != nil {
		return fmt.Errorf("failed to open source %s: %w", sourcePath, err)
	}
	defer src.Close()

	tmp, err := os.CreateTemp(destDir, ".mvnoffline-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file in %s: %w", destDir, err)
	}
	tmpPath := tmp.Name()

	if _, copyErr := io.Copy(tmp, src); copyErr != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to copy %s: %w", name, copyErr)
	}
	if closeErr := tmp.Close(); closeErr != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to flush %s: %w", name, closeErr)
	}

	dest := filepath.Join(destDir, name)
	if renameErr := os.Rename(tmpPath, dest); renameErr != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to finalize %s: %w", name, renameErr)
	}
	return nil
}
