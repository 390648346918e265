//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"errors"
	"sync"

	"github.com/rios0rios0/mvnoffline/internal/domain/entities"
	"github.com/rios0rios0/mvnoffline/internal/domain/repositories"
)

// SpySourceStore implements repositories.SourceStore as a configurable spy.
// Candidates are keyed by coordinate key; coordinates with no entry report a
// missing source directory.
type SpySourceStore struct {
	Candidates map[string][]repositories.Candidate
	LocateErr  error
	Similar    map[string][]string // "group:artifact" -> versions

	mutex sync.Mutex
	// spy: coordinate keys requested
	LocatedKeys []string
}

var _ repositories.SourceStore = (*SpySourceStore)(nil)

func (s *SpySourceStore) Locate(
	coord entities.Coordinate,
) (string, []repositories.Candidate, error) {
	s.mutex.Lock()
	s.LocatedKeys = append(s.LocatedKeys, coord.Key())
	s.mutex.Unlock()

	if s.LocateErr != nil {
		return coord.Path(), nil, s.LocateErr
	}
	candidates, ok := s.Candidates[coord.Key()]
	if !ok {
		return coord.Path(), nil, errors.New("source directory unavailable")
	}
	return coord.Path(), candidates, nil
}

func (s *SpySourceStore) SimilarVersions(groupID, artifactID string) []string {
	return s.Similar[groupID+":"+artifactID]
}

// WriteCall records a single write received by the target spy.
type WriteCall struct {
	RelDir     string
	Name       string
	SourcePath string
}

// SpyTargetStore implements repositories.TargetStore as a configurable spy.
type SpyTargetStore struct {
	RootDir  string
	WriteErr func(name string) error // optional per-file failure injection

	mutex sync.Mutex
	// spy: writes received
	Writes []WriteCall
}

var _ repositories.TargetStore = (*SpyTargetStore)(nil)

func (s *SpyTargetStore) Write(relDir, name, sourcePath string) error {
	s.mutex.Lock()
	s.Writes = append(s.Writes, WriteCall{RelDir: relDir, Name: name, SourcePath: sourcePath})
	s.mutex.Unlock()

	if s.WriteErr != nil {
		return s.WriteErr(name)
	}
	return nil
}

func (s *SpyTargetStore) Root() string {
	if s.RootDir != "" {
		return s.RootDir
	}
	return "/tmp/target-repo"
}
