//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/rios0rios0/mvnoffline/internal/domain/repositories"
)

// SpyCacheCleaner implements repositories.CacheCleaner as a configurable spy.
type SpyCacheCleaner struct {
	Report *repositories.CleanReport
	Err    error

	// spy: calls received
	RepoDirs []string
	Options  []repositories.CleanOptions
}

var _ repositories.CacheCleaner = (*SpyCacheCleaner)(nil)

func (s *SpyCacheCleaner) Clean(
	_ context.Context, repoDir string, opts repositories.CleanOptions,
) (*repositories.CleanReport, error) {
	s.RepoDirs = append(s.RepoDirs, repoDir)
	s.Options = append(s.Options, opts)
	if s.Err != nil {
		return nil, s.Err
	}
	if s.Report != nil {
		return s.Report, nil
	}
	return &repositories.CleanReport{}, nil
}
