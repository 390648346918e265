//go:build integration || unit || test

package commanddoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/rios0rios0/mvnoffline/internal/domain/commands"
	"github.com/rios0rios0/mvnoffline/internal/domain/repositories"
)

// StubCleanCommand implements commands.Clean with canned responses and
// records the options it was called with.
type StubCleanCommand struct {
	Report *repositories.CleanReport
	Err    error

	// spy: options received
	Calls []commands.CleanOptions
}

var _ commands.Clean = (*StubCleanCommand)(nil)

func (s *StubCleanCommand) Execute(
	_ context.Context, opts commands.CleanOptions,
) (*repositories.CleanReport, error) {
	s.Calls = append(s.Calls, opts)
	return s.Report, s.Err
}
