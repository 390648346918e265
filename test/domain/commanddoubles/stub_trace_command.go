//go:build integration || unit || test

package commanddoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/rios0rios0/mvnoffline/internal/domain/commands"
	"github.com/rios0rios0/mvnoffline/internal/report"
)

// StubTraceCommand implements commands.Trace with canned responses and
// records the options it was called with.
type StubTraceCommand struct {
	Report *report.Report
	Err    error

	// spy: options received
	Calls []commands.TraceOptions
}

var _ commands.Trace = (*StubTraceCommand)(nil)

func (s *StubTraceCommand) Execute(
	_ context.Context, opts commands.TraceOptions,
) (*report.Report, error) {
	s.Calls = append(s.Calls, opts)
	return s.Report, s.Err
}
