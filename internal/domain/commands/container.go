package commands

import (
	"go.uber.org/dig"
)

// RegisterProviders registers all command providers with the DIG container.
func RegisterProviders(container *dig.Container) error {
	// Register command constructors
	if err := container.Provide(NewTraceCommand); err != nil {
		return err
	}
	if err := container.Provide(NewCleanCommand); err != nil {
		return err
	}

	// Bind interfaces to implementations
	if err := container.Provide(func(impl *TraceCommand) Trace {
		return impl
	}); err != nil {
		return err
	}
	if err := container.Provide(func(impl *CleanCommand) Clean {
		return impl
	}); err != nil {
		return err
	}

	return nil
}
