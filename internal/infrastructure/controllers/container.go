package controllers

import (
	"github.com/rios0rios0/mvnoffline/internal/domain/entities"
	"go.uber.org/dig"
)

// RegisterProviders registers all controller providers with the DIG container.
func RegisterProviders(container *dig.Container) error {
	// Register controller constructors
	if err := container.Provide(NewTraceController); err != nil {
		return err
	}
	if err := container.Provide(NewCleanController); err != nil {
		return err
	}
	if err := container.Provide(NewControllers); err != nil {
		return err
	}

	return nil
}

// NewControllers aggregates all controllers into a slice for the AppInternal.
func NewControllers(
	traceController *TraceController,
	cleanController *CleanController,
) *[]entities.Controller {
	return &[]entities.Controller{
		traceController,
		cleanController,
	}
}
