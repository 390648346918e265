package internal

import (
	"github.com/rios0rios0/mvnoffline/internal/domain/entities"
)

// AppInternal holds the wired application surface, the controllers the CLI
// mounts as subcommands.
type AppInternal struct {
	controllers *[]entities.Controller
}

// NewAppInternal creates the application context from the injected
// controller slice.
func NewAppInternal(controllers *[]entities.Controller) *AppInternal {
	return &AppInternal{controllers: controllers}
}

// GetControllers returns all registered controllers.
func (it *AppInternal) GetControllers() []entities.Controller {
	return *it.controllers
}
