package repositories

import (
	"go.uber.org/dig"

	domainRepos "github.com/rios0rios0/mvnoffline/internal/domain/repositories"
	"github.com/rios0rios0/mvnoffline/internal/infrastructure/repositories/maven"
	"github.com/rios0rios0/mvnoffline/internal/infrastructure/repositories/store"
)

// RegisterProviders registers all repository providers with the DIG container.
func RegisterProviders(container *dig.Container) error {
	// Repository roots and the build tool command are only known at run
	// time, so the backends are provided as factories.
	if err := container.Provide(func() domainRepos.BuildToolFactory {
		return maven.NewRepository
	}); err != nil {
		return err
	}
	if err := container.Provide(func() domainRepos.SourceStoreFactory {
		return store.NewLocalSourceStore
	}); err != nil {
		return err
	}
	if err := container.Provide(func() domainRepos.TargetStoreFactory {
		return store.NewLocalTargetStore
	}); err != nil {
		return err
	}

	if err := container.Provide(store.NewLocalCacheCleaner); err != nil {
		return err
	}

	return nil
}
