//go:build wireinject
// +build wireinject

package di

import (
	"context"

	"github.com/google/wire"

	"blogapi/infrastructure/config"
)

// SuperSet is the main provider set containing all providers
var SuperSet = wire.NewSet(
	ProvideLogger,
	ProvidePostgresPool,
	ProvideRedisClient,
	ProvideCacheManager,
	ProvideIDGenerator,
	ProvideTxManager,
	ProvidePostRepository,
	ProvideCategoryRepository,
	ProvideTagRepository,
	ProvideReferenceResolver,
	ProvidePostService,
	ProvideTaxonomyService,
	ProvideErrorHandler,
	wire.Struct(new(Container), "*"),
)

// InitializeContainer creates a fully wired container
func InitializeContainer(ctx context.Context, cfg *config.Config) (*Container, error) {
	wire.Build(SuperSet)
	return nil, nil // Wire will replace this
}
