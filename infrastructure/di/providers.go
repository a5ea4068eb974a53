package di

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"blogapi/application/ports"
	"blogapi/application/services"
	"blogapi/infrastructure/cache"
	"blogapi/infrastructure/config"
	"blogapi/infrastructure/persistence/postgres"
	apperrors "blogapi/pkg/errors"
	"blogapi/pkg/identifier"
)

// Container holds all application dependencies
type Container struct {
	Config          *config.Config
	Logger          *zap.Logger
	Pool            *pgxpool.Pool
	Redis           *redis.Client
	PostService     services.PostService
	TaxonomyService services.TaxonomyService
	ErrorHandler    *apperrors.ErrorHandler
}

// Close releases the container's resources.
func (c *Container) Close() {
	if c.Pool != nil {
		c.Pool.Close()
	}
	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			c.Logger.Warn("Failed to close redis client", zap.Error(err))
		}
	}
}

// Ready checks the backing stores, for the readiness probe.
func (c *Container) Ready(ctx context.Context) error {
	if err := c.Pool.Ping(ctx); err != nil {
		return err
	}
	return c.Redis.Ping(ctx).Err()
}

// ProvideLogger creates a new logger instance
func ProvideLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.IsProduction() {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

// ProvidePostgresPool creates the pgx pool and bootstraps the schema
func ProvidePostgresPool(ctx context.Context, cfg *config.Config) (*pgxpool.Pool, error) {
	pool, err := postgres.NewPool(ctx, cfg.PostgresDSN)
	if err != nil {
		return nil, err
	}
	if err := postgres.EnsureSchema(ctx, pool); err != nil {
		pool.Close()
		return nil, err
	}
	return pool, nil
}

// ProvideRedisClient creates the Redis client
func ProvideRedisClient(cfg *config.Config) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
}

// ProvideCacheManager creates the region-policy cache manager
func ProvideCacheManager(client *redis.Client, cfg *config.Config, logger *zap.Logger) ports.Cache {
	return cache.NewManager(cache.NewRedisStore(client), cfg.Cache, logger)
}

// ProvideIDGenerator creates the ULID generator
func ProvideIDGenerator() identifier.Generator {
	return identifier.NewULIDGenerator()
}

// ProvideTxManager creates the transaction manager
func ProvideTxManager(pool *pgxpool.Pool) ports.TxManager {
	return postgres.NewTxManager(pool)
}

// ProvidePostRepository creates the post repository
func ProvidePostRepository(pool *pgxpool.Pool) ports.PostRepository {
	return postgres.NewPostRepository(pool)
}

// ProvideCategoryRepository creates the category repository
func ProvideCategoryRepository(pool *pgxpool.Pool) ports.CategoryRepository {
	return postgres.NewCategoryRepository(pool)
}

// ProvideTagRepository creates the tag repository
func ProvideTagRepository(pool *pgxpool.Pool) ports.TagRepository {
	return postgres.NewTagRepository(pool)
}

// ProvideReferenceResolver creates the reference resolver
func ProvideReferenceResolver(categories ports.CategoryRepository, tags ports.TagRepository) *services.ReferenceResolver {
	return services.NewReferenceResolver(categories, tags)
}

// ProvidePostService creates the post lifecycle service
func ProvidePostService(
	posts ports.PostRepository,
	resolver *services.ReferenceResolver,
	ids identifier.Generator,
	cacheManager ports.Cache,
	tx ports.TxManager,
	logger *zap.Logger,
) services.PostService {
	return services.NewPostService(posts, resolver, ids, cacheManager, tx, logger)
}

// ProvideTaxonomyService creates the taxonomy service
func ProvideTaxonomyService(
	categories ports.CategoryRepository,
	tags ports.TagRepository,
	ids identifier.Generator,
	logger *zap.Logger,
) services.TaxonomyService {
	return services.NewTaxonomyService(categories, tags, ids, logger)
}

// ProvideErrorHandler creates the HTTP error handler
func ProvideErrorHandler(logger *zap.Logger) *apperrors.ErrorHandler {
	return apperrors.NewErrorHandler(logger)
}
