package container

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"blog-api/internal/config"
	"blog-api/internal/domains/post/handler"
	"blog-api/internal/domains/post/repository"
	"blog-api/internal/domains/post/service"
	"blog-api/internal/infrastructure/database"
	"blog-api/internal/infrastructure/mongodb"
	"blog-api/internal/infrastructure/redisdb"
)

// ========================================
// CONTAINER STRUCT
// ========================================

// Container is the root of the dependency graph. Exactly one of the
// engine clients is set, matching Config.Storage.Driver.
type Container struct {
	// ========================================
	// INFRASTRUCTURE LAYER
	// ========================================
	Config *config.Config
	Mongo  *mongodb.MongoDB
	DB     *database.PostgresDB
	Redis  *redisdb.RedisClient

	// ========================================
	// DOMAIN LAYERS
	// ========================================
	PostRepo    repository.RepositoryInterface
	PostService service.ServiceInterface
	PostHandler *handler.PostHandler
}

// New builds the graph in order: store, then service, then handler.
// On failure every opened connection is closed again.
func New(ctx context.Context, cfg *config.Config) (*Container, error) {
	log.Info().
		Str("environment", cfg.App.Environment).
		Str("driver", cfg.Storage.Driver).
		Msg("Initializing container")

	c := &Container{Config: cfg}

	// ========================================
	// STEP 1: STORE
	// ========================================
	if err := c.initStore(ctx); err != nil {
		c.Cleanup()
		return nil, fmt.Errorf("failed to init %s store: %w", cfg.Storage.Driver, err)
	}

	// ========================================
	// STEP 2: SERVICE + HANDLER
	// ========================================
	c.PostService = service.NewPostService(c.PostRepo)
	c.PostHandler = handler.NewPostHandler(c.PostService)

	log.Info().Msg("Container initialized")
	return c, nil
}

func (c *Container) initStore(ctx context.Context) error {
	connectCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	switch c.Config.Storage.Driver {
	case repository.DriverMongo:
		c.Mongo = mongodb.NewMongoDB(&c.Config.Mongo)
		if err := c.Mongo.Connect(connectCtx); err != nil {
			return err
		}
		c.PostRepo = repository.NewMongoRepository(c.Mongo.Collection())

	case repository.DriverPostgres:
		c.DB = database.NewPostgresDB(&c.Config.Database)
		if err := c.DB.Connect(connectCtx); err != nil {
			return err
		}
		if err := repository.EnsurePostgresSchema(connectCtx, c.DB.Pool); err != nil {
			return err
		}
		c.PostRepo = repository.NewPostgresRepository(c.DB.Pool)

	case repository.DriverRedis:
		c.Redis = redisdb.NewRedisClient(&c.Config.Redis)
		if err := c.Redis.Connect(connectCtx); err != nil {
			return err
		}
		c.PostRepo = repository.NewRedisRepository(c.Redis.Client, c.Config.Redis.KeyPrefix)

	case repository.DriverMemory:
		log.Warn().Msg("Using in-memory store, data is lost on exit")
		c.PostRepo = repository.NewMemoryRepository()

	default:
		return fmt.Errorf("unknown storage driver %q", c.Config.Storage.Driver)
	}

	return nil
}

// HealthCheck asks the active engine client whether it still answers.
// The memory store has no engine and is healthy once built.
func (c *Container) HealthCheck(ctx context.Context) error {
	if c.Config == nil || c.PostRepo == nil {
		return fmt.Errorf("container is not initialized")
	}

	switch c.Config.Storage.Driver {
	case repository.DriverMongo:
		return c.Mongo.HealthCheck(ctx)
	case repository.DriverPostgres:
		return c.DB.HealthCheck(ctx)
	case repository.DriverRedis:
		return c.Redis.HealthCheck(ctx)
	case repository.DriverMemory:
		return ctx.Err()
	default:
		return fmt.Errorf("unknown storage driver %q", c.Config.Storage.Driver)
	}
}

// Cleanup releases every connection the container opened.
// Called during graceful shutdown; safe on a partially built container.
func (c *Container) Cleanup() {
	log.Info().Msg("Cleaning up container resources")

	if c.Mongo != nil {
		if err := c.Mongo.Close(); err != nil {
			log.Warn().Err(err).Msg("Failed to close MongoDB")
		}
	}
	if c.DB != nil {
		if err := c.DB.Close(); err != nil {
			log.Warn().Err(err).Msg("Failed to close PostgreSQL")
		}
	}
	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			log.Warn().Err(err).Msg("Failed to close Redis")
		}
	}
}
