package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"blog-api/internal/domains/post/repository"
	"blog-api/internal/infrastructure/database"
	"blog-api/internal/infrastructure/mongodb"
	"blog-api/internal/infrastructure/redisdb"
)

// Config holds the whole application configuration.
// It is populated from environment variables.
type Config struct {
	App      AppConfig
	Storage  StorageConfig
	Mongo    mongodb.Config
	Database database.DBConfig
	Redis    redisdb.Config
}

type AppConfig struct {
	Name        string
	Environment string // development, staging, production, test
	Port        string
	Version     string
	BasePath    string // prefix for every route, "" mounts /posts at the root
	LogLevel    string
}

// StorageConfig selects which engine backs the blog post store
type StorageConfig struct {
	Driver string // mongo, postgres, redis, memory
}

// Load reads config from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "Blog API"),
			Environment: getEnv("APP_ENV", "development"),
			Port:        getEnv("APP_PORT", "8080"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
			BasePath:    strings.TrimRight(getEnv("APP_BASE_PATH", ""), "/"),
			LogLevel:    getEnv("LOG_LEVEL", "info"),
		},
		Storage: StorageConfig{
			Driver: strings.ToLower(getEnv("STORAGE_DRIVER", repository.DriverMongo)),
		},
		Mongo: mongodb.Config{
			URI:        getEnv("MONGO_URI", "mongodb://localhost:27017"),
			Database:   getEnv("MONGO_DATABASE", "blog-app"),
			Collection: getEnv("MONGO_COLLECTION", "blogposts"),
		},
		Database: database.DBConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Username: getEnv("DB_USER", "blog"),
			Password: getEnv("DB_PASSWORD", "secret"),
			DBName:   getEnv("DB_NAME", "blog_dev"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Redis: redisdb.Config{
			Host:      getEnv("REDIS_HOST", "localhost:6379"),
			Password:  getEnv("REDIS_PASSWORD", ""),
			KeyPrefix: getEnv("REDIS_KEY_PREFIX", ""),
		},
	}

	var err error
	if cfg.Mongo.ConnectTimeout, err = getEnvDuration("MONGO_CONNECT_TIMEOUT", 10*time.Second); err != nil {
		return nil, err
	}
	if cfg.Mongo.MaxRetries, err = getEnvInt("MONGO_MAX_RETRIES", 5); err != nil {
		return nil, err
	}
	if cfg.Mongo.RetryDelay, err = getEnvDuration("MONGO_RETRY_DELAY", time.Second); err != nil {
		return nil, err
	}

	if err := loadDatabaseConfig(&cfg.Database); err != nil {
		return nil, err
	}

	if cfg.Redis.DB, err = getEnvInt("REDIS_DB", 0); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// loadDatabaseConfig fills the numeric PostgreSQL pool settings
func loadDatabaseConfig(db *database.DBConfig) error {
	var err error

	if db.Port, err = getEnvInt("DB_PORT", 5432); err != nil {
		return err
	}

	maxConns, err := getEnvInt("DB_MAX_CONNECTIONS", 25)
	if err != nil {
		return err
	}
	minConns, err := getEnvInt("DB_MIN_CONNECTIONS", 5)
	if err != nil {
		return err
	}
	db.MaxConns = int32(maxConns)
	db.MinConns = int32(minConns)

	if db.MaxRetries, err = getEnvInt("DB_MAX_RETRIES", 5); err != nil {
		return err
	}
	if db.MaxConnLifetime, err = getEnvDuration("DB_MAX_CONN_LIFETIME", 5*time.Minute); err != nil {
		return err
	}
	if db.MaxConnIdleTime, err = getEnvDuration("DB_MAX_CONN_IDLE_TIME", time.Minute); err != nil {
		return err
	}
	if db.HealthCheckPeriod, err = getEnvDuration("DB_HEALTH_CHECK_PERIOD", time.Minute); err != nil {
		return err
	}
	if db.RetryDelay, err = getEnvDuration("DB_RETRY_DELAY", time.Second); err != nil {
		return err
	}
	if db.ConnectTimeout, err = getEnvDuration("DB_CONNECT_TIMEOUT", 10*time.Second); err != nil {
		return err
	}
	return nil
}

// Validate checks that the config can actually start the service
func (c *Config) Validate() error {
	switch c.Storage.Driver {
	case repository.DriverMongo:
		if c.Mongo.URI == "" || c.Mongo.Database == "" || c.Mongo.Collection == "" {
			return fmt.Errorf("MONGO_URI, MONGO_DATABASE and MONGO_COLLECTION must be set for the mongo driver")
		}
	case repository.DriverPostgres:
		if c.Database.Host == "" || c.Database.DBName == "" {
			return fmt.Errorf("DB_HOST and DB_NAME must be set for the postgres driver")
		}
		if c.Database.MinConns > c.Database.MaxConns {
			return fmt.Errorf("DB_MIN_CONNECTIONS (%d) exceeds DB_MAX_CONNECTIONS (%d)", c.Database.MinConns, c.Database.MaxConns)
		}
	case repository.DriverRedis:
		if c.Redis.Host == "" {
			return fmt.Errorf("REDIS_HOST must be set for the redis driver")
		}
	case repository.DriverMemory:
	default:
		return fmt.Errorf("unknown STORAGE_DRIVER %q", c.Storage.Driver)
	}

	if c.App.Environment == "production" {
		if c.Storage.Driver == repository.DriverMemory {
			return fmt.Errorf("the memory driver cannot be used in production")
		}
		if c.Storage.Driver == repository.DriverPostgres && c.Database.Password == "" {
			return fmt.Errorf("DB_PASSWORD must be set in production")
		}
	}

	return nil
}

// IsProduction reports whether the app runs in production mode
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// Helper functions
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) (int, error) {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue, nil
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return value, nil
}

func getEnvDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue, nil
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return value, nil
}
