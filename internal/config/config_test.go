package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "")
	t.Setenv("APP_BASE_PATH", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "mongo", cfg.Storage.Driver)
	assert.Equal(t, "blogposts", cfg.Mongo.Collection)
	assert.Equal(t, 10*time.Second, cfg.Mongo.ConnectTimeout)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.EqualValues(t, 25, cfg.Database.MaxConns)
	assert.Equal(t, "", cfg.App.BasePath)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "Postgres")
	t.Setenv("APP_BASE_PATH", "/api/v1/")
	t.Setenv("DB_PORT", "6543")
	t.Setenv("DB_MAX_CONN_LIFETIME", "30m")
	t.Setenv("REDIS_DB", "3")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "postgres", cfg.Storage.Driver)
	assert.Equal(t, "/api/v1", cfg.App.BasePath)
	assert.Equal(t, 6543, cfg.Database.Port)
	assert.Equal(t, 30*time.Minute, cfg.Database.MaxConnLifetime)
	assert.Equal(t, 3, cfg.Redis.DB)
}

func TestLoadAppSettings(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "postgres")
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("APP_ENV", "production")
	t.Setenv("APP_NAME", "Posts")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "Posts", cfg.App.Name)
	assert.Equal(t, "debug", cfg.App.LogLevel)
	assert.True(t, cfg.IsProduction())
}

func TestLoadRejectsMalformedValues(t *testing.T) {
	cases := map[string]string{
		"DB_PORT":               "five",
		"DB_RETRY_DELAY":        "soon",
		"MONGO_CONNECT_TIMEOUT": "10",
		"REDIS_DB":              "x",
	}
	for key, value := range cases {
		t.Run(key, func(t *testing.T) {
			t.Setenv(key, value)
			_, err := Load()
			assert.ErrorContains(t, err, key)
		})
	}
}

func TestValidate(t *testing.T) {
	t.Run("unknown driver", func(t *testing.T) {
		t.Setenv("STORAGE_DRIVER", "cassandra")
		_, err := Load()
		assert.ErrorContains(t, err, "cassandra")
	})

	t.Run("memory not allowed in production", func(t *testing.T) {
		t.Setenv("STORAGE_DRIVER", "memory")
		t.Setenv("APP_ENV", "production")
		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("pool bounds", func(t *testing.T) {
		t.Setenv("STORAGE_DRIVER", "postgres")
		t.Setenv("DB_MIN_CONNECTIONS", "50")
		_, err := Load()
		assert.ErrorContains(t, err, "DB_MIN_CONNECTIONS")
	})

	t.Run("memory in development", func(t *testing.T) {
		t.Setenv("STORAGE_DRIVER", "memory")
		t.Setenv("APP_ENV", "development")
		cfg, err := Load()
		require.NoError(t, err)
		assert.False(t, cfg.IsProduction())
	})
}
