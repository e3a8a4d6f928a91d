package redisdb

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRedisClientAppliesConfig(t *testing.T) {
	r := NewRedisClient(&Config{Host: "cache:6380", Password: "pw", DB: 2})
	t.Cleanup(func() { _ = r.Close() })

	opts := r.Client.Options()
	assert.Equal(t, "cache:6380", opts.Addr)
	assert.Equal(t, "pw", opts.Password)
	assert.Equal(t, 2, opts.DB)
}

func TestConnectWithCancelledContext(t *testing.T) {
	r := NewRedisClient(&Config{Host: "127.0.0.1:1"})
	t.Cleanup(func() { _ = r.Close() })

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.Error(t, r.Connect(ctx))
}

func TestClosedClient(t *testing.T) {
	r := NewRedisClient(&Config{Host: "127.0.0.1:1"})
	require.NoError(t, r.Close())

	assert.Nil(t, r.Client)
	assert.Error(t, r.HealthCheck(context.Background()))
	assert.NoError(t, r.Close())
}
