package mongodb

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnectGivesUpAfterRetries(t *testing.T) {
	m := NewMongoDB(&Config{
		URI:            "notmongo://localhost",
		Database:       "blog",
		Collection:     "blogposts",
		ConnectTimeout: 100 * time.Millisecond,
		MaxRetries:     2,
		RetryDelay:     time.Millisecond,
	})

	err := m.Connect(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "after 2 attempts")
	assert.Nil(t, m.Client)
}

func TestConnectStopsOnCancel(t *testing.T) {
	m := NewMongoDB(&Config{
		URI:            "notmongo://localhost",
		ConnectTimeout: 100 * time.Millisecond,
		MaxRetries:     5,
		RetryDelay:     time.Hour,
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := m.Connect(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestUnconnectedClient(t *testing.T) {
	m := NewMongoDB(&Config{Database: "blog"})

	assert.Error(t, m.HealthCheck(context.Background()))
	assert.NoError(t, m.Close())
	assert.NoError(t, m.Close())
}
