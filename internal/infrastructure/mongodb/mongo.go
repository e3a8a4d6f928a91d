package mongodb

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Config holds everything needed to reach a MongoDB deployment
type Config struct {
	URI            string
	Database       string
	Collection     string
	ConnectTimeout time.Duration
	MaxRetries     int
	RetryDelay     time.Duration
}

// MongoDB owns the client lifecycle. Nothing here is global: the container
// builds one instance and hands it to the repository.
type MongoDB struct {
	Client *mongo.Client
	Config *Config
}

func NewMongoDB(cfg *Config) *MongoDB {
	return &MongoDB{Config: cfg}
}

// Connect establishes the client, retrying with exponential backoff until
// the server answers a ping or the retries are exhausted.
func (m *MongoDB) Connect(ctx context.Context) error {
	log.Info().Str("database", m.Config.Database).Msg("[MONGO] Connecting to MongoDB...")

	maxRetries := m.Config.MaxRetries
	if maxRetries < 1 {
		maxRetries = 1
	}

	var lastErr error
	for attempt := 1; attempt <= maxRetries; attempt++ {
		client, err := m.connectOnce(ctx)
		if err == nil {
			m.Client = client
			log.Info().Int("attempt", attempt).Msg("[MONGO] Connected successfully")
			return nil
		}
		lastErr = err
		log.Warn().Err(err).Int("attempt", attempt).Int("max_retries", maxRetries).Msg("[MONGO] Connection attempt failed")

		if attempt < maxRetries {
			delay := m.Config.RetryDelay * time.Duration(1<<uint(attempt-1))
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return fmt.Errorf("connection cancelled: %w", ctx.Err())
			}
		}
	}

	return fmt.Errorf("failed to connect after %d attempts: %w", maxRetries, lastErr)
}

func (m *MongoDB) connectOnce(ctx context.Context) (*mongo.Client, error) {
	connectCtx, cancel := context.WithTimeout(ctx, m.Config.ConnectTimeout)
	defer cancel()

	opts := options.Client().
		ApplyURI(m.Config.URI).
		SetConnectTimeout(m.Config.ConnectTimeout)

	client, err := mongo.Connect(connectCtx, opts)
	if err != nil {
		return nil, err
	}
	if err := client.Ping(connectCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo ping failed: %w", err)
	}
	return client, nil
}

// HealthCheck pings the primary with a short timeout
func (m *MongoDB) HealthCheck(ctx context.Context) error {
	if m == nil || m.Client == nil {
		return fmt.Errorf("mongo client is not initialized")
	}

	healthCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := m.Client.Ping(healthCtx, readpref.Primary()); err != nil {
		return fmt.Errorf("mongo ping failed: %w", err)
	}
	return nil
}

// Collection returns the configured blog post collection
func (m *MongoDB) Collection() *mongo.Collection {
	return m.Client.Database(m.Config.Database).Collection(m.Config.Collection)
}

// Close disconnects the client. Safe to call more than once.
func (m *MongoDB) Close() error {
	if m.Client == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	log.Info().Msg("[MONGO] Disconnecting...")
	err := m.Client.Disconnect(ctx)
	m.Client = nil
	if err != nil {
		return fmt.Errorf("mongo disconnect failed: %w", err)
	}
	return nil
}
