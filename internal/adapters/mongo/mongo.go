package mongo

import (
	"context"
	"fmt"
	"time"

	"github.com/alessok/devops-proyecto-final/internal/adapters/config"
	"github.com/alessok/devops-proyecto-final/internal/core/port"
	"go.mongodb.org/mongo-driver/event"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// NewPoolMonitor feeds connection pool open/close events into the active
// connections gauge.
func NewPoolMonitor(metrics port.MetricsPort) *event.PoolMonitor {
	return &event.PoolMonitor{
		Event: func(evt *event.PoolEvent) {
			switch evt.Type {
			case event.ConnectionReady:
				metrics.AddActiveConnections(context.Background(), 1)
			case event.ConnectionClosed:
				metrics.AddActiveConnections(context.Background(), -1)
			}
		},
	}
}

func NewConnection(config config.MongoConfig, poolMonitor *event.PoolMonitor) (*mongo.Client, error) {

	clientOpts := options.Client().
		ApplyURI(config.URI).
		SetTimeout(config.Timeout).
		SetConnectTimeout(config.ConnectTimeout).
		SetServerSelectionTimeout(config.ServerSelectionTimeout).
		SetMaxPoolSize(config.MaxPoolSize).
		SetMinPoolSize(config.MinPoolSize)

	if poolMonitor != nil {
		clientOpts = clientOpts.SetPoolMonitor(poolMonitor)
	}

	ctx, cancel := context.WithTimeout(context.Background(), config.ConnectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	return client, nil
}

func Disconnect(client *mongo.Client) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if client == nil {
		return nil
	}

	if err := client.Disconnect(ctx); err != nil {
		return fmt.Errorf("failed to disconnect from MongoDB: %w", err)
	}

	return nil
}
