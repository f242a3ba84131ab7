package persistence

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const defaultConnectTimeout = 10 * time.Second

// MongoConfig describes how to reach the flight and roster store
type MongoConfig struct {
	URI            string
	Username       string
	Password       string
	AppName        string
	ConnectTimeout time.Duration
}

// mongoClientOptions builds the driver options; credentials are only set when
// both parts are present so a URI carrying its own auth keeps working
func mongoClientOptions(cfg MongoConfig) *options.ClientOptions {
	opts := options.Client().ApplyURI(cfg.URI)
	if cfg.Username != "" && cfg.Password != "" {
		opts.SetAuth(options.Credential{
			Username: cfg.Username,
			Password: cfg.Password,
		})
	}
	if cfg.AppName != "" {
		opts.SetAppName(cfg.AppName)
	}
	opts.SetConnectTimeout(connectTimeout(cfg))
	return opts
}

func connectTimeout(cfg MongoConfig) time.Duration {
	if cfg.ConnectTimeout <= 0 {
		return defaultConnectTimeout
	}
	return cfg.ConnectTimeout
}

// NewMongoClient connects and pings within the connect timeout
func NewMongoClient(ctx context.Context, cfg MongoConfig) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, connectTimeout(cfg))
	defer cancel()

	client, err := mongo.Connect(ctx, mongoClientOptions(cfg))
	if err != nil {
		return nil, fmt.Errorf("connect mongodb: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongodb: %w", err)
	}
	return client, nil
}

// GetDatabase gets a database from the client
func GetDatabase(client *mongo.Client, name string) *mongo.Database {
	return client.Database(name)
}
