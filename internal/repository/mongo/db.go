package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	defaultTimeout = 10 * time.Second
	defaultAppName = "dancer-admin-dashboard"
)

// ConnectOptions describes the session store connection. Zero Timeout and
// AppName fall back to the defaults.
type ConnectOptions struct {
	URI     string
	AppName string
	Timeout time.Duration
}

func (o ConnectOptions) clientOptions() (*options.ClientOptions, time.Duration, error) {
	if o.URI == "" {
		return nil, 0, errors.New("mongo: empty connection URI")
	}
	timeout := o.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	appName := o.AppName
	if appName == "" {
		appName = defaultAppName
	}
	co := options.Client().
		ApplyURI(o.URI).
		SetAppName(appName).
		SetConnectTimeout(timeout).
		SetServerSelectionTimeout(timeout)
	if err := co.Validate(); err != nil {
		return nil, 0, fmt.Errorf("mongo: %w", err)
	}
	return co, timeout, nil
}

// ConnectDB connects and pings the primary; the whole attempt is bounded by
// the connect timeout and by ctx.
func ConnectDB(ctx context.Context, o ConnectOptions) (*mongo.Client, error) {
	co, timeout, err := o.clientOptions()
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client, err := mongo.Connect(ctx, co)
	if err != nil {
		return nil, fmt.Errorf("mongo: connect: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = DisconnectDB(client)
		return nil, fmt.Errorf("mongo: ping primary: %w", err)
	}
	return client, nil
}

func DisconnectDB(client *mongo.Client) error {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()
	return client.Disconnect(ctx)
}
