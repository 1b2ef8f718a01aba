package repository

import (
	"context"
	"fmt"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
)

// Store drivers accepted by Open.
const (
	DriverPostgres = "postgres"
	DriverBadger   = "badger"
	DriverDynamoDB = "dynamodb"
)

// Options selects and configures a record store.
type Options struct {
	Driver      string
	DatabaseURL string
	BadgerPath  string
	DynamoTable string
}

// Open connects to the configured store and verifies it is reachable before
// returning, so callers can refuse to serve with a broken dependency.
func Open(ctx context.Context, opts Options) (ContactRepository, error) {
	switch opts.Driver {
	case DriverPostgres:
		pool, err := NewPool(ctx, opts.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("postgres: %w", err)
		}
		return NewPgContactRepository(pool), nil

	case DriverBadger:
		db, err := OpenBadger(opts.BadgerPath)
		if err != nil {
			return nil, err
		}
		repo, err := NewBadgerContactRepository(db)
		if err != nil {
			_ = db.Close()
			return nil, err
		}
		return repo, nil

	case DriverDynamoDB:
		cfg, err := awsconfig.LoadDefaultConfig(ctx)
		if err != nil {
			return nil, fmt.Errorf("load AWS config: %w", err)
		}
		repo, err := NewDynamoContactRepository(dynamodb.NewFromConfig(cfg), opts.DynamoTable)
		if err != nil {
			return nil, err
		}
		if err := repo.Ping(ctx); err != nil {
			return nil, err
		}
		return repo, nil

	default:
		return nil, fmt.Errorf("unknown store driver %q", opts.Driver)
	}
}
