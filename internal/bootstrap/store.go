package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awsdynamodb "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	awsssm "github.com/aws/aws-sdk-go-v2/service/ssm"

	"portfolio-contact/internal/config"
	"portfolio-contact/internal/integrations/paramstore"
	"portfolio-contact/internal/repository"
)

// AWSConfigLoader returns the AWS SDK configuration. It is only invoked for the
// backends that need AWS (DynamoDB, or Mongo with its URI in SSM).
type AWSConfigLoader func(ctx context.Context) (aws.Config, error)

// DefaultAWSConfig loads the SDK default credential chain.
func DefaultAWSConfig(ctx context.Context) (aws.Config, error) {
	return awsconfig.LoadDefaultConfig(ctx)
}

// OpenStore constructs the store selected by cfg.StoreBackend. The caller owns
// the returned store and must Close it at shutdown.
func OpenStore(ctx context.Context, cfg config.Config, loadAWS AWSConfigLoader, log *slog.Logger) (repository.Store, error) {
	switch cfg.StoreBackend {
	case config.BackendMongo:
		uri := cfg.MongoURI
		if uri == "" {
			awsCfg, err := loadAWS(ctx)
			if err != nil {
				return nil, fmt.Errorf("bootstrap: load AWS config: %w", err)
			}
			ps, err := paramstore.New(awsssm.NewFromConfig(awsCfg))
			if err != nil {
				return nil, fmt.Errorf("bootstrap: create SSM client: %w", err)
			}
			if uri, err = paramstore.Resolve(ctx, ps, "", cfg.MongoURIParam); err != nil {
				return nil, fmt.Errorf("bootstrap: resolve mongo uri: %w", err)
			}
		}
		log.Info("connecting to MongoDB", "database", cfg.MongoDatabase, "collection", cfg.MongoCollection)
		return storeOrErr(repository.ConnectMongo(ctx, uri, cfg.MongoDatabase, cfg.MongoCollection))

	case config.BackendDynamoDB:
		awsCfg, err := loadAWS(ctx)
		if err != nil {
			return nil, fmt.Errorf("bootstrap: load AWS config: %w", err)
		}
		log.Info("using DynamoDB store", "table", cfg.DynamoTable)
		return storeOrErr(repository.NewDynamoStore(awsdynamodb.NewFromConfig(awsCfg), cfg.DynamoTable))

	case config.BackendBadger:
		log.Info("using Badger store", "path", cfg.BadgerPath)
		return storeOrErr(repository.OpenBadger(cfg.BadgerPath))
	}
	return nil, fmt.Errorf("bootstrap: unknown store backend %q", cfg.StoreBackend)
}

// storeOrErr keeps a typed nil store from escaping as a non-nil interface.
func storeOrErr[S repository.Store](s S, err error) (repository.Store, error) {
	if err != nil {
		return nil, err
	}
	return s, nil
}
