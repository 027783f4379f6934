package ds

import (
	"context"
	"errors"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"go.opentelemetry.io/contrib/instrumentation/github.com/aws/aws-sdk-go-v2/otelaws"

	"github.com/google/wire"
	"github.com/weegigs/wee-ledger/we"
)

const TableNameVariable = "LEDGER_DYNAMODB_TABLE"

var Live = wire.NewSet(
	DefaultAWSConfig,
	Client,
	LiveTableName,
	NewStateStore,
	wire.Bind(new(we.StateStore), new(*DynamoStateStore)),
)

var Local = wire.NewSet(
	LocalDynamoStore,
	wire.Bind(new(we.StateStore), new(*DynamoStateStore)),
)

var Test = wire.NewSet(
	TestStore,
	wire.Bind(new(we.StateStore), new(*DynamoStateStore)),
)

func LiveTableName() (StateStoreTableName, error) {
	table := os.Getenv(TableNameVariable)
	if len(table) == 0 {
		return "", errors.New(TableNameVariable + " is not set")
	}

	return StateStoreTableName(table), nil
}

func LocalTableName() StateStoreTableName {
	return StateStoreTableName("wee-ledger")
}

func TestStore(ctx context.Context) (*DynamoStateStore, func(), error) {
	return DynamoTestStore(ctx)
}

func DefaultAWSConfig(ctx context.Context) (aws.Config, error) {
	return config.LoadDefaultConfig(ctx)
}

func Client(cfg aws.Config) *dynamodb.Client {
	otelaws.AppendMiddlewares(&cfg.APIOptions)
	return dynamodb.NewFromConfig(cfg)
}
