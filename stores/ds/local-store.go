package ds

import (
	"context"
	"errors"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/rs/zerolog/log"
)

type LocalEndpoint string

// LocalDynamoStore connects to a DynamoDB Local instance and creates the state
// table on first use.
func LocalDynamoStore(ctx context.Context, endpoint LocalEndpoint, table StateStoreTableName) (*DynamoStateStore, error) {
	cfg, err := localConfig(ctx, string(endpoint))
	if err != nil {
		return nil, err
	}

	client := dynamodb.NewFromConfig(cfg)

	exists, err := tableExists(ctx, client, table.String())
	if err != nil {
		return nil, err
	}

	if !exists {
		if err := CreateTable(ctx, client, table.String()); err != nil {
			return nil, err
		}
	}

	return NewStateStore(client, table), nil
}

func localConfig(ctx context.Context, endpoint string) (aws.Config, error) {
	if endpoint == "" {
		endpoint = "http://localhost:8000"
	}

	return config.LoadDefaultConfig(ctx,
		config.WithRegion("us-east-1"),
		config.WithEndpointResolver(aws.EndpointResolverFunc(
			func(service, region string) (aws.Endpoint, error) {
				return aws.Endpoint{URL: endpoint}, nil
			})),
		config.WithCredentialsProvider(credentials.StaticCredentialsProvider{
			Value: aws.Credentials{
				AccessKeyID: "dummy", SecretAccessKey: "dummy", SessionToken: "dummy",
				Source: "Hard-coded credentials; values are irrelevant for local DynamoDB",
			},
		}))
}

func tableExists(ctx context.Context, client *dynamodb.Client, name string) (bool, error) {
	required := &dynamodb.DescribeTableInput{TableName: aws.String(name)}
	description, err := client.DescribeTable(ctx, required)
	if err != nil {
		var errorType *types.ResourceNotFoundException
		if errors.As(err, &errorType) {
			return false, nil
		}
		return false, err
	}

	if description.Table.TableStatus != types.TableStatusActive {
		return false, errors.New("state table exists but is not active")
	}

	return true, nil
}

func CreateTable(ctx context.Context, client *dynamodb.Client, table string) error {
	log.Info().Str("table", table).Msg("creating state table")

	_, err := client.CreateTable(
		ctx, &dynamodb.CreateTableInput{
			TableName: aws.String(table),
			AttributeDefinitions: []types.AttributeDefinition{
				{AttributeName: aws.String("pk"), AttributeType: types.ScalarAttributeTypeS},
				{AttributeName: aws.String("sk"), AttributeType: types.ScalarAttributeTypeS},
			},
			KeySchema: []types.KeySchemaElement{
				{AttributeName: aws.String("pk"), KeyType: types.KeyTypeHash},
				{AttributeName: aws.String("sk"), KeyType: types.KeyTypeRange},
			},
			BillingMode: types.BillingModePayPerRequest,
		},
	)

	if err != nil {
		return err
	}

	return waitForTable(ctx, client, table)
}

func waitForTable(ctx context.Context, client *dynamodb.Client, name string) error {
	required := &dynamodb.DescribeTableInput{TableName: aws.String(name)}
	return dynamodb.NewTableExistsWaiter(client).Wait(ctx, required, 2*time.Minute)
}
