package ds

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// DynamoTestStore starts DynamoDB Local in a container. The returned func
// terminates the container.
func DynamoTestStore(ctx context.Context) (*DynamoStateStore, func(), error) {
	db, err := testcontainers.GenericContainer(
		ctx, testcontainers.GenericContainerRequest{
			ContainerRequest: testcontainers.ContainerRequest{
				Image:        "amazon/dynamodb-local",
				ExposedPorts: []string{"8000/tcp"},
				WaitingFor:   wait.ForListeningPort("8000"),
			},
			Started: true,
		},
	)
	if err != nil {
		return nil, nil, err
	}

	terminate := func() {
		if err := db.Terminate(ctx); err != nil {
			panic(err)
		}
	}

	host, err := db.Host(ctx)
	if err != nil {
		terminate()
		return nil, nil, err
	}

	port, err := db.MappedPort(ctx, "8000")
	if err != nil {
		terminate()
		return nil, nil, err
	}

	customResolver := aws.EndpointResolverWithOptionsFunc(
		func(service, region string, options ...interface{}) (aws.Endpoint, error) {
			if service == dynamodb.ServiceID {
				return aws.Endpoint{
					PartitionID:   "aws",
					URL:           fmt.Sprintf("http://%s:%s", host, port.Port()),
					SigningRegion: "ap-southeast-2",
				}, nil
			}
			return aws.Endpoint{}, fmt.Errorf("unknown endpoint requested")
		},
	)

	cfg, err := config.LoadDefaultConfig(
		ctx,
		config.WithRegion("us-west-2"),
		config.WithEndpointResolverWithOptions(customResolver),
		config.WithCredentialsProvider(aws.CredentialsProviderFunc(
			func(context.Context) (aws.Credentials, error) {
				return aws.Credentials{AccessKeyID: "test", SecretAccessKey: "test", Source: "dynamodb-local"}, nil
			},
		)),
	)
	if err != nil {
		terminate()
		return nil, nil, err
	}

	client := dynamodb.NewFromConfig(cfg)

	const table = "test-state"
	if err := CreateTable(ctx, client, table); err != nil {
		terminate()
		return nil, nil, err
	}

	return NewStateStore(client, StateStoreTableName(table)), terminate, nil
}
