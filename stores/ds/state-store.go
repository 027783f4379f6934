package ds

import (
	"context"
	"errors"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/aws/smithy-go"

	"github.com/weegigs/wee-ledger/we"
)

type DynamoStateStore struct {
	db       *dynamodb.Client
	table    string
	revision *we.RevisionGenerator
}

type StateStoreTableName string

func (name StateStoreTableName) String() string {
	return string(name)
}

func NewStateStore(db *dynamodb.Client, table StateStoreTableName) *DynamoStateStore {
	return &DynamoStateStore{db: db, table: table.String(), revision: we.NewRevisionGenerator()}
}

func (ds *DynamoStateStore) Load(ctx context.Context, id we.ContractId) (we.StateRecord, error) {
	key, err := attributevalue.MarshalMap(keyFor(id))
	if err != nil {
		return we.StateRecord{}, err
	}

	out, err := ds.db.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(ds.table),
		Key:            key,
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return we.StateRecord{}, err
	}

	if len(out.Item) == 0 {
		return we.EmptyRecord(id), nil
	}

	var item stateItem
	if err := attributevalue.UnmarshalMap(out.Item, &item); err != nil {
		return we.StateRecord{}, err
	}

	return item.Record()
}

func (ds *DynamoStateStore) Save(ctx context.Context, id we.ContractId, options we.SaveOptions, state we.Data) (we.Revision, error) {
	now := time.Now()
	revision := ds.revision.NewRevision(now)

	item, err := attributevalue.MarshalMap(stateItem{
		PartitionKey:  partitionKey(id),
		SortKey:       stateSortKey,
		Revision:      revision,
		Timestamp:     we.TimestampFromTime(now),
		CorrelationId: options.CorrelationId,
		Method:        options.Method,
		Encoding:      state.Encoding,
		Data:          state.Data,
	})
	if err != nil {
		return "", err
	}

	put := &dynamodb.PutItemInput{
		TableName: aws.String(ds.table),
		Item:      item,
	}

	if condition, ok := revisionCondition(options.ExpectedRevision); ok {
		expr, err := expression.NewBuilder().WithCondition(condition).Build()
		if err != nil {
			return "", err
		}

		put.ConditionExpression = expr.Condition()
		put.ExpressionAttributeNames = expr.Names()
		put.ExpressionAttributeValues = expr.Values()
	}

	if _, err := ds.db.PutItem(ctx, put); err != nil {
		return "", maybeRevisionConflict(err)
	}

	return revision, nil
}

func (ds *DynamoStateStore) Remove(ctx context.Context, id we.ContractId) (bool, error) {
	key, err := attributevalue.MarshalMap(keyFor(id))
	if err != nil {
		return false, err
	}

	out, err := ds.db.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName:    aws.String(ds.table),
		Key:          key,
		ReturnValues: types.ReturnValueAllOld,
	})
	if err != nil {
		return false, err
	}

	return len(out.Attributes) > 0, nil
}

func revisionCondition(expectedRevision we.Revision) (expression.ConditionBuilder, bool) {
	switch expectedRevision {
	case "":
		return expression.ConditionBuilder{}, false
	case we.InitialRevision:
		return expression.AttributeNotExists(expression.Name("revision")), true
	default:
		return expression.Name("revision").Equal(expression.Value(expectedRevision)), true
	}
}

func maybeRevisionConflict(err error) error {
	var conditional *types.ConditionalCheckFailedException
	if errors.As(err, &conditional) {
		return we.RevisionConflict
	}

	var api smithy.APIError
	if errors.As(err, &api) && api.ErrorCode() == "ConditionalCheckFailedException" {
		return we.RevisionConflict
	}

	return err
}
