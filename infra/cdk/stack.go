package main

import (
	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/aws-cdk-go/awscdk/v2/awsdynamodb"
	"github.com/aws/constructs-go/constructs/v10"
	"github.com/aws/jsii-runtime-go"
)

type LedgerStackProps struct {
	awscdk.StackProps
	Retain bool
}

// NewLedgerStack provisions the DynamoDB table used by the dynamodb store.
func NewLedgerStack(scope constructs.Construct, id string, props *LedgerStackProps) awscdk.Stack {
	var sprops awscdk.StackProps
	if props != nil {
		sprops = props.StackProps
	}
	stack := awscdk.NewStack(scope, &id, &sprops)

	removal := awscdk.RemovalPolicy_DESTROY
	if props != nil && props.Retain {
		removal = awscdk.RemovalPolicy_RETAIN
	}

	table := awsdynamodb.NewTable(stack, jsii.String("State"), &awsdynamodb.TableProps{
		PartitionKey:  &awsdynamodb.Attribute{Name: jsii.String("pk"), Type: awsdynamodb.AttributeType_STRING},
		SortKey:       &awsdynamodb.Attribute{Name: jsii.String("sk"), Type: awsdynamodb.AttributeType_STRING},
		BillingMode:   awsdynamodb.BillingMode_PAY_PER_REQUEST,
		RemovalPolicy: removal,
	})

	awscdk.NewCfnOutput(stack, jsii.String("StateTableName"), &awscdk.CfnOutputProps{
		Value:       table.TableName(),
		Description: jsii.String("value for LEDGER_DYNAMODB_TABLE"),
	})

	return stack
}
