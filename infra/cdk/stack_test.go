package main

import (
	"os/exec"
	"testing"

	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/aws-cdk-go/awscdk/v2/assertions"
	"github.com/aws/jsii-runtime-go"
)

func TestLedgerStack(t *testing.T) {
	if _, err := exec.LookPath("node"); err != nil {
		t.Skip("the cdk runtime requires node")
	}
	defer jsii.Close()

	app := awscdk.NewApp(nil)
	stack := NewLedgerStack(app, "TestStack", nil)

	template := assertions.Template_FromStack(stack)
	template.HasResourceProperties(jsii.String("AWS::DynamoDB::Table"), map[string]any{
		"BillingMode": "PAY_PER_REQUEST",
		"KeySchema": []any{
			map[string]any{"AttributeName": "pk", "KeyType": "HASH"},
			map[string]any{"AttributeName": "sk", "KeyType": "RANGE"},
		},
	})
	template.HasOutput(jsii.String("StateTableName"), map[string]any{})
}
