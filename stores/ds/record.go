package ds

import (
	"github.com/weegigs/wee-ledger/we"
)

const stateSortKey = "state"

// stateItem is the only item kept per contract.
type stateItem struct {
	PartitionKey  string           `dynamodbav:"pk"`
	SortKey       string           `dynamodbav:"sk"`
	Revision      we.Revision      `dynamodbav:"revision"`
	Timestamp     we.Timestamp     `dynamodbav:"timestamp"`
	CorrelationId we.CorrelationID `dynamodbav:"correlationId,omitempty"`
	Method        we.MethodName    `dynamodbav:"method,omitempty"`
	Encoding      string           `dynamodbav:"encoding"`
	Data          []byte           `dynamodbav:"data"`
}

type itemKey struct {
	PartitionKey string `dynamodbav:"pk"`
	SortKey      string `dynamodbav:"sk"`
}

func partitionKey(id we.ContractId) string {
	return id.Encode().String()
}

func keyFor(id we.ContractId) itemKey {
	return itemKey{PartitionKey: partitionKey(id), SortKey: stateSortKey}
}

func (item *stateItem) Record() (we.StateRecord, error) {
	id, err := we.EncodedContractId(item.PartitionKey).Decode()
	if err != nil {
		return we.StateRecord{}, err
	}

	return we.StateRecord{
		Contract:  *id,
		Revision:  item.Revision,
		Timestamp: item.Timestamp,
		Metadata: we.RecordMetadata{
			CorrelationId: item.CorrelationId,
			Method:        item.Method,
		},
		Data: we.Data{
			Encoding: item.Encoding,
			Data:     item.Data,
		},
	}, nil
}
