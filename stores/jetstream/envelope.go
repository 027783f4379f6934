package jetstream

import (
	"github.com/weegigs/wee-ledger/we"
)

// StateEnvelope is the message body stored on a contract's subject. The
// stream keeps one message per subject, so the latest envelope is the state.
type StateEnvelope struct {
	Contract we.ContractId     `json:"contract"`
	Millis   uint64            `json:"millis"`
	Metadata we.RecordMetadata `json:"metadata"`
	Data     we.Data           `json:"data"`
}
