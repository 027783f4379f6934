package we

import (
	"context"
	"errors"
)

type CorrelationID string

func (id CorrelationID) String() string {
	return string(id)
}

type RecordMetadata struct {
	CorrelationId CorrelationID `json:"correlationId,omitempty"`
	Method        MethodName    `json:"method,omitempty"`
}

// StateRecord is the persisted slot of a contract. A record whose revision is
// InitialRevision has never been saved and carries no data.
type StateRecord struct {
	Contract  ContractId     `json:"contract"`
	Revision  Revision       `json:"revision"`
	Timestamp Timestamp      `json:"timestamp,omitempty"`
	Metadata  RecordMetadata `json:"metadata"`
	Data      Data           `json:"data"`
}

func (r *StateRecord) Initialized() bool {
	return r.Revision != InitialRevision
}

func EmptyRecord(id ContractId) StateRecord {
	return StateRecord{Contract: id, Revision: InitialRevision}
}

type StateLoader = func(ctx context.Context, id ContractId) (StateRecord, error)

// StateStore keeps exactly one record per contract. Save replaces the record;
// it never appends history.
type StateStore interface {
	Load(ctx context.Context, id ContractId) (StateRecord, error)
	Save(ctx context.Context, id ContractId, options SaveOptions, state Data) (Revision, error)
	Remove(ctx context.Context, id ContractId) (bool, error)
}

var RevisionConflict = errors.New("revision-conflict")

// SaveOptions.ExpectedRevision guards the write: empty saves unconditionally,
// InitialRevision requires an empty slot, anything else must match the
// stored revision.
type SaveOptions struct {
	RecordMetadata
	ExpectedRevision Revision
}

type SaveOption func(modifier *SaveOptions)

func Options(options ...SaveOption) SaveOptions {
	modifiers := &SaveOptions{}
	for _, option := range options {
		option(modifiers)
	}

	return *modifiers
}

func WithExpectedRevision(expectedRevision Revision) SaveOption {
	return func(modifier *SaveOptions) {
		modifier.ExpectedRevision = expectedRevision
	}
}

func WithCorrelationId(correlationId CorrelationID) SaveOption {
	return func(modifier *SaveOptions) {
		modifier.RecordMetadata.CorrelationId = correlationId
	}
}

func WithMethod(method MethodName) SaveOption {
	return func(modifier *SaveOptions) {
		modifier.RecordMetadata.Method = method
	}
}
