// Package memory keeps contract state in process. State is lost on exit.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/weegigs/wee-ledger/we"
)

type StateStore struct {
	lk       sync.RWMutex
	records  map[we.EncodedContractId]we.StateRecord
	revision *we.RevisionGenerator
}

func NewStateStore() *StateStore {
	return &StateStore{
		records:  make(map[we.EncodedContractId]we.StateRecord),
		revision: we.NewRevisionGenerator(),
	}
}

func (s *StateStore) Load(_ context.Context, id we.ContractId) (we.StateRecord, error) {
	s.lk.RLock()
	defer s.lk.RUnlock()

	record, ok := s.records[id.Encode()]
	if !ok {
		return we.EmptyRecord(id), nil
	}

	record.Data.Data = append([]byte(nil), record.Data.Data...)
	return record, nil
}

func (s *StateStore) Save(_ context.Context, id we.ContractId, options we.SaveOptions, state we.Data) (we.Revision, error) {
	s.lk.Lock()
	defer s.lk.Unlock()

	key := id.Encode()
	current, exists := s.records[key]

	switch expected := options.ExpectedRevision; {
	case expected == "":
	case expected == we.InitialRevision && exists:
		return "", we.RevisionConflict
	case expected != we.InitialRevision && (!exists || current.Revision != expected):
		return "", we.RevisionConflict
	}

	now := time.Now()
	revision := s.revision.NewRevision(now)

	s.records[key] = we.StateRecord{
		Contract:  id,
		Revision:  revision,
		Timestamp: we.TimestampFromTime(now),
		Metadata:  options.RecordMetadata,
		Data: we.Data{
			Encoding: state.Encoding,
			Data:     append([]byte(nil), state.Data...),
		},
	}

	return revision, nil
}

func (s *StateStore) Remove(_ context.Context, id we.ContractId) (bool, error) {
	s.lk.Lock()
	defer s.lk.Unlock()

	key := id.Encode()
	_, exists := s.records[key]
	delete(s.records, key)

	return exists, nil
}
