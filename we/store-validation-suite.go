package we

import (
	"context"
	"math/rand"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jaswdr/faker"
	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
)

var (
	entropyLock sync.Mutex
	entropy     = ulid.Monotonic(rand.New(rand.NewSource(time.Now().UnixNano())), 0)
)

// NewStateStoreValidationSuite checks the behaviour every StateStore must
// share. Backends run it from their own tests.
func NewStateStoreValidationSuite(ctx context.Context, store StateStore) *StateStoreValidationSuite {
	return &StateStoreValidationSuite{
		store: store,
		ctx:   ctx,
		faker: faker.New(),
	}
}

type StateStoreValidationSuite struct {
	store StateStore
	ctx   context.Context
	faker faker.Faker
}

func (s *StateStoreValidationSuite) Run(t *testing.T) {
	t.Run("loads an empty slot", s.LoadsEmptySlot)
	t.Run("saves and loads state", s.SavesAndLoads)
	t.Run("replaces state on save", s.ReplacesState)
	t.Run("returns a revision conflict on an initial revision", s.RevisionConflictOnInitialRevision)
	t.Run("returns a revision conflict on a stale revision", s.RevisionConflictOnStaleRevision)
	t.Run("saves on the expected revision", s.SavesOnExpectedRevision)
	t.Run("records metadata", s.RecordsMetadata)
	t.Run("removes state", s.RemovesState)
}

func (s *StateStoreValidationSuite) MakeTestContractId() ContractId {
	entropyLock.Lock()
	defer entropyLock.Unlock()

	return ContractId{
		Kind: "go-test",
		Key:  ulid.MustNew(ulid.Timestamp(time.Now()), entropy).String(),
	}
}

func (s *StateStoreValidationSuite) MakeTestState() Data {
	return Data{
		Encoding: BinaryEncoding,
		Data:     []byte{byte(s.faker.IntBetween(0, 255))},
	}
}

func (s *StateStoreValidationSuite) LoadsEmptySlot(t *testing.T) {
	id := s.MakeTestContractId()
	record, err := s.store.Load(s.ctx, id)
	if !assert.Nil(t, err) {
		return
	}

	assert.Equal(t, InitialRevision, record.Revision)
	assert.False(t, record.Initialized())
	assert.Empty(t, record.Data.Data)
}

func (s *StateStoreValidationSuite) SavesAndLoads(t *testing.T) {
	id := s.MakeTestContractId()
	state := s.MakeTestState()

	revision, err := s.store.Save(s.ctx, id, Options(), state)
	if !assert.Nil(t, err) {
		return
	}
	assert.NotEqual(t, InitialRevision, revision)

	record, err := s.store.Load(s.ctx, id)
	if !assert.Nil(t, err) {
		return
	}

	assert.Equal(t, revision, record.Revision)
	assert.EqualValues(t, id, record.Contract)
	assert.Equal(t, state, record.Data)
	assert.NotEmpty(t, record.Timestamp)
}

func (s *StateStoreValidationSuite) ReplacesState(t *testing.T) {
	id := s.MakeTestContractId()

	_, err := s.store.Save(s.ctx, id, Options(), Data{Encoding: BinaryEncoding, Data: []byte{1}})
	if !assert.Nil(t, err) {
		return
	}

	second, err := s.store.Save(s.ctx, id, Options(), Data{Encoding: BinaryEncoding, Data: []byte{2}})
	if !assert.Nil(t, err) {
		return
	}

	record, err := s.store.Load(s.ctx, id)
	if !assert.Nil(t, err) {
		return
	}

	assert.Equal(t, second, record.Revision)
	assert.Equal(t, []byte{2}, record.Data.Data)
}

func (s *StateStoreValidationSuite) RevisionConflictOnInitialRevision(t *testing.T) {
	id := s.MakeTestContractId()
	state := s.MakeTestState()

	_, err := s.store.Save(s.ctx, id, Options(), state)
	if !assert.Nil(t, err) {
		return
	}

	_, err = s.store.Save(s.ctx, id, Options(WithExpectedRevision(InitialRevision)), state)
	assert.ErrorIs(t, err, RevisionConflict)
}

func (s *StateStoreValidationSuite) RevisionConflictOnStaleRevision(t *testing.T) {
	id := s.MakeTestContractId()
	state := s.MakeTestState()

	first, err := s.store.Save(s.ctx, id, Options(), state)
	if !assert.Nil(t, err) {
		return
	}

	_, err = s.store.Save(s.ctx, id, Options(WithExpectedRevision(first)), state)
	if !assert.Nil(t, err) {
		return
	}

	_, err = s.store.Save(s.ctx, id, Options(WithExpectedRevision(first)), state)
	assert.ErrorIs(t, err, RevisionConflict)
}

func (s *StateStoreValidationSuite) SavesOnExpectedRevision(t *testing.T) {
	id := s.MakeTestContractId()

	first, err := s.store.Save(s.ctx, id, Options(WithExpectedRevision(InitialRevision)), Data{Encoding: BinaryEncoding, Data: []byte{7}})
	if !assert.Nil(t, err) {
		return
	}

	second, err := s.store.Save(s.ctx, id, Options(WithExpectedRevision(first)), Data{Encoding: BinaryEncoding, Data: []byte{9}})
	if !assert.Nil(t, err) {
		return
	}
	assert.NotEqual(t, first, second)

	record, err := s.store.Load(s.ctx, id)
	if !assert.Nil(t, err) {
		return
	}
	assert.Equal(t, second, record.Revision)
	assert.Equal(t, []byte{9}, record.Data.Data)
}

func (s *StateStoreValidationSuite) RecordsMetadata(t *testing.T) {
	id := s.MakeTestContractId()
	correlationId := CorrelationID(uuid.NewString())

	_, err := s.store.Save(s.ctx, id, Options(WithCorrelationId(correlationId), WithMethod("increment")), s.MakeTestState())
	if !assert.Nil(t, err) {
		return
	}

	record, err := s.store.Load(s.ctx, id)
	if !assert.Nil(t, err) {
		return
	}

	assert.Equal(t, correlationId, record.Metadata.CorrelationId)
	assert.Equal(t, MethodName("increment"), record.Metadata.Method)
}

func (s *StateStoreValidationSuite) RemovesState(t *testing.T) {
	id := s.MakeTestContractId()

	_, err := s.store.Save(s.ctx, id, Options(), s.MakeTestState())
	if !assert.Nil(t, err) {
		return
	}

	removed, err := s.store.Remove(s.ctx, id)
	if !assert.Nil(t, err) {
		return
	}
	assert.True(t, removed)

	record, err := s.store.Load(s.ctx, id)
	if !assert.Nil(t, err) {
		return
	}
	assert.Equal(t, InitialRevision, record.Revision)

	removed, err = s.store.Remove(s.ctx, id)
	if !assert.Nil(t, err) {
		return
	}
	assert.False(t, removed)
}
