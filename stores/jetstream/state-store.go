package jetstream

import (
	"context"
	"errors"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/oklog/ulid/v2"

	"github.com/weegigs/wee-ledger/internal"
	"github.com/weegigs/wee-ledger/we"
)

type StateStoreOption func(*StateStore)

const prefix = "state."

// NewStateStore creates (or binds to) a stream retaining a single message per
// contract subject.
func NewStateStore(name string, connection *nats.Conn, options ...StateStoreOption) (*StateStore, error) {
	stream, err := connection.JetStream()
	if err != nil {
		return nil, err
	}

	_, err = stream.AddStream(&nats.StreamConfig{
		Name:              name,
		Description:       "contract state for " + name,
		Subjects:          []string{prefix + ">"},
		MaxMsgsPerSubject: 1,
	})
	if err != nil {
		return nil, err
	}

	store := &StateStore{
		name:   name,
		stream: stream,
	}

	for _, option := range options {
		option(store)
	}

	if store.clock == nil {
		store.clock = defaultClock{}
	}

	if store.marshaller == nil {
		store.marshaller = JSONMarshaller{}
	}

	return store, nil
}

type StateStore struct {
	name       string
	stream     nats.JetStreamContext
	clock      Clock
	marshaller Marshaller
}

func subject(id we.ContractId) (string, error) {
	if err := id.Validate(); err != nil {
		return "", err
	}

	return prefix + id.Encode().String(), nil
}

func (s *StateStore) Save(ctx context.Context, id we.ContractId, options we.SaveOptions, state we.Data) (we.Revision, error) {
	target, err := subject(id)
	if err != nil {
		return "", err
	}

	now := s.clock.Now()
	envelope := StateEnvelope{
		Contract: id,
		Millis:   ulid.Timestamp(now),
		Metadata: options.RecordMetadata,
		Data:     state,
	}

	bytes, err := s.marshaller.Marshal(envelope)
	if err != nil {
		return "", err
	}

	var opts = []nats.PubOpt{nats.Context(ctx)}

	expected := options.ExpectedRevision
	if expected != "" {
		if expected == we.InitialRevision {
			opts = append(opts, nats.ExpectLastSequencePerSubject(0))
		} else {
			sequenceNumber, err := internal.DecodeSequenceNumber(expected)
			if err != nil {
				return "", err
			}

			opts = append(opts, nats.ExpectLastSequencePerSubject(sequenceNumber))
		}
	}

	ack, err := s.stream.Publish(target, bytes, opts...)
	if err != nil {
		var api *nats.APIError
		if errors.As(err, &api) && api.ErrorCode == nats.JSErrCodeStreamWrongLastSequence {
			return "", we.RevisionConflict
		}
		return "", err
	}

	return internal.EncodeRevision(envelope.Millis, ack.Sequence, 0)
}

func (s *StateStore) Load(ctx context.Context, id we.ContractId) (we.StateRecord, error) {
	msg, err := s.latest(ctx, id)
	if err != nil {
		return we.StateRecord{}, err
	}

	if msg == nil {
		return we.EmptyRecord(id), nil
	}

	envelope := StateEnvelope{}
	if err := s.marshaller.Unmarshal(msg.Data, &envelope); err != nil {
		return we.StateRecord{}, err
	}

	revision, err := internal.EncodeRevision(envelope.Millis, msg.Sequence, 0)
	if err != nil {
		return we.StateRecord{}, err
	}

	return we.StateRecord{
		Contract:  id,
		Revision:  revision,
		Timestamp: we.TimestampFromTime(time.UnixMilli(int64(envelope.Millis))),
		Metadata:  envelope.Metadata,
		Data:      envelope.Data,
	}, nil
}

func (s *StateStore) Remove(ctx context.Context, id we.ContractId) (bool, error) {
	msg, err := s.latest(ctx, id)
	if err != nil {
		return false, err
	}

	if msg == nil {
		return false, nil
	}

	if err := s.stream.DeleteMsg(s.name, msg.Sequence, nats.Context(ctx)); err != nil {
		if errors.Is(err, nats.ErrMsgNotFound) {
			return false, nil
		}
		return false, err
	}

	return true, nil
}

func (s *StateStore) latest(ctx context.Context, id we.ContractId) (*nats.RawStreamMsg, error) {
	target, err := subject(id)
	if err != nil {
		return nil, err
	}

	msg, err := s.stream.GetLastMsg(s.name, target, nats.Context(ctx))
	if err != nil {
		if errors.Is(err, nats.ErrMsgNotFound) {
			return nil, nil
		}

		return nil, err
	}

	return msg, nil
}
