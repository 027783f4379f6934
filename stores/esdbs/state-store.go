package esdbs

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/EventStore/EventStore-Client-Go/esdb"
	"github.com/goccy/go-json"
	"github.com/pkg/errors"

	"github.com/weegigs/wee-ledger/we"
)

const stateEventType = "state"

// ESDBStateStore keeps one stream per contract. The newest event in the stream
// is the current state.
//
// TODO: set $maxCount=1 on new streams so superseded state events are scavenged.
type ESDBStateStore struct {
	db *esdb.Client
}

func NewStateStore(client *esdb.Client) *ESDBStateStore {
	return &ESDBStateStore{db: client}
}

func (es *ESDBStateStore) Close() error {
	return es.db.Close()
}

type stateMetadata struct {
	Encoding      string           `json:"encoding"`
	CorrelationId we.CorrelationID `json:"$correlationId,omitempty"`
	Method        we.MethodName    `json:"method,omitempty"`
}

// esdb numbers the first event 0, which would collide with InitialRevision.
func revisionOf(eventNumber uint64) we.Revision {
	return we.Revision(fmt.Sprintf("%026x", eventNumber+1))
}

func expectedRevision(revision we.Revision) (esdb.ExpectedRevision, error) {
	switch revision {
	case "":
		return esdb.Any{}, nil
	case we.InitialRevision:
		return esdb.NoStream{}, nil
	}

	r, err := strconv.ParseUint(revision.String(), 16, 64)
	if err != nil {
		return nil, errors.Wrap(err, "invalid expected revision")
	}

	if r == 0 {
		return nil, errors.New("invalid expected revision")
	}

	return esdb.Revision(r - 1), nil
}

func (es *ESDBStateStore) Save(ctx context.Context, id we.ContractId, options we.SaveOptions, state we.Data) (we.Revision, error) {
	expected, err := expectedRevision(options.ExpectedRevision)
	if err != nil {
		return "", err
	}

	md, err := json.Marshal(stateMetadata{
		Encoding:      state.Encoding,
		CorrelationId: options.CorrelationId,
		Method:        options.Method,
	})
	if err != nil {
		return "", errors.Wrap(err, "failed to marshal metadata")
	}

	contentType := esdb.BinaryContentType
	if state.Encoding == we.JsonEncoding {
		contentType = esdb.JsonContentType
	}

	event := esdb.EventData{
		ContentType: contentType,
		EventType:   stateEventType,
		Data:        state.Data,
		Metadata:    md,
	}

	result, err := es.db.AppendToStream(ctx, id.Encode().String(), esdb.AppendToStreamOptions{ExpectedRevision: expected}, event)
	if err != nil {
		if errors.Is(err, esdb.ErrWrongExpectedStreamRevision) {
			return "", we.RevisionConflict
		}

		return "", errors.Wrap(err, "failed to append to stream")
	}

	return revisionOf(result.NextExpectedVersion), nil
}

func (es *ESDBStateStore) Load(ctx context.Context, id we.ContractId) (we.StateRecord, error) {
	stream, err := es.db.ReadStream(
		ctx, id.Encode().String(), esdb.ReadStreamOptions{
			Direction: esdb.Backwards,
			From:      esdb.End{},
		}, 1,
	)
	if err != nil {
		if isMissing(err) {
			return we.EmptyRecord(id), nil
		}

		return we.StateRecord{}, errors.Wrap(err, "failed to read stream")
	}
	defer stream.Close()

	event, err := stream.Recv()
	if err != nil {
		if isMissing(err) {
			return we.EmptyRecord(id), nil
		}

		return we.StateRecord{}, errors.Wrap(err, "failed to read state")
	}

	e := event.OriginalEvent()

	var metadata stateMetadata
	if len(e.UserMetadata) > 0 {
		if err := json.Unmarshal(e.UserMetadata, &metadata); err != nil {
			return we.StateRecord{}, errors.Wrap(err, "failed to unmarshal metadata")
		}
	}

	return we.StateRecord{
		Contract:  id,
		Revision:  revisionOf(e.EventNumber),
		Timestamp: we.TimestampFromTime(e.CreatedDate),
		Metadata: we.RecordMetadata{
			CorrelationId: metadata.CorrelationId,
			Method:        metadata.Method,
		},
		Data: we.Data{
			Encoding: metadata.Encoding,
			Data:     e.Data,
		},
	}, nil
}

func (es *ESDBStateStore) Remove(ctx context.Context, id we.ContractId) (bool, error) {
	record, err := es.Load(ctx, id)
	if err != nil {
		return false, err
	}

	if !record.Initialized() {
		return false, nil
	}

	_, err = es.db.DeleteStream(ctx, id.Encode().String(), esdb.DeleteStreamOptions{ExpectedRevision: esdb.Any{}})
	if err != nil {
		if isMissing(err) {
			return false, nil
		}

		return false, errors.Wrap(err, "failed to delete stream")
	}

	return true, nil
}

func isMissing(err error) bool {
	return errors.Is(err, esdb.ErrStreamNotFound) || errors.Is(err, io.EOF)
}
