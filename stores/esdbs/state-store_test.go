package esdbs

import (
	"context"
	"testing"

	"github.com/EventStore/EventStore-Client-Go/esdb"
	"github.com/stretchr/testify/assert"

	"github.com/weegigs/wee-ledger/we"
)

func TestStateStore(t *testing.T) {
	if testing.Short() {
		t.Skip("requires a container runtime")
	}

	ctx := context.Background()
	store, cleanup, err := NewESDBTestStore(ctx)
	if err != nil {
		t.Skipf("eventstoredb unavailable: %+v", err)
	}
	defer cleanup()

	t.Run("esdb state store validation", func(t *testing.T) {
		suite := we.NewStateStoreValidationSuite(ctx, store)
		suite.Run(t)
	})

	t.Run("newest event is the state", func(t *testing.T) {
		var testId = we.ContractId{Kind: "counter", Key: "newest-event"}

		for i := 0; i < 10; i++ {
			_, err := store.Save(ctx, testId, we.Options(), we.Data{Encoding: we.BinaryEncoding, Data: []byte{byte(i)}})
			if !assert.Nil(t, err) {
				return
			}
		}

		record, err := store.Load(ctx, testId)
		if !assert.Nil(t, err) {
			return
		}

		assert.Equal(t, []byte{9}, record.Data.Data)
		assert.Equal(t, we.Revision("0000000000000000000000000a"), record.Revision)
	})
}

func TestExpectedRevision(t *testing.T) {
	t.Run("maps the initial revision to no stream", func(t *testing.T) {
		expected, err := expectedRevision(we.InitialRevision)
		assert.Nil(t, err)
		assert.Equal(t, esdb.NoStream{}, expected)
	})

	t.Run("parses hex revisions", func(t *testing.T) {
		expected, err := expectedRevision(revisionOf(26))
		assert.Nil(t, err)
		assert.Equal(t, esdb.Revision(26), expected)
	})

	t.Run("rejects malformed revisions", func(t *testing.T) {
		_, err := expectedRevision("not-a-revision")
		assert.NotNil(t, err)
	})
}
