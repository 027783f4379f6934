package jetstream_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/weegigs/wee-ledger/internal"
	"github.com/weegigs/wee-ledger/stores/jetstream"
	"github.com/weegigs/wee-ledger/we"
)

func TestStateStore(t *testing.T) {
	if testing.Short() {
		t.Skip("requires a container runtime")
	}

	ctx := context.Background()
	store, cleanup, err := jetstream.NewTestStore(ctx)
	if err != nil {
		t.Skipf("nats unavailable: %+v", err)
	}
	defer cleanup()

	t.Run("jetstream state store validation", func(t *testing.T) {
		suite := we.NewStateStoreValidationSuite(ctx, store)
		suite.Run(t)
	})

	t.Run("revision carries the stream sequence", func(t *testing.T) {
		id := we.ContractId{Kind: "counter", Key: "sequence"}

		saved, err := store.Save(ctx, id, we.Options(), we.Data{Encoding: we.BinaryEncoding, Data: []byte{1}})
		if !assert.Nil(t, err) {
			return
		}

		loaded, err := store.Load(ctx, id)
		if !assert.Nil(t, err) {
			return
		}

		assert.Equal(t, saved, loaded.Revision)

		sequence, err := internal.DecodeSequenceNumber(loaded.Revision)
		if !assert.Nil(t, err) {
			return
		}
		assert.NotZero(t, sequence)
	})

	t.Run("wildcard keys do not read other contracts", func(t *testing.T) {
		_, err := store.Save(ctx, we.ContractId{Kind: "counter", Key: "neighbour"}, we.Options(), we.Data{Encoding: we.BinaryEncoding, Data: []byte{9}})
		if !assert.Nil(t, err) {
			return
		}

		var invalid *we.InvalidContractIdError

		_, err = store.Load(ctx, we.ContractId{Kind: "counter", Key: ">"})
		assert.ErrorAs(t, err, &invalid)

		_, err = store.Save(ctx, we.ContractId{Kind: "counter", Key: "*"}, we.Options(), we.Data{Encoding: we.BinaryEncoding, Data: []byte{1}})
		assert.ErrorAs(t, err, &invalid)

		_, err = store.Remove(ctx, we.ContractId{Kind: "counter", Key: ">"})
		assert.ErrorAs(t, err, &invalid)
	})
}
