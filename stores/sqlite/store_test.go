package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/weegigs/wee-ledger/we"
)

func TestSQLiteStore(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "ledger.db")

	store, err := NewStateStore(path)
	if err != nil {
		t.Fatalf("failed to open store: %+v", err)
	}
	defer store.Close()

	t.Run("sqlite state store validation", func(t *testing.T) {
		suite := we.NewStateStoreValidationSuite(ctx, store)
		suite.Run(t)
	})

	t.Run("survives reopening", func(t *testing.T) {
		id := we.ContractId{Kind: "counter", Key: "reopened"}
		revision, err := store.Save(ctx, id, we.Options(), we.Data{Encoding: we.BinaryEncoding, Data: []byte{0xfe}})
		if !assert.Nil(t, err) {
			return
		}

		reopened, err := NewStateStore(path)
		if !assert.Nil(t, err) {
			return
		}
		defer reopened.Close()

		record, err := reopened.Load(ctx, id)
		if !assert.Nil(t, err) {
			return
		}

		assert.Equal(t, revision, record.Revision)
		assert.Equal(t, []byte{0xfe}, record.Data.Data)
	})
}
