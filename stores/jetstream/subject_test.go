package jetstream

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/weegigs/wee-ledger/we"
)

func TestSubject(t *testing.T) {
	t.Run("addresses one contract", func(t *testing.T) {
		target, err := subject(we.ContractId{Kind: "counter", Key: "main"})
		assert.Nil(t, err)
		assert.Equal(t, "state.counter.main", target)
	})

	t.Run("rejects wildcards and whitespace", func(t *testing.T) {
		for _, key := range []string{">", "*", "a.>", "a b", "a..b"} {
			_, err := subject(we.ContractId{Kind: "counter", Key: key})

			var invalid *we.InvalidContractIdError
			assert.ErrorAs(t, err, &invalid, key)
		}
	})
}
