package we

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContractIdValidation(t *testing.T) {
	t.Run("accepts plain and dotted keys", func(t *testing.T) {
		for _, key := range []string{"main", "01FX4Z", "team.alpha", "a-b_c"} {
			assert.Nil(t, ContractId{Kind: "counter", Key: key}.Validate(), key)
		}
	})

	t.Run("rejects keys that are not a single slot", func(t *testing.T) {
		for _, key := range []string{"", ">", "*", "a.*", "a.>", "a b", "a\tb", "a\nb", ".a", "a.", "a..b"} {
			err := ContractId{Kind: "counter", Key: key}.Validate()

			var invalid *InvalidContractIdError
			assert.ErrorAs(t, err, &invalid, key)
		}
	})

	t.Run("rejects malformed kinds", func(t *testing.T) {
		for _, kind := range []ContractKind{"", "count.er", "*", "a b"} {
			err := ContractId{Kind: kind, Key: "main"}.Validate()

			var invalid *InvalidContractIdError
			assert.ErrorAs(t, err, &invalid, kind.String())
		}
	})

	t.Run("round trips through its encoding", func(t *testing.T) {
		id := ContractId{Kind: "calculator", Key: "team.alpha"}

		decoded, err := id.Encode().Decode()
		assert.Nil(t, err)
		assert.Equal(t, id, *decoded)
	})
}
