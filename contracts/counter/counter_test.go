package counter

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/weegigs/wee-ledger/ledger"
)

func TestCounter(t *testing.T) {
	t.Run("starts at zero", func(t *testing.T) {
		assert.Equal(t, ledger.Value(0), (&Counter{}).GetNum())
	})

	t.Run("increments by two and warns", func(t *testing.T) {
		transcript := &ledger.Transcript{}
		c := Counter{}
		c.Increment(transcript)

		assert.Equal(t, ledger.Value(2), c.Val)
		assert.Equal(t, []string{"Increased number to 2", ledger.OverflowWarning}, transcript.Lines)
	})

	t.Run("decrements by two and warns", func(t *testing.T) {
		transcript := &ledger.Transcript{}
		c := Counter{}
		c.Decrement(transcript)

		assert.Equal(t, ledger.Value(-2), c.Val)
		assert.Equal(t, []string{"Decreased number to -2", ledger.OverflowWarning}, transcript.Lines)
	})

	t.Run("wraps at the edges", func(t *testing.T) {
		c := Counter{Val: ledger.Max}
		c.Increment(ledger.Discard)
		assert.Equal(t, ledger.Value(-127), c.Val)

		c = Counter{Val: ledger.Min}
		c.Decrement(ledger.Discard)
		assert.Equal(t, ledger.Value(126), c.Val)
	})

	t.Run("increment then decrement restores every value", func(t *testing.T) {
		for i := int(ledger.Min); i <= int(ledger.Max); i++ {
			c := Counter{Val: ledger.Value(i)}
			c.Increment(ledger.Discard)
			c.Decrement(ledger.Discard)
			assert.Equal(t, ledger.Value(i), c.Val)
		}
	})

	t.Run("reset logs one line without the warning", func(t *testing.T) {
		transcript := &ledger.Transcript{}
		c := Counter{Val: 42}
		c.Reset(transcript)

		assert.Equal(t, ledger.Value(0), c.Val)
		assert.Equal(t, []string{"Reset counter to zero"}, transcript.Lines)
	})

	t.Run("encodes as a single byte", func(t *testing.T) {
		data, err := Counter{Val: -1}.MarshalBinary()
		assert.Nil(t, err)
		assert.Equal(t, []byte{0xff}, data)

		decoded := Counter{}
		assert.Nil(t, decoded.UnmarshalBinary([]byte{0x7f}))
		assert.Equal(t, ledger.Max, decoded.Val)
	})
}
