// Package counter is a ledger contract whose value moves in fixed steps of two.
package counter

import (
	"fmt"

	"github.com/weegigs/wee-ledger/ledger"
	"github.com/weegigs/wee-ledger/we"
)

const Kind = we.ContractKind("counter")

const step ledger.Value = 2

type Counter struct {
	Val ledger.Value `json:"val"`
}

func (Counter) ContractKind() we.ContractKind {
	return Kind
}

func (c *Counter) GetNum() ledger.Value {
	return c.Val
}

func (c *Counter) Increment(sink ledger.Sink) {
	c.Val = c.Val.WrappingAdd(step)
	sink.Log(fmt.Sprintf("Increased number to %s", c.Val))
	ledger.AfterChange(sink)
}

func (c *Counter) Decrement(sink ledger.Sink) {
	c.Val = c.Val.WrappingSub(step)
	sink.Log(fmt.Sprintf("Decreased number to %s", c.Val))
	ledger.AfterChange(sink)
}

func (c *Counter) Reset(sink ledger.Sink) {
	c.Val = 0
	sink.Log("Reset counter to zero")
}

func (c Counter) MarshalBinary() ([]byte, error) {
	return c.Val.MarshalBinary()
}

func (c *Counter) UnmarshalBinary(data []byte) error {
	return c.Val.UnmarshalBinary(data)
}
