// Package calculator is a ledger contract whose value is replaced by the result
// of a binary operation on two operands.
package calculator

import (
	"fmt"

	"github.com/weegigs/wee-ledger/ledger"
	"github.com/weegigs/wee-ledger/we"
)

const Kind = we.ContractKind("calculator")

type Calculator struct {
	Val ledger.Value `json:"val"`
}

func (Calculator) ContractKind() we.ContractKind {
	return Kind
}

func (c *Calculator) GetResult() ledger.Value {
	return c.Val
}

func (c *Calculator) Multiply(x, y ledger.Value, sink ledger.Sink) {
	c.Val = x.WrappingMul(y)
	sink.Log(fmt.Sprintf("Multiplied %s by %s: %s", x, y, c.Val))
	ledger.AfterChange(sink)
}

// Divide leaves the value and the sink untouched when y is zero.
func (c *Calculator) Divide(x, y ledger.Value, sink ledger.Sink) error {
	result, err := x.WrappingDiv(y)
	if err != nil {
		return err
	}

	c.Val = result
	sink.Log(fmt.Sprintf("Divided %s by %s: %s", x, y, c.Val))
	ledger.AfterChange(sink)

	return nil
}

func (c *Calculator) Reset(sink ledger.Sink) {
	c.Val = 0
	sink.Log("Reset calculator to zero")
}

func (c Calculator) MarshalBinary() ([]byte, error) {
	return c.Val.MarshalBinary()
}

func (c *Calculator) UnmarshalBinary(data []byte) error {
	return c.Val.UnmarshalBinary(data)
}
