// Package ledger holds the wrapping integer shared by every contract, the
// log sink contracts report through and the hook run after value changes.
package ledger

import (
	"errors"
	"fmt"
	"strconv"
)

// ErrDivideByZero aborts a call that divides by zero. Nothing is persisted.
var ErrDivideByZero = errors.New("attempt to divide by zero")

// Value is a signed 8-bit integer with modular arithmetic. Results outside
// -128..127 are reduced modulo 256, never clamped or widened.
type Value int8

const (
	Min Value = -128
	Max Value = 127
)

func (v Value) Int8() int8 {
	return int8(v)
}

func (v Value) String() string {
	return strconv.Itoa(int(v))
}

func (v Value) WrappingAdd(other Value) Value {
	return Value(int8(v) + int8(other))
}

func (v Value) WrappingSub(other Value) Value {
	return Value(int8(v) - int8(other))
}

func (v Value) WrappingMul(other Value) Value {
	return Value(int8(v) * int8(other))
}

// WrappingDiv truncates toward zero. Min / -1 wraps back to Min.
func (v Value) WrappingDiv(divisor Value) (Value, error) {
	if divisor == 0 {
		return v, ErrDivideByZero
	}

	return Value(int8(v) / int8(divisor)), nil
}

func (v Value) MarshalBinary() ([]byte, error) {
	return []byte{byte(v)}, nil
}

func (v *Value) UnmarshalBinary(data []byte) error {
	if len(data) != 1 {
		return fmt.Errorf("expected 1 byte for value, got %d", len(data))
	}

	*v = Value(int8(data[0]))
	return nil
}
