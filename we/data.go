package we

import (
	"encoding"
	"fmt"

	"github.com/goccy/go-json"
)

const (
	JsonEncoding   = "application/json"
	BinaryEncoding = "application/octet-stream"
)

type Data struct {
	Encoding string `json:"encoding"`
	Data     []byte `json:"data"`
}

type InvalidEncodingError struct {
	Expected string
	Actual   string
}

func (e *InvalidEncodingError) Error() string {
	return fmt.Sprintf("expected encoding %s, got %s", e.Expected, e.Actual)
}

func InvalidEncoding(expected string, actual string) error {
	return &InvalidEncodingError{
		Expected: expected,
		Actual:   actual,
	}
}

type StateMarshaller interface {
	Marshal(state any) (Data, error)
	Unmarshal(data Data, state any) error
}

// NewStateMarshaller writes with the requested encoding and reads whatever
// encoding the record was written with.
func NewStateMarshaller(encoding string) (StateMarshaller, error) {
	switch encoding {
	case "", JsonEncoding, "json":
		return JsonStateMarshaller{}, nil
	case BinaryEncoding, "binary":
		return BinaryStateMarshaller{}, nil
	default:
		return nil, fmt.Errorf("unsupported state encoding %s", encoding)
	}
}

type JsonStateMarshaller struct{}

func (JsonStateMarshaller) Marshal(state any) (Data, error) {
	data, err := json.Marshal(state)
	if err != nil {
		return Data{}, err
	}

	return Data{
		Encoding: JsonEncoding,
		Data:     data,
	}, nil
}

func (JsonStateMarshaller) Unmarshal(data Data, state any) error {
	return unmarshal(data, state)
}

type BinaryStateMarshaller struct{}

func (BinaryStateMarshaller) Marshal(state any) (Data, error) {
	marshaler, ok := state.(encoding.BinaryMarshaler)
	if !ok {
		return Data{}, fmt.Errorf("%T does not support binary encoding", state)
	}

	data, err := marshaler.MarshalBinary()
	if err != nil {
		return Data{}, err
	}

	return Data{
		Encoding: BinaryEncoding,
		Data:     data,
	}, nil
}

func (BinaryStateMarshaller) Unmarshal(data Data, state any) error {
	return unmarshal(data, state)
}

func unmarshal(data Data, state any) error {
	switch data.Encoding {
	case JsonEncoding:
		return json.Unmarshal(data.Data, state)
	case BinaryEncoding:
		unmarshaler, ok := state.(encoding.BinaryUnmarshaler)
		if !ok {
			return fmt.Errorf("%T does not support binary encoding", state)
		}
		return unmarshaler.UnmarshalBinary(data.Data)
	default:
		return InvalidEncoding(JsonEncoding, data.Encoding)
	}
}
