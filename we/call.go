package we

import (
	"bytes"
	"context"
	"fmt"
	"reflect"
	"strings"

	"github.com/goccy/go-json"
	"github.com/iancoleman/strcase"
)

type MethodName string

func (m MethodName) String() string {
	return string(m)
}

type Call any

// RemoteCall is a call addressed by name with undecoded arguments. Args is
// either a JSON object keyed by parameter name or a JSON array of positional
// parameters.
type RemoteCall struct {
	Method MethodName      `json:"method"`
	Args   json.RawMessage `json:"args,omitempty"`
}

// LogSink receives the lines a method emits while it runs.
type LogSink interface {
	Log(line string)
}

// MethodNameOf resolves the dispatch name of a call. Unnamed calls use the
// snake cased type name, so counter.Increment is "increment".
func MethodNameOf(call Call) MethodName {
	switch c := call.(type) {
	case RemoteCall:
		return c.Method
	case *RemoteCall:
		return c.Method
	case Named:
		return MethodName(c.TypeName())
	}

	segments := typeSegments(call)
	return MethodName(strcase.ToSnake(segments[len(segments)-1]))
}

type MethodHandler[T any] interface {
	HandleCall(ctx context.Context, call Call, state *T, sink LogSink) error
	HandleRemoteCall(ctx context.Context, call RemoteCall, state *T, sink LogSink) error
}

type MethodHandlerFunction[T any, C any] func(ctx context.Context, call C, state *T, sink LogSink) error

func (f MethodHandlerFunction[T, C]) HandleCall(ctx context.Context, call Call, state *T, sink LogSink) error {
	typed, ok := call.(C)
	if !ok {
		return UnexpectedCall(call)
	}

	return f(ctx, typed, state, sink)
}

func (f MethodHandlerFunction[T, C]) HandleRemoteCall(ctx context.Context, call RemoteCall, state *T, sink LogSink) error {
	var typed C

	if err := decodeArgs(call.Args, &typed); err != nil {
		return InvalidArguments(call.Method, err)
	}

	return f(ctx, typed, state, sink)
}

func decodeArgs(raw json.RawMessage, target any) error {
	trimmed := bytes.TrimSpace(raw)
	fields := parameters(reflect.TypeOf(target).Elem())

	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		if len(fields) > 0 {
			return fmt.Errorf("expected %d arguments, got 0", len(fields))
		}
		return nil
	}

	if trimmed[0] != '[' {
		var named map[string]json.RawMessage
		if err := json.Unmarshal(trimmed, &named); err != nil {
			return err
		}
		for _, field := range fields {
			if _, ok := named[field.name]; !ok {
				return fmt.Errorf("missing argument %s", field.name)
			}
		}
		return json.Unmarshal(trimmed, target)
	}

	var positional []json.RawMessage
	if err := json.Unmarshal(trimmed, &positional); err != nil {
		return err
	}

	if len(positional) != len(fields) {
		return fmt.Errorf("expected %d arguments, got %d", len(fields), len(positional))
	}

	value := reflect.ValueOf(target).Elem()
	for i, field := range fields {
		if err := json.Unmarshal(positional[i], value.Field(field.index).Addr().Interface()); err != nil {
			return fmt.Errorf("argument %s: %w", field.name, err)
		}
	}

	return nil
}

type parameter struct {
	index int
	name  string
}

func parameters(t reflect.Type) []parameter {
	if t.Kind() != reflect.Struct {
		return nil
	}

	var result []parameter
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}

		name := field.Name
		if tag := strings.Split(field.Tag.Get("json"), ",")[0]; tag == "-" {
			continue
		} else if tag != "" {
			name = tag
		}

		result = append(result, parameter{index: i, name: name})
	}

	return result
}
