package we

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
)

type MethodHandlers[T any] map[MethodName]MethodHandler[T]

type Dispatcher[T any] interface {
	Handles(method MethodName) bool
	Dispatch(ctx context.Context, state *T, call Call, sink LogSink) error
}

// RoutedDispatcher routes a call to the handler registered under its method
// name. Handlers mutate state in place; the caller decides whether to keep it.
type RoutedDispatcher[T any] struct {
	Handlers MethodHandlers[T]
}

func (d *RoutedDispatcher[T]) Handles(method MethodName) bool {
	return d.Handlers[method] != nil
}

func (d *RoutedDispatcher[T]) Dispatch(ctx context.Context, state *T, call Call, sink LogSink) error {
	method := MethodNameOf(call)

	ctx, span := otel.Tracer(tracerName).Start(ctx, fmt.Sprintf("dispatch %s", method))
	defer span.End()

	handler := d.Handlers[method]
	if handler == nil {
		return MethodNotFound(method)
	}

	switch c := call.(type) {
	case RemoteCall:
		return handler.HandleRemoteCall(ctx, c, state, sink)
	case *RemoteCall:
		return handler.HandleRemoteCall(ctx, *c, state, sink)
	default:
		return handler.HandleCall(ctx, c, state, sink)
	}
}
