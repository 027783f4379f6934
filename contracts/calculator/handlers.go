package calculator

import (
	"context"

	"github.com/weegigs/wee-ledger/ledger"
	"github.com/weegigs/wee-ledger/we"
)

func multiply() we.MethodHandler[Calculator] {
	var handler we.MethodHandlerFunction[Calculator, Multiply] = func(ctx context.Context, call Multiply, state *Calculator, sink we.LogSink) error {
		state.Multiply(ledger.Value(call.X), ledger.Value(call.Y), sink)
		return nil
	}

	return handler
}

func divide() we.MethodHandler[Calculator] {
	var handler we.MethodHandlerFunction[Calculator, Divide] = func(ctx context.Context, call Divide, state *Calculator, sink we.LogSink) error {
		return state.Divide(ledger.Value(call.X), ledger.Value(call.Y), sink)
	}

	return handler
}

func reset() we.MethodHandler[Calculator] {
	var handler we.MethodHandlerFunction[Calculator, Reset] = func(ctx context.Context, _ Reset, state *Calculator, sink we.LogSink) error {
		state.Reset(sink)
		return nil
	}

	return handler
}

// MethodHandlers registers mul and div as aliases of multiply and divide.
func MethodHandlers() we.MethodHandlers[Calculator] {
	handlers := we.MethodHandlers[Calculator]{
		we.MethodNameOf(Multiply{}): multiply(),
		we.MethodNameOf(Divide{}):   divide(),
		we.MethodNameOf(Reset{}):    reset(),
	}

	handlers["mul"] = handlers[we.MethodNameOf(Multiply{})]
	handlers["div"] = handlers[we.MethodNameOf(Divide{})]

	return handlers
}

func Views() we.Views[Calculator] {
	return we.Views[Calculator]{
		"get_result": func(state *Calculator) any {
			return state.GetResult()
		},
	}
}
