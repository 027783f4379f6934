package counter

import (
	"context"

	"github.com/weegigs/wee-ledger/we"
)

func increment() we.MethodHandler[Counter] {
	var handler we.MethodHandlerFunction[Counter, Increment] = func(ctx context.Context, _ Increment, state *Counter, sink we.LogSink) error {
		state.Increment(sink)
		return nil
	}

	return handler
}

func decrement() we.MethodHandler[Counter] {
	var handler we.MethodHandlerFunction[Counter, Decrement] = func(ctx context.Context, _ Decrement, state *Counter, sink we.LogSink) error {
		state.Decrement(sink)
		return nil
	}

	return handler
}

func reset() we.MethodHandler[Counter] {
	var handler we.MethodHandlerFunction[Counter, Reset] = func(ctx context.Context, _ Reset, state *Counter, sink we.LogSink) error {
		state.Reset(sink)
		return nil
	}

	return handler
}

func MethodHandlers() we.MethodHandlers[Counter] {
	return we.MethodHandlers[Counter]{
		we.MethodNameOf(Increment{}): increment(),
		we.MethodNameOf(Decrement{}): decrement(),
		we.MethodNameOf(Reset{}):     reset(),
	}
}

func getNum(state *Counter) any {
	return state.GetNum()
}

// Views answers get_value and its get_num alias.
func Views() we.Views[Counter] {
	return we.Views[Counter]{
		"get_value": getNum,
		"get_num":   getNum,
	}
}
