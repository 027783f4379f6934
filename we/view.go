package we

// ViewFunction reads state without changing it. Views are never persisted.
type ViewFunction[T any] func(state *T) any

type Views[T any] map[MethodName]ViewFunction[T]

func (v Views[T]) Handles(method MethodName) bool {
	return v[method] != nil
}

func (v Views[T]) Read(method MethodName, state *T) (any, error) {
	view := v[method]
	if view == nil {
		return nil, MethodNotFound(method)
	}

	return view(state), nil
}
