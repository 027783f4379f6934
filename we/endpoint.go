package we

import (
	"context"
	"sort"

	"github.com/goccy/go-json"
)

// Resource is the wire shape of an instance: the state's JSON fields plus
// $id, $kind and $revision.
type Resource map[string]any

type StateSerializer[T any] func(instance *Instance[T]) (Resource, error)

func DefaultStateSerializer[T any](instance *Instance[T]) (Resource, error) {
	serialized, err := json.Marshal(instance.State)
	if err != nil {
		return nil, err
	}

	resource := make(Resource)
	if err = json.Unmarshal(serialized, &resource); err != nil {
		return nil, err
	}

	return resource, nil
}

type CallResult struct {
	Method    MethodName
	Committed bool
	Resource  Resource
	Result    any
	Logs      []string
}

// Endpoint exposes one contract kind without its state type, so connectors
// can route by kind.
type Endpoint interface {
	Kind() ContractKind
	Methods() []MethodName
	Views() []MethodName
	Resource(ctx context.Context, key string) (Resource, error)
	View(ctx context.Context, key string, method MethodName) (any, error)
	Call(ctx context.Context, key string, call RemoteCall, options ...SaveOption) (CallResult, error)
}

type EndpointOption[T any] func(*endpoint[T])

func WithSerializer[T any](serializer StateSerializer[T]) EndpointOption[T] {
	return func(e *endpoint[T]) {
		e.serialize = serializer
	}
}

func NewEndpoint[T any](kind ContractKind, service ContractService[T], options ...EndpointOption[T]) Endpoint {
	e := &endpoint[T]{kind: kind, service: service, serialize: DefaultStateSerializer[T]}
	for _, option := range options {
		option(e)
	}

	return e
}

type endpoint[T any] struct {
	kind      ContractKind
	service   ContractService[T]
	serialize StateSerializer[T]
}

func (e *endpoint[T]) Kind() ContractKind {
	return e.kind
}

func (e *endpoint[T]) Methods() []MethodName {
	return e.service.Methods()
}

func (e *endpoint[T]) Views() []MethodName {
	return e.service.Views()
}

func (e *endpoint[T]) id(key string) (ContractId, error) {
	id := ContractId{Kind: e.kind, Key: key}
	if err := id.Validate(); err != nil {
		return ContractId{}, err
	}

	return id, nil
}

func (e *endpoint[T]) Resource(ctx context.Context, key string) (Resource, error) {
	id, err := e.id(key)
	if err != nil {
		return nil, err
	}

	instance, err := e.service.Load(ctx, id)
	if err != nil {
		return nil, err
	}

	return e.encode(&instance)
}

func (e *endpoint[T]) View(ctx context.Context, key string, method MethodName) (any, error) {
	id, err := e.id(key)
	if err != nil {
		return nil, err
	}

	return e.service.View(ctx, id, method)
}

// Call serves views without saving anything and executes every other method.
func (e *endpoint[T]) Call(ctx context.Context, key string, call RemoteCall, options ...SaveOption) (CallResult, error) {
	id, err := e.id(key)
	if err != nil {
		return CallResult{}, err
	}

	if contains(e.service.Views(), call.Method) {
		result, err := e.service.View(ctx, id, call.Method)
		if err != nil {
			return CallResult{}, err
		}

		return CallResult{Method: call.Method, Result: result}, nil
	}

	outcome, err := e.service.Execute(ctx, id, call, options...)
	if err != nil {
		return CallResult{}, err
	}

	resource, err := e.encode(&outcome.Instance)
	if err != nil {
		return CallResult{}, err
	}

	return CallResult{
		Method:    outcome.Method,
		Committed: true,
		Resource:  resource,
		Logs:      outcome.Logs,
	}, nil
}

func (e *endpoint[T]) encode(instance *Instance[T]) (Resource, error) {
	resource, err := e.serialize(instance)
	if err != nil {
		return nil, err
	}

	resource["$id"] = instance.Contract.Encode()
	resource["$kind"] = e.kind
	resource["$revision"] = instance.Revision

	return resource, nil
}

type Registry map[ContractKind]Endpoint

func NewRegistry(endpoints ...Endpoint) Registry {
	registry := make(Registry, len(endpoints))
	for _, endpoint := range endpoints {
		registry[endpoint.Kind()] = endpoint
	}

	return registry
}

func (r Registry) Lookup(kind ContractKind) (Endpoint, error) {
	endpoint := r[kind]
	if endpoint == nil {
		return nil, ContractNotFound(kind)
	}

	return endpoint, nil
}

func (r Registry) Kinds() []ContractKind {
	kinds := make([]ContractKind, 0, len(r))
	for kind := range r {
		kinds = append(kinds, kind)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })

	return kinds
}

func sortedNames[V any](m map[MethodName]V) []MethodName {
	names := make([]MethodName, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })

	return names
}

func contains(names []MethodName, name MethodName) bool {
	for _, candidate := range names {
		if candidate == name {
			return true
		}
	}

	return false
}
