package counter

import (
	"github.com/google/wire"

	"github.com/weegigs/wee-ledger/we"
)

type Service = we.ContractService[Counter]

func Loader(store we.StateStore, marshaller we.StateMarshaller) *we.InstanceLoader[Counter] {
	renderer := we.Renderer[Counter]{Marshaller: marshaller}
	loader := we.InstanceLoader[Counter]{Loader: store.Load, Renderer: &renderer}

	return &loader
}

func NewService(store we.StateStore, marshaller we.StateMarshaller, options ...we.ServiceOption) Service {
	dispatcher := we.RoutedDispatcher[Counter]{Handlers: MethodHandlers()}

	return we.NewContractService(store, Loader(store, marshaller), &dispatcher, Views(), options...)
}

func NewEndpoint(service Service) we.Endpoint {
	return we.NewEndpoint[Counter](Kind, service)
}

// ProvideEndpoint builds the counter endpoint for injection.
func ProvideEndpoint(store we.StateStore, marshaller we.StateMarshaller, options []we.ServiceOption) CounterEndpoint {
	return CounterEndpoint{NewEndpoint(NewService(store, marshaller, options...))}
}

// CounterEndpoint distinguishes the counter endpoint for injection.
type CounterEndpoint struct {
	we.Endpoint
}

var Set = wire.NewSet(ProvideEndpoint)
