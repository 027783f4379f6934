package calculator

import (
	"github.com/google/wire"

	"github.com/weegigs/wee-ledger/we"
)

type Service = we.ContractService[Calculator]

func Loader(store we.StateStore, marshaller we.StateMarshaller) *we.InstanceLoader[Calculator] {
	renderer := we.Renderer[Calculator]{Marshaller: marshaller}
	loader := we.InstanceLoader[Calculator]{Loader: store.Load, Renderer: &renderer}

	return &loader
}

func NewService(store we.StateStore, marshaller we.StateMarshaller, options ...we.ServiceOption) Service {
	dispatcher := we.RoutedDispatcher[Calculator]{Handlers: MethodHandlers()}

	return we.NewContractService(store, Loader(store, marshaller), &dispatcher, Views(), options...)
}

func NewEndpoint(service Service) we.Endpoint {
	return we.NewEndpoint[Calculator](Kind, service)
}

type CalculatorEndpoint struct {
	we.Endpoint
}

func ProvideEndpoint(store we.StateStore, marshaller we.StateMarshaller, options []we.ServiceOption) CalculatorEndpoint {
	return CalculatorEndpoint{NewEndpoint(NewService(store, marshaller, options...))}
}

var Set = wire.NewSet(ProvideEndpoint)
