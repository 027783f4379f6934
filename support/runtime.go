package support

import (
	"github.com/google/wire"
	"github.com/rs/zerolog/log"

	"github.com/weegigs/wee-ledger/contracts/calculator"
	"github.com/weegigs/wee-ledger/contracts/counter"
	"github.com/weegigs/wee-ledger/we"
)

// Runtime is everything a connector needs to serve calls.
type Runtime struct {
	Store    we.StateStore
	Registry we.Registry
}

func ServiceOptions(cfg Config) []we.ServiceOption {
	return []we.ServiceOption{
		we.WithLogger(&log.Logger),
		we.WithCommitAttempts(cfg.CommitAttempts, cfg.CommitDelay),
	}
}

func NewRegistry(counter counter.CounterEndpoint, calculator calculator.CalculatorEndpoint) we.Registry {
	return we.NewRegistry(counter, calculator)
}

func NewRuntime(store we.StateStore, registry we.Registry) *Runtime {
	return &Runtime{Store: store, Registry: registry}
}

var Providers = wire.NewSet(
	OpenStore,
	StateMarshaller,
	ServiceOptions,
	counter.Set,
	calculator.Set,
	NewRegistry,
	NewRuntime,
)
