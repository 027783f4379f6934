package we

import (
	"context"
	"time"

	"github.com/avast/retry-go"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
)

const tracerName = "ledger-host"

type ContractService[T any] interface {
	Load(ctx context.Context, id ContractId) (Instance[T], error)
	View(ctx context.Context, id ContractId, method MethodName) (any, error)
	Execute(ctx context.Context, id ContractId, call Call, options ...SaveOption) (Outcome[T], error)
	Views() []MethodName
	Methods() []MethodName
}

type ServiceOption func(*serviceConfig)

type serviceConfig struct {
	log      *zerolog.Logger
	attempts uint
	delay    time.Duration
}

func WithLogger(logger *zerolog.Logger) ServiceOption {
	return func(config *serviceConfig) {
		config.log = logger
	}
}

// WithCommitAttempts bounds how often a call is re-run after losing a
// revision conflict.
func WithCommitAttempts(attempts uint, delay time.Duration) ServiceOption {
	return func(config *serviceConfig) {
		if attempts > 0 {
			config.attempts = attempts
		}
		config.delay = delay
	}
}

func NewContractService[T any](
	store StateStore,
	loader *InstanceLoader[T],
	dispatcher *RoutedDispatcher[T],
	views Views[T],
	options ...ServiceOption,
) *contractService[T] {
	config := serviceConfig{attempts: 5, delay: 10 * time.Millisecond}
	for _, option := range options {
		option(&config)
	}
	if config.log == nil {
		config.log = &log.Logger
	}

	return &contractService[T]{
		store:      store,
		loader:     loader,
		dispatcher: dispatcher,
		views:      views,
		config:     config,
	}
}

type contractService[T any] struct {
	store      StateStore
	loader     *InstanceLoader[T]
	dispatcher *RoutedDispatcher[T]
	views      Views[T]
	config     serviceConfig
}

func (s *contractService[T]) Load(ctx context.Context, id ContractId) (Instance[T], error) {
	return s.loader.Load(ctx, id)
}

func (s *contractService[T]) View(ctx context.Context, id ContractId, method MethodName) (any, error) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "view "+method.String())
	defer span.End()

	if !s.views.Handles(method) {
		return nil, MethodNotFound(method)
	}

	instance, err := s.Load(ctx, id)
	if err != nil {
		return nil, err
	}

	return s.views.Read(method, instance.State)
}

// Execute runs one mutating call from a freshly loaded state and saves the
// result. A failing call leaves the stored state untouched.
func (s *contractService[T]) Execute(ctx context.Context, id ContractId, call Call, options ...SaveOption) (Outcome[T], error) {
	method := MethodNameOf(call)

	ctx, span := otel.Tracer(tracerName).Start(ctx, "execute "+method.String())
	defer span.End()

	if !s.dispatcher.Handles(method) {
		return Outcome[T]{}, MethodNotFound(method)
	}

	var outcome Outcome[T]
	err := retry.Do(
		func() error {
			instance, err := s.Load(ctx, id)
			if err != nil {
				return err
			}

			receipt := NewReceipt(s.config.log, id, method)
			state := *instance.State
			if err := s.dispatcher.Dispatch(ctx, &state, call, receipt); err != nil {
				return err
			}

			data, err := s.loader.Renderer.Encode(&state)
			if err != nil {
				return err
			}

			opts := Options(append([]SaveOption{WithMethod(method)}, options...)...)
			opts.ExpectedRevision = instance.Revision

			revision, err := s.store.Save(ctx, id, opts, data)
			if err != nil {
				return err
			}

			outcome = Outcome[T]{
				Instance: Instance[T]{
					Contract: id,
					Revision: revision,
					Kind:     instance.Kind,
					State:    &state,
				},
				Method: method,
				Logs:   receipt.Lines(),
			}
			return nil
		},
		retry.RetryIf(func(err error) bool {
			return errors.Is(err, RevisionConflict)
		}),
		retry.OnRetry(func(n uint, err error) {
			s.config.log.Debug().Uint("attempt", n).Str("contract", id.String()).Msg("re-running call after revision conflict")
		}),
		retry.Attempts(s.config.attempts),
		retry.Delay(s.config.delay),
		retry.LastErrorOnly(true),
	)
	if err != nil {
		return Outcome[T]{}, err
	}

	return outcome, nil
}

func (s *contractService[T]) Views() []MethodName {
	return sortedNames(map[MethodName]ViewFunction[T](s.views))
}

func (s *contractService[T]) Methods() []MethodName {
	return sortedNames(map[MethodName]MethodHandler[T](s.dispatcher.Handlers))
}
