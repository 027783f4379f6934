package we

import (
	"context"

	"go.opentelemetry.io/otel"
)

type InstanceLoader[T any] struct {
	Loader   StateLoader
	Renderer *Renderer[T]
}

func (s *InstanceLoader[T]) Load(ctx context.Context, id ContractId) (Instance[T], error) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "load instance")
	defer span.End()

	record, err := s.Loader(ctx, id)
	if err != nil {
		return Instance[T]{}, err
	}

	if record.Contract == (ContractId{}) {
		record.Contract = id
	}

	return s.Renderer.Render(ctx, record)
}
