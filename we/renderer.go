package we

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
	"go.opentelemetry.io/otel"
)

// Renderer turns a persisted record into a live instance.
type Renderer[T any] struct {
	Marshaller StateMarshaller
}

func (r *Renderer[T]) Render(ctx context.Context, record StateRecord) (Instance[T], error) {
	var state T

	_, span := otel.Tracer(tracerName).Start(ctx, fmt.Sprintf("render %s", NameOf(state)))
	defer span.End()

	if record.Initialized() {
		if err := r.marshaller().Unmarshal(record.Data, &state); err != nil {
			return Instance[T]{}, errors.Wrap(
				err,
				fmt.Sprintf("failed to decode state of %s at %s", record.Contract, record.Revision),
			)
		}
	}

	return Instance[T]{
		Contract: record.Contract,
		Revision: record.Revision,
		Kind:     KindOf(state),
		State:    &state,
	}, nil
}

func (r *Renderer[T]) Encode(state *T) (Data, error) {
	data, err := r.marshaller().Marshal(state)
	if err != nil {
		return Data{}, errors.Wrap(err, fmt.Sprintf("failed to encode state of %s", NameOf(state)))
	}

	return data, nil
}

func (r *Renderer[T]) marshaller() StateMarshaller {
	if r.Marshaller == nil {
		return JsonStateMarshaller{}
	}

	return r.Marshaller
}
