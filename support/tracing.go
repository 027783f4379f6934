package support

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/sdk/trace"

	"github.com/weegigs/wee-ledger/we"
)

// ConfigureTracing installs a batching tracer provider for the configured
// exporter. The returned func flushes and stops it.
func ConfigureTracing(ctx context.Context, cfg Config) (func(context.Context) error, error) {
	exporter, err := we.NewExporter(ctx, cfg.Tracing, we.ExporterSettings{
		HoneycombTeam:    cfg.HoneycombTeam,
		HoneycombDataset: cfg.HoneycombDataset,
		JaegerEndpoint:   cfg.JaegerEndpoint,
	})
	if err != nil {
		return nil, err
	}

	if exporter == nil {
		return func(context.Context) error { return nil }, nil
	}

	provider := trace.NewTracerProvider(trace.WithBatcher(exporter))
	otel.SetTracerProvider(provider)

	return provider.Shutdown, nil
}
