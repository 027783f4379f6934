package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/weegigs/wee-ledger/connectors/wehttp"
	"github.com/weegigs/wee-ledger/internal/metrics"
	"github.com/weegigs/wee-ledger/support"
)

func serveCmd() *cobra.Command {
	var listen string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve contracts over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			runtime, cfg, cleanup, err := openRuntime(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			shutdownTracing, err := support.ConfigureTracing(ctx, cfg)
			if err != nil {
				return err
			}
			defer func() {
				if err := shutdownTracing(context.Background()); err != nil {
					log.Warn().Err(err).Msg("failed to flush traces")
				}
			}()

			if listen == "" {
				listen = cfg.Listen
			}

			recorder := metrics.NewPrometheusRecorder(prom.NewRegistry())
			handler := wehttp.NewHandler(runtime.Registry,
				wehttp.Metrics(recorder),
				wehttp.MetricsEndpoint(recorder.Handler()),
			)

			server := &http.Server{
				Addr:              listen,
				Handler:           withLogging(handler),
				ReadHeaderTimeout: 5 * time.Second,
			}

			failed := make(chan error, 1)
			go func() {
				log.Info().Str("address", listen).Str("store", cfg.Store).Msg("listening")
				failed <- server.ListenAndServe()
			}()

			select {
			case err := <-failed:
				return err
			case <-ctx.Done():
			}

			shutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			if err := server.Shutdown(shutdown); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&listen, "listen", "", "listen address, overrides LEDGER_LISTEN")

	return cmd
}
