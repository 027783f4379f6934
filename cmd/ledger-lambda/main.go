package main

import (
	"context"
	"os"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/rs/zerolog/log"

	"github.com/weegigs/wee-ledger/connectors/welambda"
	"github.com/weegigs/wee-ledger/support"
)

func main() {
	ctx := context.Background()

	cfg, err := support.LoadConfig()
	if err != nil {
		log.Error().Err(err).Msg("failed to load configuration")
		os.Exit(1)
	}
	logger := support.ConfigureLogging(cfg)

	runtime, cleanup, err := initializeRuntime(ctx, cfg)
	if err != nil {
		logger.Error().Err(err).Msg("failed to configure runtime")
		os.Exit(1)
	}
	defer cleanup()

	lambda.Start(welambda.NewHandler(runtime.Registry, welambda.Logger(logger)))
}
