//go:build wireinject
// +build wireinject

package main

import (
	"context"

	"github.com/google/wire"

	"github.com/weegigs/wee-ledger/support"
)

func initializeRuntime(ctx context.Context, cfg support.Config) (*support.Runtime, func(), error) {
	panic(wire.Build(support.Providers))
}
