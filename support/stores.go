package support

import (
	"context"
	"fmt"

	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog/log"

	"github.com/weegigs/wee-ledger/stores/ds"
	"github.com/weegigs/wee-ledger/stores/esdbs"
	"github.com/weegigs/wee-ledger/stores/jetstream"
	"github.com/weegigs/wee-ledger/stores/memory"
	"github.com/weegigs/wee-ledger/stores/sqlite"
	"github.com/weegigs/wee-ledger/we"
)

func noop() {}

// OpenStore connects the configured state store. The returned func releases
// its connections.
func OpenStore(ctx context.Context, cfg Config) (we.StateStore, func(), error) {
	log.Debug().Str("store", cfg.Store).Msg("opening state store")

	switch cfg.Store {
	case "", MemoryBackend:
		return memory.NewStateStore(), noop, nil

	case SqliteBackend:
		store, err := sqlite.NewStateStore(cfg.SqlitePath)
		if err != nil {
			return nil, nil, err
		}
		return store, closer(store.Close), nil

	case DynamoBackend:
		awsConfig, err := ds.DefaultAWSConfig(ctx)
		if err != nil {
			return nil, nil, err
		}
		return ds.NewStateStore(ds.Client(awsConfig), ds.StateStoreTableName(cfg.DynamoTable)), noop, nil

	case DynamoLocalBackend:
		store, err := ds.LocalDynamoStore(ctx, ds.LocalEndpoint(cfg.DynamoEndpoint), ds.StateStoreTableName(cfg.DynamoTable))
		if err != nil {
			return nil, nil, err
		}
		return store, noop, nil

	case JetStreamBackend:
		connection, err := nats.Connect(cfg.NatsURL, nats.Name("wee-ledger"))
		if err != nil {
			return nil, nil, err
		}
		store, err := jetstream.NewStateStore(cfg.NatsStream, connection)
		if err != nil {
			connection.Close()
			return nil, nil, err
		}
		return store, connection.Close, nil

	case EventStoreDBBackend:
		store, err := esdbs.NewConnectedStore(cfg.ESDBConnection)
		if err != nil {
			return nil, nil, err
		}
		return store, closer(store.Close), nil

	default:
		return nil, nil, fmt.Errorf("unknown state store %s", cfg.Store)
	}
}

func closer(close func() error) func() {
	return func() {
		if err := close(); err != nil {
			log.Warn().Err(err).Msg("failed to close state store")
		}
	}
}

func StateMarshaller(cfg Config) (we.StateMarshaller, error) {
	return we.NewStateMarshaller(cfg.StateEncoding)
}
