package support

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/weegigs/wee-ledger/contracts/calculator"
	"github.com/weegigs/wee-ledger/contracts/counter"
	"github.com/weegigs/wee-ledger/we"
)

func TestLoadConfig(t *testing.T) {
	t.Run("applies defaults", func(t *testing.T) {
		cfg, err := LoadConfig()
		if !assert.Nil(t, err) {
			return
		}

		assert.Equal(t, MemoryBackend, cfg.Store)
		assert.Equal(t, uint(5), cfg.CommitAttempts)
		assert.Equal(t, 10*time.Millisecond, cfg.CommitDelay)
		assert.Equal(t, ":9080", cfg.Listen)
	})

	t.Run("reads the environment", func(t *testing.T) {
		t.Setenv("LEDGER_STORE", SqliteBackend)
		t.Setenv("LEDGER_COMMIT_ATTEMPTS", "3")

		cfg, err := LoadConfig()
		if !assert.Nil(t, err) {
			return
		}

		assert.Equal(t, SqliteBackend, cfg.Store)
		assert.Equal(t, uint(3), cfg.CommitAttempts)
	})

	t.Run("reads dotenv files and ignores missing ones", func(t *testing.T) {
		file := filepath.Join(t.TempDir(), ".env")
		assert.Nil(t, os.WriteFile(file, []byte("LEDGER_STATE_ENCODING=binary\n"), 0o600))
		t.Cleanup(func() { _ = os.Unsetenv("LEDGER_STATE_ENCODING") })

		cfg, err := LoadConfig(file, filepath.Join(t.TempDir(), "missing.env"))
		if !assert.Nil(t, err) {
			return
		}

		assert.Equal(t, "binary", cfg.StateEncoding)
	})

	t.Run("rejects malformed values", func(t *testing.T) {
		t.Setenv("LEDGER_COMMIT_ATTEMPTS", "many")

		_, err := LoadConfig()
		assert.NotNil(t, err)
	})
}

func TestConfigureLogging(t *testing.T) {
	defer zerolog.SetGlobalLevel(zerolog.InfoLevel)

	out := &bytes.Buffer{}
	logger := configureLogging(Config{LogLevel: "warn", LogFormat: "json"}, out)

	logger.Info().Msg("hidden")
	logger.Warn().Msg("shown")

	assert.NotContains(t, out.String(), "hidden")
	assert.Contains(t, out.String(), `"message":"shown"`)
}

func TestOpenStore(t *testing.T) {
	ctx := context.Background()

	t.Run("opens sqlite", func(t *testing.T) {
		store, cleanup, err := OpenStore(ctx, Config{Store: SqliteBackend, SqlitePath: filepath.Join(t.TempDir(), "ledger.db")})
		if !assert.Nil(t, err) {
			return
		}
		defer cleanup()

		suite := we.NewStateStoreValidationSuite(ctx, store)
		suite.Run(t)
	})

	t.Run("rejects unknown stores", func(t *testing.T) {
		_, _, err := OpenStore(ctx, Config{Store: "papyrus"})
		assert.NotNil(t, err)
	})
}

func TestRuntime(t *testing.T) {
	ctx := context.Background()
	cfg := Config{Store: MemoryBackend, StateEncoding: "binary", CommitAttempts: 2}

	store, cleanup, err := OpenStore(ctx, cfg)
	if !assert.Nil(t, err) {
		return
	}
	defer cleanup()

	marshaller, err := StateMarshaller(cfg)
	if !assert.Nil(t, err) {
		return
	}

	options := ServiceOptions(cfg)
	runtime := NewRuntime(store, NewRegistry(
		counter.ProvideEndpoint(store, marshaller, options),
		calculator.ProvideEndpoint(store, marshaller, options),
	))

	assert.Equal(t, []we.ContractKind{"calculator", "counter"}, runtime.Registry.Kinds())

	endpoint, err := runtime.Registry.Lookup("counter")
	if !assert.Nil(t, err) {
		return
	}

	_, err = endpoint.Call(ctx, "runtime", we.RemoteCall{Method: "increment"})
	assert.Nil(t, err)

	record, err := runtime.Store.Load(ctx, we.ContractId{Kind: "counter", Key: "runtime"})
	if !assert.Nil(t, err) {
		return
	}
	assert.Equal(t, we.Data{Encoding: we.BinaryEncoding, Data: []byte{2}}, record.Data)
	assert.Equal(t, we.MethodName("increment"), record.Metadata.Method)
}
