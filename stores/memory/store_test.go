package memory

import (
	"context"
	"testing"

	"github.com/weegigs/wee-ledger/we"
)

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()

	t.Run("memory state store validation", func(t *testing.T) {
		suite := we.NewStateStoreValidationSuite(ctx, NewStateStore())
		suite.Run(t)
	})
}
