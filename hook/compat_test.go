package hook

import (
	"context"
	"testing"
)

// testContext mirrors testing.T.Context (Go 1.24+): the context is canceled
// when the test finishes, before Cleanup-registered functions run.
func testContext(t testing.TB) context.Context {
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	return ctx
}
