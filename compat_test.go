package thriftclient

import (
	"context"
	"os"
	"testing"
)

// testContext mirrors testing.T.Context (Go 1.24+): the context is canceled
// when the test finishes, before Cleanup-registered functions run.
func testContext(t testing.TB) context.Context {
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	return ctx
}

// testChdir mirrors testing.T.Chdir (Go 1.24+): it changes the working
// directory and restores the previous one when the test finishes.
func testChdir(t testing.TB, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(prev); err != nil {
			t.Fatal(err)
		}
	})
}
