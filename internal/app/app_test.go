package app

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"opencode-desktop/internal/config"
)

func TestRunUnwindsOnContextCancel(t *testing.T) {
	cfg := &config.Config{
		BaseURLOverride: "http://10.0.0.2:4096",
		Shell:           "/bin/sh",
	}
	a := New(cfg, nil)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(50 * time.Millisecond)
		cancel()
	}()

	done := make(chan error, 1)
	go func() { done <- a.Run(ctx) }()

	select {
	case err := <-done:
		require.NoError(t, err, "a deliberate exit is not a failure")
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not unwind after context cancellation")
	}
}
