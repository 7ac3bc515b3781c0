package main

import (
	"context"
	"os"
	"os/signal"
)

// withSignalCancel returns a context cancelled on the first interrupt. The
// returned stop function releases the signal handler.
func withSignalCancel(parent context.Context) (context.Context, func()) {
	ctx, cancel := context.WithCancel(parent)
	sigCh := make(chan os.Signal, 1)
	notifySignals(sigCh)

	done := make(chan struct{})
	go func() {
		defer close(done)
		select {
		case <-sigCh:
			cancel()
		case <-ctx.Done():
		}
	}()

	return ctx, func() {
		signal.Stop(sigCh)
		cancel()
		<-done
	}
}
