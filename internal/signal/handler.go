// Package signal cancels the flash-ui command context on SIGINT or SIGTERM.
package signal

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

// WithInterrupt returns a child of parent that is cancelled when SIGINT or
// SIGTERM arrives. onInterrupt, when non-nil, runs with the received signal
// before the context is cancelled. The returned stop function releases the
// signal registration and cancels the context.
func WithInterrupt(parent context.Context, onInterrupt func(os.Signal)) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(parent)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		defer signal.Stop(sigCh)
		select {
		case sig := <-sigCh:
			if onInterrupt != nil {
				onInterrupt(sig)
			}
			cancel()
		case <-ctx.Done():
		}
	}()

	return ctx, cancel
}
